// Package testutil provides shared fixtures for tests that need a real
// git repository or a plan document on disk.
package testutil

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

// SetupTestRepo creates a temporary git repository with one commit and
// returns its path. The repository is cleaned up when the test ends.
func SetupTestRepo(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()

	RunGit(t, dir, "init")
	RunGit(t, dir, "config", "user.email", "test@test.com")
	RunGit(t, dir, "config", "user.name", "Test User")

	readme := filepath.Join(dir, "README.md")
	if err := os.WriteFile(readme, []byte("# Test Repository\n"), 0644); err != nil {
		t.Fatalf("failed to create README: %v", err)
	}
	RunGit(t, dir, "add", ".")
	RunGit(t, dir, "commit", "-m", "Initial commit")

	return dir
}

// RunGit runs a git command in dir, failing the test on error.
func RunGit(t *testing.T, dir string, args ...string) string {
	t.Helper()

	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	out, err := cmd.CombinedOutput()
	if err != nil {
		t.Fatalf("git %s failed: %v\n%s", strings.Join(args, " "), err, out)
	}
	return strings.TrimSpace(string(out))
}

// WritePlanDoc writes a plan document containing the given metadata JSON
// wrapped in a fenced block, surrounded by some prose, and returns its
// path.
func WritePlanDoc(t *testing.T, dir, name, metadataJSON string) string {
	t.Helper()

	doc := "# Plan\n\nSome prose before.\n\n```json metadata\n" + metadataJSON + "\n```\n\nSome prose after.\n"
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(doc), 0644); err != nil {
		t.Fatalf("failed to write plan doc: %v", err)
	}
	return path
}
