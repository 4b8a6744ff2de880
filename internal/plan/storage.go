package plan

import (
	"fmt"
	"os"
)

// Load reads a plan document from disk and parses its metadata block.
// Returns the plan along with the full document text, which callers must
// hand back to Save so the surrounding prose survives re-serialization.
func Load(path string) (*Plan, string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, "", fmt.Errorf("read plan document: %w", err)
	}

	text := string(data)
	p, err := Parse(text)
	if err != nil {
		return nil, "", fmt.Errorf("%s: %w", path, err)
	}
	return p, text, nil
}

// Save serializes the plan back into originalText and atomically rewrites
// the document. Uses a temp file + rename so an interrupted write never
// leaves a truncated document behind.
func Save(path string, p *Plan, originalText string) error {
	updated, err := Serialize(p, originalText)
	if err != nil {
		return err
	}

	tmpPath := fmt.Sprintf("%s.tmp.%d", path, os.Getpid())
	if err := os.WriteFile(tmpPath, []byte(updated), 0644); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("replace plan document: %w", err)
	}
	return nil
}
