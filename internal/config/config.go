// Package config loads tool configuration from the repository-local
// .planwt.yaml file with PLANWT_* environment overrides.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FileName is the repository-local config file.
const FileName = ".planwt.yaml"

// Config holds tool settings. Zero values fall back to defaults.
type Config struct {
	// LinkDir is the directory created inside each stage checkout to hold
	// the back-reference to the originating plan document.
	LinkDir string `yaml:"link_dir"`

	// WorktreeRoot is the base directory used when scaffolding worktree
	// paths for new plans. Empty means "../<repo>-worktrees".
	WorktreeRoot string `yaml:"worktree_root"`

	// Author is the default author recorded in new plan documents.
	Author string `yaml:"author"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{LinkDir: ".planwt"}
}

// Load reads configuration for the repository at repoRoot. A missing config
// file is not an error; environment variables override file values.
func Load(repoRoot string) (*Config, error) {
	cfg := Default()

	path := filepath.Join(repoRoot, FileName)
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
		if cfg.LinkDir == "" {
			cfg.LinkDir = Default().LinkDir
		}
	case os.IsNotExist(err):
		// No local config, defaults apply.
	default:
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	applyEnv(cfg)
	return cfg, nil
}

// applyEnv overlays PLANWT_* environment variables.
func applyEnv(cfg *Config) {
	if v := os.Getenv("PLANWT_LINK_DIR"); v != "" {
		cfg.LinkDir = v
	}
	if v := os.Getenv("PLANWT_WORKTREE_ROOT"); v != "" {
		cfg.WorktreeRoot = v
	}
	if v := os.Getenv("PLANWT_AUTHOR"); v != "" {
		cfg.Author = v
	}
}
