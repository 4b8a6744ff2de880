package util

import "path/filepath"

// CanonicalPath makes path absolute and resolves symlinks, so two aliases
// of the same location compare equal. Components that do not exist yet are
// joined back onto the deepest resolvable ancestor, which lets paths be
// compared before they are created.
func CanonicalPath(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	return resolveExisting(abs), nil
}

func resolveExisting(abs string) string {
	if resolved, err := filepath.EvalSymlinks(abs); err == nil {
		return resolved
	}
	parent := filepath.Dir(abs)
	if parent == abs {
		return abs
	}
	return filepath.Join(resolveExisting(parent), filepath.Base(abs))
}
