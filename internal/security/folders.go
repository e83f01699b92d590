// Package security validates the decrypted canary folder list before
// registration.
//
// The folder list is attacker-relevant input: it is decrypted from the
// vault and then used for recursive directory creation and file seeding.
// Validation rejects entries that would make the daemon create or watch
// something it should not (empty entries, the filesystem root, duplicate
// paths that would double-register with the watcher).
package security

import (
	"errors"
	"fmt"
	"path/filepath"
)

var (
	ErrEmptyPath     = errors.New("empty folder path not allowed")
	ErrRootPath      = errors.New("filesystem root cannot be a canary folder")
	ErrDuplicatePath = errors.New("duplicate folder path")
)

// FolderValidator normalizes and validates canary folder paths. A
// violation is folder-scoped: the caller skips the offending entry and
// continues with its siblings.
type FolderValidator struct {
	seen map[string]struct{}
}

// NewFolderValidator creates a validator with an empty duplicate set.
func NewFolderValidator() *FolderValidator {
	return &FolderValidator{seen: make(map[string]struct{})}
}

// Validate cleans one configured folder path and returns its absolute
// form. Relative paths are resolved against the working directory.
func (v *FolderValidator) Validate(path string) (string, error) {
	if path == "" {
		return "", ErrEmptyPath
	}

	abs, err := filepath.Abs(filepath.Clean(path))
	if err != nil {
		return "", fmt.Errorf("failed to resolve folder path %s: %w", path, err)
	}

	if abs == string(filepath.Separator) || abs == filepath.VolumeName(abs)+string(filepath.Separator) {
		return "", fmt.Errorf("%w: %s", ErrRootPath, path)
	}

	if _, dup := v.seen[abs]; dup {
		return "", fmt.Errorf("%w: %s", ErrDuplicatePath, abs)
	}
	v.seen[abs] = struct{}{}

	return abs, nil
}
