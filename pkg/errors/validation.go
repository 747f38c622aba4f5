package errors

import (
	"strings"
	"unicode"

	"github.com/google/uuid"
)

const maxHeaderPathLength = 4096

// ValidateHeaderPath validates a header identity taken from an include graph.
// Headers are resolved file paths or synthetic IDs, so absolute paths are
// allowed, but control characters and empty names are not.
func ValidateHeaderPath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidGraph, "header path cannot be empty")
	}
	if len(path) > maxHeaderPathLength {
		return New(ErrCodeInvalidGraph, "header path too long (max %d characters)", maxHeaderPathLength)
	}
	for _, r := range path {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidGraph, "header path %q contains control characters", path)
		}
	}
	return nil
}

// ValidatePrefix validates a project path prefix used for filtering.
func ValidatePrefix(prefix string) error {
	if strings.TrimSpace(prefix) == "" {
		return New(ErrCodeInvalidInput, "prefix cannot be empty")
	}
	if strings.ContainsRune(prefix, '\x00') {
		return New(ErrCodeInvalidInput, "prefix contains a null byte")
	}
	return nil
}

// ValidatePath validates a relative output path for safety.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
//   - No path traversal sequences (..)
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	if strings.Contains(path, "..") {
		return New(ErrCodeInvalidPath, "path cannot contain path traversal sequences (..)")
	}
	return nil
}

// ValidateLayoutID checks that id is a UUID as issued for stored layouts.
func ValidateLayoutID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidID, "layout ID cannot be empty")
	}
	if _, err := uuid.Parse(id); err != nil {
		return Wrap(ErrCodeInvalidID, err, "invalid layout ID %q", id)
	}
	return nil
}
