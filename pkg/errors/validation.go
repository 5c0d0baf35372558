package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// maxIDLength bounds item ids so they stay usable as DOT node names and cache keys.
const maxIDLength = 128

// itemIDRegex matches item ids: a letter or underscore followed by letters,
// digits, underscores or dashes. Dots are reserved for edge references.
var itemIDRegex = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_-]*$`)

// ValidateItemID validates an item id declared in a scene.
//
// The validation rules are intentionally conservative:
//   - No empty ids
//   - Maximum length of 128 characters
//   - No dots (they separate the item from the edge in "title.bottom")
//   - "parent" is reserved for the parent reference
func ValidateItemID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidID, "item id cannot be empty")
	}

	if len(id) > maxIDLength {
		return New(ErrCodeInvalidID, "item id too long (max %d characters)", maxIDLength)
	}

	if id == "parent" {
		return New(ErrCodeInvalidID, "item id %q is reserved", id)
	}

	if !itemIDRegex.MatchString(id) {
		return New(ErrCodeInvalidID, "invalid item id: %q", id)
	}

	return nil
}

// ValidatePath validates a scene file path for safety.
// It prevents path traversal and ensures reasonable path length.
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

// ValidateFormat checks that format is one of the allowed output formats.
func ValidateFormat(format string, allowed map[string]bool) error {
	if format == "" {
		return New(ErrCodeInvalidFormat, "format cannot be empty")
	}
	if !allowed[format] {
		return New(ErrCodeInvalidFormat, "unsupported format: %q", format)
	}
	return nil
}
