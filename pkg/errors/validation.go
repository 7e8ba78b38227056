package errors

import (
	"strings"
	"unicode"
)

// ValidateTemplateID validates a template identifier for safety and correctness.
// Identifiers are used as store keys, cache key components, and file name
// fragments, so the rules are intentionally conservative:
//   - No empty ids
//   - No control characters
//   - No path separators or traversal sequences
//   - Maximum length of 256 characters
func ValidateTemplateID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidTemplate, "template id cannot be empty")
	}

	if len(id) > 256 {
		return New(ErrCodeInvalidTemplate, "template id too long (max 256 characters)")
	}

	for _, r := range id {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidTemplate, "template id contains invalid control characters")
		}
	}

	dangerousPatterns := []string{
		"..",   // Parent directory
		"/",    // Path separator
		"\\",   // Backslash (Windows path)
		"\x00", // Null byte
	}

	for _, pattern := range dangerousPatterns {
		if strings.Contains(id, pattern) {
			return New(ErrCodeInvalidTemplate, "template id contains invalid characters: %q", pattern)
		}
	}

	return nil
}

// ValidateIntent validates a template intent label.
// Intent is the sole search key for the suggestion index, so it must be
// printable text. It may contain spaces and punctuation.
func ValidateIntent(intent string) error {
	if strings.TrimSpace(intent) == "" {
		return New(ErrCodeInvalidTemplate, "template intent cannot be empty")
	}

	const maxIntentLength = 500
	if len(intent) > maxIntentLength {
		return New(ErrCodeInvalidTemplate, "template intent too long (max %d characters)", maxIntentLength)
	}

	for _, r := range intent {
		if r != '\t' && unicode.IsControl(r) {
			return New(ErrCodeInvalidTemplate, "template intent contains invalid control characters")
		}
	}

	return nil
}

// ValidateDuration validates an estimated duration in milliseconds.
// Durations are non-negative; zero is legal and marks a degenerate template
// whose geometry collapses to zero-width rendering.
func ValidateDuration(ms int64) error {
	if ms < 0 {
		return New(ErrCodeInvalidTemplate, "duration cannot be negative: %d", ms)
	}
	return nil
}

// ValidateOffset validates a segment start offset in milliseconds.
func ValidateOffset(ms int64) error {
	if ms < 0 {
		return New(ErrCodeInvalidTemplate, "segment offset cannot be negative: %d", ms)
	}
	return nil
}

// ValidateLibraryPath validates a library file path supplied by the user.
// It prevents null bytes and unreasonable lengths; the path may be absolute
// since the CLI accepts arbitrary library locations.
func ValidateLibraryPath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "library path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "library path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "library path contains invalid characters")
		}
	}

	return nil
}
