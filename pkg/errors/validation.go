package errors

import (
	"math"
	"strings"
	"unicode"
)

// MaxDimension bounds container and output sizes.
const MaxDimension = 16384

// ValidateSize checks a container or output size. Both dimensions must be
// finite, positive and at most MaxDimension pixels.
func ValidateSize(width, height float64) error {
	for _, d := range []struct {
		name string
		v    float64
	}{{"width", width}, {"height", height}} {
		switch {
		case math.IsNaN(d.v) || math.IsInf(d.v, 0):
			return New(ErrCodeInvalidSize, "%s must be a finite number", d.name)
		case d.v <= 0:
			return New(ErrCodeInvalidSize, "%s must be positive, got %g", d.name, d.v)
		case d.v > MaxDimension:
			return New(ErrCodeInvalidSize, "%s too large (max %d), got %g", d.name, MaxDimension, d.v)
		}
	}
	return nil
}

// ValidatePath validates a relative asset path referenced from a scene file.
// It prevents path traversal and ensures reasonable path length.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
//   - No absolute paths (must be relative)
//   - No path traversal sequences (..)
//   - No backslashes (Windows-style paths)
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

	if strings.HasPrefix(path, "/") {
		return New(ErrCodeInvalidPath, "path must be relative (cannot start with /)")
	}

	if strings.Contains(path, "..") {
		return New(ErrCodeInvalidPath, "path cannot contain path traversal sequences (..)")
	}

	if strings.Contains(path, "\\") {
		return New(ErrCodeInvalidPath, "path cannot contain backslashes")
	}

	return nil
}

// ValidateLabel checks a node label from untrusted input: non-empty after
// trimming, at most 128 bytes, no control characters.
func ValidateLabel(label string) error {
	if strings.TrimSpace(label) == "" {
		return New(ErrCodeInvalidInput, "label cannot be empty")
	}
	if len(label) > 128 {
		return New(ErrCodeInvalidInput, "label too long (max 128 characters)")
	}
	for _, r := range label {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "label contains control characters")
		}
	}
	return nil
}
