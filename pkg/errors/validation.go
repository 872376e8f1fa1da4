package errors

import (
	"math"
	"path/filepath"
	"strings"
	"unicode"
)

// MaxIDLength bounds entity identifiers.
const MaxIDLength = 256

// ValidateID rejects identifiers that cannot be rendered or used as map keys
// safely: empty strings, overlong strings and control characters.
func ValidateID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidInput, "identifier cannot be empty")
	}
	if len(id) > MaxIDLength {
		return New(ErrCodeInvalidInput, "identifier too long (max %d characters)", MaxIDLength)
	}
	for _, r := range id {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "identifier %q contains control characters", id)
		}
	}
	return nil
}

// ValidateViewport rejects non-positive or non-finite viewport sizes.
func ValidateViewport(width, height float64) error {
	for _, v := range []float64{width, height} {
		if v <= 0 || math.IsNaN(v) || math.IsInf(v, 0) {
			return New(ErrCodeInvalidViewport, "viewport must be positive and finite, got %gx%g", width, height)
		}
	}
	return nil
}

// ValidateThreshold checks a similarity threshold in [0, 1].
func ValidateThreshold(v float64) error {
	if math.IsNaN(v) || v < 0 || v > 1 {
		return New(ErrCodeInvalidInput, "similarity threshold must be within [0, 1], got %g", v)
	}
	return nil
}

// ValidateOutputPath rejects output paths that are empty, contain control
// characters or escape the working directory through "..".
func ValidateOutputPath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "output path cannot be empty")
	}
	for _, r := range path {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "output path contains control characters")
		}
	}
	if filepath.IsAbs(path) {
		return nil
	}
	clean := filepath.ToSlash(filepath.Clean(path))
	if clean == ".." || strings.HasPrefix(clean, "../") {
		return New(ErrCodeInvalidPath, "output path %q escapes the working directory", path)
	}
	return nil
}

// ValidateFormat checks that format is one of allowed.
func ValidateFormat(format string, allowed []string) error {
	for _, a := range allowed {
		if format == a {
			return nil
		}
	}
	return New(ErrCodeInvalidFormat, "unsupported format %q (want %s)", format, strings.Join(allowed, ", "))
}
