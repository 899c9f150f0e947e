package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// ValidateIdentifier validates a scene identifier (shape, group or color id).
//
// Identifiers must start with a letter and may contain letters, digits,
// '-', '_' and '.'. They are used verbatim as TikZ color names, so they
// cannot contain braces, commas or whitespace.
func ValidateIdentifier(id string) error {
	if id == "" {
		return New(ErrCodeInvalidScene, "identifier cannot be empty")
	}
	if len(id) > 128 {
		return New(ErrCodeInvalidScene, "identifier too long (max 128 characters)")
	}
	if !identifierRegex.MatchString(id) {
		return New(ErrCodeInvalidScene, "invalid identifier: %q", id)
	}
	return nil
}

var identifierRegex = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9._-]*$`)

// ValidateRGB checks that a color has three components in [0, 255].
func ValidateRGB(name string, rgb []int) error {
	if len(rgb) != 3 {
		return New(ErrCodeInvalidColor, "color %q must have 3 components, got %d", name, len(rgb))
	}
	for _, c := range rgb {
		if c < 0 || c > 255 {
			return New(ErrCodeInvalidColor, "color %q component %d out of range [0, 255]", name, c)
		}
	}
	return nil
}

// ValidatePath validates a file path referenced from a scene (e.g. an image).
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
//   - No braces (the path is embedded in a TeX argument)
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

	if strings.ContainsAny(path, "{}") {
		return New(ErrCodeInvalidPath, "path cannot contain braces")
	}

	return nil
}

// ValidateRelativePath additionally rejects absolute paths and traversal.
// Used by the HTTP service, where scenes come from untrusted clients.
func ValidateRelativePath(path string) error {
	if err := ValidatePath(path); err != nil {
		return err
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
