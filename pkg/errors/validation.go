package errors

import (
	"strings"
	"unicode"
)

// maxFilenameLength bounds uploaded and exported file names.
const maxFilenameLength = 255

// ValidateFilename validates a user-supplied file name (an uploaded font,
// an export base name) for safety.
//
// The rules are conservative:
//   - No empty names
//   - No control characters or null bytes
//   - No path separators or traversal sequences
//   - Maximum length of 255 bytes
func ValidateFilename(name string) error {
	if strings.TrimSpace(name) == "" {
		return New(ErrCodeInvalidFilename, "file name cannot be empty")
	}

	if len(name) > maxFilenameLength {
		return New(ErrCodeInvalidFilename, "file name too long (max %d characters)", maxFilenameLength)
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidFilename, "file name contains invalid control characters")
		}
	}

	if strings.ContainsAny(name, `/\`) {
		return New(ErrCodeInvalidFilename, "file name cannot contain path separators")
	}

	if name == "." || name == ".." {
		return New(ErrCodeInvalidFilename, "file name cannot be a directory reference")
	}

	return nil
}

// ValidateDataURI checks that s looks like a base64 data URI with a media
// type in the given family (e.g. "image/", "font/"). An empty family accepts
// any media type.
func ValidateDataURI(s, family string) error {
	rest, ok := strings.CutPrefix(s, "data:")
	if !ok {
		return New(ErrCodeInvalidInput, "not a data URI")
	}
	mediaType, _, ok := strings.Cut(rest, ",")
	if !ok {
		return New(ErrCodeInvalidInput, "data URI has no payload")
	}
	mediaType = strings.TrimSuffix(mediaType, ";base64")
	if family != "" && !strings.HasPrefix(mediaType, family) {
		return New(ErrCodeInvalidInput, "data URI media type %q is not %s*", mediaType, family)
	}
	return nil
}
