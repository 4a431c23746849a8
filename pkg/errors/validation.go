package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// ValidateID validates a structure, row, column, or primitive identifier
// received from the CLI or the HTTP API.
//
// The validation rules are intentionally conservative:
//   - No empty ids
//   - No control characters
//   - No path separators or traversal sequences
//   - Maximum length of 256 characters
func ValidateID(kind, id string) error {
	if id == "" {
		return New(ErrCodeInvalidInput, "%s id cannot be empty", kind)
	}

	if len(id) > 256 {
		return New(ErrCodeInvalidInput, "%s id too long (max 256 characters)", kind)
	}

	for _, r := range id {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "%s id contains invalid control characters", kind)
		}
	}

	for _, pattern := range []string{"..", "/", "\\"} {
		if strings.Contains(id, pattern) {
			return New(ErrCodeInvalidInput, "%s id contains invalid characters: %q", kind, pattern)
		}
	}

	return nil
}

// languageTagRegex matches simple BCP 47 tags such as "en", "tr" or "pt-BR".
var languageTagRegex = regexp.MustCompile(`^[A-Za-z]{2,3}(-[A-Za-z0-9]{2,8})*$`)

// ValidateLanguage validates a label language tag. The empty tag is
// accepted and means the default language.
func ValidateLanguage(tag string) error {
	if tag == "" {
		return nil
	}
	if !languageTagRegex.MatchString(tag) {
		return New(ErrCodeInvalidLanguage, "invalid language tag: %q", tag)
	}
	return nil
}

// ValidateURL validates a connection URL against the allowed schemes.
func ValidateURL(rawURL string, schemes ...string) error {
	if rawURL == "" {
		return New(ErrCodeInvalidInput, "URL cannot be empty")
	}

	for _, s := range schemes {
		if strings.HasPrefix(rawURL, s+"://") {
			return nil
		}
	}
	return New(ErrCodeInvalidInput, "URL must use one of the schemes %s", strings.Join(schemes, ", "))
}
