package matrix

import (
	"maps"
	"slices"
	"strings"
)

// DefaultLanguage is used when a requested translation is missing.
const DefaultLanguage = "en"

// LocalizedText maps a language tag to text.
type LocalizedText map[string]string

// Text builds a single-language LocalizedText in [DefaultLanguage].
func Text(s string) LocalizedText {
	return LocalizedText{DefaultLanguage: s}
}

// Get returns the text for lang, falling back to [DefaultLanguage] and then
// to the lexicographically first language present.
func (t LocalizedText) Get(lang string) string {
	if s, ok := t[lang]; ok && s != "" {
		return s
	}
	if base, _, ok := strings.Cut(lang, "-"); ok {
		if s, ok := t[base]; ok && s != "" {
			return s
		}
	}
	if s, ok := t[DefaultLanguage]; ok && s != "" {
		return s
	}
	for _, k := range slices.Sorted(maps.Keys(t)) {
		if t[k] != "" {
			return t[k]
		}
	}
	return ""
}

// Variants returns all translations lowercased, ordered by language tag.
func (t LocalizedText) Variants() []string {
	out := make([]string, 0, len(t))
	for _, k := range slices.Sorted(maps.Keys(t)) {
		if v := strings.TrimSpace(t[k]); v != "" {
			out = append(out, strings.ToLower(v))
		}
	}
	return out
}

// ContainsAny reports whether any translation contains any of the keywords,
// case-insensitively.
func (t LocalizedText) ContainsAny(keywords ...string) bool {
	for _, v := range t.Variants() {
		for _, k := range keywords {
			if k != "" && strings.Contains(v, strings.ToLower(k)) {
				return true
			}
		}
	}
	return false
}
