package persona

import (
	"fmt"
	"strings"
)

// DefaultLanguage is the reply language every new session starts with.
const DefaultLanguage = "English"

// Languages returns the preset reply languages in catalog order. Free-text
// values outside this list are accepted everywhere a language is taken; they
// pass through to the model unvalidated.
func Languages() []string {
	load()
	out := make([]string, len(presets))
	copy(out, presets)
	return out
}

// IsPreset reports whether lang matches a catalog preset, ignoring case.
func IsPreset(lang string) bool {
	load()
	for _, p := range presets {
		if strings.EqualFold(p, lang) {
			return true
		}
	}
	return false
}

// NormalizeLanguage maps a preset spelled in any case to its catalog form
// and returns free-text languages trimmed but otherwise untouched.
func NormalizeLanguage(lang string) string {
	lang = strings.TrimSpace(lang)
	if lang == "" {
		return DefaultLanguage
	}
	load()
	for _, p := range presets {
		if strings.EqualFold(p, lang) {
			return p
		}
	}
	return lang
}

// Directive returns the reply-language instruction appended to every
// composed prompt. Callers rely on this exact sentence appearing once.
func Directive(lang string) string {
	return fmt.Sprintf("Respond in %s.", NormalizeLanguage(lang))
}
