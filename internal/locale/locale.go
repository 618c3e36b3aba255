// Package locale defines the supported response languages and every
// user-visible string, in each of those languages.
package locale

import "strings"

// Code identifies a supported language.
type Code string

const (
	// FR is French, the default language.
	FR Code = "fr"
	// EN is English.
	EN Code = "en"
)

// Language is a response-language selection.
type Language struct {
	Code  Code   `json:"code"`
	Label string `json:"label"`
	Flag  string `json:"flag"`
}

var (
	// French is the default language.
	French = Language{Code: FR, Label: "Français", Flag: "🇫🇷"}
	// English is the alternative language.
	English = Language{Code: EN, Label: "English", Flag: "🇺🇸"}
)

// Languages returns the supported languages in display order.
func Languages() []Language {
	return []Language{French, English}
}

// Default returns the language selected when nothing else is.
func Default() Language {
	return French
}

// Lookup finds a language by code, ignoring case and surrounding spaces.
func Lookup(code string) (Language, bool) {
	c := Code(strings.ToLower(strings.TrimSpace(code)))
	for _, lang := range Languages() {
		if lang.Code == c {
			return lang, true
		}
	}
	return Language{}, false
}

// LookupOrDefault is Lookup falling back to Default for unknown codes.
func LookupOrDefault(code string) Language {
	if lang, ok := Lookup(code); ok {
		return lang
	}
	return Default()
}

// Messages returns the localized strings for the language.
func (l Language) Messages() Messages {
	return For(l.Code)
}
