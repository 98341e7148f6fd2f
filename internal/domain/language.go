package domain

import "strings"

// Language is a supported reply language, stored as its ISO 639-1 code.
type Language string

const (
	LangEnglish Language = "en"
	LangHindi   Language = "hi"
	LangBengali Language = "bn"
	LangOdia    Language = "or"

	DefaultLanguage = LangEnglish
)

// SupportedLanguages lists every language the assistant can answer in.
var SupportedLanguages = []Language{LangEnglish, LangHindi, LangBengali, LangOdia}

var languageNames = map[Language]string{
	LangEnglish: "English",
	LangHindi:   "Hindi",
	LangBengali: "Bengali",
	LangOdia:    "Odia",
}

// ParseLanguage returns the supported language for code, ignoring case and
// surrounding whitespace.
func ParseLanguage(code string) (Language, bool) {
	l := Language(strings.ToLower(strings.TrimSpace(code)))
	if _, ok := languageNames[l]; !ok {
		return "", false
	}
	return l, true
}

// Name is the English name of the language, used in model instructions.
func (l Language) Name() string {
	if n, ok := languageNames[l]; ok {
		return n
	}
	return languageNames[DefaultLanguage]
}

// OrDefault returns l when supported, otherwise DefaultLanguage.
func (l Language) OrDefault() Language {
	if _, ok := languageNames[l]; ok {
		return l
	}
	return DefaultLanguage
}
