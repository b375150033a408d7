package config

import "log/slog"

const (
	LangEN = "en"
	LangES = "es"
)

// SupportedLanguages lists the languages with bundled translations.
func SupportedLanguages() []string {
	return []string{LangEN, LangES}
}

// GetLocaleConfig maps lang to a supported language, falling back to English.
func GetLocaleConfig(lang string) string {
	switch lang {
	case LangEN:
		return LangEN
	case LangES:
		return LangES
	default:
		slog.Warn("language not supported, falling back to English", "language", lang)
		return LangEN
	}
}
