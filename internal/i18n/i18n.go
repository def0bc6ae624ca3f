// Package i18n provides the user-facing message catalog.
//
// Messages are plain per-language maps, looked up by key with an
// English fallback. Brazilian Portuguese is the default because it is
// the product's primary audience.
package i18n

import (
	"fmt"
	"os"
	"strings"
)

// Supported languages.
const (
	LangPtBR = "pt-BR"
	LangEN   = "en"
)

var currentLang = LangPtBR

// messages stores all translations, keyed by language then message key.
var messages = make(map[string]map[string]string)

// Init initializes the catalog with the given language. Unknown codes
// fall back to the ESCRIBA_LANG environment variable, then to pt-BR.
func Init(lang string) {
	switch strings.ToLower(strings.TrimSpace(lang)) {
	case "pt", "pt-br", "pt_br", "portugues", "português":
		currentLang = LangPtBR
	case "en", "en-us", "english":
		currentLang = LangEN
	default:
		if envLang := os.Getenv("ESCRIBA_LANG"); envLang != "" && envLang != lang {
			Init(envLang)
			return
		}
		currentLang = LangPtBR
	}

	loadMessages()
}

// Language returns the active language code.
func Language() string {
	return currentLang
}

// T returns the translated message for key, falling back to English
// and finally to the key itself.
func T(key string) string {
	if len(messages) == 0 {
		loadMessages()
	}
	if msg, ok := messages[currentLang][key]; ok {
		return msg
	}
	if msg, ok := messages[LangEN][key]; ok {
		return msg
	}
	return key
}

// Sprintf formats the translated message for key with args.
func Sprintf(key string, args ...any) string {
	return fmt.Sprintf(T(key), args...)
}

func loadMessages() {
	loadPortugueseMessages()
	loadEnglishMessages()
}
