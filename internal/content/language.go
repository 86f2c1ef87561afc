package content

import (
	"errors"
	"fmt"
	"strings"
)

// Language is one of the site's fixed display languages.
type Language string

const (
	English Language = "en"
	Spanish Language = "es"
	French  Language = "fr"
	German  Language = "de"
	Italian Language = "it"

	DefaultLanguage = English
)

var ErrUnsupportedLanguage = errors.New("unsupported language")

// Languages lists the supported languages in switcher order.
var Languages = []Language{English, Spanish, French, German, Italian}

func ParseLanguage(s string) (Language, error) {
	lang := Language(strings.ToLower(strings.TrimSpace(s)))
	if !lang.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedLanguage, s)
	}
	return lang, nil
}

func (l Language) Valid() bool {
	switch l {
	case English, Spanish, French, German, Italian:
		return true
	}
	return false
}

func (l Language) String() string { return string(l) }
