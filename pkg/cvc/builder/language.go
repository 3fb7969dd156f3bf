package builder

import (
	"fmt"

	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

// Language is a lower-case ISO 639-1 code such as "en".
type Language string

// NewLanguage returns code as a Language if it is a known ISO 639-1 code.
func NewLanguage(code string) (Language, error) {
	l := Language(code)
	if err := l.Validate(); err != nil {
		return "", err
	}
	return l, nil
}

// MustLanguage is NewLanguage for constant codes; it panics on error.
func MustLanguage(code string) Language {
	l, err := NewLanguage(code)
	if err != nil {
		panic(err)
	}
	return l
}

func (l Language) base() (language.Base, bool) {
	if len(l) != 2 || l[0] < 'a' || l[0] > 'z' || l[1] < 'a' || l[1] > 'z' {
		return language.Base{}, false
	}
	b, err := language.ParseBase(string(l))
	return b, err == nil
}

// IsValid reports whether l is a known ISO 639-1 code.
func (l Language) IsValid() bool {
	_, ok := l.base()
	return ok
}

// Validate returns ErrInvalidLanguage if l is not a known ISO 639-1 code.
func (l Language) Validate() error {
	if !l.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidLanguage, string(l))
	}
	return nil
}

// Name returns the English name of the language, or "" if l is invalid.
func (l Language) Name() string {
	b, ok := l.base()
	if !ok {
		return ""
	}
	return display.English.Languages().Name(b)
}

func (l Language) String() string { return string(l) }
