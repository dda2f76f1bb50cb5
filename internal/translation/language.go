package translation

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

const (
	// DefaultSource is the language of the input column
	DefaultSource = "en"
	// DefaultTarget is the language written back into the column
	DefaultTarget = "bn"
)

// ParseLanguage validates a language code and returns its canonical BCP 47
// form. Region and script are kept, so "pt-br" becomes "pt-BR".
func ParseLanguage(code string) (string, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return "", fmt.Errorf("language code cannot be empty")
	}

	tag, err := language.Parse(code)
	if err != nil {
		return "", fmt.Errorf("invalid language code %q: %w", code, err)
	}

	if _, confidence := tag.Base(); confidence == language.No {
		return "", fmt.Errorf("unknown language %q", code)
	}
	return tag.String(), nil
}

// LanguageName returns the English name of a language code, e.g. "Bangla" for "bn".
// Unknown codes are returned unchanged.
func LanguageName(code string) string {
	tag, err := language.Parse(code)
	if err != nil {
		return code
	}
	if name := display.English.Languages().Name(tag); name != "" {
		return name
	}
	return code
}
