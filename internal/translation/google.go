package translation

import (
	"context"

	"github.com/bregydoc/gtranslate"
	"github.com/pkg/errors"
)

// GoogleTranslator uses the public Google Translate web endpoint. It needs no
// API key and is rate limited by Google, which is why callers pace requests.
type GoogleTranslator struct {
	translate func(text string, params gtranslate.TranslationParams) (string, error)
}

// NewGoogleTranslator creates a translator backed by translate.google.com
func NewGoogleTranslator() *GoogleTranslator {
	return &GoogleTranslator{translate: gtranslate.TranslateWithParams}
}

// Translate implements Translator
func (g *GoogleTranslator) Translate(ctx context.Context, text, source, target string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	translated, err := g.translate(text, gtranslate.TranslationParams{
		From: source,
		To:   target,
	})
	if err != nil {
		return "", &RemoteError{Backend: "google", Err: errors.Wrapf(err, "translate %s->%s", source, target)}
	}
	if translated == "" {
		return "", &RemoteError{Backend: "google", Err: errors.New("empty translation returned")}
	}

	return translated, nil
}
