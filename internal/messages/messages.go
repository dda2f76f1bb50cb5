package messages

import (
	"context"
	"embed"
	"errors"
	"log"
	"strings"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/pelletier/go-toml/v2"
	"golang.org/x/text/language"

	"codeberg.org/snonux/banglacsv/internal/batch"
)

//go:embed active.*.toml
var localeFS embed.FS

var catalogs = []string{"active.en.toml", "active.bn.toml"}

// Localizer renders messages in one language, falling back to English
type Localizer struct {
	lang      string
	localizer *i18n.Localizer
}

// New creates a Localizer for lang, e.g. "en" or "bn". Unknown or empty
// languages fall back to English.
func New(lang string) *Localizer {
	bundle := i18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("toml", toml.Unmarshal)

	for _, file := range catalogs {
		if _, err := bundle.LoadMessageFileFS(localeFS, file); err != nil {
			log.Printf("messages: failed to load %s: %v", file, err)
		}
	}

	tag, err := language.Parse(lang)
	if err != nil {
		tag = language.English
	}
	base, _ := tag.Base()

	return &Localizer{
		lang:      base.String(),
		localizer: i18n.NewLocalizer(bundle, tag.String(), language.English.String()),
	}
}

// Supported lists the languages with a catalog
func Supported() []string {
	return []string{"en", "bn"}
}

// Language returns the base language this localizer was asked for
func (l *Localizer) Language() string {
	return l.lang
}

// T renders the message id with optional template data. Missing ids come
// back as the id itself.
func (l *Localizer) T(id string, data map[string]any) string {
	msg, err := l.localizer.Localize(&i18n.LocalizeConfig{
		MessageID:    id,
		TemplateData: data,
	})
	if err != nil {
		log.Printf("messages: localize %s: %v", id, err)
		return id
	}
	return msg
}

// Error maps a job error to the notification shown to the user
func (l *Localizer) Error(err error) string {
	if err == nil {
		return ""
	}

	var notFound *batch.ColumnNotFoundError
	var outOfTable *batch.RangeOutOfTableError

	switch {
	case errors.Is(err, batch.ErrInputRequired), errors.Is(err, batch.ErrInputNotFound):
		return l.T("ErrInputRequired", nil)
	case errors.Is(err, batch.ErrColumnRequired):
		return l.T("ErrColumnRequired", nil)
	case errors.Is(err, batch.ErrRangeRequired):
		return l.T("ErrRangeRequired", nil)
	case errors.Is(err, batch.ErrOutputRequired):
		return l.T("ErrOutputRequired", nil)
	case errors.Is(err, batch.ErrInvalidRange):
		return l.T("ErrInvalidRange", nil)
	case errors.Is(err, batch.ErrJobRunning):
		return l.T("ErrJobRunning", nil)
	case errors.Is(err, context.Canceled):
		return l.T("ErrCancelled", nil)
	case errors.As(err, &notFound):
		return l.T("ErrColumnNotFound", map[string]any{
			"Column":    notFound.Column,
			"Available": quoteList(notFound.Available),
		})
	case errors.As(err, &outOfTable):
		return l.T("ErrRangeOutOfTable", map[string]any{
			"Start": outOfTable.Start,
			"Rows":  outOfTable.Rows,
		})
	default:
		return l.T("ErrGeneric", map[string]any{"Error": err.Error()})
	}
}

// Success renders the completion message for a finished job
func (l *Localizer) Success(result batch.Result) string {
	msg := l.T("Success", map[string]any{"Path": result.OutputPath})
	if result.Fallbacks > 0 {
		msg += "\n\n" + l.plural("SuccessFallbacks", result.Fallbacks)
	}
	return msg
}

func (l *Localizer) plural(id string, count int) string {
	msg, err := l.localizer.Localize(&i18n.LocalizeConfig{
		MessageID:    id,
		PluralCount:  count,
		TemplateData: map[string]any{"Count": count},
	})
	if err != nil {
		log.Printf("messages: localize %s: %v", id, err)
		return id
	}
	return msg
}

func quoteList(items []string) string {
	quoted := make([]string, len(items))
	for i, item := range items {
		quoted[i] = "'" + item + "'"
	}
	return strings.Join(quoted, ", ")
}
