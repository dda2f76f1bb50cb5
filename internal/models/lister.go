package models

import (
	"context"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/sashabaranov/go-openai"

	"codeberg.org/snonux/banglacsv/internal/translation"
)

// Lister handles listing available OpenAI models
type Lister struct {
	apiKey string
	client *openai.Client
	out    io.Writer
}

// NewLister creates a new model lister
func NewLister(apiKey string) *Lister {
	return &Lister{
		apiKey: apiKey,
		client: openai.NewClient(apiKey),
		out:    os.Stdout,
	}
}

// ListAvailableModels prints the chat models usable for translation
func (l *Lister) ListAvailableModels(ctx context.Context) error {
	if l.apiKey == "" {
		return fmt.Errorf("OpenAI API key not found. Set OPENAI_API_KEY environment variable or configure in .banglacsv.yaml")
	}

	models, err := l.client.ListModels(ctx)
	if err != nil {
		return fmt.Errorf("failed to list models: %w", err)
	}

	ids := make([]string, 0, len(models.Models))
	for _, model := range models.Models {
		ids = append(ids, model.ID)
	}

	l.print(TranslationModels(ids), len(ids))
	return nil
}

func (l *Lister) print(chatModels []string, total int) {
	fmt.Fprintln(l.out, "Chat models usable with --backend openai --openai-model <model>:")
	if len(chatModels) == 0 {
		fmt.Fprintln(l.out, "  No chat models found")
	}
	for _, model := range chatModels {
		if model == translation.DefaultOpenAIModel {
			fmt.Fprintf(l.out, "  %s (default)\n", model)
			continue
		}
		fmt.Fprintf(l.out, "  %s\n", model)
	}
	if skipped := total - len(chatModels); skipped > 0 {
		fmt.Fprintf(l.out, "  ... and %d other models (audio, image, embedding)\n", skipped)
	}
}

// TranslationModels filters model ids down to sorted chat models
func TranslationModels(ids []string) []string {
	var chat []string
	for _, id := range ids {
		if isChatModel(id) {
			chat = append(chat, id)
		}
	}
	sort.Strings(chat)
	return chat
}

func isChatModel(id string) bool {
	for _, marker := range []string{"tts", "audio", "realtime", "transcribe", "search", "image", "embedding", "instruct"} {
		if strings.Contains(id, marker) {
			return false
		}
	}
	return strings.HasPrefix(id, "gpt-") || strings.HasPrefix(id, "chatgpt-") ||
		strings.HasPrefix(id, "o1") || strings.HasPrefix(id, "o3") || strings.HasPrefix(id, "o4")
}
