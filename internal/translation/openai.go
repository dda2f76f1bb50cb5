package translation

import (
	"context"
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"github.com/sashabaranov/go-openai"
)

// DefaultOpenAIModel is the chat model used when none is configured
const DefaultOpenAIModel = openai.GPT4oMini

// OpenAITranslator translates text with an OpenAI chat model
type OpenAITranslator struct {
	apiKey string
	model  string
	client *openai.Client
}

// NewOpenAITranslator creates a new OpenAI backed translator
func NewOpenAITranslator(apiKey, model string) *OpenAITranslator {
	if model == "" {
		model = DefaultOpenAIModel
	}
	return &OpenAITranslator{
		apiKey: apiKey,
		model:  model,
		client: openai.NewClient(apiKey),
	}
}

// Translate implements Translator
func (t *OpenAITranslator) Translate(ctx context.Context, text, source, target string) (string, error) {
	if t.apiKey == "" {
		return "", fmt.Errorf("OpenAI API key not found")
	}

	req := openai.ChatCompletionRequest{
		Model: t.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: translationPrompt(source, target),
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: text,
			},
		},
		Temperature: 0.2,
	}

	resp, err := t.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", &RemoteError{Backend: "openai", Err: errors.Wrap(err, "chat completion")}
	}

	if len(resp.Choices) == 0 {
		return "", &RemoteError{Backend: "openai", Err: errors.New("no translation returned")}
	}

	translation := strings.TrimSpace(resp.Choices[0].Message.Content)
	if translation == "" {
		return "", &RemoteError{Backend: "openai", Err: errors.New("empty translation returned")}
	}
	return translation, nil
}

// translationPrompt is shared by the LLM backends
func translationPrompt(source, target string) string {
	return fmt.Sprintf(
		"Translate the user's %s text to %s. Respond with only the translation, "+
			"keep line breaks, numbers and punctuation, and add no explanations or quotes.",
		LanguageName(source), LanguageName(target),
	)
}
