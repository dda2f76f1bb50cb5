package translation

import (
	"context"
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"google.golang.org/genai"
)

// DefaultGeminiModel is the Gemini model used when none is configured
const DefaultGeminiModel = "gemini-2.0-flash"

// GeminiTranslator translates text with a Google Gemini model
type GeminiTranslator struct {
	model  string
	client *genai.Client
}

// NewGeminiTranslator creates a Gemini backed translator
func NewGeminiTranslator(ctx context.Context, apiKey, model string) (*GeminiTranslator, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("Gemini API key not found")
	}
	if model == "" {
		model = DefaultGeminiModel
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiTranslator{model: model, client: client}, nil
}

// Translate implements Translator
func (g *GeminiTranslator) Translate(ctx context.Context, text, source, target string) (string, error) {
	config := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(translationPrompt(source, target), genai.RoleUser),
		Temperature:       genai.Ptr[float32](0.2),
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(text), config)
	if err != nil {
		return "", &RemoteError{Backend: "gemini", Err: errors.Wrap(err, "generate content")}
	}

	translation := strings.TrimSpace(resp.Text())
	if translation == "" {
		return "", &RemoteError{Backend: "gemini", Err: errors.New("no translation returned")}
	}
	return translation, nil
}
