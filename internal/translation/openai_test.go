package translation

import (
	"context"
	"os"
	"strings"
	"testing"
)

func TestNewOpenAITranslator(t *testing.T) {
	translator := NewOpenAITranslator("test-api-key", "")

	if translator == nil {
		t.Fatal("NewOpenAITranslator returned nil")
	}
	if translator.apiKey != "test-api-key" {
		t.Errorf("Expected API key 'test-api-key', got '%s'", translator.apiKey)
	}
	if translator.model != DefaultOpenAIModel {
		t.Errorf("Expected default model %q, got %q", DefaultOpenAIModel, translator.model)
	}
	if translator.client == nil {
		t.Error("OpenAI client not initialized")
	}
}

func TestOpenAITranslate_NoAPIKey(t *testing.T) {
	translator := NewOpenAITranslator("", "")

	_, err := translator.Translate(context.Background(), "apple", "en", "bn")
	if err == nil {
		t.Fatal("Expected error for missing API key")
	}
	if err.Error() != "OpenAI API key not found" {
		t.Errorf("Expected 'OpenAI API key not found' error, got: %v", err)
	}
}

func TestTranslationPrompt(t *testing.T) {
	prompt := translationPrompt("en", "bn")

	if !strings.Contains(prompt, "English") {
		t.Errorf("Prompt should name the source language: %s", prompt)
	}
	if !strings.Contains(prompt, LanguageName("bn")) {
		t.Errorf("Prompt should name the target language: %s", prompt)
	}
}

func TestOpenAITranslate_Integration(t *testing.T) {
	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		t.Skip("Skipping integration test: OPENAI_API_KEY not set")
	}

	translation, err := NewOpenAITranslator(apiKey, "").Translate(context.Background(), "apple", "en", "bn")
	if err != nil {
		t.Errorf("Translate failed: %v", err)
	}
	if translation == "" {
		t.Error("Got empty translation")
	}
	t.Logf("Translation of 'apple': %s", translation)
}
