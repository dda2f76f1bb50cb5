package translation

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// Backend names
const (
	BackendGoogle = "google"
	BackendOpenAI = "openai"
	BackendGemini = "gemini"
)

// Cache modes
const (
	CacheNone   = "none"
	CacheMemory = "memory"
	CacheSQLite = "sqlite"
)

// Config selects a backend and the decorators around it
type Config struct {
	Backend string // "google", "openai" or "gemini"
	Source  string // source language code
	Target  string // target language code

	OpenAIKey   string
	OpenAIModel string
	GeminiKey   string
	GeminiModel string

	Attempts   int
	RetryDelay time.Duration

	Breaker         bool
	BreakerFailures uint32
	BreakerTimeout  time.Duration

	CacheMode string // "none", "memory" or "sqlite"
	CachePath string // database file for the sqlite cache
}

// DefaultConfig returns the configuration used when nothing is overridden
func DefaultConfig() *Config {
	return &Config{
		Backend:         BackendGoogle,
		Source:          DefaultSource,
		Target:          DefaultTarget,
		OpenAIModel:     DefaultOpenAIModel,
		GeminiModel:     DefaultGeminiModel,
		Attempts:        DefaultAttempts,
		RetryDelay:      DefaultRetryDelay,
		BreakerFailures: DefaultBreakerFailures,
		BreakerTimeout:  DefaultBreakerTimeout,
		CacheMode:       CacheNone,
	}
}

// NewBackend creates the remote translator named in config
func NewBackend(ctx context.Context, config *Config) (Translator, error) {
	if config == nil {
		config = DefaultConfig()
	}

	switch strings.ToLower(config.Backend) {
	case BackendGoogle, "":
		return NewGoogleTranslator(), nil

	case BackendOpenAI:
		if config.OpenAIKey == "" {
			return nil, fmt.Errorf("OpenAI API key is required")
		}
		return NewOpenAITranslator(config.OpenAIKey, config.OpenAIModel), nil

	case BackendGemini:
		return NewGeminiTranslator(ctx, config.GeminiKey, config.GeminiModel)

	default:
		return nil, fmt.Errorf("unknown translation backend: %s", config.Backend)
	}
}

// Stack is the assembled translator: retry over cache over breaker over backend
type Stack struct {
	*Retrying

	Source string
	Target string

	closers []func() error
}

// New builds a Stack from config
func New(ctx context.Context, config *Config) (*Stack, error) {
	if config == nil {
		config = DefaultConfig()
	}

	source, err := ParseLanguage(orDefault(config.Source, DefaultSource))
	if err != nil {
		return nil, fmt.Errorf("source language: %w", err)
	}
	target, err := ParseLanguage(orDefault(config.Target, DefaultTarget))
	if err != nil {
		return nil, fmt.Errorf("target language: %w", err)
	}

	backend, err := NewBackend(ctx, config)
	if err != nil {
		return nil, err
	}
	return assemble(backend, config, source, target)
}

// NewWithBackend builds a Stack around a caller supplied backend
func NewWithBackend(backend Translator, config *Config) (*Stack, error) {
	if config == nil {
		config = DefaultConfig()
	}
	return assemble(backend, config, orDefault(config.Source, DefaultSource), orDefault(config.Target, DefaultTarget))
}

func assemble(backend Translator, config *Config, source, target string) (*Stack, error) {
	s := &Stack{Source: source, Target: target}

	t := backend
	if config.Breaker {
		t = NewBreaker(t, orDefault(config.Backend, BackendGoogle), config.BreakerFailures, config.BreakerTimeout)
	}

	switch strings.ToLower(config.CacheMode) {
	case CacheNone, "":
	case CacheMemory:
		t = NewCached(t, NewTranslationCache())
	case CacheSQLite:
		if config.CachePath == "" {
			return nil, fmt.Errorf("sqlite cache requires a database path")
		}
		cache, err := OpenSQLiteCache(config.CachePath)
		if err != nil {
			return nil, err
		}
		s.closers = append(s.closers, cache.Close)
		t = NewCached(t, cache)
	default:
		return nil, fmt.Errorf("unknown cache mode: %s", config.CacheMode)
	}

	s.Retrying = NewRetrying(t, config.Attempts, config.RetryDelay)
	return s, nil
}

// Close releases resources held by the decorators
func (s *Stack) Close() error {
	var firstErr error
	for _, c := range s.closers {
		if err := c(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	s.closers = nil
	return firstErr
}

func orDefault(v, def string) string {
	if strings.TrimSpace(v) == "" {
		return def
	}
	return v
}
