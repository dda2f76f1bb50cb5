package translation

import (
	"context"
	"log"
	"sync"
)

// Cache stores finished translations keyed by language pair and source text
type Cache interface {
	Get(source, target, text string) (string, bool)
	Add(source, target, text, translated string) error
}

// TranslationCache stores translations in memory for the lifetime of a process
type TranslationCache struct {
	mu           sync.RWMutex
	translations map[string]string
}

// NewTranslationCache creates a new translation cache
func NewTranslationCache() *TranslationCache {
	return &TranslationCache{
		translations: make(map[string]string),
	}
}

// Add adds a translation to the cache
func (tc *TranslationCache) Add(source, target, text, translated string) error {
	tc.mu.Lock()
	defer tc.mu.Unlock()
	tc.translations[cacheKey(source, target, text)] = translated
	return nil
}

// Get retrieves a translation from the cache
func (tc *TranslationCache) Get(source, target, text string) (string, bool) {
	tc.mu.RLock()
	defer tc.mu.RUnlock()
	translation, ok := tc.translations[cacheKey(source, target, text)]
	return translation, ok
}

// Len returns the number of cached translations
func (tc *TranslationCache) Len() int {
	tc.mu.RLock()
	defer tc.mu.RUnlock()
	return len(tc.translations)
}

func cacheKey(source, target, text string) string {
	return source + ":" + target + ":" + text
}

// Cached serves repeated texts from a cache and only calls the wrapped
// translator on a miss. Failed translations are never stored.
type Cached struct {
	next  Translator
	cache Cache
}

// NewCached wraps next with cache
func NewCached(next Translator, cache Cache) *Cached {
	return &Cached{next: next, cache: cache}
}

// Translate implements Translator
func (c *Cached) Translate(ctx context.Context, text, source, target string) (string, error) {
	if translated, ok := c.cache.Get(source, target, text); ok {
		return translated, nil
	}

	translated, err := c.next.Translate(ctx, text, source, target)
	if err != nil {
		return "", err
	}

	if err := c.cache.Add(source, target, text, translated); err != nil {
		log.Printf("translation cache: failed to store %q: %v", text, err)
	}
	return translated, nil
}
