// Package translation provides English to Bangla text translation behind a
// small Translator interface. Remote backends (Google, OpenAI, Gemini) are
// composed with optional caching and circuit breaking, and wrapped by a
// bounded retry that falls back to the original text when every attempt fails.
package translation
