// Package models lists the OpenAI chat models available to an API key
// that can serve as the openai translation backend.
package models
