package translation

import (
	"context"
	"fmt"
)

// Translator translates a single piece of text between two languages.
// Languages are BCP 47 codes such as "en" and "bn".
type Translator interface {
	Translate(ctx context.Context, text, source, target string) (string, error)
}

// Func adapts a plain function to the Translator interface
type Func func(ctx context.Context, text, source, target string) (string, error)

// Translate calls f
func (f Func) Translate(ctx context.Context, text, source, target string) (string, error) {
	return f(ctx, text, source, target)
}

// RemoteError is returned by backends when the remote service fails
type RemoteError struct {
	Backend string
	Err     error
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("%s: %v", e.Backend, e.Err)
}

func (e *RemoteError) Unwrap() error {
	return e.Err
}
