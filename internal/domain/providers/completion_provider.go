package providers

import (
	"context"
	"errors"
)

// ErrCompletionUnauthorized indicates the completion backend rejected our
// credentials; callers should stop retrying, not just fall back.
var ErrCompletionUnauthorized = errors.New("text completion provider rejected credentials")

// TextCompletionProvider defines an external text-completion backend. The
// returned text is untrusted: it is expected, not guaranteed, to contain a
// JSON object.
type TextCompletionProvider interface {
	Complete(ctx context.Context, prompt, language string) (string, error)
}
