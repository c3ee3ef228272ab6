// Package classify provides the classification domain: the embedder
// contract, distance ranking, and the record/assignment types a
// classification run produces.
package classify

import (
	"context"
	"errors"
	"fmt"
)

// EmbedTextLimit is the maximum number of characters submitted to the
// embedding provider for one article. Longer inputs are truncated to bound
// provider cost and latency.
const EmbedTextLimit = 4000

// SuggestionLimit is the number of top-ranked tags returned per article.
const SuggestionLimit = 5

// ErrEmbeddingFailed indicates the provider returned an empty or malformed
// vector. Validation happens at the boundary so malformed data never reaches
// the ranking step.
var ErrEmbeddingFailed = errors.New("embedding failed")

// Embedder produces a fixed-length semantic vector for a piece of text.
// Implementations wrap external providers and must translate any malformed
// response into an error rather than returning a partial vector.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float64, error)
}

// ValidateVector checks that a provider response is usable: non-empty, and
// matching the expected dimension when expected > 0. Any mismatch becomes
// ErrEmbeddingFailed.
func ValidateVector(vec []float64, expected int) error {
	if len(vec) == 0 {
		return fmt.Errorf("%w: provider returned empty vector", ErrEmbeddingFailed)
	}
	if expected > 0 && len(vec) != expected {
		return fmt.Errorf("%w: dimension %d, expected %d", ErrEmbeddingFailed, len(vec), expected)
	}
	return nil
}

// TruncateText caps text at EmbedTextLimit characters.
func TruncateText(text string) string {
	if len(text) <= EmbedTextLimit {
		return text
	}
	return text[:EmbedTextLimit]
}

// ComposeText builds the embedding input for an article from its parts:
// title and snippet on their own lines, a blank line, then the body, with
// the whole truncated to EmbedTextLimit.
func ComposeText(title, snippet, body string) string {
	return TruncateText(title + "\n" + snippet + "\n\n" + body)
}
