// Package provider implements embedding providers backed by external APIs.
package provider

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/newsroomhq/newstag/domain/classify"
	openai "github.com/sashabaranov/go-openai"
)

// Default provider settings.
const (
	DefaultModel         = "text-embedding-3-small"
	DefaultMaxRetries    = 5
	DefaultInitialDelay  = 2 * time.Second
	DefaultBackoffFactor = 2.0
)

// errEmptyResponse indicates the API returned HTTP 200 without embedding
// data. Routing providers can do this under transient load, so it is
// retryable.
var errEmptyResponse = errors.New("embedding response contained no data")

// OpenAIEmbedder implements classify.Embedder using the OpenAI embeddings
// API (or any OpenAI-compatible endpoint via the base URL).
type OpenAIEmbedder struct {
	client        *openai.Client
	model         string
	dimensions    int
	maxRetries    int
	initialDelay  time.Duration
	backoffFactor float64
}

// OpenAIConfig holds configuration for the OpenAI embedder.
type OpenAIConfig struct {
	APIKey     string
	BaseURL    string
	Model      string
	Dimensions int
	Timeout    time.Duration
	MaxRetries int
	CacheDir   string
}

// NewOpenAIEmbedder creates an embedder from configuration.
func NewOpenAIEmbedder(cfg OpenAIConfig) *OpenAIEmbedder {
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}

	httpClient := &http.Client{}
	if cfg.Timeout > 0 {
		httpClient.Timeout = cfg.Timeout
	}
	if cfg.CacheDir != "" {
		httpClient.Transport = NewCachingTransport(cfg.CacheDir, nil)
	}
	clientCfg.HTTPClient = httpClient

	model := cfg.Model
	if model == "" {
		model = DefaultModel
	}

	maxRetries := cfg.MaxRetries
	if maxRetries == 0 {
		maxRetries = DefaultMaxRetries
	}

	return &OpenAIEmbedder{
		client:        openai.NewClientWithConfig(clientCfg),
		model:         model,
		dimensions:    cfg.Dimensions,
		maxRetries:    maxRetries,
		initialDelay:  DefaultInitialDelay,
		backoffFactor: DefaultBackoffFactor,
	}
}

// Embed generates an embedding for a single text. The input is truncated
// to the embedding character limit before it goes over the wire. All
// failures wrap classify.ErrEmbeddingFailed so callers can classify them.
func (p *OpenAIEmbedder) Embed(ctx context.Context, text string) ([]float64, error) {
	req := openai.EmbeddingRequest{
		Model:      openai.EmbeddingModel(p.model),
		Input:      []string{classify.TruncateText(text)},
		Dimensions: p.dimensions,
	}

	var resp openai.EmbeddingResponse
	err := p.withRetry(ctx, func() error {
		var callErr error
		resp, callErr = p.client.CreateEmbeddings(ctx, req)
		if callErr != nil {
			return callErr
		}
		if len(resp.Data) == 0 {
			return errEmptyResponse
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %s", classify.ErrEmbeddingFailed, err)
	}

	raw := resp.Data[0].Embedding
	vec := make([]float64, len(raw))
	for i, v := range raw {
		vec[i] = float64(v)
	}

	if err := classify.ValidateVector(vec, p.dimensions); err != nil {
		return nil, fmt.Errorf("%w: %s", classify.ErrEmbeddingFailed, err)
	}
	return vec, nil
}

// withRetry executes the function with exponential backoff retry.
func (p *OpenAIEmbedder) withRetry(ctx context.Context, fn func() error) error {
	delay := p.initialDelay
	var lastErr error

	for attempt := 0; attempt <= p.maxRetries; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		lastErr = fn()
		if lastErr == nil {
			return nil
		}

		if !isRetryable(lastErr) {
			return lastErr
		}

		if attempt < p.maxRetries {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
				delay = time.Duration(float64(delay) * p.backoffFactor)
			}
		}
	}

	return fmt.Errorf("max retries exceeded: %w", lastErr)
}

// isRetryable determines if an error should be retried.
func isRetryable(err error) bool {
	if errors.Is(err, errEmptyResponse) {
		return true
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}

	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.HTTPStatusCode {
		case http.StatusTooManyRequests,
			http.StatusInternalServerError,
			http.StatusBadGateway,
			http.StatusServiceUnavailable,
			http.StatusGatewayTimeout:
			return true
		}
		return false
	}

	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return true
	}

	return false
}

var _ classify.Embedder = (*OpenAIEmbedder)(nil)
