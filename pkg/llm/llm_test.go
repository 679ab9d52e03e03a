package llm

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want ErrorKind
	}{
		{"nil", nil, KindNone},
		{"not configured", ErrNotConfigured, KindNotConfigured},
		{"wrapped not configured", fmt.Errorf("build: %w", ErrNotConfigured), KindNotConfigured},
		{"unauthorized", &ProviderError{Provider: "openai", StatusCode: 401, Message: "bad key"}, KindNotConfigured},
		{"forbidden", &ProviderError{Provider: "gemini", StatusCode: 403}, KindNotConfigured},
		{"too many requests", &ProviderError{Provider: "openai", StatusCode: 429}, KindRateLimited},
		{"quota text", errors.New("insufficient_quota: You exceeded your current quota"), KindRateLimited},
		{"grpc exhausted", errors.New("rpc error: code = ResourceExhausted desc = RESOURCE_EXHAUSTED"), KindRateLimited},
		{"server error", &ProviderError{Provider: "openai", StatusCode: 503}, KindUnavailable},
		{"network", errors.New("dial tcp: connection refused"), KindUnavailable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifyError(tt.err))
		})
	}
}

func TestRetryable(t *testing.T) {
	assert.True(t, Retryable(&ProviderError{StatusCode: 502}))
	assert.True(t, Retryable(&ProviderError{Message: "request failed", Err: errors.New("eof")}))
	assert.False(t, Retryable(&ProviderError{StatusCode: 429}))
	assert.False(t, Retryable(&ProviderError{StatusCode: 400}))
	assert.False(t, Retryable(context.Canceled))
	assert.False(t, Retryable(ErrNotConfigured))
	assert.False(t, Retryable(nil))
}

type namedProvider string

func (n namedProvider) Chat(context.Context, []Message, ...Option) (string, error) {
	return string(n), nil
}
func (n namedProvider) Generate(context.Context, string, ...Option) (string, error) {
	return string(n), nil
}
func (n namedProvider) Name() string { return string(n) }

func TestHolderReplace(t *testing.T) {
	h := NewHolder(nil)
	assert.Nil(t, h.Current())

	assert.Nil(t, h.Replace(namedProvider("a")))
	assert.Equal(t, "a", h.Current().Name())

	old := h.Replace(namedProvider("b"))
	assert.Equal(t, "a", old.Name())
	assert.Equal(t, "b", h.Current().Name())
}

func TestHolderConcurrentSwap(t *testing.T) {
	h := NewHolder(namedProvider("start"))
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func(i int) {
			defer wg.Done()
			h.Replace(namedProvider(fmt.Sprintf("p%d", i)))
		}(i)
		go func() {
			defer wg.Done()
			p := h.Current()
			if assert.NotNil(t, p) {
				_, err := p.Generate(context.Background(), "ping")
				assert.NoError(t, err)
			}
		}()
	}
	wg.Wait()
}

func TestApplyOptions(t *testing.T) {
	got := ApplyOptions(Options{Temperature: 0.7, Model: "base"},
		WithTemperature(0.1), WithMaxTokens(1000), WithJSONResponse())
	assert.Equal(t, Options{Temperature: 0.1, MaxTokens: 1000, Model: "base", JSONResponse: true}, got)
}
