package ollama

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"maritime-assistant-be/pkg/llm"
)

func TestOllamaChat(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/chat", r.URL.Path)

		var body ollamaChatRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "llama3", body.Model)
		assert.Equal(t, "json", body.Format)
		assert.False(t, body.Stream)

		_, _ = w.Write([]byte(`{"model":"llama3","message":{"role":"assistant","content":"fair winds"},"done":true}`))
	}))
	defer srv.Close()

	p := NewOllamaProvider(srv.URL, "llama3", time.Second)
	out, err := p.Generate(context.Background(), "hello", llm.WithJSONResponse())
	require.NoError(t, err)
	assert.Equal(t, "fair winds", out)
}

func TestOllamaErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":"model 'nope' not found"}`))
	}))
	defer srv.Close()

	_, err := NewOllamaProvider(srv.URL, "nope", time.Second).Generate(context.Background(), "hello")
	var pe *llm.ProviderError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, http.StatusNotFound, pe.StatusCode)
	assert.Equal(t, "model 'nope' not found", pe.Message)
}
