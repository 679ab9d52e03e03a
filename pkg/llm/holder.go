package llm

import (
	"io"
	"sync/atomic"
)

type slot struct {
	provider LLMProvider
}

// Holder is the process-wide handle to the active provider. Reconfiguration
// swaps in a new provider; in-flight calls keep the one they loaded.
type Holder struct {
	current atomic.Pointer[slot]
}

func NewHolder(p LLMProvider) *Holder {
	h := &Holder{}
	h.Replace(p)
	return h
}

// Current returns nil when no provider is configured.
func (h *Holder) Current() LLMProvider {
	s := h.current.Load()
	if s == nil {
		return nil
	}
	return s.provider
}

// Replace installs p and returns the provider it displaced.
func (h *Holder) Replace(p LLMProvider) LLMProvider {
	old := h.current.Swap(&slot{provider: p})
	if old == nil {
		return nil
	}
	return old.provider
}

// Close releases p if it holds resources, as the Gemini client does.
func Close(p LLMProvider) error {
	if c, ok := p.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
