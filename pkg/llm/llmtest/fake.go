// Package llmtest provides a scriptable llm.LLMProvider for tests.
package llmtest

import (
	"context"
	"sync"

	"maritime-assistant-be/pkg/llm"
)

type Call struct {
	History []llm.Message
	Options llm.Options
}

// Fake answers with Response/Err, or with Fn when set.
type Fake struct {
	Response string
	Err      error
	Fn       func(ctx context.Context, history []llm.Message, opts llm.Options) (string, error)

	mu     sync.Mutex
	calls  []Call
	closed int
}

var _ llm.LLMProvider = (*Fake)(nil)

func (f *Fake) Name() string { return "fake" }

func (f *Fake) Chat(ctx context.Context, history []llm.Message, options ...llm.Option) (string, error) {
	opts := llm.ApplyOptions(llm.Options{}, options...)

	f.mu.Lock()
	f.calls = append(f.calls, Call{History: append([]llm.Message(nil), history...), Options: opts})
	f.mu.Unlock()

	if f.Fn != nil {
		return f.Fn(ctx, history, opts)
	}
	return f.Response, f.Err
}

func (f *Fake) Generate(ctx context.Context, prompt string, options ...llm.Option) (string, error) {
	return f.Chat(ctx, []llm.Message{{Role: llm.RoleUser, Content: prompt}}, options...)
}

func (f *Fake) Calls() []Call {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]Call(nil), f.calls...)
}

func (f *Fake) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed++
	return nil
}

// Closed reports how many times Close was called.
func (f *Fake) Closed() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.closed
}
