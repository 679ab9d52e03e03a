package llm

import (
	"context"
	"time"
)

// CallLogger receives one record per provider call.
type CallLogger interface {
	Info(module, message string, details map[string]interface{})
	Warn(module, message string, details map[string]interface{})
}

type loggedProvider struct {
	next LLMProvider
	log  CallLogger
}

// WithCallLog records duration, sizes and failures of every call made through
// p. Prompts and replies are not logged. A nil p stays nil.
func WithCallLog(p LLMProvider, log CallLogger) LLMProvider {
	if p == nil || log == nil {
		return p
	}
	return &loggedProvider{next: p, log: log}
}

func (p *loggedProvider) Name() string { return p.next.Name() }

func (p *loggedProvider) Close() error { return Close(p.next) }

func (p *loggedProvider) Chat(ctx context.Context, history []Message, options ...Option) (string, error) {
	start := time.Now()
	reply, err := p.next.Chat(ctx, history, options...)

	details := map[string]interface{}{
		"provider":    p.next.Name(),
		"messages":    len(history),
		"duration_ms": time.Since(start).Milliseconds(),
	}
	if err != nil {
		details["error"] = err.Error()
		details["kind"] = ClassifyError(err).String()
		p.log.Warn("LLM", "Provider call failed", details)
		return reply, err
	}
	details["reply_chars"] = len(reply)
	p.log.Info("LLM", "Provider call", details)
	return reply, nil
}

func (p *loggedProvider) Generate(ctx context.Context, prompt string, options ...Option) (string, error) {
	return p.Chat(ctx, []Message{{Role: RoleUser, Content: prompt}}, options...)
}
