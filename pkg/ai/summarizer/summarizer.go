// Package summarizer writes short document summaries, through the LLM when
// one is configured and extractively otherwise.
package summarizer

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"maritime-assistant-be/pkg/llm"
)

const (
	maxInputRunes = 12000
	maxTokens     = 500
)

const DefaultSummary = "Document processed successfully."

type Summarizer struct {
	holder  *llm.Holder
	timeout time.Duration
}

func New(holder *llm.Holder, timeout time.Duration) *Summarizer {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Summarizer{holder: holder, timeout: timeout}
}

// Summarize returns the model's summary, or the extractive one when the
// model is absent, fails, or answers with nothing. The bool reports whether
// the model wrote it.
func (s *Summarizer) Summarize(ctx context.Context, content, documentType string) (string, bool) {
	var provider llm.LLMProvider
	if s.holder != nil {
		provider = s.holder.Current()
	}
	if provider == nil {
		return Extractive(content), false
	}

	if documentType == "" {
		documentType = "document"
	}

	callCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	reply, err := provider.Chat(callCtx, []llm.Message{
		{
			Role: llm.RoleSystem,
			Content: fmt.Sprintf("You are a maritime document expert. Summarize this %s focusing on key maritime terms, dates, parties, and important clauses. "+
				"Keep the summary concise but comprehensive.", documentType),
		},
		{Role: llm.RoleUser, Content: "Please summarize this document:\n\n" + clip(content, maxInputRunes)},
	}, llm.WithMaxTokens(maxTokens))
	if err != nil || strings.TrimSpace(reply) == "" {
		return Extractive(content), false
	}
	return strings.TrimSpace(reply), true
}

var sentenceSplit = regexp.MustCompile(`[.!?]+`)

// Extractive joins the first three sentences longer than 20 characters.
func Extractive(content string) string {
	var picked []string
	for _, s := range sentenceSplit.Split(content, -1) {
		s = strings.TrimSpace(s)
		if len(s) <= 20 {
			continue
		}
		picked = append(picked, strings.Join(strings.Fields(s), " "))
		if len(picked) == 3 {
			break
		}
	}
	if len(picked) == 0 {
		return DefaultSummary
	}
	return strings.Join(picked, ". ") + "."
}

func clip(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
