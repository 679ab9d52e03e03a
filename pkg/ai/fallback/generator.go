// Package fallback answers open-ended maritime questions through the
// configured LLM and degrades to static text when it cannot.
package fallback

import (
	"context"
	"fmt"
	"strings"
	"time"

	"maritime-assistant-be/pkg/llm"
)

const (
	HistoryWindow    = 6
	defaultMaxTokens = 1000
)

const systemPrompt = `You are MaritimeAI, an expert maritime assistant specializing in:
- Laytime calculations and charterparty terms
- Weather analysis and routing
- Port distances and voyage planning
- Maritime regulations and procedures
- Document analysis and interpretation

Provide accurate, professional responses based on maritime industry standards.
If you need additional information, ask specific questions.
Always cite relevant regulations or industry practices when applicable.`

type Snippet struct {
	Title   string
	Content string
}

type Context struct {
	Knowledge []Snippet
	Documents []Snippet
	History   []llm.Message
}

// Outcome carries the reply plus why it is static, when it is.
type Outcome struct {
	Text     string
	Failure  llm.ErrorKind
	Provider string
	Err      error
}

type Generator struct {
	holder    *llm.Holder
	timeout   time.Duration
	maxTokens int
}

func NewGenerator(holder *llm.Holder, timeout time.Duration) *Generator {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Generator{holder: holder, timeout: timeout, maxTokens: defaultMaxTokens}
}

// Generate always yields user-facing text; provider failures select one of
// the static messages.
func (g *Generator) Generate(ctx context.Context, query string, c Context) Outcome {
	var provider llm.LLMProvider
	if g.holder != nil {
		provider = g.holder.Current()
	}
	if provider == nil {
		return Outcome{Text: NotConfiguredMessage(query), Failure: llm.KindNotConfigured, Err: llm.ErrNotConfigured}
	}

	callCtx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	reply, err := provider.Chat(callCtx, BuildMessages(query, c), llm.WithMaxTokens(g.maxTokens))
	if err != nil {
		kind := llm.ClassifyError(err)
		return Outcome{Text: messageFor(kind, query), Failure: kind, Provider: provider.Name(), Err: err}
	}
	if strings.TrimSpace(reply) == "" {
		return Outcome{Text: EmptyReplyMessage, Provider: provider.Name()}
	}
	return Outcome{Text: reply, Provider: provider.Name()}
}

func messageFor(kind llm.ErrorKind, query string) string {
	switch kind {
	case llm.KindNotConfigured:
		return NotConfiguredMessage(query)
	case llm.KindRateLimited:
		return RateLimitedMessage
	default:
		return UnavailableMessage
	}
}

// BuildMessages assembles the system instruction, the last HistoryWindow
// turns, inline knowledge and the query.
func BuildMessages(query string, c Context) []llm.Message {
	messages := []llm.Message{{Role: llm.RoleSystem, Content: systemPrompt}}

	history := c.History
	if len(history) > HistoryWindow {
		history = history[len(history)-HistoryWindow:]
	}
	for _, m := range history {
		if m.Role == llm.RoleUser || m.Role == llm.RoleAssistant {
			messages = append(messages, m)
		}
	}

	var info []string
	if len(c.Knowledge) > 0 {
		info = append(info, "Relevant knowledge base entries:")
		for _, k := range c.Knowledge {
			info = append(info, fmt.Sprintf("- %s: %s", k.Title, k.Content))
		}
	}
	if len(c.Documents) > 0 {
		info = append(info, "Referenced documents:")
		for _, d := range c.Documents {
			info = append(info, fmt.Sprintf("- %s: %s", d.Title, truncate(d.Content, 200)))
		}
	}
	if len(info) > 0 {
		messages = append(messages, llm.Message{Role: llm.RoleSystem, Content: "Additional context:\n" + strings.Join(info, "\n")})
	}

	return append(messages, llm.Message{Role: llm.RoleUser, Content: query})
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
