package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"

	"maritime-assistant-be/pkg/llm"
)

const DefaultModel = "gemini-1.5-flash"

type Provider struct {
	client *genai.Client
	model  string
}

var _ llm.LLMProvider = (*Provider)(nil)

// NewProvider returns llm.ErrNotConfigured for an empty key so callers can
// start without Gemini and enable it later.
func NewProvider(ctx context.Context, apiKey, model string) (*Provider, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, llm.ErrNotConfigured
	}
	if model == "" {
		model = DefaultModel
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}
	return &Provider{client: client, model: model}, nil
}

func (p *Provider) Name() string { return "gemini" }

// Close releases the underlying client.
func (p *Provider) Close() error {
	if p == nil || p.client == nil {
		return nil
	}
	return p.client.Close()
}

func (p *Provider) Chat(ctx context.Context, history []llm.Message, options ...llm.Option) (string, error) {
	opts := llm.ApplyOptions(llm.Options{Temperature: 0.7, Model: p.model}, options...)

	model := p.client.GenerativeModel(opts.Model)
	model.SetTemperature(float32(opts.Temperature))
	if opts.MaxTokens > 0 {
		model.SetMaxOutputTokens(int32(opts.MaxTokens))
	}
	if opts.JSONResponse {
		model.ResponseMIMEType = "application/json"
	}

	system, turns := splitHistory(history)
	if system != "" {
		model.SystemInstruction = &genai.Content{Parts: []genai.Part{genai.Text(system)}}
	}
	if len(turns) == 0 {
		return "", &llm.ProviderError{Provider: p.Name(), Message: "empty conversation"}
	}

	cs := model.StartChat()
	cs.History = turns[:len(turns)-1]
	last := turns[len(turns)-1]

	resp, err := cs.SendMessage(ctx, last.Parts...)
	if err != nil {
		return "", p.wrapError(err)
	}
	return responseText(resp)
}

func (p *Provider) Generate(ctx context.Context, prompt string, options ...llm.Option) (string, error) {
	return p.Chat(ctx, []llm.Message{{Role: llm.RoleUser, Content: prompt}}, options...)
}

// splitHistory folds system messages into one instruction and maps the rest
// onto Gemini's user/model roles.
func splitHistory(history []llm.Message) (string, []*genai.Content) {
	var system []string
	turns := make([]*genai.Content, 0, len(history))
	for _, m := range history {
		switch m.Role {
		case llm.RoleSystem:
			system = append(system, m.Content)
		case llm.RoleAssistant, "model":
			turns = append(turns, &genai.Content{Role: "model", Parts: []genai.Part{genai.Text(m.Content)}})
		default:
			turns = append(turns, &genai.Content{Role: "user", Parts: []genai.Part{genai.Text(m.Content)}})
		}
	}
	return strings.Join(system, "\n\n"), turns
}

func responseText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0] == nil || resp.Candidates[0].Content == nil {
		return "", &llm.ProviderError{Provider: "gemini", Message: "no candidates in response"}
	}
	var b strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			b.WriteString(string(text))
		}
	}
	if b.Len() == 0 {
		return "", &llm.ProviderError{Provider: "gemini", Message: "no text in response"}
	}
	return b.String(), nil
}

func (p *Provider) wrapError(err error) error {
	pe := &llm.ProviderError{Provider: p.Name(), Message: err.Error(), Err: err}

	var gerr *googleapi.Error
	var coded interface{ HTTPCode() int }
	switch {
	case errors.As(err, &gerr):
		pe.StatusCode = gerr.Code
	case errors.As(err, &coded):
		pe.StatusCode = coded.HTTPCode()
	}
	return pe
}
