// Package classifier maps free-text maritime queries onto a Category. The LLM
// is consulted first; any failure drops to a keyword scan so Classify always
// produces a valid category.
package classifier

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"maritime-assistant-be/pkg/llm"
	"maritime-assistant-be/pkg/maritime"
)

const (
	SourceLLM     = "llm"
	SourceKeyword = "keyword"
)

type Classification struct {
	Category          maritime.Category `json:"category"`
	Confidence        float64           `json:"confidence"`
	SuggestedActions  []string          `json:"suggestedActions"`
	RequiresDocuments bool              `json:"requiresDocuments"`
	Source            string            `json:"source"`
}

const systemPrompt = `You are a maritime domain expert. Analyze the user's query and categorize it. Respond with JSON in this exact format:
{
  "category": "laytime|weather|distance|cp_clause|document_analysis|voyage_guidance|general",
  "confidence": 0.0-1.0,
  "suggestedActions": ["action1", "action2"],
  "requiresDocuments": true|false
}

Categories:
- laytime: Time calculations, loading/discharging operations
- weather: Weather conditions, forecasts, weather routing
- distance: Port distances, voyage planning, fuel calculations
- cp_clause: Charter party clauses, contract terms
- document_analysis: Requests to analyze uploaded documents
- voyage_guidance: Voyage planning, port procedures, regulations
- general: Other maritime-related questions`

type Classifier struct {
	holder  *llm.Holder
	timeout time.Duration
}

func New(holder *llm.Holder, timeout time.Duration) *Classifier {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Classifier{holder: holder, timeout: timeout}
}

// Classify never fails. The returned error-free result records in Source
// whether the model or the keyword scan decided.
func (c *Classifier) Classify(ctx context.Context, text string) Classification {
	if strings.TrimSpace(text) == "" {
		return KeywordClassify(text)
	}
	var provider llm.LLMProvider
	if c != nil && c.holder != nil {
		provider = c.holder.Current()
	}
	if provider == nil {
		return KeywordClassify(text)
	}

	callCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	raw, err := provider.Chat(callCtx, []llm.Message{
		{Role: llm.RoleSystem, Content: systemPrompt},
		{Role: llm.RoleUser, Content: text},
	}, llm.WithJSONResponse(), llm.WithTemperature(0.1), llm.WithMaxTokens(200))
	if err != nil {
		return KeywordClassify(text)
	}

	result, ok := parseResponse(raw)
	if !ok {
		return KeywordClassify(text)
	}
	return result
}

type llmResponse struct {
	Category          string   `json:"category"`
	Confidence        *float64 `json:"confidence"`
	SuggestedActions  []string `json:"suggestedActions"`
	RequiresDocuments bool     `json:"requiresDocuments"`
}

func parseResponse(raw string) (Classification, bool) {
	raw = strings.TrimSpace(raw)
	raw = strings.TrimPrefix(raw, "```json")
	raw = strings.TrimPrefix(raw, "```")
	raw = strings.TrimSuffix(raw, "```")

	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start < 0 || end <= start {
		return Classification{}, false
	}

	var resp llmResponse
	if err := json.Unmarshal([]byte(raw[start:end+1]), &resp); err != nil {
		return Classification{}, false
	}
	category, ok := maritime.ParseCategory(resp.Category)
	if !ok {
		return Classification{}, false
	}

	confidence := 0.5
	if resp.Confidence != nil {
		confidence = clamp(*resp.Confidence)
	}
	actions := resp.SuggestedActions
	if actions == nil {
		actions = []string{}
	}

	return Classification{
		Category:          category,
		Confidence:        confidence,
		SuggestedActions:  actions,
		RequiresDocuments: resp.RequiresDocuments,
		Source:            SourceLLM,
	}, true
}

func clamp(v float64) float64 {
	if v != v || v < 0 { // NaN or negative
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

type keywordRule struct {
	category maritime.Category
	words    []string
	actions  []string
}

var keywordRules = []keywordRule{
	{maritime.CategoryLaytime, []string{"laytime", "loading", "discharge"}, []string{"Calculate precise laytime", "Review charter party terms"}},
	{maritime.CategoryWeather, []string{"weather", "wind", "rain"}, []string{"Check weather conditions", "Review operational guidelines"}},
	{maritime.CategoryDistance, []string{"distance", "route", "voyage"}, []string{"Calculate voyage distance", "Estimate fuel consumption"}},
	{maritime.CategoryCPClause, []string{"charter", "clause", "cp"}, []string{"Interpret charter terms", "Review legal implications"}},
}

// KeywordClassify is the deterministic fallback; rules are checked in order.
func KeywordClassify(text string) Classification {
	lower := strings.ToLower(text)
	for _, rule := range keywordRules {
		for _, w := range rule.words {
			if strings.Contains(lower, w) {
				return Classification{
					Category:         rule.category,
					Confidence:       0.7,
					SuggestedActions: append([]string(nil), rule.actions...),
					Source:           SourceKeyword,
				}
			}
		}
	}
	return Classification{
		Category:         maritime.CategoryGeneral,
		Confidence:       0.5,
		SuggestedActions: []string{},
		Source:           SourceKeyword,
	}
}
