package classifier

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"maritime-assistant-be/pkg/llm"
	"maritime-assistant-be/pkg/llm/llmtest"
	"maritime-assistant-be/pkg/maritime"
)

func TestKeywordClassify(t *testing.T) {
	tests := []struct {
		text       string
		want       maritime.Category
		confidence float64
	}{
		{"Calculate laytime for this call", maritime.CategoryLaytime, 0.7},
		{"When does DISCHARGE finish?", maritime.CategoryLaytime, 0.7},
		{"Will rain stop loading?", maritime.CategoryLaytime, 0.7},
		{"How strong is the wind in Hamburg", maritime.CategoryWeather, 0.7},
		{"What is the distance from Hamburg to Rotterdam", maritime.CategoryDistance, 0.7},
		{"Best route to Santos", maritime.CategoryDistance, 0.7},
		{"Explain this charter clause", maritime.CategoryCPClause, 0.7},
		{"What is a NOR?", maritime.CategoryGeneral, 0.5},
		{"", maritime.CategoryGeneral, 0.5},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			got := KeywordClassify(tt.text)
			assert.Equal(t, tt.want, got.Category)
			assert.Equal(t, tt.confidence, got.Confidence)
			assert.Equal(t, SourceKeyword, got.Source)
			assert.NotNil(t, got.SuggestedActions)
		})
	}

	assert.Equal(t, []string{"Calculate precise laytime", "Review charter party terms"},
		KeywordClassify("laytime").SuggestedActions)
}

func TestClassifyUsesModel(t *testing.T) {
	fake := &llmtest.Fake{Response: "```json\n{\"category\":\"voyage_guidance\",\"confidence\":1.7,\"suggestedActions\":[\"Check port procedures\"],\"requiresDocuments\":true}\n```"}
	c := New(llm.NewHolder(fake), 0)

	got := c.Classify(context.Background(), "What are the port entry procedures in Santos?")

	assert.Equal(t, maritime.CategoryVoyageGuidance, got.Category)
	assert.Equal(t, 1.0, got.Confidence)
	assert.True(t, got.RequiresDocuments)
	assert.Equal(t, SourceLLM, got.Source)

	calls := fake.Calls()
	require.Len(t, calls, 1)
	assert.True(t, calls[0].Options.JSONResponse)
	assert.Equal(t, llm.RoleSystem, calls[0].History[0].Role)
}

// Whatever the provider does, the result is one of the known categories.
func TestClassifyIsTotal(t *testing.T) {
	inputs := []string{"calculate laytime", "weather at Dubai", "random words", "cp clause 12", "!!!", "   "}
	providers := map[string]llm.LLMProvider{
		"none":           nil,
		"failing":        &llmtest.Fake{Err: &llm.ProviderError{Provider: "openai", StatusCode: 429}},
		"garbage":        &llmtest.Fake{Response: "I think it's about ships"},
		"unknown label":  &llmtest.Fake{Response: `{"category":"navigation","confidence":0.9}`},
		"broken json":    &llmtest.Fake{Response: `{"category":`},
		"network":        &llmtest.Fake{Err: errors.New("connection reset")},
		"no confidence":  &llmtest.Fake{Response: `{"category":"distance"}`},
		"negative score": &llmtest.Fake{Response: `{"category":"weather","confidence":-3}`},
	}

	for name, p := range providers {
		c := New(llm.NewHolder(p), 0)
		for _, in := range inputs {
			got := c.Classify(context.Background(), in)
			assert.True(t, got.Category.Valid(), "%s / %q", name, in)
			assert.GreaterOrEqual(t, got.Confidence, 0.0)
			assert.LessOrEqual(t, got.Confidence, 1.0)
		}
	}
}

func TestClassifyFallsBackOnUnknownLabel(t *testing.T) {
	c := New(llm.NewHolder(&llmtest.Fake{Response: `{"category":"navigation"}`}), 0)
	got := c.Classify(context.Background(), "distance to Tokyo")
	assert.Equal(t, maritime.CategoryDistance, got.Category)
	assert.Equal(t, SourceKeyword, got.Source)
}

func TestClassifyDefaultsConfidence(t *testing.T) {
	c := New(llm.NewHolder(&llmtest.Fake{Response: `{"category":"distance"}`}), 0)
	got := c.Classify(context.Background(), "how far is it")
	assert.Equal(t, maritime.CategoryDistance, got.Category)
	assert.Equal(t, 0.5, got.Confidence)
}
