package summarizer

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"maritime-assistant-be/pkg/llm"
	"maritime-assistant-be/pkg/llm/llmtest"
)

const charter = "This charter party is made between Alpha Shipping and Beta Grain. " +
	"Laytime shall commence six hours after Notice of Readiness is tendered! " +
	"Ok. Demurrage is payable at USD 15,000 per day pro rata? " +
	"Weather working days exclude Sundays and holidays."

func TestExtractive(t *testing.T) {
	assert.Equal(t,
		"This charter party is made between Alpha Shipping and Beta Grain. "+
			"Laytime shall commence six hours after Notice of Readiness is tendered. "+
			"Demurrage is payable at USD 15,000 per day pro rata.",
		Extractive(charter))
	assert.Equal(t, DefaultSummary, Extractive("Short. Tiny!"))
	assert.Equal(t, DefaultSummary, Extractive(""))
}

func TestSummarizeWithModel(t *testing.T) {
	fake := &llmtest.Fake{Response: "  Voyage charter for grain; demurrage USD 15,000/day.  "}
	summary, byModel := New(llm.NewHolder(fake), time.Second).Summarize(context.Background(), charter, "charter_party")

	assert.True(t, byModel)
	assert.Equal(t, "Voyage charter for grain; demurrage USD 15,000/day.", summary)

	calls := fake.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, 500, calls[0].Options.MaxTokens)
	assert.True(t, strings.Contains(calls[0].History[0].Content, "charter_party"))
}

func TestSummarizeFallsBack(t *testing.T) {
	tests := []struct {
		name     string
		provider llm.LLMProvider
	}{
		{"no provider", nil},
		{"error", &llmtest.Fake{Err: errors.New("boom")}},
		{"empty", &llmtest.Fake{Response: ""}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			summary, byModel := New(llm.NewHolder(tt.provider), time.Second).Summarize(context.Background(), charter, "")
			assert.False(t, byModel)
			assert.Equal(t, Extractive(charter), summary)
		})
	}
}
