package router

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"maritime-assistant-be/pkg/ai/classifier"
	"maritime-assistant-be/pkg/ai/fallback"
	"maritime-assistant-be/pkg/llm"
	"maritime-assistant-be/pkg/llm/llmtest"
	"maritime-assistant-be/pkg/maritime"
	"maritime-assistant-be/pkg/maritime/weather"
)

type stubWeather struct {
	result weather.Result
	err    error
	asked  []string
}

func (s *stubWeather) Lookup(_ context.Context, location string) (weather.Result, error) {
	s.asked = append(s.asked, location)
	if s.err != nil {
		return weather.Result{}, s.err
	}
	r := s.result
	r.Location = location
	r.Recommendation = weather.Recommend(r)
	return r, nil
}

type stubKnowledge struct {
	snippets []fallback.Snippet
	err      error
	category maritime.Category
}

func (s *stubKnowledge) Relevant(_ context.Context, _ string, category maritime.Category, _ int) ([]fallback.Snippet, error) {
	s.category = category
	return s.snippets, s.err
}

var fixedNow = func() time.Time { return time.Date(2024, 3, 14, 9, 0, 0, 0, time.UTC) }

func newRouter(t *testing.T, provider llm.LLMProvider, w weather.Provider, k KnowledgeSource) *Router {
	t.Helper()
	if w == nil {
		w = &stubWeather{result: weather.Result{Condition: "Clear", TemperatureC: 18, WindSpeedKt: 12, VisibilityNM: 10}}
	}
	r, err := New(Deps{
		Weather:   w,
		Generator: fallback.NewGenerator(llm.NewHolder(provider), time.Second),
		Knowledge: k,
		Now:       fixedNow,
	})
	require.NoError(t, err)
	return r
}

func classified(c maritime.Category) classifier.Classification {
	return classifier.Classification{Category: c, Confidence: 0.9}
}

func TestLaytimeEndToEnd(t *testing.T) {
	text := "Please calculate laytime. Vessel arrived at 14:30 and completed loading at 08:15 the next day"

	c := classifier.New(llm.NewHolder(nil), time.Second).Classify(context.Background(), text)
	require.Equal(t, maritime.CategoryLaytime, c.Category)

	reply := newRouter(t, nil, nil, nil).Respond(context.Background(), Query{Text: text}, c)

	assert.Equal(t, ModeCalculation, reply.Mode)
	assert.Equal(t, "laytime", reply.Handler)
	assert.Contains(t, reply.Text, "• **Total Laytime:** 17.75 hours (0.74 days)")
	assert.Contains(t, reply.Text, "• **Arrival Time:** 02:30 PM")
	assert.Contains(t, reply.Text, "• **Completion Time:** 08:15 AM (+1 day)")
	assert.Contains(t, reply.Text, "Maritime Industry Notes")
}

func TestLaytimeHandler(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		mode     Mode
		contains string
	}{
		{"completion rolls over", "calculate: arrived 22:00, completed 06:00", ModeCalculation, "8 hours (0.33 days)"},
		{"same day", "calculate: arrived 06:00, finished 18:45", ModeCalculation, "12.75 hours (0.53 days)"},
		{"explicit next day", "calculate: arrived 06:00, completed 18:00 next day", ModeCalculation, "36 hours (1.5 days)"},
		{"missing completion", "calculate laytime, vessel arrived at 14:30", ModeClarification, "Vessel arrived at 14:30 and completed loading at 08:15 the next day"},
	}
	r := newRouter(t, nil, nil, nil)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reply := r.Respond(context.Background(), Query{Text: tt.text}, classified(maritime.CategoryLaytime))
			assert.Equal(t, tt.mode, reply.Mode)
			assert.Contains(t, reply.Text, tt.contains)
		})
	}
}

func TestLaytimeWithoutCalculateIsGenerative(t *testing.T) {
	fake := &llmtest.Fake{Response: "Laytime is the period allowed for loading."}
	r := newRouter(t, fake, nil, nil)

	reply := r.Respond(context.Background(), Query{Text: "What is laytime?"}, classified(maritime.CategoryLaytime))

	assert.Equal(t, ModeGenerative, reply.Mode)
	assert.Equal(t, "Laytime is the period allowed for loading.", reply.Text)
	assert.Equal(t, "fake", reply.Provider)
	assert.Len(t, fake.Calls(), 1)
}

func TestDistanceHandler(t *testing.T) {
	r := newRouter(t, nil, nil, nil)

	reply := r.Respond(context.Background(), Query{Text: "What's the distance from Hamburg to Singapore?"}, classified(maritime.CategoryDistance))
	assert.Equal(t, ModeCalculation, reply.Mode)
	assert.Contains(t, reply.Text, "**Distance Calculation: Hamburg ↔ Singapore**")
	assert.Contains(t, reply.Text, "• **Distance:** 8345 nautical miles")
	assert.Contains(t, reply.Text, "24.84 days")
	assert.Contains(t, reply.Text, "417.25 MT")
	assert.Contains(t, reply.Text, "Published sailing distance")

	reply = r.Respond(context.Background(), Query{Text: "distance from Dubai to Tokyo"}, classified(maritime.CategoryDistance))
	assert.Contains(t, reply.Text, "4282 nautical miles")
	assert.Contains(t, reply.Text, "Great circle distance calculation")
}

func TestDistanceUnknownPortsAreFlagged(t *testing.T) {
	reply := newRouter(t, nil, nil, nil).Respond(context.Background(),
		Query{Text: "distance from Piraeus to Atlantis"}, classified(maritime.CategoryDistance))

	assert.Equal(t, ModeCalculation, reply.Mode)
	assert.Contains(t, reply.Text, "5000 nautical miles")
	assert.Contains(t, reply.Text, "default 5000 NM placeholder")
	assert.Contains(t, reply.Text, "• **Europe:** Antwerp, Felixstowe, Gibraltar, Hamburg, Rotterdam")
	assert.Contains(t, reply.Text, "• **Middle East:** Dubai")
	assert.NotContains(t, reply.Text, "Voyage Planning Notes")
}

func TestDistanceClarification(t *testing.T) {
	r := newRouter(t, nil, nil, nil)
	for _, text := range []string{"How far is Singapore?", "distance from Hamburg to Hamburg"} {
		reply := r.Respond(context.Background(), Query{Text: text}, classified(maritime.CategoryDistance))
		assert.Equal(t, ModeClarification, reply.Mode, text)
		assert.Equal(t, distancePrompt, reply.Text)
	}
}

func TestWeatherHandler(t *testing.T) {
	w := &stubWeather{result: weather.Result{Condition: "Rain", TemperatureC: 9.5, WindSpeedKt: 27.3, VisibilityNM: 1.5}}
	reply := newRouter(t, nil, w, nil).Respond(context.Background(),
		Query{Text: "What's the weather in Hamburg?"}, classified(maritime.CategoryWeather))

	assert.Equal(t, []string{"Hamburg"}, w.asked)
	assert.Equal(t, ModeCalculation, reply.Mode)
	assert.Contains(t, reply.Text, "**Weather Conditions - Hamburg**")
	assert.Contains(t, reply.Text, "• **Wind Speed:** 27.3 knots")
	assert.Contains(t, reply.Text, "Suspend container operations: wind exceeds 25 knots. Delay pilot boarding: visibility below 2 NM")
	assert.Contains(t, reply.Text, "• Container operations: Suspended (limit: 25 knots)")
	assert.Contains(t, reply.Text, "• Bulk cargo loading: Weather hold advised")
	assert.Contains(t, reply.Text, "• Pilot boarding: Delayed (minimum: 2 NM visibility)")
}

func TestWeatherClarification(t *testing.T) {
	r := newRouter(t, nil, nil, nil)
	reply := r.Respond(context.Background(), Query{Text: "how is the weather"}, classified(maritime.CategoryWeather))
	assert.Equal(t, ModeClarification, reply.Mode)
	assert.Equal(t, weatherPrompt, reply.Text)

	w := &stubWeather{err: weather.ErrUnknownLocation}
	reply = newRouter(t, nil, w, nil).Respond(context.Background(), Query{Text: "weather in Piraeus"}, classified(maritime.CategoryWeather))
	assert.Equal(t, ModeClarification, reply.Mode)
	assert.Contains(t, reply.Text, `"Piraeus"`)
}

func TestClauseHandler(t *testing.T) {
	r := newRouter(t, nil, nil, nil)

	reply := r.Respond(context.Background(),
		Query{Text: "Interpret this clause: 'Laytime in weather working days, demurrage USD 15,000'"},
		classified(maritime.CategoryCPClause))
	assert.Equal(t, ModeCalculation, reply.Mode)
	assert.Contains(t, reply.Text, "**Clause Type:** Weather Working Days")
	assert.Contains(t, reply.Text, "• Clarify weather thresholds")
	assert.Contains(t, reply.Text, "**Legal Notes:**")

	reply = r.Respond(context.Background(), Query{Text: "explain this cp clause"}, classified(maritime.CategoryCPClause))
	assert.Equal(t, ModeClarification, reply.Mode)
	assert.Equal(t, clausePrompt, reply.Text)
}

func TestGenerativeUsesKnowledgeAndHistory(t *testing.T) {
	fake := &llmtest.Fake{Response: "Notice of Readiness is tendered by the master."}
	k := &stubKnowledge{snippets: []fallback.Snippet{{Title: "Notice of Readiness", Content: "NOR must be tendered..."}}}
	r := newRouter(t, fake, nil, k)

	history := []llm.Message{
		{Role: llm.RoleUser, Content: "hi"},
		{Role: llm.RoleAssistant, Content: "hello"},
	}
	reply := r.Respond(context.Background(), Query{Text: "When is NOR valid?", History: history}, classified(maritime.CategoryVoyageGuidance))

	assert.Equal(t, ModeGenerative, reply.Mode)
	assert.Equal(t, maritime.CategoryVoyageGuidance, k.category)

	calls := fake.Calls()
	require.Len(t, calls, 1)
	var joined []string
	for _, m := range calls[0].History {
		joined = append(joined, m.Content)
	}
	all := strings.Join(joined, "\n")
	assert.Contains(t, all, "- Notice of Readiness: NOR must be tendered...")
	assert.Contains(t, all, "hello")
}

func TestGenerativeSurvivesFailures(t *testing.T) {
	fake := &llmtest.Fake{Err: &llm.ProviderError{Provider: "openai", StatusCode: 429}}
	k := &stubKnowledge{err: errors.New("store down")}
	reply := newRouter(t, fake, nil, k).Respond(context.Background(), Query{Text: "hello"}, classified(maritime.CategoryGeneral))

	assert.Equal(t, ModeGenerative, reply.Mode)
	assert.Equal(t, fallback.RateLimitedMessage, reply.Text)
	assert.Equal(t, llm.KindRateLimited, reply.Failure)
}

func TestEveryCategoryHasHandler(t *testing.T) {
	r := newRouter(t, nil, nil, nil)
	for _, c := range maritime.Categories {
		assert.NotNil(t, r.handlers[c], c.String())
	}

	err := checkCoverage(map[maritime.Category]Handler{maritime.CategoryGeneral: r.handleGenerative})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "laytime")
}

func TestUnknownCategoryFallsBackToGeneral(t *testing.T) {
	reply := newRouter(t, nil, nil, nil).Respond(context.Background(), Query{Text: "hello"}, classified("piracy"))
	assert.Equal(t, ModeGenerative, reply.Mode)
	assert.Contains(t, reply.Text, "Maritime AI Assistant")
}

func TestNewRequiresDependencies(t *testing.T) {
	_, err := New(Deps{Generator: fallback.NewGenerator(nil, 0)})
	assert.Error(t, err)
	_, err = New(Deps{Weather: &stubWeather{}})
	assert.Error(t, err)
}
