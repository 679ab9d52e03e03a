// Package router turns a classified maritime query into a reply. Each
// category has one handler; calculation categories extract parameters and
// call the deterministic engines, everything else goes to the generative
// fallback.
package router

import (
	"context"
	"fmt"
	"strings"
	"time"

	"maritime-assistant-be/pkg/ai/classifier"
	"maritime-assistant-be/pkg/ai/fallback"
	"maritime-assistant-be/pkg/maritime"
	"maritime-assistant-be/pkg/maritime/weather"
)

const (
	logModule      = "ROUTER"
	knowledgeLimit = 5
)

type Deps struct {
	Weather   weather.Provider
	Generator *fallback.Generator
	Knowledge KnowledgeSource // optional
	Logger    Logger          // optional
	Now       func() time.Time
}

type Router struct {
	handlers  map[maritime.Category]Handler
	weather   weather.Provider
	generator *fallback.Generator
	knowledge KnowledgeSource
	logger    Logger
	now       func() time.Time
}

func New(deps Deps) (*Router, error) {
	if deps.Weather == nil {
		return nil, fmt.Errorf("router: weather provider is required")
	}
	if deps.Generator == nil {
		return nil, fmt.Errorf("router: generator is required")
	}

	r := &Router{
		weather:   deps.Weather,
		generator: deps.Generator,
		knowledge: deps.Knowledge,
		logger:    deps.Logger,
		now:       deps.Now,
	}
	if r.logger == nil {
		r.logger = nopLogger{}
	}
	if r.now == nil {
		r.now = time.Now
	}

	r.handlers = map[maritime.Category]Handler{
		maritime.CategoryLaytime:          r.handleLaytime,
		maritime.CategoryDistance:         r.handleDistance,
		maritime.CategoryWeather:          r.handleWeather,
		maritime.CategoryCPClause:         r.handleClause,
		maritime.CategoryGeneral:          r.handleGenerative,
		maritime.CategoryDocumentAnalysis: r.handleGenerative,
		maritime.CategoryVoyageGuidance:   r.handleGenerative,
	}
	if err := checkCoverage(r.handlers); err != nil {
		return nil, err
	}
	return r, nil
}

// checkCoverage fails when a category has no handler.
func checkCoverage(handlers map[maritime.Category]Handler) error {
	var missing []string
	for _, c := range maritime.Categories {
		if handlers[c] == nil {
			missing = append(missing, c.String())
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("router: no handler for %s", strings.Join(missing, ", "))
	}
	return nil
}

// Respond dispatches on the classification. Unknown categories are
// answered as general queries.
func (r *Router) Respond(ctx context.Context, q Query, c classifier.Classification) Reply {
	handler, ok := r.handlers[c.Category]
	if !ok {
		handler = r.handlers[maritime.CategoryGeneral]
	}

	reply := handler(ctx, q, c)
	r.logger.Info(logModule, "Query answered", map[string]interface{}{
		"category":   c.Category.String(),
		"confidence": c.Confidence,
		"handler":    reply.Handler,
		"mode":       string(reply.Mode),
	})
	return reply
}

func (r *Router) handleGenerative(ctx context.Context, q Query, c classifier.Classification) Reply {
	var snippets []fallback.Snippet
	if r.knowledge != nil {
		found, err := r.knowledge.Relevant(ctx, q.Text, c.Category, knowledgeLimit)
		if err != nil {
			r.logger.Warn(logModule, "Knowledge lookup failed", map[string]interface{}{"error": err.Error()})
		} else {
			snippets = found
		}
	}

	out := r.generator.Generate(ctx, q.Text, fallback.Context{
		Knowledge: snippets,
		Documents: q.Documents,
		History:   q.History,
	})
	if out.Err != nil {
		r.logger.Warn(logModule, "Generative answer degraded", map[string]interface{}{
			"kind":     out.Failure.String(),
			"provider": out.Provider,
			"error":    out.Err.Error(),
		})
	}
	return Reply{
		Text:     out.Text,
		Mode:     ModeGenerative,
		Handler:  "generative",
		Provider: out.Provider,
		Failure:  out.Failure,
	}
}
