package service

import (
	"context"
	"math/rand"
	"testing"
	"time"

	"maritime-assistant-be/internal/pkg/logger"
	"maritime-assistant-be/internal/repository/memory"
	"maritime-assistant-be/internal/repository/unitofwork"
	"maritime-assistant-be/pkg/ai/classifier"
	"maritime-assistant-be/pkg/ai/fallback"
	"maritime-assistant-be/pkg/ai/router"
	"maritime-assistant-be/pkg/llm"
	"maritime-assistant-be/pkg/maritime/weather"

	"github.com/stretchr/testify/require"
)

type harness struct {
	weather    weather.Provider
	factory    unitofwork.RepositoryFactory
	holder     *llm.Holder
	classifier *classifier.Classifier
	router     *router.Router
	knowledge  IKnowledgeService
	log        logger.ILogger
}

func newHarness(t *testing.T, provider llm.LLMProvider) *harness {
	t.Helper()
	factory := unitofwork.NewMemoryRepositoryFactory(memory.NewStore())
	holder := llm.NewHolder(provider)
	knowledge := NewKnowledgeService(factory)

	w := weather.NewCannedProvider(rand.New(rand.NewSource(7)))
	r, err := router.New(router.Deps{
		Weather:   w,
		Generator: fallback.NewGenerator(holder, time.Second),
		Knowledge: knowledge,
		Now:       func() time.Time { return time.Date(2024, 3, 14, 9, 0, 0, 0, time.UTC) },
	})
	require.NoError(t, err)

	return &harness{
		weather:    w,
		factory:    factory,
		holder:     holder,
		classifier: classifier.New(holder, time.Second),
		router:     r,
		knowledge:  knowledge,
		log:        logger.NewNopLogger(),
	}
}

func (h *harness) conversations() IConversationService {
	return NewConversationService(h.factory, h.classifier, h.router, h.log)
}

func weatherFor(h *harness) weather.Provider {
	return h.weather
}

func ctx() context.Context {
	return context.Background()
}
