package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"maritime-assistant-be/internal/dto"
	"maritime-assistant-be/internal/pkg/logger"
	"maritime-assistant-be/pkg/ai/classifier"
	"maritime-assistant-be/pkg/ai/fallback"
	"maritime-assistant-be/pkg/ai/router"
	"maritime-assistant-be/pkg/llm"
	"maritime-assistant-be/pkg/llm/factory"
	"maritime-assistant-be/pkg/maritime"
	"maritime-assistant-be/pkg/maritime/weather"
)

// QueryClassifier and Responder are satisfied by *classifier.Classifier and
// *router.Router.
type QueryClassifier interface {
	Classify(ctx context.Context, text string) classifier.Classification
}

type Responder interface {
	Respond(ctx context.Context, q router.Query, c classifier.Classification) router.Reply
}

type IMaritimeService interface {
	Weather(ctx context.Context, req *dto.WeatherRequest) (weather.Result, error)
	Laytime(ctx context.Context, req *dto.LaytimeRequest) (maritime.LaytimeResult, error)
	Distance(ctx context.Context, req *dto.DistanceRequest) (maritime.DistanceResult, error)
	Clause(ctx context.Context, req *dto.ClauseRequest) maritime.ClauseInterpretation
	Route(ctx context.Context, req *dto.RouteRequest) (maritime.RouteResult, error)
	Chat(ctx context.Context, req *dto.AIChatRequest) (*dto.AIChatResponse, error)
	Classify(ctx context.Context, req *dto.ClassifyRequest) classifier.Classification
	ConfigureAI(ctx context.Context, req *dto.ConfigureAIRequest) (*dto.ConfigureAIResponse, error)
	Ports() *dto.PortResponse
}

const chatKnowledgeLimit = 5

// ProviderFactory builds an LLM provider; factory.NewLLMProvider in production.
type ProviderFactory func(ctx context.Context, cfg factory.Config) (llm.LLMProvider, error)

// ProviderDefaults fills in what a configure-ai request leaves out.
type ProviderDefaults struct {
	OpenAIBaseURL string
	OllamaBaseURL string
	Timeout       time.Duration
	MaxRetries    int
	// CloseGrace is how long a displaced provider stays open for calls that
	// already loaded it. Defaults to a minute.
	CloseGrace time.Duration
}

type maritimeService struct {
	weather    weather.Provider
	classifier QueryClassifier
	generator  *fallback.Generator
	knowledge  router.KnowledgeSource
	holder     *llm.Holder
	newLLM     ProviderFactory
	defaults   ProviderDefaults
	logger     logger.ILogger
}

// knowledge may be nil.
func NewMaritimeService(
	weatherProvider weather.Provider,
	queryClassifier QueryClassifier,
	generator *fallback.Generator,
	knowledge router.KnowledgeSource,
	holder *llm.Holder,
	newLLM ProviderFactory,
	defaults ProviderDefaults,
	log logger.ILogger,
) IMaritimeService {
	if newLLM == nil {
		newLLM = factory.NewLLMProvider
	}
	return &maritimeService{
		weather:    weatherProvider,
		classifier: queryClassifier,
		generator:  generator,
		knowledge:  knowledge,
		holder:     holder,
		newLLM:     newLLM,
		defaults:   defaults,
		logger:     log,
	}
}

func (s *maritimeService) Weather(ctx context.Context, req *dto.WeatherRequest) (weather.Result, error) {
	return s.weather.Lookup(ctx, req.Location)
}

var timeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
}

// ParseTimestamp reads RFC 3339 or a zone-less local form, taken as UTC.
func ParseTimestamp(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidTime, value)
}

func (s *maritimeService) Laytime(_ context.Context, req *dto.LaytimeRequest) (maritime.LaytimeResult, error) {
	arrival, err := ParseTimestamp(req.ArrivalTime)
	if err != nil {
		return maritime.LaytimeResult{}, err
	}
	completion, err := ParseTimestamp(req.CompletionTime)
	if err != nil {
		return maritime.LaytimeResult{}, err
	}

	opts := maritime.LaytimeOptions{ExcludeWeekends: req.ExcludeWeekends}
	for _, h := range req.Holidays {
		day, err := time.Parse("2006-01-02", strings.TrimSpace(h))
		if err != nil {
			return maritime.LaytimeResult{}, fmt.Errorf("%w: holiday %q", ErrInvalidTime, h)
		}
		opts.ExcludeHolidays = append(opts.ExcludeHolidays, day)
	}
	return maritime.CalculateLaytime(arrival, completion, opts)
}

func (s *maritimeService) Distance(_ context.Context, req *dto.DistanceRequest) (maritime.DistanceResult, error) {
	result, err := maritime.Distance(req.FromPort, req.ToPort)
	if err != nil {
		return result, err
	}
	if result.LowConfidence {
		s.logger.Warn("MARITIME", "Distance fell back to default", map[string]interface{}{
			"from": req.FromPort,
			"to":   req.ToPort,
		})
	}
	return result, nil
}

func (s *maritimeService) Clause(_ context.Context, req *dto.ClauseRequest) maritime.ClauseInterpretation {
	return maritime.InterpretClause(req.ClauseText)
}

func (s *maritimeService) Route(_ context.Context, req *dto.RouteRequest) (maritime.RouteResult, error) {
	return maritime.RouteBetween(*req.SourcePort, *req.DestinationPort)
}

// Chat answers straight from the LLM with inline knowledge and the caller's
// history. Tool dispatch is left to conversations.
func (s *maritimeService) Chat(ctx context.Context, req *dto.AIChatRequest) (*dto.AIChatResponse, error) {
	var c fallback.Context
	if req.Context != nil {
		for _, turn := range req.Context.History {
			c.History = append(c.History, llm.Message{Role: turn.Role, Content: turn.Content})
		}
	}
	if s.knowledge != nil {
		snippets, err := s.knowledge.Relevant(ctx, req.Message, maritime.CategoryGeneral, chatKnowledgeLimit)
		if err != nil {
			s.logger.Warn("MARITIME", "Knowledge lookup failed", map[string]interface{}{"error": err.Error()})
		} else {
			c.Knowledge = snippets
		}
	}

	out := s.generator.Generate(ctx, req.Message, c)
	if out.Err != nil {
		s.logger.Warn("MARITIME", "AI chat degraded", map[string]interface{}{
			"kind":     out.Failure.String(),
			"provider": out.Provider,
			"error":    out.Err.Error(),
		})
	}
	return &dto.AIChatResponse{Response: out.Text, Provider: out.Provider}, nil
}

func (s *maritimeService) Classify(ctx context.Context, req *dto.ClassifyRequest) classifier.Classification {
	return s.classifier.Classify(ctx, req.Text)
}

// ConfigureAI builds the requested provider and swaps it in. Requests already
// running keep the provider they started with.
func (s *maritimeService) ConfigureAI(ctx context.Context, req *dto.ConfigureAIRequest) (*dto.ConfigureAIResponse, error) {
	name := strings.ToLower(req.Provider)
	if (name == "openai" || name == "gemini") && strings.TrimSpace(req.ApiKey) == "" {
		return nil, ErrAPIKeyMissing
	}

	cfg := factory.Config{
		Provider:   name,
		APIKey:     strings.TrimSpace(req.ApiKey),
		Model:      req.Model,
		Timeout:    s.defaults.Timeout,
		MaxRetries: s.defaults.MaxRetries,
	}
	switch name {
	case "openai":
		cfg.BaseURL = s.defaults.OpenAIBaseURL
	case "ollama":
		cfg.BaseURL = s.defaults.OllamaBaseURL
	}

	provider, err := s.newLLM(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("configure %s: %w", name, err)
	}
	s.retire(s.holder.Replace(provider))

	active := "none"
	if provider != nil {
		active = provider.Name()
	}
	s.logger.Info("MARITIME", "LLM provider reconfigured", map[string]interface{}{
		"provider": active,
		"model":    req.Model,
	})
	return &dto.ConfigureAIResponse{Message: "AI service configured successfully", Provider: active}, nil
}

// retire closes a displaced provider once in-flight calls have had time to
// finish with it.
func (s *maritimeService) retire(old llm.LLMProvider) {
	if old == nil {
		return
	}
	grace := s.defaults.CloseGrace
	if grace <= 0 {
		grace = time.Minute
	}
	time.AfterFunc(grace, func() {
		if err := llm.Close(old); err != nil {
			s.logger.Warn("MARITIME", "Failed to close displaced LLM provider", map[string]interface{}{
				"provider": old.Name(),
				"error":    err.Error(),
			})
		}
	})
}

func (s *maritimeService) Ports() *dto.PortResponse {
	return &dto.PortResponse{Ports: maritime.Ports(), Regions: maritime.CoveredRegions()}
}

// IsInputError reports errors caused by the request rather than the server.
func IsInputError(err error) bool {
	for _, target := range []error{
		ErrInvalidTime,
		maritime.ErrInvalidInterval,
		maritime.ErrInvalidCoordinate,
		maritime.ErrEmptyPort,
		maritime.ErrSamePort,
		weather.ErrEmptyLocation,
		ErrAPIKeyMissing,
		factory.ErrUnsupportedProvider,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
