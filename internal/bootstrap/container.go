package bootstrap

import (
	"context"
	"log"
	"math/rand"
	"time"

	"maritime-assistant-be/internal/config"
	"maritime-assistant-be/internal/controller"
	"maritime-assistant-be/internal/pkg/logger"
	"maritime-assistant-be/internal/repository/memory"
	"maritime-assistant-be/internal/repository/unitofwork"
	"maritime-assistant-be/internal/service"
	"maritime-assistant-be/pkg/ai/classifier"
	"maritime-assistant-be/pkg/ai/fallback"
	"maritime-assistant-be/pkg/ai/router"
	"maritime-assistant-be/pkg/ai/summarizer"
	"maritime-assistant-be/pkg/cache"
	"maritime-assistant-be/pkg/llm"
	"maritime-assistant-be/pkg/llm/factory"
	"maritime-assistant-be/pkg/maritime/weather"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	MaritimeController     controller.IMaritimeController
	ConversationController controller.IConversationController
	DocumentController     controller.IDocumentController
	KnowledgeController    controller.IKnowledgeController
	AuthController         controller.IAuthController

	// Background services, started by Start
	ConsumerService  service.IConsumerService
	InboxService     service.IInboxService // nil when no inbox is configured
	KnowledgeService service.IKnowledgeService

	Logger logger.ILogger

	closers []func() error
}

// NewContainer wires every component. A nil db selects the in-memory store.
func NewContainer(ctx context.Context, db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core facades
	isProd := cfg.App.Environment == "production"
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, isProd)
	llmLogger := logger.NewIsolatedLogger(cfg.App.LLMLogFilePath)

	var uowFactory unitofwork.RepositoryFactory
	if db != nil {
		uowFactory = unitofwork.NewRepositoryFactory(db)
	} else {
		log.Println("[INFO] DB_CONNECTION_STRING not set, using in-memory store")
		uowFactory = unitofwork.NewMemoryRepositoryFactory(memory.NewStore())
	}

	c := &Container{Logger: sysLogger}
	c.closers = append(c.closers, llmLogger.Sync)

	// 2. Event bus
	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NewStdLogger(false, false))
	c.closers = append(c.closers, pubSub.Close)

	// 3. Weather: live lookups fall back to the simulated provider, results cached
	weatherProvider := c.newWeatherProvider(ctx, cfg)

	// 4. LLM provider, swappable at runtime
	newLLM := func(ctx context.Context, fc factory.Config) (llm.LLMProvider, error) {
		p, err := factory.NewLLMProvider(ctx, fc)
		if err != nil {
			return nil, err
		}
		return llm.WithCallLog(p, llmLogger), nil
	}
	defaults := service.ProviderDefaults{
		OpenAIBaseURL: cfg.Ai.OpenAIBaseURL,
		OllamaBaseURL: cfg.Ai.OllamaBaseURL,
		Timeout:       cfg.Ai.FallbackTimeout,
		MaxRetries:    cfg.Ai.MaxRetries,
		CloseGrace:    2 * cfg.Ai.FallbackTimeout,
	}
	baseURL := cfg.Ai.OpenAIBaseURL
	if cfg.Ai.LLMProvider == "ollama" {
		baseURL = cfg.Ai.OllamaBaseURL
	}
	provider, err := newLLM(ctx, factory.Config{
		Provider:   cfg.Ai.LLMProvider,
		APIKey:     cfg.APIKeyFor(cfg.Ai.LLMProvider),
		Model:      cfg.Ai.LLMModel,
		BaseURL:    baseURL,
		Timeout:    cfg.Ai.FallbackTimeout,
		MaxRetries: cfg.Ai.MaxRetries,
	})
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
	}
	if provider == nil {
		log.Printf("[INFO] No LLM provider configured (%s), answering with built-in tools only", cfg.Ai.LLMProvider)
	} else {
		log.Printf("[INFO] Using LLM Provider: %s (%s)", provider.Name(), cfg.Ai.LLMModel)
	}
	holder := llm.NewHolder(provider)
	c.closers = append(c.closers, func() error { return llm.Close(holder.Current()) })

	// 5. Services
	knowledgeService := service.NewKnowledgeService(uowFactory)
	queryClassifier := classifier.New(holder, cfg.Ai.ClassifierTimeout)
	generator := fallback.NewGenerator(holder, cfg.Ai.FallbackTimeout)
	responder, err := router.New(router.Deps{
		Weather:   weatherProvider,
		Generator: generator,
		Knowledge: knowledgeService,
		Logger:    sysLogger,
		Now:       time.Now,
	})
	if err != nil {
		log.Fatalf("[FATAL] Failed to build router: %v", err)
	}

	maritimeService := service.NewMaritimeService(weatherProvider, queryClassifier, generator, knowledgeService, holder, newLLM, defaults, sysLogger)
	conversationService := service.NewConversationService(uowFactory, queryClassifier, responder, sysLogger)
	publisherService := service.NewPublisherService(cfg.Ingest.Topic, pubSub)
	documentService := service.NewDocumentService(uowFactory, publisherService, cfg.App.UploadDir, sysLogger)
	authService := service.NewAuthService(uowFactory, cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)

	c.ConsumerService = service.NewConsumerService(
		pubSub,
		cfg.Ingest.Topic,
		uowFactory,
		summarizer.New(holder, cfg.Ai.FallbackTimeout),
		sysLogger,
	)
	if cfg.Ingest.InboxDir != "" {
		c.InboxService = service.NewInboxService(cfg.Ingest.InboxDir, documentService, sysLogger)
	}
	c.KnowledgeService = knowledgeService

	// 6. Controllers
	c.MaritimeController = controller.NewMaritimeController(maritimeService, sysLogger)
	c.ConversationController = controller.NewConversationController(conversationService)
	c.DocumentController = controller.NewDocumentController(documentService)
	c.KnowledgeController = controller.NewKnowledgeController(knowledgeService)
	c.AuthController = controller.NewAuthController(authService, cfg.Auth.JWTSecret)

	return c
}

func (c *Container) newWeatherProvider(ctx context.Context, cfg *config.Config) weather.Provider {
	simulated := weather.NewCannedProvider(rand.New(rand.NewSource(time.Now().UnixNano())))

	var provider weather.Provider = simulated
	if cfg.Cache.WeatherProvider == "open-meteo" {
		provider = &weather.FallbackProvider{
			Primary:   weather.NewOpenMeteoProvider(cfg.Cache.OpenMeteoURL, cfg.Cache.WeatherTimeout),
			Secondary: simulated,
		}
	}

	var store cache.Cache = cache.NewMemoryCache(cfg.Cache.WeatherTTL, 2*cfg.Cache.WeatherTTL)
	if cfg.Cache.RedisURL != "" {
		rdb, err := cache.NewRedisFromURL(ctx, cfg.Cache.RedisURL)
		if err != nil {
			log.Printf("[WARN] Failed to connect to Redis: %v. Using in-process cache", err)
		} else {
			store = cache.NewRedisCache(rdb, "maritime:")
			c.closers = append(c.closers, rdb.Close)
		}
	}

	return &weather.CachedProvider{Next: provider, Cache: store, TTL: cfg.Cache.WeatherTTL}
}

// Start seeds the knowledge base and launches the background consumers.
func (c *Container) Start(ctx context.Context) error {
	seeded, err := c.KnowledgeService.Seed(ctx)
	if err != nil {
		return err
	}
	if seeded > 0 {
		c.Logger.Info("BOOTSTRAP", "Knowledge base seeded", map[string]interface{}{"entries": seeded})
	}

	if err := c.ConsumerService.Consume(ctx); err != nil {
		return err
	}
	if c.InboxService != nil {
		if err := c.InboxService.Start(ctx); err != nil {
			return err
		}
	}
	return nil
}

// Close releases resources in reverse order of acquisition.
func (c *Container) Close() {
	for i := len(c.closers) - 1; i >= 0; i-- {
		if err := c.closers[i](); err != nil {
			log.Printf("[WARN] Shutdown: %v", err)
		}
	}
}
