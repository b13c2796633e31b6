package bootstrap

import (
	"context"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	gocache "github.com/patrickmn/go-cache"
	goredis "github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"shadowwork-be/internal/config"
	"shadowwork-be/internal/controller"
	"shadowwork-be/internal/pkg/logger"
	"shadowwork-be/internal/repository/contract"
	"shadowwork-be/internal/repository/implementation"
	"shadowwork-be/internal/repository/memory"
	redisrepo "shadowwork-be/internal/repository/redis"
	"shadowwork-be/internal/repository/unitofwork"
	"shadowwork-be/internal/service"
	"shadowwork-be/pkg/embedding"
	"shadowwork-be/pkg/llm/factory"
	"shadowwork-be/pkg/prompt"
	"shadowwork-be/pkg/retrieval"
	"shadowwork-be/pkg/signal"
	"shadowwork-be/pkg/stage"
)

type Container struct {
	// Controllers
	TurnController    controller.ITurnController
	ContentController controller.IContentController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService

	// ContentService is exposed so entrypoints can force an index refresh.
	ContentService service.IContentService

	Logger logger.ILogger
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")
	coreLogger := initCoreLogger()

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 3. Providers
	var embeddingProvider embedding.Provider
	switch cfg.Ai.EmbeddingProvider {
	case "ollama":
		embeddingProvider = embedding.NewOllamaProvider(cfg.Ai.OllamaBaseURL, cfg.Ai.EmbeddingModel)
		log.Printf("[INFO] Using Embedding Provider: OLLAMA (%s)", cfg.Ai.EmbeddingModel)
	case "stub":
		embeddingProvider = embedding.NewStubProvider(cfg.Dialogue.EmbeddingDim)
		log.Printf("[INFO] Using Embedding Provider: STUB (dim %d)", cfg.Dialogue.EmbeddingDim)
	default:
		embeddingProvider = embedding.NewOpenAIProvider(cfg.Keys.OpenAI, cfg.Ai.EmbeddingModel)
		log.Printf("[INFO] Using Embedding Provider: OPENAI (%s)", cfg.Ai.EmbeddingModel)
	}

	llmProvider, err := factory.NewLLMProvider(
		cfg.Ai.LLMProvider,
		cfg.Ai.LLMModel,
		cfg.Ai.OllamaBaseURL,
		cfg.Keys.OpenAI,
	)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
	}
	log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.LLMProvider, cfg.Ai.LLMModel)

	// 4. Dialogue Core
	detector := signal.NewDetectorWithConfig(signal.Config{
		DefaultLanguage: cfg.App.DefaultLanguage,
	})
	machine := stage.NewMachine(cfg.Dialogue.MaxShadowTurns, cfg.Dialogue.ReadinessThreshold, coreLogger)
	promptBuilder := prompt.NewBuilder(nil)

	// The engine starts on an empty index; RefreshIndex below fills it
	// from the database before the server accepts traffic.
	embedCache := gocache.New(cfg.Dialogue.EmbedCacheTTL, 10*time.Minute)
	emptyIndex := retrieval.NewIndex(cfg.Dialogue.EmbeddingDim, nil, coreLogger)
	engine := retrieval.NewEngine(emptyIndex, embeddingProvider, embedCache, cfg.Dialogue.RetrievalTimeout, coreLogger)

	// 5. Session Store
	sessionStore := newSessionStore(db, cfg, sysLogger)

	// 6. Services
	publisherService := service.NewPublisherService(pubSub, cfg.Keys.EmbedChunkTopic)
	contentService := service.NewContentService(
		uowFactory,
		publisherService,
		engine,
		cfg.Dialogue.EmbeddingDim,
		coreLogger,
	)
	consumerService := service.NewConsumerService(
		pubSub,
		cfg.Keys.EmbedChunkTopic,
		uowFactory,
		embeddingProvider,
		contentService,
		coreLogger,
	)
	turnService := service.NewTurnService(
		sessionStore,
		detector,
		machine,
		engine,
		promptBuilder,
		llmProvider,
		cfg.App.DefaultLanguage,
		cfg.Dialogue.GenerationTimeout,
	)

	if err := contentService.RefreshIndex(context.Background()); err != nil {
		sysLogger.Warn("bootstrap", "Initial index refresh failed; retrieval starts empty", map[string]interface{}{
			"error": err.Error(),
		})
	}

	// 7. Controllers
	return &Container{
		TurnController:    controller.NewTurnController(turnService),
		ContentController: controller.NewContentController(contentService),
		ConsumerService:   consumerService,
		ContentService:    contentService,
		Logger:            sysLogger,
	}
}

// newSessionStore picks the stage-state backend. Postgres is the durable
// default; redis suits multi-instance deployments that accept TTL-bound
// state; memory is for tests and single-node development.
func newSessionStore(db *gorm.DB, cfg *config.Config, sysLogger logger.ILogger) contract.SessionStateRepository {
	switch cfg.Session.Store {
	case "redis":
		opt, err := goredis.ParseURL(cfg.App.RedisURL)
		if err != nil {
			sysLogger.Warn("bootstrap", "Failed to parse Redis URL, using direct Addr", map[string]interface{}{
				"error": err.Error(),
			})
			opt = &goredis.Options{Addr: cfg.App.RedisURL}
		}
		rdb := goredis.NewClient(opt)
		if _, err := rdb.Ping(context.Background()).Result(); err != nil {
			sysLogger.Warn("bootstrap", "Redis ping failed", map[string]interface{}{
				"error": err.Error(),
			})
		}
		log.Println("[INFO] Using Session Store: REDIS")
		return redisrepo.NewSessionStateRepository(rdb, cfg.Session.TTL)
	case "memory":
		log.Println("[INFO] Using Session Store: MEMORY")
		return memory.NewSessionStateRepository(cfg.Session.TTL)
	default:
		log.Println("[INFO] Using Session Store: POSTGRES")
		return implementation.NewSessionStateRepository(db)
	}
}

func initCoreLogger() *log.Logger {
	logPath := filepath.Join("logs", "core.log")
	_ = os.MkdirAll(filepath.Dir(logPath), 0755)
	file, err := os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return log.New(os.Stdout, "[CORE] ", log.LstdFlags)
	}
	return log.New(file, "", log.LstdFlags)
}
