package bootstrap

import (
	"context"
	"log"
	"os"
	"path/filepath"
	"time"

	"sales-assistant-be/internal/config"
	"sales-assistant-be/internal/controller"
	"sales-assistant-be/internal/pkg/logger"
	"sales-assistant-be/internal/repository/memory"
	"sales-assistant-be/internal/repository/unitofwork"
	"sales-assistant-be/internal/service"
	"sales-assistant-be/pkg/embedding"
	"sales-assistant-be/pkg/llm/factory"
	pkgNats "sales-assistant-be/pkg/nats"
	"sales-assistant-be/pkg/rag/cache"
	"sales-assistant-be/pkg/rag/generate"
	"sales-assistant-be/pkg/rag/optimizer"
	"sales-assistant-be/pkg/rag/postprocess"
	"sales-assistant-be/pkg/rag/rerank"
	"sales-assistant-be/pkg/rag/retrieval"
	"sales-assistant-be/pkg/rag/routing"
	"sales-assistant-be/pkg/rag/usage"
	"sales-assistant-be/pkg/vector"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	AssistantController controller.IAssistantController
	DocumentController  controller.IDocumentController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService

	SysLogger logger.ILogger
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")
	ragLogger := initRagLogger(cfg.App.RagLogFilePath)

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// Embedding Provider
	var embeddingProvider embedding.EmbeddingProvider
	if cfg.Ai.EmbeddingProvider == "ollama" {
		embeddingProvider = embedding.NewOllamaProvider(
			cfg.Ai.OllamaBaseURL,
			cfg.Ai.EmbeddingModel,
		)
		log.Printf("[INFO] Using Embedding Provider: OLLAMA (%s)", cfg.Ai.EmbeddingModel)
	} else {
		embeddingProvider = embedding.NewOpenAIProvider(cfg.Keys.OpenAI, cfg.Ai.EmbeddingModel)
		log.Printf("[INFO] Using Embedding Provider: OPENAI (%s)", cfg.Ai.EmbeddingModel)
	}

	// LLM Providers (primary + fallback)
	providerCfg := factory.ProviderConfig{
		AnthropicAPIKey: cfg.Keys.Anthropic,
		AnthropicModel:  cfg.Ai.AnthropicModel,
		OpenAIAPIKey:    cfg.Keys.OpenAI,
		OpenAIModel:     cfg.Ai.OpenAIModel,
		OllamaBaseURL:   cfg.Ai.OllamaBaseURL,
	}
	primaryProvider, secondaryProvider := factory.ResolveProviders(cfg.Ai.PrimaryProvider, providerCfg)
	if primaryProvider == nil && secondaryProvider == nil {
		log.Printf("[WARN] No LLM provider configured, assistant requests will fail")
	}

	// 2.5 Infrastructure
	// NATS (auxiliary event stream, missing broker is not fatal)
	var natsPub *pkgNats.Publisher
	var natsSub *pkgNats.Subscriber
	if cfg.App.NatsURL != "" {
		var err error
		natsPub, err = pkgNats.NewPublisher(cfg.App.NatsURL)
		if err != nil {
			log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
			natsPub = nil
		}
		natsSub, err = pkgNats.NewSubscriber(cfg.App.NatsURL)
		if err != nil {
			log.Printf("[WARN] Failed to connect to NATS Subscriber: %v", err)
			natsSub = nil
		}
	}

	// Redis backs the fast-response store when available; the in-memory
	// variant is the fallback.
	var fastResponses memory.FastResponseRepository
	if cfg.App.RedisURL != "" {
		opt, err := redis.ParseURL(cfg.App.RedisURL)
		if err != nil {
			log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
			opt = &redis.Options{
				Addr: cfg.App.RedisURL,
			}
		}
		rdb := redis.NewClient(opt)
		if _, err := rdb.Ping(context.Background()).Result(); err != nil {
			log.Printf("[WARN] Failed to connect to Redis: %v", err)
		} else {
			fastResponses = memory.NewFastResponseRepositoryRedis(rdb)
		}
	}
	if fastResponses == nil {
		fastResponses = memory.NewFastResponseRepository()
	}
	if err := memory.SeedFastResponses(context.Background(), fastResponses); err != nil {
		log.Printf("[WARN] Failed to seed fast responses: %v", err)
	}

	// 3. Retrieval Pipeline
	resultCache := cache.NewResultCache(
		cfg.Rag.CacheMaxSize,
		time.Duration(cfg.Rag.CacheTTLHours)*time.Hour,
		ragLogger,
	)
	classifier := routing.NewClassifier()
	folderRouter := routing.NewRouter(classifier, uowFactory, ragLogger)

	vectorIndex := vector.NewPgVectorIndex(db, uowFactory, embeddingProvider, cfg.Rag.VectorThreshold, ragLogger)
	retriever := retrieval.NewMultiSourceRetriever(
		vectorIndex,
		service.NewFaqSearchAdapter(uowFactory),
		service.NewChunkSearchAdapter(uowFactory),
		optimizer.NewQueryOptimizer(),
		time.Duration(cfg.Rag.SearchTimeoutSec)*time.Second,
		ragLogger,
	)

	reranker, err := rerank.NewReranker(rerank.Weights{
		Original:   cfg.Rag.WeightOriginal,
		Title:      cfg.Rag.WeightTitle,
		Content:    cfg.Rag.WeightContent,
		Freshness:  cfg.Rag.WeightFreshness,
		Popularity: cfg.Rag.WeightPopularity,
		Context:    cfg.Rag.WeightContext,
	}, ragLogger)
	if err != nil {
		log.Fatalf("[FATAL] Invalid reranker weights: %v", err)
	}

	usageTracker := usage.NewTracker(uowFactory, natsPub, ragLogger)
	invoker := generate.NewInvoker(
		primaryProvider,
		secondaryProvider,
		usageTracker,
		time.Duration(cfg.Ai.RequestTimeoutSec)*time.Second,
		ragLogger,
	)
	processor := postprocess.NewProcessor()

	// 4. Services
	publisherService := service.NewPublisherService(cfg.Rag.IngestTopicName, pubSub)
	consumerService := service.NewConsumerService(
		pubSub,
		cfg.Rag.IngestTopicName,
		uowFactory,
		embeddingProvider,
	)

	assistantService := service.NewAssistantService(
		uowFactory,
		fastResponses,
		resultCache,
		classifier,
		folderRouter,
		retriever,
		reranker,
		invoker,
		processor,
		cfg.Rag.SimilarityThreshold,
		cfg.Rag.RetrievalLimit,
		cfg.Rag.ContextTopK,
		ragLogger,
	)
	documentService := service.NewDocumentService(uowFactory, publisherService, natsPub)

	if natsSub != nil {
		usageMonitor := service.NewUsageMonitorService(natsSub, sysLogger)
		if err := usageMonitor.Start(); err != nil {
			log.Printf("[WARN] Failed to start usage monitor: %v", err)
		}
	}

	sysLogger.Info("bootstrap", "Container initialized", map[string]interface{}{
		"llm_primary":        cfg.Ai.PrimaryProvider,
		"embedding_provider": cfg.Ai.EmbeddingProvider,
		"cache_max_size":     cfg.Rag.CacheMaxSize,
	})

	return &Container{
		AssistantController: controller.NewAssistantController(assistantService),
		DocumentController:  controller.NewDocumentController(documentService),

		ConsumerService: consumerService,
		SysLogger:       sysLogger,
	}
}

func initRagLogger(logPath string) *log.Logger {
	if err := os.MkdirAll(filepath.Dir(logPath), 0755); err != nil {
		log.Printf("Failed to create logs directory: %v", err)
	}
	file, err := os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return log.New(os.Stdout, "[RAG] ", log.LstdFlags)
	}
	return log.New(file, "", log.LstdFlags)
}
