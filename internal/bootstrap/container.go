package bootstrap

import (
	"log"

	"growthboss-ai-be/internal/config"
	"growthboss-ai-be/internal/controller"
	"growthboss-ai-be/internal/pkg/logger"
	"growthboss-ai-be/internal/repository/implementation"
	"growthboss-ai-be/internal/repository/memory"
	"growthboss-ai-be/internal/repository/unitofwork"
	"growthboss-ai-be/internal/service"
	"growthboss-ai-be/pkg/agents"
	"growthboss-ai-be/pkg/analytics"
	"growthboss-ai-be/pkg/embedding"
	"growthboss-ai-be/pkg/llm/factory"
	pktNats "growthboss-ai-be/pkg/nats"
	"growthboss-ai-be/pkg/rag/retrieval"
	"growthboss-ai-be/pkg/rag/vectorstore"

	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	AssistantController controller.IAssistantController
	SessionController   controller.ISessionController

	// Services (exposed for the CLI entrypoints)
	ResearchService service.IResearchService
	CouncilService  service.ICouncilService
	BriefService    service.IBriefService

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService

	// Shared infrastructure main.go must close on shutdown
	NatsPublisher *pktNats.Publisher
	Logger        logger.ILogger

	// Exposed for the ingest CLI
	VectorStore *vectorstore.Store
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// 2. AI Providers
	embeddingProvider, err := embedding.NewEmbeddingProvider(
		cfg.Ai.EmbeddingProvider,
		cfg.Ai.EmbeddingModel,
		cfg.Ai.OpenAIAPIKey,
		cfg.Ai.OllamaBaseURL,
	)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize Embedding Provider: %v", err)
	}
	log.Printf("[INFO] Using Embedding Provider: %s (%s)", cfg.Ai.EmbeddingProvider, cfg.Ai.EmbeddingModel)

	llmProvider, err := factory.NewLLMProvider(
		cfg.Ai.LLMProvider,
		cfg.Ai.LLMModel,
		cfg.Ai.OpenAIAPIKey,
		cfg.Ai.OllamaBaseURL,
	)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
	}
	log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.LLMProvider, cfg.Ai.LLMModel)

	// 3. Retrieval Core
	chunkRepo := implementation.NewChunkRepository(db)
	store := vectorstore.NewStore(embeddingProvider, chunkRepo, chunkRepo)
	retriever := retrieval.NewHybridRetriever(store, llmProvider, retrieval.Config{
		UseExpansion: cfg.Retrieval.UseExpansion,
		UseKeyword:   cfg.Retrieval.UseKeyword,
		UseRerank:    cfg.Retrieval.UseRerank,
	}, sysLogger)

	// 4. Event Bus + Analytics
	pubSub := analytics.NewPubSub()
	tracker := analytics.NewTracker(pubSub, sysLogger)
	consumerService := service.NewConsumerService(pubSub, uowFactory)

	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
		natsPub = nil
	}

	// 5. Conversation Memory
	exchangeCache := memory.NewExchangeCache()
	memoryService := service.NewMemoryService(uowFactory, exchangeCache)

	// 6. Agents
	researcher := agents.NewResearcher(retriever, llmProvider, memoryService, tracker)
	council := agents.NewCouncil(store, llmProvider, cfg.Retrieval.CouncilK)
	synthesizer := agents.NewSynthesizer(llmProvider)
	critic := agents.NewCritic(llmProvider)

	// 7. Services
	researchService := service.NewResearchService(uowFactory, researcher, natsPub, cfg.Retrieval.TopK, sysLogger)
	councilService := service.NewCouncilService(council, natsPub, sysLogger)
	briefService := service.NewBriefService(uowFactory, researcher, synthesizer, critic, natsPub, cfg.Retrieval.TopK, sysLogger)
	analyticsService := service.NewAnalyticsService(uowFactory)
	sessionService := service.NewSessionService(uowFactory, memoryService)

	// 8. Controllers
	assistantController := controller.NewAssistantController(researchService, councilService, briefService, analyticsService)
	sessionController := controller.NewSessionController(sessionService)

	return &Container{
		AssistantController: assistantController,
		SessionController:   sessionController,
		ResearchService:     researchService,
		CouncilService:      councilService,
		BriefService:        briefService,
		ConsumerService:     consumerService,
		NatsPublisher:       natsPub,
		Logger:              sysLogger,
		VectorStore:         store,
	}
}
