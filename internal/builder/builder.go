package builder

import (
	"fmt"
	"net/http"

	"github.com/futig/docqa/internal/api"
	ragapi "github.com/futig/docqa/internal/api/rag"
	"github.com/futig/docqa/internal/config"
	"github.com/futig/docqa/internal/index"
	"github.com/futig/docqa/internal/integration/embedding"
	"github.com/futig/docqa/internal/integration/llm"
	pkgLogger "github.com/futig/docqa/internal/pkg/logger"
	"github.com/futig/docqa/internal/pkg/validator"
	"github.com/futig/docqa/internal/usecase/rag"
	"go.uber.org/zap"
)

func Build() (*App, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	return BuildWithConfig(cfg)
}

// BuildWithConfig wires the application from an already loaded configuration
func BuildWithConfig(cfg *config.Config) (*App, error) {
	logger, err := pkgLogger.New(cfg.LogLevel, cfg.Environment)
	if err != nil {
		return nil, fmt.Errorf("setup logger: %w", err)
	}

	logger.Info("Building application",
		zap.String("environment", cfg.Environment),
		zap.String("server_addr", cfg.ServerAddr),
	)

	// Initialize external service connectors (with mock support)
	var embeddingConnector rag.EmbeddingConnector
	var llmConnector rag.LLMConnector

	if cfg.EnableMocks {
		logger.Info("Using mock connectors for external services")
		embeddingConnector = embedding.NewMockConnector(cfg.EmbeddingConnectorCfg.MockDimension)
		llmConnector = llm.NewMockConnector()
	} else {
		logger.Info("Using real connectors for external services",
			zap.String("embedding_model", cfg.EmbeddingConnectorCfg.Model),
			zap.String("llm_model", cfg.LLMConnectorCfg.Model),
		)
		embeddingConnector = embedding.NewConnector(cfg.EmbeddingConnectorCfg)
		llmConnector = llm.NewConnector(cfg.LLMConnectorCfg)
	}

	store := index.NewStore(cfg.RAGCfg.IndexTTL)
	ragValidator := validator.NewValidator(cfg.RAGCfg)

	ragUC := rag.NewUsecase(
		store,
		ragValidator,
		embeddingConnector,
		llmConnector,
		cfg.RAGCfg,
		logger,
	)
	logger.Info("Use cases initialized")

	ragHandler := ragapi.NewHandler(ragUC, cfg.RAGCfg, cfg.ServerMaxBodyBytes)

	router := api.SetupRouter(ragHandler, logger, cfg.ServerRequestTimeout)
	logger.Info("HTTP router configured")

	server := &http.Server{
		Addr:         cfg.ServerAddr,
		Handler:      router,
		ReadTimeout:  cfg.ServerReadTimeout,
		WriteTimeout: cfg.ServerWriteTimeout,
		IdleTimeout:  cfg.ServerIdleTimeout,
	}

	logger.Info("Application built successfully",
		zap.String("environment", cfg.Environment),
	)

	return &App{
		server:          server,
		shutdownTimeout: cfg.ShutdownTimeout,
		logger:          logger,
	}, nil
}
