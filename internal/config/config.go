package config

import (
	"flag"
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	pkgRetry "github.com/futig/docqa/internal/pkg/retry"
	"github.com/joho/godotenv"
)

// Config holds the application configuration
type Config struct {
	// Server configuration
	ServerAddr         string        `env:"SERVER_ADDR" envDefault:":8080"`
	ServerReadTimeout  time.Duration `env:"SERVER_READ_TIMEOUT" envDefault:"15s"`
	ServerWriteTimeout time.Duration `env:"SERVER_WRITE_TIMEOUT" envDefault:"3m"`
	ServerIdleTimeout  time.Duration `env:"SERVER_IDLE_TIMEOUT" envDefault:"60s"`
	ShutdownTimeout    time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"30s"`
	// Upper bound for a whole request, including a build or a query
	ServerRequestTimeout time.Duration `env:"SERVER_REQUEST_TIMEOUT" envDefault:"150s"`
	// Inline nodes travel with every query, so bodies can be large
	ServerMaxBodyBytes int64 `env:"SERVER_MAX_BODY_BYTES" envDefault:"67108864"`

	// External service configurations
	EmbeddingConnectorCfg EmbeddingConnectorConfig `envPrefix:"EMBEDDING_"`
	LLMConnectorCfg       LLMConnectorConfig       `envPrefix:"LLM_"`

	// Pipeline configuration
	RAGCfg RAGConfig `envPrefix:"RAG_"`

	// Logging configuration
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	// Mock configuration
	EnableMocks bool `env:"ENABLE_MOCKS" envDefault:"false"`

	// Environment (set from flag, not from env var)
	Environment string
}

type EmbeddingConnectorConfig struct {
	HTTPClientConfig
	Model          string               `env:"MODEL" envDefault:"text-embedding-3-small"`
	BatchSize      int                  `env:"BATCH_SIZE" envDefault:"64"`
	MaxConcurrency int                  `env:"MAX_CONCURRENCY" envDefault:"4"`
	MockDimension  int                  `env:"MOCK_DIMENSION" envDefault:"256"`
	Retry          pkgRetry.RetryConfig `envPrefix:"RETRY_"`
}

type LLMConnectorConfig struct {
	HTTPClientConfig
	Model     string               `env:"MODEL" envDefault:"gpt-4o-mini"`
	MaxTokens int                  `env:"MAX_TOKENS" envDefault:"1024"`
	Retry     pkgRetry.RetryConfig `envPrefix:"RETRY_"`
}

type HTTPClientConfig struct {
	RequestTimeout        time.Duration `env:"TIMEOUT" envDefault:"60s"`
	ConnTimeout           time.Duration `env:"CONN_TIMEOUT" envDefault:"10s"`
	KeepAlive             time.Duration `env:"KEEP_ALIVE" envDefault:"90s"`
	IdleConnTimeout       time.Duration `env:"IDLE_CONN_TIMEOUT" envDefault:"90s"`
	ResponseHeaderTimeout time.Duration `env:"RESPONSE_HEADER_TIMEOUT" envDefault:"60s"`
	MaxConnsPerHost       int           `env:"MAX_CONNS_PER_HOST" envDefault:"10"`
	Token                 string        `env:"TOKEN"`
	Url                   string        `env:"SERVICE_URL" envDefault:"https://api.openai.com/v1"`
}

// RAGConfig holds pipeline defaults and limits
type RAGConfig struct {
	DefaultChunkSize    int           `env:"DEFAULT_CHUNK_SIZE" envDefault:"1024"`
	DefaultChunkOverlap int           `env:"DEFAULT_CHUNK_OVERLAP" envDefault:"20"`
	DefaultTopK         int           `env:"DEFAULT_TOP_K" envDefault:"2"`
	DefaultTemperature  float64       `env:"DEFAULT_TEMPERATURE" envDefault:"0.1"`
	DefaultTopP         float64       `env:"DEFAULT_TOP_P" envDefault:"1"`
	MaxChunkSize        int           `env:"MAX_CHUNK_SIZE" envDefault:"3000"`
	MaxDocumentBytes    int           `env:"MAX_DOCUMENT_BYTES" envDefault:"10485760"`
	IndexTTL            time.Duration `env:"INDEX_TTL" envDefault:"1h"`
	BuildTimeout        time.Duration `env:"BUILD_TIMEOUT" envDefault:"2m"`
	QueryTimeout        time.Duration `env:"QUERY_TIMEOUT" envDefault:"1m"`
}

func LoadConfig() (*Config, error) {
	envFlag := flag.String("env", "local", "Environment to run (local, prod, or custom)")
	flag.Parse()

	return Load(*envFlag)
}

// Load reads .env.<environment> if present, then the process environment
func Load(environment string) (*Config, error) {
	envFile := getEnvFile(environment)
	// Try to load env file, but don't fail if it's missing.
	// In containerized/prod environments variables are usually set externally.
	if err := godotenv.Load(envFile); err != nil {
		fmt.Printf("Warning: could not load %s file (this is ok if env vars are set externally): %v\n", envFile, err)
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}

	cfg.Environment = environment

	// Validate configuration
	if err := validateConfig(cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

func validateConfig(cfg *Config) error {
	var errors []string

	rag := cfg.RAGCfg
	if rag.MaxChunkSize < 1 {
		errors = append(errors, fmt.Sprintf("RAG_MAX_CHUNK_SIZE must be positive, got %d", rag.MaxChunkSize))
	}
	if rag.DefaultChunkSize < 1 || rag.DefaultChunkSize > rag.MaxChunkSize {
		errors = append(errors, fmt.Sprintf("RAG_DEFAULT_CHUNK_SIZE must be between 1 and %d, got %d", rag.MaxChunkSize, rag.DefaultChunkSize))
	}
	if rag.DefaultChunkOverlap < 0 || rag.DefaultChunkOverlap >= rag.DefaultChunkSize {
		errors = append(errors, fmt.Sprintf("RAG_DEFAULT_CHUNK_OVERLAP must be between 0 and RAG_DEFAULT_CHUNK_SIZE-1, got %d", rag.DefaultChunkOverlap))
	}
	if rag.DefaultTopK < 1 {
		errors = append(errors, fmt.Sprintf("RAG_DEFAULT_TOP_K must be at least 1, got %d", rag.DefaultTopK))
	}
	if rag.DefaultTemperature < 0 || rag.DefaultTemperature > 1 {
		errors = append(errors, fmt.Sprintf("RAG_DEFAULT_TEMPERATURE must be between 0 and 1, got %g", rag.DefaultTemperature))
	}
	if rag.DefaultTopP < 0 || rag.DefaultTopP > 1 {
		errors = append(errors, fmt.Sprintf("RAG_DEFAULT_TOP_P must be between 0 and 1, got %g", rag.DefaultTopP))
	}
	if rag.MaxDocumentBytes < 1 {
		errors = append(errors, fmt.Sprintf("RAG_MAX_DOCUMENT_BYTES must be positive, got %d", rag.MaxDocumentBytes))
	}
	if rag.IndexTTL <= 0 {
		errors = append(errors, fmt.Sprintf("RAG_INDEX_TTL must be positive, got %s", rag.IndexTTL))
	}

	if rag.BuildTimeout <= 0 || rag.QueryTimeout <= 0 {
		errors = append(errors, fmt.Sprintf("RAG_BUILD_TIMEOUT and RAG_QUERY_TIMEOUT must be positive, got %s and %s", rag.BuildTimeout, rag.QueryTimeout))
	}
	if cfg.ServerMaxBodyBytes < 1 {
		errors = append(errors, fmt.Sprintf("SERVER_MAX_BODY_BYTES must be positive, got %d", cfg.ServerMaxBodyBytes))
	}

	emb := cfg.EmbeddingConnectorCfg
	if emb.BatchSize < 1 || emb.BatchSize > 2048 {
		errors = append(errors, fmt.Sprintf("EMBEDDING_BATCH_SIZE must be between 1 and 2048, got %d", emb.BatchSize))
	}
	if emb.MaxConcurrency < 1 || emb.MaxConcurrency > 64 {
		errors = append(errors, fmt.Sprintf("EMBEDDING_MAX_CONCURRENCY must be between 1 and 64, got %d", emb.MaxConcurrency))
	}
	if cfg.EnableMocks && emb.MockDimension < 1 {
		errors = append(errors, fmt.Sprintf("EMBEDDING_MOCK_DIMENSION must be positive, got %d", emb.MockDimension))
	}

	if !cfg.EnableMocks {
		if emb.Url == "" {
			errors = append(errors, "EMBEDDING_SERVICE_URL is required when mocks are disabled")
		}
		if cfg.LLMConnectorCfg.Url == "" {
			errors = append(errors, "LLM_SERVICE_URL is required when mocks are disabled")
		}
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation errors:\n  - %s", strings.Join(errors, "\n  - "))
	}

	return nil
}

func getEnvFile(environment string) string {
	switch environment {
	case "prod", "production":
		return ".env.prod"
	case "local", "dev", "development":
		return ".env.local"
	default:
		return fmt.Sprintf(".env.%s", environment)
	}
}
