package config

import (
	"strings"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("ENABLE_MOCKS", "true")

	cfg, err := Load("test-defaults")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Environment != "test-defaults" {
		t.Errorf("expected environment to be set, got %q", cfg.Environment)
	}
	if !cfg.EnableMocks {
		t.Error("expected mocks to be enabled")
	}
	if cfg.RAGCfg.DefaultChunkSize != 1024 || cfg.RAGCfg.DefaultChunkOverlap != 20 {
		t.Errorf("unexpected chunk defaults %d/%d", cfg.RAGCfg.DefaultChunkSize, cfg.RAGCfg.DefaultChunkOverlap)
	}
	if cfg.RAGCfg.DefaultTopK != 2 || cfg.RAGCfg.DefaultTemperature != 0.1 || cfg.RAGCfg.DefaultTopP != 1 {
		t.Errorf("unexpected generation defaults %+v", cfg.RAGCfg)
	}
	if cfg.EmbeddingConnectorCfg.Retry.Attempts != 3 {
		t.Errorf("expected 3 retry attempts, got %d", cfg.EmbeddingConnectorCfg.Retry.Attempts)
	}
	if cfg.LLMConnectorCfg.RequestTimeout != 60*time.Second {
		t.Errorf("expected 60s LLM timeout, got %v", cfg.LLMConnectorCfg.RequestTimeout)
	}
}

func TestLoad_PrefixedOverrides(t *testing.T) {
	t.Setenv("EMBEDDING_BATCH_SIZE", "16")
	t.Setenv("EMBEDDING_RETRY_ATTEMPTS", "5")
	t.Setenv("LLM_MODEL", "gpt-test")
	t.Setenv("RAG_INDEX_TTL", "10m")

	cfg, err := Load("test-overrides")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.EmbeddingConnectorCfg.BatchSize != 16 {
		t.Errorf("expected batch size 16, got %d", cfg.EmbeddingConnectorCfg.BatchSize)
	}
	if cfg.EmbeddingConnectorCfg.Retry.Attempts != 5 {
		t.Errorf("expected 5 attempts, got %d", cfg.EmbeddingConnectorCfg.Retry.Attempts)
	}
	if cfg.LLMConnectorCfg.Model != "gpt-test" {
		t.Errorf("expected model override, got %q", cfg.LLMConnectorCfg.Model)
	}
	if cfg.RAGCfg.IndexTTL != 10*time.Minute {
		t.Errorf("expected 10m ttl, got %v", cfg.RAGCfg.IndexTTL)
	}
}

func TestLoad_ValidationCollectsErrors(t *testing.T) {
	t.Setenv("RAG_DEFAULT_CHUNK_OVERLAP", "2000")
	t.Setenv("RAG_DEFAULT_TOP_P", "1.5")
	t.Setenv("EMBEDDING_MAX_CONCURRENCY", "0")

	_, err := Load("test-invalid")
	if err == nil {
		t.Fatal("expected validation error")
	}
	for _, name := range []string{"RAG_DEFAULT_CHUNK_OVERLAP", "RAG_DEFAULT_TOP_P", "EMBEDDING_MAX_CONCURRENCY"} {
		if !strings.Contains(err.Error(), name) {
			t.Errorf("expected error to mention %s: %v", name, err)
		}
	}
}

func TestGetEnvFile(t *testing.T) {
	cases := map[string]string{
		"prod":    ".env.prod",
		"local":   ".env.local",
		"dev":     ".env.local",
		"staging": ".env.staging",
	}
	for in, want := range cases {
		if got := getEnvFile(in); got != want {
			t.Errorf("getEnvFile(%q) = %q, want %q", in, got, want)
		}
	}
}
