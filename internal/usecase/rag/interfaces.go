package rag

import (
	"context"

	"github.com/futig/docqa/internal/entity"
)

type EmbeddingConnector interface {
	Embed(ctx context.Context, texts []string) ([][]float32, error)
}

type LLMConnector interface {
	Complete(ctx context.Context, prompt string, gen entity.GenerationConfig) (string, error)
}
