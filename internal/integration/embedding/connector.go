package embedding

import (
	"context"
	"fmt"

	"github.com/futig/docqa/internal/config"
	"github.com/futig/docqa/internal/entity"
	"github.com/futig/docqa/internal/integration/common"
	pkgRetry "github.com/futig/docqa/internal/pkg/retry"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type Connector struct {
	config config.EmbeddingConnectorConfig
	client *openai.Client
}

func NewConnector(cfg config.EmbeddingConnectorConfig) *Connector {
	return &Connector{
		client: common.NewOpenAIClient(cfg.HTTPClientConfig),
		config: cfg,
	}
}

// Embed returns one vector per text in input order.
// Texts are sent in batches of BatchSize, up to MaxConcurrency batches at a time.
// The first failing batch cancels the others and fails the whole call.
func (c *Connector) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return [][]float32{}, nil
	}

	batchSize := max(c.config.BatchSize, 1)
	vectors := make([][]float32, len(texts))

	ctxzap.Debug(ctx, "embedding texts",
		zap.Int("text_count", len(texts)),
		zap.Int("batch_size", batchSize),
		zap.String("model", c.config.Model),
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(c.config.MaxConcurrency, 1))

	for start := 0; start < len(texts); start += batchSize {
		end := min(start+batchSize, len(texts))
		g.Go(func() error {
			batch, err := c.embedBatch(gctx, texts[start:end])
			if err != nil {
				return fmt.Errorf("batch [%d:%d]: %w", start, end, err)
			}
			copy(vectors[start:end], batch)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		ctxzap.Error(ctx, "failed to embed texts", zap.Error(err))
		return nil, fmt.Errorf("%w: %w", entity.ErrEmbeddingService, err)
	}

	dim := len(vectors[0])
	for i, v := range vectors {
		if len(v) != dim {
			return nil, fmt.Errorf("%w: vector %d has dimension %d, expected %d",
				entity.ErrEmbeddingService, i, len(v), dim)
		}
	}

	ctxzap.Debug(ctx, "texts embedded", zap.Int("dimension", dim))
	return vectors, nil
}

func (c *Connector) embedBatch(ctx context.Context, batch []string) ([][]float32, error) {
	onRetry := func(attempt uint, err error) {
		ctxzap.Warn(ctx, "embedding request failed, retrying",
			zap.Uint("attempt", attempt+1),
			zap.Int("batch_len", len(batch)),
			zap.Error(err),
		)
	}

	resp, err := pkgRetry.Do(ctx, &c.config.Retry, common.IsRetryable, onRetry,
		func(ctx context.Context) (openai.EmbeddingResponse, error) {
			return c.client.CreateEmbeddings(ctx, openai.EmbeddingRequest{
				Input: batch,
				Model: openai.EmbeddingModel(c.config.Model),
			})
		})
	if err != nil {
		return nil, err
	}

	if len(resp.Data) != len(batch) {
		return nil, fmt.Errorf("malformed response: %d embeddings for %d inputs", len(resp.Data), len(batch))
	}

	// the service may return items out of order; Index is authoritative
	out := make([][]float32, len(batch))
	for _, d := range resp.Data {
		if d.Index < 0 || d.Index >= len(batch) || out[d.Index] != nil {
			return nil, fmt.Errorf("malformed response: unexpected embedding index %d", d.Index)
		}
		if len(d.Embedding) == 0 {
			return nil, fmt.Errorf("malformed response: empty embedding at index %d", d.Index)
		}
		out[d.Index] = d.Embedding
	}

	return out, nil
}
