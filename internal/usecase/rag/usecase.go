package rag

import (
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/futig/docqa/internal/answer"
	"github.com/futig/docqa/internal/chunker"
	"github.com/futig/docqa/internal/config"
	"github.com/futig/docqa/internal/entity"
	"github.com/futig/docqa/internal/index"
	"github.com/futig/docqa/internal/pkg/logger"
	"github.com/futig/docqa/internal/pkg/validator"
	"github.com/futig/docqa/internal/prompt"
	"github.com/futig/docqa/internal/retriever"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// RagUsecase runs the two phases of the pipeline: building an index from a document
// and answering a query against a built index
type RagUsecase struct {
	store              *index.Store
	validator          *validator.Validator
	embeddingConnector EmbeddingConnector
	llmConnector       LLMConnector
	cfg                config.RAGConfig
	// logger is used when the caller's context carries none
	logger             *zap.Logger

	builds  singleflight.Group
	mu      sync.Mutex
	flights map[string]*buildFlight
}

// buildFlight is the context shared by every caller waiting on the same build.
// It is cancelled once the last waiter has gone.
type buildFlight struct {
	ctx     context.Context
	cancel  context.CancelFunc
	waiters int
}

// NewUsecase creates a new RAG use case
func NewUsecase(
	store *index.Store,
	validator *validator.Validator,
	embeddingConnector EmbeddingConnector,
	llmConnector LLMConnector,
	cfg config.RAGConfig,
	logger *zap.Logger,
) *RagUsecase {
	return &RagUsecase{
		store:              store,
		validator:          validator,
		embeddingConnector: embeddingConnector,
		llmConnector:       llmConnector,
		cfg:                cfg,
		logger:             logger,
		flights:            make(map[string]*buildFlight),
	}
}

// BuildIndex chunks and embeds the document and publishes the resulting index.
// Concurrent builds of the same document with the same chunking share one run.
func (uc *RagUsecase) BuildIndex(ctx context.Context, req *entity.BuildIndexRequest) (*index.Index, error) {
	if err := uc.validator.ValidateBuild(req); err != nil {
		return nil, err
	}

	ctx = logger.WithAction(logger.WithFallback(ctx, uc.logger), "build_index")
	key := buildKey(req)

	flightCtx := uc.joinBuild(ctx, key)
	defer uc.leaveBuild(key)

	ch := uc.builds.DoChan(key, func() (any, error) {
		return uc.build(flightCtx, req)
	})

	var idx *index.Index
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("build index: %w", ctx.Err())
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		idx = res.Val.(*index.Index)
		if res.Shared {
			ctxzap.Debug(ctx, "joined an in-flight build", zap.String("index_id", idx.ID))
		}
	}

	if req.ReplaceIndexID != "" && req.ReplaceIndexID != idx.ID {
		if err := uc.store.Delete(req.ReplaceIndexID); err != nil && !errors.Is(err, entity.ErrIndexNotFound) {
			ctxzap.Warn(ctx, "failed to drop replaced index",
				zap.String("index_id", req.ReplaceIndexID),
				zap.Error(err),
			)
		} else {
			ctxzap.Info(ctx, "replaced index",
				zap.String("old_index_id", req.ReplaceIndexID),
				zap.String("index_id", idx.ID),
			)
		}
	}

	return idx, nil
}

func (uc *RagUsecase) build(ctx context.Context, req *entity.BuildIndexRequest) (*index.Index, error) {
	start := time.Now()

	chunks, err := chunker.Chunk(req.Document, req.ChunkSize, req.ChunkOverlap)
	if err != nil {
		return nil, err
	}

	ctxzap.Info(ctx, "document chunked",
		zap.Int("chunk_count", len(chunks)),
		zap.Int("chunk_size", req.ChunkSize),
		zap.Int("chunk_overlap", req.ChunkOverlap),
	)

	texts := make([]string, len(chunks))
	for i, c := range chunks {
		texts[i] = c.Text
	}

	embeddings, err := uc.embeddingConnector.Embed(ctx, texts)
	if err != nil {
		return nil, fmt.Errorf("embed chunks: %w", err)
	}

	idx, err := index.Build(req.Document, chunks, embeddings, req.ChunkSize, req.ChunkOverlap)
	if err != nil {
		return nil, err
	}

	// every waiter has gone, nobody would learn the handle
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("build index: %w", err)
	}

	uc.store.Put(idx)

	ctxzap.Info(ctx, "index built",
		zap.String("index_id", idx.ID),
		zap.Int("node_count", idx.Size()),
		zap.Int("dimension", idx.Dimension),
		zap.Int64("duration_ms", time.Since(start).Milliseconds()),
	)

	return idx, nil
}

func (uc *RagUsecase) joinBuild(ctx context.Context, key string) context.Context {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	f, ok := uc.flights[key]
	if !ok {
		fctx, cancel := context.WithTimeout(logger.Detach(ctx), uc.cfg.BuildTimeout)
		f = &buildFlight{ctx: fctx, cancel: cancel}
		uc.flights[key] = f
	}
	f.waiters++

	return f.ctx
}

func (uc *RagUsecase) leaveBuild(key string) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	f := uc.flights[key]
	f.waiters--
	if f.waiters > 0 {
		return
	}

	f.cancel()
	delete(uc.flights, key)
	// a later caller must not join a run whose context is already cancelled
	uc.builds.Forget(key)
}

func buildKey(req *entity.BuildIndexRequest) string {
	return fmt.Sprintf("%x:%d:%d", sha256.Sum256([]byte(req.Document)), req.ChunkSize, req.ChunkOverlap)
}

// RunQuery retrieves the chunks closest to the query, asks the model and parses its answer
func (uc *RagUsecase) RunQuery(ctx context.Context, req *entity.QueryRequest) (*entity.QueryResult, error) {
	if err := uc.validator.ValidateQuery(req); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, uc.cfg.QueryTimeout)
	defer cancel()
	ctx = logger.WithAction(logger.WithFallback(ctx, uc.logger), "run_query")
	start := time.Now()

	idx, err := uc.resolveIndex(req)
	if err != nil {
		return nil, err
	}

	vectors, err := uc.embeddingConnector.Embed(ctx, []string{req.Query})
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}
	if len(vectors) != 1 {
		return nil, fmt.Errorf("%w: expected 1 query embedding, got %d", entity.ErrEmbeddingService, len(vectors))
	}

	retrieved, err := retriever.Retrieve(idx, vectors[0], req.Generation.TopK)
	if err != nil {
		return nil, err
	}

	ctxzap.Debug(ctx, "nodes retrieved",
		zap.String("index_id", idx.ID),
		zap.Int("top_k", req.Generation.TopK),
		zap.Int("retrieved", len(retrieved)),
	)

	promptText := prompt.Build(req.Query, retrieved)

	raw, err := uc.llmConnector.Complete(ctx, promptText, req.Generation)
	if err != nil {
		return nil, fmt.Errorf("complete prompt: %w", err)
	}

	parsed, err := answer.Parse(raw)
	if err != nil {
		ctxzap.Warn(ctx, "answer could not be parsed", zap.String("raw_answer", raw), zap.Error(err))
		return nil, err
	}

	warnings := make([]string, len(parsed.Warnings))
	for i, w := range parsed.Warnings {
		warnings[i] = w.Error()
	}

	ctxzap.Info(ctx, "query answered",
		zap.String("index_id", idx.ID),
		zap.Int("record_count", len(parsed.Records)),
		zap.Int("warning_count", len(warnings)),
		zap.String("template_version", prompt.TemplateVersion),
		zap.Int64("duration_ms", time.Since(start).Milliseconds()),
	)

	return &entity.QueryResult{
		AnswerText: raw,
		Records:    parsed.Records,
		Warnings:   warnings,
		Sources:    retrieved,
	}, nil
}

func (uc *RagUsecase) resolveIndex(req *entity.QueryRequest) (*index.Index, error) {
	if req.IndexID != "" {
		return uc.store.Get(req.IndexID)
	}
	return index.FromNodes(req.Nodes)
}

// GetIndex returns a published index by its handle
func (uc *RagUsecase) GetIndex(ctx context.Context, indexID string) (*index.Index, error) {
	return uc.store.Get(indexID)
}

// DeleteIndex drops a published index
func (uc *RagUsecase) DeleteIndex(ctx context.Context, indexID string) error {
	ctx = logger.WithFallback(ctx, uc.logger)
	if err := uc.store.Delete(indexID); err != nil {
		return err
	}

	ctxzap.Info(ctx, "index deleted", zap.String("index_id", indexID))
	return nil
}
