package rag

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/futig/docqa/internal/config"
	"github.com/futig/docqa/internal/entity"
	"github.com/futig/docqa/internal/pkg/logger"
	"github.com/futig/docqa/internal/pkg/response"
	"github.com/go-chi/chi/v5"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

type Handler struct {
	usecase      RagUsecase
	cfg          config.RAGConfig
	maxBodyBytes int64
}

func NewHandler(usecase RagUsecase, cfg config.RAGConfig, maxBodyBytes int64) *Handler {
	return &Handler{
		usecase:      usecase,
		cfg:          cfg,
		maxBodyBytes: maxBodyBytes,
	}
}

// SplitAndEmbed handles POST /api/splitandembed
func (h *Handler) SplitAndEmbed(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "SplitAndEmbed")

	var body entity.SplitAndEmbedRequest
	if err := h.decode(w, r, &body); err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	req := toBuildIndexRequest(&body, h.cfg)

	ctxzap.Info(ctx, "building index",
		zap.Int("document_bytes", len(req.Document)),
		zap.Int("chunk_size", req.ChunkSize),
		zap.Int("chunk_overlap", req.ChunkOverlap),
	)

	idx, err := h.usecase.BuildIndex(ctx, req)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	ctxzap.Info(ctx, "index built successfully",
		zap.String("index_id", idx.ID),
		zap.Int("node_count", idx.Size()),
	)
	response.Payload(w, toSplitAndEmbedPayload(idx))
}

// RetrieveAndQuery handles POST /api/retrieveandquery
func (h *Handler) RetrieveAndQuery(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "RetrieveAndQuery")

	var body entity.RetrieveAndQueryRequest
	if err := h.decode(w, r, &body); err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	req := toQueryRequest(&body, h.cfg)

	ctxzap.Info(ctx, "running query",
		zap.String("index_id", req.IndexID),
		zap.Int("inline_nodes", len(req.Nodes)),
		zap.Int("top_k", req.Generation.TopK),
		zap.Float64("temperature", req.Generation.Temperature),
		zap.Float64("top_p", req.Generation.TopP),
	)

	res, err := h.usecase.RunQuery(ctx, req)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	ctxzap.Info(ctx, "query answered successfully", zap.Int("record_count", len(res.Records)))
	response.Payload(w, toRetrieveAndQueryPayload(res))
}

// GetIndex handles GET /api/indexes/{index_id}
func (h *Handler) GetIndex(w http.ResponseWriter, r *http.Request) {
	indexID := chi.URLParam(r, "index_id")
	ctx := logger.AddFields(r.Context(),
		zap.String("index_id", indexID),
		zap.String("action", "GetIndex"),
	)

	ctxzap.Debug(ctx, "fetching index")

	idx, err := h.usecase.GetIndex(ctx, indexID)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	response.Payload(w, toIndexDetail(idx))
}

// DeleteIndex handles DELETE /api/indexes/{index_id}
func (h *Handler) DeleteIndex(w http.ResponseWriter, r *http.Request) {
	indexID := chi.URLParam(r, "index_id")
	ctx := logger.AddFields(r.Context(),
		zap.String("index_id", indexID),
		zap.String("action", "DeleteIndex"),
	)

	if err := h.usecase.DeleteIndex(ctx, indexID); err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	ctxzap.Info(ctx, "index deleted successfully")
	response.NoContent(w)
}

func (h *Handler) decode(w http.ResponseWriter, r *http.Request, dst any) error {
	body := http.MaxBytesReader(w, r.Body, h.maxBodyBytes)
	if err := json.NewDecoder(body).Decode(dst); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return fmt.Errorf("%w: body exceeds %d bytes", entity.ErrRequestTooLarge, tooLarge.Limit)
		}
		return fmt.Errorf("%w: decode request body: %w", entity.ErrInvalidConfig, err)
	}
	return nil
}

func (h *Handler) handleUsecaseError(ctx context.Context, w http.ResponseWriter, err error) {
	kind := entity.KindOf(err)
	switch kind {
	case entity.KindInvalidConfig, entity.KindIndexNotFound, entity.KindRetrieval, entity.KindRequestTooLarge:
		ctxzap.Warn(ctx, "request rejected", zap.String("kind", string(kind)), zap.Error(err))
	default:
		ctxzap.Error(ctx, "request failed", zap.String("kind", string(kind)), zap.Error(err))
	}
	response.Error(w, err)
}
