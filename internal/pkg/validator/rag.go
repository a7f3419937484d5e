package validator

import (
	"fmt"
	"math"
	"strings"

	"github.com/futig/docqa/internal/config"
	"github.com/futig/docqa/internal/entity"
)

// Validator checks build and query requests against the configured limits
type Validator struct {
	cfg config.RAGConfig
}

func NewValidator(cfg config.RAGConfig) *Validator {
	return &Validator{cfg: cfg}
}

func (v *Validator) ValidateBuild(req *entity.BuildIndexRequest) error {
	if strings.TrimSpace(req.Document) == "" {
		return fmt.Errorf("%w: document is required", entity.ErrInvalidConfig)
	}
	if len(req.Document) > v.cfg.MaxDocumentBytes {
		return fmt.Errorf("%w: document is %d bytes (max %d)", entity.ErrInvalidConfig, len(req.Document), v.cfg.MaxDocumentBytes)
	}
	if req.ChunkSize < 1 || req.ChunkSize > v.cfg.MaxChunkSize {
		return fmt.Errorf("%w: chunk size must be between 1 and %d, got %d", entity.ErrInvalidConfig, v.cfg.MaxChunkSize, req.ChunkSize)
	}
	if req.ChunkOverlap < 0 || req.ChunkOverlap >= req.ChunkSize {
		return fmt.Errorf("%w: chunk overlap must be between 0 and %d, got %d", entity.ErrInvalidConfig, req.ChunkSize-1, req.ChunkOverlap)
	}

	return nil
}

func (v *Validator) ValidateQuery(req *entity.QueryRequest) error {
	if strings.TrimSpace(req.Query) == "" {
		return fmt.Errorf("%w: query is required", entity.ErrInvalidConfig)
	}
	if req.IndexID == "" && req.Nodes == nil {
		return fmt.Errorf("%w: either an index id or nodes are required", entity.ErrInvalidConfig)
	}

	return ValidateGeneration(req.Generation)
}

// ValidateGeneration checks temperature and top-p are in [0, 1] and top K is at least 1.
// Top K above the node count is allowed and clamped at retrieval.
func ValidateGeneration(gen entity.GenerationConfig) error {
	if gen.TopK < 1 {
		return fmt.Errorf("%w: top K must be at least 1, got %d", entity.ErrInvalidConfig, gen.TopK)
	}
	if !inUnitRange(gen.Temperature) {
		return fmt.Errorf("%w: temperature must be between 0 and 1, got %g", entity.ErrInvalidConfig, gen.Temperature)
	}
	if !inUnitRange(gen.TopP) {
		return fmt.Errorf("%w: top-p must be between 0 and 1, got %g", entity.ErrInvalidConfig, gen.TopP)
	}

	return nil
}

func inUnitRange(f float64) bool {
	return !math.IsNaN(f) && f >= 0 && f <= 1
}
