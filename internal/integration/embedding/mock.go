package embedding

import (
	"context"
	"fmt"
	"hash/fnv"
	"math"
	"strings"
	"unicode"

	"github.com/futig/docqa/internal/entity"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// MockConnector produces deterministic bag-of-words vectors: every lowercased word is
// hashed into a bucket and the result is L2 normalized. Texts sharing words score high.
type MockConnector struct {
	dim int
}

func NewMockConnector(dim int) *MockConnector {
	return &MockConnector{dim: dim}
}

// Embed - mock embedding of texts
func (m *MockConnector) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	ctxzap.Info(ctx, "[MOCK] embedding texts",
		zap.Int("text_count", len(texts)),
		zap.Int("dimension", m.dim),
	)

	vectors := make([][]float32, len(texts))
	for i, text := range texts {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("%w: %w", entity.ErrEmbeddingService, err)
		}
		vectors[i] = m.vector(text)
	}
	return vectors, nil
}

func (m *MockConnector) vector(text string) []float32 {
	vec := make([]float32, m.dim)

	words := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	for _, w := range words {
		h := fnv.New64a()
		h.Write([]byte(w))
		sum := h.Sum64()
		vec[sum%uint64(m.dim)] += 1
	}

	var norm float64
	for _, v := range vec {
		norm += float64(v) * float64(v)
	}
	if norm == 0 {
		return vec
	}
	inv := float32(1 / math.Sqrt(norm))
	for i := range vec {
		vec[i] *= inv
	}
	return vec
}
