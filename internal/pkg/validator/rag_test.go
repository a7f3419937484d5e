package validator

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/futig/docqa/internal/config"
	"github.com/futig/docqa/internal/entity"
)

func testValidator() *Validator {
	return NewValidator(config.RAGConfig{MaxChunkSize: 3000, MaxDocumentBytes: 64})
}

func TestValidateBuild(t *testing.T) {
	v := testValidator()

	cases := []struct {
		name  string
		req   entity.BuildIndexRequest
		valid bool
	}{
		{"ok", entity.BuildIndexRequest{Document: "some text", ChunkSize: 10, ChunkOverlap: 2}, true},
		{"zero overlap", entity.BuildIndexRequest{Document: "some text", ChunkSize: 1, ChunkOverlap: 0}, true},
		{"blank document", entity.BuildIndexRequest{Document: "  \n", ChunkSize: 10, ChunkOverlap: 2}, false},
		{"document too large", entity.BuildIndexRequest{Document: strings.Repeat("a", 65), ChunkSize: 10}, false},
		{"zero chunk size", entity.BuildIndexRequest{Document: "x", ChunkSize: 0}, false},
		{"chunk size too large", entity.BuildIndexRequest{Document: "x", ChunkSize: 3001}, false},
		{"overlap equals size", entity.BuildIndexRequest{Document: "x", ChunkSize: 5, ChunkOverlap: 5}, false},
		{"negative overlap", entity.BuildIndexRequest{Document: "x", ChunkSize: 5, ChunkOverlap: -1}, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := v.ValidateBuild(&tc.req)
			if tc.valid && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !tc.valid && !errors.Is(err, entity.ErrInvalidConfig) {
				t.Fatalf("expected ErrInvalidConfig, got %v", err)
			}
		})
	}
}

func TestValidateQuery(t *testing.T) {
	v := testValidator()
	gen := entity.GenerationConfig{TopK: 2, Temperature: 0.1, TopP: 1}

	cases := []struct {
		name  string
		req   entity.QueryRequest
		valid bool
	}{
		{"by index id", entity.QueryRequest{Query: "q", IndexID: "id", Generation: gen}, true},
		{"by nodes", entity.QueryRequest{Query: "q", Nodes: []*entity.Node{}, Generation: gen}, true},
		{"blank query", entity.QueryRequest{Query: " ", IndexID: "id", Generation: gen}, false},
		{"no index", entity.QueryRequest{Query: "q", Generation: gen}, false},
		{"zero k", entity.QueryRequest{Query: "q", IndexID: "id", Generation: entity.GenerationConfig{TopK: 0, TopP: 1}}, false},
		{"hot temperature", entity.QueryRequest{Query: "q", IndexID: "id", Generation: entity.GenerationConfig{TopK: 1, Temperature: 1.1}}, false},
		{"negative top-p", entity.QueryRequest{Query: "q", IndexID: "id", Generation: entity.GenerationConfig{TopK: 1, TopP: -0.1}}, false},
		{"nan top-p", entity.QueryRequest{Query: "q", IndexID: "id", Generation: entity.GenerationConfig{TopK: 1, TopP: math.NaN()}}, false},
		{"bounds inclusive", entity.QueryRequest{Query: "q", IndexID: "id", Generation: entity.GenerationConfig{TopK: 1, Temperature: 1, TopP: 0}}, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := v.ValidateQuery(&tc.req)
			if tc.valid && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !tc.valid && !errors.Is(err, entity.ErrInvalidConfig) {
				t.Fatalf("expected ErrInvalidConfig, got %v", err)
			}
		})
	}
}
