package rag

import (
	"github.com/futig/docqa/internal/config"
	"github.com/futig/docqa/internal/entity"
	"github.com/futig/docqa/internal/index"
)

// toBuildIndexRequest fills omitted chunking fields with the configured defaults
func toBuildIndexRequest(req *entity.SplitAndEmbedRequest, cfg config.RAGConfig) *entity.BuildIndexRequest {
	return &entity.BuildIndexRequest{
		Document:       req.Document,
		ChunkSize:      valueOr(req.ChunkSize, cfg.DefaultChunkSize),
		ChunkOverlap:   valueOr(req.ChunkOverlap, cfg.DefaultChunkOverlap),
		ReplaceIndexID: req.ReplaceIndexID,
	}
}

// toQueryRequest fills omitted generation fields with the configured defaults
func toQueryRequest(req *entity.RetrieveAndQueryRequest, cfg config.RAGConfig) *entity.QueryRequest {
	return &entity.QueryRequest{
		Query:   req.Query,
		IndexID: req.IndexID,
		Nodes:   req.NodesWithEmbedding,
		Generation: entity.GenerationConfig{
			TopK:        valueOr(req.TopK, cfg.DefaultTopK),
			Temperature: valueOr(req.Temperature, cfg.DefaultTemperature),
			TopP:        valueOr(req.TopP, cfg.DefaultTopP),
		},
	}
}

func toSplitAndEmbedPayload(idx *index.Index) *entity.SplitAndEmbedPayload {
	return &entity.SplitAndEmbedPayload{
		IndexID:            idx.ID,
		Dimension:          idx.Dimension,
		NodesWithEmbedding: idx.Nodes(),
	}
}

func toRetrieveAndQueryPayload(res *entity.QueryResult) *entity.RetrieveAndQueryPayload {
	records := res.Records
	if records == nil {
		records = []entity.AnswerRecord{}
	}

	sources := make([]entity.SourceDTO, len(res.Sources))
	for i, s := range res.Sources {
		sources[i] = entity.SourceDTO{
			NodeID: s.Node.ID,
			Text:   s.Node.Chunk.Text,
			Score:  s.Score,
		}
	}

	return &entity.RetrieveAndQueryPayload{
		Response: res.AnswerText,
		Records:  records,
		Warnings: res.Warnings,
		Sources:  sources,
	}
}

func toIndexDetail(idx *index.Index) *entity.IndexDetail {
	return &entity.IndexDetail{
		IndexID:      idx.ID,
		Dimension:    idx.Dimension,
		NodeCount:    idx.Size(),
		ChunkSize:    idx.ChunkSize,
		ChunkOverlap: idx.ChunkOverlap,
	}
}

func valueOr[T any](v *T, def T) T {
	if v == nil {
		return def
	}
	return *v
}
