package rag

import (
	"context"

	"github.com/futig/docqa/internal/entity"
	"github.com/futig/docqa/internal/index"
)

type RagUsecase interface {
	BuildIndex(ctx context.Context, req *entity.BuildIndexRequest) (*index.Index, error)
	RunQuery(ctx context.Context, req *entity.QueryRequest) (*entity.QueryResult, error)
	GetIndex(ctx context.Context, indexID string) (*index.Index, error)
	DeleteIndex(ctx context.Context, indexID string) error
}
