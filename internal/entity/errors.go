package entity

import "errors"

// Domain errors
var (
	// Configuration errors: bad chunk size/overlap, bad top K, temperature or top-p
	ErrInvalidConfig = errors.New("invalid config")

	// External service errors
	ErrEmbeddingService  = errors.New("embedding service error")
	ErrCompletionService = errors.New("completion service error")

	// Index errors
	ErrIndex         = errors.New("index error")
	ErrIndexNotFound = errors.New("index not found")

	// Retrieval errors: empty index or dimension mismatch
	ErrRetrieval = errors.New("retrieval error")

	// Malformed model output
	ErrParse = errors.New("parse error")

	// Request body over the server limit
	ErrRequestTooLarge = errors.New("request too large")
)

// ErrorKind is the tag reported to callers next to the raw error text
type ErrorKind string

const (
	KindInvalidConfig     ErrorKind = "invalid_config"
	KindEmbeddingService  ErrorKind = "embedding_service"
	KindCompletionService ErrorKind = "completion_service"
	KindIndex             ErrorKind = "index"
	KindIndexNotFound     ErrorKind = "index_not_found"
	KindRetrieval         ErrorKind = "retrieval"
	KindParse             ErrorKind = "parse"
	KindRequestTooLarge   ErrorKind = "request_too_large"
	KindInternal          ErrorKind = "internal"
)

// KindOf classifies err into one of the error kinds
func KindOf(err error) ErrorKind {
	switch {
	case errors.Is(err, ErrInvalidConfig):
		return KindInvalidConfig
	case errors.Is(err, ErrEmbeddingService):
		return KindEmbeddingService
	case errors.Is(err, ErrCompletionService):
		return KindCompletionService
	case errors.Is(err, ErrIndexNotFound):
		return KindIndexNotFound
	case errors.Is(err, ErrIndex):
		return KindIndex
	case errors.Is(err, ErrRetrieval):
		return KindRetrieval
	case errors.Is(err, ErrParse):
		return KindParse
	case errors.Is(err, ErrRequestTooLarge):
		return KindRequestTooLarge
	default:
		return KindInternal
	}
}
