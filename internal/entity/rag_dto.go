package entity

// BuildIndexRequest is the input of the build phase. When ReplaceIndexID is set, that
// index is dropped once the new one has been published.
type BuildIndexRequest struct {
	Document       string
	ChunkSize      int
	ChunkOverlap   int
	ReplaceIndexID string
}

// QueryRequest is the input of the query phase. Either IndexID or Nodes must be set.
type QueryRequest struct {
	Query      string
	IndexID    string
	Nodes      []*Node
	Generation GenerationConfig
}

// QueryResult is the output of the query phase
type QueryResult struct {
	AnswerText string
	Records    []AnswerRecord
	Warnings   []string
	Sources    []ScoredNode
}

// HTTP payloads. Field names follow the playground front-end.

type SplitAndEmbedRequest struct {
	Document       string `json:"document"`
	ChunkSize      *int   `json:"chunkSize,omitempty"`
	ChunkOverlap   *int   `json:"chunkOverlap,omitempty"`
	ReplaceIndexID string `json:"replaceIndexId,omitempty"`
}

type SplitAndEmbedPayload struct {
	IndexID            string  `json:"indexId"`
	Dimension          int     `json:"dimension"`
	NodesWithEmbedding []*Node `json:"nodesWithEmbedding"`
}

type RetrieveAndQueryRequest struct {
	Query              string   `json:"query"`
	IndexID            string   `json:"indexId,omitempty"`
	NodesWithEmbedding []*Node  `json:"nodesWithEmbedding,omitempty"`
	TopK               *int     `json:"topK,omitempty"`
	Temperature        *float64 `json:"temperature,omitempty"`
	TopP               *float64 `json:"topP,omitempty"`
}

type SourceDTO struct {
	NodeID string  `json:"nodeId"`
	Text   string  `json:"text"`
	Score  float64 `json:"score"`
}

type RetrieveAndQueryPayload struct {
	Response string         `json:"response"`
	Records  []AnswerRecord `json:"records"`
	Warnings []string       `json:"warnings,omitempty"`
	Sources  []SourceDTO    `json:"sources"`
}

type IndexDetail struct {
	IndexID      string `json:"indexId"`
	Dimension    int    `json:"dimension"`
	NodeCount    int    `json:"nodeCount"`
	ChunkSize    int    `json:"chunkSize"`
	ChunkOverlap int    `json:"chunkOverlap"`
}

// Envelope is the response shape of every API route: exactly one of Error or Payload is set
type Envelope struct {
	Error   string    `json:"error,omitempty"`
	Kind    ErrorKind `json:"kind,omitempty"`
	Payload any       `json:"payload,omitempty"`
}
