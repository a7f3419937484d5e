package entity

// Chunk is a contiguous substring of a document addressed by token and byte offsets.
// EndToken and EndChar are exclusive.
type Chunk struct {
	Index      int    `json:"index"`
	Text       string `json:"text"`
	StartToken int    `json:"start_token"`
	EndToken   int    `json:"end_token"`
	StartChar  int    `json:"start_char"`
	EndChar    int    `json:"end_char"`
}

// TokenCount returns the number of tokens covered by the chunk
func (c Chunk) TokenCount() int {
	return c.EndToken - c.StartToken
}

// Node is a chunk with its embedding vector
type Node struct {
	ID        string    `json:"id"`
	Chunk     Chunk     `json:"chunk"`
	Embedding []float32 `json:"embedding"`
}

// ScoredNode is a single retrieval hit
type ScoredNode struct {
	Node  *Node   `json:"node"`
	Score float64 `json:"score"`
}

// GenerationConfig holds sampling parameters for the completion service
type GenerationConfig struct {
	Temperature float64 `json:"temperature"`
	TopP        float64 `json:"top_p"`
	TopK        int     `json:"top_k"`
}

// AnswerRecord is one entity extracted from the model response
type AnswerRecord struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Personality string `json:"personality"`
}

// ParsedAnswer is the outcome of parsing a raw model response.
// Warnings lists paragraphs that were skipped as malformed.
type ParsedAnswer struct {
	Records  []AnswerRecord
	Warnings []error
}
