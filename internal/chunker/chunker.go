package chunker

import (
	"fmt"

	"github.com/futig/docqa/internal/entity"
)

// Chunk splits text into windows of chunkSize tokens, each starting
// chunkSize-chunkOverlap tokens after the previous one. The last window may be
// shorter than chunkSize. Windowing stops once a window reaches the final token,
// so no chunk is fully contained in its predecessor.
func Chunk(text string, chunkSize, chunkOverlap int) ([]entity.Chunk, error) {
	if err := validate(chunkSize, chunkOverlap); err != nil {
		return nil, err
	}

	tokens := Tokenize(text)
	if len(tokens) == 0 {
		return []entity.Chunk{}, nil
	}

	stride := chunkSize - chunkOverlap
	chunks := make([]entity.Chunk, 0, len(tokens)/stride+1)

	for start := 0; ; start += stride {
		end := min(start+chunkSize, len(tokens))
		startChar, endChar := tokens[start].Start, tokens[end-1].End

		chunks = append(chunks, entity.Chunk{
			Index:      len(chunks),
			Text:       text[startChar:endChar],
			StartToken: start,
			EndToken:   end,
			StartChar:  startChar,
			EndChar:    endChar,
		})

		if end == len(tokens) {
			break
		}
	}

	return chunks, nil
}

func validate(chunkSize, chunkOverlap int) error {
	if chunkSize <= 0 {
		return fmt.Errorf("%w: chunk size must be positive, got %d", entity.ErrInvalidConfig, chunkSize)
	}
	if chunkOverlap < 0 {
		return fmt.Errorf("%w: chunk overlap must not be negative, got %d", entity.ErrInvalidConfig, chunkOverlap)
	}
	if chunkOverlap >= chunkSize {
		return fmt.Errorf("%w: chunk overlap (%d) must be smaller than chunk size (%d)",
			entity.ErrInvalidConfig, chunkOverlap, chunkSize)
	}
	return nil
}
