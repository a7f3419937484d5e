package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/futig/docqa/internal/entity"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// MockConnector - mock LLM connector returning a well-formed answer for local runs and tests
type MockConnector struct{}

func NewMockConnector() *MockConnector {
	return &MockConnector{}
}

// Complete - mock completion; the first record echoes the query line of the prompt
func (m *MockConnector) Complete(ctx context.Context, prompt string, gen entity.GenerationConfig) (string, error) {
	ctxzap.Info(ctx, "[MOCK] requesting completion",
		zap.Int("prompt_length", len(prompt)),
		zap.Float64("temperature", gen.Temperature),
		zap.Float64("top_p", gen.TopP),
	)

	if err := ctx.Err(); err != nil {
		return "", fmt.Errorf("%w: %w", entity.ErrCompletionService, err)
	}

	query := "unknown query"
	for _, line := range strings.Split(prompt, "\n") {
		if q, ok := strings.CutPrefix(line, "Query: "); ok {
			query = q
			break
		}
	}

	mockAnswer := fmt.Sprintf(`Name: Narrator
Description: Answers the question %q from %d characters of prompt
Personality: methodical

Name: Mock Character
Description: Placeholder character produced without a language model
Personality: patient
`, query, len(prompt))

	return mockAnswer, nil
}
