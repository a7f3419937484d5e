package llm

import (
	"context"
	"fmt"
	"math"

	"github.com/futig/docqa/internal/config"
	"github.com/futig/docqa/internal/entity"
	"github.com/futig/docqa/internal/integration/common"
	pkgRetry "github.com/futig/docqa/internal/pkg/retry"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"
)

type Connector struct {
	config config.LLMConnectorConfig
	client *openai.Client
}

func NewConnector(cfg config.LLMConnectorConfig) *Connector {
	return &Connector{
		client: common.NewOpenAIClient(cfg.HTTPClientConfig),
		config: cfg,
	}
}

// Complete sends the prompt as a single user message and returns the raw response text
func (c *Connector) Complete(ctx context.Context, prompt string, gen entity.GenerationConfig) (string, error) {
	ctxzap.Info(ctx, "requesting completion from LLM service",
		zap.String("model", c.config.Model),
		zap.Float64("temperature", gen.Temperature),
		zap.Float64("top_p", gen.TopP),
		zap.Int("prompt_length", len(prompt)),
	)

	req := openai.ChatCompletionRequest{
		Model: c.config.Model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		Temperature: samplingParam(gen.Temperature),
		TopP:        samplingParam(gen.TopP),
		MaxTokens:   c.config.MaxTokens,
	}

	onRetry := func(attempt uint, err error) {
		ctxzap.Warn(ctx, "completion request failed, retrying",
			zap.Uint("attempt", attempt+1),
			zap.Error(err),
		)
	}

	resp, err := pkgRetry.Do(ctx, &c.config.Retry, common.IsRetryable, onRetry,
		func(ctx context.Context) (openai.ChatCompletionResponse, error) {
			return c.client.CreateChatCompletion(ctx, req)
		})
	if err != nil {
		ctxzap.Error(ctx, "failed to get completion", zap.Error(err))
		return "", fmt.Errorf("%w: %w", entity.ErrCompletionService, err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%w: response has no choices", entity.ErrCompletionService)
	}

	text := resp.Choices[0].Message.Content
	ctxzap.Info(ctx, "completion received",
		zap.Int("response_length", len(text)),
		zap.String("finish_reason", string(resp.Choices[0].FinishReason)),
		zap.Int("total_tokens", resp.Usage.TotalTokens),
	)

	return text, nil
}

// samplingParam maps 0 to the smallest positive float32: go-openai drops zero values
// through omitempty and the service would then apply its own default of 1.
func samplingParam(v float64) float32 {
	if v == 0 {
		return math.SmallestNonzeroFloat32
	}
	return float32(v)
}
