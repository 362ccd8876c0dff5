package openai

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/openai/openai-go/v2"
	"github.com/openai/openai-go/v2/option"

	"github.com/marchen/vocabforge/internal/config"
	"github.com/marchen/vocabforge/internal/domain"
	"github.com/marchen/vocabforge/internal/generation"
)

const (
	defaultRequestTimeout = 60 * time.Second

	// Token budgets match the two response shapes: a profile carries more
	// structure than an essay.
	profileMaxTokens = 2000
	essayMaxTokens   = 1500

	samplingTemperature = 0.7
)

// Generator implements generation.Generator using the Chat Completions API.
// Setting config.LLMConfig.BaseURL points it at any compatible provider.
type Generator struct {
	logger  *slog.Logger
	client  openai.Client
	model   string
	timeout time.Duration
}

var _ generation.Generator = (*Generator)(nil)

// NewGenerator creates a Chat Completions backed Generator from the LLM
// configuration. If logger is nil, a default logger is used.
func NewGenerator(cfg config.LLMConfig, logger *slog.Logger) (*Generator, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("%w: API key cannot be empty", generation.ErrInvalidConfig)
	}
	if cfg.Model == "" {
		return nil, fmt.Errorf("%w: model name cannot be empty", generation.ErrInvalidConfig)
	}
	if logger == nil {
		logger = slog.Default()
	}

	// The job layer owns retry policy, so the SDK's own retries are off.
	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithMaxRetries(0),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}

	timeout := cfg.RequestTimeout
	if timeout <= 0 {
		timeout = defaultRequestTimeout
	}

	return &Generator{
		logger:  logger.With(slog.String("component", "openai_generator")),
		client:  openai.NewClient(opts...),
		model:   cfg.Model,
		timeout: timeout,
	}, nil
}

// WordProfile implements generation.Generator.WordProfile.
func (g *Generator) WordProfile(ctx context.Context, word string) (*generation.WordProfileSchema, error) {
	prompt, err := generation.WordProfilePrompt(word)
	if err != nil {
		return nil, err
	}

	raw, err := g.complete(ctx, prompt, profileMaxTokens)
	if err != nil {
		g.logger.ErrorContext(ctx, "word profile generation failed",
			slog.String("word", word),
			slog.String("error", err.Error()))
		return nil, err
	}

	var profile generation.WordProfileSchema
	if err := generation.DecodePayload(raw, &profile); err != nil {
		g.logger.WarnContext(ctx, "word profile response is not valid JSON",
			slog.String("word", word),
			slog.Int("response_length", len(raw)))
		return nil, err
	}

	g.logger.DebugContext(ctx, "word profile generated",
		slog.String("word", word),
		slog.Int("example_count", len(profile.Examples)))
	return &profile, nil
}

// Essay implements generation.Generator.Essay.
func (g *Generator) Essay(ctx context.Context, words []string, essayType domain.EssayType) (*generation.EssaySchema, error) {
	prompt, err := generation.EssayPrompt(words, essayType)
	if err != nil {
		return nil, err
	}

	raw, err := g.complete(ctx, prompt, essayMaxTokens)
	if err != nil {
		g.logger.ErrorContext(ctx, "essay generation failed",
			slog.Int("word_count", len(words)),
			slog.String("essay_type", string(essayType)),
			slog.String("error", err.Error()))
		return nil, err
	}

	var essay generation.EssaySchema
	if err := generation.DecodePayload(raw, &essay); err != nil {
		g.logger.WarnContext(ctx, "essay response is not valid JSON",
			slog.Int("response_length", len(raw)))
		return nil, err
	}

	return &essay, nil
}

// complete performs one chat completion round trip under the configured
// deadline and returns the first choice's text.
func (g *Generator) complete(ctx context.Context, prompt generation.Prompt, maxTokens int) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	completion, err := g.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(g.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(prompt.System),
			openai.UserMessage(prompt.User),
		},
		MaxTokens:   openai.Int(int64(maxTokens)),
		Temperature: openai.Float(samplingTemperature),
	})
	if err != nil {
		return "", g.mapError(err)
	}

	if len(completion.Choices) == 0 {
		return "", fmt.Errorf("%w: no choices in completion", generation.ErrMalformedResponse)
	}
	content := completion.Choices[0].Message.Content
	if content == "" {
		return "", fmt.Errorf("%w: empty choice content", generation.ErrMalformedResponse)
	}

	return content, nil
}

// mapError translates transport-level failures into the generation package's
// error taxonomy.
func (g *Generator) mapError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %v", generation.ErrTimeout, err)
	}
	if errors.Is(err, context.Canceled) {
		return fmt.Errorf("%w: %v", generation.ErrTimeout, err)
	}

	var apiErr *openai.Error
	if errors.As(err, &apiErr) {
		return fmt.Errorf("%w: http %d: %v", generation.ErrUpstream, apiErr.StatusCode, err)
	}
	return fmt.Errorf("%w: %v", generation.ErrUpstream, err)
}
