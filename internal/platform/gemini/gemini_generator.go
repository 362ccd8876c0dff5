package gemini

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"google.golang.org/genai"

	"github.com/marchen/vocabforge/internal/config"
	"github.com/marchen/vocabforge/internal/domain"
	"github.com/marchen/vocabforge/internal/generation"
)

const (
	defaultRequestTimeout = 60 * time.Second

	profileMaxTokens = 2000
	essayMaxTokens   = 1500

	samplingTemperature = 0.7
)

// Generator implements generation.Generator using the Gemini API.
type Generator struct {
	logger  *slog.Logger
	client  *genai.Client
	model   string
	timeout time.Duration
}

var _ generation.Generator = (*Generator)(nil)

// NewGenerator creates a Gemini-backed Generator from the LLM configuration.
// If logger is nil, a default logger is used.
func NewGenerator(ctx context.Context, cfg config.LLMConfig, logger *slog.Logger) (*Generator, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("%w: API key cannot be empty", generation.ErrInvalidConfig)
	}
	if cfg.Model == "" {
		return nil, fmt.Errorf("%w: model name cannot be empty", generation.ErrInvalidConfig)
	}
	if logger == nil {
		logger = slog.Default()
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create Gemini client: %v", generation.ErrInvalidConfig, err)
	}

	timeout := cfg.RequestTimeout
	if timeout <= 0 {
		timeout = defaultRequestTimeout
	}

	return &Generator{
		logger:  logger.With(slog.String("component", "gemini_generator")),
		client:  client,
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

	raw, err := g.generate(ctx, prompt, profileMaxTokens)
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

	return &profile, nil
}

// Essay implements generation.Generator.Essay.
func (g *Generator) Essay(ctx context.Context, words []string, essayType domain.EssayType) (*generation.EssaySchema, error) {
	prompt, err := generation.EssayPrompt(words, essayType)
	if err != nil {
		return nil, err
	}

	raw, err := g.generate(ctx, prompt, essayMaxTokens)
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

// generate performs one Gemini round trip under the configured deadline and
// returns the concatenated text of the first candidate.
func (g *Generator) generate(ctx context.Context, prompt generation.Prompt, maxTokens int32) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	genConfig := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(prompt.System, genai.RoleUser),
		Temperature:       genai.Ptr[float32](samplingTemperature),
		MaxOutputTokens:   maxTokens,
		// Gemini can be held to a JSON MIME type, which spares the
		// code-fence stripping most of the time.
		ResponseMIMEType: "application/json",
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt.User), genConfig)
	if err != nil {
		return "", g.mapError(err)
	}

	if len(resp.Candidates) == 0 {
		return "", fmt.Errorf("%w: no candidates in response", generation.ErrMalformedResponse)
	}
	candidate := resp.Candidates[0]
	if candidate.FinishReason == genai.FinishReasonSafety {
		return "", fmt.Errorf("%w: finish reason %s", generation.ErrContentBlocked, candidate.FinishReason)
	}

	text := resp.Text()
	if text == "" {
		return "", fmt.Errorf("%w: empty candidate content", generation.ErrMalformedResponse)
	}
	return text, nil
}

// mapError translates transport-level failures into the generation package's
// error taxonomy.
func (g *Generator) mapError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return fmt.Errorf("%w: %v", generation.ErrTimeout, err)
	}

	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return fmt.Errorf("%w: http %d: %v", generation.ErrUpstream, apiErr.Code, err)
	}
	return fmt.Errorf("%w: %v", generation.ErrUpstream, err)
}
