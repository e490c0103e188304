package gemini

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/seraface/seraface-server/internal/infra/config"
	"github.com/seraface/seraface-server/pkg/metrics"
)

// Client wraps a single Gemini API client shared by all requests. The
// underlying SDK client is safe for concurrent use.
//
// Construction never fails: when the API key is missing or the SDK client
// cannot be built, the process still starts and every generation call reports
// the client as unavailable. Callers check Available before generating.
type Client struct {
	model     *genai.GenerativeModel
	modelName string
	logger    *slog.Logger
}

// NewClient builds the Gemini client from process configuration.
func NewClient(ctx context.Context, cfg config.LLMConfig, logger *slog.Logger) *Client {
	log := logger.With("component", "gemini.client")
	c := &Client{modelName: cfg.Model, logger: log}

	if strings.TrimSpace(cfg.APIKey) == "" {
		log.Warn("gemini api key not configured, generation disabled")
		return c
	}

	sdk, err := genai.NewClient(ctx, option.WithAPIKey(cfg.APIKey))
	if err != nil {
		log.Error("failed to build gemini client, generation disabled", "error", err)
		return c
	}

	model := sdk.GenerativeModel(strings.TrimSpace(cfg.Model))
	temperature := cfg.Temperature
	model.GenerationConfig = genai.GenerationConfig{Temperature: &temperature}
	c.model = model
	return c
}

// Available reports whether the model can be called at all.
func (c *Client) Available() bool {
	return c != nil && c.model != nil
}

// GenerateText sends a text-only prompt and returns the raw model text.
func (c *Client) GenerateText(ctx context.Context, prompt string) (string, metrics.TokenUsage, error) {
	return c.generate(ctx, genai.Text(prompt))
}

// GenerateVision sends a prompt together with an inline image.
func (c *Client) GenerateVision(ctx context.Context, prompt, mimeType string, image []byte) (string, metrics.TokenUsage, error) {
	return c.generate(ctx, genai.Text(prompt), &genai.Blob{MIMEType: mimeType, Data: image})
}

func (c *Client) generate(ctx context.Context, parts ...genai.Part) (string, metrics.TokenUsage, error) {
	if !c.Available() {
		return "", metrics.TokenUsage{}, errors.New("gemini client not configured")
	}

	resp, err := c.model.GenerateContent(ctx, parts...)
	if err != nil {
		return "", metrics.TokenUsage{}, err
	}

	usage := usageFrom(resp)
	text := firstText(resp)
	c.logger.Debug("gemini response received",
		"model", c.modelName,
		"prompt_tokens", usage.PromptTokens,
		"total_tokens", usage.TotalTokens,
	)
	return text, usage, nil
}

// firstText walks the candidates and returns the first textual part.
func firstText(resp *genai.GenerateContentResponse) string {
	if resp == nil {
		return ""
	}
	for _, cand := range resp.Candidates {
		if cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if t, ok := part.(genai.Text); ok {
				return string(t)
			}
		}
	}
	return ""
}

func usageFrom(resp *genai.GenerateContentResponse) metrics.TokenUsage {
	if resp == nil || resp.UsageMetadata == nil {
		return metrics.TokenUsage{}
	}
	return metrics.TokenUsage{
		PromptTokens:     int(resp.UsageMetadata.PromptTokenCount),
		CompletionTokens: int(resp.UsageMetadata.CandidatesTokenCount),
		TotalTokens:      int(resp.UsageMetadata.TotalTokenCount),
	}
}
