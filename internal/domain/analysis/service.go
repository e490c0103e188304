package analysis

import (
	"context"
	"encoding/json"
	"log/slog"
	"regexp"
	"strings"

	"github.com/seraface/seraface-server/internal/domain/pipeline"
	apperrors "github.com/seraface/seraface-server/pkg/errors"
	"github.com/seraface/seraface-server/pkg/metrics"
)

const visionPrompt = `You are a skincare AI.

Analyze the face image and return the following structured data in JSON format:

{
  "redness_irritation": "none | mild | moderate | severe",
  "acne_breakouts": {
    "severity": "none | mild | moderate | severe",
    "count_estimate": number,
    "location": ["forehead", "cheeks", "chin", etc.]
  },
  "blackheads_whiteheads": {
    "presence": true | false,
    "location": [areas]
  },
  "oiliness_shine": {
    "level": "low | medium | high",
    "location": [areas]
  },
  "dryness_flaking": {
    "presence": true | false,
    "location": [areas]
  },
  "uneven_skin_tone": "none | mild | moderate | severe",
  "dark_spots_scars": {
    "presence": true | false,
    "description": "short summary"
  },
  "pores_size": {
    "level": "small | medium | large",
    "location": [areas]
  },
  "hormonal_acne_signs": "yes | no | uncertain",
  "stress_related_flareups": "yes | no",
  "dehydrated_skin_signs": "yes | no",
  "fine_lines_wrinkles": {
    "presence": true | false,
    "areas": [areas]
  },
  "skin_elasticity": "low | average | high"
}

Only respond with the valid JSON object.`

var (
	fenceLinePattern = regexp.MustCompile("(?m)^\\s*```[a-zA-Z]*")
	fenceTailPattern = regexp.MustCompile("(?m)```\\s*$")
	jsonBodyPattern  = regexp.MustCompile(`(?s)\{.*\}`)

	smartQuoteReplacer = strings.NewReplacer(
		"`", "",
		"“", `"`,
		"”", `"`,
		"‘", "'",
		"’", "'",
	)
)

// VisionClient is the slice of the Gemini client the analysis domain needs.
type VisionClient interface {
	Available() bool
	GenerateVision(ctx context.Context, prompt, mimeType string, image []byte) (string, metrics.TokenUsage, error)
}

// Config bounds what the analyze endpoint accepts.
type Config struct {
	MaxImageBytes int64
}

// Service analyzes face images for skin conditions.
type Service interface {
	AnalyzeFace(ctx context.Context, sessionID, contentType string, image []byte) (FaceAnalysisResponse, error)
}

type service struct {
	cfg    Config
	client VisionClient
	store  pipeline.Store
	logger *slog.Logger
}

// NewService wires up the face analysis domain.
func NewService(cfg Config, client VisionClient, store pipeline.Store, logger *slog.Logger) Service {
	return &service{
		cfg:    cfg,
		client: client,
		store:  store,
		logger: logger.With("component", "analysis.service"),
	}
}

func (s *service) AnalyzeFace(ctx context.Context, sessionID, contentType string, image []byte) (FaceAnalysisResponse, error) {
	exists, err := s.store.SessionExists(ctx, sessionID)
	if err != nil {
		return FaceAnalysisResponse{}, apperrors.Wrap("store_error", "failed to check session", err)
	}
	if !exists {
		return FaceAnalysisResponse{}, apperrors.Wrap("not_found", "session not found", nil)
	}

	if !strings.HasPrefix(contentType, "image/") {
		return FaceAnalysisResponse{}, apperrors.Wrap("invalid_input", "file must be an image", nil)
	}
	if len(image) == 0 {
		return FaceAnalysisResponse{}, apperrors.Wrap("invalid_input", "image file is empty", nil)
	}
	if s.cfg.MaxImageBytes > 0 && int64(len(image)) > s.cfg.MaxImageBytes {
		return FaceAnalysisResponse{}, apperrors.Wrap("invalid_input", "image exceeds the size limit", nil)
	}

	if !s.client.Available() {
		return FaceAnalysisResponse{}, apperrors.Wrap("model_unavailable", "AI model not available", nil)
	}

	raw, usage, err := s.client.GenerateVision(ctx, visionPrompt, contentType, image)
	if err != nil {
		return FaceAnalysisResponse{}, apperrors.Wrap("llm_error", "face analysis request failed", err)
	}
	if !usage.IsZero() {
		s.logger.Info("face analysis usage",
			"prompt_tokens", usage.PromptTokens,
			"total_tokens", usage.TotalTokens,
		)
	}

	result, err := parseAnalysis(raw)
	if err != nil {
		return FaceAnalysisResponse{}, err
	}

	s.saveAnalysis(ctx, sessionID, result)
	s.logger.Info("face analyzed", "session_id", sessionID, "image_bytes", len(image))
	return FaceAnalysisResponse{
		Message:  "Face analyzed successfully",
		AIOutput: result,
	}, nil
}

// parseAnalysis cleans model output and decodes the embedded JSON object.
// Models sometimes wrap the object in fences, prose or smart quotes; the
// first {...} span is taken as the document.
func parseAnalysis(raw string) (SkinAnalysis, error) {
	cleaned := smartQuoteReplacer.Replace(strings.TrimSpace(raw))
	cleaned = fenceLinePattern.ReplaceAllString(cleaned, "")
	cleaned = fenceTailPattern.ReplaceAllString(cleaned, "")

	body := jsonBodyPattern.FindString(cleaned)
	if body == "" {
		return SkinAnalysis{}, apperrors.Wrap("parse_error", "no JSON object in AI response", nil)
	}

	var result SkinAnalysis
	if err := json.Unmarshal([]byte(body), &result); err != nil {
		return SkinAnalysis{}, apperrors.Wrap("parse_error", "AI response is not valid JSON", err)
	}
	return result, nil
}

// saveAnalysis failures only lose the cached copy, so they are logged.
func (s *service) saveAnalysis(ctx context.Context, sessionID string, result SkinAnalysis) {
	payload, err := json.Marshal(result)
	if err != nil {
		s.logger.Error("failed to encode analysis for session store", "error", err, "session_id", sessionID)
		return
	}
	var data map[string]any
	if err := json.Unmarshal(payload, &data); err != nil {
		s.logger.Error("failed to encode analysis for session store", "error", err, "session_id", sessionID)
		return
	}
	if err := s.store.SavePhase(ctx, sessionID, pipeline.PhaseAnalysis, data); err != nil {
		s.logger.Error("failed to save analysis", "error", err, "session_id", sessionID)
	}
}
