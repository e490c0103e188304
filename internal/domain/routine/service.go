package routine

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/seraface/seraface-server/internal/domain/pipeline"
	"github.com/seraface/seraface-server/internal/domain/profile"
	apperrors "github.com/seraface/seraface-server/pkg/errors"
	"github.com/seraface/seraface-server/pkg/metrics"
)

// Service creates personalized skincare routines.
type Service interface {
	CreateRoutine(ctx context.Context, req CreateRoutineRequest) (Routine, error)
}

// GenAIClient is the slice of the Gemini client the routine domain needs.
type GenAIClient interface {
	Available() bool
	GenerateText(ctx context.Context, prompt string) (string, metrics.TokenUsage, error)
}

type service struct {
	client GenAIClient
	store  pipeline.Store
	logger *slog.Logger
}

// NewService wires up the routine creation domain.
func NewService(client GenAIClient, store pipeline.Store, logger *slog.Logger) Service {
	return &service{
		client: client,
		store:  store,
		logger: logger.With("component", "routine.service"),
	}
}

func (s *service) CreateRoutine(ctx context.Context, req CreateRoutineRequest) (Routine, error) {
	form, err := s.resolveForm(ctx, req)
	if err != nil {
		return Routine{}, err
	}
	if len(req.ProductRecommendations) == 0 {
		return Routine{}, apperrors.Wrap("missing_input", "no product recommendations provided", nil)
	}

	// The model client is a shared handle; availability is a configuration
	// property checked up front rather than discovered via a failed call.
	if !s.client.Available() {
		return Routine{}, apperrors.Wrap("model_unavailable", "AI model not available", nil)
	}

	sanitized := sanitizeRecommendations(req.ProductRecommendations)
	prompt := buildPrompt(form, sanitized)

	raw, usage, err := s.client.GenerateText(ctx, prompt)
	if err != nil {
		return Routine{}, apperrors.Wrap("llm_error", "routine generation request failed", err)
	}
	if !usage.IsZero() {
		s.logger.Info("routine generation usage",
			"prompt_tokens", usage.PromptTokens,
			"total_tokens", usage.TotalTokens,
		)
	}

	cleaned := stripCodeFence(raw)
	if cleaned == "" {
		return Routine{}, apperrors.Wrap("empty_response", "received an empty response from the AI model", nil)
	}

	parsed, err := decodeOrdered(cleaned)
	if err != nil {
		return Routine{}, apperrors.Wrap("parse_error", "AI response is not valid JSON", err)
	}

	steps := normalizeSteps(parsed, s.logger)
	s.logger.Info("routine created", "steps", len(steps), "categories", len(req.ProductRecommendations))

	result := Routine{ProductType: ProductTypeCustom, Steps: steps}
	if req.SessionID != "" {
		s.saveRoutine(ctx, req.SessionID, result)
	}
	return result, nil
}

// resolveForm returns the intake form from the payload or, failing that, from
// the stored phase 1 data of the referenced session.
func (s *service) resolveForm(ctx context.Context, req CreateRoutineRequest) (*profile.FormData, error) {
	if req.FormData != nil {
		if err := req.FormData.Validate(); err != nil {
			return nil, err
		}
		return req.FormData, nil
	}
	if req.SessionID == "" {
		return nil, apperrors.Wrap("invalid_input", "form_data is required", nil)
	}

	stored, ok, err := s.store.LoadPhase(ctx, req.SessionID, pipeline.PhaseForm)
	if err != nil {
		return nil, apperrors.Wrap("store_error", "failed to load form data", err)
	}
	if !ok {
		return nil, apperrors.Wrap("invalid_input", "missing form data, complete phase 1 first", nil)
	}

	form, err := decodeForm(stored)
	if err != nil {
		return nil, apperrors.Wrap("invalid_input", "stored form data is malformed", err)
	}
	if err := form.Validate(); err != nil {
		return nil, err
	}
	return form, nil
}

// saveRoutine keeps the result available to the session status surface.
// Failures only lose the cached copy, so they are logged, not surfaced.
func (s *service) saveRoutine(ctx context.Context, sessionID string, result Routine) {
	data, err := toPhaseData(result)
	if err != nil {
		s.logger.Error("failed to encode routine for session store", "error", err, "session_id", sessionID)
		return
	}
	if err := s.store.SavePhase(ctx, sessionID, pipeline.PhaseRoutine, data); err != nil {
		s.logger.Error("failed to save routine", "error", err, "session_id", sessionID)
	}
}

func decodeForm(stored map[string]any) (*profile.FormData, error) {
	payload, err := json.Marshal(stored)
	if err != nil {
		return nil, err
	}
	var form profile.FormData
	if err := json.Unmarshal(payload, &form); err != nil {
		return nil, err
	}
	return &form, nil
}

func toPhaseData(result Routine) (map[string]any, error) {
	payload, err := json.Marshal(result)
	if err != nil {
		return nil, err
	}
	var data map[string]any
	if err := json.Unmarshal(payload, &data); err != nil {
		return nil, err
	}
	return data, nil
}
