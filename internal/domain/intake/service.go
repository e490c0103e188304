package intake

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/seraface/seraface-server/internal/domain/pipeline"
	"github.com/seraface/seraface-server/internal/domain/profile"
	apperrors "github.com/seraface/seraface-server/pkg/errors"
)

// SubmitResult echoes the accepted form and names the session that the rest
// of the pipeline should reference.
type SubmitResult struct {
	Message   string           `json:"message"`
	SessionID string           `json:"session_id"`
	FormIndex int              `json:"form_index"`
	Data      profile.FormData `json:"data"`
}

// Service accepts skincare intake forms and opens pipeline sessions.
type Service interface {
	Submit(ctx context.Context, form profile.FormData) (SubmitResult, error)
	List(ctx context.Context) []profile.FormData
}

type service struct {
	store  pipeline.Store
	logger *slog.Logger

	mu    sync.Mutex
	forms []profile.FormData
}

// NewService builds the intake service on top of the shared session store.
func NewService(store pipeline.Store, logger *slog.Logger) Service {
	return &service{
		store:  store,
		logger: logger.With("component", "intake.service"),
	}
}

func (s *service) Submit(ctx context.Context, form profile.FormData) (SubmitResult, error) {
	if err := form.Validate(); err != nil {
		return SubmitResult{}, err
	}

	sessionID := uuid.NewString()
	data, err := toPhaseData(form)
	if err != nil {
		return SubmitResult{}, apperrors.Wrap("store_error", "failed to encode form data", err)
	}
	if err := s.store.SavePhase(ctx, sessionID, pipeline.PhaseForm, data); err != nil {
		return SubmitResult{}, apperrors.Wrap("store_error", "failed to save form data", err)
	}

	s.mu.Lock()
	s.forms = append(s.forms, form)
	index := len(s.forms) - 1
	s.mu.Unlock()

	s.logger.Info("form received", "session_id", sessionID, "form_index", index)
	return SubmitResult{
		Message:   "Form received successfully",
		SessionID: sessionID,
		FormIndex: index,
		Data:      form,
	}, nil
}

// List returns a snapshot of the forms received since startup.
func (s *service) List(ctx context.Context) []profile.FormData {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]profile.FormData, len(s.forms))
	copy(out, s.forms)
	return out
}

func toPhaseData(form profile.FormData) (map[string]any, error) {
	payload, err := json.Marshal(form)
	if err != nil {
		return nil, err
	}
	var data map[string]any
	if err := json.Unmarshal(payload, &data); err != nil {
		return nil, err
	}
	return data, nil
}
