package pipeline

import (
	"context"
	"log/slog"

	apperrors "github.com/seraface/seraface-server/pkg/errors"
)

// Service reports pipeline progress for a session.
type Service interface {
	Status(ctx context.Context, sessionID string) (StatusReport, error)
}

// StatusReport summarizes which phases of a session have completed.
type StatusReport struct {
	SessionID          string         `json:"session_id"`
	CompletedPhases    []Phase        `json:"completed_phases"`
	TotalPhases        int            `json:"total_phases"`
	ProgressPercentage int            `json:"progress_percentage"`
	NextPhase          string         `json:"next_phase"`
	PhaseDetails       map[Phase]bool `json:"phase_details"`
	PipelineComplete   bool           `json:"pipeline_complete"`
}

type service struct {
	store  Store
	logger *slog.Logger
}

// NewService wires up the pipeline status domain.
func NewService(store Store, logger *slog.Logger) Service {
	return &service{store: store, logger: logger.With("component", "pipeline.service")}
}

func (s *service) Status(ctx context.Context, sessionID string) (StatusReport, error) {
	exists, err := s.store.SessionExists(ctx, sessionID)
	if err != nil {
		return StatusReport{}, apperrors.Wrap("store_error", "failed to check session", err)
	}
	if !exists {
		return StatusReport{}, apperrors.Wrap("not_found", "session not found", nil)
	}

	status, err := s.store.PhaseStatus(ctx, sessionID)
	if err != nil {
		return StatusReport{}, apperrors.Wrap("store_error", "failed to load session status", err)
	}

	completed := make([]Phase, 0, len(Phases))
	for _, phase := range Phases {
		if status[phase] {
			completed = append(completed, phase)
		}
	}

	return StatusReport{
		SessionID:          sessionID,
		CompletedPhases:    completed,
		TotalPhases:        len(Phases),
		ProgressPercentage: len(completed) * 100 / len(Phases),
		NextPhase:          nextPhaseHint(status),
		PhaseDetails:       status,
		PipelineComplete:   len(completed) == len(Phases),
	}, nil
}

func nextPhaseHint(status map[Phase]bool) string {
	switch {
	case !status[PhaseForm]:
		return "Phase 1: Submit form data"
	case !status[PhaseAnalysis]:
		return "Phase 2: Upload facial image"
	case !status[PhaseRecommendations]:
		return "Phase 3: Generate product recommendations"
	case !status[PhaseRoutine]:
		return "Phase 4: Create skincare routine"
	default:
		return "Pipeline complete!"
	}
}
