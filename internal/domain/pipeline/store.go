package pipeline

import "context"

// Phase identifies one stage of the skincare pipeline.
type Phase string

const (
	PhaseForm            Phase = "phase1"
	PhaseAnalysis        Phase = "phase2"
	PhaseRecommendations Phase = "phase3"
	PhaseRoutine         Phase = "phase4"
)

// Phases lists the pipeline stages in order.
var Phases = []Phase{PhaseForm, PhaseAnalysis, PhaseRecommendations, PhaseRoutine}

// Store hands phase results from one stage to the next. It is a bounded-TTL
// cache keyed by session id, not a durable repository.
type Store interface {
	SavePhase(ctx context.Context, sessionID string, phase Phase, data map[string]any) error
	LoadPhase(ctx context.Context, sessionID string, phase Phase) (map[string]any, bool, error)
	SessionExists(ctx context.Context, sessionID string) (bool, error)
	PhaseStatus(ctx context.Context, sessionID string) (map[Phase]bool, error)
}
