package pipeline

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	apperrors "github.com/seraface/seraface-server/pkg/errors"
)

type fakeStore struct {
	phases map[Phase]bool
}

func (f *fakeStore) SavePhase(ctx context.Context, sessionID string, phase Phase, data map[string]any) error {
	f.phases[phase] = true
	return nil
}

func (f *fakeStore) LoadPhase(ctx context.Context, sessionID string, phase Phase) (map[string]any, bool, error) {
	return nil, f.phases[phase], nil
}

func (f *fakeStore) SessionExists(ctx context.Context, sessionID string) (bool, error) {
	for _, done := range f.phases {
		if done {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeStore) PhaseStatus(ctx context.Context, sessionID string) (map[Phase]bool, error) {
	status := make(map[Phase]bool, len(Phases))
	for _, phase := range Phases {
		status[phase] = f.phases[phase]
	}
	return status, nil
}

func newStatusService(phases map[Phase]bool) Service {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewService(&fakeStore{phases: phases}, logger)
}

func TestStatusPartialProgress(t *testing.T) {
	svc := newStatusService(map[Phase]bool{PhaseForm: true, PhaseAnalysis: true})

	report, err := svc.Status(context.Background(), "sess-1")
	require.NoError(t, err)
	require.Equal(t, "sess-1", report.SessionID)
	require.Equal(t, []Phase{PhaseForm, PhaseAnalysis}, report.CompletedPhases)
	require.Equal(t, 4, report.TotalPhases)
	require.Equal(t, 50, report.ProgressPercentage)
	require.Equal(t, "Phase 3: Generate product recommendations", report.NextPhase)
	require.False(t, report.PipelineComplete)
}

func TestStatusComplete(t *testing.T) {
	svc := newStatusService(map[Phase]bool{
		PhaseForm:            true,
		PhaseAnalysis:        true,
		PhaseRecommendations: true,
		PhaseRoutine:         true,
	})

	report, err := svc.Status(context.Background(), "sess-1")
	require.NoError(t, err)
	require.Equal(t, 100, report.ProgressPercentage)
	require.Equal(t, "Pipeline complete!", report.NextPhase)
	require.True(t, report.PipelineComplete)
}

func TestStatusSkippedPhase(t *testing.T) {
	// A session can have later phases done with earlier ones missing; the
	// hint always points at the first gap.
	svc := newStatusService(map[Phase]bool{PhaseRoutine: true})

	report, err := svc.Status(context.Background(), "sess-1")
	require.NoError(t, err)
	require.Equal(t, []Phase{PhaseRoutine}, report.CompletedPhases)
	require.Equal(t, 25, report.ProgressPercentage)
	require.Equal(t, "Phase 1: Submit form data", report.NextPhase)
}

func TestStatusUnknownSession(t *testing.T) {
	svc := newStatusService(map[Phase]bool{})

	_, err := svc.Status(context.Background(), "missing")
	require.Error(t, err)
	require.True(t, apperrors.IsCode(err, "not_found"))
}
