package routine

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/seraface/seraface-server/internal/domain/pipeline"
	"github.com/seraface/seraface-server/internal/domain/profile"
	apperrors "github.com/seraface/seraface-server/pkg/errors"
	"github.com/seraface/seraface-server/pkg/metrics"
)

func validForm() *profile.FormData {
	return &profile.FormData{
		SkinType:       []string{"oily"},
		SkinConditions: []string{"acne"},
		Budget:         "medium",
		Allergies:      []string{"fragrance"},
		Goals:          []string{"clear skin"},
		CustomGoal:     "glow",
	}
}

func TestCreateRoutineSuccess(t *testing.T) {
	stub := &stubGenAIClient{
		response: "```json\n{\"cleanser\":{\"name\":\"Foam Wash\",\"duration\":45},\"moisturizer\":{}}\n```",
		usage:    metrics.TokenUsage{PromptTokens: 120, TotalTokens: 180},
	}
	store := newStubStore()
	svc := NewService(stub, store, testLogger())

	result, err := svc.CreateRoutine(context.Background(), CreateRoutineRequest{
		SessionID: "sess-1",
		FormData:  validForm(),
		ProductRecommendations: map[string]any{
			"cleanser":    map[string]any{"name": "Foam Wash"},
			"moisturizer": map[string]any{"name": "Hydro Gel"},
		},
	})
	require.NoError(t, err)
	require.Equal(t, ProductTypeCustom, result.ProductType)
	require.Len(t, result.Steps, 2)
	require.Equal(t, "Foam Wash", result.Steps[0].Name)
	require.Equal(t, 45, result.Steps[0].Duration)
	require.Equal(t, "Step 2", result.Steps[1].Name)
	require.Equal(t, "Moisturizer", result.Steps[1].Tag)

	require.Equal(t, 1, stub.calls)
	require.Contains(t, stub.lastPrompt, "- Skin Type: oily")
	require.Contains(t, stub.lastPrompt, "- Goals: clear skin, glow")
	require.Contains(t, stub.lastPrompt, `"Foam Wash"`)

	saved, ok, err := store.LoadPhase(context.Background(), "sess-1", pipeline.PhaseRoutine)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "custom", saved["product_type"])
}

func TestCreateRoutineLoadsStoredForm(t *testing.T) {
	store := newStubStore()
	require.NoError(t, store.SavePhase(context.Background(), "sess-2", pipeline.PhaseForm, map[string]any{
		"skin_type": []any{"dry"},
		"goals":     []any{"hydration"},
	}))

	stub := &stubGenAIClient{response: `{"cleanser":{}}`}
	svc := NewService(stub, store, testLogger())

	result, err := svc.CreateRoutine(context.Background(), CreateRoutineRequest{
		SessionID:              "sess-2",
		ProductRecommendations: map[string]any{"cleanser": map[string]any{}},
	})
	require.NoError(t, err)
	require.Len(t, result.Steps, 1)
	require.Contains(t, stub.lastPrompt, "- Skin Type: dry")
}

func TestCreateRoutineMissingForm(t *testing.T) {
	svc := NewService(&stubGenAIClient{}, newStubStore(), testLogger())

	_, err := svc.CreateRoutine(context.Background(), CreateRoutineRequest{
		ProductRecommendations: map[string]any{"cleanser": map[string]any{}},
	})
	require.Error(t, err)
	require.True(t, apperrors.IsCode(err, "invalid_input"))
}

func TestCreateRoutineUnknownSession(t *testing.T) {
	svc := NewService(&stubGenAIClient{}, newStubStore(), testLogger())

	_, err := svc.CreateRoutine(context.Background(), CreateRoutineRequest{
		SessionID:              "missing",
		ProductRecommendations: map[string]any{"cleanser": map[string]any{}},
	})
	require.Error(t, err)
	require.True(t, apperrors.IsCode(err, "invalid_input"))
	require.Contains(t, err.Error(), "missing form data")
}

func TestCreateRoutineNoRecommendations(t *testing.T) {
	stub := &stubGenAIClient{}
	svc := NewService(stub, newStubStore(), testLogger())

	_, err := svc.CreateRoutine(context.Background(), CreateRoutineRequest{
		FormData:               validForm(),
		ProductRecommendations: map[string]any{},
	})
	require.Error(t, err)
	require.True(t, apperrors.IsCode(err, "missing_input"))
	require.Zero(t, stub.calls)
}

func TestCreateRoutineModelUnavailable(t *testing.T) {
	stub := &stubGenAIClient{unavailable: true}
	svc := NewService(stub, newStubStore(), testLogger())

	_, err := svc.CreateRoutine(context.Background(), CreateRoutineRequest{
		FormData:               validForm(),
		ProductRecommendations: map[string]any{"cleanser": map[string]any{}},
	})
	require.Error(t, err)
	require.True(t, apperrors.IsCode(err, "model_unavailable"))
	require.Zero(t, stub.calls)
}

func TestCreateRoutineGenerationFailure(t *testing.T) {
	stub := &stubGenAIClient{err: errors.New("quota exceeded")}
	svc := NewService(stub, newStubStore(), testLogger())

	_, err := svc.CreateRoutine(context.Background(), CreateRoutineRequest{
		FormData:               validForm(),
		ProductRecommendations: map[string]any{"cleanser": map[string]any{}},
	})
	require.Error(t, err)
	require.True(t, apperrors.IsCode(err, "llm_error"))
}

func TestCreateRoutineEmptyResponse(t *testing.T) {
	stub := &stubGenAIClient{response: "```json\n```"}
	svc := NewService(stub, newStubStore(), testLogger())

	_, err := svc.CreateRoutine(context.Background(), CreateRoutineRequest{
		FormData:               validForm(),
		ProductRecommendations: map[string]any{"cleanser": map[string]any{}},
	})
	require.Error(t, err)
	require.True(t, apperrors.IsCode(err, "empty_response"))
}

func TestCreateRoutineMalformedJSON(t *testing.T) {
	stub := &stubGenAIClient{response: "here is your routine: cleanse twice daily"}
	svc := NewService(stub, newStubStore(), testLogger())

	_, err := svc.CreateRoutine(context.Background(), CreateRoutineRequest{
		FormData:               validForm(),
		ProductRecommendations: map[string]any{"cleanser": map[string]any{}},
	})
	require.Error(t, err)
	require.True(t, apperrors.IsCode(err, "parse_error"))
}

func TestCreateRoutineSaveFailureStillSucceeds(t *testing.T) {
	store := newStubStore()
	store.saveErr = errors.New("connection reset")
	stub := &stubGenAIClient{response: `{"cleanser":{}}`}
	svc := NewService(stub, store, testLogger())

	result, err := svc.CreateRoutine(context.Background(), CreateRoutineRequest{
		SessionID:              "sess-3",
		FormData:               validForm(),
		ProductRecommendations: map[string]any{"cleanser": map[string]any{}},
	})
	require.NoError(t, err)
	require.Len(t, result.Steps, 1)
}

type stubGenAIClient struct {
	response    string
	usage       metrics.TokenUsage
	err         error
	unavailable bool
	calls       int
	lastPrompt  string
}

func (s *stubGenAIClient) Available() bool {
	return !s.unavailable
}

func (s *stubGenAIClient) GenerateText(ctx context.Context, prompt string) (string, metrics.TokenUsage, error) {
	s.calls++
	s.lastPrompt = prompt
	if s.err != nil {
		return "", metrics.TokenUsage{}, s.err
	}
	return s.response, s.usage, nil
}

type stubStore struct {
	phases  map[string]map[pipeline.Phase]map[string]any
	saveErr error
	loadErr error
}

func newStubStore() *stubStore {
	return &stubStore{phases: make(map[string]map[pipeline.Phase]map[string]any)}
}

func (s *stubStore) SavePhase(ctx context.Context, sessionID string, phase pipeline.Phase, data map[string]any) error {
	if s.saveErr != nil {
		return s.saveErr
	}
	if s.phases[sessionID] == nil {
		s.phases[sessionID] = make(map[pipeline.Phase]map[string]any)
	}
	s.phases[sessionID][phase] = data
	return nil
}

func (s *stubStore) LoadPhase(ctx context.Context, sessionID string, phase pipeline.Phase) (map[string]any, bool, error) {
	if s.loadErr != nil {
		return nil, false, s.loadErr
	}
	data, ok := s.phases[sessionID][phase]
	return data, ok, nil
}

func (s *stubStore) SessionExists(ctx context.Context, sessionID string) (bool, error) {
	_, ok := s.phases[sessionID]
	return ok, nil
}

func (s *stubStore) PhaseStatus(ctx context.Context, sessionID string) (map[pipeline.Phase]bool, error) {
	status := make(map[pipeline.Phase]bool, len(pipeline.Phases))
	for _, phase := range pipeline.Phases {
		_, ok := s.phases[sessionID][phase]
		status[phase] = ok
	}
	return status, nil
}
