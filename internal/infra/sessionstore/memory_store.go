package sessionstore

import (
	"context"
	"sync"
	"time"

	"github.com/seraface/seraface-server/internal/domain/pipeline"
	"github.com/seraface/seraface-server/pkg/util"
)

type phaseEntry struct {
	data      map[string]any
	expiresAt time.Time
}

// MemoryStore is an in-memory implementation of the phase store for tests/dev.
type MemoryStore struct {
	mu       sync.RWMutex
	ttl      time.Duration
	sessions map[string]map[pipeline.Phase]phaseEntry
}

// NewMemoryStore constructs a store backed by process memory.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		ttl:      ttl,
		sessions: make(map[string]map[pipeline.Phase]phaseEntry),
	}
}

// SavePhase implements pipeline.Store.
func (s *MemoryStore) SavePhase(_ context.Context, sessionID string, phase pipeline.Phase, data map[string]any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	phases, ok := s.sessions[sessionID]
	if !ok {
		phases = make(map[pipeline.Phase]phaseEntry)
		s.sessions[sessionID] = phases
	}
	exp := time.Time{}
	if s.ttl > 0 {
		exp = util.NowUTC().Add(s.ttl)
	}
	phases[phase] = phaseEntry{data: data, expiresAt: exp}
	return nil
}

// LoadPhase implements pipeline.Store.
func (s *MemoryStore) LoadPhase(_ context.Context, sessionID string, phase pipeline.Phase) (map[string]any, bool, error) {
	s.mu.RLock()
	entry, ok := s.sessions[sessionID][phase]
	s.mu.RUnlock()
	if !ok {
		return nil, false, nil
	}
	if hasExpired(entry.expiresAt) {
		s.mu.Lock()
		delete(s.sessions[sessionID], phase)
		s.mu.Unlock()
		return nil, false, nil
	}
	return entry.data, true, nil
}

// SessionExists reports whether any live phase data exists for the session.
func (s *MemoryStore) SessionExists(ctx context.Context, sessionID string) (bool, error) {
	status, err := s.PhaseStatus(ctx, sessionID)
	if err != nil {
		return false, err
	}
	for _, done := range status {
		if done {
			return true, nil
		}
	}
	return false, nil
}

// PhaseStatus implements pipeline.Store.
func (s *MemoryStore) PhaseStatus(_ context.Context, sessionID string) (map[pipeline.Phase]bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	status := make(map[pipeline.Phase]bool, len(pipeline.Phases))
	phases := s.sessions[sessionID]
	for _, phase := range pipeline.Phases {
		entry, ok := phases[phase]
		status[phase] = ok && !hasExpired(entry.expiresAt)
	}
	return status, nil
}

func hasExpired(ts time.Time) bool {
	if ts.IsZero() {
		return false
	}
	return ts.Before(util.NowUTC())
}

var _ pipeline.Store = (*MemoryStore)(nil)
