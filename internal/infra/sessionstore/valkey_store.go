package sessionstore

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/valkey-io/valkey-go"

	"github.com/seraface/seraface-server/internal/domain/pipeline"
)

// ValkeyStore keeps phase data in a Valkey-compatible database so several
// server instances can share the same pipeline sessions.
type ValkeyStore struct {
	client valkey.Client
	prefix string
	ttl    time.Duration
}

// NewValkeyStore constructs a new store backed by Valkey.
func NewValkeyStore(client valkey.Client, prefix string, ttl time.Duration) *ValkeyStore {
	if prefix == "" {
		prefix = "skincare"
	}
	return &ValkeyStore{client: client, prefix: prefix, ttl: ttl}
}

// SavePhase implements pipeline.Store.
func (s *ValkeyStore) SavePhase(ctx context.Context, sessionID string, phase pipeline.Phase, data map[string]any) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return err
	}
	builder := s.client.B().Set().Key(s.phaseKey(sessionID, phase)).Value(string(payload))
	var cmd valkey.Completed
	if s.ttl > 0 {
		ttl := s.ttl
		if ttl < time.Second {
			ttl = time.Second
		}
		cmd = builder.Ex(ttl).Build()
	} else {
		cmd = builder.Build()
	}
	return s.client.Do(ctx, cmd).Error()
}

// LoadPhase implements pipeline.Store.
func (s *ValkeyStore) LoadPhase(ctx context.Context, sessionID string, phase pipeline.Phase) (map[string]any, bool, error) {
	resp := s.client.Do(ctx, s.client.B().Get().Key(s.phaseKey(sessionID, phase)).Build())
	payload, err := resp.ToString()
	if err != nil {
		if valkey.IsValkeyNil(err) {
			return nil, false, nil
		}
		return nil, false, err
	}
	var data map[string]any
	if err := json.Unmarshal([]byte(payload), &data); err != nil {
		return nil, false, err
	}
	return data, true, nil
}

// SessionExists reports whether any phase key is live for the session.
func (s *ValkeyStore) SessionExists(ctx context.Context, sessionID string) (bool, error) {
	keys := make([]string, 0, len(pipeline.Phases))
	for _, phase := range pipeline.Phases {
		keys = append(keys, s.phaseKey(sessionID, phase))
	}
	count, err := s.client.Do(ctx, s.client.B().Exists().Key(keys...).Build()).AsInt64()
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// PhaseStatus implements pipeline.Store.
func (s *ValkeyStore) PhaseStatus(ctx context.Context, sessionID string) (map[pipeline.Phase]bool, error) {
	status := make(map[pipeline.Phase]bool, len(pipeline.Phases))
	for _, phase := range pipeline.Phases {
		count, err := s.client.Do(ctx, s.client.B().Exists().Key(s.phaseKey(sessionID, phase)).Build()).AsInt64()
		if err != nil {
			return nil, err
		}
		status[phase] = count > 0
	}
	return status, nil
}

func (s *ValkeyStore) phaseKey(sessionID string, phase pipeline.Phase) string {
	return fmt.Sprintf("%s:%s:%s", s.prefix, sessionID, phase)
}

var _ pipeline.Store = (*ValkeyStore)(nil)
