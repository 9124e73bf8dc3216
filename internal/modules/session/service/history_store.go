package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	hclog "github.com/hashicorp/go-hclog"

	"studyclock/internal/modules/session/domain"
	sessionout "studyclock/internal/modules/session/port/out"
	apperrors "studyclock/internal/platform/errors"
)

// HistoryStore owns the session history. The in-memory copy is loaded from
// the backing store once and every mutation writes the full sequence back.
type HistoryStore struct {
	mu      sync.Mutex
	kv      sessionout.KeyValueStore
	log     hclog.Logger
	loaded  bool
	history domain.History
}

func NewHistoryStore(kv sessionout.KeyValueStore, log hclog.Logger) *HistoryStore {
	return &HistoryStore{kv: kv, log: log}
}

// Load re-reads the backing store. Missing or malformed data yields an
// empty history.
func (s *HistoryStore) Load(ctx context.Context) (domain.History, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.loadLocked(ctx); err != nil {
		return nil, err
	}
	return s.history.Clone(), nil
}

// Records returns a copy of the history, loading it on first use.
func (s *HistoryStore) Records(ctx context.Context) (domain.History, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensureLoadedLocked(ctx); err != nil {
		return nil, err
	}
	return s.history.Clone(), nil
}

// Save replaces the persisted history with h.
func (s *HistoryStore) Save(ctx context.Context, h domain.History) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	next := h.Clone()
	if err := s.persistLocked(ctx, next); err != nil {
		return err
	}
	s.history = next
	s.loaded = true
	return nil
}

// Append adds r at the end and returns its position.
func (s *HistoryStore) Append(ctx context.Context, r domain.Record) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensureLoadedLocked(ctx); err != nil {
		return 0, err
	}
	next := append(s.history.Clone(), r)
	if err := s.persistLocked(ctx, next); err != nil {
		return 0, err
	}
	s.history = next
	return len(next) - 1, nil
}

func (s *HistoryStore) DeleteAt(ctx context.Context, index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensureLoadedLocked(ctx); err != nil {
		return err
	}
	if index < 0 || index >= len(s.history) {
		return fmt.Errorf("%w: %d (history has %d records)", apperrors.ErrIndexOutOfRange, index, len(s.history))
	}
	next := make(domain.History, 0, len(s.history)-1)
	next = append(next, s.history[:index]...)
	next = append(next, s.history[index+1:]...)
	if err := s.persistLocked(ctx, next); err != nil {
		return err
	}
	s.history = next
	return nil
}

// Clear drops the persisted entry entirely rather than writing an empty list.
func (s *HistoryStore) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.kv.Remove(ctx, domain.HistoryKey); err != nil {
		return fmt.Errorf("remove history: %w", err)
	}
	s.history = domain.History{}
	s.loaded = true
	return nil
}

func (s *HistoryStore) ensureLoadedLocked(ctx context.Context) error {
	if s.loaded {
		return nil
	}
	return s.loadLocked(ctx)
}

func (s *HistoryStore) loadLocked(ctx context.Context) error {
	raw, found, err := s.kv.Get(ctx, domain.HistoryKey)
	if err != nil {
		return fmt.Errorf("read history: %w", err)
	}
	s.history = domain.History{}
	s.loaded = true
	if !found {
		return nil
	}
	decoded := domain.History{}
	if err := json.Unmarshal(raw, &decoded); err != nil {
		s.log.Warn("ignoring malformed history", "error", err)
		return nil
	}
	for i, r := range decoded {
		if err := r.Validate(); err != nil {
			s.log.Warn("ignoring malformed history", "index", i, "error", err)
			return nil
		}
	}
	if decoded != nil {
		s.history = decoded
	}
	return nil
}

func (s *HistoryStore) persistLocked(ctx context.Context, h domain.History) error {
	if h == nil {
		h = domain.History{}
	}
	payload, err := json.Marshal(h)
	if err != nil {
		return fmt.Errorf("encode history: %w", err)
	}
	if err := s.kv.Set(ctx, domain.HistoryKey, payload); err != nil {
		return fmt.Errorf("write history: %w", err)
	}
	return nil
}
