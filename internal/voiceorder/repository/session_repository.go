package repository

import (
	"context"
	"fmt"
	"sync"
	"time"

	"saajhamandi/internal/domain"
	"saajhamandi/internal/errors"
)

type sessionEntry struct {
	mu      sync.Mutex
	session *domain.VoiceOrderSession
	touched time.Time
}

// MemorySessionRepository keeps voice-order sessions in process memory.
// Sessions not created or updated for longer than ttl are treated as gone.
// Expiry is measured with the repository's own clock, never with the
// timestamps stored on the session.
type MemorySessionRepository struct {
	mu       sync.RWMutex
	sessions map[string]*sessionEntry
	ttl      time.Duration
	now      func() time.Time
}

func NewMemorySessionRepository(ttl time.Duration) *MemorySessionRepository {
	return &MemorySessionRepository{
		sessions: make(map[string]*sessionEntry),
		ttl:      ttl,
		now:      time.Now,
	}
}

func (r *MemorySessionRepository) Create(ctx context.Context, session *domain.VoiceOrderSession) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.sessions[session.ID]; exists {
		return errors.NewConflictError(fmt.Sprintf("session %s already exists", session.ID))
	}
	r.sessions[session.ID] = &sessionEntry{session: session.Clone(), touched: r.now()}
	return nil
}

// FindByID returns a snapshot of the session.
func (r *MemorySessionRepository) FindByID(ctx context.Context, id string) (*domain.VoiceOrderSession, error) {
	entry, err := r.entry(id)
	if err != nil {
		return nil, err
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()
	return entry.session.Clone(), nil
}

// Update runs fn on a copy of the session while holding the session's lock
// and stores the copy when fn succeeds. Updates to one session are
// serialized; different sessions proceed independently.
func (r *MemorySessionRepository) Update(ctx context.Context, id string, fn func(*domain.VoiceOrderSession) error) (*domain.VoiceOrderSession, error) {
	entry, err := r.entry(id)
	if err != nil {
		return nil, err
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()

	working := entry.session.Clone()
	if err := fn(working); err != nil {
		return nil, err
	}
	entry.session = working
	entry.touched = r.now()
	return working.Clone(), nil
}

// PurgeExpired drops expired sessions and reports how many were removed.
func (r *MemorySessionRepository) PurgeExpired() int {
	if r.ttl <= 0 {
		return 0
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	cutoff := r.now().Add(-r.ttl)
	removed := 0
	for id, entry := range r.sessions {
		entry.mu.Lock()
		expired := entry.touched.Before(cutoff)
		entry.mu.Unlock()
		if expired {
			delete(r.sessions, id)
			removed++
		}
	}
	return removed
}

// RunJanitor purges expired sessions every interval until ctx is done.
func (r *MemorySessionRepository) RunJanitor(ctx context.Context, interval time.Duration, onPurge func(removed int)) {
	if interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := r.PurgeExpired(); n > 0 && onPurge != nil {
				onPurge(n)
			}
		}
	}
}

func (r *MemorySessionRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

func (r *MemorySessionRepository) entry(id string) (*sessionEntry, error) {
	r.mu.RLock()
	entry, ok := r.sessions[id]
	r.mu.RUnlock()
	if !ok {
		return nil, errors.NewNotFoundError(fmt.Sprintf("session %s not found", id))
	}

	if r.ttl > 0 {
		entry.mu.Lock()
		expired := entry.touched.Before(r.now().Add(-r.ttl))
		entry.mu.Unlock()
		if expired {
			return nil, errors.NewNotFoundError(fmt.Sprintf("session %s expired", id))
		}
	}
	return entry, nil
}
