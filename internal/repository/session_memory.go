package repository

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rocketscienceinc/tictactoe-hotseat/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-hotseat/internal/tictactoe"
)

type memorySessionEntry struct {
	snapshot  tictactoe.Snapshot
	expiresAt time.Time
}

type memorySession struct {
	mu       sync.RWMutex
	sessions map[string]memorySessionEntry
	ttl      time.Duration
	now      func() time.Time
	sweptAt  time.Time
}

// NewMemorySessionRepository keeps snapshots in process memory. A zero ttl keeps them forever.
func NewMemorySessionRepository(ttl time.Duration) SessionRepository {
	return &memorySession{
		sessions: make(map[string]memorySessionEntry),
		ttl:      ttl,
		now:      time.Now,
	}
}

func (that *memorySession) Save(_ context.Context, id string, snapshot tictactoe.Snapshot) error {
	entry := memorySessionEntry{snapshot: snapshot}
	if that.ttl > 0 {
		entry.expiresAt = that.now().Add(that.ttl)
	}

	that.mu.Lock()
	that.sweep()
	that.sessions[id] = entry
	that.mu.Unlock()

	return nil
}

// sweep drops expired sessions, at most once per ttl. The caller holds mu.
func (that *memorySession) sweep() {
	if that.ttl <= 0 {
		return
	}

	now := that.now()
	if now.Sub(that.sweptAt) < that.ttl {
		return
	}
	that.sweptAt = now

	for id, entry := range that.sessions {
		if that.expired(entry) {
			delete(that.sessions, id)
		}
	}
}

func (that *memorySession) GetByID(_ context.Context, id string) (tictactoe.Snapshot, error) {
	that.mu.RLock()
	entry, ok := that.sessions[id]
	that.mu.RUnlock()

	if ok && that.expired(entry) {
		that.mu.Lock()
		if current, found := that.sessions[id]; found && that.expired(current) {
			delete(that.sessions, id)
		}
		that.mu.Unlock()

		ok = false
	}

	if !ok {
		return tictactoe.Snapshot{}, fmt.Errorf("%w: %s", apperror.ErrSessionNotFound, id)
	}

	return entry.snapshot, nil
}

func (that *memorySession) DeleteByID(_ context.Context, id string) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	entry, ok := that.sessions[id]
	if !ok || that.expired(entry) {
		delete(that.sessions, id)
		return fmt.Errorf("%w: %s", apperror.ErrSessionNotFound, id)
	}

	delete(that.sessions, id)

	return nil
}

func (that *memorySession) expired(entry memorySessionEntry) bool {
	return !entry.expiresAt.IsZero() && !that.now().Before(entry.expiresAt)
}
