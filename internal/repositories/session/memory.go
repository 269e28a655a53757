package session

import (
	"context"
	"errors"
	"sync"

	"github.com/pointdeck/pointdeck/internal/models"

	"github.com/pointdeck/pointdeck/internal/common/clock"
)

// memoryRepository implements the Repository interface with a process-local
// map. Session state is ephemeral by design: nothing survives a restart.
type memoryRepository struct {
	mu       sync.RWMutex
	sessions map[string]*models.Session
	clock    clock.Clock
}

// NewMemory creates a new in-memory session repository
func NewMemory(cfg *Config) (*memoryRepository, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.Clock == nil {
		return nil, errors.New("clock cannot be nil")
	}

	return &memoryRepository{
		sessions: make(map[string]*models.Session),
		clock:    cfg.Clock,
	}, nil
}

// GetOrCreate returns the session for a team code, creating it when unknown
func (r *memoryRepository) GetOrCreate(ctx context.Context, input *GetOrCreateInput) *models.Session {
	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, ok := r.sessions[input.Code]; ok {
		return existing
	}

	created := &models.Session{
		Code:      input.Code,
		Users:     []*models.User{},
		Tickets:   []*models.Ticket{},
		CreatedAt: r.clock.Now(),
	}
	r.sessions[input.Code] = created

	return created
}

// Get retrieves the session for a team code if one exists
func (r *memoryRepository) Get(ctx context.Context, input *GetInput) (*models.Session, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	sess, ok := r.sessions[input.Code]
	return sess, ok
}

// RemoveIfEmpty deletes the session when its user set is empty
func (r *memoryRepository) RemoveIfEmpty(ctx context.Context, input *RemoveIfEmptyInput) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	sess, ok := r.sessions[input.Code]
	if !ok {
		return false
	}

	// Re-check emptiness under both locks: a join that raced the caller
	// may have repopulated the session since it was observed empty. The
	// Removed flag is flipped in the same critical section, so a joiner
	// holding a pre-deletion pointer finds out once it takes the lock.
	sess.Mutex.Lock()
	empty := len(sess.Users) == 0
	if empty {
		sess.Removed = true
	}
	sess.Mutex.Unlock()

	if !empty {
		return false
	}

	delete(r.sessions, input.Code)
	return true
}

// PurgeEmpty removes every session with no users that is older than the
// given window, leaving just-created sessions alone until their first join
func (r *memoryRepository) PurgeEmpty(ctx context.Context, input *PurgeEmptyInput) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	cutoff := r.clock.Now().Add(-input.OlderThan)

	removed := 0
	for code, sess := range r.sessions {
		if sess.CreatedAt.After(cutoff) {
			continue
		}

		sess.Mutex.Lock()
		empty := len(sess.Users) == 0
		if empty {
			sess.Removed = true
		}
		sess.Mutex.Unlock()

		if empty {
			delete(r.sessions, code)
			removed++
		}
	}

	return removed
}
