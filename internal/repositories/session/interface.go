package session

//go:generate mockgen -package=mocks -destination=mocks/mock_repository.go github.com/pointdeck/pointdeck/internal/repositories/session Repository

import (
	"context"

	"github.com/pointdeck/pointdeck/internal/models"
)

// Repository defines the interface for session storage
type Repository interface {
	// GetOrCreate returns the session for a team code, creating an empty
	// session when the code is unknown. Idempotent per code.
	GetOrCreate(ctx context.Context, input *GetOrCreateInput) *models.Session

	// Get retrieves the session for a team code if one exists
	Get(ctx context.Context, input *GetInput) (*models.Session, bool)

	// RemoveIfEmpty deletes the session when its user set is empty and
	// reports whether a deletion happened. The emptiness check and the
	// deletion are a single step, and a deleted session is marked Removed
	// under its own mutex so holders of a stale pointer can detect it.
	RemoveIfEmpty(ctx context.Context, input *RemoveIfEmptyInput) bool

	// PurgeEmpty removes every session with no users created before the
	// input's age window and returns how many were removed
	PurgeEmpty(ctx context.Context, input *PurgeEmptyInput) int
}
