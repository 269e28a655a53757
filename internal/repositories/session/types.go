package session

import (
	"time"

	"github.com/pointdeck/pointdeck/internal/common/clock"
)

// Config holds configuration for the in-memory session repository
type Config struct {
	// Clock is the time source used to stamp new sessions
	Clock clock.Clock
}

// GetOrCreateInput contains parameters for resolving a session
type GetOrCreateInput struct {
	// Code is the team code identifying the session
	Code string
}

// GetInput contains parameters for retrieving a session
type GetInput struct {
	// Code is the team code identifying the session
	Code string
}

// RemoveIfEmptyInput contains parameters for conditionally deleting a session
type RemoveIfEmptyInput struct {
	// Code is the team code identifying the session
	Code string
}

// PurgeEmptyInput contains parameters for sweeping empty sessions
type PurgeEmptyInput struct {
	// OlderThan spares sessions created within this window, so a session
	// that was just created for an in-flight join is not swept away
	OlderThan time.Duration
}
