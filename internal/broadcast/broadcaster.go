package broadcast

//go:generate mockgen -package=mocks -destination=mocks/mock_broadcaster.go github.com/pointdeck/pointdeck/internal/broadcast Broadcaster

import (
	"context"
	"errors"
	"log/slog"

	"github.com/pointdeck/pointdeck/internal/repositories/connection"
)

// Broadcaster fans a message out to every connection in a session
type Broadcaster interface {
	// Broadcast delivers message to every connection associated with the
	// session code, skipping exclude when non-nil. Delivery is best-effort
	// per connection: one failed send never aborts the others and never
	// reaches the caller.
	Broadcast(ctx context.Context, sessionCode string, message any, exclude connection.Conn)
}

// Config holds configuration for the registry-backed broadcaster
type Config struct {
	// Registry resolves which connections belong to a session
	Registry connection.Registry

	// Logger records per-connection send failures
	Logger *slog.Logger
}

type broadcaster struct {
	registry connection.Registry
	logger   *slog.Logger
}

// New creates a new registry-backed broadcaster
func New(cfg *Config) (*broadcaster, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.Registry == nil {
		return nil, errors.New("registry cannot be nil")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &broadcaster{
		registry: cfg.Registry,
		logger:   logger,
	}, nil
}

// Broadcast delivers message to every connection in the session
func (b *broadcaster) Broadcast(ctx context.Context, sessionCode string, message any, exclude connection.Conn) {
	conns := b.registry.ConnectionsFor(ctx, &connection.ConnectionsForInput{
		SessionCode: sessionCode,
	})

	for _, conn := range conns {
		if conn == exclude {
			continue
		}

		if err := conn.WriteJSON(message); err != nil {
			// The mutation already committed; a dead connection is cleaned
			// up by its own disconnect path.
			b.logger.Warn("broadcast send failed",
				"session", sessionCode,
				"error", err)
		}
	}
}
