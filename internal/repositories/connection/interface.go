package connection

//go:generate mockgen -package=mocks -destination=mocks/mock_registry.go github.com/pointdeck/pointdeck/internal/repositories/connection Registry

import "context"

// Conn is the transport-side handle the registry tracks. Implementations
// must make writes safe for concurrent use; a broadcast and a keep-alive
// ping may hit the same connection at the same time.
type Conn interface {
	WriteJSON(v any) error
}

// Registry defines the interface for tracking which session and user a
// live connection belongs to. It holds the only connection identity state
// in the system and never outlives the connection itself.
type Registry interface {
	// Associate records the (sessionCode, userID) pair for a connection,
	// replacing any prior association
	Associate(ctx context.Context, input *AssociateInput)

	// Lookup resolves a connection to its association
	Lookup(ctx context.Context, input *LookupInput) (Association, bool)

	// Remove drops the association for a connection. Removing an unknown
	// connection is a no-op, so disconnect cleanup is idempotent.
	Remove(ctx context.Context, input *RemoveInput)

	// ConnectionsFor returns every connection currently associated with a
	// session code
	ConnectionsFor(ctx context.Context, input *ConnectionsForInput) []Conn
}
