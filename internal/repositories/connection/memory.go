package connection

import (
	"context"
	"sync"
)

// memoryRegistry implements the Registry interface with a process-local map
type memoryRegistry struct {
	mu           sync.RWMutex
	associations map[Conn]Association
}

// NewMemory creates a new in-memory connection registry
func NewMemory() *memoryRegistry {
	return &memoryRegistry{
		associations: make(map[Conn]Association),
	}
}

// Associate records the (sessionCode, userID) pair for a connection
func (r *memoryRegistry) Associate(ctx context.Context, input *AssociateInput) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.associations[input.Conn] = Association{
		SessionCode: input.SessionCode,
		UserID:      input.UserID,
	}
}

// Lookup resolves a connection to its association
func (r *memoryRegistry) Lookup(ctx context.Context, input *LookupInput) (Association, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	assoc, ok := r.associations[input.Conn]
	return assoc, ok
}

// Remove drops the association for a connection
func (r *memoryRegistry) Remove(ctx context.Context, input *RemoveInput) {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.associations, input.Conn)
}

// ConnectionsFor returns every connection associated with a session code
func (r *memoryRegistry) ConnectionsFor(ctx context.Context, input *ConnectionsForInput) []Conn {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var conns []Conn
	for conn, assoc := range r.associations {
		if assoc.SessionCode == input.SessionCode {
			conns = append(conns, conn)
		}
	}

	return conns
}
