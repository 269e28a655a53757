package connection

// Association is the ephemeral pair linking a connection to the session
// and user it acts as
type Association struct {
	// SessionCode is the team code of the session the connection joined
	SessionCode string

	// UserID is the identity the connection resolved to on join
	UserID string
}

// AssociateInput contains parameters for recording an association
type AssociateInput struct {
	// Conn is the live connection handle
	Conn Conn

	// SessionCode is the team code of the joined session
	SessionCode string

	// UserID is the resolved user identity
	UserID string
}

// LookupInput contains parameters for resolving a connection
type LookupInput struct {
	// Conn is the live connection handle
	Conn Conn
}

// RemoveInput contains parameters for dropping an association
type RemoveInput struct {
	// Conn is the live connection handle
	Conn Conn
}

// ConnectionsForInput contains parameters for listing a session's connections
type ConnectionsForInput struct {
	// SessionCode is the team code of the session
	SessionCode string
}
