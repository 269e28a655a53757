package estimation

import (
	"github.com/pointdeck/pointdeck/internal/broadcast"
	"github.com/pointdeck/pointdeck/internal/common/uuid"
	"github.com/pointdeck/pointdeck/internal/models"
	"github.com/pointdeck/pointdeck/internal/repositories/connection"
	"github.com/pointdeck/pointdeck/internal/scoring"
	sessionRepo "github.com/pointdeck/pointdeck/internal/repositories/session"
)

// Config holds configuration for the estimation service
type Config struct {
	// Repository dependencies
	SessionRepo sessionRepo.Repository
	Registry    connection.Registry

	// Broadcaster delivers server events to a session's connections
	Broadcaster broadcast.Broadcaster

	// UUIDGenerator mints user and ticket identities
	UUIDGenerator uuid.UUID
}

// JoinInput contains parameters for joining a session
type JoinInput struct {
	// Conn is the connection issuing the command
	Conn connection.Conn

	// TeamCode identifies the session to join, creating it when unknown
	TeamCode string

	// Name is the display name the user chose
	Name string

	// Role is the capability set the user joins with
	Role models.Role

	// UserID, when supplied, reconciles the connection with an existing
	// user after a refresh or reconnect
	UserID string
}

// JoinOutput contains the result of joining a session
type JoinOutput struct {
	// Session is the joined session
	Session *models.Session

	// User is the resolved user identity
	User *models.User
}

// LeaveInput contains parameters for leaving a session
type LeaveInput struct {
	// Conn is the connection leaving or disconnecting
	Conn connection.Conn
}

// LeaveOutput contains the result of leaving a session
type LeaveOutput struct {
	// UserID is the identity that was removed, if any
	UserID string

	// SessionRemoved indicates the session was deleted because its user
	// set became empty
	SessionRemoved bool
}

// AddTicketInput contains parameters for adding a ticket
type AddTicketInput struct {
	// Conn is the connection issuing the command
	Conn connection.Conn

	// Title is the short summary of the work item
	Title string

	// Description is the longer detail of the work item
	Description string
}

// AddTicketOutput contains the result of adding a ticket
type AddTicketOutput struct {
	// Ticket is the newly created ticket
	Ticket *models.Ticket
}

// SelectTicketInput contains parameters for selecting a ticket
type SelectTicketInput struct {
	// Conn is the connection issuing the command
	Conn connection.Conn

	// TicketID identifies the ticket to put up for estimation
	TicketID string
}

// SelectTicketOutput contains the result of selecting a ticket
type SelectTicketOutput struct {
	// Ticket is the selected ticket
	Ticket *models.Ticket

	// VotedCount is how many players have voted on the ticket
	VotedCount int

	// TotalPlayers is how many players are in the session
	TotalPlayers int
}

// CastVoteInput contains parameters for casting a vote
type CastVoteInput struct {
	// Conn is the connection issuing the command
	Conn connection.Conn

	// Points is the estimate; must be a member of the point scale
	Points int
}

// CastVoteOutput contains the result of casting a vote
type CastVoteOutput struct {
	// TicketID is the ticket the vote landed on
	TicketID string

	// VotedCount is how many players have voted after this vote
	VotedCount int

	// TotalPlayers is how many players are in the session
	TotalPlayers int

	// Revealed indicates the vote completed the set and triggered the
	// automatic reveal
	Revealed bool
}

// RevealVotesInput contains parameters for revealing votes
type RevealVotesInput struct {
	// Conn is the connection issuing the command
	Conn connection.Conn
}

// RevealVotesOutput contains the result of revealing votes
type RevealVotesOutput struct {
	// Ticket is the revealed ticket including its votes
	Ticket *models.Ticket

	// Average is the arithmetic mean of the ticket's votes, rounded to
	// one decimal place
	Average float64

	// Analysis is the computed vote statistics
	Analysis *scoring.Analysis
}

// ResetVotesInput contains parameters for resetting votes
type ResetVotesInput struct {
	// Conn is the connection issuing the command
	Conn connection.Conn
}

// ResetVotesOutput contains the result of resetting votes
type ResetVotesOutput struct {
	// TicketID is the ticket whose votes were cleared
	TicketID string
}
