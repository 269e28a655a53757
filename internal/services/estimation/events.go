package estimation

import (
	"github.com/pointdeck/pointdeck/internal/models"
	"github.com/pointdeck/pointdeck/internal/scoring"
)

// Server event type names on the wire
const (
	EventSessionState   = "sessionState"
	EventUserJoined     = "userJoined"
	EventUserLeft       = "userLeft"
	EventTicketAdded    = "ticketAdded"
	EventTicketSelected = "ticketSelected"
	EventVoteReceived   = "voteReceived"
	EventVotesRevealed  = "votesRevealed"
	EventVotesReset     = "votesReset"
)

// SessionStateEvent carries the full session snapshot to a joining
// connection only
type SessionStateEvent struct {
	Type    string          `json:"type"`
	Session *models.Session `json:"session"`
	UserID  string          `json:"userId"`
}

// UserJoinedEvent announces a resolved user to the rest of the session
type UserJoinedEvent struct {
	Type string       `json:"type"`
	User *models.User `json:"user"`
}

// UserLeftEvent announces that a user left or was superseded
type UserLeftEvent struct {
	Type   string `json:"type"`
	UserID string `json:"userId"`
}

// TicketAddedEvent announces a new ticket to the whole session
type TicketAddedEvent struct {
	Type   string         `json:"type"`
	Ticket *models.Ticket `json:"ticket"`
}

// TicketSelectedEvent announces the ticket now under estimation
type TicketSelectedEvent struct {
	Type         string         `json:"type"`
	Ticket       *models.Ticket `json:"ticket"`
	VotedCount   int            `json:"votedCount"`
	TotalPlayers int            `json:"totalPlayers"`
}

// VoteReceivedEvent announces vote progress without exposing the value
type VoteReceivedEvent struct {
	Type         string `json:"type"`
	TicketID     string `json:"ticketId"`
	VotedCount   int    `json:"votedCount"`
	TotalPlayers int    `json:"totalPlayers"`
	VoterID      string `json:"voterId"`
}

// VotesRevealedEvent exposes the votes and their statistics
type VotesRevealedEvent struct {
	Type     string            `json:"type"`
	Ticket   *models.Ticket    `json:"ticket"`
	Average  float64           `json:"average"`
	Analysis *scoring.Analysis `json:"analysis"`
}

// VotesResetEvent announces that a ticket's votes were cleared
type VotesResetEvent struct {
	Type     string `json:"type"`
	TicketID string `json:"ticketId"`
}
