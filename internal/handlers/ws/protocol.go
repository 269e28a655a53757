package ws

// Client command type names on the wire
const (
	CommandJoin         = "join"
	CommandAddTicket    = "addTicket"
	CommandSelectTicket = "selectTicket"
	CommandVote         = "vote"
	CommandRevealVotes  = "revealVotes"
	CommandResetVotes   = "resetVotes"
	CommandLeave        = "leave"
)

// Command is a single JSON client frame. Fields beyond Type are only
// meaningful for the command types that use them.
type Command struct {
	Type        string `json:"type"`
	TeamCode    string `json:"teamCode,omitempty"`
	Name        string `json:"name,omitempty"`
	Role        string `json:"role,omitempty"`
	UserID      string `json:"userId,omitempty"`
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
	TicketID    string `json:"ticketId,omitempty"`
	Points      int    `json:"points,omitempty"`
}

// ErrorEvent is sent to the offending connection only; errors are never
// broadcast
type ErrorEvent struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// EventError is the type name of ErrorEvent on the wire
const EventError = "error"

// errInvalidMessageFormat is the reply to any frame that fails to parse
const errInvalidMessageFormat = "Invalid message format"
