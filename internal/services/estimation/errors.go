package estimation

// Error is a protocol-visible estimation error. The string is exactly
// what the offending connection receives in its error event.
type Error string

// Error implements the error interface
func (e Error) Error() string {
	return string(e)
}

// Define errors
const (
	ErrNotInSession               Error = "Not in a session"
	ErrOnlyObserversAddTickets    Error = "Only observers can add tickets"
	ErrOnlyObserversSelectTickets Error = "Only observers can select tickets"
	ErrOnlyObserversRevealVotes   Error = "Only observers can reveal votes"
	ErrOnlyObserversResetVotes    Error = "Only observers can reset votes"
	ErrOnlyPlayersVote            Error = "Only players can vote"
	ErrNoTicketSelected           Error = "No ticket selected"
	ErrTicketNotFound             Error = "Ticket not found"
	ErrInvalidPointValue          Error = "Invalid point value"

	ErrNilConfig        Error = "config cannot be nil"
	ErrNilSessionRepo   Error = "session repository cannot be nil"
	ErrNilRegistry      Error = "connection registry cannot be nil"
	ErrNilBroadcaster   Error = "broadcaster cannot be nil"
	ErrNilUUIDGenerator Error = "UUID generator cannot be nil"
)
