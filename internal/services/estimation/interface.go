package estimation

//go:generate mockgen -package=mocks -destination=mocks/mock_service.go github.com/pointdeck/pointdeck/internal/services/estimation Service

import "context"

// Service defines the interface for session coordination. Each method
// validates one client command, applies it to the session, and emits the
// resulting server events; commands against the same session are
// serialized end to end.
type Service interface {
	// Join places a connection into a session, reconciling identity with
	// any prior user. Join always succeeds and self-heals malformed prior
	// state.
	Join(ctx context.Context, input *JoinInput) (*JoinOutput, error)

	// Leave removes the connection's user from its session. It serves both
	// the explicit leave command and abnormal disconnects, and is
	// idempotent: calling it for an unknown connection is a no-op.
	Leave(ctx context.Context, input *LeaveInput) (*LeaveOutput, error)

	// AddTicket appends a new ticket to the session (observers only)
	AddTicket(ctx context.Context, input *AddTicketInput) (*AddTicketOutput, error)

	// SelectTicket puts a ticket up for estimation (observers only)
	SelectTicket(ctx context.Context, input *SelectTicketInput) (*SelectTicketOutput, error)

	// CastVote records a player's estimate on the selected ticket,
	// revealing automatically once every player has voted
	CastVote(ctx context.Context, input *CastVoteInput) (*CastVoteOutput, error)

	// RevealVotes exposes the selected ticket's votes and statistics
	// (observers only)
	RevealVotes(ctx context.Context, input *RevealVotesInput) (*RevealVotesOutput, error)

	// ResetVotes clears the selected ticket's votes and reveal state
	// (observers only)
	ResetVotes(ctx context.Context, input *ResetVotesInput) (*ResetVotesOutput, error)
}
