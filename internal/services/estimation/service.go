package estimation

import (
	"context"

	"github.com/pointdeck/pointdeck/internal/broadcast"
	"github.com/pointdeck/pointdeck/internal/common/uuid"
	"github.com/pointdeck/pointdeck/internal/models"
	"github.com/pointdeck/pointdeck/internal/repositories/connection"
	"github.com/pointdeck/pointdeck/internal/scoring"
	sessionRepo "github.com/pointdeck/pointdeck/internal/repositories/session"
)

// service implements the Service interface
type service struct {
	sessions    sessionRepo.Repository
	registry    connection.Registry
	broadcaster broadcast.Broadcaster
	uuids       uuid.UUID
}

// New creates a new estimation service
func New(cfg *Config) (*service, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}

	if cfg.SessionRepo == nil {
		return nil, ErrNilSessionRepo
	}

	if cfg.Registry == nil {
		return nil, ErrNilRegistry
	}

	if cfg.Broadcaster == nil {
		return nil, ErrNilBroadcaster
	}

	if cfg.UUIDGenerator == nil {
		return nil, ErrNilUUIDGenerator
	}

	return &service{
		sessions:    cfg.SessionRepo,
		registry:    cfg.Registry,
		broadcaster: cfg.Broadcaster,
		uuids:       cfg.UUIDGenerator,
	}, nil
}

// Join places a connection into a session, reconciling identity with any
// prior user holding the supplied ID or the same name
func (s *service) Join(ctx context.Context, input *JoinInput) (*JoinOutput, error) {
	// A concurrent last-user leave can delete the session between the
	// store resolving it and this command locking it. A deleted session
	// carries the Removed mark under its mutex, so resolve again until
	// the locked pointer is the store's live entry.
	var sess *models.Session
	for {
		sess = s.sessions.GetOrCreate(ctx, &sessionRepo.GetOrCreateInput{
			Code: input.TeamCode,
		})

		sess.Mutex.Lock()
		if !sess.Removed {
			break
		}
		sess.Mutex.Unlock()
	}
	defer sess.Mutex.Unlock()

	var user *models.User

	// A supplied ID that matches an existing user is a reconnect: update
	// the user in place so vote history tied to the ID survives.
	if input.UserID != "" {
		if existing := sess.UserByID(input.UserID); existing != nil {
			existing.Name = input.Name
			existing.Role = input.Role
			user = existing
		}
	}

	if user == nil {
		// A same-name user with a different identity is a stale entry from
		// a duplicate tab or an expired session: replace it outright.
		if stale := sess.UserByName(input.Name); stale != nil {
			sess.RemoveUser(stale.ID)
			s.broadcaster.Broadcast(ctx, sess.Code, UserLeftEvent{
				Type:   EventUserLeft,
				UserID: stale.ID,
			}, input.Conn)
		}

		user = &models.User{
			ID:   s.uuids.NewUUID(),
			Name: input.Name,
			Role: input.Role,
		}
		sess.Users = append(sess.Users, user)
	}

	s.registry.Associate(ctx, &connection.AssociateInput{
		Conn:        input.Conn,
		SessionCode: sess.Code,
		UserID:      user.ID,
	})

	// Snapshot to the joiner only; the rest of the session just learns
	// about the one user.
	_ = input.Conn.WriteJSON(SessionStateEvent{
		Type:    EventSessionState,
		Session: sess,
		UserID:  user.ID,
	})

	s.broadcaster.Broadcast(ctx, sess.Code, UserJoinedEvent{
		Type: EventUserJoined,
		User: user,
	}, input.Conn)

	return &JoinOutput{
		Session: sess,
		User:    user,
	}, nil
}

// Leave removes the connection's user from its session and deletes the
// session once its user set empties. Cleanup is total and idempotent.
func (s *service) Leave(ctx context.Context, input *LeaveInput) (*LeaveOutput, error) {
	output := &LeaveOutput{}

	assoc, ok := s.registry.Lookup(ctx, &connection.LookupInput{Conn: input.Conn})
	if !ok {
		return output, nil
	}

	if sess, found := s.sessions.Get(ctx, &sessionRepo.GetInput{Code: assoc.SessionCode}); found {
		sess.Mutex.Lock()
		if sess.RemoveUser(assoc.UserID) {
			output.UserID = assoc.UserID
			s.broadcaster.Broadcast(ctx, sess.Code, UserLeftEvent{
				Type:   EventUserLeft,
				UserID: assoc.UserID,
			}, input.Conn)
		}
		empty := len(sess.Users) == 0
		sess.Mutex.Unlock()

		if empty {
			output.SessionRemoved = s.sessions.RemoveIfEmpty(ctx, &sessionRepo.RemoveIfEmptyInput{
				Code: sess.Code,
			})
		}
	}

	// Registry cleanup is the last step on every disconnect path
	s.registry.Remove(ctx, &connection.RemoveInput{Conn: input.Conn})

	return output, nil
}

// AddTicket appends a new ticket to the session
func (s *service) AddTicket(ctx context.Context, input *AddTicketInput) (*AddTicketOutput, error) {
	sess, user, err := s.resolve(ctx, input.Conn)
	if err != nil {
		return nil, err
	}
	defer sess.Mutex.Unlock()

	if user.Role != models.RoleObserver {
		return nil, ErrOnlyObserversAddTickets
	}

	ticket := &models.Ticket{
		ID:          s.uuids.NewUUID(),
		Title:       input.Title,
		Description: input.Description,
		Votes:       make(map[string]int),
	}
	sess.Tickets = append(sess.Tickets, ticket)

	s.broadcaster.Broadcast(ctx, sess.Code, TicketAddedEvent{
		Type:   EventTicketAdded,
		Ticket: ticket,
	}, nil)

	return &AddTicketOutput{Ticket: ticket}, nil
}

// SelectTicket puts a ticket up for estimation
func (s *service) SelectTicket(ctx context.Context, input *SelectTicketInput) (*SelectTicketOutput, error) {
	sess, user, err := s.resolve(ctx, input.Conn)
	if err != nil {
		return nil, err
	}
	defer sess.Mutex.Unlock()

	if user.Role != models.RoleObserver {
		return nil, ErrOnlyObserversSelectTickets
	}

	ticket := sess.TicketByID(input.TicketID)
	if ticket == nil {
		return nil, ErrTicketNotFound
	}

	sess.SelectedTicketID = ticket.ID
	// Re-selecting an already-revealed ticket restores the reveal view
	sess.VotingRevealed = ticket.Revealed

	voted, total := voteTally(sess, ticket)

	s.broadcaster.Broadcast(ctx, sess.Code, TicketSelectedEvent{
		Type:         EventTicketSelected,
		Ticket:       ticket,
		VotedCount:   voted,
		TotalPlayers: total,
	}, nil)

	return &SelectTicketOutput{
		Ticket:       ticket,
		VotedCount:   voted,
		TotalPlayers: total,
	}, nil
}

// CastVote records a player's estimate on the selected ticket
func (s *service) CastVote(ctx context.Context, input *CastVoteInput) (*CastVoteOutput, error) {
	sess, user, err := s.resolve(ctx, input.Conn)
	if err != nil {
		return nil, err
	}
	defer sess.Mutex.Unlock()

	if user.Role != models.RolePlayer {
		return nil, ErrOnlyPlayersVote
	}

	if sess.SelectedTicketID == "" {
		return nil, ErrNoTicketSelected
	}

	ticket := sess.SelectedTicket()
	if ticket == nil {
		return nil, ErrTicketNotFound
	}

	if !scoring.ValidPoint(input.Points) {
		return nil, ErrInvalidPointValue
	}

	// Re-voting silently replaces the prior value
	ticket.Votes[user.ID] = input.Points

	voted, total := voteTally(sess, ticket)

	s.broadcaster.Broadcast(ctx, sess.Code, VoteReceivedEvent{
		Type:         EventVoteReceived,
		TicketID:     ticket.ID,
		VotedCount:   voted,
		TotalPlayers: total,
		VoterID:      user.ID,
	}, nil)

	output := &CastVoteOutput{
		TicketID:     ticket.ID,
		VotedCount:   voted,
		TotalPlayers: total,
	}

	// Once every player has voted the reveal happens in the same step,
	// with no separate command needed.
	if voted == total && total > 0 {
		s.reveal(ctx, sess, ticket)
		output.Revealed = true
	}

	return output, nil
}

// RevealVotes exposes the selected ticket's votes and statistics
func (s *service) RevealVotes(ctx context.Context, input *RevealVotesInput) (*RevealVotesOutput, error) {
	sess, user, err := s.resolve(ctx, input.Conn)
	if err != nil {
		return nil, err
	}
	defer sess.Mutex.Unlock()

	if user.Role != models.RoleObserver {
		return nil, ErrOnlyObserversRevealVotes
	}

	if sess.SelectedTicketID == "" {
		return nil, ErrNoTicketSelected
	}

	ticket := sess.SelectedTicket()
	if ticket == nil {
		return nil, ErrTicketNotFound
	}

	average, analysis := s.reveal(ctx, sess, ticket)

	return &RevealVotesOutput{
		Ticket:   ticket,
		Average:  average,
		Analysis: analysis,
	}, nil
}

// ResetVotes clears the selected ticket's votes and reveal state
func (s *service) ResetVotes(ctx context.Context, input *ResetVotesInput) (*ResetVotesOutput, error) {
	sess, user, err := s.resolve(ctx, input.Conn)
	if err != nil {
		return nil, err
	}
	defer sess.Mutex.Unlock()

	if user.Role != models.RoleObserver {
		return nil, ErrOnlyObserversResetVotes
	}

	if sess.SelectedTicketID == "" {
		return nil, ErrNoTicketSelected
	}

	ticket := sess.SelectedTicket()
	if ticket == nil {
		return nil, ErrTicketNotFound
	}

	ticket.Votes = make(map[string]int)
	ticket.Revealed = false
	sess.VotingRevealed = false

	s.broadcaster.Broadcast(ctx, sess.Code, VotesResetEvent{
		Type:     EventVotesReset,
		TicketID: ticket.ID,
	}, nil)

	return &ResetVotesOutput{TicketID: ticket.ID}, nil
}

// resolve maps a connection to its session and user, returning with the
// session mutex held. The caller owns the unlock on success.
func (s *service) resolve(ctx context.Context, conn connection.Conn) (*models.Session, *models.User, error) {
	assoc, ok := s.registry.Lookup(ctx, &connection.LookupInput{Conn: conn})
	if !ok {
		return nil, nil, ErrNotInSession
	}

	sess, found := s.sessions.Get(ctx, &sessionRepo.GetInput{Code: assoc.SessionCode})
	if !found {
		return nil, nil, ErrNotInSession
	}

	sess.Mutex.Lock()

	user := sess.UserByID(assoc.UserID)
	if user == nil {
		sess.Mutex.Unlock()
		return nil, nil, ErrNotInSession
	}

	return sess, user, nil
}

// reveal flips the ticket and session to revealed and broadcasts the
// votes with their statistics. Revealing an already-revealed ticket is a
// harmless repeat. The caller holds the session mutex.
func (s *service) reveal(ctx context.Context, sess *models.Session, ticket *models.Ticket) (float64, *scoring.Analysis) {
	ticket.Revealed = true
	sess.VotingRevealed = true

	// The average covers every vote stored on the ticket; the analysis
	// counts only votes from users still holding the player role.
	points := make([]int, 0, len(ticket.Votes))
	for _, p := range ticket.Votes {
		points = append(points, p)
	}
	average := scoring.Average(points)

	var votes []scoring.Vote
	for _, u := range sess.Users {
		if u.Role != models.RolePlayer {
			continue
		}
		if p, ok := ticket.Votes[u.ID]; ok {
			votes = append(votes, scoring.Vote{UserID: u.ID, Points: p})
		}
	}
	analysis := scoring.Analyze(votes)

	s.broadcaster.Broadcast(ctx, sess.Code, VotesRevealedEvent{
		Type:     EventVotesRevealed,
		Ticket:   ticket,
		Average:  average,
		Analysis: analysis,
	}, nil)

	return average, analysis
}

// voteTally counts players who have voted on the ticket against the
// session's total player count. The caller holds the session mutex.
func voteTally(sess *models.Session, ticket *models.Ticket) (voted, total int) {
	for _, u := range sess.Users {
		if u.Role != models.RolePlayer {
			continue
		}
		total++
		if _, ok := ticket.Votes[u.ID]; ok {
			voted++
		}
	}
	return voted, total
}
