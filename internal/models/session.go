package models

import (
	"sync"
	"time"
)

// Session represents a shared estimation room identified by a team code.
// A session exclusively owns its users and tickets; it exists only for
// the lifetime of the process and is deleted the moment its user set
// becomes empty.
type Session struct {
	// Mutex serializes all command processing against this session.
	// Callers of the helper methods below must hold it.
	Mutex sync.Mutex `json:"-"`

	// Code is the team code used to join the session
	Code string `json:"code"`

	// Users are the current participants, in join order, unique by ID
	Users []*User `json:"users"`

	// Tickets are the work items proposed so far, in creation order.
	// Tickets are append-only within a session.
	Tickets []*Ticket `json:"tickets"`

	// SelectedTicketID is the ticket currently under estimation, if any.
	// When set it always references a ticket in Tickets.
	SelectedTicketID string `json:"selectedTicketId,omitempty"`

	// VotingRevealed mirrors the Revealed flag of the selected ticket
	VotingRevealed bool `json:"votingRevealed"`

	// CreatedAt is when the session was created
	CreatedAt time.Time `json:"-"`

	// Removed is set under Mutex when the store deletes the session. A
	// caller that resolved the pointer before the deletion sees it after
	// acquiring the lock and knows the pointer is stale.
	Removed bool `json:"-"`
}

// UserByID returns the user with the given ID, or nil
func (s *Session) UserByID(id string) *User {
	for _, u := range s.Users {
		if u.ID == id {
			return u
		}
	}
	return nil
}

// UserByName returns the first user with the given name, or nil.
// The match is case-sensitive and exact.
func (s *Session) UserByName(name string) *User {
	for _, u := range s.Users {
		if u.Name == name {
			return u
		}
	}
	return nil
}

// RemoveUser deletes the user with the given ID, preserving join order.
// It reports whether a user was removed.
func (s *Session) RemoveUser(id string) bool {
	for i, u := range s.Users {
		if u.ID == id {
			s.Users = append(s.Users[:i], s.Users[i+1:]...)
			return true
		}
	}
	return false
}

// TicketByID returns the ticket with the given ID, or nil
func (s *Session) TicketByID(id string) *Ticket {
	for _, t := range s.Tickets {
		if t.ID == id {
			return t
		}
	}
	return nil
}

// SelectedTicket returns the currently selected ticket, or nil when no
// ticket is selected
func (s *Session) SelectedTicket() *Ticket {
	if s.SelectedTicketID == "" {
		return nil
	}
	return s.TicketByID(s.SelectedTicketID)
}
