package models

// Role determines what a user may do within a session
type Role string

const (
	// RolePlayer indicates a user who submits estimates
	RolePlayer Role = "player"

	// RoleObserver indicates a user who manages tickets and reveals votes
	RoleObserver Role = "observer"
)

// User represents a participant in an estimation session
type User struct {
	// ID is the unique identifier for the user
	ID string `json:"id"`

	// Name is the display name chosen by the user
	Name string `json:"name"`

	// Role is what the user may do within the session
	Role Role `json:"role"`
}
