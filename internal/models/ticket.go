package models

// Ticket represents a work item under estimation
type Ticket struct {
	// ID is the unique identifier for the ticket
	ID string `json:"id"`

	// Title is the short summary of the work item
	Title string `json:"title"`

	// Description is the longer free-form detail of the work item
	Description string `json:"description"`

	// Votes maps a user ID to that user's submitted estimate
	Votes map[string]int `json:"votes"`

	// Revealed indicates whether the votes on this ticket are visible
	Revealed bool `json:"revealed"`
}
