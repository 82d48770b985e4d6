package domain

import "time"

// DateLayout is the calendar format events are stored in. Lexical order of
// dates in this layout is chronological order.
const DateLayout = "2006-01-02"

// ClientSummary is the expanded view of a client referenced by an event.
type ClientSummary struct {
	ID    string `json:"_id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Event is a calendar entry owned by a lawyer or admin.
type Event struct {
	ID          string
	Title       string
	Date        string
	Description string
	// ClientIDs are the stored references; Clients is the expanded read view
	// and omits references that no longer resolve.
	ClientIDs []string
	Clients   []ClientSummary
	OwnerID   string
	CreatedAt time.Time
	UpdatedAt time.Time
}
