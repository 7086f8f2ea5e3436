package group

import "time"

// Group represents one shared ledger: a set of participants and their events.
type Group struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description,omitempty"`
	Currency    string    `json:"currency"`
	CreatedAt   time.Time `json:"created_at"`
}

// Participant is an identity within one group's ledger. Participants are
// created when the group is formed and never deleted mid-ledger; historical
// events reference them for the lifetime of the group.
type Participant struct {
	ID      int64  `json:"id"`
	GroupID int64  `json:"group_id"`
	Name    string `json:"name"`
	// IsOwner marks the local viewing user that created the group.
	IsOwner  bool      `json:"is_owner"`
	JoinedAt time.Time `json:"joined_at"`
}
