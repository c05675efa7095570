package model

import "time"

// JournalEntry is a dated free-text entry owned by exactly one user.
//
// CreatedAt is assigned by the repository exactly once, at creation — never
// by the client and never on update. Only Title, Content and Mood are
// mutable, and only by the owner.
type JournalEntry struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"userId"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Mood      string    `json:"mood"`
	CreatedAt time.Time `json:"createdAt"`
}
