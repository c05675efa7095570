package model

import "time"

// The closed set of mood labels. Case-sensitive — "Happy" is not a valid mood.
// Both journal entries and mood check-ins carry one of these.
const (
	MoodHappy    = "happy"
	MoodCalm     = "calm"
	MoodNeutral  = "neutral"
	MoodSad      = "sad"
	MoodStressed = "stressed"
)

// Moods lists every valid mood label, best to worst. The order matters to
// the insights package, which uses the position to score a day's mood.
var Moods = []string{MoodHappy, MoodCalm, MoodNeutral, MoodSad, MoodStressed}

// ValidMood reports whether m is one of the enumerated mood labels.
func ValidMood(m string) bool {
	for _, mood := range Moods {
		if m == mood {
			return true
		}
	}
	return false
}

// MoodEntry is a single mood check-in. Entries are append-only: there is no
// update or delete — a user's mood log is an immutable history.
type MoodEntry struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"userId"`
	Mood      string    `json:"mood"`
	Note      string    `json:"note,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}
