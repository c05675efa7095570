package model

// MindfulnessSession is a guided audio session from the seeded catalog.
// Catalog entities are read-only from the client's perspective and carry no
// owner — premium gating is computed at read time against the requesting
// user's IsPremium flag.
type MindfulnessSession struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Duration    int    `json:"duration"` // minutes
	AudioURL    string `json:"audioUrl"`
	IsPremium   bool   `json:"isPremium"`
}

// ReflectionPrompt is a seeded journaling prompt, gated the same way.
type ReflectionPrompt struct {
	ID        int64  `json:"id"`
	Prompt    string `json:"prompt"`
	IsPremium bool   `json:"isPremium"`
}

// Available reports whether a catalog item with the given premium flag is
// usable by a requester whose own premium status is userPremium. Free items
// are available to everyone; premium items only to premium users.
func Available(itemPremium, userPremium bool) bool {
	return !itemPremium || userPremium
}
