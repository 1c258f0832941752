package models

import "time"

// Session maps an opaque bearer token (its ID) to a user with a fixed expiry.
// A session is valid iff it exists and now < ExpiresAt; expiry is checked
// lazily at lookup time.
type Session struct {
	ID        string    `json:"id"`
	UserID    int       `json:"user_id"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Expired reports whether the session is no longer usable at the given instant.
func (s Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.After(now)
}
