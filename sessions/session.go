package sessions

import "time"

// Session tracks one active login for a user. A user may hold several
// sessions at once, capped by the repository; the least recently active
// session is evicted when the cap is exceeded.
type Session struct {
	ID           string    // Unique session identifier (UUID)
	UserID       string    // Owning user
	LastActivity time.Time // Updated every time the session is tracked
}
