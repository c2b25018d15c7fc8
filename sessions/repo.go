package sessions

// Repo defines the interface for session tracking. Implementations must be
// safe for concurrent use; in a multi-process deployment this would be backed
// by a shared cache with the same add/refresh/evict-oldest semantics.
type Repo interface {
	// Track records a session or refreshes its last-activity timestamp,
	// evicting the user's least recently active session if the per-user cap
	// would otherwise be exceeded.
	Track(userID, sessionID string) error

	// ListByUser returns all tracked sessions for a user
	ListByUser(userID string) ([]*Session, error)

	// Delete removes a single session
	Delete(userID, sessionID string) error

	// DeleteUser removes all tracked sessions for a user
	DeleteUser(userID string) error

	// CountByUser returns the number of tracked sessions for a user
	CountByUser(userID string) (int, error)
}
