package sessions

import (
	"fmt"
	"sync"
	"time"
)

const defaultMaxPerUser = 3

var _ Repo = (*InMemoryRepo)(nil)

// InMemoryRepo is an in-memory implementation of Repo. State lives for the
// process lifetime only; a restart drops every tracked session.
type InMemoryRepo struct {
	mu         sync.RWMutex
	sessions   map[string]map[string]*Session // userID -> sessionID -> Session
	maxPerUser int
	nowFunc    func() time.Time
}

type InMemoryRepoOption func(*InMemoryRepo)

// WithNowFunc sets the clock used for last-activity timestamps (for testing)
func WithNowFunc(now func() time.Time) InMemoryRepoOption {
	return func(r *InMemoryRepo) {
		r.nowFunc = now
	}
}

// NewInMemoryRepo creates a session repository capping each user at
// maxPerUser concurrent sessions. Values below 1 fall back to the default.
func NewInMemoryRepo(maxPerUser int, options ...InMemoryRepoOption) *InMemoryRepo {
	if maxPerUser < 1 {
		maxPerUser = defaultMaxPerUser
	}

	r := &InMemoryRepo{
		sessions:   make(map[string]map[string]*Session),
		maxPerUser: maxPerUser,
		nowFunc:    time.Now,
	}

	for _, opt := range options {
		opt(r)
	}
	return r
}

func (r *InMemoryRepo) Track(userID, sessionID string) error {
	if userID == "" {
		return fmt.Errorf("userID is required")
	}
	if sessionID == "" {
		return fmt.Errorf("sessionID is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	userSessions, ok := r.sessions[userID]
	if !ok {
		userSessions = make(map[string]*Session)
		r.sessions[userID] = userSessions
	}

	// Refresh an existing session without touching the cap
	if session, ok := userSessions[sessionID]; ok {
		session.LastActivity = r.nowFunc()
		return nil
	}

	// Evict the least recently active session to make room
	if len(userSessions) >= r.maxPerUser {
		var oldest *Session
		for _, session := range userSessions {
			if oldest == nil || session.LastActivity.Before(oldest.LastActivity) {
				oldest = session
			}
		}
		delete(userSessions, oldest.ID)
	}

	userSessions[sessionID] = &Session{
		ID:           sessionID,
		UserID:       userID,
		LastActivity: r.nowFunc(),
	}
	return nil
}

func (r *InMemoryRepo) ListByUser(userID string) ([]*Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	userSessions := r.sessions[userID]
	list := make([]*Session, 0, len(userSessions))
	for _, session := range userSessions {
		copied := *session
		list = append(list, &copied)
	}
	return list, nil
}

func (r *InMemoryRepo) Delete(userID, sessionID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	userSessions, ok := r.sessions[userID]
	if !ok {
		return nil // Already doesn't exist, no error
	}

	delete(userSessions, sessionID)

	if len(userSessions) == 0 {
		delete(r.sessions, userID)
	}
	return nil
}

func (r *InMemoryRepo) DeleteUser(userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.sessions, userID)
	return nil
}

func (r *InMemoryRepo) CountByUser(userID string) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.sessions[userID]), nil
}
