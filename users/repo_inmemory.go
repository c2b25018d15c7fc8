package users

import (
	"sync"

	"github.com/google/uuid"
	apperrors "github.com/mingusapp/go-token-service/internal/errors"
)

var _ UserRepo = (*InMemoryRepo)(nil)

// InMemoryRepo is an in-memory implementation of UserRepo
type InMemoryRepo struct {
	users    map[string]*User
	emailIds map[string]string // email to user id
	lock     sync.RWMutex
}

func NewInMemoryRepo() *InMemoryRepo {
	return &InMemoryRepo{
		users:    make(map[string]*User),
		emailIds: make(map[string]string),
	}
}

func (ur *InMemoryRepo) Upsert(user *User) error {
	ur.lock.Lock()
	defer ur.lock.Unlock()

	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	ur.users[user.ID] = user
	ur.emailIds[user.Email] = user.ID
	return nil
}

func (ur *InMemoryRepo) GetByEmail(email string) (*User, error) {
	ur.lock.RLock()
	defer ur.lock.RUnlock()

	userID, ok := ur.emailIds[email]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}

	user, ok := ur.users[userID]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	return user, nil
}

func (ur *InMemoryRepo) GetByID(id string) (*User, error) {
	ur.lock.RLock()
	defer ur.lock.RUnlock()

	user, ok := ur.users[id]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	return user, nil
}

func (ur *InMemoryRepo) Delete(email string) error {
	ur.lock.Lock()
	defer ur.lock.Unlock()

	userID, ok := ur.emailIds[email]
	if !ok {
		return apperrors.ErrUserNotFound
	}
	delete(ur.emailIds, email)
	delete(ur.users, userID)
	return nil
}
