package token

import "sync"

// Blacklist is a set of revoked token values. A token whose raw value is in
// the set must be rejected regardless of cryptographic validity or expiry.
// In a multi-process deployment this would be backed by a shared cache;
// implementations only need set semantics.
type Blacklist interface {
	Add(rawToken string) error
	Contains(rawToken string) bool
	Len() int
}

// InMemoryBlacklist is a simple in-memory implementation. Entries are never
// expired, so the set grows for the lifetime of the process, and a restart
// drops all revocations.
type InMemoryBlacklist struct {
	revoked map[string]struct{}
	mu      sync.RWMutex
}

func NewInMemoryBlacklist() *InMemoryBlacklist {
	return &InMemoryBlacklist{
		revoked: make(map[string]struct{}),
	}
}

func (b *InMemoryBlacklist) Add(rawToken string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.revoked[rawToken] = struct{}{}
	return nil
}

func (b *InMemoryBlacklist) Contains(rawToken string) bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	_, exists := b.revoked[rawToken]
	return exists
}

func (b *InMemoryBlacklist) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.revoked)
}
