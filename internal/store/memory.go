package store

import (
	"context"
	"sort"
	"sync"

	"github.com/i474232898/travel-weather/internal/account"
)

// MemoryStore is a concurrency-safe in-memory user store. Users are copied on
// the way in and out, so callers never share slices with the store.
type MemoryStore struct {
	mu sync.RWMutex

	// key: user ID
	users map[string]account.User
	// key: normalized email, value: user ID
	emails map[string]string
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users:  make(map[string]account.User),
		emails: make(map[string]string),
	}
}

// CreateUser stores a new user. Emails must be unique.
func (s *MemoryStore) CreateUser(_ context.Context, u account.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.emails[u.Email]; ok {
		return account.ErrDuplicateEmail
	}
	s.users[u.ID] = u.Clone()
	s.emails[u.Email] = u.ID
	return nil
}

// GetUser returns the user with the given ID.
func (s *MemoryStore) GetUser(_ context.Context, id string) (account.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[id]
	if !ok {
		return account.User{}, account.ErrNotFound
	}
	return u.Clone(), nil
}

// GetUserByEmail returns the user registered with email.
func (s *MemoryStore) GetUserByEmail(ctx context.Context, email string) (account.User, error) {
	s.mu.RLock()
	id, ok := s.emails[email]
	s.mu.RUnlock()

	if !ok {
		return account.User{}, account.ErrNotFound
	}
	return s.GetUser(ctx, id)
}

// UpdateUser replaces a stored user. The email is immutable.
func (s *MemoryStore) UpdateUser(_ context.Context, u account.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.users[u.ID]
	if !ok {
		return account.ErrNotFound
	}
	u.Email = existing.Email
	s.users[u.ID] = u.Clone()
	return nil
}

// ListUsers returns all users ordered by creation time.
func (s *MemoryStore) ListUsers(_ context.Context) ([]account.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	users := make([]account.User, 0, len(s.users))
	for _, u := range s.users {
		users = append(users, u.Clone())
	}
	sort.Slice(users, func(i, j int) bool {
		return users[i].CreatedAt.Before(users[j].CreatedAt)
	})
	return users, nil
}

var _ account.Store = (*MemoryStore)(nil)
