package store

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/minhvu-dev/crm-backend/internal/models"
)

// MemoryStore keeps users in process memory. It backs local development
// (no DATABASE_URL) and tests. IDs are monotonic and never reused within
// the process lifetime.
type MemoryStore struct {
	mu     sync.Mutex
	users  []models.User
	nextID int64
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{nextID: 1}
}

func (s *MemoryStore) FindByEmail(_ context.Context, email string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	email = strings.ToLower(email)
	for i := range s.users {
		if s.users[i].Email == email {
			u := s.users[i]
			return &u, nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemoryStore) FindByID(_ context.Context, id int64) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.users {
		if s.users[i].ID == id {
			u := s.users[i]
			return &u, nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemoryStore) Insert(_ context.Context, u *models.User) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := *u
	stored.ID = s.nextID
	stored.Email = strings.ToLower(stored.Email)
	stored.CreatedAt = time.Now()
	s.nextID++
	s.users = append(s.users, stored)

	out := stored
	return &out, nil
}

func (s *MemoryStore) UpdateLastLogin(_ context.Context, id int64, at time.Time, ip string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.users {
		if s.users[i].ID == id {
			s.users[i].LastLoginAt = &at
			s.users[i].LastLoginIP = &ip
			return nil
		}
	}
	return ErrNotFound
}
