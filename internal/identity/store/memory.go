package store

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"appguard/internal/identity/models"
	"appguard/pkg/platform/sentinel"
)

// InMemory keeps accounts in a mutex-guarded map, indexed by username and
// email for uniqueness checks.
type InMemory struct {
	mu      sync.RWMutex
	byID    map[uuid.UUID]*models.User
	byUser  map[string]uuid.UUID
	byEmail map[string]uuid.UUID
}

func NewInMemory() *InMemory {
	return &InMemory{
		byID:    make(map[uuid.UUID]*models.User),
		byUser:  make(map[string]uuid.UUID),
		byEmail: make(map[string]uuid.UUID),
	}
}

func (s *InMemory) Insert(_ context.Context, user *models.User) (uuid.UUID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, taken := s.byUser[user.Username]; taken {
		return uuid.Nil, sentinel.ErrConflict
	}
	if _, taken := s.byEmail[user.Email]; taken {
		return uuid.Nil, sentinel.ErrConflict
	}

	id := uuid.New()
	stored := *user
	stored.ID = id
	s.byID[id] = &stored
	s.byUser[stored.Username] = id
	s.byEmail[stored.Email] = id
	return id, nil
}

func (s *InMemory) FindByUsername(_ context.Context, username string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.byUser[username]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	clone := *s.byID[id]
	return &clone, nil
}

func (s *InMemory) FindByEmail(_ context.Context, email string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.byEmail[email]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	clone := *s.byID[id]
	return &clone, nil
}
