// Package memory holds in-memory store implementations used by handler tests.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/referly/referral-be/internal/models"
	"github.com/referly/referral-be/internal/storage"
)

var (
	_ storage.UserStore     = (*UserStore)(nil)
	_ storage.ReferralStore = (*ReferralStore)(nil)
)

// UserStore keeps users in maps guarded by a mutex.
type UserStore struct {
	mu      sync.RWMutex
	nextID  int64
	byName  map[string]int64
	byEmail map[string]int64
	users   map[int64]models.User

	// CreateErr, when set, is returned by CreateUser.
	CreateErr error
	// FindErr, when set, is returned by FindUserByEmail.
	FindErr error
}

func NewUserStore() *UserStore {
	return &UserStore{
		nextID:  1,
		byName:  make(map[string]int64),
		byEmail: make(map[string]int64),
		users:   make(map[int64]models.User),
	}
}

// CreateUser mirrors the database behavior: name conflicts are reported
// before email conflicts, and nothing is written on conflict.
func (s *UserStore) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.CreateErr != nil {
		return models.User{}, s.CreateErr
	}
	if _, exists := s.byName[user.Name]; exists {
		return models.User{}, storage.ErrDuplicateName
	}
	if _, exists := s.byEmail[user.Email]; exists {
		return models.User{}, storage.ErrDuplicateEmail
	}

	user.ID = s.nextID
	user.CreatedAt = time.Now()
	s.nextID++
	s.users[user.ID] = user
	s.byName[user.Name] = user.ID
	s.byEmail[user.Email] = user.ID
	return user, nil
}

func (s *UserStore) FindUserByEmail(ctx context.Context, email string) (models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.FindErr != nil {
		return models.User{}, s.FindErr
	}
	id, ok := s.byEmail[email]
	if !ok {
		return models.User{}, storage.ErrNotFound
	}
	return s.users[id], nil
}

// Count reports how many users exist; test helper.
func (s *UserStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.users)
}

// ReferralStore keeps referrals in insertion order.
type ReferralStore struct {
	mu        sync.RWMutex
	referrals []models.Referral

	// CreateErr, when set, is returned by CreateReferral.
	CreateErr error
	// ListErr, when set, is returned by both listing methods.
	ListErr error
}

func NewReferralStore() *ReferralStore {
	return &ReferralStore{}
}

func (s *ReferralStore) CreateReferral(ctx context.Context, referral models.Referral) (models.Referral, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.CreateErr != nil {
		return models.Referral{}, s.CreateErr
	}
	referral.ID = uuid.New()
	referral.CreatedAt = time.Now()
	s.referrals = append(s.referrals, referral)
	return referral, nil
}

func (s *ReferralStore) ListReferrals(ctx context.Context) ([]models.Referral, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.ListErr != nil {
		return nil, s.ListErr
	}
	out := make([]models.Referral, len(s.referrals))
	copy(out, s.referrals)
	return out, nil
}

func (s *ReferralStore) ListReferralsByProgram(ctx context.Context, name string) ([]models.Referral, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.ListErr != nil {
		return nil, s.ListErr
	}
	out := make([]models.Referral, 0)
	for _, r := range s.referrals {
		if r.Name == name {
			out = append(out, r)
		}
	}
	return out, nil
}

// Count reports how many referrals exist; test helper.
func (s *ReferralStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.referrals)
}
