package user

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/example/storefront/internal/auth"
)

// Store is the document store contract for users. Email lookup is exact
// match on the normalized (lowercased) address.
type Store interface {
	CreateUser(ctx context.Context, u *User) error
	GetUser(ctx context.Context, id string) (*User, bool, error)
	GetUserByEmail(ctx context.Context, email string) (*User, bool, error)
}

type Service struct {
	users Store
}

func NewService(users Store) *Service {
	return &Service{users: users}
}

// Register creates a customer account. Password rules live in the auth
// package; auth.ErrPasswordTooShort passes through to the caller.
func (s *Service) Register(ctx context.Context, name, email, password string) (*User, error) {
	email = normalizeEmail(email)

	if _, exists, err := s.users.GetUserByEmail(ctx, email); err != nil {
		return nil, fmt.Errorf("lookup email: %w", err)
	} else if exists {
		return nil, ErrEmailTaken
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, err
	}

	u := &User{
		ID:           uuid.New().String(),
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         RoleCustomer,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.users.CreateUser(ctx, u); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	return u, nil
}

// Authenticate verifies an email/password pair. Unknown email and wrong
// password report the same error so the response does not leak which
// addresses are registered.
func (s *Service) Authenticate(ctx context.Context, email, password string) (*User, error) {
	u, exists, err := s.users.GetUserByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return nil, fmt.Errorf("lookup email: %w", err)
	}
	if !exists || !auth.CheckPassword(password, u.PasswordHash) {
		return nil, ErrInvalidCredentials
	}
	return u, nil
}

// Get returns a user by id.
func (s *Service) Get(ctx context.Context, id string) (*User, error) {
	u, exists, err := s.users.GetUser(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get user %s: %w", id, err)
	}
	if !exists {
		return nil, ErrUserNotFound
	}
	return u, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
