package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/lagoon-stays/lagoon/internal/rbac"
	"github.com/lagoon-stays/lagoon/internal/users"
)

// ErrInvalidCredentials indicates login failure.
var ErrInvalidCredentials = errors.New("auth: invalid credentials")

// UserStore defines the user persistence contract consumed by the service.
type UserStore interface {
	Create(ctx context.Context, input users.CreateInput) (users.User, error)
	FindByEmail(ctx context.Context, email string) (users.User, error)
	FindByID(ctx context.Context, id uuid.UUID) (users.User, error)
	List(ctx context.Context) ([]users.User, error)
}

// Service wraps account and credential business rules.
type Service struct {
	store  UserStore
	tokens *TokenService
}

// NewService constructs a new Service.
func NewService(store UserStore, tokens *TokenService) *Service {
	return &Service{store: store, tokens: tokens}
}

// Register creates a regular user account and issues a token for it.
func (s *Service) Register(ctx context.Context, name, email, password string) (users.User, string, error) {
	return s.createAccount(ctx, name, email, password, rbac.RoleUser)
}

// CreateAdmin creates an admin account. Callers gate this behind the
// manage_admins permission.
func (s *Service) CreateAdmin(ctx context.Context, name, email, password string) (users.User, error) {
	user, _, err := s.createAccount(ctx, name, email, password, rbac.RoleAdmin)
	return user, err
}

func (s *Service) createAccount(ctx context.Context, name, email, password string, role rbac.Role) (users.User, string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return users.User{}, "", fmt.Errorf("auth: hash password: %w", err)
	}
	user, err := s.store.Create(ctx, users.CreateInput{
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
	})
	if err != nil {
		return users.User{}, "", err
	}
	token, err := s.tokens.Issue(user.ID, user.Role)
	if err != nil {
		return users.User{}, "", err
	}
	return user, token, nil
}

// Login validates email/password credentials and issues a token.
func (s *Service) Login(ctx context.Context, email, password string) (users.User, string, error) {
	user, err := s.store.FindByEmail(ctx, email)
	if err != nil {
		return users.User{}, "", ErrInvalidCredentials
	}
	if !user.IsActive {
		return users.User{}, "", ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return users.User{}, "", ErrInvalidCredentials
	}
	token, err := s.tokens.Issue(user.ID, user.Role)
	if err != nil {
		return users.User{}, "", err
	}
	return user, token, nil
}

// Profile returns the account backing the authenticated principal.
func (s *Service) Profile(ctx context.Context, p *rbac.Principal) (users.User, error) {
	if p == nil {
		return users.User{}, rbac.ErrUnauthenticated
	}
	return s.store.FindByID(ctx, p.UserID)
}

// ListUsers returns every registered account.
func (s *Service) ListUsers(ctx context.Context) ([]users.User, error) {
	return s.store.List(ctx)
}
