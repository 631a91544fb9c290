package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/msomdec/taskboard/internal/domain"
)

// TokenIssuer signs an access token for a user.
type TokenIssuer interface {
	Generate(userID, email string) (string, error)
}

// LoginResult is returned by a successful login.
type LoginResult struct {
	User  *domain.User
	Token string
	IsNew bool
}

// UserService handles passwordless sign-in and user lookups.
type UserService struct {
	users  domain.UserRepository
	tokens TokenIssuer
}

// NewUserService creates a new UserService.
func NewUserService(users domain.UserRepository, tokens TokenIssuer) *UserService {
	return &UserService{users: users, tokens: tokens}
}

// Create registers a new user. It fails with ErrDuplicateEmail when the
// normalized email is already taken.
func (s *UserService) Create(ctx context.Context, email string) (*domain.User, error) {
	email, err := normalizeAndValidate(email)
	if err != nil {
		return nil, err
	}

	existing, err := s.findByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrDuplicateEmail, email)
	}

	user := &domain.User{Email: email}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

// Login finds the user for email, creating one on first sign-in, and issues
// a token for them.
func (s *UserService) Login(ctx context.Context, email string) (*LoginResult, error) {
	email, err := normalizeAndValidate(email)
	if err != nil {
		return nil, err
	}

	user, err := s.findByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	isNew := false
	if user == nil {
		user = &domain.User{Email: email}
		if err := s.users.Create(ctx, user); err != nil {
			return nil, fmt.Errorf("create user: %w", err)
		}
		isNew = true
	}

	token, err := s.tokens.Generate(user.ID, user.Email)
	if err != nil {
		return nil, fmt.Errorf("generate token: %w", err)
	}

	return &LoginResult{User: user, Token: token, IsNew: isNew}, nil
}

// FindByID returns the user with the given id, or nil if there is none.
func (s *UserService) FindByID(ctx context.Context, id string) (*domain.User, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, fmt.Errorf("%w: user id is required", domain.ErrInvalidInput)
	}

	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return user, nil
}

// FindByEmail returns the user with the given email, or nil if there is
// none. The email is normalized but its shape is not validated.
func (s *UserService) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	email, err := NormalizeEmail(email)
	if err != nil {
		return nil, err
	}
	return s.findByEmail(ctx, email)
}

func (s *UserService) findByEmail(ctx context.Context, email string) (*domain.User, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user by email: %w", err)
	}
	return user, nil
}

func normalizeAndValidate(email string) (string, error) {
	email, err := NormalizeEmail(email)
	if err != nil {
		return "", err
	}
	if err := ValidateEmail(email); err != nil {
		return "", err
	}
	return email, nil
}
