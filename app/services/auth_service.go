package services

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"

	"gorm.io/gorm"

	"github.com/shashiranjanraj/market/app/models"
	"github.com/shashiranjanraj/market/app/repositories"
	"github.com/shashiranjanraj/market/pkg/auth"
)

// AuthService registers users, logs them in and resolves bearer tokens.
type AuthService struct {
	users  *repositories.UserRepository
	tokens *auth.TokenService
}

func NewAuthService(db *gorm.DB, tokens *auth.TokenService) *AuthService {
	return &AuthService{users: repositories.NewUserRepository(db), tokens: tokens}
}

// Register creates an active user with a bcrypt-hashed password.
func (s *AuthService) Register(ctx context.Context, name, email, password string) (models.User, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if name == "" {
		return models.User{}, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return models.User{}, fmt.Errorf("%w: invalid email %q", ErrInvalidInput, email)
	}
	if len(password) < 8 {
		return models.User{}, fmt.Errorf("%w: password must be at least 8 characters", ErrInvalidInput)
	}

	if _, err := s.users.FindByEmail(ctx, email); err == nil {
		return models.User{}, fmt.Errorf("%w: %s", ErrEmailTaken, email)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return models.User{}, err
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return models.User{}, err
	}
	u := models.User{
		Name:                  name,
		Email:                 email,
		Password:              hash,
		Enabled:               true,
		AccountNonExpired:     true,
		AccountNonLocked:      true,
		CredentialsNonExpired: true,
	}
	if err := s.users.Create(ctx, &u); err != nil {
		return models.User{}, err
	}
	return u, nil
}

// Login checks the password and issues a token for the user's email.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	u, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", err
	}
	if !auth.CheckPassword(u.Password, password) {
		return "", ErrInvalidCredentials
	}
	if err := auth.CheckAccount(u.Credentials()); err != nil {
		return "", err
	}
	return s.tokens.Issue(u.Email)
}

// Identify resolves a token to its user and validates it against the
// user's current credential flags.
func (s *AuthService) Identify(ctx context.Context, token string) (models.User, error) {
	subject, err := s.tokens.Subject(token)
	if err != nil {
		return models.User{}, err
	}
	u, err := s.users.FindByEmail(ctx, subject)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.User{}, fmt.Errorf("%w: %w", auth.ErrUnknownSubject, notFound(err, "user", subject))
	}
	if err != nil {
		return models.User{}, err
	}
	if err := s.tokens.Validate(token, u.Credentials()); err != nil {
		return models.User{}, err
	}
	return u, nil
}

// Resolve is Identify reduced to the identity the HTTP layer carries.
func (s *AuthService) Resolve(ctx context.Context, token string) (auth.Identity, error) {
	u, err := s.Identify(ctx, token)
	if err != nil {
		return auth.Identity{}, err
	}
	return auth.Identity{UserID: u.ID, Email: u.Email}, nil
}
