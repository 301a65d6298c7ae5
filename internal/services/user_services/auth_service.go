// File: internal/services/user_services/auth_service.go
package user_services

import (
	"context"
	"errors"
	"fmt"
	"unicode/utf8"

	"golang.org/x/crypto/bcrypt"

	"github.com/lunaris-labs/converse/internal/domain"
	"github.com/lunaris-labs/converse/internal/repository/user"
)

const (
	minUsernameLength = 3
	minPasswordLength = 4
	// bcrypt refuses inputs longer than 72 bytes, so the bound is part of
	// the validation policy rather than a hashing failure.
	maxPasswordBytes = 72

	defaultUsername = "admin"
	defaultPassword = "admin123"
)

// dummyHash is a bcrypt hash of an unguessable throwaway value. Login runs
// a comparison against it when the username is unknown so both failure
// paths cost a full bcrypt verification.
var dummyHash = func() []byte {
	h, err := bcrypt.GenerateFromPassword([]byte("converse-dummy-credential"), bcrypt.DefaultCost)
	if err != nil {
		panic(err)
	}
	return h
}()

// AuthService owns credential validation, hashing, and verification.
type AuthService struct {
	userRepo user.UserRepository
	logger   Logger
}

func NewAuthService(userRepo user.UserRepository, logger Logger) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		logger:   logger,
	}
}

// Register validates input, hashes the password, and creates the account.
// Validation runs before any storage access. Uniqueness is NOT checked
// here; the repository decides it atomically at the unique index, so two
// concurrent registrations for the same username cannot both succeed.
func (s *AuthService) Register(ctx context.Context, username, password string) (*domain.User, error) {
	// Lengths are counted in characters, not bytes, so multibyte names
	// like "añil" measure the way users expect.
	if utf8.RuneCountInString(username) < minUsernameLength {
		return nil, ErrUsernameTooShort
	}
	if utf8.RuneCountInString(password) < minPasswordLength {
		return nil, ErrPasswordTooShort
	}
	if len(password) > maxPasswordBytes {
		return nil, ErrPasswordTooLong
	}

	s.logger.Info("user registration attempt",
		"username", username[:min(4, len(username))]+"****",
		"username_length", len(username))

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		s.logger.Error("password hashing failed",
			"error", err,
			"username", username[:min(4, len(username))]+"****")
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	created, err := s.userRepo.Create(ctx, &domain.User{
		Username:     username,
		PasswordHash: string(hashed),
	})
	if err != nil {
		if errors.Is(err, user.ErrDuplicateUsername) {
			s.logger.Warn("registration failed - username already exists",
				"username", username[:min(4, len(username))]+"****")
			return nil, ErrUsernameTaken
		}
		s.logger.Error("user creation failed",
			"error", err,
			"username", username[:min(4, len(username))]+"****")
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.logger.Info("user registered successfully",
		"username", username[:min(4, len(username))]+"****",
		"user_id", created.ID)

	return created, nil
}

// Login authenticates a user. An unknown username and a known username
// with a wrong password produce the identical error; verification uses the
// bcrypt library's constant-time comparison.
func (s *AuthService) Login(ctx context.Context, username, password string) (*domain.User, error) {
	if username == "" || password == "" {
		s.logger.Warn("login attempt with empty credentials",
			"has_username", username != "",
			"has_password", password != "")
		return nil, ErrInvalidCredentials
	}

	account, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			// Burn a comparison so this path is not measurably faster
			// than a wrong-password rejection.
			_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
			s.logger.Warn("login failed",
				"username", username[:min(4, len(username))]+"****",
				"reason", "unknown_user")
			return nil, ErrInvalidCredentials
		}
		s.logger.Error("login lookup failed",
			"error", err,
			"username", username[:min(4, len(username))]+"****")
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)); err != nil {
		s.logger.Warn("login failed",
			"username", username[:min(4, len(username))]+"****",
			"user_id", account.ID,
			"reason", "password_mismatch")
		return nil, ErrInvalidCredentials
	}

	s.logger.Info("login successful",
		"username", username[:min(4, len(username))]+"****",
		"user_id", account.ID)

	return account, nil
}

// EnsureDefaultAccount creates the well-known admin account if and only if
// it does not exist yet. Losing a creation race to a concurrent bootstrap
// still counts as success, so calling this any number of times leaves
// exactly one default account.
func (s *AuthService) EnsureDefaultAccount(ctx context.Context) error {
	_, err := s.userRepo.FindByUsername(ctx, defaultUsername)
	if err == nil {
		return nil
	}
	if !errors.Is(err, user.ErrUserNotFound) {
		return fmt.Errorf("failed to check default account: %w", err)
	}

	if _, err := s.Register(ctx, defaultUsername, defaultPassword); err != nil {
		if errors.Is(err, ErrUsernameTaken) {
			return nil
		}
		return fmt.Errorf("failed to create default account: %w", err)
	}

	s.logger.Info("default account created", "username", defaultUsername)
	return nil
}
