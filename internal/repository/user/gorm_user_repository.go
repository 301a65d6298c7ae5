// File: internal/repository/user/gorm_user_repository.go
package user

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"gorm.io/gorm"

	"github.com/lunaris-labs/converse/internal/domain"
)

var (
	// ErrUserNotFound is the normal absence result for lookups.
	ErrUserNotFound = errors.New("user not found")
	// ErrDuplicateUsername reports a unique-constraint violation on create.
	// It is decided here, at the storage boundary, so callers never have to
	// inspect driver errors.
	ErrDuplicateUsername = errors.New("username already exists")
)

type gormUserRepository struct {
	db *gorm.DB
}

func NewGormUserRepository(db *gorm.DB) UserRepository {
	return &gormUserRepository{db: db}
}

// Create inserts the user, relying on the unique index on username for
// atomicity. Concurrent creates with the same username yield exactly one
// success; the rest get ErrDuplicateUsername.
func (r *gormUserRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	if user == nil {
		return nil, errors.New("user cannot be nil")
	}
	if user.Username == "" {
		return nil, errors.New("username cannot be empty")
	}

	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicateUsername
		}
		// Secure logging - no credential material exposed
		log.Printf("[UserRepository] Database error during user creation: %v", err)
		return nil, errors.New("database error creating user")
	}

	log.Printf("[UserRepository] User created successfully with ID: %d", user.ID)
	return user, nil
}

func (r *gormUserRepository) FindByID(ctx context.Context, id uint) (*domain.User, error) {
	if id == 0 {
		return nil, errors.New("invalid user ID")
	}

	var user domain.User
	err := r.db.WithContext(ctx).First(&user, id).Error
	return r.handleFindError(err, &user)
}

func (r *gormUserRepository) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	if username == "" {
		return nil, fmt.Errorf("validation failed: username cannot be empty")
	}

	var user domain.User
	err := r.db.WithContext(ctx).Where("username = ?", username).First(&user).Error
	return r.handleFindError(err, &user)
}

// FindAll returns every account ordered by id. The password hash column is
// never selected here; listings carry no credential material.
func (r *gormUserRepository) FindAll(ctx context.Context) ([]domain.User, error) {
	var users []domain.User
	err := r.db.WithContext(ctx).
		Select("id", "username", "created_at").
		Order("id asc").
		Find(&users).Error
	if err != nil {
		log.Printf("[UserRepository] Database error finding all users: %v", err)
		return nil, errors.New("database error retrieving users")
	}

	return users, nil
}

// Delete removes the user and all of their messages in one transaction.
// Either both deletes commit or neither does, so the conversations table
// never holds orphan rows.
func (r *gormUserRepository) Delete(ctx context.Context, userID uint) error {
	if userID == 0 {
		return errors.New("invalid user ID")
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", userID).Delete(&domain.Message{}).Error; err != nil {
			log.Printf("[UserRepository] Database error deleting messages for user ID %d: %v", userID, err)
			return errors.New("database error deleting user messages")
		}

		result := tx.Delete(&domain.User{}, userID)
		if result.Error != nil {
			log.Printf("[UserRepository] Database error deleting user ID %d: %v", userID, result.Error)
			return errors.New("database error deleting user")
		}
		if result.RowsAffected == 0 {
			return ErrUserNotFound
		}

		log.Printf("[UserRepository] User deleted successfully with ID: %d", userID)
		return nil
	})
}

// isUniqueViolation recognizes a unique-constraint failure across the GORM
// translated error and the raw sqlite message.
func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// handleFindError maps gorm.ErrRecordNotFound to the sentinel and keeps
// driver detail out of returned errors.
func (r *gormUserRepository) handleFindError(err error, user *domain.User) (*domain.User, error) {
	if err == nil {
		return user, nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}

	log.Printf("[UserRepository] Database query error: %v", err)
	return nil, errors.New("database query failed")
}
