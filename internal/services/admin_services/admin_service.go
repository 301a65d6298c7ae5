// File: internal/services/admin_services/admin_service.go
package admin_services

import (
	"context"
	"fmt"

	"github.com/lunaris-labs/converse/internal/dtos"
	"github.com/lunaris-labs/converse/internal/repository/user"
)

// Logger interface for admin services
type Logger interface {
	Info(msg string, keysAndValues ...interface{})
	Error(msg string, keysAndValues ...interface{})
	Debug(msg string, keysAndValues ...interface{})
	Warn(msg string, keysAndValues ...interface{})
}

// AdminService provides functionalities for administrative tasks.
type AdminService struct {
	userRepo user.UserRepository
	logger   Logger
}

// NewAdminService creates a new instance of AdminService.
func NewAdminService(userRepo user.UserRepository, logger Logger) *AdminService {
	return &AdminService{
		userRepo: userRepo,
		logger:   logger,
	}
}

// ListUsers retrieves all accounts as summaries. The password hash never
// leaves the repository layer through this path.
func (s *AdminService) ListUsers(ctx context.Context) ([]dtos.UserSummary, error) {
	users, err := s.userRepo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	summaries := make([]dtos.UserSummary, 0, len(users))
	for _, u := range users {
		summaries = append(summaries, dtos.UserSummary{
			ID:        u.ID,
			Username:  u.Username,
			CreatedAt: u.CreatedAt,
		})
	}
	return summaries, nil
}

// DeleteUser removes an account and cascades to its conversation log. The
// repository runs both deletes in one transaction.
func (s *AdminService) DeleteUser(ctx context.Context, userID uint) error {
	if err := s.userRepo.Delete(ctx, userID); err != nil {
		return fmt.Errorf("failed to delete user %d: %w", userID, err)
	}

	s.logger.Info("user deleted with conversation history", "user_id", userID)
	return nil
}
