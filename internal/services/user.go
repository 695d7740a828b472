package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/yungbote/videosage-backend/internal/pkg/ctxutil"
	pkgerr "github.com/yungbote/videosage-backend/internal/pkg/errors"
	"github.com/yungbote/videosage-backend/internal/pkg/logger"
	"github.com/yungbote/videosage-backend/internal/repos"
	"github.com/yungbote/videosage-backend/internal/types"
)

type UserService interface {
	Get(ctx context.Context, userID uuid.UUID) (*types.User, error)
	// Delete removes the user; spaces, contents, generations and
	// tokens go with it through the FK cascade.
	Delete(ctx context.Context, userID uuid.UUID) error
}

type userService struct {
	users repos.UserRepo
	log   *logger.Logger
}

func NewUserService(users repos.UserRepo, baseLog *logger.Logger) UserService {
	return &userService{users: users, log: baseLog.With("service", "UserService")}
}

func (s *userService) Get(ctx context.Context, userID uuid.UUID) (*types.User, error) {
	ctx = ctxutil.Default(ctx)
	user, err := s.users.GetByID(ctx, nil, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	if user == nil {
		return nil, pkgerr.ErrNotFound
	}
	return user, nil
}

func (s *userService) Delete(ctx context.Context, userID uuid.UUID) error {
	ctx = ctxutil.Default(ctx)
	user, err := s.users.GetByID(ctx, nil, userID)
	if err != nil {
		return fmt.Errorf("failed to load user: %w", err)
	}
	if user == nil {
		return pkgerr.ErrNotFound
	}
	if err := s.users.DeleteByID(ctx, nil, userID); err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	s.log.Info("deleted user", "user_id", userID)
	return nil
}
