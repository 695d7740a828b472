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

type SpaceService interface {
	Create(ctx context.Context, userID uuid.UUID, name, description string) (*types.Space, error)
	Get(ctx context.Context, userID, spaceID uuid.UUID) (*types.Space, error)
	List(ctx context.Context, userID uuid.UUID) ([]*types.Space, error)
	Update(ctx context.Context, userID, spaceID uuid.UUID, name, description string) (*types.Space, error)
	Delete(ctx context.Context, userID, spaceID uuid.UUID) error
}

type spaceService struct {
	spaces repos.SpaceRepo
	access AccessService
	log    *logger.Logger
}

func NewSpaceService(spaces repos.SpaceRepo, access AccessService, baseLog *logger.Logger) SpaceService {
	return &spaceService{
		spaces: spaces,
		access: access,
		log:    baseLog.With("service", "SpaceService"),
	}
}

func (s *spaceService) Create(ctx context.Context, userID uuid.UUID, name, description string) (*types.Space, error) {
	ctx = ctxutil.Default(ctx)
	if name == "" {
		return nil, fmt.Errorf("%w: space name is required", pkgerr.ErrInvalidArgument)
	}
	space, err := s.spaces.Create(ctx, nil, &types.Space{
		UserID:      userID,
		Name:        name,
		Description: description,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create space: %w", err)
	}
	return space, nil
}

func (s *spaceService) Get(ctx context.Context, userID, spaceID uuid.UUID) (*types.Space, error) {
	return s.access.AuthorizeSpace(ctxutil.Default(ctx), userID, spaceID)
}

func (s *spaceService) List(ctx context.Context, userID uuid.UUID) ([]*types.Space, error) {
	ctx = ctxutil.Default(ctx)
	spaces, err := s.spaces.GetByUserID(ctx, nil, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list spaces: %w", err)
	}
	return spaces, nil
}

func (s *spaceService) Update(ctx context.Context, userID, spaceID uuid.UUID, name, description string) (*types.Space, error) {
	ctx = ctxutil.Default(ctx)
	space, err := s.access.AuthorizeSpace(ctx, userID, spaceID)
	if err != nil {
		return nil, err
	}
	if name == "" {
		return nil, fmt.Errorf("%w: space name is required", pkgerr.ErrInvalidArgument)
	}
	space.Name = name
	space.Description = description
	updated, err := s.spaces.Update(ctx, nil, space)
	if err != nil {
		return nil, fmt.Errorf("failed to update space: %w", err)
	}
	return updated, nil
}

func (s *spaceService) Delete(ctx context.Context, userID, spaceID uuid.UUID) error {
	ctx = ctxutil.Default(ctx)
	if _, err := s.access.AuthorizeSpace(ctx, userID, spaceID); err != nil {
		return err
	}
	if err := s.spaces.DeleteByID(ctx, nil, spaceID); err != nil {
		return fmt.Errorf("failed to delete space: %w", err)
	}
	s.log.Info("deleted space", "space_id", spaceID)
	return nil
}
