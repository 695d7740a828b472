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

// AccessService resolves a resource and checks that the caller owns it.
// Existence is checked before ownership, so a missing resource is
// always ErrNotFound and an existing resource owned by someone else is
// always ErrForbidden, and a caller cannot probe for resource IDs.
type AccessService interface {
	AuthorizeSpace(ctx context.Context, userID, spaceID uuid.UUID) (*types.Space, error)
	AuthorizeContent(ctx context.Context, userID, contentID uuid.UUID) (*types.Content, error)
}

type accessService struct {
	spaces   repos.SpaceRepo
	contents repos.ContentRepo
	log      *logger.Logger
}

func NewAccessService(spaces repos.SpaceRepo, contents repos.ContentRepo, baseLog *logger.Logger) AccessService {
	return &accessService{
		spaces:   spaces,
		contents: contents,
		log:      baseLog.With("service", "AccessService"),
	}
}

func (s *accessService) AuthorizeSpace(ctx context.Context, userID, spaceID uuid.UUID) (*types.Space, error) {
	ctx = ctxutil.Default(ctx)

	space, err := s.spaces.GetByID(ctx, nil, spaceID)
	if err != nil {
		return nil, fmt.Errorf("failed to load space: %w", err)
	}
	if space == nil {
		return nil, pkgerr.ErrNotFound
	}
	if space.UserID != userID {
		return nil, pkgerr.ErrForbidden
	}
	return space, nil
}

// AuthorizeContent walks content -> space -> owner.
func (s *accessService) AuthorizeContent(ctx context.Context, userID, contentID uuid.UUID) (*types.Content, error) {
	ctx = ctxutil.Default(ctx)

	content, err := s.contents.GetByID(ctx, nil, contentID)
	if err != nil {
		return nil, fmt.Errorf("failed to load content: %w", err)
	}
	if content == nil {
		return nil, pkgerr.ErrNotFound
	}
	if _, err := s.AuthorizeSpace(ctx, userID, content.SpaceID); err != nil {
		return nil, err
	}
	return content, nil
}
