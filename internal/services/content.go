package services

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/yungbote/videosage-backend/internal/ingestion/extractor"
	"github.com/yungbote/videosage-backend/internal/pkg/ctxutil"
	pkgerr "github.com/yungbote/videosage-backend/internal/pkg/errors"
	"github.com/yungbote/videosage-backend/internal/pkg/logger"
	"github.com/yungbote/videosage-backend/internal/repos"
	"github.com/yungbote/videosage-backend/internal/types"
)

type ContentService interface {
	// Ingest extracts text from the source and persists one content
	// row. Nothing is written when extraction fails.
	Ingest(ctx context.Context, userID, spaceID uuid.UUID, title string, kind extractor.SourceKind, src extractor.Source) (*types.Content, error)
	Get(ctx context.Context, userID, contentID uuid.UUID) (*types.Content, error)
	List(ctx context.Context, userID, spaceID uuid.UUID) ([]*types.Content, error)
	Delete(ctx context.Context, userID, contentID uuid.UUID) error
}

type contentService struct {
	contents  repos.ContentRepo
	access    AccessService
	extractor *extractor.Extractor
	log       *logger.Logger
}

func NewContentService(contents repos.ContentRepo, access AccessService, ext *extractor.Extractor, baseLog *logger.Logger) ContentService {
	return &contentService{
		contents:  contents,
		access:    access,
		extractor: ext,
		log:       baseLog.With("service", "ContentService"),
	}
}

func (s *contentService) Ingest(ctx context.Context, userID, spaceID uuid.UUID, title string, kind extractor.SourceKind, src extractor.Source) (*types.Content, error) {
	ctx = ctxutil.Default(ctx)

	if _, err := s.access.AuthorizeSpace(ctx, userID, spaceID); err != nil {
		return nil, err
	}
	if title == "" {
		return nil, fmt.Errorf("%w: content title is required", pkgerr.ErrInvalidArgument)
	}

	result, err := s.extractor.Extract(ctx, kind, src)
	if err != nil {
		s.log.Warn("extraction failed", "space_id", spaceID, "kind", kind, "error", err)
		return nil, err
	}

	payload := map[string]any{types.TranscriptKey: result.Text}
	for k, v := range result.Metadata {
		if k == types.TranscriptKey {
			continue
		}
		payload[k] = v
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to encode content payload: %w", err)
	}

	content, err := s.contents.Create(ctx, nil, &types.Content{
		SpaceID: spaceID,
		Title:   title,
		Type:    string(kind),
		Data:    datatypes.JSON(data),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create content: %w", err)
	}
	s.log.Info("ingested content", "content_id", content.ID, "kind", kind, "text_len", len(result.Text))
	return content, nil
}

func (s *contentService) Get(ctx context.Context, userID, contentID uuid.UUID) (*types.Content, error) {
	return s.access.AuthorizeContent(ctxutil.Default(ctx), userID, contentID)
}

func (s *contentService) List(ctx context.Context, userID, spaceID uuid.UUID) ([]*types.Content, error) {
	ctx = ctxutil.Default(ctx)
	if _, err := s.access.AuthorizeSpace(ctx, userID, spaceID); err != nil {
		return nil, err
	}
	contents, err := s.contents.GetBySpaceID(ctx, nil, spaceID)
	if err != nil {
		return nil, fmt.Errorf("failed to list contents: %w", err)
	}
	return contents, nil
}

func (s *contentService) Delete(ctx context.Context, userID, contentID uuid.UUID) error {
	ctx = ctxutil.Default(ctx)
	if _, err := s.access.AuthorizeContent(ctx, userID, contentID); err != nil {
		return err
	}
	if err := s.contents.DeleteByID(ctx, nil, contentID); err != nil {
		return fmt.Errorf("failed to delete content: %w", err)
	}
	s.log.Info("deleted content", "content_id", contentID)
	return nil
}
