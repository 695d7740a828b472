package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"
	"gorm.io/datatypes"

	"github.com/yungbote/videosage-backend/internal/generation"
	"github.com/yungbote/videosage-backend/internal/pkg/ctxutil"
	pkgerr "github.com/yungbote/videosage-backend/internal/pkg/errors"
	"github.com/yungbote/videosage-backend/internal/pkg/logger"
	"github.com/yungbote/videosage-backend/internal/platform/apierr"
	"github.com/yungbote/videosage-backend/internal/repos"
	"github.com/yungbote/videosage-backend/internal/types"
)

// ArtifactGenerator is the slice of the generator this service needs.
// *generation.Generator satisfies it.
type ArtifactGenerator interface {
	Generate(ctx context.Context, kind generation.Kind, sourceText string) (any, error)
	Chat(ctx context.Context, sourceText, message string, history []generation.Turn) (*generation.Turn, error)
}

type GenerationService interface {
	// GetOrGenerate returns the cached artifact for (content, kind),
	// generating and persisting it first if absent. Concurrent calls
	// for the same pair collapse to one backend invocation in process;
	// across processes the unique index keeps a single committed row.
	GetOrGenerate(ctx context.Context, userID, contentID uuid.UUID, kind generation.Kind) (*types.Generation, error)
	List(ctx context.Context, userID, contentID uuid.UUID) ([]*types.Generation, error)
	// ChatTurn answers one chat message against the content's
	// transcript. Turns are never persisted.
	ChatTurn(ctx context.Context, userID, contentID uuid.UUID, message string, history []generation.Turn) (*generation.Turn, error)
}

type generationService struct {
	gens      repos.GenerationRepo
	access    AccessService
	generator ArtifactGenerator
	inflight  singleflight.Group
	log       *logger.Logger
}

func NewGenerationService(gens repos.GenerationRepo, access AccessService, gen ArtifactGenerator, baseLog *logger.Logger) GenerationService {
	return &generationService{
		gens:      gens,
		access:    access,
		generator: gen,
		log:       baseLog.With("service", "GenerationService"),
	}
}

func (s *generationService) GetOrGenerate(ctx context.Context, userID, contentID uuid.UUID, kind generation.Kind) (*types.Generation, error) {
	ctx = ctxutil.Default(ctx)
	if !kind.Cached() {
		return nil, apierr.New(http.StatusBadRequest, "kind_not_cacheable",
			fmt.Errorf("%w: kind %q is not a cached artifact", pkgerr.ErrInvalidArgument, kind))
	}

	content, err := s.access.AuthorizeContent(ctx, userID, contentID)
	if err != nil {
		return nil, err
	}

	existing, err := s.gens.GetByContentAndType(ctx, nil, contentID, string(kind))
	if err != nil {
		return nil, fmt.Errorf("failed to read generations: %w", err)
	}
	if len(existing) > 0 {
		return existing[0], nil
	}

	key := contentID.String() + ":" + string(kind)
	v, err, _ := s.inflight.Do(key, func() (any, error) {
		return s.generateAndStore(ctx, content, kind)
	})
	if err != nil {
		return nil, err
	}
	return v.(*types.Generation), nil
}

func (s *generationService) generateAndStore(ctx context.Context, content *types.Content, kind generation.Kind) (*types.Generation, error) {
	// A racing request may have committed while we queued.
	existing, err := s.gens.GetByContentAndType(ctx, nil, content.ID, string(kind))
	if err != nil {
		return nil, fmt.Errorf("failed to read generations: %w", err)
	}
	if len(existing) > 0 {
		return existing[0], nil
	}

	payload, err := s.generator.Generate(ctx, kind, content.Transcript())
	if err != nil {
		return nil, err
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to encode artifact: %w", err)
	}

	gen, created, err := s.gens.CreateIfAbsent(ctx, nil, &types.Generation{
		ContentID: content.ID,
		Type:      string(kind),
		Data:      datatypes.JSON(data),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to persist generation: %w", err)
	}
	if !created {
		s.log.Info("discarded duplicate generation", "content_id", content.ID, "kind", kind)
	}
	return gen, nil
}

func (s *generationService) List(ctx context.Context, userID, contentID uuid.UUID) ([]*types.Generation, error) {
	ctx = ctxutil.Default(ctx)
	if _, err := s.access.AuthorizeContent(ctx, userID, contentID); err != nil {
		return nil, err
	}
	gens, err := s.gens.GetByContentID(ctx, nil, contentID)
	if err != nil {
		return nil, fmt.Errorf("failed to list generations: %w", err)
	}
	return gens, nil
}

func (s *generationService) ChatTurn(ctx context.Context, userID, contentID uuid.UUID, message string, history []generation.Turn) (*generation.Turn, error) {
	ctx = ctxutil.Default(ctx)
	if message == "" {
		return nil, apierr.New(http.StatusBadRequest, "missing_message",
			fmt.Errorf("%w: chat message is required", pkgerr.ErrInvalidArgument))
	}
	content, err := s.access.AuthorizeContent(ctx, userID, contentID)
	if err != nil {
		return nil, err
	}
	return s.generator.Chat(ctx, content.Transcript(), message, history)
}
