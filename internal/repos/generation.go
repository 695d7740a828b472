package repos

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/yungbote/videosage-backend/internal/pkg/logger"
	"github.com/yungbote/videosage-backend/internal/types"
)

type GenerationRepo interface {
	// CreateIfAbsent inserts gen unless a row for the same
	// (content_id, type) already exists, in which case the committed
	// row is returned and created is false. Safe to call from
	// concurrent requests; the unique index decides the winner.
	CreateIfAbsent(ctx context.Context, tx *gorm.DB, gen *types.Generation) (result *types.Generation, created bool, err error)
	GetByContentAndType(ctx context.Context, tx *gorm.DB, contentID uuid.UUID, genType string) ([]*types.Generation, error)
	GetByContentID(ctx context.Context, tx *gorm.DB, contentID uuid.UUID) ([]*types.Generation, error)
	DeleteByID(ctx context.Context, tx *gorm.DB, genID uuid.UUID) error
}

type generationRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewGenerationRepo(db *gorm.DB, baseLog *logger.Logger) GenerationRepo {
	return &generationRepo{db: db, log: baseLog.With("repo", "GenerationRepo")}
}

func (r *generationRepo) CreateIfAbsent(ctx context.Context, tx *gorm.DB, gen *types.Generation) (*types.Generation, bool, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	res := transaction.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "content_id"}, {Name: "type"}},
			DoNothing: true,
		}).
		Create(gen)
	if res.Error != nil {
		return nil, false, res.Error
	}
	if res.RowsAffected > 0 {
		return gen, true, nil
	}

	// Lost the race; hand back the row that won.
	existing, err := r.GetByContentAndType(ctx, transaction, gen.ContentID, gen.Type)
	if err != nil {
		return nil, false, err
	}
	if len(existing) == 0 {
		return nil, false, fmt.Errorf("generation insert conflicted but no committed row found for content %s type %s", gen.ContentID, gen.Type)
	}
	return existing[0], false, nil
}

func (r *generationRepo) GetByContentAndType(ctx context.Context, tx *gorm.DB, contentID uuid.UUID, genType string) ([]*types.Generation, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var gens []*types.Generation
	if err := transaction.WithContext(ctx).
		Where("content_id = ? AND type = ?", contentID, genType).
		Order("created_at ASC").
		Find(&gens).Error; err != nil {
		return nil, err
	}
	return gens, nil
}

func (r *generationRepo) GetByContentID(ctx context.Context, tx *gorm.DB, contentID uuid.UUID) ([]*types.Generation, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var gens []*types.Generation
	if err := transaction.WithContext(ctx).
		Where("content_id = ?", contentID).
		Order("created_at ASC").
		Find(&gens).Error; err != nil {
		return nil, err
	}
	return gens, nil
}

func (r *generationRepo) DeleteByID(ctx context.Context, tx *gorm.DB, genID uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	return transaction.WithContext(ctx).Where("id = ?", genID).Delete(&types.Generation{}).Error
}
