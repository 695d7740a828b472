package repos

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/videosage-backend/internal/pkg/logger"
	"github.com/yungbote/videosage-backend/internal/types"
)

type SpaceRepo interface {
	Create(ctx context.Context, tx *gorm.DB, space *types.Space) (*types.Space, error)
	GetByID(ctx context.Context, tx *gorm.DB, spaceID uuid.UUID) (*types.Space, error)
	GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.Space, error)
	Update(ctx context.Context, tx *gorm.DB, space *types.Space) (*types.Space, error)
	DeleteByID(ctx context.Context, tx *gorm.DB, spaceID uuid.UUID) error
}

type spaceRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewSpaceRepo(db *gorm.DB, baseLog *logger.Logger) SpaceRepo {
	return &spaceRepo{db: db, log: baseLog.With("repo", "SpaceRepo")}
}

func (r *spaceRepo) Create(ctx context.Context, tx *gorm.DB, space *types.Space) (*types.Space, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if err := transaction.WithContext(ctx).Create(space).Error; err != nil {
		return nil, err
	}
	return space, nil
}

func (r *spaceRepo) GetByID(ctx context.Context, tx *gorm.DB, spaceID uuid.UUID) (*types.Space, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var space types.Space
	err := transaction.WithContext(ctx).Where("id = ?", spaceID).First(&space).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &space, nil
}

func (r *spaceRepo) GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.Space, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var spaces []*types.Space
	if err := transaction.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&spaces).Error; err != nil {
		return nil, err
	}
	return spaces, nil
}

// Update writes name and description only. Ownership never moves.
func (r *spaceRepo) Update(ctx context.Context, tx *gorm.DB, space *types.Space) (*types.Space, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	err := transaction.WithContext(ctx).
		Model(&types.Space{}).
		Where("id = ?", space.ID).
		Updates(map[string]any{
			"name":        space.Name,
			"description": space.Description,
		}).Error
	if err != nil {
		return nil, err
	}
	return r.GetByID(ctx, transaction, space.ID)
}

func (r *spaceRepo) DeleteByID(ctx context.Context, tx *gorm.DB, spaceID uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	return transaction.WithContext(ctx).Where("id = ?", spaceID).Delete(&types.Space{}).Error
}
