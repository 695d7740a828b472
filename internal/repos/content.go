package repos

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/videosage-backend/internal/pkg/logger"
	"github.com/yungbote/videosage-backend/internal/types"
)

type ContentRepo interface {
	Create(ctx context.Context, tx *gorm.DB, content *types.Content) (*types.Content, error)
	GetByID(ctx context.Context, tx *gorm.DB, contentID uuid.UUID) (*types.Content, error)
	GetBySpaceID(ctx context.Context, tx *gorm.DB, spaceID uuid.UUID) ([]*types.Content, error)
	DeleteByID(ctx context.Context, tx *gorm.DB, contentID uuid.UUID) error
}

type contentRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewContentRepo(db *gorm.DB, baseLog *logger.Logger) ContentRepo {
	return &contentRepo{db: db, log: baseLog.With("repo", "ContentRepo")}
}

func (r *contentRepo) Create(ctx context.Context, tx *gorm.DB, content *types.Content) (*types.Content, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if err := transaction.WithContext(ctx).Create(content).Error; err != nil {
		return nil, err
	}
	return content, nil
}

func (r *contentRepo) GetByID(ctx context.Context, tx *gorm.DB, contentID uuid.UUID) (*types.Content, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var content types.Content
	err := transaction.WithContext(ctx).Where("id = ?", contentID).First(&content).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &content, nil
}

func (r *contentRepo) GetBySpaceID(ctx context.Context, tx *gorm.DB, spaceID uuid.UUID) ([]*types.Content, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var contents []*types.Content
	if err := transaction.WithContext(ctx).
		Where("space_id = ?", spaceID).
		Order("created_at ASC").
		Find(&contents).Error; err != nil {
		return nil, err
	}
	return contents, nil
}

func (r *contentRepo) DeleteByID(ctx context.Context, tx *gorm.DB, contentID uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	return transaction.WithContext(ctx).Where("id = ?", contentID).Delete(&types.Content{}).Error
}
