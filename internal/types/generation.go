package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Generation is one derived artifact computed from a Content's
// transcript. The composite unique index gives at-most-one persisted
// row per (content_id, type); chat turns are returned to the caller
// without ever being persisted, so every stored type participates.
type Generation struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	ContentID uuid.UUID      `gorm:"type:uuid;not null;index;uniqueIndex:idx_generation_content_type" json:"content_id"`
	Content   *Content       `gorm:"constraint:OnDelete:CASCADE;foreignKey:ContentID;references:ID" json:"content,omitempty"`
	Type      string         `gorm:"column:type;not null;uniqueIndex:idx_generation_content_type" json:"type"`
	Data      datatypes.JSON `gorm:"column:data;type:jsonb;not null" json:"data"`
	CreatedAt time.Time      `gorm:"not null" json:"created_at"`
}

func (Generation) TableName() string { return "generation" }

func (g *Generation) BeforeCreate(tx *gorm.DB) error {
	if g.ID == uuid.Nil {
		g.ID = uuid.New()
	}
	return nil
}
