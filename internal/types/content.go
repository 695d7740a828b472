package types

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// TranscriptKey is the key under which every Content payload stores its
// normalized plain text, regardless of source kind.
const TranscriptKey = "transcript"

// Content is one normalized source item. Data always contains the
// extracted transcript plus source-specific metadata, and is written
// exactly once at ingestion.
type Content struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	SpaceID   uuid.UUID      `gorm:"type:uuid;not null;index" json:"space_id"`
	Space     *Space         `gorm:"constraint:OnDelete:CASCADE;foreignKey:SpaceID;references:ID" json:"space,omitempty"`
	Title     string         `gorm:"column:title;not null" json:"title"`
	Type      string         `gorm:"column:type;not null" json:"type"`
	Data      datatypes.JSON `gorm:"column:data;type:jsonb;not null" json:"data"`
	CreatedAt time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null" json:"updated_at"`
}

func (Content) TableName() string { return "content" }

func (c *Content) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// Transcript unwraps the plain-text payload stored at ingestion.
func (c *Content) Transcript() string {
	var payload map[string]any
	if err := json.Unmarshal(c.Data, &payload); err != nil {
		return ""
	}
	text, _ := payload[TranscriptKey].(string)
	return text
}
