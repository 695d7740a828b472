package testutil

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/yungbote/videosage-backend/internal/types"
)

func SeedUser(tb testing.TB, ctx context.Context, tx *gorm.DB, email string) *types.User {
	tb.Helper()
	u := &types.User{
		ID:       uuid.New(),
		Name:     "Test User",
		Email:    email,
		Password: "pw",
	}
	if err := tx.WithContext(ctx).Create(u).Error; err != nil {
		tb.Fatalf("seed user: %v", err)
	}
	return u
}

func SeedSpace(tb testing.TB, ctx context.Context, tx *gorm.DB, userID uuid.UUID) *types.Space {
	tb.Helper()
	s := &types.Space{
		ID:     uuid.New(),
		UserID: userID,
		Name:   "space",
	}
	if err := tx.WithContext(ctx).Create(s).Error; err != nil {
		tb.Fatalf("seed space: %v", err)
	}
	return s
}

func SeedContent(tb testing.TB, ctx context.Context, tx *gorm.DB, spaceID uuid.UUID, transcript string) *types.Content {
	tb.Helper()
	data, err := json.Marshal(map[string]any{types.TranscriptKey: transcript})
	if err != nil {
		tb.Fatalf("marshal content data: %v", err)
	}
	c := &types.Content{
		ID:      uuid.New(),
		SpaceID: spaceID,
		Title:   "content",
		Type:    "youtube",
		Data:    datatypes.JSON(data),
	}
	if err := tx.WithContext(ctx).Create(c).Error; err != nil {
		tb.Fatalf("seed content: %v", err)
	}
	return c
}

func SeedGeneration(tb testing.TB, ctx context.Context, tx *gorm.DB, contentID uuid.UUID, genType string) *types.Generation {
	tb.Helper()
	g := &types.Generation{
		ID:        uuid.New(),
		ContentID: contentID,
		Type:      genType,
		Data:      datatypes.JSON([]byte(`{}`)),
	}
	if err := tx.WithContext(ctx).Create(g).Error; err != nil {
		tb.Fatalf("seed generation: %v", err)
	}
	return g
}
