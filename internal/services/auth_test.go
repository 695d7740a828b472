package services

import (
	"context"
	"errors"
	"testing"
	"time"

	pkgerr "github.com/yungbote/videosage-backend/internal/pkg/errors"
	"github.com/yungbote/videosage-backend/internal/repos"
	"github.com/yungbote/videosage-backend/internal/repos/testutil"
	"github.com/yungbote/videosage-backend/internal/types"
)

func newAuthService(t *testing.T) AuthService {
	t.Helper()
	db := testutil.DB(t)
	log := testutil.Logger(t)
	cfg := AuthConfig{
		JWTSecret:  "test-secret",
		AccessTTL:  time.Hour,
		RefreshTTL: 24 * time.Hour,
	}
	return NewAuthService(cfg, repos.NewUserRepo(db, log), repos.NewUserTokenRepo(db, log), log)
}

func TestRegisterAndLogin(t *testing.T) {
	ctx := context.Background()
	auth := newAuthService(t)

	user, err := auth.Register(ctx, "Ada", "ada@example.com", "hunter22")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if user.Password == "hunter22" {
		t.Fatal("password stored in plaintext")
	}

	loggedIn, pair, err := auth.Login(ctx, "ada@example.com", "hunter22")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if loggedIn.ID != user.ID {
		t.Fatalf("user: want=%s got=%s", user.ID, loggedIn.ID)
	}
	if pair.AccessToken == "" || pair.RefreshToken == "" {
		t.Fatalf("empty token pair: %+v", pair)
	}

	userID, err := auth.ParseAccessToken(pair.AccessToken)
	if err != nil {
		t.Fatalf("parse access token: %v", err)
	}
	if userID != user.ID {
		t.Fatalf("token subject: want=%s got=%s", user.ID, userID)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	ctx := context.Background()
	auth := newAuthService(t)

	if _, err := auth.Register(ctx, "Ada", "ada@example.com", "hunter22"); err != nil {
		t.Fatalf("register: %v", err)
	}
	if _, _, err := auth.Login(ctx, "ada@example.com", "wrong"); !errors.Is(err, pkgerr.ErrUnauthorized) {
		t.Fatalf("want unauthorized, got %v", err)
	}
	if _, _, err := auth.Login(ctx, "nobody@example.com", "hunter22"); !errors.Is(err, pkgerr.ErrUnauthorized) {
		t.Fatalf("unknown email: want unauthorized, got %v", err)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	ctx := context.Background()
	auth := newAuthService(t)

	if _, err := auth.Register(ctx, "Ada", "ada@example.com", "hunter22"); err != nil {
		t.Fatalf("register: %v", err)
	}
	if _, err := auth.Register(ctx, "Imposter", "ada@example.com", "other"); !errors.Is(err, pkgerr.ErrEmailTaken) {
		t.Fatalf("want email taken, got %v", err)
	}
}

func TestRefreshRotates(t *testing.T) {
	ctx := context.Background()
	auth := newAuthService(t)

	if _, err := auth.Register(ctx, "Ada", "ada@example.com", "hunter22"); err != nil {
		t.Fatalf("register: %v", err)
	}
	_, pair, err := auth.Login(ctx, "ada@example.com", "hunter22")
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	next, err := auth.Refresh(ctx, pair.RefreshToken)
	if err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if next.RefreshToken == pair.RefreshToken {
		t.Fatal("refresh token must rotate")
	}

	// The spent token is gone.
	if _, err := auth.Refresh(ctx, pair.RefreshToken); !errors.Is(err, pkgerr.ErrUnauthorized) {
		t.Fatalf("reused refresh token: want unauthorized, got %v", err)
	}
}

func TestLoginPurgesExpiredTokens(t *testing.T) {
	ctx := context.Background()
	db := testutil.DB(t)
	log := testutil.Logger(t)
	cfg := AuthConfig{
		JWTSecret:  "test-secret",
		AccessTTL:  time.Hour,
		RefreshTTL: 24 * time.Hour,
	}
	tokens := repos.NewUserTokenRepo(db, log)
	auth := NewAuthService(cfg, repos.NewUserRepo(db, log), tokens, log)

	user, err := auth.Register(ctx, "Ada", "ada@example.com", "hunter22")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	stale := &types.UserToken{
		UserID:       user.ID,
		AccessToken:  "stale-access",
		RefreshToken: "stale-refresh",
		ExpiresAt:    time.Now().Add(-time.Hour),
	}
	if _, err := tokens.Create(ctx, nil, stale); err != nil {
		t.Fatalf("seed stale token: %v", err)
	}

	_, pair, err := auth.Login(ctx, "ada@example.com", "hunter22")
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	gone, err := tokens.GetByRefreshToken(ctx, nil, "stale-refresh")
	if err != nil {
		t.Fatalf("look up stale token: %v", err)
	}
	if gone != nil {
		t.Fatal("expired token must be purged on login")
	}
	fresh, err := tokens.GetByRefreshToken(ctx, nil, pair.RefreshToken)
	if err != nil {
		t.Fatalf("look up fresh token: %v", err)
	}
	if fresh == nil {
		t.Fatal("fresh token must survive the purge")
	}
}

func TestParseAccessTokenGarbage(t *testing.T) {
	auth := newAuthService(t)
	if _, err := auth.ParseAccessToken("not.a.jwt"); !errors.Is(err, pkgerr.ErrUnauthorized) {
		t.Fatalf("want unauthorized, got %v", err)
	}
}
