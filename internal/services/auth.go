package services

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/yungbote/videosage-backend/internal/pkg/ctxutil"
	pkgerr "github.com/yungbote/videosage-backend/internal/pkg/errors"
	"github.com/yungbote/videosage-backend/internal/pkg/logger"
	"github.com/yungbote/videosage-backend/internal/repos"
	"github.com/yungbote/videosage-backend/internal/types"
)

// AuthConfig carries the signing material and token lifetimes.
type AuthConfig struct {
	JWTSecret  string
	AccessTTL  time.Duration
	RefreshTTL time.Duration
}

// TokenPair is what a successful login or refresh hands back.
type TokenPair struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	ExpiresAt    time.Time `json:"expires_at"`
}

type AuthService interface {
	Register(ctx context.Context, name, email, password string) (*types.User, error)
	Login(ctx context.Context, email, password string) (*types.User, *TokenPair, error)
	Refresh(ctx context.Context, refreshToken string) (*TokenPair, error)
	Logout(ctx context.Context, userID uuid.UUID) error
	// ParseAccessToken validates a bearer token and returns the user it
	// was issued to.
	ParseAccessToken(token string) (uuid.UUID, error)
}

type authService struct {
	cfg    AuthConfig
	users  repos.UserRepo
	tokens repos.UserTokenRepo
	log    *logger.Logger
}

func NewAuthService(cfg AuthConfig, users repos.UserRepo, tokens repos.UserTokenRepo, baseLog *logger.Logger) AuthService {
	return &authService{
		cfg:    cfg,
		users:  users,
		tokens: tokens,
		log:    baseLog.With("service", "AuthService"),
	}
}

func (s *authService) Register(ctx context.Context, name, email, password string) (*types.User, error) {
	ctx = ctxutil.Default(ctx)
	if email == "" || password == "" {
		return nil, fmt.Errorf("%w: email and password are required", pkgerr.ErrInvalidArgument)
	}

	existing, err := s.users.GetByEmail(ctx, nil, email)
	if err != nil {
		return nil, fmt.Errorf("failed to look up email: %w", err)
	}
	if existing != nil {
		return nil, pkgerr.ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user, err := s.users.Create(ctx, nil, &types.User{
		Name:     name,
		Email:    email,
		Password: string(hash),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	s.log.Info("registered user", "user_id", user.ID)
	return user, nil
}

func (s *authService) Login(ctx context.Context, email, password string) (*types.User, *TokenPair, error) {
	ctx = ctxutil.Default(ctx)

	user, err := s.users.GetByEmail(ctx, nil, email)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to look up email: %w", err)
	}
	if user == nil {
		return nil, nil, pkgerr.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, nil, pkgerr.ErrUnauthorized
	}

	// Expired refresh tokens can never be presented again; login is a
	// convenient moment to sweep them. Failure does not block the login.
	if err := s.tokens.DeleteExpired(ctx, nil); err != nil {
		s.log.Warn("failed to purge expired refresh tokens", "error", err)
	}

	pair, err := s.issueTokens(ctx, user.ID)
	if err != nil {
		return nil, nil, err
	}
	return user, pair, nil
}

func (s *authService) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	ctx = ctxutil.Default(ctx)

	row, err := s.tokens.GetByRefreshToken(ctx, nil, refreshToken)
	if err != nil {
		return nil, fmt.Errorf("failed to look up refresh token: %w", err)
	}
	if row == nil || time.Now().After(row.ExpiresAt) {
		return nil, pkgerr.ErrUnauthorized
	}

	// Rotate: the presented refresh token is single use.
	if err := s.tokens.DeleteByUserID(ctx, nil, row.UserID); err != nil {
		return nil, fmt.Errorf("failed to rotate refresh token: %w", err)
	}
	return s.issueTokens(ctx, row.UserID)
}

func (s *authService) Logout(ctx context.Context, userID uuid.UUID) error {
	ctx = ctxutil.Default(ctx)
	if err := s.tokens.DeleteByUserID(ctx, nil, userID); err != nil {
		return fmt.Errorf("failed to delete tokens: %w", err)
	}
	return nil
}

func (s *authService) ParseAccessToken(token string) (uuid.UUID, error) {
	parsed, err := jwt.Parse(token, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(s.cfg.JWTSecret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !parsed.Valid {
		return uuid.Nil, pkgerr.ErrUnauthorized
	}
	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return uuid.Nil, pkgerr.ErrUnauthorized
	}
	sub, err := claims.GetSubject()
	if err != nil {
		return uuid.Nil, pkgerr.ErrUnauthorized
	}
	userID, err := uuid.Parse(sub)
	if err != nil {
		return uuid.Nil, pkgerr.ErrUnauthorized
	}
	return userID, nil
}

func (s *authService) issueTokens(ctx context.Context, userID uuid.UUID) (*TokenPair, error) {
	now := time.Now()
	expiresAt := now.Add(s.cfg.AccessTTL)

	claims := jwt.MapClaims{
		"sub": userID.String(),
		"iat": now.Unix(),
		"exp": expiresAt.Unix(),
	}
	access, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.cfg.JWTSecret))
	if err != nil {
		return nil, fmt.Errorf("failed to sign access token: %w", err)
	}

	refresh, err := randomToken()
	if err != nil {
		return nil, fmt.Errorf("failed to mint refresh token: %w", err)
	}

	if _, err := s.tokens.Create(ctx, nil, &types.UserToken{
		UserID:       userID,
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresAt:    now.Add(s.cfg.RefreshTTL),
	}); err != nil {
		return nil, fmt.Errorf("failed to persist token: %w", err)
	}

	return &TokenPair{AccessToken: access, RefreshToken: refresh, ExpiresAt: expiresAt}, nil
}

func randomToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
