package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Rajveerchoubisa/Zidio-TaskManager/internal/config"
	"github.com/Rajveerchoubisa/Zidio-TaskManager/internal/errs"
	"github.com/Rajveerchoubisa/Zidio-TaskManager/internal/models"
	"github.com/Rajveerchoubisa/Zidio-TaskManager/internal/repositories"
	"github.com/Rajveerchoubisa/Zidio-TaskManager/internal/utils"

	"github.com/gofrs/uuid"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

const (
	tokenIssuer   = "zidio-backend"
	tokenAudience = "zidio-users"
)

type AuthService interface {
	Login(ctx context.Context, email, password string) (models.User, error)
	GenerateTokens(ctx context.Context, user models.User) (string, string, error)
	ParseAccessToken(tokenString string) (models.Actor, error)
	Refresh(ctx context.Context, refreshToken string) (string, string, int64, error)
	Revoke(ctx context.Context, refreshToken string) error
}

type AuthServiceImpl struct {
	users  repositories.UserRepository
	tokens repositories.TokenRepository
	cfg    config.JWTConfig
}

func NewAuthService(users repositories.UserRepository, tokens repositories.TokenRepository, cfg config.JWTConfig) *AuthServiceImpl {
	return &AuthServiceImpl{users: users, tokens: tokens, cfg: cfg}
}

func VerifyPassword(hashedPassword, plainPassword string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(plainPassword))
	return err == nil
}

func (s *AuthServiceImpl) Login(ctx context.Context, email, password string) (models.User, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return models.User{}, errs.ErrUnauthenticated
		}
		return models.User{}, err
	}
	if !VerifyPassword(user.Password, password) {
		return models.User{}, errs.ErrUnauthenticated
	}
	return user, nil
}

// GenerateTokens issues an access token carrying {user_id, role} and a
// refresh token whose JTI is persisted for rotation and revocation.
func (s *AuthServiceImpl) GenerateTokens(ctx context.Context, user models.User) (string, string, error) {
	now := time.Now()

	accessClaims := jwt.MapClaims{
		"user_id": user.ID.String(),
		"role":    string(user.Role),
		"iat":     now.Unix(),
		"exp":     now.Add(s.cfg.AccessTTL).Unix(),
		"iss":     tokenIssuer,
		"aud":     tokenAudience,
	}
	accessToken, err := jwt.NewWithClaims(jwt.SigningMethodHS256, accessClaims).SignedString([]byte(s.cfg.Secret))
	if err != nil {
		return "", "", fmt.Errorf("failed to sign access token: %w", err)
	}

	jti, err := uuid.NewV4()
	if err != nil {
		return "", "", fmt.Errorf("failed to generate jti: %w", err)
	}

	refreshExpiry := now.Add(s.cfg.RefreshTTL)
	refreshClaims := jwt.MapClaims{
		"user_id": user.ID.String(),
		"type":    "refresh",
		"jti":     jti.String(),
		"iat":     now.Unix(),
		"exp":     refreshExpiry.Unix(),
		"iss":     tokenIssuer,
		"aud":     tokenAudience,
	}
	refreshToken, err := jwt.NewWithClaims(jwt.SigningMethodHS256, refreshClaims).SignedString([]byte(s.cfg.Secret))
	if err != nil {
		return "", "", fmt.Errorf("failed to sign refresh token: %w", err)
	}

	record := models.Token{
		ID:           uuid.Must(uuid.NewV4()),
		UserID:       user.ID,
		JTI:          jti,
		RefreshToken: refreshToken,
		ExpiresAt:    refreshExpiry,
		CreatedAt:    now,
	}
	if err := s.tokens.Create(ctx, &record); err != nil {
		return "", "", err
	}

	return accessToken, refreshToken, nil
}

// ParseAccessToken verifies a bearer token and returns the actor identity
// it carries. Any defect in the token maps to ErrUnauthenticated.
func (s *AuthServiceImpl) ParseAccessToken(tokenString string) (models.Actor, error) {
	claims, err := utils.ParseJWT(tokenString, s.cfg.Secret)
	if err != nil {
		return models.Actor{}, errs.ErrUnauthenticated
	}

	if tokenType, ok := claims["type"].(string); ok && tokenType == "refresh" {
		return models.Actor{}, errs.ErrUnauthenticated
	}

	userIDStr, ok := claims["user_id"].(string)
	if !ok {
		return models.Actor{}, errs.ErrUnauthenticated
	}
	userID, err := uuid.FromString(userIDStr)
	if err != nil {
		return models.Actor{}, errs.ErrUnauthenticated
	}

	roleStr, ok := claims["role"].(string)
	if !ok {
		return models.Actor{}, errs.ErrUnauthenticated
	}
	role := models.Role(roleStr)
	if !role.Valid() {
		return models.Actor{}, errs.ErrUnauthenticated
	}

	return models.Actor{ID: userID, Role: role}, nil
}

// Refresh rotates a refresh token: the old JTI is deleted and a fresh
// access/refresh pair is issued.
func (s *AuthServiceImpl) Refresh(ctx context.Context, refreshToken string) (string, string, int64, error) {
	claims, err := utils.ParseJWT(refreshToken, s.cfg.Secret)
	if err != nil {
		return "", "", 0, errs.ErrUnauthenticated
	}

	tokenType, ok := claims["type"].(string)
	if !ok || tokenType != "refresh" {
		return "", "", 0, errs.ErrUnauthenticated
	}

	jti, userID, err := refreshIdentifiers(claims)
	if err != nil {
		return "", "", 0, errs.ErrUnauthenticated
	}

	if _, err := s.tokens.FindActive(ctx, jti, userID, time.Now()); err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return "", "", 0, errs.ErrUnauthenticated
		}
		return "", "", 0, err
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return "", "", 0, errs.ErrUnauthenticated
		}
		return "", "", 0, err
	}

	accessToken, newRefreshToken, err := s.GenerateTokens(ctx, user)
	if err != nil {
		return "", "", 0, err
	}

	if err := s.tokens.DeleteByJTI(ctx, jti); err != nil {
		return "", "", 0, err
	}

	return accessToken, newRefreshToken, int64(s.cfg.AccessTTL.Seconds()), nil
}

func (s *AuthServiceImpl) Revoke(ctx context.Context, refreshToken string) error {
	claims, err := utils.ParseJWT(refreshToken, s.cfg.Secret)
	if err != nil {
		return errs.ErrUnauthenticated
	}

	jti, _, err := refreshIdentifiers(claims)
	if err != nil {
		return errs.ErrUnauthenticated
	}

	return s.tokens.DeleteByJTI(ctx, jti)
}

func refreshIdentifiers(claims jwt.MapClaims) (uuid.UUID, uuid.UUID, error) {
	jtiStr, ok := claims["jti"].(string)
	if !ok {
		return uuid.Nil, uuid.Nil, fmt.Errorf("missing jti in token")
	}
	jti, err := uuid.FromString(jtiStr)
	if err != nil {
		return uuid.Nil, uuid.Nil, fmt.Errorf("invalid jti format: %w", err)
	}

	userIDStr, ok := claims["user_id"].(string)
	if !ok {
		return uuid.Nil, uuid.Nil, fmt.Errorf("missing user_id in token")
	}
	userID, err := uuid.FromString(userIDStr)
	if err != nil {
		return uuid.Nil, uuid.Nil, fmt.Errorf("invalid user_id format: %w", err)
	}

	return jti, userID, nil
}
