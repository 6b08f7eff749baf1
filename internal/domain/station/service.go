// Package station authenticates the sensor buoys that push readings.
package station

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	apperrors "github.com/yanqian/salinity-watch/pkg/errors"
)

const tokenAudience = "ingest"

// Service issues and validates station tokens.
type Service interface {
	Enabled() bool
	IssueToken(ctx context.Context, req TokenRequest) (TokenResponse, error)
	ValidateToken(ctx context.Context, token string) (Claims, error)
}

type service struct {
	cfg    Config
	logger *slog.Logger
	now    func() time.Time
}

// NewService wires up station authentication.
func NewService(cfg Config, logger *slog.Logger) Service {
	return &service{
		cfg:    cfg,
		logger: logger.With("component", "station.service"),
		now:    time.Now,
	}
}

func (s *service) Enabled() bool {
	return len(s.cfg.Keys) > 0
}

func (s *service) IssueToken(_ context.Context, req TokenRequest) (TokenResponse, error) {
	stationID := strings.TrimSpace(req.StationID)
	if stationID == "" || req.Key == "" {
		return TokenResponse{}, apperrors.Wrap(apperrors.CodeInvalidInput, "stationId and key are required", nil)
	}
	hash, ok := s.cfg.Keys[stationID]
	if !ok {
		s.logger.Warn("token requested for unknown station", "station", stationID)
		return TokenResponse{}, apperrors.Wrap(apperrors.CodeUnauthorized, "invalid station credentials", nil)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(req.Key)); err != nil {
		s.logger.Warn("station key mismatch", "station", stationID)
		return TokenResponse{}, apperrors.Wrap(apperrors.CodeUnauthorized, "invalid station credentials", nil)
	}

	now := s.now()
	expires := now.Add(s.cfg.TokenTTL)
	claims := jwt.RegisteredClaims{
		Subject:   stationID,
		Audience:  jwt.ClaimStrings{tokenAudience},
		ID:        uuid.NewString(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(expires),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.cfg.Secret))
	if err != nil {
		return TokenResponse{}, apperrors.Wrap("auth_error", "failed to sign token", err)
	}
	s.logger.Info("station token issued", "station", stationID, "expiresAt", expires)
	return TokenResponse{Token: signed, ExpiresAt: expires.UTC()}, nil
}

func (s *service) ValidateToken(_ context.Context, token string) (Claims, error) {
	if token == "" {
		return Claims{}, apperrors.Wrap(apperrors.CodeInvalidToken, "token missing", nil)
	}
	parsed, err := jwt.ParseWithClaims(token, &jwt.RegisteredClaims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %s", t.Method.Alg())
		}
		return []byte(s.cfg.Secret), nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithAudience(tokenAudience),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return Claims{}, apperrors.Wrap(apperrors.CodeInvalidToken, "token validation failed", err)
	}
	claims, ok := parsed.Claims.(*jwt.RegisteredClaims)
	if !ok || !parsed.Valid {
		return Claims{}, apperrors.Wrap(apperrors.CodeInvalidToken, "token invalid", nil)
	}
	if _, known := s.cfg.Keys[claims.Subject]; !known {
		return Claims{}, apperrors.Wrap(apperrors.CodeInvalidToken, "station no longer registered", nil)
	}
	return Claims{
		StationID: claims.Subject,
		TokenID:   claims.ID,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}

// HashKey produces the bcrypt hash stored in configuration for a station key.
func HashKey(key string) (string, error) {
	if len(key) < 12 {
		return "", fmt.Errorf("station key must be at least 12 characters")
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(key), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}
