package impl

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"campusswap/internal/domain"
	"campusswap/internal/dto"
	"campusswap/internal/jwtsigner"
	"campusswap/internal/observability/metrics"
	"campusswap/internal/observability/middleware"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// ====== Config ======

type TokenConfig struct {
	Issuer     string           // e.g. "campusswap"
	TTL        time.Duration    // e.g. time.Hour
	SigningKey []byte           // HS256 secret
	Now        func() time.Time // nil means time.Now
}

// ====== Claims ======

type IdentityClaims struct {
	UserID string `json:"userId"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

// ====== Service ======

type TokenServiceImpl struct {
	cfg    TokenConfig
	signer *jwtsigner.Signer
}

func NewTokenServiceHS256(cfg TokenConfig) (*TokenServiceImpl, error) {
	if len(cfg.SigningKey) == 0 {
		return nil, ErrNilTokenConfig
	}
	if cfg.TTL <= 0 {
		cfg.TTL = time.Hour
	}
	signer, err := jwtsigner.NewHS256(cfg.SigningKey, cfg.Issuer, cfg.Now)
	if err != nil {
		return nil, err
	}
	return &TokenServiceImpl{cfg: cfg, signer: signer}, nil
}

// Issue signs an identity token for user valid for the configured TTL.
func (t *TokenServiceImpl) Issue(ctx context.Context, user *domain.User) (*dto.TokenResponse, error) {
	result := "success"
	defer func() {
		metrics.TokensIssuedTotal.WithLabelValues(result).Inc()
	}()
	if user == nil || user.ID == uuid.Nil {
		result = "failure"
		return nil, errors.New("issue token: missing user")
	}

	now := t.signer.Now().UTC()
	claims := IdentityClaims{
		UserID: user.ID.String(),
		Email:  user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    t.cfg.Issuer,
			Subject:   user.ID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(t.cfg.TTL)),
		},
	}
	signed, err := t.signer.Sign(claims)
	if err != nil {
		result = "failure"
		return nil, err
	}

	slog.Info("issued token", "user_id", user.ID,
		"request_id", middleware.RequestIDFromContext(ctx),
		"trace_id", middleware.TraceIDFromContext(ctx))

	return &dto.TokenResponse{
		Token:     signed,
		ExpiresIn: int64(t.cfg.TTL.Seconds()),
	}, nil
}

// Verify checks signature, algorithm, issuer and expiry. Expired tokens
// return domain.ErrTokenExpired, everything else domain.ErrTokenInvalid.
func (t *TokenServiceImpl) Verify(_ context.Context, raw string) (domain.Identity, error) {
	if raw == "" {
		return domain.Identity{}, domain.ErrTokenInvalid
	}
	var claims IdentityClaims
	if err := t.signer.Parse(raw, &claims); err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return domain.Identity{}, domain.ErrTokenExpired
		}
		return domain.Identity{}, domain.ErrTokenInvalid
	}

	uid, err := uuid.Parse(claims.UserID)
	if err != nil || uid == uuid.Nil {
		return domain.Identity{}, domain.ErrTokenInvalid
	}
	if claims.Subject != "" && claims.Subject != claims.UserID {
		return domain.Identity{}, domain.ErrTokenInvalid
	}
	return domain.Identity{UserID: uid, Email: claims.Email}, nil
}
