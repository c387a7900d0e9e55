package impl

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"campusswap/internal/domain"
	"campusswap/internal/dto"
	"campusswap/internal/observability/metrics"
	"campusswap/internal/observability/middleware"
	"campusswap/internal/service"
	"campusswap/internal/store"

	"github.com/google/uuid"
)

type AuthServiceImpl struct {
	Store           dataStore
	PasswordService service.PasswordService
	TService        service.TokenService

	dummyHash string
}

func NewAuthServiceImpl(st *store.Store, passwordService service.PasswordService, tokenService service.TokenService) (*AuthServiceImpl, error) {
	if st == nil {
		return nil, ErrNilStore
	}
	return newAuthService(gormStoreAdapter{store: st}, passwordService, tokenService)
}

func newAuthService(ds dataStore, ps service.PasswordService, ts service.TokenService) (*AuthServiceImpl, error) {
	// Verified against when the email is unknown so both login failures cost the same.
	dummy, err := ps.Hash(uuid.NewString())
	if err != nil {
		return nil, fmt.Errorf("dummy hash: %w", err)
	}
	return &AuthServiceImpl{
		Store:           ds,
		PasswordService: ps,
		TService:        ts,
		dummyHash:       dummy,
	}, nil
}

type dataStore interface {
	WithTx(ctx context.Context, fn func(tx storeTx) error) error
	Users() userStore
}

type storeTx interface {
	Users() userStore
}

type userStore interface {
	Create(ctx context.Context, usr *domain.User) error
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	UpdatePasswordHash(ctx context.Context, userID uuid.UUID, hash string) error
}

type gormStoreAdapter struct {
	store *store.Store
}

func (g gormStoreAdapter) WithTx(ctx context.Context, fn func(tx storeTx) error) error {
	if g.store == nil {
		return ErrNilStore
	}
	return g.store.WithTx(ctx, func(tx *store.Store) error {
		return fn(gormTxAdapter{tx: tx})
	})
}

func (g gormStoreAdapter) Users() userStore { return g.store.Users() }

type gormTxAdapter struct {
	tx *store.Store
}

func (g gormTxAdapter) Users() userStore { return g.tx.Users() }

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (a *AuthServiceImpl) Register(ctx context.Context, r dto.RegisterRequest) (*dto.RegisterResponse, error) {
	result := "success"
	defer func() {
		metrics.AuthRegistrationsTotal.WithLabelValues(result).Inc()
	}()

	email := normalizeEmail(r.Email)
	if email == "" || r.Password == "" {
		result = "invalid"
		return nil, fmt.Errorf("%w: email and password required", domain.ErrValidation)
	}

	hash, err := a.PasswordService.Hash(r.Password)
	if err != nil {
		result = "failure"
		return nil, fmt.Errorf("hash password: %w", err)
	}

	var out dto.RegisterResponse
	err = a.Store.WithTx(ctx, func(tx storeTx) error {
		if _, err := tx.Users().GetByEmail(ctx, email); err == nil {
			return domain.ErrConflict
		} else if !errors.Is(err, store.ErrRecordNotFound) {
			return err
		}

		u := &domain.User{
			ID:           uuid.New(),
			Email:        email,
			PasswordHash: hash,
			Name:         strings.TrimSpace(r.Name),
			Course:       strings.TrimSpace(r.Course),
			Year:         strings.TrimSpace(string(r.Year)),
			ContactInfo:  strings.TrimSpace(r.ContactInfo),
			CreatedAt:    time.Now().UTC(),
		}
		if err := tx.Users().Create(ctx, u); err != nil {
			if errors.Is(err, store.ErrDuplicate) {
				return domain.ErrConflict
			}
			return err
		}
		out = dto.RegisterResponse{ID: u.ID.String(), Email: u.Email}
		return nil
	})
	if err != nil {
		if errors.Is(err, domain.ErrConflict) {
			result = "conflict"
			return nil, err
		}
		result = "failure"
		return nil, fmt.Errorf("register: %w", err)
	}

	slog.Info("user registered", "user_id", out.ID,
		"request_id", middleware.RequestIDFromContext(ctx),
		"trace_id", middleware.TraceIDFromContext(ctx))
	return &out, nil
}

func (a *AuthServiceImpl) Login(ctx context.Context, r dto.LoginRequest) (*dto.TokenResponse, error) {
	result := "success"
	defer func() {
		metrics.AuthLoginsTotal.WithLabelValues(result).Inc()
	}()

	email := normalizeEmail(r.Email)
	if email == "" || r.Password == "" {
		result = "invalid"
		return nil, fmt.Errorf("%w: email and password required", domain.ErrValidation)
	}

	user, err := a.Store.Users().GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrRecordNotFound) {
			_, _ = a.PasswordService.Verify(r.Password, a.dummyHash)
			result = "invalid_credentials"
			return nil, domain.ErrInvalidCredentials
		}
		result = "failure"
		return nil, fmt.Errorf("lookup user: %w", err)
	}

	rehash, ok := a.PasswordService.Verify(r.Password, user.PasswordHash)
	if !ok {
		result = "invalid_credentials"
		return nil, domain.ErrInvalidCredentials
	}
	if rehash {
		a.upgradeHash(ctx, user, r.Password)
	}

	tok, err := a.TService.Issue(ctx, user)
	if err != nil {
		result = "failure"
		return nil, fmt.Errorf("issue token: %w", err)
	}
	return tok, nil
}

// upgradeHash rewrites a stale hash. Failures are logged and do not fail the login.
func (a *AuthServiceImpl) upgradeHash(ctx context.Context, user *domain.User, password string) {
	hash, err := a.PasswordService.Hash(password)
	if err == nil {
		err = a.Store.Users().UpdatePasswordHash(ctx, user.ID, hash)
	}
	if err != nil {
		slog.Warn("password rehash failed", "user_id", user.ID, "err", err,
			"request_id", middleware.RequestIDFromContext(ctx))
		return
	}
	user.PasswordHash = hash
	slog.Info("password hash upgraded", "user_id", user.ID)
}
