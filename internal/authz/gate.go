package authz

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"campusswap/internal/domain"
	"campusswap/internal/httpx"
	"campusswap/internal/observability/metrics"
	obsmw "campusswap/internal/observability/middleware"
)

const (
	MsgNoToken      = "Unauthorized: No token provided."
	MsgInvalidToken = "Forbidden: Invalid token."
)

// TokenVerifier is the part of the token service the gate needs.
type TokenVerifier interface {
	Verify(ctx context.Context, token string) (domain.Identity, error)
}

// Authenticate checks a raw token. An empty token fails with
// domain.ErrUnauthenticated, a rejected one with domain.ErrForbidden wrapping
// the verifier's error.
func Authenticate(ctx context.Context, v TokenVerifier, token string) (domain.Identity, error) {
	if token == "" {
		return domain.Identity{}, domain.ErrUnauthenticated
	}
	id, err := v.Verify(ctx, token)
	if err != nil {
		return domain.Identity{}, fmt.Errorf("%w: %w", domain.ErrForbidden, err)
	}
	return id, nil
}

// WriteError answers an authentication failure: 401 for a missing token,
// 403 otherwise.
func WriteError(w http.ResponseWriter, err error) {
	if errors.Is(err, domain.ErrUnauthenticated) {
		httpx.Error(w, http.StatusUnauthorized, MsgNoToken)
		return
	}
	httpx.Error(w, http.StatusForbidden, MsgInvalidToken)
}

type Gate struct {
	verifier TokenVerifier
}

func NewGate(v TokenVerifier) *Gate {
	return &Gate{verifier: v}
}

// Middleware admits requests carrying a valid bearer token. A missing token
// is answered with 401, a token that fails verification with 403.
func (g *Gate) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		result := "success"
		defer func() {
			metrics.AuthenticationAttemptsTotal.WithLabelValues("http", result).Inc()
		}()
		reqID := obsmw.RequestIDFromContext(r.Context())
		traceID := obsmw.TraceIDFromContext(r.Context())

		tok, _ := httpx.BearerToken(r.Header.Get("Authorization"))
		id, err := Authenticate(r.Context(), g.verifier, tok)
		if err != nil {
			if errors.Is(err, domain.ErrUnauthenticated) {
				result = "missing"
				slog.Warn("auth missing bearer", "path", r.URL.Path, "request_id", reqID, "trace_id", traceID)
			} else {
				result = "invalid"
				slog.Warn("auth invalid token", "error", err, "request_id", reqID, "trace_id", traceID)
			}
			WriteError(w, err)
			return
		}

		next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), id)))
	})
}
