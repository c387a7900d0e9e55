package service

import (
	"context"

	"campusswap/internal/domain"
	"campusswap/internal/dto"
)

type TokenService interface {
	Issue(ctx context.Context, user *domain.User) (*dto.TokenResponse, error)
	// Verify returns domain.ErrTokenInvalid or domain.ErrTokenExpired on failure.
	Verify(ctx context.Context, token string) (domain.Identity, error)
}
