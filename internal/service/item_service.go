package service

import (
	"context"

	"campusswap/internal/domain"
	"campusswap/internal/dto"
)

// ItemService is the CRUD surface for listings. Update and Delete return
// domain.ErrNotFoundOrForbidden when the item is missing or owned by someone else.
type ItemService interface {
	List(ctx context.Context) ([]domain.Item, error)
	Get(ctx context.Context, id domain.ItemID) (*domain.Item, error)
	Create(ctx context.Context, who domain.Identity, r dto.ItemRequest) (*domain.Item, error)
	Update(ctx context.Context, who domain.Identity, id domain.ItemID, r dto.ItemRequest) (*domain.Item, error)
	Delete(ctx context.Context, who domain.Identity, id domain.ItemID) error
}
