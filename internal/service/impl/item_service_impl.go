package impl

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"campusswap/internal/authz"
	"campusswap/internal/domain"
	"campusswap/internal/dto"
	"campusswap/internal/observability/metrics"
	"campusswap/internal/observability/middleware"
	"campusswap/internal/store"

	"github.com/google/uuid"
)

type itemStore interface {
	Create(ctx context.Context, item *domain.Item) error
	List(ctx context.Context) ([]domain.Item, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Item, error)
	UpdateOwned(ctx context.Context, id, ownerID uuid.UUID, f domain.ItemFields) (*domain.Item, error)
	DeleteOwned(ctx context.Context, id, ownerID uuid.UUID) error
}

type ItemServiceImpl struct {
	Items itemStore
	now   func() time.Time
}

func NewItemServiceImpl(st *store.Store) (*ItemServiceImpl, error) {
	if st == nil {
		return nil, ErrNilStore
	}
	return &ItemServiceImpl{Items: st.Items(), now: time.Now}, nil
}

func (s *ItemServiceImpl) List(ctx context.Context) ([]domain.Item, error) {
	items, err := s.Items.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	return items, nil
}

func (s *ItemServiceImpl) Get(ctx context.Context, id domain.ItemID) (*domain.Item, error) {
	item, err := s.Items.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get item: %w", err)
	}
	return item, nil
}

func (s *ItemServiceImpl) Create(ctx context.Context, who domain.Identity, r dto.ItemRequest) (*domain.Item, error) {
	result := "success"
	defer func() {
		metrics.ItemMutationsTotal.WithLabelValues("create", result).Inc()
	}()

	f, err := r.Fields()
	if err != nil {
		result = "invalid"
		return nil, err
	}
	item := &domain.Item{
		ID:          uuid.New(),
		OwnerID:     who.UserID,
		Title:       f.Title,
		Description: f.Description,
		Price:       f.Price,
		Category:    f.Category,
		Images:      f.Images,
		CreatedAt:   s.now().UTC(),
	}
	if err := s.Items.Create(ctx, item); err != nil {
		result = "failure"
		return nil, fmt.Errorf("create item: %w", err)
	}
	slog.Info("item created", "item_id", item.ID, "owner_id", who.UserID,
		"request_id", middleware.RequestIDFromContext(ctx))
	return item, nil
}

func (s *ItemServiceImpl) Update(ctx context.Context, who domain.Identity, id domain.ItemID, r dto.ItemRequest) (*domain.Item, error) {
	result := "success"
	defer func() {
		metrics.ItemMutationsTotal.WithLabelValues("update", result).Inc()
	}()

	f, err := r.Fields()
	if err != nil {
		result = "invalid"
		return nil, err
	}
	if err := s.authorize(ctx, who, id); err != nil {
		result = outcome(err)
		return nil, err
	}
	item, err := s.Items.UpdateOwned(ctx, id, who.UserID, f)
	if err != nil {
		if errors.Is(err, store.ErrRecordNotFound) {
			result = "denied"
			return nil, domain.ErrNotFoundOrForbidden
		}
		result = "failure"
		return nil, fmt.Errorf("update item: %w", err)
	}
	return item, nil
}

func (s *ItemServiceImpl) Delete(ctx context.Context, who domain.Identity, id domain.ItemID) error {
	result := "success"
	defer func() {
		metrics.ItemMutationsTotal.WithLabelValues("delete", result).Inc()
	}()

	if err := s.authorize(ctx, who, id); err != nil {
		result = outcome(err)
		return err
	}
	if err := s.Items.DeleteOwned(ctx, id, who.UserID); err != nil {
		if errors.Is(err, store.ErrRecordNotFound) {
			result = "denied"
			return domain.ErrNotFoundOrForbidden
		}
		result = "failure"
		return fmt.Errorf("delete item: %w", err)
	}
	slog.Info("item deleted", "item_id", id, "owner_id", who.UserID,
		"request_id", middleware.RequestIDFromContext(ctx))
	return nil
}

// authorize loads the item and applies the ownership policy. The store's
// conditional write repeats the owner check.
func (s *ItemServiceImpl) authorize(ctx context.Context, who domain.Identity, id domain.ItemID) error {
	item, err := s.Items.GetByID(ctx, id)
	if err != nil && !errors.Is(err, store.ErrRecordNotFound) {
		return fmt.Errorf("load item: %w", err)
	}
	return authz.AuthorizeMutation(who, item)
}

func outcome(err error) string {
	if errors.Is(err, domain.ErrNotFoundOrForbidden) {
		return "denied"
	}
	return "failure"
}
