package store

import (
	"context"
	"time"

	"campusswap/internal/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ItemStore struct{ db *gorm.DB }

func (s *Store) Items() *ItemStore { return &ItemStore{db: s.DB} }

func (i *ItemStore) Create(ctx context.Context, item *domain.Item) error {
	if item.ID == uuid.Nil {
		item.ID = uuid.New()
	}
	if item.CreatedAt.IsZero() {
		item.CreatedAt = time.Now().UTC()
	}
	return translate(i.db.WithContext(ctx).Omit("Owner").Create(item).Error)
}

// List returns every item, oldest first.
func (i *ItemStore) List(ctx context.Context) ([]domain.Item, error) {
	items := []domain.Item{}
	if err := i.db.WithContext(ctx).Order("created_at asc").Order("id asc").Find(&items).Error; err != nil {
		return nil, translate(err)
	}
	return items, nil
}

func (i *ItemStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Item, error) {
	var item domain.Item
	if err := i.db.WithContext(ctx).First(&item, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &item, nil
}

// UpdateOwned replaces the mutable fields of the item only if ownerID still
// owns it. ErrRecordNotFound covers both a missing item and a foreign owner.
func (i *ItemStore) UpdateOwned(ctx context.Context, id, ownerID uuid.UUID, f domain.ItemFields) (*domain.Item, error) {
	var out *domain.Item
	err := i.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&domain.Item{}).
			Where("id = ? AND owner_id = ?", id, ownerID).
			Updates(map[string]any{
				"title":       f.Title,
				"description": f.Description,
				"price":       f.Price,
				"category":    f.Category,
				"images":      f.Images,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrRecordNotFound
		}
		var item domain.Item
		if err := tx.First(&item, "id = ?", id).Error; err != nil {
			return err
		}
		out = &item
		return nil
	})
	if err != nil {
		return nil, translate(err)
	}
	return out, nil
}

// DeleteOwned removes the item only if ownerID owns it.
func (i *ItemStore) DeleteOwned(ctx context.Context, id, ownerID uuid.UUID) error {
	res := i.db.WithContext(ctx).
		Where("id = ? AND owner_id = ?", id, ownerID).
		Delete(&domain.Item{})
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrRecordNotFound
	}
	return nil
}
