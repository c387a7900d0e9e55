package store

import (
	"context"

	"campusswap/internal/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DeleteUser removes the user's record and, through the items.owner_id
// cascade, every item they listed. It returns the row counts captured
// before deletion.
func (s *Store) DeleteUser(ctx context.Context, userID uuid.UUID) (map[string]int64, error) {
	deleted := map[string]int64{}

	err := s.WithTx(ctx, func(tx *Store) error {
		db := tx.DB.WithContext(ctx)

		count := func(label string, query *gorm.DB) error {
			var total int64
			if err := query.Count(&total).Error; err != nil {
				return err
			}
			deleted[label] = total
			return nil
		}

		if err := count("users", db.Model(&domain.User{}).Where("id = ?", userID)); err != nil {
			return err
		}
		if deleted["users"] == 0 {
			return ErrRecordNotFound
		}
		if err := count("items", db.Model(&domain.Item{}).Where("owner_id = ?", userID)); err != nil {
			return err
		}

		return db.Where("id = ?", userID).Delete(&domain.User{}).Error
	})

	return deleted, translate(err)
}
