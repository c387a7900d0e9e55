package domain

import "time"

// Item is a marketplace listing. Price and Images are opaque text.
type Item struct {
	ID          ItemID    `gorm:"type:uuid;primaryKey" db:"id" json:"id"`
	OwnerID     UserID    `gorm:"type:uuid;not null;index:idx_items_owner_id" db:"owner_id" json:"ownerId"`
	Owner       *User     `gorm:"foreignKey:OwnerID;references:ID;constraint:OnDelete:CASCADE" json:"-"`
	Title       string    `gorm:"type:varchar(255);not null" db:"title" json:"title"`
	Description string    `gorm:"type:text;not null" db:"description" json:"description"`
	Price       string    `gorm:"type:text;not null" db:"price" json:"price"`
	Category    string    `gorm:"type:varchar(50);not null" db:"category" json:"category"`
	Images      string    `gorm:"type:text;not null" db:"images" json:"images"`
	CreatedAt   time.Time `gorm:"not null" db:"created_at" json:"createdAt"`
}

func (Item) TableName() string { return "items" }

// ItemFields are the mutable columns of an item.
type ItemFields struct {
	Title       string
	Description string
	Price       string
	Category    string
	Images      string
}
