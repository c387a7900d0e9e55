package domain

import "time"

type User struct {
	ID           UserID    `gorm:"type:uuid;primaryKey" db:"id" json:"id"`
	Email        string    `gorm:"type:varchar(255);not null;uniqueIndex:ux_users_email" db:"email" json:"email"`
	PasswordHash string    `gorm:"type:text;not null" db:"password_hash" json:"-"`
	Name         string    `gorm:"type:varchar(255);not null;default:''" db:"name" json:"name"`
	Course       string    `gorm:"type:varchar(255);not null;default:''" db:"course" json:"course"`
	Year         string    `gorm:"type:varchar(50);not null;default:''" db:"year" json:"year"`
	ContactInfo  string    `gorm:"type:varchar(255);not null;default:''" db:"contact_info" json:"contactInfo"`
	CreatedAt    time.Time `gorm:"not null" db:"created_at" json:"createdAt"`
}

func (User) TableName() string { return "users" }

func (u *User) Identity() Identity {
	return Identity{UserID: u.ID, Email: u.Email}
}
