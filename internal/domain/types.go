package domain

import "github.com/google/uuid"

type UserID = uuid.UUID
type ItemID = uuid.UUID

// Identity is who a verified token says the caller is.
type Identity struct {
	UserID UserID
	Email  string
}
