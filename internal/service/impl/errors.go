package impl

import "errors"

var (
	ErrEmptyPassword  = errors.New("empty password")
	ErrMalformedHash  = errors.New("malformed password hash")
	ErrNilStore       = errors.New("nil store")
	ErrNilTokenConfig = errors.New("token signing key is required")
)
