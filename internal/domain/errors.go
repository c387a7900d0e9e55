package domain

import "errors"

var (
	ErrValidation          = errors.New("validation failed")          // 400
	ErrConflict            = errors.New("conflict")                   // 409
	ErrUnauthenticated     = errors.New("unauthenticated")            // 401
	ErrForbidden           = errors.New("forbidden")                  // 403
	ErrInvalidCredentials  = errors.New("invalid credentials")        // 401
	ErrNotFound            = errors.New("not found")                  // 404
	ErrNotFoundOrForbidden = errors.New("not found or not permitted") // 404
)

// Token failures. Boundaries must treat both the same way.
var (
	ErrTokenInvalid = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")
)
