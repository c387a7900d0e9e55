package impl

import (
	"testing"
	"time"

	"campusswap/internal/store"
	"campusswap/internal/testutil"
)

var testArgon = Argon2Params{Time: 1, Memory: 8 * 1024, Threads: 1, KeyLen: 32, SaltLen: 16}

func newTestPasswords() *PasswordServiceImpl {
	return NewPasswordServiceWithParams(testArgon)
}

func newTestTokens(t *testing.T, now func() time.Time) *TokenServiceImpl {
	t.Helper()
	ts, err := NewTokenServiceHS256(TokenConfig{
		Issuer:     "campusswap",
		TTL:        time.Hour,
		SigningKey: []byte("test-secret"),
		Now:        now,
	})
	if err != nil {
		t.Fatalf("token service: %v", err)
	}
	return ts
}

func newTestAuth(t *testing.T) (*AuthServiceImpl, *store.Store, *TokenServiceImpl) {
	t.Helper()
	st := testutil.OpenStore(t)
	tokens := newTestTokens(t, nil)
	auth, err := NewAuthServiceImpl(st, newTestPasswords(), tokens)
	if err != nil {
		t.Fatalf("auth service: %v", err)
	}
	return auth, st, tokens
}
