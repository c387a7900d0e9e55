package jwtsigner

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var ErrEmptySecret = errors.New("jwtsigner: empty signing secret")

// Signer issues and parses HS256 JWTs with one process-wide secret.
type Signer struct {
	secret []byte
	Issuer string
	now    func() time.Time
}

// NewHS256 creates a signer. now may be nil, in which case time.Now is used
// both for validating exp/iat and by callers through Now.
func NewHS256(secret []byte, iss string, now func() time.Time) (*Signer, error) {
	if len(secret) == 0 {
		return nil, ErrEmptySecret
	}
	if now == nil {
		now = time.Now
	}
	key := make([]byte, len(secret))
	copy(key, secret)
	return &Signer{secret: key, Issuer: iss, now: now}, nil
}

func (s *Signer) Now() time.Time { return s.now() }

// Sign signs claims, which are expected to carry iss/sub/iat/exp already.
func (s *Signer) Sign(claims jwt.Claims) (string, error) {
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(s.secret)
}

// Parse verifies the signature, algorithm, issuer and expiry and decodes the
// token into claims.
func (s *Signer) Parse(raw string, claims jwt.Claims) error {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithIssuedAt(),
		jwt.WithTimeFunc(s.now),
	}
	if s.Issuer != "" {
		opts = append(opts, jwt.WithIssuer(s.Issuer))
	}
	tok, err := jwt.NewParser(opts...).ParseWithClaims(raw, claims, func(*jwt.Token) (interface{}, error) {
		return s.secret, nil
	})
	if err != nil {
		return err
	}
	if !tok.Valid {
		return jwt.ErrTokenSignatureInvalid
	}
	return nil
}
