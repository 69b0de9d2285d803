package auth

import (
	"errors"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"

	"github.com/subro/blog-api/internal/domain"
)

// Verification failures, in the order the gate distinguishes them. A token
// whose signature does not verify is always malformed, even if its payload
// carries an expiry in the past or future: golang-jwt v5 checks the signature
// before it validates claims, so ErrTokenExpired is only ever produced for
// genuinely signed tokens.
var (
	ErrTokenMalformed = errors.New("token malformed")
	ErrTokenExpired   = errors.New("token expired")
)

// TokenCodec issues and verifies HS256 signed tokens. The secret and TTL are
// fixed at construction; verification is stateless and safe for concurrent use.
type TokenCodec struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenCodec builds a codec. TTL values <= 0 fall back to one hour.
func NewTokenCodec(secret string, ttlMinutes int) *TokenCodec {
	if ttlMinutes <= 0 {
		ttlMinutes = 60
	}
	return &TokenCodec{secret: []byte(secret), ttl: time.Duration(ttlMinutes) * time.Minute}
}

// Claims describes the JWT payload.
type Claims struct {
	Email string        `json:"email,omitempty"`
	Roles []domain.Role `json:"roles,omitempty"`
	jwt.RegisteredClaims
}

// Issue builds and signs a token for the subject with the configured TTL.
func (tc *TokenCodec) Issue(subjectID, email string, roles []domain.Role) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(tc.ttl)
	claims := &Claims{
		Email: email,
		Roles: roles,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subjectID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(tc.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return tokenString, expiresAt, nil
}

// Verify parses the token and returns its claims. Expiry is compared against
// the local wall clock with no leeway. Every failure collapses to either
// ErrTokenMalformed or ErrTokenExpired.
func (tc *TokenCodec) Verify(tokenStr string) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("unexpected signing method")
		}
		return tc.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenMalformed
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid || claims.Subject == "" {
		return nil, ErrTokenMalformed
	}
	return claims, nil
}
