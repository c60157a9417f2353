package token

import (
	"errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrMalformed      = errors.New("malformed token")
	ErrExpired        = errors.New("token expired")
	ErrSubjectMissing = errors.New("token subject missing")
)

// Claims are the claims carried by a session token. The subject holds the
// account id in decimal form.
type Claims struct {
	jwt.RegisteredClaims
}

// Service issues and validates signed session tokens. Tokens are stateless:
// nothing is persisted server-side and there is no revocation, so validity
// is bounded entirely by the expiry claim.
type Service struct {
	secret []byte
	ttl    time.Duration
}

// NewService creates a Service signing with the given secret. The secret is
// process-wide configuration, loaded once at startup and never rotated.
func NewService(secret string, ttl time.Duration) *Service {
	return &Service{
		secret: []byte(secret),
		ttl:    ttl,
	}
}

// Issue creates a signed token for the account, expiring ttl from now
func (s *Service) Issue(accountID int64) (string, error) {
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(accountID, 10),
			ID:        uuid.New().String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// Validate parses and verifies a token string and returns the account id it
// was issued for. It fails with ErrExpired when the expiry has passed or the
// expiry claim is absent, ErrSubjectMissing when no subject claim is present,
// and ErrMalformed for anything that does not parse or verify.
func (s *Service) Validate(tokenString string) (int64, error) {
	parsed, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrMalformed
		}
		return s.secret, nil
	})

	if err != nil {
		// Expiry wins over any other parse failure so that an expired token
		// reports ErrExpired regardless of signature validity. The parser
		// stops at a bad signature before touching claims, so on any other
		// failure the expiry claim is checked without verification.
		if errors.Is(err, jwt.ErrTokenExpired) {
			return 0, ErrExpired
		}
		if expiredUnverified(tokenString) {
			return 0, ErrExpired
		}
		return 0, ErrMalformed
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return 0, ErrMalformed
	}

	if claims.ExpiresAt == nil {
		return 0, ErrExpired
	}

	if claims.Subject == "" {
		return 0, ErrSubjectMissing
	}

	accountID, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil {
		return 0, ErrMalformed
	}

	return accountID, nil
}

// expiredUnverified reports whether the token decodes to claims whose expiry
// has already passed. The signature is not checked.
func expiredUnverified(tokenString string) bool {
	claims := &Claims{}
	if _, _, err := jwt.NewParser().ParseUnverified(tokenString, claims); err != nil {
		return false
	}
	return claims.ExpiresAt != nil && claims.ExpiresAt.Before(time.Now())
}
