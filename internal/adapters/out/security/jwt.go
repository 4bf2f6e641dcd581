// Package security implements the credential ports: signed bearer tokens and
// password hashing.
package security

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"deliverytracker/internal/core/ports"
	"deliverytracker/internal/pkg/errs"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultAccessTokenTTL is the lifetime of issued tokens when none is configured.
const DefaultAccessTokenTTL = 60 * time.Minute

var ErrSecretIsRequired = errors.New("jwt secret is required")

// JWTTokenService issues and verifies HS256 tokens whose subject is the user id.
type JWTTokenService struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewJWTTokenService creates a token service. A non-positive ttl uses DefaultAccessTokenTTL.
func NewJWTTokenService(secret string, ttl time.Duration, clock ports.Clock) (*JWTTokenService, error) {
	if secret == "" {
		return nil, ErrSecretIsRequired
	}
	if ttl <= 0 {
		ttl = DefaultAccessTokenTTL
	}
	return &JWTTokenService{
		secret: []byte(secret),
		ttl:    ttl,
		now:    clock.Now,
	}, nil
}

// Issue signs a token for userID.
func (s *JWTTokenService) Issue(userID int64) (ports.AccessToken, error) {
	if userID <= 0 {
		return ports.AccessToken{}, errs.NewValueIsInvalidError("user id")
	}

	issuedAt := s.now().UTC()
	expiresAt := issuedAt.Add(s.ttl)

	claims := jwt.RegisteredClaims{
		Subject:   strconv.FormatInt(userID, 10),
		IssuedAt:  jwt.NewNumericDate(issuedAt),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return ports.AccessToken{}, fmt.Errorf("sign access token: %w", err)
	}

	return ports.AccessToken{Value: signed, ExpiresAt: expiresAt}, nil
}

// Verify checks signature, algorithm and expiry and returns the subject.
// Every failure matches errs.ErrUnauthenticated.
func (s *JWTTokenService) Verify(token string) (int64, error) {
	if token == "" {
		return 0, fmt.Errorf("%w: missing token", errs.ErrUnauthenticated)
	}

	claims := &jwt.RegisteredClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims,
		func(*jwt.Token) (any, error) { return s.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", errs.ErrUnauthenticated, err)
	}
	if !parsed.Valid {
		return 0, fmt.Errorf("%w: invalid token", errs.ErrUnauthenticated)
	}

	userID, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil || userID <= 0 {
		return 0, fmt.Errorf("%w: invalid subject", errs.ErrUnauthenticated)
	}

	return userID, nil
}
