package ports

import (
	"time"
)

// AccessToken is a signed bearer credential.
type AccessToken struct {
	Value     string
	ExpiresAt time.Time
}

// TokenService issues and verifies bearer credentials.
// Verify returns errs.ErrUnauthenticated for any malformed, forged or expired token.
type TokenService interface {
	Issue(userID int64) (AccessToken, error)
	Verify(token string) (int64, error)
}

// PasswordHasher hashes and verifies passwords.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, encodedHash string) (bool, error)
}

// Clock supplies the current time.
type Clock interface {
	Now() time.Time
}
