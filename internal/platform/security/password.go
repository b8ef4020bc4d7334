package security

import (
	"airwatch/internal/platform/config"

	"golang.org/x/crypto/bcrypt"
)

// Hasher hashes and verifies passwords
type Hasher interface {
	Hash(plain string) (string, error)
	Verify(hash, plain string) bool
}

// Bcrypt is a Hasher backed by bcrypt
type Bcrypt struct{ Cost int }

// BcryptFromEnv reads AUTH_BCRYPT_COST (default 12)
func BcryptFromEnv(c config.Conf) Bcrypt {
	return Bcrypt{Cost: c.MayInt("BCRYPT_COST", 12)}
}

// Hash returns the bcrypt hash of plain; out of range costs use bcrypt.DefaultCost
func (b Bcrypt) Hash(plain string) (string, error) {
	cost := b.Cost
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	h, err := bcrypt.GenerateFromPassword([]byte(plain), cost)
	if err != nil {
		return "", err
	}
	return string(h), nil
}

// Verify reports whether plain matches hash
func (Bcrypt) Verify(hash, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
