// Package security issues session tokens and hashes passwords
package security

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"airwatch/internal/platform/config"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

// Claims are the session claims carried by every token
type Claims struct {
	ID   int64  `json:"id"`
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// Tokens signs and verifies HS256 session tokens
type Tokens struct {
	secret []byte
	ttl    time.Duration
	issuer string
	now    func() time.Time
}

// TokensConfig configures a Tokens signer
type TokensConfig struct {
	Secret string
	TTL    time.Duration
	Issuer string
}

// TokensFromEnv reads AUTH_JWT_SECRET (required) and AUTH_TOKEN_TTL (default 24h)
func TokensFromEnv(c config.Conf) TokensConfig {
	return TokensConfig{
		Secret: c.MustString("JWT_SECRET"),
		TTL:    c.MayDuration("TOKEN_TTL", 24*time.Hour),
		Issuer: c.MayString("ISSUER", "airwatch"),
	}
}

// ErrTokenInvalid is returned for any token that fails verification
var ErrTokenInvalid = errors.New("invalid token")

// NewTokens builds a signer; an empty secret is a programmer error
func NewTokens(cfg TokensConfig) *Tokens {
	if cfg.Secret == "" {
		panic("security.NewTokens requires a secret")
	}
	if cfg.TTL <= 0 {
		cfg.TTL = 24 * time.Hour
	}
	return &Tokens{secret: []byte(cfg.Secret), ttl: cfg.TTL, issuer: cfg.Issuer, now: time.Now}
}

// Issue signs a token for the user id and role
func (t *Tokens) Issue(id int64, role string) (string, Claims, error) {
	now := t.now()
	c := Claims{
		ID:   id,
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Issuer:    t.issuer,
			Subject:   strconv.FormatInt(id, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(t.ttl)),
		},
	}
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString(t.secret)
	if err != nil {
		return "", Claims{}, fmt.Errorf("sign token: %w", err)
	}
	return s, c, nil
}

// Parse verifies signature, algorithm and expiry and returns the claims
func (t *Tokens) Parse(raw string) (Claims, error) {
	var c Claims
	tok, err := jwt.ParseWithClaims(raw, &c, func(tok *jwt.Token) (any, error) {
		if _, ok := tok.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", tok.Header["alg"])
		}
		return t.secret, nil
	})
	if err != nil || !tok.Valid {
		return Claims{}, fmt.Errorf("%w: %v", ErrTokenInvalid, err)
	}
	if c.ID <= 0 || c.Role == "" {
		return Claims{}, fmt.Errorf("%w: missing id or role", ErrTokenInvalid)
	}
	return c, nil
}
