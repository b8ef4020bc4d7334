package module

import (
	"airwatch/internal/platform/config"
	"airwatch/internal/platform/security"
	svc "airwatch/internal/services/api/auth/service"
)

// Options carries the signing and hashing backends for the auth module
type Options struct {
	Tokens svc.TokenIssuer
	Hasher security.Hasher
}

// FromConfig reads AUTH_JWT_SECRET, AUTH_TOKEN_TTL and AUTH_BCRYPT_COST
func FromConfig(cfg config.Conf) Options {
	c := cfg.Prefix("AUTH_")
	return Options{
		Tokens: security.NewTokens(security.TokensFromEnv(c)),
		Hasher: security.BcryptFromEnv(c),
	}
}
