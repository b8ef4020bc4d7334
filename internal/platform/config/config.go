// Package config handles application configuration via environment variables
package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"airwatch/internal/platform/logger"
)

// Conf is a namespaced view over environment variables
// Use New() for global access, or Prefix("CORE_API_") for module scopes
type Conf struct{ prefix string }

// New creates a root Conf (no prefix)
func New() Conf { return Conf{} }

// Prefix creates a child Conf with an additional prefix
func (c Conf) Prefix(p string) Conf { return Conf{prefix: c.prefix + p} }

// Key returns the fully qualified env var name
func (c Conf) Key(k string) string { return c.prefix + k }

func (c Conf) lookup(k string) string { return strings.TrimSpace(os.Getenv(c.Key(k))) }

// must returns the raw value or panics through the logger when it is empty
func (c Conf) must(k string) string {
	v := c.lookup(k)
	if v == "" {
		logger.Get().Panic().Str("key", c.Key(k)).Msg("missing required env")
	}
	return v
}

// may parses the value with parse; empty returns def, a parse failure logs and returns def
func may[T any](c Conf, k string, def T, kind string, parse func(string) (T, error)) T {
	s := c.lookup(k)
	if s == "" {
		return def
	}
	v, err := parse(s)
	if err != nil {
		logger.Get().Warn().Str("key", c.Key(k)).Str("value", s).Str("kind", kind).Msg("invalid env value; using default")
		return def
	}
	return v
}

// MustString panics if the key is missing or empty
func (c Conf) MustString(key string) string { return c.must(key) }

// MustInt panics if the key is missing or not an int
func (c Conf) MustInt(key string) int {
	s := c.must(key)
	v, err := strconv.Atoi(s)
	if err != nil {
		logger.Get().Panic().Str("key", c.Key(key)).Str("value", s).Msg("invalid int value")
	}
	return v
}

// MayString returns the value or def if missing
func (c Conf) MayString(key, def string) string {
	if v := c.lookup(key); v != "" {
		return v
	}
	return def
}

// MayInt returns the value or def if missing or invalid
func (c Conf) MayInt(key string, def int) int {
	return may(c, key, def, "int", strconv.Atoi)
}

// MayBool returns the value or def if missing or invalid
func (c Conf) MayBool(key string, def bool) bool {
	return may(c, key, def, "bool", strconv.ParseBool)
}

// MayDuration returns the value or def if missing or invalid (250ms, 2s, 24h)
func (c Conf) MayDuration(key string, def time.Duration) time.Duration {
	return may(c, key, def, "duration", time.ParseDuration)
}

// MayCSV splits a comma separated value, dropping blanks; def if nothing remains
func (c Conf) MayCSV(key string, def []string) []string {
	var out []string
	for _, p := range strings.Split(c.lookup(key), ",") {
		if v := strings.TrimSpace(p); v != "" {
			out = append(out, v)
		}
	}
	if len(out) == 0 {
		return def
	}
	return out
}

// MayEnum returns the value when it is one of allowed (case-insensitive), def when empty, and panics otherwise
func (c Conf) MayEnum(key, def string, allowed ...string) string {
	v := c.MayString(key, def)
	for _, a := range allowed {
		if strings.EqualFold(v, a) {
			return strings.ToLower(a)
		}
	}
	if v == def {
		return v
	}
	logger.Get().Panic().Str("key", c.Key(key)).Str("value", v).Strs("allowed", allowed).Msg("invalid enum value")
	return ""
}
