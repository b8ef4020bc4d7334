package store

import "airwatch/internal/platform/config"

// Config aggregates per backend configuration
type Config struct {
	AppName string
	PG      PGConfig
}

// PGConfig configures postgres connectivity and tracing
type PGConfig struct {
	Enabled     bool
	URL         string
	MaxConns    int32
	LogSQL      bool
	SlowQueryMs int
	// Migrate applies embedded migrations at boot
	Migrate bool
}

// FromEnv reads SERVICE_PGSQL_* from c
func FromEnv(c config.Conf) Config {
	pgc := c.Prefix("SERVICE_PGSQL_")
	return Config{
		AppName: c.MayString("APP_NAME", "airwatch"),
		PG: PGConfig{
			Enabled:     true,
			URL:         pgc.MustString("DBURL"),
			MaxConns:    int32(pgc.MayInt("MAX_CONNS", 10)),
			LogSQL:      pgc.MayBool("LOG_SQL", false),
			SlowQueryMs: pgc.MayInt("SLOW_MS", 250),
			Migrate:     pgc.MayBool("MIGRATE", false),
		},
	}
}
