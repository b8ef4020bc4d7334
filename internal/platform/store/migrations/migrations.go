// Package migrations applies the embedded postgres schema with golang-migrate
package migrations

import (
	"embed"
	"errors"
	"fmt"
	"strings"

	"airwatch/internal/platform/logger"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5" // registers pgx5://
	"github.com/golang-migrate/migrate/v4/source"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

//go:embed files/*.sql
var files embed.FS

// State describes where a database sits relative to the embedded migrations
type State struct {
	Version uint `json:"version"`
	Latest  uint `json:"latest"`
	Dirty   bool `json:"dirty"`
}

// Pending reports whether migrations remain to be applied
func (s State) Pending() bool { return s.Version < s.Latest }

// DriverURL rewrites a postgres DSN to the scheme the pgx5 migrate driver registers
func DriverURL(dsn string) string {
	for _, p := range []string{"postgresql://", "postgres://"} {
		if strings.HasPrefix(dsn, p) {
			return "pgx5://" + strings.TrimPrefix(dsn, p)
		}
	}
	return dsn
}

// Up applies every pending migration; an up to date schema is not an error
func Up(dsn string) error {
	m, err := open(dsn)
	if err != nil {
		return err
	}
	defer closeQuietly(m)

	if err := m.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			logger.Named("migrations").Info().Msg("schema up to date")
			return nil
		}
		return fmt.Errorf("migration failed: %w", err)
	}
	v, _, _ := m.Version()
	logger.Named("migrations").Info().Uint("version", v).Msg("schema migrated")
	return nil
}

// Status reports the applied version against the latest embedded one
func Status(dsn string) (State, error) {
	latest, err := Latest()
	if err != nil {
		return State{}, err
	}
	m, err := open(dsn)
	if err != nil {
		return State{}, err
	}
	defer closeQuietly(m)

	v, dirty, err := m.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return State{}, fmt.Errorf("read schema version: %w", err)
	}
	return State{Version: v, Latest: latest, Dirty: dirty}, nil
}

// Latest returns the highest version among the embedded files
func Latest() (uint, error) {
	src, err := iofs.New(files, "files")
	if err != nil {
		return 0, fmt.Errorf("read migration files: %w", err)
	}
	defer src.Close()
	return latestVersion(src)
}

func latestVersion(src source.Driver) (uint, error) {
	v, err := src.First()
	if err != nil {
		return 0, err
	}
	for {
		next, err := src.Next(v)
		if err != nil {
			return v, nil
		}
		v = next
	}
}

func open(dsn string) (*migrate.Migrate, error) {
	src, err := iofs.New(files, "files")
	if err != nil {
		return nil, fmt.Errorf("create source driver: %w", err)
	}
	m, err := migrate.NewWithSourceInstance("iofs", src, DriverURL(dsn))
	if err != nil {
		_ = src.Close()
		return nil, fmt.Errorf("create migrate instance: %w", err)
	}
	return m, nil
}

func closeQuietly(m *migrate.Migrate) {
	srcErr, dbErr := m.Close()
	if srcErr != nil || dbErr != nil {
		logger.Named("migrations").Warn().AnErr("source", srcErr).AnErr("db", dbErr).Msg("close migrate")
	}
}
