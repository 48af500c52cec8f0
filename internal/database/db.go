package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/lib/pq"
	"github.com/media-site/internal/config"
	"github.com/rs/zerolog"
)

const (
	pingTimeout = 5 * time.Second
	fileScheme  = "file://"
)

// DB is the content store pool shared by the read repositories
type DB struct {
	*sql.DB
	log zerolog.Logger
}

// New connects to the content store and fails fast when it is unreachable
func New(cfg *config.DatabaseConfig, log zerolog.Logger) (*DB, error) {
	pool, err := sql.Open("postgres", cfg.GetDSN())
	if err != nil {
		return nil, fmt.Errorf("open content store: %w", err)
	}
	pool.SetMaxOpenConns(cfg.MaxOpenConns)
	pool.SetMaxIdleConns(cfg.MaxIdleConns)
	pool.SetConnMaxLifetime(cfg.MaxLifetime)

	db := &DB{DB: pool, log: log.With().Str("component", "content_store").Logger()}

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()
	if err := db.HealthCheck(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("content store %s/%s unreachable: %w", cfg.Host, cfg.Name, err)
	}

	db.log.Info().
		Str("host", cfg.Host).
		Str("database", cfg.Name).
		Int("pool_size", cfg.MaxOpenConns).
		Msg("Content store connected")
	return db, nil
}

// migrationSource turns a directory into a golang-migrate file source URL
func migrationSource(path string) string {
	path = strings.TrimPrefix(path, fileScheme)
	if path == "" {
		path = "."
	}
	return fileScheme + filepath.ToSlash(filepath.Clean(path))
}

func (db *DB) newMigrator(path string) (*migrate.Migrate, error) {
	driver, err := postgres.WithInstance(db.DB, &postgres.Config{})
	if err != nil {
		return nil, fmt.Errorf("migration driver: %w", err)
	}
	m, err := migrate.NewWithDatabaseInstance(migrationSource(path), "postgres", driver)
	if err != nil {
		return nil, fmt.Errorf("migration source %s: %w", path, err)
	}
	return m, nil
}

// RunMigrations brings a fresh environment up to the content schema.
// Production schemas belong to the CMS; this only runs when DB_RUN_MIGRATIONS is set.
func (db *DB) RunMigrations(path string) error {
	m, err := db.newMigrator(path)
	if err != nil {
		return err
	}

	err = m.Up()
	switch {
	case errors.Is(err, migrate.ErrNoChange):
		db.log.Debug().Msg("Content schema already current")
	case err != nil:
		return fmt.Errorf("apply content schema: %w", err)
	}

	version, dirty, err := m.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return fmt.Errorf("read schema version: %w", err)
	}
	if dirty {
		return fmt.Errorf("content schema version %d is dirty", version)
	}
	db.log.Info().Uint("schema_version", version).Str("source", migrationSource(path)).Msg("Content schema ready")
	return nil
}

// HealthCheck pings the pool
func (db *DB) HealthCheck(ctx context.Context) error {
	return db.PingContext(ctx)
}
