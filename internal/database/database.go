package database

import (
	"errors"
	"fmt"
	"log"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"librarium/internal/config"
	"librarium/internal/entities"
)

// Engine identifies which storage engine the bootstrap settled on.
type Engine string

const (
	EnginePostgres Engine = "postgres"
	EngineSQLite   Engine = "sqlite"
)

// BootstrapState models the startup connection decision. The machine runs
// exactly once per process: after READY the choice is never revisited.
type BootstrapState string

const (
	StateAttemptPrimary    BootstrapState = "attempt_primary"
	StateFallbackSecondary BootstrapState = "fallback_secondary"
	StateReady             BootstrapState = "ready"
	StateFailed            BootstrapState = "failed"
)

type Database struct {
	DB     *gorm.DB
	Engine Engine
}

// Connect opens the primary postgres store, falling back to the embedded
// SQLite store on any connection error. Both failing is fatal to the caller.
func Connect(cfg config.Database) (*Database, error) {
	state := StateAttemptPrimary
	var (
		db     *gorm.DB
		engine Engine
		errs   []error
	)

	for state != StateReady && state != StateFailed {
		switch state {
		case StateAttemptPrimary:
			if cfg.PrimaryDSN == "" {
				log.Printf("No primary database configured, using embedded SQLite store")
				state = StateFallbackSecondary
				continue
			}
			primary, err := openPrimary(cfg.PrimaryDSN)
			if err != nil {
				log.Printf("Primary database unavailable: %v, falling back to SQLite", err)
				errs = append(errs, err)
				state = StateFallbackSecondary
				continue
			}
			db, engine = primary, EnginePostgres
			state = StateReady

		case StateFallbackSecondary:
			fallback, err := openFallback(cfg.FallbackPath)
			if err != nil {
				errs = append(errs, err)
				state = StateFailed
				continue
			}
			db, engine = fallback, EngineSQLite
			state = StateReady
		}
	}

	if state == StateFailed {
		return nil, fmt.Errorf("failed to connect to any database: %w", errors.Join(errs...))
	}

	if err := db.AutoMigrate(
		&entities.Book{},
		&entities.User{},
		&entities.RevokedToken{},
	); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	log.Printf("Database initialized successfully (engine: %s)", engine)

	return &Database{DB: db, Engine: engine}, nil
}

// openPrimary opens and pings the postgres store; a failed ping counts as a
// connection error so the caller can fall back.
func openPrimary(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to access postgres connection pool: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("failed to ping postgres: %w", err)
	}
	return db, nil
}

func openFallback(path string) (*gorm.DB, error) {
	if path == "" {
		path = config.DefaultFallbackPath
	}
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite database at %s: %w", path, err)
	}
	return db, nil
}

func (d *Database) Close() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
