// Package db provides database connectivity and operations
package db

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/devboard-esn/devboard/internal/db/models"
)

// Connection pool defaults
const (
	// DefaultMaxOpenConns is the maximum number of open connections
	DefaultMaxOpenConns = 25
	// DefaultMaxIdleConns is the maximum number of idle connections
	DefaultMaxIdleConns = 5
	// DefaultPingTimeout bounds the readiness ping
	DefaultPingTimeout = 2 * time.Second
)

// Options represents database connection configuration options
type Options struct {
	// URL is a postgres connection string, URL or key/value form
	URL      string
	LogLevel logger.LogLevel
}

// New opens a postgres connection with the given options and migrates the schema
func New(opts Options) (*gorm.DB, error) {
	if opts.URL == "" {
		return nil, errors.New("database url is required")
	}
	if opts.LogLevel == 0 {
		opts.LogLevel = logger.Warn
	}

	db, err := Open(postgres.Open(opts.URL), opts.LogLevel)
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql db: %w", err)
	}
	sqlDB.SetMaxOpenConns(DefaultMaxOpenConns)
	sqlDB.SetMaxIdleConns(DefaultMaxIdleConns)

	return db, nil
}

// Open opens a connection through any gorm dialector and migrates the schema
func Open(dialector gorm.Dialector, level logger.LogLevel) (*gorm.DB, error) {
	// Configure custom logger to ignore record not found errors
	newLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			LogLevel:                  level,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)

	db, err := gorm.Open(dialector, &gorm.Config{Logger: newLogger})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

// Migrate creates or updates the schema
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&models.Project{}); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}

// Ping checks that the database answers within DefaultPingTimeout
func Ping(ctx context.Context, db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, DefaultPingTimeout)
	defer cancel()
	return sqlDB.PingContext(ctx)
}

// Close releases the underlying connection pool
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
