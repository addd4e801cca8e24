package database

import (
	"context"
	"fmt"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

var _ DB = (*Client)(nil) // Ensure Client implements DB

// DB defines the interface for database operations.
type DB interface {
	// User management
	CreateUser(ctx context.Context, email, username string) (*User, error)
	GetUserByEmail(ctx context.Context, email string) (*User, error)
	GetUserByID(ctx context.Context, id uint) (*User, error)
	GetOrCreateUserByEmail(ctx context.Context, email, username string) (*User, error)
	UpdateUser(ctx context.Context, id uint, update UserUpdate) (*User, error)
	DeleteUser(ctx context.Context, id uint) error

	// Audio file records
	CreateAudioFile(ctx context.Context, userID uint, fileName, filePath string) (*AudioFile, error)
	GetUserAudioFiles(ctx context.Context, userID uint) ([]AudioFile, error)

	// Utility
	Close() error
}

// PoolConfig bounds the underlying connection pool.
type PoolConfig struct {
	// MaxOpenConns is the maximum number of open connections.
	MaxOpenConns int
	// ConnMaxLifetime is the maximum age of a connection before it is recycled.
	ConnMaxLifetime time.Duration
}

// Client wraps the gorm.DB instance.
type Client struct {
	db *gorm.DB
}

// New creates a new database connection, configures the connection pool
// and performs migrations.
func New(dbpath string, pool PoolConfig) (*Client, error) {
	db, err := gorm.Open(sqlite.Open(dbpath), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database handle: %w", err)
	}
	if pool.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(pool.MaxOpenConns)
	}
	if pool.ConnMaxLifetime > 0 {
		sqlDB.SetConnMaxLifetime(pool.ConnMaxLifetime)
	}
	// Liveness check before serving requests
	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if err := db.AutoMigrate(
		&User{},
		&AudioFile{},
	); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return &Client{db: db}, nil
}

// Close closes the underlying connection pool.
func (c *Client) Close() error {
	sqlDB, err := c.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database handle: %w", err)
	}
	return sqlDB.Close()
}
