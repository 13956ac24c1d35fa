package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "github.com/jackc/pgx/v4/stdlib"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"soulsync/internal/config"
)

const recordsSchema = `
CREATE TABLE IF NOT EXISTS records (
	key   TEXT PRIMARY KEY,
	value BYTEA NOT NULL
)`

// PostgresStore is a RecordStore backed by a single key/value table.
type PostgresStore struct {
	db     *sqlx.DB
	logger *zap.Logger
}

// NewPostgresStore connects to postgres and ensures the records table exists
func NewPostgresStore(ctx context.Context, dbConfig config.DatabaseConfig, logger *zap.Logger) (*PostgresStore, error) {
	dsn := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		dbConfig.Host,
		dbConfig.Port,
		dbConfig.User,
		dbConfig.Password,
		dbConfig.DBName,
		dbConfig.SSLMode,
	)

	db, err := sqlx.ConnectContext(ctx, "pgx", dsn)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(dbConfig.MaxOpenConns)
	db.SetMaxIdleConns(dbConfig.MaxIdleConns)
	db.SetConnMaxLifetime(dbConfig.ConnMaxLifetime)

	if _, err := db.ExecContext(ctx, recordsSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create records table: %w", err)
	}

	return &PostgresStore{db: db, logger: logger}, nil
}

// Get returns the value for key, or (nil, nil) when absent
func (s *PostgresStore) Get(ctx context.Context, key string) ([]byte, error) {
	query := `SELECT value FROM records WHERE key = $1`

	var value []byte
	if err := s.db.GetContext(ctx, &value, query, key); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		s.logger.Error("failed to get record", zap.String("key", key), zap.Error(err))
		return nil, err
	}

	return value, nil
}

// Set replaces the value for key
func (s *PostgresStore) Set(ctx context.Context, key string, value []byte) error {
	query := `
		INSERT INTO records (key, value) VALUES ($1, $2)
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value`

	if _, err := s.db.ExecContext(ctx, query, key, value); err != nil {
		s.logger.Error("failed to set record", zap.String("key", key), zap.Error(err))
		return err
	}

	return nil
}

// Delete removes the key
func (s *PostgresStore) Delete(ctx context.Context, key string) error {
	query := `DELETE FROM records WHERE key = $1`

	if _, err := s.db.ExecContext(ctx, query, key); err != nil {
		s.logger.Error("failed to delete record", zap.String("key", key), zap.Error(err))
		return err
	}

	return nil
}

// Close releases the database handle
func (s *PostgresStore) Close() error {
	return s.db.Close()
}
