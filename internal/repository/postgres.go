// Package repository contains the database-backed ShortLink stores: a
// relational one on PostgreSQL and a document-style one on Redis.
package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib"
	"go.uber.org/zap"

	"github.com/atarasenko/shortlink/internal/storage"
)

// InitDB opens a PostgreSQL connection pool and ensures the short_links
// table and its unique index exist.
func InitDB(dsn string, logger *zap.Logger) *sql.DB {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		logger.Fatal("failed to open database", zap.Error(err))
	}

	if err := db.Ping(); err != nil {
		logger.Fatal("failed to ping database", zap.Error(err))
	}

	createTable := `
		CREATE TABLE IF NOT EXISTS short_links (
		id UUID PRIMARY KEY,
		short_id TEXT NOT NULL,
		original_url TEXT NOT NULL,
		clicks BIGINT NOT NULL DEFAULT 0,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	);`

	if _, err = db.Exec(createTable); err != nil {
		logger.Fatal("failed to create table", zap.Error(err))
	}

	createIndex := "CREATE UNIQUE INDEX IF NOT EXISTS short_links_short_id_key ON short_links (short_id);"

	if _, err = db.Exec(createIndex); err != nil {
		logger.Fatal("failed to create index", zap.Error(err))
	}

	return db
}

// LinkRepository implements the service storage interface on PostgreSQL.
type LinkRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

func CreateLinkRepository(db *sql.DB, logger *zap.Logger) *LinkRepository {
	return &LinkRepository{
		db:     db,
		logger: logger,
	}
}

// Insert creates a new record with clicks = 0. Uniqueness of the short ID is
// enforced by the index, not by a check-then-insert.
func (r *LinkRepository) Insert(ctx context.Context, shortID, originalURL string) (*storage.ShortLink, error) {
	record := storage.ShortLink{
		ID:          uuid.NewString(),
		ShortID:     shortID,
		OriginalURL: originalURL,
	}

	row := r.db.QueryRowContext(ctx,
		"INSERT INTO short_links(id, short_id, original_url) VALUES ($1, $2, $3) RETURNING clicks, created_at;",
		record.ID, record.ShortID, record.OriginalURL,
	)

	if err := row.Scan(&record.Clicks, &record.CreatedAt); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return nil, storage.ErrDuplicateKey
		}

		r.logger.Error("insert failed", zap.String("shortID", shortID), zap.Error(err))
		return nil, err
	}

	return &record, nil
}

func (r *LinkRepository) FindByShortID(ctx context.Context, shortID string) (*storage.ShortLink, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT id, short_id, original_url, clicks, created_at FROM short_links WHERE short_id = $1;",
		shortID,
	)

	var record storage.ShortLink
	if err := row.Scan(&record.ID, &record.ShortID, &record.OriginalURL, &record.Clicks, &record.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrNotFound
		}

		r.logger.Error("lookup failed", zap.String("shortID", shortID), zap.Error(err))
		return nil, err
	}

	return &record, nil
}

// IncrementAndFetch bumps the click counter and returns the updated record in
// a single UPDATE ... RETURNING statement, so concurrent redirects on the
// same short ID never lose updates.
func (r *LinkRepository) IncrementAndFetch(ctx context.Context, shortID string) (*storage.ShortLink, error) {
	row := r.db.QueryRowContext(ctx,
		"UPDATE short_links SET clicks = clicks + 1 WHERE short_id = $1 RETURNING id, short_id, original_url, clicks, created_at;",
		shortID,
	)

	var record storage.ShortLink
	if err := row.Scan(&record.ID, &record.ShortID, &record.OriginalURL, &record.Clicks, &record.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrNotFound
		}

		r.logger.Error("increment failed", zap.String("shortID", shortID), zap.Error(err))
		return nil, err
	}

	return &record, nil
}

func (r *LinkRepository) PingContext(ctx context.Context) error {
	return r.db.PingContext(ctx)
}
