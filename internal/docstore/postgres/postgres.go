package postgres

import (
	"context"
	"fmt"
	"time"

	"taskflow/internal/docstore"
	"taskflow/internal/logger"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

const schema = `
CREATE TABLE IF NOT EXISTS documents (
	collection TEXT NOT NULL,
	id         TEXT NOT NULL,
	doc        JSONB NOT NULL,
	PRIMARY KEY (collection, id)
);
`

const slowQuery = 100 * time.Millisecond

type Store struct {
	pool *pgxpool.Pool
}

func New(ctx context.Context, connString string) (*Store, error) {
	config, err := pgxpool.ParseConfig(connString)
	if err != nil {
		logger.Error("Repository: failed to parse pool config", err)
		return nil, fmt.Errorf("parse pool config: %w", err)
	}

	config.MaxConns = 10
	config.MinConns = 2
	config.MaxConnIdleTime = time.Minute * 5

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		logger.Error("Repository: failed to create pool", err)
		return nil, fmt.Errorf("create pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		logger.Error("Repository: ping failed", err)
		pool.Close()
		return nil, fmt.Errorf("ping: %w", err)
	}

	if _, err := pool.Exec(ctx, schema); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ensure documents table: %w", err)
	}

	logger.Info("Repository: connected to PostgreSQL")
	return &Store{pool: pool}, nil
}

func (s *Store) LoadAll(ctx context.Context, collection string) ([]docstore.Document, error) {
	start := time.Now()

	rows, err := s.pool.Query(ctx,
		`SELECT id, doc FROM documents WHERE collection = $1 ORDER BY id`, collection)
	if err != nil {
		logger.Error("Repository: load failed", err, zap.String("collection", collection))
		return nil, fmt.Errorf("load %s: %w", collection, err)
	}
	defer rows.Close()

	var docs []docstore.Document
	for rows.Next() {
		var d docstore.Document
		if err := rows.Scan(&d.ID, &d.Data); err != nil {
			return nil, fmt.Errorf("scan %s document: %w", collection, err)
		}
		docs = append(docs, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("load %s: %w", collection, err)
	}

	if time.Since(start) > slowQuery {
		logger.Warn("Repository: slow operation",
			zap.String("collection", collection),
			zap.Duration("ms", time.Since(start)))
	}
	return docs, nil
}

func (s *Store) Put(ctx context.Context, collection, id string, data []byte) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO documents (collection, id, doc) VALUES ($1, $2, $3)
		 ON CONFLICT (collection, id) DO UPDATE SET doc = EXCLUDED.doc`,
		collection, id, data)
	if err != nil {
		logger.Error("Repository: put failed", err,
			zap.String("collection", collection), zap.String("id", id))
		return fmt.Errorf("put %s/%s: %w", collection, id, err)
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, collection, id string) error {
	_, err := s.pool.Exec(ctx,
		`DELETE FROM documents WHERE collection = $1 AND id = $2`, collection, id)
	if err != nil {
		logger.Error("Repository: delete failed", err,
			zap.String("collection", collection), zap.String("id", id))
		return fmt.Errorf("delete %s/%s: %w", collection, id, err)
	}
	return nil
}

func (s *Store) HealthCheck(ctx context.Context) error {
	if err := s.pool.Ping(ctx); err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	return nil
}

func (s *Store) Close() {
	s.pool.Close()
	logger.Info("Repository: PostgreSQL connections closed")
}
