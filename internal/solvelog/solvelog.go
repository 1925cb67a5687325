// Package solvelog journals finished solves to Postgres.
package solvelog

import (
	"context"
	"errors"
	"time"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"
)

type Entry struct {
	ID            int64
	Language      string
	Cipher        string
	CiphertextLen int
	Key           string
	Score         float64
	Elapsed       time.Duration
	Username      string
	CreatedAt     time.Time
}

type Store struct {
	pool *pgxpool.Pool
}

func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

// Connect opens a pool against dbURI.
func Connect(ctx context.Context, dbURI string) (*Store, error) {
	pool, err := pgxpool.New(ctx, dbURI)
	if err != nil {
		return nil, err
	}
	return NewStore(pool), nil
}

func (s *Store) Close() {
	s.pool.Close()
}

// Migrate brings the journal schema up to date.
func Migrate(migrationsPath, dbURI string) error {
	m, err := migrate.New(migrationsPath, dbURI)
	if err != nil {
		return err
	}
	defer func() {
		e1, e2 := m.Close()
		if e1 != nil || e2 != nil {
			log.Error().AnErr("source", e1).AnErr("database", e2).Msg("closing-migrations")
		}
	}()
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}
	return nil
}

// Record inserts e and returns its id.
func (s *Store) Record(ctx context.Context, e Entry) (int64, error) {
	var id int64
	err := s.pool.QueryRow(ctx, `
		INSERT INTO solve_log (language, cipher, ciphertext_len, key, score, elapsed_ms, username)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`,
		e.Language, e.Cipher, e.CiphertextLen, e.Key, e.Score, e.Elapsed.Milliseconds(), e.Username,
	).Scan(&id)
	return id, err
}

// Recent returns up to limit entries, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]Entry, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, language, cipher, ciphertext_len, key, score, elapsed_ms, username, created_at
		FROM solve_log
		ORDER BY created_at DESC, id DESC
		LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (Entry, error) {
		var e Entry
		var elapsedMS int64
		err := row.Scan(&e.ID, &e.Language, &e.Cipher, &e.CiphertextLen, &e.Key, &e.Score,
			&elapsedMS, &e.Username, &e.CreatedAt)
		e.Elapsed = time.Duration(elapsedMS) * time.Millisecond
		return e, err
	})
}
