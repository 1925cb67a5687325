// Package modelstore keeps trained language models and hands out shared,
// read-only copies of them.
package modelstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	// sqlite3 driver is used by this store.
	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog/log"

	"github.com/domino14/classic_crypto/internal/lang"
)

var ErrNotFound = errors.New("model not found")

// A Source finds trained models by name.
type Source interface {
	Language(ctx context.Context, name string) (*lang.Language, error)
}

const schema = `
CREATE TABLE IF NOT EXISTS models (
	name TEXT PRIMARY KEY,
	alphabet_len INTEGER NOT NULL,
	expected_ioc REAL NOT NULL,
	model BLOB NOT NULL,
	created_at TIMESTAMP NOT NULL
)`

// Info summarises a stored model.
type Info struct {
	Name        string
	AlphabetLen int
	ExpectedIOC float64
	CreatedAt   time.Time
}

// cache holds decoded models; decoding the quadgram table is the expensive
// part of a lookup.
type cache struct {
	mu     sync.Mutex
	models map[string]*lang.Language
}

func (c *cache) get(name string) (*lang.Language, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	l, ok := c.models[name]
	return l, ok
}

func (c *cache) put(name string, l *lang.Language) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.models == nil {
		c.models = map[string]*lang.Language{}
	}
	c.models[name] = l
}

func (c *cache) drop(name string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.models, name)
}

// SQLite stores models as blobs in a single SQLite database.
type SQLite struct {
	db    *sql.DB
	cache cache
}

// OpenSQLite opens (creating if needed) the model database at path.
func OpenSQLite(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, err
	}
	return &SQLite{db: db}, nil
}

func (s *SQLite) Close() error {
	return s.db.Close()
}

// Put stores l, replacing any model with the same name.
func (s *SQLite) Put(ctx context.Context, l *lang.Language) error {
	bts, err := l.MarshalBinary()
	if err != nil {
		return err
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()
	stmt, err := tx.PrepareContext(ctx, `
		INSERT OR REPLACE INTO models (name, alphabet_len, expected_ioc, model, created_at)
		VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()
	_, err = stmt.ExecContext(ctx, l.Name, l.AlphabetLen, l.Primary().ExpectedIOC(), bts,
		time.Now().UTC())
	if err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	s.cache.drop(l.Name)
	log.Info().Str("lang", l.Name).Int("bytes", len(bts)).Msg("stored-model")
	return nil
}

// Language loads the named model.
func (s *SQLite) Language(ctx context.Context, name string) (*lang.Language, error) {
	if l, ok := s.cache.get(name); ok {
		return l, nil
	}
	var bts []byte
	err := s.db.QueryRowContext(ctx, `SELECT model FROM models WHERE name = ?`, name).Scan(&bts)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", lang.ErrRead, err)
	}
	l, err := lang.UnmarshalLanguage(bts)
	if err != nil {
		return nil, err
	}
	s.cache.put(name, l)
	return l, nil
}

// List describes every stored model, ordered by name.
func (s *SQLite) List(ctx context.Context) ([]Info, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT name, alphabet_len, expected_ioc, created_at FROM models ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	infos := []Info{}
	for rows.Next() {
		var info Info
		if err := rows.Scan(&info.Name, &info.AlphabetLen, &info.ExpectedIOC, &info.CreatedAt); err != nil {
			return nil, err
		}
		infos = append(infos, info)
	}
	return infos, rows.Err()
}

// Dir reads models from <Path>/<name>.ccm files.
type Dir struct {
	Path  string
	cache cache
}

func (d *Dir) Language(ctx context.Context, name string) (*lang.Language, error) {
	if l, ok := d.cache.get(name); ok {
		return l, nil
	}
	if name == "" || filepath.Base(name) != name {
		return nil, fmt.Errorf("%w: bad model name %q", ErrNotFound, name)
	}
	l, err := lang.LoadFile(filepath.Join(d.Path, name+lang.ModelExtension))
	if errors.Is(err, lang.ErrFileNotFound) {
		return nil, fmt.Errorf("%w: %w", ErrNotFound, err)
	}
	if err != nil {
		return nil, err
	}
	log.Ctx(ctx).Debug().Str("lang", name).Msg("cached-model")
	d.cache.put(name, l)
	return l, nil
}
