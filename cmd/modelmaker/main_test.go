package main

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matryer/is"

	"github.com/domino14/classic_crypto/internal/langtest"
	"github.com/domino14/classic_crypto/internal/modelstore"
)

func TestListModels(t *testing.T) {
	is := is.New(t)
	ctx := context.Background()
	store, err := modelstore.OpenSQLite(filepath.Join(t.TempDir(), "models.db"))
	is.NoErr(err)
	defer store.Close()

	var sb strings.Builder
	is.NoErr(listModels(ctx, store, &sb))
	is.Equal(sb.String(), "")

	is.NoErr(store.Put(ctx, langtest.English(t)))
	is.NoErr(listModels(ctx, store, &sb))
	fields := strings.Split(strings.TrimSpace(sb.String()), "\t")
	is.Equal(len(fields), 4)
	is.Equal(fields[0], "english")
	is.Equal(fields[1], "26")
}

func TestLoadListFlag(t *testing.T) {
	is := is.New(t)
	cfg := &Config{}
	is.NoErr(cfg.Load([]string{"-list", "-modeldb", "m.db"}))
	is.True(cfg.list)
	is.Equal(cfg.modelDB, "m.db")
}
