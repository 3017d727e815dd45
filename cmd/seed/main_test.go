package main

import (
	"bytes"
	"context"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aoideee/crud-api/internal/data"
	"github.com/aoideee/crud-api/internal/store"
)

func noEnv(string) string { return "" }

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCommand(noEnv)
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestSeedText(t *testing.T) {
	seeds, err := data.LoadSeeds()
	require.NoError(t, err)

	out, err := execute(t, "--db", "memory://")
	require.NoError(t, err)
	assert.Contains(t, out, "seeded 8 books and 6 wines")
	assert.Len(t, seeds.Books, 8)
	assert.Len(t, seeds.Wines, 6)
}

func TestSeedJSON(t *testing.T) {
	out, err := execute(t, "--db", "memory://", "--format", "json")
	require.NoError(t, err)

	var records []map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &records))
	assert.Len(t, records, 14)
}

func TestSeedSqliteIsRepeatable(t *testing.T) {
	dbURL := "sqlite://" + filepath.Join(t.TempDir(), "crud.db")

	for i := 0; i < 2; i++ {
		_, err := execute(t, "--db", dbURL)
		require.NoError(t, err)
	}

	s, err := store.Open(context.Background(), dbURL)
	require.NoError(t, err)
	defer s.Close(context.Background())

	books, err := data.NewModels(s).Books.GetAll(context.Background())
	require.NoError(t, err)
	assert.Len(t, books, 8)
}

func TestSeedErrors(t *testing.T) {
	_, err := execute(t, "--db", "memory://", "--format", "xml")
	assert.ErrorContains(t, err, "invalid format")

	_, err = execute(t, "--db", "redis://localhost")
	assert.ErrorIs(t, err, store.ErrUnsupportedScheme)

	_, err = execute(t, "extra")
	assert.Error(t, err)
}
