package migration

import (
	"bytes"
	"io/fs"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmbeddedMigrations(t *testing.T) {
	files, err := fs.Glob(embeddedMigrations, "migrations/*.sql")
	require.NoError(t, err)
	require.NotEmpty(t, files)

	data, err := fs.ReadFile(embeddedMigrations, "migrations/00001_init.sql")
	require.NoError(t, err)
	sql := string(data)

	assert.Contains(t, sql, "-- +goose Up")
	assert.Contains(t, sql, "-- +goose Down")
	for _, table := range []string{"datastore", "job", "job_log", "target", "maintenance"} {
		assert.Contains(t, sql, "CREATE TABLE IF NOT EXISTS "+table+" (")
	}
	assert.Contains(t, sql, "WHERE status NOT IN ('completed', 'failed')")
}

func TestGooseAdapter(t *testing.T) {
	var buf bytes.Buffer
	adapter := NewGooseAdapter(zerolog.New(&buf))

	adapter.Printf("OK   %s (%v)\n", "00001_init.sql", "12ms")

	assert.Contains(t, buf.String(), `"component":"goose"`)
	assert.Contains(t, buf.String(), `"message":"OK   00001_init.sql (12ms)"`)

	buf.Reset()
	assert.PanicsWithValue(t, "failed to apply", func() {
		adapter.Fatalf("failed to %s", "apply")
	})
	assert.Contains(t, buf.String(), `"level":"error"`)
}
