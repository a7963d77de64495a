package database

import (
	"context"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/at-ishikawa/definer/internal/config"
	"github.com/at-ishikawa/definer/schemas"
)

func TestMigrate(t *testing.T) {
	ctx := context.Background()
	db, err := Open(config.DatabaseConfig{Driver: config.DriverSQLite, Path: ":memory:"})
	require.NoError(t, err)
	defer db.Close()

	first, err := Migrate(ctx, db, schemas.Migrations, "glossary")
	require.NoError(t, err)
	assert.Equal(t, []string{"sqlite/glossary/0001_create_terms.up.sql"}, first.Applied)
	assert.Empty(t, first.Skipped)

	_, err = db.ExecContext(ctx, "INSERT INTO glossary (term, display_term, definition) VALUES (?, ?, ?)", "apple", "Apple", "a round fruit")
	require.NoError(t, err)

	second, err := Migrate(ctx, db, schemas.Migrations, "glossary")
	require.NoError(t, err)
	assert.Empty(t, second.Applied)
	assert.Equal(t, []string{"sqlite/glossary/0001_create_terms.up.sql"}, second.Skipped)

	var count int
	require.NoError(t, db.GetContext(ctx, &count, "SELECT COUNT(*) FROM glossary"))
	assert.Equal(t, 1, count)

	var version int
	require.NoError(t, db.GetContext(ctx, &version, "SELECT version FROM glossary_schema_migrations"))
	assert.Equal(t, 1, version)
}

func TestMigrate_TablesKeepTheirOwnVersion(t *testing.T) {
	ctx := context.Background()
	db, err := Open(config.DatabaseConfig{Driver: config.DriverSQLite, Path: ":memory:"})
	require.NoError(t, err)
	defer db.Close()

	_, err = Migrate(ctx, db, schemas.Migrations, "glossary")
	require.NoError(t, err)

	got, err := Migrate(ctx, db, schemas.Migrations, "acronyms")
	require.NoError(t, err)
	assert.Equal(t, []string{"sqlite/acronyms/0001_create_terms.up.sql"}, got.Applied)

	var count int
	require.NoError(t, db.GetContext(ctx, &count, "SELECT COUNT(*) FROM acronyms"))
	assert.Zero(t, count)
}

func TestMigrate_CanceledContext(t *testing.T) {
	db, err := Open(config.DatabaseConfig{Driver: config.DriverSQLite, Path: ":memory:"})
	require.NoError(t, err)
	defer db.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = Migrate(ctx, db, schemas.Migrations, "glossary")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestMigrate_Errors(t *testing.T) {
	tests := []struct {
		name        string
		fs          fstest.MapFS
		wantErrText string
	}{
		{
			name:        "missing driver directory",
			fs:          fstest.MapFS{},
			wantErrText: "fs.ReadDir(migrations/sqlite)",
		},
		{
			name: "invalid template",
			fs: fstest.MapFS{
				"migrations/sqlite/0001_bad.up.sql": {Data: []byte("CREATE TABLE {{ .Table ")},
			},
			wantErrText: "parse migration 0001_bad.up.sql",
		},
		{
			name: "invalid sql",
			fs: fstest.MapFS{
				"migrations/sqlite/0001_bad.up.sql": {Data: []byte("CREATE TABEL {{ .Table }} (term TEXT)")},
			},
			wantErrText: "migrate.Up(sqlite/terms)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, err := Open(config.DatabaseConfig{Driver: config.DriverSQLite, Path: ":memory:"})
			require.NoError(t, err)
			defer db.Close()

			_, err = Migrate(context.Background(), db, tt.fs, "terms")
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErrText)
		})
	}
}

func TestMigrate_OrdersFiles(t *testing.T) {
	db, err := Open(config.DatabaseConfig{Driver: config.DriverSQLite, Path: ":memory:"})
	require.NoError(t, err)
	defer db.Close()

	migrations := fstest.MapFS{
		"migrations/sqlite/0010_index.up.sql":    {Data: []byte("CREATE INDEX idx_{{ .Table }}_display ON {{ .Table }} (display_term)")},
		"migrations/sqlite/0002_create.up.sql":   {Data: []byte("CREATE TABLE {{ .Table }} (term TEXT PRIMARY KEY, display_term TEXT)")},
		"migrations/sqlite/0002_create.down.sql": {Data: []byte("DROP TABLE {{ .Table }}")},
		"migrations/sqlite/README.md":            {Data: []byte("ignored")},
	}

	got, err := Migrate(context.Background(), db, migrations, "terms")
	require.NoError(t, err)
	assert.Equal(t, []string{"sqlite/terms/0002_create.up.sql", "sqlite/terms/0010_index.up.sql"}, got.Applied)
	assert.Empty(t, got.Skipped)
}

func TestMigrate_NoMigrations(t *testing.T) {
	db, err := Open(config.DatabaseConfig{Driver: config.DriverSQLite, Path: ":memory:"})
	require.NoError(t, err)
	defer db.Close()

	got, err := Migrate(context.Background(), db, fstest.MapFS{
		"migrations/sqlite/README.md":            {Data: []byte("ignored")},
	}, "terms")
	require.NoError(t, err)
	assert.Empty(t, got.Applied)
	assert.Empty(t, got.Skipped)
}
