package database

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"path"
	"sort"
	"strings"
	"text/template"

	"github.com/golang-migrate/migrate/v4"
	migratedb "github.com/golang-migrate/migrate/v4/database"
	migratemysql "github.com/golang-migrate/migrate/v4/database/mysql"
	migratesqlite "github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jmoiron/sqlx"
)

// MigrationResult lists the migration names applied by Migrate.
type MigrationResult struct {
	Applied []string
	Skipped []string
}

type migrationFile struct {
	version uint
	name    string
}

// Migrate applies the up migrations under migrations/<driver> in migrationFS.
// Migrations are text/templates rendered with the table name,
// and each table keeps its own version in <table>_schema_migrations.
func Migrate(ctx context.Context, db *sqlx.DB, migrationFS fs.FS, table string) (*MigrationResult, error) {
	driver := db.DriverName()
	root := path.Join("migrations", driver)
	files, err := listMigrations(migrationFS, root)
	if err != nil {
		return nil, err
	}
	result := &MigrationResult{}
	if len(files) == 0 {
		return result, nil
	}

	src, err := newTemplateSource(migrationFS, root, table, files)
	if err != nil {
		return nil, err
	}
	defer func() { _ = src.Close() }()

	instance, release, err := newMigrationDriver(ctx, db, table)
	if err != nil {
		return nil, err
	}
	defer release()

	// Migrate.Close would close db as well, so only the source and connection are released.
	m, err := migrate.NewWithInstance("iofs", src, driver, instance)
	if err != nil {
		return nil, fmt.Errorf("migrate.NewWithInstance(%s) > %w", driver, err)
	}
	m.Log = migrateLogger{logger: slog.Default()}

	before, err := currentVersion(m)
	if err != nil {
		return nil, err
	}

	stop := context.AfterFunc(ctx, func() { m.GracefulStop <- true })
	defer stop()
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return nil, fmt.Errorf("migrate.Up(%s/%s) > %w", driver, table, err)
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("migrate.Up(%s/%s) > %w", driver, table, err)
	}

	after, err := currentVersion(m)
	if err != nil {
		return nil, err
	}
	for _, f := range files {
		name := fmt.Sprintf("%s/%s/%s", driver, table, f.name)
		switch {
		case int64(f.version) <= before:
			result.Skipped = append(result.Skipped, name)
		case int64(f.version) <= after:
			result.Applied = append(result.Applied, name)
		}
	}
	return result, nil
}

// listMigrations returns the up migrations under root ordered by version.
func listMigrations(migrationFS fs.FS, root string) ([]migrationFile, error) {
	entries, err := fs.ReadDir(migrationFS, root)
	if err != nil {
		return nil, fmt.Errorf("fs.ReadDir(%s) > %w", root, err)
	}

	var files []migrationFile
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		m, err := source.DefaultParse(entry.Name())
		if err != nil || m.Direction != source.Up {
			continue
		}
		files = append(files, migrationFile{version: m.Version, name: entry.Name()})
	}
	sort.Slice(files, func(i, j int) bool {
		return files[i].version < files[j].version
	})
	return files, nil
}

// currentVersion is the applied version, or -1 before the first migration.
func currentVersion(m *migrate.Migrate) (int64, error) {
	version, _, err := m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return -1, nil
	}
	if err != nil {
		return 0, fmt.Errorf("migrate.Version() > %w", err)
	}
	return int64(version), nil
}

func newMigrationDriver(ctx context.Context, db *sqlx.DB, table string) (migratedb.Driver, func(), error) {
	migrationsTable := table + "_schema_migrations"
	switch db.DriverName() {
	case "sqlite":
		instance, err := migratesqlite.WithInstance(db.DB, &migratesqlite.Config{MigrationsTable: migrationsTable})
		if err != nil {
			return nil, nil, fmt.Errorf("sqlite.WithInstance() > %w", err)
		}
		return instance, func() {}, nil
	case "mysql":
		conn, err := db.Conn(ctx)
		if err != nil {
			return nil, nil, fmt.Errorf("db.Conn() > %w", err)
		}
		instance, err := migratemysql.WithConnection(ctx, conn, &migratemysql.Config{MigrationsTable: migrationsTable})
		if err != nil {
			_ = conn.Close()
			return nil, nil, fmt.Errorf("mysql.WithConnection() > %w", err)
		}
		return instance, func() { _ = conn.Close() }, nil
	default:
		return nil, nil, fmt.Errorf("unsupported migration driver: %s", db.DriverName())
	}
}

// templateSource reads migrations from an fs.FS and renders {{ .Table }} in each up migration.
type templateSource struct {
	iofs.PartialDriver
	table string
	names map[uint]string
}

func newTemplateSource(migrationFS fs.FS, root, table string, files []migrationFile) (*templateSource, error) {
	s := &templateSource{
		table: table,
		names: make(map[uint]string, len(files)),
	}
	for _, f := range files {
		s.names[f.version] = f.name
	}
	if err := s.Init(migrationFS, root); err != nil {
		return nil, fmt.Errorf("iofs.Init(%s) > %w", root, err)
	}
	return s, nil
}

func (s *templateSource) Open(url string) (source.Driver, error) {
	return nil, fmt.Errorf("templateSource cannot be opened from %s", url)
}

func (s *templateSource) ReadUp(version uint) (io.ReadCloser, string, error) {
	r, identifier, err := s.PartialDriver.ReadUp(version)
	if err != nil {
		return nil, "", err
	}
	defer func() { _ = r.Close() }()

	content, err := io.ReadAll(r)
	if err != nil {
		return nil, "", fmt.Errorf("read migration %s > %w", s.names[version], err)
	}
	query, err := renderMigration(s.names[version], string(content), s.table)
	if err != nil {
		return nil, "", err
	}
	return io.NopCloser(strings.NewReader(query)), identifier, nil
}

func renderMigration(name, content, table string) (string, error) {
	tmpl, err := template.New(name).Option("missingkey=error").Parse(content)
	if err != nil {
		return "", fmt.Errorf("parse migration %s > %w", name, err)
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, struct{ Table string }{Table: table}); err != nil {
		return "", fmt.Errorf("render migration %s > %w", name, err)
	}
	return buf.String(), nil
}

// migrateLogger forwards golang-migrate progress to slog at debug level.
type migrateLogger struct {
	logger *slog.Logger
}

func (l migrateLogger) Printf(format string, v ...any) {
	l.logger.Debug(strings.TrimSpace(fmt.Sprintf(format, v...)), "component", "migrate")
}

func (l migrateLogger) Verbose() bool {
	return l.logger.Enabled(context.Background(), slog.LevelDebug)
}
