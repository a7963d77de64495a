package dictionary

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// ErrStoreUnavailable wraps every failure to reach, read or write the store.
var ErrStoreUnavailable = errors.New("store unavailable")

// DefaultTable is the table used when no table name is configured.
const DefaultTable = "terms"

//go:generate mockgen -source=repository.go -destination=../mocks/dictionary/mock_repository.go -package=mock_dictionary

// Repository defines operations for managing dictionary entries.
type Repository interface {
	// FindAll returns all entries in no particular order.
	FindAll(ctx context.Context) ([]Entry, error)
	// FindByTerm returns the entry for a term key, or nil if not found.
	FindByTerm(ctx context.Context, term string) (*Entry, error)
	// Upsert inserts or replaces an entry.
	Upsert(ctx context.Context, entry *Entry) error
	// Delete removes an entry. Deleting a missing term is not an error.
	Delete(ctx context.Context, term string) error
}

// DBRepository implements Repository on MySQL or SQLite.
type DBRepository struct {
	db    *sqlx.DB
	table string
}

// NewDBRepository creates a new DBRepository for the given table.
// The table name must already be validated as an SQL identifier.
func NewDBRepository(db *sqlx.DB, table string) *DBRepository {
	if table == "" {
		table = DefaultTable
	}
	return &DBRepository{db: db, table: table}
}

// FindAll returns all entries.
func (r *DBRepository) FindAll(ctx context.Context) ([]Entry, error) {
	var entries []Entry
	query := fmt.Sprintf("SELECT term, display_term, definition FROM %s", r.table)
	if err := r.db.SelectContext(ctx, &entries, query); err != nil {
		return nil, fmt.Errorf("%w: db.SelectContext(%s) > %w", ErrStoreUnavailable, r.table, err)
	}
	return entries, nil
}

// FindByTerm returns an entry by term key, or nil if not found.
func (r *DBRepository) FindByTerm(ctx context.Context, term string) (*Entry, error) {
	var entry Entry
	query := fmt.Sprintf("SELECT term, display_term, definition FROM %s WHERE term = ?", r.table)
	err := r.db.GetContext(ctx, &entry, query, term)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: db.GetContext(%s) > %w", ErrStoreUnavailable, r.table, err)
	}
	return &entry, nil
}

// Upsert inserts or updates an entry.
func (r *DBRepository) Upsert(ctx context.Context, entry *Entry) error {
	var query string
	switch r.db.DriverName() {
	case "sqlite":
		query = fmt.Sprintf(`INSERT INTO %s (term, display_term, definition)
		VALUES (?, ?, ?)
		ON CONFLICT(term) DO UPDATE SET display_term = excluded.display_term, definition = excluded.definition, updated_at = CURRENT_TIMESTAMP`, r.table)
	default:
		query = fmt.Sprintf(`INSERT INTO %s (term, display_term, definition)
		VALUES (?, ?, ?)
		ON DUPLICATE KEY UPDATE display_term = VALUES(display_term), definition = VALUES(definition)`, r.table)
	}

	if _, err := r.db.ExecContext(ctx, query, entry.Term, entry.DisplayTerm, entry.Definition); err != nil {
		return fmt.Errorf("%w: db.ExecContext(upsert %s) > %w", ErrStoreUnavailable, r.table, err)
	}
	return nil
}

// Delete deletes an entry by term key.
func (r *DBRepository) Delete(ctx context.Context, term string) error {
	query := fmt.Sprintf("DELETE FROM %s WHERE term = ?", r.table)
	if _, err := r.db.ExecContext(ctx, query, term); err != nil {
		return fmt.Errorf("%w: db.ExecContext(delete %s) > %w", ErrStoreUnavailable, r.table, err)
	}
	return nil
}
