package export

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"

	_ "modernc.org/sqlite"

	"github.com/hupe1980/steelcat/property"
)

// StoredSection is one row read back from the persisted store.
type StoredSection struct {
	// Designation is the row's natural key.
	Designation string

	// Columns holds the surfaced scalar columns, including the synthetic
	// id and created_at.
	Columns map[string]any

	// Record is the original record deserialized from the opaque data
	// payload column.
	Record property.Record
}

// Store reads section data directly from a materialized SQLite database,
// bypassing the in-memory catalog. Each call opens and closes its own
// connection.
type Store struct {
	path   string
	logger *slog.Logger
}

// OpenStore creates a store over the SQLite file at path. The file is not
// touched until the first query.
func OpenStore(path string, optFns ...Option) *Store {
	opts := options{logger: slog.Default()}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Store{path: path, logger: opts.logger}
}

// GetSection retrieves one row by designation. ok is false when the table
// has no such designation.
func (s *Store) GetSection(ctx context.Context, table, designation string) (sec *StoredSection, ok bool, err error) {
	db, err := s.open()
	if err != nil {
		return nil, false, err
	}
	defer db.Close()

	query := fmt.Sprintf("SELECT * FROM %s WHERE designation = ? LIMIT 1", sanitizeTableName(table))
	rows, err := db.QueryContext(ctx, query, designation)
	if err != nil {
		return nil, false, fmt.Errorf("store: get %s/%s: %w", table, designation, err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, false, fmt.Errorf("store: get %s/%s: %w", table, designation, err)
		}
		return nil, false, nil
	}

	raw, err := scanRow(rows)
	if err != nil {
		return nil, false, fmt.Errorf("store: get %s/%s: %w", table, designation, err)
	}

	sec, err = sectionFromRow(raw)
	if err != nil {
		return nil, false, fmt.Errorf("store: get %s/%s: %w", table, designation, err)
	}
	return sec, true, nil
}

// SearchSections returns the rows matching all criteria. Criteria are simple
// column = value equality only — deliberately narrower than the in-memory
// engine's comparison operators. Column names are normalized the same way
// the exporter normalized them.
func (s *Store) SearchSections(ctx context.Context, table string, criteria map[string]any) ([]*StoredSection, error) {
	if len(criteria) == 0 {
		return nil, nil
	}

	db, err := s.open()
	if err != nil {
		return nil, err
	}
	defer db.Close()

	conditions := make([]string, 0, len(criteria))
	args := make([]any, 0, len(criteria))
	for _, key := range sortedKeys(criteria) {
		conditions = append(conditions, fmt.Sprintf("%s = ?", normalizeColumnName(key)))
		args = append(args, coerceBool(criteria[key]))
	}

	query := fmt.Sprintf("SELECT * FROM %s WHERE %s ORDER BY id",
		sanitizeTableName(table), strings.Join(conditions, " AND "))

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("store: search %s: %w", table, err)
	}
	defer rows.Close()

	var out []*StoredSection
	for rows.Next() {
		raw, err := scanRow(rows)
		if err != nil {
			return nil, fmt.Errorf("store: search %s: %w", table, err)
		}
		sec, err := sectionFromRow(raw)
		if err != nil {
			return nil, fmt.Errorf("store: search %s: %w", table, err)
		}
		out = append(out, sec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("store: search %s: %w", table, err)
	}
	return out, nil
}

// ListTables lists all tables in the store.
func (s *Store) ListTables(ctx context.Context) ([]string, error) {
	db, err := s.open()
	if err != nil {
		return nil, err
	}
	defer db.Close()

	rows, err := db.QueryContext(ctx, "SELECT name FROM sqlite_master WHERE type='table' AND name NOT LIKE 'sqlite_%' ORDER BY name")
	if err != nil {
		return nil, fmt.Errorf("store: list tables: %w", err)
	}
	defer rows.Close()

	var tables []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("store: list tables: %w", err)
		}
		tables = append(tables, name)
	}
	return tables, rows.Err()
}

func (s *Store) open() (*sql.DB, error) {
	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return nil, fmt.Errorf("store: open %s: %w", s.path, err)
	}
	db.SetMaxOpenConns(1)
	return db, nil
}

// scanRow reads the current row into a column name -> value map.
func scanRow(rows *sql.Rows) (map[string]any, error) {
	cols, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	values := make([]any, len(cols))
	ptrs := make([]any, len(cols))
	for i := range values {
		ptrs[i] = &values[i]
	}
	if err := rows.Scan(ptrs...); err != nil {
		return nil, err
	}

	out := make(map[string]any, len(cols))
	for i, col := range cols {
		if b, ok := values[i].([]byte); ok {
			out[col] = string(b)
		} else {
			out[col] = values[i]
		}
	}
	return out, nil
}

func sectionFromRow(raw map[string]any) (*StoredSection, error) {
	sec := &StoredSection{Columns: raw}

	if d, ok := raw["designation"].(string); ok {
		sec.Designation = d
	}

	data, ok := raw["data"].(string)
	if !ok || data == "" {
		return sec, nil
	}
	rec, err := property.RecordFromJSON([]byte(data))
	if err != nil {
		return nil, fmt.Errorf("decode data payload: %w", err)
	}
	sec.Record = rec
	return sec, nil
}
