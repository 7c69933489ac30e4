package export

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite"

	"github.com/hupe1980/steelcat/catalog"
)

// ExportError reports a failed materialization. It is returned to the
// exporter's caller only; catalog readers are never affected.
type ExportError struct {
	Op    string
	Table string
	Err   error
}

func (e *ExportError) Error() string {
	if e.Table != "" {
		return fmt.Sprintf("export: %s %s: %v", e.Op, e.Table, e.Err)
	}
	return fmt.Sprintf("export: %s: %v", e.Op, e.Err)
}

func (e *ExportError) Unwrap() error { return e.Err }

type options struct {
	logger *slog.Logger
}

// Option configures the exporter and the store.
type Option func(*options)

// WithLogger configures the logger. If nil is passed, slog.Default() is used.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger == nil {
			logger = slog.Default()
		}
		o.logger = logger
	}
}

// Exporter converts catalog record sets into relational tables in one
// on-disk SQLite database, one table per section type.
type Exporter struct {
	path   string
	logger *slog.Logger
}

// NewExporter creates an exporter writing to the SQLite file at path.
func NewExporter(path string, optFns ...Option) *Exporter {
	opts := options{logger: slog.Default()}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Exporter{path: path, logger: opts.logger}
}

// Path returns the database file path.
func (e *Exporter) Path() string { return e.path }

// Materialize writes one table per available section type. When the database
// file already exists the export is skipped entirely unless force is set, in
// which case the file is rebuilt from scratch.
//
// All tables are written inside a single transaction, so a concurrent reader
// never observes a partially-built database. Inserts are upserts keyed on
// the unique designation column; re-running on an unchanged catalog is a
// no-op for row content.
func (e *Exporter) Materialize(ctx context.Context, cat *catalog.Catalog, force bool) error {
	if _, err := os.Stat(e.path); err == nil {
		if !force {
			e.logger.Debug("export skipped, database exists", "path", e.path)
			return nil
		}
		if err := os.Remove(e.path); err != nil {
			return &ExportError{Op: "rebuild", Err: err}
		}
	}

	if dir := filepath.Dir(e.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return &ExportError{Op: "create directory", Err: err}
		}
	}

	db, err := e.open(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return &ExportError{Op: "begin", Err: err}
	}
	defer tx.Rollback()

	for _, st := range cat.AvailableTypes() {
		rows, err := rowsFromRecordSet(cat, st)
		if err != nil {
			return &ExportError{Op: "flatten", Table: st.String(), Err: err}
		}
		table := sanitizeTableName(st.String())
		if err := materializeTable(ctx, tx, table, rows); err != nil {
			return &ExportError{Op: "materialize", Table: table, Err: err}
		}
		e.logger.Debug("table materialized",
			"table", table,
			"rows", len(rows),
		)
	}

	if err := tx.Commit(); err != nil {
		return &ExportError{Op: "commit", Err: err}
	}

	e.logger.Info("catalog materialized",
		"path", e.path,
		"types", len(cat.AvailableTypes()),
	)
	return nil
}

// MaterializeRaw writes an arbitrary decoded record source into one table,
// applying the flattening heuristics (designation mapping, category mapping,
// list, single value). Unlike Materialize it always writes: upserts make the
// operation idempotent on unchanged input.
func (e *Exporter) MaterializeRaw(ctx context.Context, table string, raw any) error {
	rows, err := flattenRows(raw)
	if err != nil {
		return &ExportError{Op: "flatten", Table: table, Err: err}
	}

	db, err := e.open(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return &ExportError{Op: "begin", Err: err}
	}
	defer tx.Rollback()

	table = sanitizeTableName(table)
	if err := materializeTable(ctx, tx, table, rows); err != nil {
		return &ExportError{Op: "materialize", Table: table, Err: err}
	}

	if err := tx.Commit(); err != nil {
		return &ExportError{Op: "commit", Err: err}
	}
	return nil
}

// open opens the database and applies the session pragmas. Connections are
// opened per call and closed by the caller.
func (e *Exporter) open(ctx context.Context) (*sql.DB, error) {
	db, err := sql.Open("sqlite", e.path)
	if err != nil {
		return nil, &ExportError{Op: "open", Err: err}
	}
	db.SetMaxOpenConns(1)

	for _, pragma := range []string{
		"PRAGMA busy_timeout = 5000",
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
	} {
		if _, err := db.ExecContext(ctx, pragma); err != nil {
			db.Close()
			return nil, &ExportError{Op: "pragma", Err: err}
		}
	}
	return db, nil
}

// rowsFromRecordSet converts one type's records to rows in catalog iteration
// order. Reserved metadata keys are stripped so the data payload matches the
// record as loaded from source.
func rowsFromRecordSet(cat *catalog.Catalog, st catalog.SectionType) ([]row, error) {
	designations := cat.List(st)
	rows := make([]row, 0, len(designations))

	for _, designation := range designations {
		rec, ok := cat.Get(st, designation)
		if !ok {
			continue
		}
		clean := rec.Clean()

		data, err := clean.MarshalPlain()
		if err != nil {
			return nil, fmt.Errorf("encode data payload for %q: %w", designation, err)
		}

		rows = append(rows, row{
			designation: designation,
			values:      clean.Plain(),
			data:        data,
		})
	}

	return rows, nil
}

// materializeTable creates the table with its inferred schema and upserts all
// rows.
func materializeTable(ctx context.Context, tx *sql.Tx, table string, rows []row) error {
	if len(rows) == 0 {
		return nil
	}

	types := analyzeColumns(rows)
	cols := sortedColumns(types)

	if err := createTable(ctx, tx, table, cols, types); err != nil {
		return err
	}
	return insertRows(ctx, tx, table, cols, rows)
}

func createTable(ctx context.Context, tx *sql.Tx, table string, cols []string, types map[string]sqlType) error {
	defs := []string{"id INTEGER PRIMARY KEY AUTOINCREMENT"}
	for _, col := range cols {
		if col == "designation" {
			defs = append(defs, "designation TEXT NOT NULL")
			continue
		}
		defs = append(defs, fmt.Sprintf("%s %s", col, types[col]))
	}
	defs = append(defs,
		"data TEXT",
		"created_at TEXT DEFAULT (datetime('now'))",
	)

	createSQL := fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (%s)", table, strings.Join(defs, ", "))
	if _, err := tx.ExecContext(ctx, createSQL); err != nil {
		return fmt.Errorf("create table: %w", err)
	}

	indexSQL := fmt.Sprintf("CREATE UNIQUE INDEX IF NOT EXISTS idx_%s_designation ON %s(designation)", table, table)
	if _, err := tx.ExecContext(ctx, indexSQL); err != nil {
		return fmt.Errorf("create index: %w", err)
	}
	return nil
}

func insertRows(ctx context.Context, tx *sql.Tx, table string, cols []string, rows []row) error {
	all := append(append([]string{}, cols...), "data")
	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(all)), ", ")
	insertSQL := fmt.Sprintf("INSERT OR REPLACE INTO %s (%s) VALUES (%s)",
		table, strings.Join(all, ", "), placeholders)

	stmt, err := tx.PrepareContext(ctx, insertSQL)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, r := range rows {
		byCol := make(map[string]any, len(r.values))
		for key, value := range r.values {
			col := normalizeColumnName(key)
			if reservedColumns[col] {
				continue
			}
			byCol[col] = coerceBool(value)
		}
		byCol["designation"] = r.designation
		if r.category != "" {
			byCol["category"] = r.category
		}

		args := make([]any, 0, len(all))
		for _, col := range cols {
			args = append(args, byCol[col])
		}
		args = append(args, string(r.data))

		if _, err := stmt.ExecContext(ctx, args...); err != nil {
			return fmt.Errorf("insert %q: %w", r.designation, err)
		}
	}
	return nil
}

// coerceBool converts booleans to integers for storage, matching the
// INTEGER type inferred for boolean columns.
func coerceBool(v any) any {
	if b, ok := v.(bool); ok {
		if b {
			return int64(1)
		}
		return int64(0)
	}
	return v
}
