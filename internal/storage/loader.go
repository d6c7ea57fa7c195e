// Package storage owns the connection to the analytical store and the
// write-mode semantics applied when record batches land in it. Tables
// live under a raw namespace: a real schema on postgres, a table-name
// prefix on sqlite.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"
	_ "github.com/doug-martin/goqu/v9/dialect/sqlite3"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"

	"github.com/mmrzaf/earthgen/internal/domain"
)

type Kind string

const (
	KindSQLite   Kind = "sqlite"
	KindPostgres Kind = "postgres"
)

const DefaultSchema = "raw"

type Config struct {
	Kind   Kind
	DSN    string
	Schema string
}

// Loader exposes generic table operations over the store. Writes to one
// table are serialized by a per-table lock so a truncate-then-insert is
// never interleaved with another writer; writes to different tables may
// proceed concurrently.
type Loader struct {
	db      *sqlx.DB
	kind    Kind
	schema  string
	dialect goqu.DialectWrapper
	logger  *zap.Logger

	mu         sync.Mutex
	tableLocks map[string]*sync.Mutex
}

func Open(cfg Config, logger *zap.Logger) (*Loader, error) {
	var driver string
	switch cfg.Kind {
	case KindSQLite:
		driver = "sqlite3"
	case KindPostgres:
		driver = "postgres"
	default:
		return nil, fmt.Errorf("unsupported store kind: %q", cfg.Kind)
	}

	db, err := sqlx.Connect(driver, cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("%w: connect %s: %v", domain.ErrStorageUnavailable, cfg.Kind, err)
	}

	l := newLoader(db, cfg.Kind, cfg.Schema, logger)

	if cfg.Kind == KindPostgres {
		if _, err := db.Exec(fmt.Sprintf("CREATE SCHEMA IF NOT EXISTS %s", l.schema)); err != nil {
			db.Close()
			return nil, fmt.Errorf("%w: create schema %s: %v", domain.ErrStorageUnavailable, l.schema, err)
		}
	}
	return l, nil
}

// NewWithDB wraps an existing connection; used by tests with a mock
// driver.
func NewWithDB(db *sqlx.DB, kind Kind, schema string, logger *zap.Logger) *Loader {
	return newLoader(db, kind, schema, logger)
}

func newLoader(db *sqlx.DB, kind Kind, schema string, logger *zap.Logger) *Loader {
	if schema == "" {
		schema = DefaultSchema
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	dialectName := "sqlite3"
	if kind == KindPostgres {
		dialectName = "postgres"
	}
	return &Loader{
		db:         db,
		kind:       kind,
		schema:     schema,
		dialect:    goqu.Dialect(dialectName),
		logger:     logger,
		tableLocks: make(map[string]*sync.Mutex),
	}
}

func (l *Loader) Close() error {
	return l.db.Close()
}

// QualifiedTable returns the table reference as it appears in SQL.
func (l *Loader) QualifiedTable(table string) string {
	if l.kind == KindPostgres {
		return l.schema + "." + table
	}
	return l.schema + "_" + table
}

func (l *Loader) tableExpression(table string) interface{} {
	if l.kind == KindPostgres {
		return goqu.S(l.schema).Table(table)
	}
	return goqu.T(l.QualifiedTable(table))
}

func (l *Loader) tableLock(table string) *sync.Mutex {
	l.mu.Lock()
	defer l.mu.Unlock()
	lock, ok := l.tableLocks[table]
	if !ok {
		lock = &sync.Mutex{}
		l.tableLocks[table] = lock
	}
	return lock
}

func (l *Loader) columnType(t domain.FieldType) string {
	if l.kind == KindPostgres {
		switch t {
		case domain.FieldTypeInt:
			return "INTEGER"
		case domain.FieldTypeBigInt:
			return "BIGINT"
		case domain.FieldTypeFloat:
			return "DOUBLE PRECISION"
		case domain.FieldTypeBool:
			return "BOOLEAN"
		case domain.FieldTypeDate:
			return "DATE"
		case domain.FieldTypeTimestamp:
			return "TIMESTAMPTZ"
		default:
			return "TEXT"
		}
	}
	switch t {
	case domain.FieldTypeInt, domain.FieldTypeBigInt, domain.FieldTypeBool:
		return "INTEGER"
	case domain.FieldTypeFloat:
		return "REAL"
	default:
		return "TEXT"
	}
}

// EnsureTable creates the target table matching the entity schema if it
// does not exist yet.
func (l *Loader) EnsureTable(ctx context.Context, table string, schema []domain.Field) error {
	existing, err := l.TableColumns(ctx, table)
	if err != nil {
		return err
	}
	if existing != nil {
		return nil
	}

	defs := make([]string, len(schema))
	for i, f := range schema {
		defs[i] = fmt.Sprintf("%s %s NOT NULL", f.Name, l.columnType(f.Type))
	}
	createSQL := fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (%s)",
		l.QualifiedTable(table), strings.Join(defs, ", "))

	if _, err := l.db.ExecContext(ctx, createSQL); err != nil {
		return fmt.Errorf("%w: create table %s: %v", domain.ErrStorageUnavailable, table, err)
	}
	l.logger.Debug("ensured table", zap.String("table", l.QualifiedTable(table)))
	return nil
}

// TableColumns returns the live column names, or nil when the table
// does not exist.
func (l *Loader) TableColumns(ctx context.Context, table string) ([]string, error) {
	var query string
	var args []interface{}
	if l.kind == KindPostgres {
		query = `SELECT column_name FROM information_schema.columns WHERE table_schema = $1 AND table_name = $2 ORDER BY ordinal_position`
		args = []interface{}{l.schema, table}
	} else {
		query = fmt.Sprintf("PRAGMA table_info(%s)", l.QualifiedTable(table))
	}

	rows, err := l.db.QueryxContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("inspect table %s: %w", table, err)
	}
	defer rows.Close()

	var cols []string
	for rows.Next() {
		if l.kind == KindPostgres {
			var name string
			if err := rows.Scan(&name); err != nil {
				return nil, err
			}
			cols = append(cols, name)
		} else {
			m := map[string]interface{}{}
			if err := rows.MapScan(m); err != nil {
				return nil, err
			}
			if name, ok := m["name"].(string); ok {
				cols = append(cols, name)
			} else if b, ok := m["name"].([]byte); ok {
				cols = append(cols, string(b))
			}
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(cols) == 0 {
		return nil, nil
	}
	return cols, nil
}

// checkSchema rejects a batch whose field set disagrees with the live
// table; drift is never coerced.
func checkSchema(table string, existing, batch []string) error {
	if existing == nil {
		return nil
	}
	a := append([]string(nil), existing...)
	b := append([]string(nil), batch...)
	sort.Strings(a)
	sort.Strings(b)
	if len(a) != len(b) {
		return fmt.Errorf("%w: table %s has %d columns, batch has %d", domain.ErrSchemaMismatch, table, len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			return fmt.Errorf("%w: table %s column %q vs batch column %q", domain.ErrSchemaMismatch, table, a[i], b[i])
		}
	}
	return nil
}

// Write persists a batch with the given mode. Truncate mode replaces the
// table contents and the batch inside one transaction: on failure the
// table keeps its prior contents. Append mode strictly adds rows.
func (l *Loader) Write(ctx context.Context, table string, batch *domain.Batch, mode domain.WriteMode) error {
	lock := l.tableLock(table)
	lock.Lock()
	defer lock.Unlock()

	existing, err := l.TableColumns(ctx, table)
	if err != nil {
		return err
	}
	if err := checkSchema(table, existing, batch.Columns); err != nil {
		return err
	}

	err = l.writeTx(ctx, table, batch, mode)
	if err != nil && isTransient(err) {
		l.logger.Warn("transient storage error, retrying once",
			zap.String("table", table), zap.Error(err))
		if err = l.writeTx(ctx, table, batch, mode); err != nil {
			return fmt.Errorf("%w: write %s after retry: %v", domain.ErrStorageUnavailable, table, err)
		}
		return nil
	}
	if err != nil {
		return fmt.Errorf("write %s: %w", table, err)
	}
	return nil
}

func (l *Loader) writeTx(ctx context.Context, table string, batch *domain.Batch, mode domain.WriteMode) error {
	tx, err := l.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if mode == domain.WriteModeTruncate {
		if _, err := tx.ExecContext(ctx, fmt.Sprintf("DELETE FROM %s", l.QualifiedTable(table))); err != nil {
			return err
		}
	}

	if batch.Len() > 0 {
		insertSQL, args, err := l.buildInsert(table, batch)
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, insertSQL, args...); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (l *Loader) buildInsert(table string, batch *domain.Batch) (string, []interface{}, error) {
	cols := make([]interface{}, len(batch.Columns))
	for i, c := range batch.Columns {
		cols[i] = c
	}
	rows := make([][]interface{}, len(batch.Rows))
	for i, row := range batch.Rows {
		vals := make([]interface{}, len(row))
		for j, v := range row {
			vals[j] = l.bindValue(v)
		}
		rows[i] = vals
	}

	ds := l.dialect.Insert(l.tableExpression(table)).Cols(cols...).Vals(rows...)
	return ds.Prepared(true).ToSQL()
}

// bindValue normalizes Go values for the sqlite driver the way the
// store expects them; postgres drivers take them as-is.
func (l *Loader) bindValue(v interface{}) interface{} {
	if l.kind == KindPostgres {
		return v
	}
	switch t := v.(type) {
	case time.Time:
		return t.UTC().Format(time.RFC3339)
	case bool:
		if t {
			return int64(1)
		}
		return int64(0)
	default:
		return v
	}
}

// Read executes a query and returns the rows as ordered column maps.
func (l *Loader) Read(ctx context.Context, query string, args ...interface{}) ([]map[string]interface{}, error) {
	rows, err := l.db.QueryxContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("read: %w", err)
	}
	defer rows.Close()

	var out []map[string]interface{}
	for rows.Next() {
		m := map[string]interface{}{}
		if err := rows.MapScan(m); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

// Count returns the row count of a raw table.
func (l *Loader) Count(ctx context.Context, table string) (int64, error) {
	var count int64
	query := fmt.Sprintf("SELECT COUNT(*) FROM %s", l.QualifiedTable(table))
	if err := l.db.QueryRowxContext(ctx, query).Scan(&count); err != nil {
		return 0, fmt.Errorf("count %s: %w", table, err)
	}
	return count, nil
}

// isTransient classifies storage errors worth one retry: lock
// contention and dropped connections, never constraint or syntax
// failures.
func isTransient(err error) bool {
	if err == nil {
		return false
	}
	if err == sql.ErrConnDone {
		return true
	}
	msg := strings.ToLower(err.Error())
	for _, marker := range []string{
		"database is locked",
		"database table is locked",
		"busy",
		"deadlock",
		"serialization",
		"connection reset",
		"connection refused",
		"broken pipe",
	} {
		if strings.Contains(msg, marker) {
			return true
		}
	}
	return false
}
