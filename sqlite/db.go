package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"maps"

	sqlite3 "github.com/mattn/go-sqlite3"
	"golang.org/x/exp/slices"
)

type DB struct {
	funcs map[string]any
	*sql.DB
}

// PureFunc marks F as deterministic, which allows it in indexes and generated columns.
// Plain funcs are registered as non-deterministic.
type PureFunc struct{ F any }

var driverIndex = 0
var defaultFuncs = map[string]any{
	"css_count": PureFunc{cssCount},
	"css_first": PureFunc{cssFirst},
	"css_all":   PureFunc{cssAll},
}

// New opens the database name, registers the default funcs plus fs on every
// connection and applies the migrations that have not been applied yet.
func New(name string, migrations []string, fs map[string]any) (*DB, error) {
	d := &DB{funcs: map[string]any{}}
	maps.Copy(d.funcs, defaultFuncs)
	maps.Copy(d.funcs, fs)
	driver := fmt.Sprintf("sqlite3-qualifier-%d", driverIndex)
	driverIndex++
	sql.Register(driver, &sqlite3.SQLiteDriver{ConnectHook: d.connectHook})
	db, err := sql.Open(driver, name)
	if err != nil {
		return nil, fmt.Errorf("failed to open: %w", err)
	}
	d.DB = db
	if err := d.migrate(migrations); err != nil {
		db.Close()
		return nil, err
	}
	return d, nil
}

func (db *DB) connectHook(c *sqlite3.SQLiteConn) error {
	for name, f := range db.funcs {
		v, isPure := f.(PureFunc)
		if isPure {
			f = v.F
		}
		if err := c.RegisterFunc(name, f, isPure); err != nil {
			return fmt.Errorf("failed to register %q: %w", name, err)
		}
	}
	return nil
}

func (db *DB) migrate(migrations []string) error {
	tx, err := db.BeginTx(context.Background(), nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()
	if _, err = tx.Exec(`CREATE TABLE IF NOT EXISTS _migrations (sql TEXT)`); err != nil {
		return fmt.Errorf("failed to create _migrations table: %w", err)
	}
	applied, err := appliedMigrations(tx)
	if err != nil {
		return fmt.Errorf("failed to query _migrations: %w", err)
	}
	if len(migrations) < len(applied) || !slices.Equal(migrations[:len(applied)], applied) {
		return fmt.Errorf("applied migrations diverge from migrations: %d applied, %d given", len(applied), len(migrations))
	}
	for _, stmt := range migrations[len(applied):] {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("failed to apply migration %q: %w", stmt, err)
		}
		if _, err := tx.Exec("INSERT INTO _migrations (sql) VALUES (?)", stmt); err != nil {
			return fmt.Errorf("failed to record migration %q: %w", stmt, err)
		}
	}
	return tx.Commit()
}

func appliedMigrations(tx *sql.Tx) ([]string, error) {
	rows, err := tx.Query("SELECT sql FROM _migrations ORDER BY rowid")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	applied := []string{}
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, err
		}
		applied = append(applied, s)
	}
	return applied, rows.Err()
}
