package persistence

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"strings"

	_ "github.com/mattn/go-sqlite3"
	_ "modernc.org/sqlite"
)

const (
	// DriverCGo selects github.com/mattn/go-sqlite3
	DriverCGo = "sqlite3"
	// DriverPureGo selects modernc.org/sqlite
	DriverPureGo = "sqlite"

	busyTimeoutMillis = 5000
)

// IsValidDriver checks if the driver name is one the store can open
func IsValidDriver(driver string) bool {
	return driver == DriverCGo || driver == DriverPureGo
}

// NewSQLiteDB opens a SQLite database and creates the notebook tables
func NewSQLiteDB(ctx context.Context, driver, dbPath string) (*sql.DB, error) {
	if !IsValidDriver(driver) {
		return nil, fmt.Errorf("unsupported sqlite driver %q", driver)
	}

	db, err := sql.Open(driver, dataSourceName(driver, dbPath))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Every connection to :memory: gets its own database.
	if isMemory(dbPath) {
		db.SetMaxOpenConns(1)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := createTables(ctx, db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return db, nil
}

func isMemory(dbPath string) bool {
	return dbPath == ":memory:" || strings.Contains(dbPath, "mode=memory")
}

// dataSourceName adds busy timeout and WAL settings in the syntax each driver expects
func dataSourceName(driver, dbPath string) string {
	if isMemory(dbPath) {
		return dbPath
	}

	params := url.Values{}
	switch driver {
	case DriverCGo:
		params.Set("_busy_timeout", fmt.Sprint(busyTimeoutMillis))
		params.Set("_journal_mode", "WAL")
	case DriverPureGo:
		params.Add("_pragma", fmt.Sprintf("busy_timeout(%d)", busyTimeoutMillis))
		params.Add("_pragma", "journal_mode(WAL)")
	}

	sep := "?"
	if strings.Contains(dbPath, "?") {
		sep = "&"
	}
	return dbPath + sep + params.Encode()
}

// createTables runs the whole schema in one transaction so a failure leaves no partial store
func createTables(ctx context.Context, db *sql.DB) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	// Pairs table
	pairsTable := `
	CREATE TABLE IF NOT EXISTS pairs (
		idx INTEGER PRIMARY KEY CHECK (idx >= 0),
		english TEXT NOT NULL,
		spanish TEXT NOT NULL
	);`

	if _, err := tx.ExecContext(ctx, pairsTable); err != nil {
		return fmt.Errorf("failed to create pairs table: %w", err)
	}

	// Meta table, one row per key
	metaTable := `
	CREATE TABLE IF NOT EXISTS meta (
		meta_key TEXT PRIMARY KEY,
		meta_value INTEGER NOT NULL
	);`

	if _, err := tx.ExecContext(ctx, metaTable); err != nil {
		return fmt.Errorf("failed to create meta table: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit schema: %w", err)
	}

	return nil
}
