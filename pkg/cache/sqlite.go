package cache

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	_ "modernc.org/sqlite" // SQLite driver
)

// SQLiteStore provides durable region storage backed by a single SQLite
// database file. All persistent regions of a cache share one store.
//
// The store uses a write-ahead log for better concurrent read
// performance and a single writer connection, which is all SQLite
// supports.
type SQLiteStore struct {
	db        *sql.DB
	dbPath    string
	closeOnce sync.Once

	getStmt    *sql.Stmt
	putStmt    *sql.Stmt
	deleteStmt *sql.Stmt
	keysStmt   *sql.Stmt
	sizeStmt   *sql.Stmt
}

// SQLiteStoreConfig configures the SQLite store.
type SQLiteStoreConfig struct {
	// DBPath is the path to the SQLite database file.
	DBPath string

	// BusyTimeout is how long to wait for locks before failing.
	// Default: 5 seconds.
	BusyTimeout time.Duration
}

// OpenSQLiteStore opens (creating if necessary) the SQLite store at the
// given path with default settings.
func OpenSQLiteStore(dbPath string) (*SQLiteStore, error) {
	return OpenSQLiteStoreWithConfig(SQLiteStoreConfig{DBPath: dbPath})
}

// OpenSQLiteStoreWithConfig opens a SQLite store with custom configuration.
func OpenSQLiteStoreWithConfig(cfg SQLiteStoreConfig) (*SQLiteStore, error) {
	if cfg.DBPath == "" {
		return nil, fmt.Errorf("db path cannot be empty")
	}
	if cfg.BusyTimeout == 0 {
		cfg.BusyTimeout = 5 * time.Second
	}

	dsn := fmt.Sprintf("%s?_journal_mode=WAL&_busy_timeout=%d&_synchronous=NORMAL",
		cfg.DBPath, int(cfg.BusyTimeout.Milliseconds()))

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite only supports a single writer.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	store := &SQLiteStore{
		db:     db,
		dbPath: cfg.DBPath,
	}

	if err := store.initSchema(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	if err := store.prepareStatements(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to prepare statements: %w", err)
	}

	return store, nil
}

// initSchema creates the entries table if it doesn't exist.
func (s *SQLiteStore) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS entries (
		region TEXT NOT NULL,
		key TEXT NOT NULL,
		value BLOB,
		updated_at INTEGER NOT NULL,
		PRIMARY KEY (region, key)
	);
	CREATE INDEX IF NOT EXISTS idx_entries_region ON entries(region);
	`

	if _, err := s.db.Exec(schema); err != nil {
		return err
	}
	return nil
}

// prepareStatements pre-compiles the statements used by regions.
func (s *SQLiteStore) prepareStatements() error {
	var err error

	if s.getStmt, err = s.db.Prepare(
		`SELECT value FROM entries WHERE region = ? AND key = ?`); err != nil {
		return err
	}
	if s.putStmt, err = s.db.Prepare(
		`INSERT INTO entries (region, key, value, updated_at) VALUES (?, ?, ?, ?)
		 ON CONFLICT(region, key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`); err != nil {
		return err
	}
	if s.deleteStmt, err = s.db.Prepare(
		`DELETE FROM entries WHERE region = ? AND key = ?`); err != nil {
		return err
	}
	if s.keysStmt, err = s.db.Prepare(
		`SELECT key FROM entries WHERE region = ? ORDER BY key`); err != nil {
		return err
	}
	if s.sizeStmt, err = s.db.Prepare(
		`SELECT COUNT(*) FROM entries WHERE region = ?`); err != nil {
		return err
	}

	return nil
}

// Region returns a durable region stored in this database.
func (s *SQLiteStore) Region(name string) Region {
	return &sqliteRegion{name: name, store: s}
}

// Close closes the prepared statements and the database.
func (s *SQLiteStore) Close() error {
	var err error
	s.closeOnce.Do(func() {
		for _, stmt := range []*sql.Stmt{s.getStmt, s.putStmt, s.deleteStmt, s.keysStmt, s.sizeStmt} {
			if stmt != nil {
				_ = stmt.Close()
			}
		}
		err = s.db.Close()
	})
	return err
}

// sqliteRegion is a Region persisted in a SQLiteStore.
type sqliteRegion struct {
	name  string
	store *SQLiteStore
}

func (r *sqliteRegion) Name() string {
	return r.name
}

func (r *sqliteRegion) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var value []byte
	err := r.store.getStmt.QueryRowContext(ctx, r.name, key).Scan(&value)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to get entry: %w", err)
	}
	return value, true, nil
}

func (r *sqliteRegion) Put(ctx context.Context, key string, value []byte) error {
	if _, err := r.store.putStmt.ExecContext(ctx, r.name, key, value, time.Now().Unix()); err != nil {
		return fmt.Errorf("failed to put entry: %w", err)
	}
	return nil
}

func (r *sqliteRegion) Remove(ctx context.Context, key string) error {
	if _, err := r.store.deleteStmt.ExecContext(ctx, r.name, key); err != nil {
		return fmt.Errorf("failed to remove entry: %w", err)
	}
	return nil
}

func (r *sqliteRegion) Keys(ctx context.Context) ([]string, error) {
	rows, err := r.store.keysStmt.QueryContext(ctx, r.name)
	if err != nil {
		return nil, fmt.Errorf("failed to list keys: %w", err)
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, fmt.Errorf("failed to scan key: %w", err)
		}
		keys = append(keys, key)
	}
	return keys, rows.Err()
}

func (r *sqliteRegion) Size(ctx context.Context) (int, error) {
	var count int
	if err := r.store.sizeStmt.QueryRowContext(ctx, r.name).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count entries: %w", err)
	}
	return count, nil
}

// Close is a no-op; the lifetime of the backing database belongs to the
// store.
func (r *sqliteRegion) Close() error {
	return nil
}
