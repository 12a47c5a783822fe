package registry

import (
	"database/sql"
	"fmt"
	"log/slog"
	"sync"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/chkup/spec-tools/pkg/sel/ast"
)

// SQLite is a durable registry backed by SQLite, for deployments where
// the definition set must survive restarts. It satisfies Registry and
// therefore form.NameLookup, so a walker can resolve names straight
// out of the database.
//
// The database runs in WAL mode with a single writer connection;
// definitions are stored in the YAML expression surface.
type SQLite struct {
	db     *sql.DB
	dbPath string
	logger *slog.Logger

	closeOnce sync.Once

	// pre-compiled statements for the hot paths
	upsertStmt *sql.Stmt
	lookupStmt *sql.Stmt
	namesStmt  *sql.Stmt
	countStmt  *sql.Stmt
	deleteStmt *sql.Stmt
}

// SQLiteConfig configures the SQLite registry.
type SQLiteConfig struct {
	// DBPath is the path to the SQLite database file.
	DBPath string

	// BusyTimeout is how long to wait for locks before failing.
	// Default: 5 seconds
	BusyTimeout time.Duration

	// Logger for lookup diagnostics. Default: slog.Default()
	Logger *slog.Logger
}

// NewSQLite creates a SQLite registry with default settings.
func NewSQLite(dbPath string) (*SQLite, error) {
	return NewSQLiteWithConfig(SQLiteConfig{DBPath: dbPath})
}

// NewSQLiteWithConfig creates a SQLite registry with custom
// configuration.
func NewSQLiteWithConfig(cfg SQLiteConfig) (*SQLite, error) {
	if cfg.DBPath == "" {
		return nil, fmt.Errorf("db path cannot be empty")
	}
	if cfg.BusyTimeout == 0 {
		cfg.BusyTimeout = 5 * time.Second
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	// modernc.org/sqlite applies pragmas via _pragma=name(value)
	// query parameters, one per pragma.
	dsn := fmt.Sprintf("%s?_pragma=journal_mode(WAL)&_pragma=busy_timeout(%d)&_pragma=synchronous(NORMAL)",
		cfg.DBPath, int(cfg.BusyTimeout.Milliseconds()))

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite only supports a single writer
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	r := &SQLite{
		db:     db,
		dbPath: cfg.DBPath,
		logger: cfg.Logger.With("component", "registry.sqlite"),
	}

	if err := r.createSchema(); err != nil {
		db.Close()
		return nil, err
	}
	if err := r.prepareStatements(); err != nil {
		db.Close()
		return nil, err
	}

	return r, nil
}

func (r *SQLite) createSchema() error {
	const ddl = `
	CREATE TABLE IF NOT EXISTS schemas (
		namespace  TEXT NOT NULL,
		name       TEXT NOT NULL,
		definition TEXT NOT NULL,
		updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		PRIMARY KEY (namespace, name)
	);
	`
	if _, err := r.db.Exec(ddl); err != nil {
		return fmt.Errorf("failed to create schema table: %w", err)
	}
	return nil
}

func (r *SQLite) prepareStatements() error {
	var err error

	r.upsertStmt, err = r.db.Prepare(`
		INSERT INTO schemas (namespace, name, definition, updated_at)
		VALUES (?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT (namespace, name) DO UPDATE SET
			definition = excluded.definition,
			updated_at = CURRENT_TIMESTAMP
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare upsert: %w", err)
	}

	r.lookupStmt, err = r.db.Prepare(`
		SELECT definition FROM schemas WHERE namespace = ? AND name = ?
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare lookup: %w", err)
	}

	r.namesStmt, err = r.db.Prepare(`
		SELECT namespace, name FROM schemas ORDER BY namespace, name
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare names: %w", err)
	}

	r.countStmt, err = r.db.Prepare(`SELECT COUNT(*) FROM schemas`)
	if err != nil {
		return fmt.Errorf("failed to prepare count: %w", err)
	}

	r.deleteStmt, err = r.db.Prepare(`
		DELETE FROM schemas WHERE namespace = ? AND name = ?
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare delete: %w", err)
	}

	return nil
}

// Register stores a definition under name, replacing any previous one.
// The definition must be expressible in the YAML surface; handles and
// live predicates are not persistable.
func (r *SQLite) Register(name ast.QName, def ast.Node) error {
	if name.Local == "" {
		return fmt.Errorf("schema name cannot be empty")
	}

	data, err := MarshalExpr(def)
	if err != nil {
		return fmt.Errorf("schema %s: %w", name, err)
	}

	if _, err := r.upsertStmt.Exec(name.Space, name.Local, string(data)); err != nil {
		return fmt.Errorf("failed to store schema %s: %w", name, err)
	}
	return nil
}

// Lookup returns the stored definition for name. A stored definition
// that no longer decodes is logged and reported as absent rather than
// panicking a walk.
func (r *SQLite) Lookup(name ast.QName) (ast.Node, bool) {
	var definition string
	err := r.lookupStmt.QueryRow(name.Space, name.Local).Scan(&definition)
	if err == sql.ErrNoRows {
		return nil, false
	}
	if err != nil {
		r.logger.Error("schema lookup failed", "name", name.String(), "error", err)
		return nil, false
	}

	def, err := ParseExpr([]byte(definition))
	if err != nil {
		r.logger.Error("stored schema no longer decodes", "name", name.String(), "error", err)
		return nil, false
	}
	return def, true
}

// Names returns every registered name in sorted order.
func (r *SQLite) Names() []ast.QName {
	rows, err := r.namesStmt.Query()
	if err != nil {
		r.logger.Error("schema listing failed", "error", err)
		return nil
	}
	defer rows.Close()

	var names []ast.QName
	for rows.Next() {
		var space, local string
		if err := rows.Scan(&space, &local); err != nil {
			r.logger.Error("schema listing scan failed", "error", err)
			return names
		}
		names = append(names, ast.QName{Space: space, Local: local})
	}
	return names
}

// Len returns the number of registered definitions.
func (r *SQLite) Len() int {
	var count int
	if err := r.countStmt.QueryRow().Scan(&count); err != nil {
		r.logger.Error("schema count failed", "error", err)
		return 0
	}
	return count
}

// Delete removes a definition.
func (r *SQLite) Delete(name ast.QName) error {
	if _, err := r.deleteStmt.Exec(name.Space, name.Local); err != nil {
		return fmt.Errorf("failed to delete schema %s: %w", name, err)
	}
	return nil
}

// Close releases the prepared statements and the database handle.
func (r *SQLite) Close() error {
	var closeErr error
	r.closeOnce.Do(func() {
		for _, stmt := range []*sql.Stmt{r.upsertStmt, r.lookupStmt, r.namesStmt, r.countStmt, r.deleteStmt} {
			if stmt != nil {
				stmt.Close()
			}
		}
		closeErr = r.db.Close()
	})
	return closeErr
}
