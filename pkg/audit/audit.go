// Package audit records every dispatched REPL input in a SQLite database.
//
// The audit trail is best-effort: recording failures are logged and never
// surface to the dispatch loop. It is separate from the calculation
// history, which has its own CSV contract.
package audit

import (
	"database/sql"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS commands (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	session     TEXT NOT NULL,
	input       TEXT NOT NULL,
	started_at  TIMESTAMP NOT NULL,
	duration_ms INTEGER NOT NULL,
	ok          INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_commands_session ON commands(session);
`

// Record is one dispatched command.
type Record struct {
	ID       int64
	Session  string
	Input    string
	Started  time.Time
	Duration time.Duration
	OK       bool
}

// Log writes and queries the audit database. One session id is generated
// per process.
type Log struct {
	db      *sql.DB
	session string
	logger  *slog.Logger
}

// Open opens (creating if necessary) the audit database at path.
func Open(path string, logger *slog.Logger) (*Log, error) {
	if logger == nil {
		logger = slog.Default()
	}

	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, errors.Wrapf(err, "failed to create audit directory %s", dir)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open audit database")
	}

	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, errors.Wrap(err, "failed to initialize audit schema")
	}

	return &Log{
		db:      db,
		session: uuid.NewString(),
		logger:  logger,
	}, nil
}

// Session returns this process's session id.
func (l *Log) Session() string {
	return l.session
}

// Record stores one dispatched input. Failures are logged, not returned;
// the dispatch loop never depends on the audit trail.
func (l *Log) Record(input string, started time.Time, duration time.Duration, ok bool) {
	_, err := l.db.Exec(
		`INSERT INTO commands (session, input, started_at, duration_ms, ok) VALUES (?, ?, ?, ?, ?)`,
		l.session, input, started.UTC(), duration.Milliseconds(), boolToInt(ok),
	)
	if err != nil {
		l.logger.Error("failed to record audit entry", "input", input, "error", err)
	}
}

// Recent returns the most recent records, newest first.
func (l *Log) Recent(limit int) ([]Record, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := l.db.Query(
		`SELECT id, session, input, started_at, duration_ms, ok
		 FROM commands ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, errors.Wrap(err, "failed to query audit log")
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var r Record
		var durationMS int64
		var ok int
		if err := rows.Scan(&r.ID, &r.Session, &r.Input, &r.Started, &durationMS, &ok); err != nil {
			return nil, errors.Wrap(err, "failed to scan audit row")
		}
		r.Duration = time.Duration(durationMS) * time.Millisecond
		r.OK = ok != 0
		records = append(records, r)
	}
	return records, rows.Err()
}

// Close closes the underlying database.
func (l *Log) Close() error {
	return l.db.Close()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
