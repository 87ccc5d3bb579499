// Package store persists a history of toolkit runs to a sqlite database, so
// that `predikt history` can show what was analyzed and when. Grounded on
// the teacher's server/dao/sqlite package (sql.Open("sqlite", ...), an
// init()-created schema, wrapDBError for driver-specific error mapping), but
// using modernc.org/sqlite directly rather than the teacher's cgo driver, as
// noted in the grounding ledger.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"modernc.org/sqlite"

	"github.com/dekarrin/predikt/internal/automaton"
	"github.com/dekarrin/predikt/internal/toolkit"
)

// ErrNotFound is returned when a run ID has no matching row.
var ErrNotFound = errors.New("no run with that ID")

// Run is one recorded toolkit build, keyed by its RunID.
type Run struct {
	ID          uuid.UUID
	Fingerprint string
	StartSymbol string
	Verdict     string
	Created     time.Time
}

// Store wraps a sqlite-backed run history.
type Store struct {
	db *sql.DB
}

// Open opens (creating if necessary) the sqlite database at path and
// ensures its schema exists.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, wrapDBError(err)
	}

	s := &Store{db: db}
	if err := s.init(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) init() error {
	const stmt = `CREATE TABLE IF NOT EXISTS runs (
		id TEXT NOT NULL PRIMARY KEY,
		fingerprint TEXT NOT NULL,
		start_symbol TEXT NOT NULL,
		verdict TEXT NOT NULL,
		created INTEGER NOT NULL
	);`
	_, err := s.db.Exec(stmt)
	if err != nil {
		return wrapDBError(err)
	}
	return nil
}

// Close closes the underlying database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// Record persists tk's run. The fingerprint is the canonical-collection
// fingerprint of the grammar's start state, a cheap way to recognize that
// two loads analyzed the same grammar.
func (s *Store) Record(ctx context.Context, tk *toolkit.Toolkit) (Run, error) {
	fingerprint := fingerprintOf(tk.Collection)

	run := Run{
		ID:          tk.RunID,
		Fingerprint: fingerprint,
		StartSymbol: tk.Grammar.StartSymbol(),
		Verdict:     tk.Verdict().String(),
		Created:     time.Now(),
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO runs (id, fingerprint, start_symbol, verdict, created) VALUES (?, ?, ?, ?, ?)`,
		run.ID.String(), run.Fingerprint, run.StartSymbol, run.Verdict, run.Created.Unix(),
	)
	if err != nil {
		return Run{}, wrapDBError(err)
	}
	return run, nil
}

// GetByID fetches a previously recorded run.
func (s *Store) GetByID(ctx context.Context, id uuid.UUID) (Run, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT fingerprint, start_symbol, verdict, created FROM runs WHERE id = ?;`, id.String())

	var created int64
	run := Run{ID: id}
	err := row.Scan(&run.Fingerprint, &run.StartSymbol, &run.Verdict, &created)
	if errors.Is(err, sql.ErrNoRows) {
		return Run{}, ErrNotFound
	}
	if err != nil {
		return Run{}, wrapDBError(err)
	}
	run.Created = time.Unix(created, 0)
	return run, nil
}

// ListRecent returns up to limit runs, most recently created first.
func (s *Store) ListRecent(ctx context.Context, limit int) ([]Run, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, fingerprint, start_symbol, verdict, created FROM runs ORDER BY created DESC LIMIT ?;`, limit)
	if err != nil {
		return nil, wrapDBError(err)
	}
	defer rows.Close()

	var out []Run
	for rows.Next() {
		var idStr string
		var created int64
		var run Run
		if err := rows.Scan(&idStr, &run.Fingerprint, &run.StartSymbol, &run.Verdict, &created); err != nil {
			return nil, wrapDBError(err)
		}
		run.ID, err = uuid.Parse(idStr)
		if err != nil {
			return out, fmt.Errorf("stored run ID %q is invalid: %w", idStr, err)
		}
		run.Created = time.Unix(created, 0)
		out = append(out, run)
	}
	if err := rows.Err(); err != nil {
		return out, wrapDBError(err)
	}
	return out, nil
}

func fingerprintOf(coll *automaton.Collection) string {
	if coll == nil || len(coll.States) == 0 {
		return ""
	}
	return coll.States[0].Fingerprint()
}

func wrapDBError(err error) error {
	if err == nil {
		return nil
	}
	sqliteErr := &sqlite.Error{}
	if errors.As(err, &sqliteErr) {
		return fmt.Errorf("%s", sqlite.ErrorCodeString[sqliteErr.Code()])
	}
	return err
}
