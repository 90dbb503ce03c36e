/*
Package sqlite provides a SQLite-backed source for the published salary
scales.

PURPOSE:
  Operators can import the published scale files once into a SQLite
  database and point the server at it instead of at loose JSON files. The
  server only reads the database, at startup; imports go through the
  scalectl CLI.

INTERFACES IMPLEMENTED:
  scale.Source: Load(ctx, edition)

KEY TABLES:
  scale_editions: one row per imported edition (name, note, import time)
  scale_amounts:  one row per (edition, grade, step)

REPLACE SEMANTICS:
  SaveTable replaces an edition inside one transaction: the old rows are
  deleted and the new ones inserted, or nothing changes. A reader never
  sees half an edition.

CONCURRENCY:
  Uses sync.RWMutex for thread-safety, matching the single-writer model of
  SQLite.

USAGE:
  store, err := sqlite.New("./data/scales.db")
  if err != nil {
      log.Fatal(err)
  }
  defer store.Close()

  tables, err := scale.LoadTables(ctx, store)

SEE ALSO:
  - scale/loader.go: Source interface and JSON file source
  - cmd/scalectl/import.go: import command
*/
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"

	"github.com/StephenDWright/TeacherApps1/scale"
)

// Store implements scale.Source using SQLite.
type Store struct {
	db   *sql.DB
	path string
	mu   sync.RWMutex
}

// New creates a new SQLite store with the given database path.
// Use ":memory:" for an in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// A second connection to ":memory:" would see an empty database.
	db.SetMaxOpenConns(1)

	store := &Store{db: db, path: dbPath}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// migrate creates the database schema.
func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS scale_editions (
		edition TEXT PRIMARY KEY,
		name TEXT NOT NULL DEFAULT '',
		note TEXT NOT NULL DEFAULT '',
		imported_at TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS scale_amounts (
		edition TEXT NOT NULL REFERENCES scale_editions(edition) ON DELETE CASCADE,
		grade INTEGER NOT NULL,
		step_index INTEGER NOT NULL,
		step TEXT NOT NULL,
		amount TEXT NOT NULL,
		PRIMARY KEY (edition, grade, step_index)
	);

	CREATE INDEX IF NOT EXISTS idx_scale_amounts_edition_grade
		ON scale_amounts(edition, grade);
	`
	_, err := s.db.Exec(schema)
	return err
}

// =============================================================================
// EDITIONS
// =============================================================================

// EditionRecord describes an imported edition.
type EditionRecord struct {
	Edition    scale.Edition
	Name       string
	Note       string
	ImportedAt time.Time
	Amounts    int
}

// SaveTable replaces one edition with t.
func (s *Store) SaveTable(ctx context.Context, edition scale.Edition, info scale.EditionInfo, t scale.Table) error {
	if !edition.Valid() {
		return fmt.Errorf("unknown edition %q", edition)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer dbTx.Rollback()

	if _, err := dbTx.ExecContext(ctx, `DELETE FROM scale_amounts WHERE edition = ?`, string(edition)); err != nil {
		return fmt.Errorf("clear %s amounts: %w", edition, err)
	}

	_, err = dbTx.ExecContext(ctx, `
		INSERT INTO scale_editions (edition, name, note, imported_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(edition) DO UPDATE SET
			name = excluded.name,
			note = excluded.note,
			imported_at = excluded.imported_at
	`, string(edition), info.Name, info.Note, time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("save %s edition: %w", edition, err)
	}

	stmt, err := dbTx.PrepareContext(ctx, `
		INSERT INTO scale_amounts (edition, grade, step_index, step, amount)
		VALUES (?, ?, ?, ?, ?)
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, g := range t.Grades() {
		for _, step := range t.StepsFor(g) {
			amt, _ := t.Amount(g, step)
			if _, err := stmt.ExecContext(ctx, string(edition), int(g), step.Index(), step.Label(), amt.String()); err != nil {
				return fmt.Errorf("save grade %s step %s: %w", g, step.Label(), err)
			}
		}
	}

	return dbTx.Commit()
}

// Load implements scale.Source. An edition that was never imported is a
// *scale.ConfigurationError, the same as a missing file.
func (s *Store) Load(ctx context.Context, edition scale.Edition) (scale.Table, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT grade, step_index, amount
		FROM scale_amounts
		WHERE edition = ?
		ORDER BY grade, step_index
	`, string(edition))
	if err != nil {
		return scale.Table{}, s.configErr(edition, err)
	}
	defer rows.Close()

	data := make(map[scale.Grade]map[scale.Step]decimal.Decimal)
	for rows.Next() {
		var (
			grade, stepIndex int
			amount           string
		)
		if err := rows.Scan(&grade, &stepIndex, &amount); err != nil {
			return scale.Table{}, s.configErr(edition, err)
		}
		g := scale.Grade(grade)
		step := scale.Step(stepIndex)
		if !g.Valid() || step < scale.StepMinimum || step > scale.MaxStep {
			return scale.Table{}, s.configErr(edition, fmt.Errorf("invalid row grade=%d step=%d", grade, stepIndex))
		}
		amt, err := decimal.NewFromString(amount)
		if err != nil {
			return scale.Table{}, s.configErr(edition, fmt.Errorf("grade %d step %d: %w", grade, stepIndex, err))
		}
		if data[g] == nil {
			data[g] = make(map[scale.Step]decimal.Decimal)
		}
		data[g][step] = amt
	}
	if err := rows.Err(); err != nil {
		return scale.Table{}, s.configErr(edition, err)
	}
	if len(data) == 0 {
		return scale.Table{}, s.configErr(edition, fmt.Errorf("edition not imported"))
	}

	return scale.NewTable(data), nil
}

// Editions lists imported editions with their row counts.
func (s *Store) Editions(ctx context.Context) ([]EditionRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT e.edition, e.name, e.note, e.imported_at, COUNT(a.step_index)
		FROM scale_editions e
		LEFT JOIN scale_amounts a ON a.edition = e.edition
		GROUP BY e.edition
		ORDER BY e.edition
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []EditionRecord
	for rows.Next() {
		var (
			r          EditionRecord
			edition    string
			importedAt string
		)
		if err := rows.Scan(&edition, &r.Name, &r.Note, &importedAt, &r.Amounts); err != nil {
			return nil, err
		}
		r.Edition = scale.Edition(edition)
		r.ImportedAt, _ = time.Parse(time.RFC3339, importedAt)
		out = append(out, r)
	}
	return out, rows.Err()
}

// Info returns the stored display info per edition.
func (s *Store) Info(ctx context.Context) (map[scale.Edition]scale.EditionInfo, error) {
	records, err := s.Editions(ctx)
	if err != nil {
		return nil, err
	}
	info := make(map[scale.Edition]scale.EditionInfo, len(records))
	for _, r := range records {
		info[r.Edition] = scale.EditionInfo{Name: r.Name, Note: r.Note}
	}
	return info, nil
}

func (s *Store) configErr(edition scale.Edition, err error) error {
	return &scale.ConfigurationError{Source: "sqlite:" + s.path, Edition: edition, Err: err}
}
