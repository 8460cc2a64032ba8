/*
Package store
File: store.go
Description:
    SQL-backed persistence collaborator. Entities are stored as JSON
    documents in narrow tables keyed by their natural identifiers; the
    engine never sees this package, it only receives records read out of it
    and hands updated records back.

    The store is driver-agnostic over database/sql: it speaks '?'
    placeholders and rewrites them to $N for postgres. Drivers are
    registered by the composition root (blank imports in main), not here.

    SaveAdvancement is the important method: one mission day's mission,
    ship, ledger and account updates land in a single transaction, so a
    crash mid-persist can never leave cargo mass and ledger depletion
    disagreeing.
*/

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/everforgeworks/deepcore-mining/internal/game"
)

var (
	// ErrNotFound indicates the requested document does not exist.
	ErrNotFound = errors.New("not found")
)

// Store wraps the SQL connection and the driver dialect.
type Store struct {
	db     *sql.DB
	driver string
}

// Open connects using a driver previously registered via blank import.
func Open(driver, dsn string) (*Store, error) {
	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s store: %w", driver, err)
	}
	return &Store{db: db, driver: driver}, nil
}

// Close releases the underlying connection pool.
func (s *Store) Close() error {
	return s.db.Close()
}

// rebind rewrites '?' placeholders to the $N form postgres expects.
// sqlite3 accepts '?' natively, so the query passes through untouched.
func (s *Store) rebind(query string) string {
	if s.driver != "postgres" {
		return query
	}
	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			fmt.Fprintf(&b, "$%d", n)
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// EnsureSchema creates the document tables if they do not exist.
func (s *Store) EnsureSchema(ctx context.Context) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS accounts (
			operator TEXT PRIMARY KEY,
			doc      TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS ships (
			id       TEXT PRIMARY KEY,
			operator TEXT NOT NULL,
			name     TEXT NOT NULL,
			doc      TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS missions (
			id       TEXT PRIMARY KEY,
			operator TEXT NOT NULL,
			status   INTEGER NOT NULL,
			doc      TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS ledgers (
			operator    TEXT NOT NULL,
			asteroid_id TEXT NOT NULL,
			doc         TEXT NOT NULL,
			PRIMARY KEY (operator, asteroid_id)
		)`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func (s *Store) putDoc(ctx context.Context, ex execer, query string, doc any, keys ...any) error {
	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode document: %w", err)
	}
	args := append(keys, string(raw))
	if _, err := ex.ExecContext(ctx, s.rebind(query), args...); err != nil {
		return fmt.Errorf("write document: %w", err)
	}
	return nil
}

func (s *Store) getDoc(ctx context.Context, query string, out any, keys ...any) error {
	var raw string
	err := s.db.QueryRowContext(ctx, s.rebind(query), keys...).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("read document: %w", err)
	}
	if err := json.Unmarshal([]byte(raw), out); err != nil {
		return fmt.Errorf("decode document: %w", err)
	}
	return nil
}

// --- Accounts ---

const putAccountSQL = `INSERT INTO accounts (operator, doc) VALUES (?, ?)
	ON CONFLICT (operator) DO UPDATE SET doc = excluded.doc`

func (s *Store) PutAccount(ctx context.Context, a game.Account) error {
	return s.putDoc(ctx, s.db, putAccountSQL, a, a.Operator)
}

func (s *Store) GetAccount(ctx context.Context, operator string) (game.Account, error) {
	var a game.Account
	err := s.getDoc(ctx, `SELECT doc FROM accounts WHERE operator = ?`, &a, operator)
	return a, err
}

func (s *Store) ListAccounts(ctx context.Context) ([]game.Account, error) {
	return listDocs[game.Account](ctx, s, `SELECT doc FROM accounts ORDER BY operator`)
}

// --- Ships ---

const putShipSQL = `INSERT INTO ships (id, operator, name, doc) VALUES (?, ?, ?, ?)
	ON CONFLICT (id) DO UPDATE SET doc = excluded.doc`

func (s *Store) PutShip(ctx context.Context, sh game.Ship) error {
	return s.putDoc(ctx, s.db, putShipSQL, sh, sh.ID, sh.Operator, sh.Name)
}

func (s *Store) GetShip(ctx context.Context, id string) (game.Ship, error) {
	var sh game.Ship
	err := s.getDoc(ctx, `SELECT doc FROM ships WHERE id = ?`, &sh, id)
	return sh, err
}

func (s *Store) GetShipByName(ctx context.Context, operator, name string) (game.Ship, error) {
	var sh game.Ship
	err := s.getDoc(ctx, `SELECT doc FROM ships WHERE operator = ? AND name = ?`, &sh, operator, name)
	return sh, err
}

// --- Missions ---

const putMissionSQL = `INSERT INTO missions (id, operator, status, doc) VALUES (?, ?, ?, ?)
	ON CONFLICT (id) DO UPDATE SET status = excluded.status, doc = excluded.doc`

func (s *Store) PutMission(ctx context.Context, m game.Mission) error {
	return s.putDoc(ctx, s.db, putMissionSQL, m, m.ID, m.Operator, int(m.Status))
}

func (s *Store) GetMission(ctx context.Context, id string) (game.Mission, error) {
	var m game.Mission
	err := s.getDoc(ctx, `SELECT doc FROM missions WHERE id = ?`, &m, id)
	return m, err
}

func (s *Store) ListMissions(ctx context.Context, operator string) ([]game.Mission, error) {
	return listDocs[game.Mission](ctx, s, `SELECT doc FROM missions WHERE operator = ? ORDER BY id`, operator)
}

func (s *Store) ListActiveMissions(ctx context.Context, operator string) ([]game.Mission, error) {
	return listDocs[game.Mission](ctx, s,
		`SELECT doc FROM missions WHERE operator = ? AND status = ? ORDER BY id`,
		operator, int(game.MissionActive))
}

func (s *Store) ListAllMissions(ctx context.Context) ([]game.Mission, error) {
	return listDocs[game.Mission](ctx, s, `SELECT doc FROM missions ORDER BY id`)
}

// --- Resource ledgers ---

const putLedgerSQL = `INSERT INTO ledgers (operator, asteroid_id, doc) VALUES (?, ?, ?)
	ON CONFLICT (operator, asteroid_id) DO UPDATE SET doc = excluded.doc`

func (s *Store) PutLedger(ctx context.Context, l game.MinedAsteroid) error {
	return s.putDoc(ctx, s.db, putLedgerSQL, l, l.Operator, l.AsteroidID)
}

func (s *Store) GetLedger(ctx context.Context, operator, asteroidID string) (game.MinedAsteroid, error) {
	var l game.MinedAsteroid
	err := s.getDoc(ctx, `SELECT doc FROM ledgers WHERE operator = ? AND asteroid_id = ?`, &l, operator, asteroidID)
	return l, err
}

// GetOrCloneLedger returns the operator's ledger for an asteroid, lazily
// cloning the template on first extraction. The clone is not persisted
// here; it rides along with the advancement it belongs to, so a failed day
// leaves no half-created ledger behind.
func (s *Store) GetOrCloneLedger(ctx context.Context, operator string, template game.Asteroid) (game.MinedAsteroid, error) {
	l, err := s.GetLedger(ctx, operator, template.ID)
	if errors.Is(err, ErrNotFound) {
		return game.Clone(template, operator), nil
	}
	return l, err
}

// --- Atomic advancement ---

// SaveAdvancement persists the outcome of one advanced mission day as a
// unit: mission, ship, resource ledger and account move together or not at
// all.
func (s *Store) SaveAdvancement(ctx context.Context, m game.Mission, sh game.Ship, l game.MinedAsteroid, a game.Account) (err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin advancement tx: %w", err)
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	if err = s.putDoc(ctx, tx, putMissionSQL, m, m.ID, m.Operator, int(m.Status)); err != nil {
		return err
	}
	if err = s.putDoc(ctx, tx, putShipSQL, sh, sh.ID, sh.Operator, sh.Name); err != nil {
		return err
	}
	if err = s.putDoc(ctx, tx, putLedgerSQL, l, l.Operator, l.AsteroidID); err != nil {
		return err
	}
	if err = s.putDoc(ctx, tx, putAccountSQL, a, a.Operator); err != nil {
		return err
	}

	return tx.Commit()
}

func listDocs[T any](ctx context.Context, s *Store, query string, args ...any) ([]T, error) {
	rows, err := s.db.QueryContext(ctx, s.rebind(query), args...)
	if err != nil {
		return nil, fmt.Errorf("query documents: %w", err)
	}
	defer rows.Close()

	out := []T{}
	for rows.Next() {
		var raw string
		if err := rows.Scan(&raw); err != nil {
			return nil, fmt.Errorf("scan document: %w", err)
		}
		var item T
		if err := json.Unmarshal([]byte(raw), &item); err != nil {
			return nil, fmt.Errorf("decode document: %w", err)
		}
		out = append(out, item)
	}
	return out, rows.Err()
}
