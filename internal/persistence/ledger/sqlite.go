package ledger

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

// SQLiteIndex is a queryable read model over the ledger. Appends are queued
// to a single writer goroutine; the JSONL log remains the durability point,
// so an append here only fails when the index is closed.
type SQLiteIndex struct {
	db *sql.DB

	// mu serializes sends on ch against Close closing it: senders hold the
	// read lock for the check-and-send, Close holds the write lock.
	mu     sync.RWMutex
	ch     chan req
	closed bool

	wg   sync.WaitGroup
	once sync.Once
}

type req struct {
	tx    Transaction
	flush chan struct{}
}

func OpenSQLite(path string) (*SQLiteIndex, error) {
	if path == "" {
		return nil, fmt.Errorf("empty db path")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := initPragmas(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	if err := initSchema(db); err != nil {
		_ = db.Close()
		return nil, err
	}

	s := &SQLiteIndex{
		db: db,
		ch: make(chan req, 4096),
	}
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.loop()
	}()
	return s, nil
}

func initPragmas(db *sql.DB) error {
	// WAL is much faster for append-style workloads.
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA busy_timeout=5000;",
		"PRAGMA temp_store=MEMORY;",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return err
		}
	}
	return nil
}

func initSchema(db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS transactions (
			seq INTEGER PRIMARY KEY AUTOINCREMENT,
			kind TEXT NOT NULL,
			amount INTEGER NOT NULL,
			source TEXT NOT NULL,
			target TEXT,
			ts TEXT NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_tx_source ON transactions(source, seq);`,
		`CREATE INDEX IF NOT EXISTS idx_tx_target ON transactions(target, seq);`,
	}
	for _, s := range stmts {
		if _, err := db.Exec(s); err != nil {
			return err
		}
	}
	return nil
}

func (s *SQLiteIndex) Append(tx Transaction) error {
	if err := tx.validate(); err != nil {
		return err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return fmt.Errorf("ledger index closed")
	}
	s.ch <- req{tx: tx}
	return nil
}

// History returns every transaction where the character is source or target,
// in append order.
func (s *SQLiteIndex) History(characterID string) ([]Transaction, error) {
	rows, err := s.db.Query(
		`SELECT kind, amount, source, target, ts FROM transactions
		 WHERE source = ? OR target = ? ORDER BY seq`,
		characterID, characterID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Transaction
	for rows.Next() {
		var tx Transaction
		var target sql.NullString
		var ts string
		if err := rows.Scan(&tx.Kind, &tx.Amount, &tx.Source, &target, &ts); err != nil {
			return out, err
		}
		tx.Target = target.String
		if t, err := time.Parse(time.RFC3339Nano, ts); err == nil {
			tx.TS = t
		}
		out = append(out, tx)
	}
	return out, rows.Err()
}

// Flush blocks until every queued append has been written.
func (s *SQLiteIndex) Flush() {
	done := make(chan struct{})
	s.mu.RLock()
	if s.closed {
		s.mu.RUnlock()
		return
	}
	s.ch <- req{flush: done}
	s.mu.RUnlock()
	<-done
}

func (s *SQLiteIndex) Close() error {
	var err error
	s.once.Do(func() {
		s.mu.Lock()
		s.closed = true
		close(s.ch)
		s.mu.Unlock()
		s.wg.Wait()
		err = s.db.Close()
	})
	return err
}

func (s *SQLiteIndex) loop() {
	for r := range s.ch {
		if r.flush != nil {
			close(r.flush)
			continue
		}
		tx := r.tx
		var target any
		if tx.Target != "" {
			target = tx.Target
		}
		_, err := s.db.Exec(
			`INSERT INTO transactions (kind, amount, source, target, ts) VALUES (?, ?, ?, ?, ?)`,
			string(tx.Kind), tx.Amount, tx.Source, target, tx.TS.UTC().Format(time.RFC3339Nano))
		if err != nil {
			// Index writes are best-effort; the JSONL ledger is authoritative.
			continue
		}
	}
}
