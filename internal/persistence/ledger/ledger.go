// Package ledger is the append-only record of economy events. Every bank
// mutation in the sim pairs with exactly one ledger record; a failed append
// aborts the mutation.
package ledger

import (
	"fmt"
	"sync"
	"time"
)

type Kind string

const (
	Payment  Kind = "Payment"
	Deposit  Kind = "Deposit"
	Withdraw Kind = "Withdraw"
	Transfer Kind = "Transfer"
)

// Transaction is immutable once written. Target is set only for transfers.
type Transaction struct {
	Kind   Kind      `json:"kind"`
	Amount int       `json:"amount"`
	Source string    `json:"source"`
	Target string    `json:"target,omitempty"`
	TS     time.Time `json:"ts"`
}

func (tx Transaction) validate() error {
	switch tx.Kind {
	case Payment, Deposit, Withdraw, Transfer:
	default:
		return fmt.Errorf("ledger: unknown kind %q", tx.Kind)
	}
	if tx.Amount <= 0 {
		return fmt.Errorf("ledger: amount must be > 0, got %d", tx.Amount)
	}
	if tx.Source == "" {
		return fmt.Errorf("ledger: missing source")
	}
	if (tx.Kind == Transfer) != (tx.Target != "") {
		return fmt.Errorf("ledger: target set iff kind is Transfer")
	}
	return nil
}

type Appender interface {
	Append(tx Transaction) error
}

// Memory keeps transactions in order, for tests and single-process setups.
type Memory struct {
	mu  sync.Mutex
	txs []Transaction
}

func NewMemory() *Memory { return &Memory{} }

func (m *Memory) Append(tx Transaction) error {
	if err := tx.validate(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.txs = append(m.txs, tx)
	return nil
}

// History returns every transaction where the character is source or target,
// in append order.
func (m *Memory) History(characterID string) ([]Transaction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []Transaction
	for _, tx := range m.txs {
		if tx.Source == characterID || tx.Target == characterID {
			out = append(out, tx)
		}
	}
	return out, nil
}

func (m *Memory) All() []Transaction {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Transaction, len(m.txs))
	copy(out, m.txs)
	return out
}

// Multi fans an append out to several backends. The first failure wins.
type Multi []Appender

func (m Multi) Append(tx Transaction) error {
	for _, a := range m {
		if err := a.Append(tx); err != nil {
			return err
		}
	}
	return nil
}

// History reads from the first member that supports it.
func (m Multi) History(characterID string) ([]Transaction, error) {
	for _, a := range m {
		if h, ok := a.(interface {
			History(characterID string) ([]Transaction, error)
		}); ok {
			return h.History(characterID)
		}
	}
	return nil, fmt.Errorf("ledger: no readable backend")
}
