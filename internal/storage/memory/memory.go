// Package memory provides a simple in-memory implementation used for
// development and tests. It keeps code paths easy to follow while
// allowing a real DB to be plugged in behind the same interfaces.
package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/tallyfold/mis/internal/errs"
	"github.com/tallyfold/mis/internal/mis"
	"github.com/tallyfold/mis/internal/rules"
	"github.com/tallyfold/mis/internal/sales"
)

// Store is an in-memory implementation of the repository+writer used by
// the API. It is guarded by an RWMutex for concurrent reads/writes. The
// transaction collection is replaced whole on every mutation; the
// snapshot stack holds prior collections for undo.
type Store struct {
	mu        sync.RWMutex
	txs       []mis.Transaction
	byID      map[uuid.UUID]int
	userRules []rules.Rule
	registers []sales.ClassifiedRegister
	snapshots [][]mis.Transaction
}

// New constructs an empty in-memory store.
func New() *Store {
	return &Store{byID: make(map[uuid.UUID]int)}
}

// Reset drops all stored state.
func (s *Store) Reset() {
	s.mu.Lock()
	s.txs = nil
	s.byID = make(map[uuid.UUID]int)
	s.userRules = nil
	s.registers = nil
	s.snapshots = nil
	s.mu.Unlock()
}

// Transactions returns a copy of the stored collection in order.
func (s *Store) Transactions(_ context.Context) ([]mis.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]mis.Transaction, len(s.txs))
	copy(out, s.txs)
	return out, nil
}

// TransactionByID returns a single transaction.
func (s *Store) TransactionByID(_ context.Context, id uuid.UUID) (mis.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i, ok := s.byID[id]
	if !ok {
		return mis.Transaction{}, errs.ErrNotFound
	}
	return s.txs[i], nil
}

// ReplaceTransactions swaps in a new collection wholesale.
func (s *Store) ReplaceTransactions(_ context.Context, txs []mis.Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	next := make([]mis.Transaction, len(txs))
	copy(next, txs)
	s.txs = next
	s.byID = make(map[uuid.UUID]int, len(next))
	for i, tx := range next {
		s.byID[tx.ID] = i
	}
	return nil
}

// UserRules returns persisted user rules in append order.
func (s *Store) UserRules(_ context.Context) ([]rules.Rule, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]rules.Rule, len(s.userRules))
	copy(out, s.userRules)
	return out, nil
}

// AppendUserRule adds a user rule at the end of the user list.
func (s *Store) AppendUserRule(_ context.Context, r rules.Rule) error {
	s.mu.Lock()
	s.userRules = append(s.userRules, r)
	s.mu.Unlock()
	return nil
}

// SalesRegisters returns stored classified registers.
func (s *Store) SalesRegisters(_ context.Context) ([]sales.ClassifiedRegister, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]sales.ClassifiedRegister, len(s.registers))
	copy(out, s.registers)
	return out, nil
}

// SaveSalesRegister stores one classified register, replacing any prior
// import for the same state+name.
func (s *Store) SaveSalesRegister(_ context.Context, reg sales.ClassifiedRegister) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, r := range s.registers {
		if r.State == reg.State && r.Name == reg.Name {
			s.registers[i] = reg
			return nil
		}
	}
	s.registers = append(s.registers, reg)
	return nil
}

// PushSnapshot stores a pre-mutation copy of the collection.
func (s *Store) PushSnapshot(_ context.Context, txs []mis.Transaction) error {
	snap := make([]mis.Transaction, len(txs))
	copy(snap, txs)
	s.mu.Lock()
	s.snapshots = append(s.snapshots, snap)
	s.mu.Unlock()
	return nil
}

// PopSnapshot removes and returns the most recent snapshot.
func (s *Store) PopSnapshot(_ context.Context) ([]mis.Transaction, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.snapshots) == 0 {
		return nil, false, nil
	}
	snap := s.snapshots[len(s.snapshots)-1]
	s.snapshots = s.snapshots[:len(s.snapshots)-1]
	return snap, true, nil
}

// SnapshotDepth reports the undo stack depth.
func (s *Store) SnapshotDepth() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.snapshots)
}
