// internal/store/memory/transactions.go
package memory

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"libralend/internal/lending"
)

// TransactionStore keeps loan transactions in a map keyed by id.
type TransactionStore struct {
	c *core
}

func (s *TransactionStore) Get(ctx context.Context, id uuid.UUID) (*lending.Transaction, error) {
	defer s.c.rlock()()
	t, ok := s.c.state.transactions[id]
	if !ok {
		return nil, nil
	}
	return &t, nil
}

func (s *TransactionStore) Create(ctx context.Context, txn *lending.Transaction) error {
	defer s.c.lock()()
	s.c.state.transactions[txn.ID] = *txn
	return nil
}

func (s *TransactionStore) Update(ctx context.Context, txn *lending.Transaction) error {
	defer s.c.lock()()
	s.c.state.transactions[txn.ID] = *txn
	return nil
}

func (s *TransactionStore) List(ctx context.Context) ([]lending.Transaction, error) {
	defer s.c.rlock()()
	return s.collect(func(lending.Transaction) bool { return true }), nil
}

func (s *TransactionStore) ListByMember(ctx context.Context, memberID uuid.UUID) ([]lending.Transaction, error) {
	defer s.c.rlock()()
	return s.collect(func(t lending.Transaction) bool { return t.MemberID == memberID }), nil
}

func (s *TransactionStore) ListActiveByMember(ctx context.Context, memberID uuid.UUID) ([]lending.Transaction, error) {
	defer s.c.rlock()()
	return s.collect(func(t lending.Transaction) bool {
		return t.MemberID == memberID && t.Status == lending.StatusActive
	}), nil
}

func (s *TransactionStore) ListActive(ctx context.Context) ([]lending.Transaction, error) {
	defer s.c.rlock()()
	return s.collect(func(t lending.Transaction) bool { return t.Status == lending.StatusActive }), nil
}

func (s *TransactionStore) ListByDateRange(ctx context.Context, start, end time.Time) ([]lending.Transaction, error) {
	defer s.c.rlock()()
	lo, hi := dateOf(start), dateOf(end)
	return s.collect(func(t lending.Transaction) bool {
		d := dateOf(t.BorrowDate)
		return !d.Before(lo) && !d.After(hi)
	}), nil
}

func (s *TransactionStore) collect(keep func(lending.Transaction) bool) []lending.Transaction {
	out := make([]lending.Transaction, 0)
	for _, t := range s.c.state.transactions {
		if keep(t) {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].BorrowDate.After(out[j].BorrowDate) })
	return out
}
