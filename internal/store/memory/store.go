// internal/store/memory/store.go
// Package memory implements the storage ports on mutex-guarded maps. It
// backs the unit tests and local development without a database. InTx
// serializes against all other access; it does not roll back partial
// writes on failure.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"libralend/internal/catalog"
	"libralend/internal/lending"
	"libralend/internal/membership"
	"libralend/internal/notification"
	"libralend/internal/report"
)

var (
	_ lending.Store = (*Store)(nil)

	_ catalog.BookStore = (*BookStore)(nil)
	_ lending.BookStore = (*BookStore)(nil)
	_ report.BookStore  = (*BookStore)(nil)

	_ membership.MemberStore   = (*MemberStore)(nil)
	_ lending.MemberStore      = (*MemberStore)(nil)
	_ notification.MemberStore = (*MemberStore)(nil)

	_ lending.TransactionStore      = (*TransactionStore)(nil)
	_ notification.TransactionStore = (*TransactionStore)(nil)
	_ report.TransactionStore       = (*TransactionStore)(nil)

	_ notification.NotificationStore = (*NotificationStore)(nil)
)

type state struct {
	books         map[uuid.UUID]catalog.Book
	members       map[uuid.UUID]membership.Member
	transactions  map[uuid.UUID]lending.Transaction
	notifications map[uuid.UUID]notification.Notification
}

// core is shared by every substore. Substores handed out by InTx carry
// nolock=true because the transaction already holds the write lock.
type core struct {
	mu     *sync.RWMutex
	state  *state
	nolock bool
}

func (c *core) lock() func() {
	if c.nolock {
		return func() {}
	}
	c.mu.Lock()
	return c.mu.Unlock
}

func (c *core) rlock() func() {
	if c.nolock {
		return func() {}
	}
	c.mu.RLock()
	return c.mu.RUnlock
}

// Store bundles the in-memory substores.
type Store struct {
	core          *core
	Books         *BookStore
	Members       *MemberStore
	Loans         *TransactionStore
	Notifications *NotificationStore
}

// New creates an empty in-memory store.
func New() *Store {
	c := &core{
		mu: &sync.RWMutex{},
		state: &state{
			books:         make(map[uuid.UUID]catalog.Book),
			members:       make(map[uuid.UUID]membership.Member),
			transactions:  make(map[uuid.UUID]lending.Transaction),
			notifications: make(map[uuid.UUID]notification.Notification),
		},
	}
	return &Store{
		core:          c,
		Books:         &BookStore{c: c},
		Members:       &MemberStore{c: c},
		Loans:         &TransactionStore{c: c},
		Notifications: &NotificationStore{c: c},
	}
}

// InTx runs fn under the exclusive lock, so concurrent borrow attempts are
// fully serialized.
func (s *Store) InTx(ctx context.Context, fn func(books lending.BookStore, members lending.MemberStore, txns lending.TransactionStore) error) error {
	s.core.mu.Lock()
	defer s.core.mu.Unlock()

	tx := &core{mu: s.core.mu, state: s.core.state, nolock: true}
	return fn(&BookStore{c: tx}, &MemberStore{c: tx}, &TransactionStore{c: tx})
}

// Transactions exposes the loan records as the lending read port.
func (s *Store) Transactions() lending.TransactionStore {
	return s.Loans
}

func dateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
