// internal/store/postgres/store.go
// Package postgres implements the storage ports on PostgreSQL using sqlx
// for execution and goqu for query building.
package postgres

import (
	"context"
	"fmt"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"libralend/internal/catalog"
	"libralend/internal/lending"
	"libralend/internal/liberr"
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

const dialect = "postgres"

func builder() goqu.DialectWrapper {
	return goqu.Dialect(dialect)
}

// Store bundles the PostgreSQL substores over a shared connection pool.
type Store struct {
	db            *sqlx.DB
	Books         *BookStore
	Members       *MemberStore
	Loans         *TransactionStore
	Notifications *NotificationStore
}

// Open connects to the database and pings it.
func Open(databaseURL string) (*Store, error) {
	db, err := sqlx.Connect(dialect, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("connecting to postgres: %w", err)
	}
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	return NewStore(db), nil
}

// NewStore wraps an existing connection pool.
func NewStore(db *sqlx.DB) *Store {
	return &Store{
		db:            db,
		Books:         &BookStore{ext: db},
		Members:       &MemberStore{ext: db},
		Loans:         &TransactionStore{ext: db},
		Notifications: &NotificationStore{ext: db},
	}
}

// Close releases the connection pool.
func (s *Store) Close() error {
	return s.db.Close()
}

// InTx runs fn inside a single database transaction, so the availability
// check, the copy decrement and the transaction insert commit or fail as
// one unit.
func (s *Store) InTx(ctx context.Context, fn func(books lending.BookStore, members lending.MemberStore, txns lending.TransactionStore) error) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return liberr.Storage("begin tx", err)
	}

	if err := fn(&BookStore{ext: tx}, &MemberStore{ext: tx}, &TransactionStore{ext: tx}); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("%w (rollback failed: %v)", err, rbErr)
		}
		return err
	}
	if err := tx.Commit(); err != nil {
		return liberr.Storage("commit tx", err)
	}
	return nil
}

// Transactions exposes the loan records as the lending read port.
func (s *Store) Transactions() lending.TransactionStore {
	return s.Loans
}
