// internal/lending/service.go
package lending

import (
	"context"
	"time"

	"github.com/google/uuid"

	"libralend/internal/catalog"
	"libralend/internal/membership"
)

// BookStore is the book persistence port the lifecycle manager depends on.
// Get returns (nil, nil) when the book does not exist. DecrementAvailable
// must be an atomic conditional update: it returns false without mutating
// anything when no copy is available, and flips the book to UNAVAILABLE in
// the same operation when the last copy goes out.
type BookStore interface {
	Get(ctx context.Context, id uuid.UUID) (*catalog.Book, error)
	DecrementAvailable(ctx context.Context, id uuid.UUID) (bool, error)
	IncrementAvailable(ctx context.Context, id uuid.UUID) (bool, error)
}

// MemberStore is the member persistence port.
type MemberStore interface {
	Get(ctx context.Context, id uuid.UUID) (*membership.Member, error)
}

// TransactionStore is the loan-record persistence port.
type TransactionStore interface {
	Get(ctx context.Context, id uuid.UUID) (*Transaction, error)
	Create(ctx context.Context, txn *Transaction) error
	Update(ctx context.Context, txn *Transaction) error
	List(ctx context.Context) ([]Transaction, error)
	ListByMember(ctx context.Context, memberID uuid.UUID) ([]Transaction, error)
	ListActiveByMember(ctx context.Context, memberID uuid.UUID) ([]Transaction, error)
	ListActive(ctx context.Context) ([]Transaction, error)
	ListByDateRange(ctx context.Context, start, end time.Time) ([]Transaction, error)
}

// Store supplies the transactional boundary and read access to the loan
// records. InTx runs fn with ports bound to a single atomic unit: either
// every write inside fn is applied, or none is.
type Store interface {
	InTx(ctx context.Context, fn func(books BookStore, members MemberStore, txns TransactionStore) error) error
	Transactions() TransactionStore
}

// Service is the transaction lifecycle manager.
type Service interface {
	// Borrow creates an ACTIVE loan and consumes one available copy.
	// A non-positive loanDays falls back to DefaultLoanDays.
	Borrow(ctx context.Context, bookID, memberID uuid.UUID, loanDays int) (*Transaction, error)
	// Return closes an ACTIVE loan, releases the copy and applies the fine
	// policy. A zero returnDate means today.
	Return(ctx context.Context, transactionID uuid.UUID, returnDate time.Time) (*Transaction, error)

	Get(ctx context.Context, id uuid.UUID) (*Transaction, error)
	ListAll(ctx context.Context) ([]Transaction, error)
	ListByMember(ctx context.Context, memberID uuid.UUID) ([]Transaction, error)
	ListActiveByMember(ctx context.Context, memberID uuid.UUID) ([]Transaction, error)
	ListOverdue(ctx context.Context) ([]Transaction, error)
	ListOverdueByMember(ctx context.Context, memberID uuid.UUID) ([]Transaction, error)
	Stats(ctx context.Context) (*Statistics, error)
}
