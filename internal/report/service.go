// internal/report/service.go
package report

import (
	"context"
	"time"

	"github.com/google/uuid"

	"libralend/internal/catalog"
	"libralend/internal/lending"
	"libralend/internal/membership"
)

// BookStore is the catalog read port the aggregator depends on.
type BookStore interface {
	Get(ctx context.Context, id uuid.UUID) (*catalog.Book, error)
	List(ctx context.Context) ([]catalog.Book, error)
}

// TransactionStore is the loan read port.
type TransactionStore interface {
	ListActive(ctx context.Context) ([]lending.Transaction, error)
	ListByDateRange(ctx context.Context, start, end time.Time) ([]lending.Transaction, error)
}

// MemberStore resolves member names for per-member groupings.
type MemberStore interface {
	Get(ctx context.Context, id uuid.UUID) (*membership.Member, error)
}

// Service runs read-only aggregations off the caller's goroutine. Each
// operation returns a handle the caller may await or poll; storage
// failures propagate through the handle, never silently.
type Service interface {
	Inventory(ctx context.Context) (*Handle[*InventoryReport], error)
	BorrowingTrends(ctx context.Context, start, end time.Time) (*Handle[*TrendsReport], error)
	Overdue(ctx context.Context) (*Handle[*OverdueReport], error)
}
