// internal/notification/service.go
package notification

import (
	"context"

	"github.com/google/uuid"

	"libralend/internal/catalog"
	"libralend/internal/lending"
	"libralend/internal/membership"
	"libralend/internal/pool"
)

// NotificationStore is the persistence port for notification records.
type NotificationStore interface {
	Create(ctx context.Context, n *Notification) error
	// MarkRead flips the read flag; it returns false when the record
	// does not exist.
	MarkRead(ctx context.Context, id uuid.UUID) (bool, error)
	ListByMember(ctx context.Context, memberID uuid.UUID) ([]Notification, error)
	ListUnreadByMember(ctx context.Context, memberID uuid.UUID) ([]Notification, error)
}

// MemberStore is the member read port the dispatcher depends on.
type MemberStore interface {
	Get(ctx context.Context, id uuid.UUID) (*membership.Member, error)
	ListActiveNonLibrarians(ctx context.Context) ([]membership.Member, error)
}

// TransactionStore is the loan read port used by the scheduled dispatches.
type TransactionStore interface {
	ListActive(ctx context.Context) ([]lending.Transaction, error)
}

// BookStore resolves book titles for notification messages.
type BookStore interface {
	Get(ctx context.Context, id uuid.UUID) (*catalog.Book, error)
}

// Dispatcher converts notification intents into persisted records, fanning
// out batch work over the shared worker pool.
type Dispatcher interface {
	// SendOne creates a single notification synchronously.
	SendOne(ctx context.Context, memberID uuid.UUID, typ Type, title, message string) (*Notification, error)
	// Broadcast notifies every active non-librarian member. It blocks until
	// every member has been attempted and returns the number of failures;
	// individual failures never abort the batch.
	Broadcast(ctx context.Context, typ Type, title, message string) (int, error)
	// DispatchDueSoon asynchronously reminds members whose loans are due
	// tomorrow. The returned task handle may be awaited or dropped.
	DispatchDueSoon(ctx context.Context) (*pool.Task, error)
	// DispatchOverdue asynchronously notifies members holding overdue
	// loans, with the same non-blocking contract.
	DispatchOverdue(ctx context.Context) (*pool.Task, error)

	ListByMember(ctx context.Context, memberID uuid.UUID) ([]Notification, error)
	ListUnreadByMember(ctx context.Context, memberID uuid.UUID) ([]Notification, error)
	MarkRead(ctx context.Context, id uuid.UUID) error
}
