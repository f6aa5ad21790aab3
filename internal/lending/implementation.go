// internal/lending/implementation.go
package lending

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"libralend/internal/liberr"
)

// service implements the Service interface.
type service struct {
	store    Store
	policy   FinePolicy
	loanDays int
	now      func() time.Time
	tracer   trace.Tracer
}

// NewService creates the transaction lifecycle manager. loanDays is the
// default loan period applied when a borrow request does not specify one.
func NewService(store Store, policy FinePolicy, loanDays int) Service {
	if loanDays <= 0 {
		loanDays = DefaultLoanDays
	}
	return &service{
		store:    store,
		policy:   policy,
		loanDays: loanDays,
		now:      time.Now,
		tracer:   otel.Tracer("libralend/lending"),
	}
}

// Borrow checks availability, member standing and outstanding overdues, then
// consumes one copy and creates the ACTIVE loan. All checks and both writes
// happen inside one transactional boundary; the conditional decrement
// re-validates availability under that boundary, so two concurrent borrows
// can never both take the last copy.
func (s *service) Borrow(ctx context.Context, bookID, memberID uuid.UUID, loanDays int) (*Transaction, error) {
	ctx, span := s.tracer.Start(ctx, "lending.Borrow")
	defer span.End()

	if loanDays <= 0 {
		loanDays = s.loanDays
	}
	today := s.now()

	var created *Transaction
	err := s.store.InTx(ctx, func(books BookStore, members MemberStore, txns TransactionStore) error {
		book, err := books.Get(ctx, bookID)
		if err != nil {
			return fmt.Errorf("failed to get book: %w", err)
		}
		if book == nil {
			return liberr.NotFound("book", bookID.String())
		}
		if !book.IsAvailable() {
			return liberr.Conflict(liberr.ReasonNotAvailable, "book is not available")
		}

		member, err := members.Get(ctx, memberID)
		if err != nil {
			return fmt.Errorf("failed to get member: %w", err)
		}
		if member == nil {
			return liberr.NotFound("member", memberID.String())
		}
		if !member.IsActive() {
			return liberr.Conflict(liberr.ReasonMemberInactive, "member account is not active")
		}

		active, err := txns.ListActiveByMember(ctx, memberID)
		if err != nil {
			return fmt.Errorf("failed to list active loans: %w", err)
		}
		for i := range active {
			if active[i].IsOverdue(today) {
				return liberr.Conflict(liberr.ReasonHasOverdue, "member has overdue books, return them first")
			}
		}

		ok, err := books.DecrementAvailable(ctx, bookID)
		if err != nil {
			return fmt.Errorf("failed to update book availability: %w", err)
		}
		if !ok {
			return liberr.Conflict(liberr.ReasonNotAvailable, "book is not available")
		}

		txn := &Transaction{
			ID:         uuid.New(),
			BookID:     bookID,
			MemberID:   memberID,
			Type:       TypeBorrow,
			BorrowDate: today,
			DueDate:    today.AddDate(0, 0, loanDays),
			FineAmount: decimal.Zero,
			Status:     StatusActive,
		}
		if err := txns.Create(ctx, txn); err != nil {
			return fmt.Errorf("failed to create transaction: %w", err)
		}
		created = txn
		return nil
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "borrow rejected")
		return nil, err
	}
	return created, nil
}

// Return closes an ACTIVE loan: it stamps the return date, applies the fine
// policy and releases the copy, all inside one transactional boundary.
// Copies coming back always flip the book to AVAILABLE.
func (s *service) Return(ctx context.Context, transactionID uuid.UUID, returnDate time.Time) (*Transaction, error) {
	ctx, span := s.tracer.Start(ctx, "lending.Return")
	defer span.End()

	if returnDate.IsZero() {
		returnDate = s.now()
	}

	var updated *Transaction
	err := s.store.InTx(ctx, func(books BookStore, members MemberStore, txns TransactionStore) error {
		txn, err := txns.Get(ctx, transactionID)
		if err != nil {
			return fmt.Errorf("failed to get transaction: %w", err)
		}
		if txn == nil {
			return liberr.NotFound("transaction", transactionID.String())
		}
		if txn.Status != StatusActive {
			return liberr.Conflict(liberr.ReasonNotActive, "transaction is already closed")
		}

		rd := returnDate
		txn.ReturnDate = &rd
		txn.Status = StatusReturned
		txn.FineAmount = s.policy.Fine(txn.DueDate, returnDate)

		if err := txns.Update(ctx, txn); err != nil {
			return fmt.Errorf("failed to update transaction: %w", err)
		}
		if _, err := books.IncrementAvailable(ctx, txn.BookID); err != nil {
			return fmt.Errorf("failed to release book copy: %w", err)
		}
		updated = txn
		return nil
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "return rejected")
		return nil, err
	}
	return updated, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*Transaction, error) {
	txn, err := s.store.Transactions().Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get transaction: %w", err)
	}
	if txn == nil {
		return nil, liberr.NotFound("transaction", id.String())
	}
	return txn, nil
}

func (s *service) ListAll(ctx context.Context) ([]Transaction, error) {
	return s.store.Transactions().List(ctx)
}

func (s *service) ListByMember(ctx context.Context, memberID uuid.UUID) ([]Transaction, error) {
	return s.store.Transactions().ListByMember(ctx, memberID)
}

func (s *service) ListActiveByMember(ctx context.Context, memberID uuid.UUID) ([]Transaction, error) {
	return s.store.Transactions().ListActiveByMember(ctx, memberID)
}

// ListOverdue returns active loans past their due date, with the derived
// OVERDUE display status applied.
func (s *service) ListOverdue(ctx context.Context) ([]Transaction, error) {
	active, err := s.store.Transactions().ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list active loans: %w", err)
	}
	return overdueView(active, s.now()), nil
}

func (s *service) ListOverdueByMember(ctx context.Context, memberID uuid.UUID) ([]Transaction, error) {
	active, err := s.store.Transactions().ListActiveByMember(ctx, memberID)
	if err != nil {
		return nil, fmt.Errorf("failed to list active loans: %w", err)
	}
	return overdueView(active, s.now()), nil
}

func overdueView(txns []Transaction, today time.Time) []Transaction {
	overdue := make([]Transaction, 0)
	for _, txn := range txns {
		if txn.IsOverdue(today) {
			txn.Status = StatusOverdue
			overdue = append(overdue, txn)
		}
	}
	return overdue
}

// Stats aggregates counts per status and the fine total over the whole
// transaction history.
func (s *service) Stats(ctx context.Context) (*Statistics, error) {
	all, err := s.store.Transactions().List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}

	today := s.now()
	stats := &Statistics{
		TotalTransactions: len(all),
		TotalFines:        decimal.Zero,
	}
	for i := range all {
		switch all[i].Status {
		case StatusActive:
			stats.ActiveTransactions++
			if all[i].IsOverdue(today) {
				stats.OverdueTransactions++
			}
		case StatusReturned:
			stats.ReturnedTransactions++
		}
		stats.TotalFines = stats.TotalFines.Add(all[i].FineAmount)
	}
	return stats, nil
}
