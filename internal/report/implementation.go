// internal/report/implementation.go
package report

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"libralend/internal/lending"
	"libralend/internal/pool"
)

// service implements the Service interface.
type service struct {
	books        BookStore
	transactions TransactionStore
	members      MemberStore
	policy       lending.FinePolicy
	pool         *pool.Pool
	now          func() time.Time
}

// NewService creates the report aggregator backed by the shared worker pool.
func NewService(books BookStore, transactions TransactionStore, members MemberStore, policy lending.FinePolicy, p *pool.Pool) Service {
	return &service{
		books:        books,
		transactions: transactions,
		members:      members,
		policy:       policy,
		pool:         p,
		now:          time.Now,
	}
}

// Inventory totals books and copies and groups title counts by genre and
// status.
func (s *service) Inventory(ctx context.Context) (*Handle[*InventoryReport], error) {
	return submit(ctx, s.pool, func(ctx context.Context) (*InventoryReport, error) {
		books, err := s.books.List(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list books: %w", err)
		}

		report := &InventoryReport{
			TotalBooks:    len(books),
			BooksByGenre:  make(map[string]int),
			BooksByStatus: make(map[string]int),
		}
		for i := range books {
			b := &books[i]
			report.TotalCopies += b.TotalCopies
			report.AvailableCopies += b.AvailableCopies
			if b.Genre != "" {
				report.BooksByGenre[b.Genre]++
			}
			report.BooksByStatus[string(b.Status)]++
		}
		report.BorrowedCopies = report.TotalCopies - report.AvailableCopies
		return report, nil
	})
}

// BorrowingTrends counts transactions by type and status within the
// inclusive date range, resolves the most borrowed titles and sums fines.
func (s *service) BorrowingTrends(ctx context.Context, start, end time.Time) (*Handle[*TrendsReport], error) {
	return submit(ctx, s.pool, func(ctx context.Context) (*TrendsReport, error) {
		txns, err := s.transactions.ListByDateRange(ctx, start, end)
		if err != nil {
			return nil, fmt.Errorf("failed to list transactions: %w", err)
		}

		today := s.now()
		report := &TrendsReport{
			StartDate:         start,
			EndDate:           end,
			TotalTransactions: len(txns),
			ByStatus:          make(map[string]int),
			MostBorrowed:      make(map[string]int),
			TotalFines:        decimal.Zero,
		}

		borrowsPerBook := make(map[uuid.UUID]int)
		for i := range txns {
			txn := &txns[i]
			switch txn.Type {
			case lending.TypeBorrow:
				report.BorrowCount++
				borrowsPerBook[txn.BookID]++
			case lending.TypeReturn:
				report.ReturnCount++
			}
			report.ByStatus[string(txn.DisplayStatus(today))]++
			report.TotalFines = report.TotalFines.Add(txn.FineAmount)
		}

		for bookID, count := range borrowsPerBook {
			report.MostBorrowed[s.bookTitle(ctx, bookID)] += count
		}
		return report, nil
	})
}

// Overdue counts currently overdue loans per member and totals the fines
// accrued so far under the fine policy.
func (s *service) Overdue(ctx context.Context) (*Handle[*OverdueReport], error) {
	return submit(ctx, s.pool, func(ctx context.Context) (*OverdueReport, error) {
		active, err := s.transactions.ListActive(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list active loans: %w", err)
		}

		today := s.now()
		report := &OverdueReport{
			ByMember:   make(map[string]int),
			TotalFines: decimal.Zero,
		}
		for i := range active {
			txn := &active[i]
			if !txn.IsOverdue(today) {
				continue
			}
			report.TotalOverdue++
			report.TotalFines = report.TotalFines.Add(s.policy.Fine(txn.DueDate, today))
			report.ByMember[s.memberName(ctx, txn.MemberID)]++
		}
		return report, nil
	})
}

func (s *service) bookTitle(ctx context.Context, id uuid.UUID) string {
	book, err := s.books.Get(ctx, id)
	if err != nil || book == nil {
		return id.String()
	}
	return book.Title
}

func (s *service) memberName(ctx context.Context, id uuid.UUID) string {
	member, err := s.members.Get(ctx, id)
	if err != nil || member == nil {
		return id.String()
	}
	return member.Name
}
