// internal/report/domain.go
package report

import (
	"time"

	"github.com/shopspring/decimal"
)

// InventoryReport summarizes the catalog at a point in time.
type InventoryReport struct {
	TotalBooks      int            `json:"total_books"`
	TotalCopies     int            `json:"total_copies"`
	AvailableCopies int            `json:"available_copies"`
	BorrowedCopies  int            `json:"borrowed_copies"`
	BooksByGenre    map[string]int `json:"books_by_genre"`
	BooksByStatus   map[string]int `json:"books_by_status"`
}

// TrendsReport summarizes borrowing activity within an inclusive date range.
type TrendsReport struct {
	StartDate         time.Time       `json:"start_date"`
	EndDate           time.Time       `json:"end_date"`
	TotalTransactions int             `json:"total_transactions"`
	BorrowCount       int             `json:"borrow_count"`
	ReturnCount       int             `json:"return_count"`
	ByStatus          map[string]int  `json:"transactions_by_status"`
	MostBorrowed      map[string]int  `json:"most_borrowed_books"`
	TotalFines        decimal.Decimal `json:"total_fines"`
}

// OverdueReport summarizes currently overdue loans and their accrued fines.
type OverdueReport struct {
	TotalOverdue int             `json:"total_overdue"`
	TotalFines   decimal.Decimal `json:"total_fines"`
	ByMember     map[string]int  `json:"overdue_by_member"`
}
