// internal/lending/domain.go
package lending

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"libralend/internal/catalog"
	"libralend/internal/membership"
)

// Type distinguishes the canonical borrow record from historical return rows.
type Type string

const (
	TypeBorrow Type = "BORROW"
	TypeReturn Type = "RETURN"
)

// Status of a loan. StatusOverdue is a derived display status: a loan stays
// ACTIVE in storage until it is returned, and overdue-ness is computed from
// the due date.
type Status string

const (
	StatusActive   Status = "ACTIVE"
	StatusReturned Status = "RETURNED"
	StatusOverdue  Status = "OVERDUE"
)

// DefaultLoanDays is the loan period applied when the caller does not
// request one.
const DefaultLoanDays = 14

// Transaction represents one loan of one book copy to one member.
type Transaction struct {
	ID         uuid.UUID       `db:"id" json:"id"`
	BookID     uuid.UUID       `db:"book_id" json:"book_id"`
	MemberID   uuid.UUID       `db:"member_id" json:"member_id"`
	Type       Type            `db:"type" json:"type"`
	BorrowDate time.Time       `db:"borrow_date" json:"borrow_date"`
	DueDate    time.Time       `db:"due_date" json:"due_date"`
	ReturnDate *time.Time      `db:"return_date" json:"return_date,omitempty"`
	FineAmount decimal.Decimal `db:"fine_amount" json:"fine_amount"`
	Status     Status          `db:"status" json:"status"`

	// Book and Member are optional references, populated only by an
	// explicit fetch. An absent association stays nil.
	Book   *catalog.Book      `db:"-" json:"book,omitempty"`
	Member *membership.Member `db:"-" json:"member,omitempty"`
}

// IsOverdue reports whether the loan is active and past due on the given day.
func (t *Transaction) IsOverdue(today time.Time) bool {
	return t.Status == StatusActive && dateOf(t.DueDate).Before(dateOf(today))
}

// DisplayStatus maps an overdue active loan to StatusOverdue for read models.
func (t *Transaction) DisplayStatus(today time.Time) Status {
	if t.IsOverdue(today) {
		return StatusOverdue
	}
	return t.Status
}

// dateOf truncates a timestamp to its calendar day in UTC.
func dateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// daysBetween counts whole calendar days from one date to another.
func daysBetween(from, to time.Time) int {
	return int(dateOf(to).Sub(dateOf(from)).Hours() / 24)
}

// Statistics summarizes the transaction history.
type Statistics struct {
	TotalTransactions    int             `json:"total_transactions"`
	ActiveTransactions   int             `json:"active_transactions"`
	ReturnedTransactions int             `json:"returned_transactions"`
	OverdueTransactions  int             `json:"overdue_transactions"`
	TotalFines           decimal.Decimal `json:"total_fines"`
}
