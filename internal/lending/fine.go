// internal/lending/fine.go
package lending

import (
	"time"

	"github.com/shopspring/decimal"
)

// DefaultDailyRate is the fine accrued per calendar day a return postdates
// its due date.
var DefaultDailyRate = decimal.RequireFromString("2.00")

// FinePolicy computes overdue fines. The zero value charges nothing.
type FinePolicy struct {
	DailyRate decimal.Decimal
}

// NewFinePolicy returns a policy charging rate per overdue day.
func NewFinePolicy(rate decimal.Decimal) FinePolicy {
	return FinePolicy{DailyRate: rate}
}

// Fine returns daysLate * DailyRate, where daysLate is the count of whole
// calendar days between due and returned. Returns on or before the due date
// cost nothing.
func (p FinePolicy) Fine(due, returned time.Time) decimal.Decimal {
	days := daysBetween(due, returned)
	if days <= 0 {
		return decimal.Zero
	}
	return p.DailyRate.Mul(decimal.NewFromInt(int64(days)))
}
