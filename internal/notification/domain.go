// internal/notification/domain.go
package notification

import (
	"time"

	"github.com/google/uuid"

	"libralend/internal/membership"
)

// Type classifies a notification.
type Type string

const (
	TypeDueDate    Type = "DUE_DATE"
	TypeOverdue    Type = "OVERDUE"
	TypeNewArrival Type = "NEW_ARRIVAL"
	TypeGeneral    Type = "GENERAL"
)

// Notification is a message persisted for a member to read later. A nil
// MemberID marks a general notice visible to everyone. Records are only
// ever mutated to flip the read flag.
type Notification struct {
	ID        uuid.UUID  `db:"id" json:"id"`
	MemberID  *uuid.UUID `db:"member_id" json:"member_id,omitempty"`
	Type      Type       `db:"type" json:"type"`
	Title     string     `db:"title" json:"title"`
	Message   string     `db:"message" json:"message"`
	Read      bool       `db:"is_read" json:"is_read"`
	CreatedAt time.Time  `db:"created_at" json:"created_at"`

	// Member is an optional reference, populated only by an explicit fetch.
	Member *membership.Member `db:"-" json:"member,omitempty"`
}
