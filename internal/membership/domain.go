// internal/membership/domain.go
package membership

import (
	"time"

	"github.com/google/uuid"
)

// Status of a member account.
type Status string

const (
	StatusActive   Status = "ACTIVE"
	StatusInactive Status = "INACTIVE"
)

// Role distinguishes regular members from librarians. Librarians never
// receive broadcast notifications.
type Role string

const (
	RoleMember    Role = "MEMBER"
	RoleLibrarian Role = "LIBRARIAN"
)

// Member represents a registered library member.
type Member struct {
	ID               uuid.UUID `db:"id" json:"id"`
	Name             string    `db:"name" json:"name"`
	Email            string    `db:"email" json:"email"`
	MembershipID     string    `db:"membership_id" json:"membership_id"`
	Phone            string    `db:"phone" json:"phone,omitempty"`
	Address          string    `db:"address" json:"address,omitempty"`
	PasswordHash     string    `db:"password_hash" json:"-"`
	RegistrationDate time.Time `db:"registration_date" json:"registration_date"`
	Status           Status    `db:"status" json:"status"`
	Role             Role      `db:"role" json:"role"`
}

// IsActive reports whether the member may borrow books.
func (m *Member) IsActive() bool {
	return m.Status == StatusActive
}
