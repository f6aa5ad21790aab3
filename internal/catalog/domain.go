// internal/catalog/domain.go
package catalog

import (
	"time"

	"github.com/google/uuid"
)

// Status tracks whether any copy of a book can currently be borrowed.
// Invariant: StatusUnavailable if and only if AvailableCopies is zero.
type Status string

const (
	StatusAvailable   Status = "AVAILABLE"
	StatusUnavailable Status = "UNAVAILABLE"
)

// Book represents a title held by the library, with copy-level availability.
type Book struct {
	ID              uuid.UUID  `db:"id" json:"id"`
	ISBN            string     `db:"isbn" json:"isbn"`
	Title           string     `db:"title" json:"title"`
	Author          string     `db:"author" json:"author"`
	Genre           string     `db:"genre" json:"genre,omitempty"`
	Publisher       string     `db:"publisher" json:"publisher,omitempty"`
	PublicationDate *time.Time `db:"publication_date" json:"publication_date,omitempty"`
	TotalCopies     int        `db:"total_copies" json:"total_copies"`
	AvailableCopies int        `db:"available_copies" json:"available_copies"`
	Status          Status     `db:"status" json:"status"`
	Description     string     `db:"description" json:"description,omitempty"`
}

// IsAvailable reports whether at least one copy can be borrowed right now.
func (b *Book) IsAvailable() bool {
	return b.Status == StatusAvailable && b.AvailableCopies > 0
}
