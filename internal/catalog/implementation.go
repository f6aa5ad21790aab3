// internal/catalog/implementation.go
package catalog

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"libralend/internal/liberr"
)

// service implements the Service interface.
type service struct {
	books BookStore
}

// NewService creates a new catalog service instance.
func NewService(books BookStore) Service {
	return &service{books: books}
}

// Add validates and persists a new book. Availability starts at full stock.
func (s *service) Add(ctx context.Context, book *Book) (*Book, error) {
	if err := validate(book); err != nil {
		return nil, err
	}

	existing, err := s.books.GetByISBN(ctx, book.ISBN)
	if err != nil {
		return nil, fmt.Errorf("failed to check ISBN: %w", err)
	}
	if existing != nil {
		return nil, liberr.Validation("isbn", fmt.Sprintf("book with ISBN %s already exists", book.ISBN))
	}

	if book.ID == uuid.Nil {
		book.ID = uuid.New()
	}
	book.AvailableCopies = book.TotalCopies
	if book.AvailableCopies > 0 {
		book.Status = StatusAvailable
	} else {
		book.Status = StatusUnavailable
	}

	if err := s.books.Create(ctx, book); err != nil {
		return nil, fmt.Errorf("failed to add book: %w", err)
	}
	return book, nil
}

// Update modifies catalog fields of an existing book. Availability counters
// are owned by the lending lifecycle and are left untouched here.
func (s *service) Update(ctx context.Context, book *Book) error {
	if err := validate(book); err != nil {
		return err
	}

	current, err := s.books.Get(ctx, book.ID)
	if err != nil {
		return fmt.Errorf("failed to load book: %w", err)
	}
	if current == nil {
		return liberr.NotFound("book", book.ID.String())
	}

	book.AvailableCopies = current.AvailableCopies
	book.Status = current.Status
	if err := s.books.Update(ctx, book); err != nil {
		return fmt.Errorf("failed to update book: %w", err)
	}
	return nil
}

func (s *service) Remove(ctx context.Context, id uuid.UUID) error {
	current, err := s.books.Get(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to load book: %w", err)
	}
	if current == nil {
		return liberr.NotFound("book", id.String())
	}
	if current.AvailableCopies != current.TotalCopies {
		return liberr.Conflict(liberr.ReasonNotActive, "book has copies on loan")
	}
	if err := s.books.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to remove book: %w", err)
	}
	return nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*Book, error) {
	book, err := s.books.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get book: %w", err)
	}
	if book == nil {
		return nil, liberr.NotFound("book", id.String())
	}
	return book, nil
}

func (s *service) GetByISBN(ctx context.Context, isbn string) (*Book, error) {
	book, err := s.books.GetByISBN(ctx, isbn)
	if err != nil {
		return nil, fmt.Errorf("failed to get book: %w", err)
	}
	if book == nil {
		return nil, liberr.NotFound("book", isbn)
	}
	return book, nil
}

func (s *service) List(ctx context.Context) ([]Book, error) {
	return s.books.List(ctx)
}

func (s *service) Search(ctx context.Context, keyword string) ([]Book, error) {
	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		return s.books.List(ctx)
	}
	return s.books.Search(ctx, keyword)
}

func (s *service) ListAvailable(ctx context.Context) ([]Book, error) {
	return s.books.ListAvailable(ctx)
}

func validate(book *Book) error {
	if strings.TrimSpace(book.ISBN) == "" {
		return liberr.Validation("isbn", "must not be empty")
	}
	if strings.TrimSpace(book.Title) == "" {
		return liberr.Validation("title", "must not be empty")
	}
	if book.TotalCopies < 0 {
		return liberr.Validation("total_copies", "must not be negative")
	}
	return nil
}
