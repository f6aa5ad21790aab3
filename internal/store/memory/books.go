// internal/store/memory/books.go
package memory

import (
	"context"
	"sort"
	"strings"

	"github.com/google/uuid"

	"libralend/internal/catalog"
)

// BookStore keeps books in a map keyed by id.
type BookStore struct {
	c *core
}

func (s *BookStore) Get(ctx context.Context, id uuid.UUID) (*catalog.Book, error) {
	defer s.c.rlock()()
	b, ok := s.c.state.books[id]
	if !ok {
		return nil, nil
	}
	return &b, nil
}

func (s *BookStore) GetByISBN(ctx context.Context, isbn string) (*catalog.Book, error) {
	defer s.c.rlock()()
	for _, b := range s.c.state.books {
		if b.ISBN == isbn {
			b := b
			return &b, nil
		}
	}
	return nil, nil
}

func (s *BookStore) Create(ctx context.Context, book *catalog.Book) error {
	defer s.c.lock()()
	s.c.state.books[book.ID] = *book
	return nil
}

func (s *BookStore) Update(ctx context.Context, book *catalog.Book) error {
	defer s.c.lock()()
	s.c.state.books[book.ID] = *book
	return nil
}

func (s *BookStore) Delete(ctx context.Context, id uuid.UUID) error {
	defer s.c.lock()()
	delete(s.c.state.books, id)
	return nil
}

func (s *BookStore) List(ctx context.Context) ([]catalog.Book, error) {
	defer s.c.rlock()()
	return s.collect(func(catalog.Book) bool { return true }), nil
}

func (s *BookStore) Search(ctx context.Context, query string) ([]catalog.Book, error) {
	defer s.c.rlock()()
	q := strings.ToLower(query)
	return s.collect(func(b catalog.Book) bool {
		return strings.Contains(strings.ToLower(b.Title), q) ||
			strings.Contains(strings.ToLower(b.Author), q) ||
			strings.Contains(strings.ToLower(b.Genre), q) ||
			strings.Contains(strings.ToLower(b.ISBN), q)
	}), nil
}

func (s *BookStore) ListAvailable(ctx context.Context) ([]catalog.Book, error) {
	defer s.c.rlock()()
	return s.collect(func(b catalog.Book) bool { return b.IsAvailable() }), nil
}

// DecrementAvailable takes a copy only while one is left, flipping the
// status to UNAVAILABLE when the last copy goes out.
func (s *BookStore) DecrementAvailable(ctx context.Context, id uuid.UUID) (bool, error) {
	defer s.c.lock()()
	b, ok := s.c.state.books[id]
	if !ok || b.AvailableCopies <= 0 {
		return false, nil
	}
	b.AvailableCopies--
	if b.AvailableCopies == 0 {
		b.Status = catalog.StatusUnavailable
	}
	s.c.state.books[id] = b
	return true, nil
}

// IncrementAvailable returns a copy to the shelf, capped at the total.
func (s *BookStore) IncrementAvailable(ctx context.Context, id uuid.UUID) (bool, error) {
	defer s.c.lock()()
	b, ok := s.c.state.books[id]
	if !ok {
		return false, nil
	}
	if b.AvailableCopies < b.TotalCopies {
		b.AvailableCopies++
	}
	b.Status = catalog.StatusAvailable
	s.c.state.books[id] = b
	return true, nil
}

func (s *BookStore) collect(keep func(catalog.Book) bool) []catalog.Book {
	out := make([]catalog.Book, 0)
	for _, b := range s.c.state.books {
		if keep(b) {
			out = append(out, b)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Title < out[j].Title })
	return out
}
