// internal/catalog/service.go
package catalog

import (
	"context"

	"github.com/google/uuid"
)

// BookStore is the persistence port the catalog service depends on.
// Lookups return (nil, nil) when the book does not exist.
type BookStore interface {
	Get(ctx context.Context, id uuid.UUID) (*Book, error)
	GetByISBN(ctx context.Context, isbn string) (*Book, error)
	Create(ctx context.Context, book *Book) error
	Update(ctx context.Context, book *Book) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context) ([]Book, error)
	Search(ctx context.Context, keyword string) ([]Book, error)
	ListAvailable(ctx context.Context) ([]Book, error)
}

// Service defines the interface for the catalog service.
type Service interface {
	Add(ctx context.Context, book *Book) (*Book, error)
	Update(ctx context.Context, book *Book) error
	Remove(ctx context.Context, id uuid.UUID) error
	Get(ctx context.Context, id uuid.UUID) (*Book, error)
	GetByISBN(ctx context.Context, isbn string) (*Book, error)
	List(ctx context.Context) ([]Book, error)
	Search(ctx context.Context, keyword string) ([]Book, error)
	ListAvailable(ctx context.Context) ([]Book, error)
}
