// internal/store/postgres/books.go
package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/doug-martin/goqu/v9"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"libralend/internal/catalog"
	"libralend/internal/liberr"
)

const booksTable = "books"

// BookStore persists books in the books table.
type BookStore struct {
	ext sqlx.ExtContext
}

func (s *BookStore) Get(ctx context.Context, id uuid.UUID) (*catalog.Book, error) {
	return s.getWhere(ctx, goqu.Ex{"id": id})
}

func (s *BookStore) GetByISBN(ctx context.Context, isbn string) (*catalog.Book, error) {
	return s.getWhere(ctx, goqu.Ex{"isbn": isbn})
}

func (s *BookStore) getWhere(ctx context.Context, where goqu.Ex) (*catalog.Book, error) {
	query, args, err := builder().From(booksTable).Where(where).Prepared(true).ToSQL()
	if err != nil {
		return nil, liberr.Storage("build book select", err)
	}
	var b catalog.Book
	if err := sqlx.GetContext(ctx, s.ext, &b, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, liberr.Storage("select book", err)
	}
	return &b, nil
}

func (s *BookStore) Create(ctx context.Context, book *catalog.Book) error {
	query, args, err := builder().Insert(booksTable).Rows(book).Prepared(true).ToSQL()
	if err != nil {
		return liberr.Storage("build book insert", err)
	}
	if _, err := s.ext.ExecContext(ctx, query, args...); err != nil {
		return liberr.Storage("insert book", err)
	}
	return nil
}

func (s *BookStore) Update(ctx context.Context, book *catalog.Book) error {
	query, args, err := builder().Update(booksTable).
		Set(book).
		Where(goqu.Ex{"id": book.ID}).
		Prepared(true).ToSQL()
	if err != nil {
		return liberr.Storage("build book update", err)
	}
	if _, err := s.ext.ExecContext(ctx, query, args...); err != nil {
		return liberr.Storage("update book", err)
	}
	return nil
}

func (s *BookStore) Delete(ctx context.Context, id uuid.UUID) error {
	query, args, err := builder().Delete(booksTable).Where(goqu.Ex{"id": id}).Prepared(true).ToSQL()
	if err != nil {
		return liberr.Storage("build book delete", err)
	}
	if _, err := s.ext.ExecContext(ctx, query, args...); err != nil {
		return liberr.Storage("delete book", err)
	}
	return nil
}

func (s *BookStore) List(ctx context.Context) ([]catalog.Book, error) {
	return s.selectWhere(ctx, nil)
}

func (s *BookStore) Search(ctx context.Context, q string) ([]catalog.Book, error) {
	pattern := "%" + q + "%"
	return s.selectWhere(ctx, goqu.Or(
		goqu.C("title").ILike(pattern),
		goqu.C("author").ILike(pattern),
		goqu.C("genre").ILike(pattern),
		goqu.C("isbn").ILike(pattern),
	))
}

func (s *BookStore) ListAvailable(ctx context.Context) ([]catalog.Book, error) {
	return s.selectWhere(ctx, goqu.C("available_copies").Gt(0))
}

func (s *BookStore) selectWhere(ctx context.Context, where goqu.Expression) ([]catalog.Book, error) {
	stmt := builder().From(booksTable).Order(goqu.C("title").Asc())
	if where != nil {
		stmt = stmt.Where(where)
	}
	query, args, err := stmt.Prepared(true).ToSQL()
	if err != nil {
		return nil, liberr.Storage("build book list", err)
	}
	books := make([]catalog.Book, 0)
	if err := sqlx.SelectContext(ctx, s.ext, &books, query, args...); err != nil {
		return nil, liberr.Storage("list books", err)
	}
	return books, nil
}

// DecrementAvailable takes a copy only while one is left. The condition is
// part of the UPDATE so concurrent borrowers cannot both take the last copy.
func (s *BookStore) DecrementAvailable(ctx context.Context, id uuid.UUID) (bool, error) {
	const query = `
		UPDATE books
		SET available_copies = available_copies - 1,
		    status = CASE WHEN available_copies - 1 = 0 THEN 'UNAVAILABLE' ELSE status END
		WHERE id = $1 AND available_copies > 0`
	res, err := s.ext.ExecContext(ctx, query, id)
	if err != nil {
		return false, liberr.Storage("decrement available copies", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, liberr.Storage("decrement available copies", err)
	}
	return n > 0, nil
}

// IncrementAvailable returns a copy to the shelf, capped at the total.
func (s *BookStore) IncrementAvailable(ctx context.Context, id uuid.UUID) (bool, error) {
	const query = `
		UPDATE books
		SET available_copies = LEAST(available_copies + 1, total_copies),
		    status = 'AVAILABLE'
		WHERE id = $1`
	res, err := s.ext.ExecContext(ctx, query, id)
	if err != nil {
		return false, liberr.Storage("increment available copies", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, liberr.Storage("increment available copies", err)
	}
	return n > 0, nil
}
