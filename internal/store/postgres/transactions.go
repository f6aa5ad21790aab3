// internal/store/postgres/transactions.go
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/doug-martin/goqu/v9"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"libralend/internal/lending"
	"libralend/internal/liberr"
)

const transactionsTable = "transactions"

// TransactionStore persists loan transactions in the transactions table.
type TransactionStore struct {
	ext sqlx.ExtContext
}

func (s *TransactionStore) Get(ctx context.Context, id uuid.UUID) (*lending.Transaction, error) {
	query, args, err := builder().From(transactionsTable).Where(goqu.Ex{"id": id}).Prepared(true).ToSQL()
	if err != nil {
		return nil, liberr.Storage("build transaction select", err)
	}
	var t lending.Transaction
	if err := sqlx.GetContext(ctx, s.ext, &t, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, liberr.Storage("select transaction", err)
	}
	return &t, nil
}

func (s *TransactionStore) Create(ctx context.Context, txn *lending.Transaction) error {
	query, args, err := builder().Insert(transactionsTable).Rows(txn).Prepared(true).ToSQL()
	if err != nil {
		return liberr.Storage("build transaction insert", err)
	}
	if _, err := s.ext.ExecContext(ctx, query, args...); err != nil {
		return liberr.Storage("insert transaction", err)
	}
	return nil
}

func (s *TransactionStore) Update(ctx context.Context, txn *lending.Transaction) error {
	query, args, err := builder().Update(transactionsTable).
		Set(txn).
		Where(goqu.Ex{"id": txn.ID}).
		Prepared(true).ToSQL()
	if err != nil {
		return liberr.Storage("build transaction update", err)
	}
	if _, err := s.ext.ExecContext(ctx, query, args...); err != nil {
		return liberr.Storage("update transaction", err)
	}
	return nil
}

func (s *TransactionStore) List(ctx context.Context) ([]lending.Transaction, error) {
	return s.selectWhere(ctx, nil)
}

func (s *TransactionStore) ListByMember(ctx context.Context, memberID uuid.UUID) ([]lending.Transaction, error) {
	return s.selectWhere(ctx, goqu.Ex{"member_id": memberID})
}

func (s *TransactionStore) ListActiveByMember(ctx context.Context, memberID uuid.UUID) ([]lending.Transaction, error) {
	return s.selectWhere(ctx, goqu.Ex{
		"member_id": memberID,
		"status":    string(lending.StatusActive),
	})
}

func (s *TransactionStore) ListActive(ctx context.Context) ([]lending.Transaction, error) {
	return s.selectWhere(ctx, goqu.Ex{"status": string(lending.StatusActive)})
}

func (s *TransactionStore) ListByDateRange(ctx context.Context, start, end time.Time) ([]lending.Transaction, error) {
	return s.selectWhere(ctx, goqu.And(
		goqu.C("borrow_date").Gte(start),
		goqu.C("borrow_date").Lt(end.AddDate(0, 0, 1)),
	))
}

func (s *TransactionStore) selectWhere(ctx context.Context, where goqu.Expression) ([]lending.Transaction, error) {
	stmt := builder().From(transactionsTable).Order(goqu.C("borrow_date").Desc())
	if where != nil {
		stmt = stmt.Where(where)
	}
	query, args, err := stmt.Prepared(true).ToSQL()
	if err != nil {
		return nil, liberr.Storage("build transaction list", err)
	}
	txns := make([]lending.Transaction, 0)
	if err := sqlx.SelectContext(ctx, s.ext, &txns, query, args...); err != nil {
		return nil, liberr.Storage("list transactions", err)
	}
	return txns, nil
}
