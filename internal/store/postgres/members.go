// internal/store/postgres/members.go
package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/doug-martin/goqu/v9"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"libralend/internal/liberr"
	"libralend/internal/membership"
)

const membersTable = "members"

// MemberStore persists members in the members table.
type MemberStore struct {
	ext sqlx.ExtContext
}

func (s *MemberStore) Get(ctx context.Context, id uuid.UUID) (*membership.Member, error) {
	return s.getWhere(ctx, goqu.Ex{"id": id})
}

func (s *MemberStore) GetByEmail(ctx context.Context, email string) (*membership.Member, error) {
	return s.getWhere(ctx, goqu.Ex{"email": email})
}

func (s *MemberStore) GetByMembershipID(ctx context.Context, membershipID string) (*membership.Member, error) {
	return s.getWhere(ctx, goqu.Ex{"membership_id": membershipID})
}

func (s *MemberStore) getWhere(ctx context.Context, where goqu.Ex) (*membership.Member, error) {
	query, args, err := builder().From(membersTable).Where(where).Prepared(true).ToSQL()
	if err != nil {
		return nil, liberr.Storage("build member select", err)
	}
	var m membership.Member
	if err := sqlx.GetContext(ctx, s.ext, &m, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, liberr.Storage("select member", err)
	}
	return &m, nil
}

func (s *MemberStore) Create(ctx context.Context, member *membership.Member) error {
	query, args, err := builder().Insert(membersTable).Rows(member).Prepared(true).ToSQL()
	if err != nil {
		return liberr.Storage("build member insert", err)
	}
	if _, err := s.ext.ExecContext(ctx, query, args...); err != nil {
		return liberr.Storage("insert member", err)
	}
	return nil
}

func (s *MemberStore) Update(ctx context.Context, member *membership.Member) error {
	query, args, err := builder().Update(membersTable).
		Set(member).
		Where(goqu.Ex{"id": member.ID}).
		Prepared(true).ToSQL()
	if err != nil {
		return liberr.Storage("build member update", err)
	}
	if _, err := s.ext.ExecContext(ctx, query, args...); err != nil {
		return liberr.Storage("update member", err)
	}
	return nil
}

func (s *MemberStore) List(ctx context.Context) ([]membership.Member, error) {
	return s.selectWhere(ctx, nil)
}

func (s *MemberStore) ListActiveNonLibrarians(ctx context.Context) ([]membership.Member, error) {
	return s.selectWhere(ctx, goqu.And(
		goqu.C("status").Eq(string(membership.StatusActive)),
		goqu.C("role").Neq(string(membership.RoleLibrarian)),
	))
}

func (s *MemberStore) selectWhere(ctx context.Context, where goqu.Expression) ([]membership.Member, error) {
	stmt := builder().From(membersTable).Order(goqu.C("name").Asc())
	if where != nil {
		stmt = stmt.Where(where)
	}
	query, args, err := stmt.Prepared(true).ToSQL()
	if err != nil {
		return nil, liberr.Storage("build member list", err)
	}
	members := make([]membership.Member, 0)
	if err := sqlx.SelectContext(ctx, s.ext, &members, query, args...); err != nil {
		return nil, liberr.Storage("list members", err)
	}
	return members, nil
}
