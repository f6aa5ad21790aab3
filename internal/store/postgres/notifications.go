// internal/store/postgres/notifications.go
package postgres

import (
	"context"

	"github.com/doug-martin/goqu/v9"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"libralend/internal/liberr"
	"libralend/internal/notification"
)

const notificationsTable = "notifications"

// NotificationStore persists notifications in the notifications table.
type NotificationStore struct {
	ext sqlx.ExtContext
}

func (s *NotificationStore) Create(ctx context.Context, n *notification.Notification) error {
	query, args, err := builder().Insert(notificationsTable).Rows(n).Prepared(true).ToSQL()
	if err != nil {
		return liberr.Storage("build notification insert", err)
	}
	if _, err := s.ext.ExecContext(ctx, query, args...); err != nil {
		return liberr.Storage("insert notification", err)
	}
	return nil
}

func (s *NotificationStore) MarkRead(ctx context.Context, id uuid.UUID) (bool, error) {
	query, args, err := builder().Update(notificationsTable).
		Set(goqu.Record{"is_read": true}).
		Where(goqu.Ex{"id": id}).
		Prepared(true).ToSQL()
	if err != nil {
		return false, liberr.Storage("build notification update", err)
	}
	res, err := s.ext.ExecContext(ctx, query, args...)
	if err != nil {
		return false, liberr.Storage("mark notification read", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, liberr.Storage("mark notification read", err)
	}
	return n > 0, nil
}

func (s *NotificationStore) ListByMember(ctx context.Context, memberID uuid.UUID) ([]notification.Notification, error) {
	return s.selectWhere(ctx, goqu.Ex{"member_id": memberID})
}

func (s *NotificationStore) ListUnreadByMember(ctx context.Context, memberID uuid.UUID) ([]notification.Notification, error) {
	return s.selectWhere(ctx, goqu.Ex{"member_id": memberID, "is_read": false})
}

func (s *NotificationStore) selectWhere(ctx context.Context, where goqu.Expression) ([]notification.Notification, error) {
	query, args, err := builder().From(notificationsTable).
		Where(where).
		Order(goqu.C("created_at").Desc()).
		Prepared(true).ToSQL()
	if err != nil {
		return nil, liberr.Storage("build notification list", err)
	}
	out := make([]notification.Notification, 0)
	if err := sqlx.SelectContext(ctx, s.ext, &out, query, args...); err != nil {
		return nil, liberr.Storage("list notifications", err)
	}
	return out, nil
}
