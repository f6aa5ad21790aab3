// internal/store/memory/notifications.go
package memory

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"libralend/internal/notification"
)

// NotificationStore keeps notifications in a map keyed by id. FailCreate,
// when set, lets tests inject per-record delivery failures.
type NotificationStore struct {
	c          *core
	FailCreate func(n *notification.Notification) error
}

func (s *NotificationStore) Create(ctx context.Context, n *notification.Notification) error {
	if s.FailCreate != nil {
		if err := s.FailCreate(n); err != nil {
			return err
		}
	}
	defer s.c.lock()()
	s.c.state.notifications[n.ID] = *n
	return nil
}

func (s *NotificationStore) MarkRead(ctx context.Context, id uuid.UUID) (bool, error) {
	defer s.c.lock()()
	n, ok := s.c.state.notifications[id]
	if !ok {
		return false, nil
	}
	n.Read = true
	s.c.state.notifications[id] = n
	return true, nil
}

func (s *NotificationStore) ListByMember(ctx context.Context, memberID uuid.UUID) ([]notification.Notification, error) {
	defer s.c.rlock()()
	return s.collect(func(n notification.Notification) bool {
		return n.MemberID != nil && *n.MemberID == memberID
	}), nil
}

func (s *NotificationStore) ListUnreadByMember(ctx context.Context, memberID uuid.UUID) ([]notification.Notification, error) {
	defer s.c.rlock()()
	return s.collect(func(n notification.Notification) bool {
		return n.MemberID != nil && *n.MemberID == memberID && !n.Read
	}), nil
}

func (s *NotificationStore) collect(keep func(notification.Notification) bool) []notification.Notification {
	out := make([]notification.Notification, 0)
	for _, n := range s.c.state.notifications {
		if keep(n) {
			out = append(out, n)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}
