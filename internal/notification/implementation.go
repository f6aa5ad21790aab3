// internal/notification/implementation.go
package notification

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"libralend/internal/liberr"
	"libralend/internal/pool"
)

// dispatcher implements the Dispatcher interface.
type dispatcher struct {
	notifications NotificationStore
	members       MemberStore
	transactions  TransactionStore
	books         BookStore
	pool          *pool.Pool
	now           func() time.Time
	tracer        trace.Tracer
}

// NewDispatcher creates a dispatcher backed by the shared worker pool.
func NewDispatcher(notifications NotificationStore, members MemberStore, transactions TransactionStore, books BookStore, p *pool.Pool) Dispatcher {
	return &dispatcher{
		notifications: notifications,
		members:       members,
		transactions:  transactions,
		books:         books,
		pool:          p,
		now:           time.Now,
		tracer:        otel.Tracer("libralend/notification"),
	}
}

// SendOne creates a single notification synchronously.
func (d *dispatcher) SendOne(ctx context.Context, memberID uuid.UUID, typ Type, title, message string) (*Notification, error) {
	n, err := d.create(ctx, &memberID, typ, title, message)
	if err != nil {
		return nil, fmt.Errorf("failed to send notification: %w", err)
	}
	return n, nil
}

func (d *dispatcher) create(ctx context.Context, memberID *uuid.UUID, typ Type, title, message string) (*Notification, error) {
	n := &Notification{
		ID:        uuid.New(),
		MemberID:  memberID,
		Type:      typ,
		Title:     title,
		Message:   message,
		CreatedAt: d.now(),
	}
	if err := d.notifications.Create(ctx, n); err != nil {
		failedTotal.Inc()
		return nil, err
	}
	createdTotal.WithLabelValues(string(typ)).Inc()
	return n, nil
}

// Broadcast fans one message out to all active non-librarian members over
// the worker pool and joins on the whole batch. Per-member failures are
// logged and counted, never fatal to the batch.
func (d *dispatcher) Broadcast(ctx context.Context, typ Type, title, message string) (int, error) {
	ctx, span := d.tracer.Start(ctx, "notification.Broadcast")
	defer span.End()

	members, err := d.members.ListActiveNonLibrarians(ctx)
	if err != nil {
		span.RecordError(err)
		return 0, fmt.Errorf("failed to list members: %w", err)
	}

	tasks := make([]*pool.Task, 0, len(members))
	for _, m := range members {
		m := m
		task, err := d.pool.Submit(ctx, func(ctx context.Context) error {
			if _, err := d.create(ctx, &m.ID, typ, title, message); err != nil {
				log.Printf("broadcast: failed to notify %s: %v", m.Email, err)
				return err
			}
			return nil
		})
		if err != nil {
			return 0, err
		}
		tasks = append(tasks, task)
	}

	failed := 0
	for _, task := range tasks {
		if err := task.Wait(ctx); err != nil {
			if ctx.Err() != nil {
				return failed, ctx.Err()
			}
			failed++
		}
	}
	return failed, nil
}

// DispatchDueSoon scans active loans due tomorrow and creates a DUE_DATE
// reminder per affected member. It returns immediately; the work runs on
// the pool under a context detached from the caller's.
func (d *dispatcher) DispatchDueSoon(ctx context.Context) (*pool.Task, error) {
	return d.pool.Submit(context.WithoutCancel(ctx), func(ctx context.Context) error {
		tomorrow := d.now().AddDate(0, 0, 1)

		active, err := d.transactions.ListActive(ctx)
		if err != nil {
			return fmt.Errorf("failed to list active loans: %w", err)
		}

		failed := 0
		for i := range active {
			txn := &active[i]
			if !sameDay(txn.DueDate, tomorrow) {
				continue
			}
			member, err := d.members.Get(ctx, txn.MemberID)
			if err != nil || member == nil {
				continue
			}
			message := fmt.Sprintf("Your book %q is due tomorrow (%s). Please return it on time.",
				d.bookTitle(ctx, txn.BookID), txn.DueDate.Format("2006-01-02"))
			if _, err := d.create(ctx, &member.ID, TypeDueDate, "Book Due Tomorrow", message); err != nil {
				log.Printf("due-soon: failed to notify %s: %v", member.Email, err)
				failed++
			}
		}
		if failed > 0 {
			return fmt.Errorf("%d due-date reminders failed", failed)
		}
		return nil
	})
}

// DispatchOverdue scans overdue loans and creates an OVERDUE notice per
// affected member, with the same non-blocking contract as DispatchDueSoon.
func (d *dispatcher) DispatchOverdue(ctx context.Context) (*pool.Task, error) {
	return d.pool.Submit(context.WithoutCancel(ctx), func(ctx context.Context) error {
		today := d.now()

		active, err := d.transactions.ListActive(ctx)
		if err != nil {
			return fmt.Errorf("failed to list active loans: %w", err)
		}

		failed := 0
		for i := range active {
			txn := &active[i]
			if !txn.IsOverdue(today) {
				continue
			}
			member, err := d.members.Get(ctx, txn.MemberID)
			if err != nil || member == nil {
				continue
			}
			message := fmt.Sprintf("Your book %q was due on %s. Please return it immediately to avoid additional fines.",
				d.bookTitle(ctx, txn.BookID), txn.DueDate.Format("2006-01-02"))
			if _, err := d.create(ctx, &member.ID, TypeOverdue, "Overdue Book", message); err != nil {
				log.Printf("overdue: failed to notify %s: %v", member.Email, err)
				failed++
			}
		}
		if failed > 0 {
			return fmt.Errorf("%d overdue notifications failed", failed)
		}
		return nil
	})
}

func (d *dispatcher) ListByMember(ctx context.Context, memberID uuid.UUID) ([]Notification, error) {
	return d.notifications.ListByMember(ctx, memberID)
}

func (d *dispatcher) ListUnreadByMember(ctx context.Context, memberID uuid.UUID) ([]Notification, error) {
	return d.notifications.ListUnreadByMember(ctx, memberID)
}

func (d *dispatcher) MarkRead(ctx context.Context, id uuid.UUID) error {
	ok, err := d.notifications.MarkRead(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to mark notification read: %w", err)
	}
	if !ok {
		return liberr.NotFound("notification", id.String())
	}
	return nil
}

// bookTitle resolves a title for message text, falling back to a generic
// label when the book cannot be loaded.
func (d *dispatcher) bookTitle(ctx context.Context, id uuid.UUID) string {
	book, err := d.books.Get(ctx, id)
	if err != nil || book == nil {
		return "Book"
	}
	return book.Title
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
