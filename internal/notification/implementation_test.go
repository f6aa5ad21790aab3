// internal/notification/implementation_test.go
package notification_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"libralend/internal/catalog"
	"libralend/internal/lending"
	"libralend/internal/liberr"
	"libralend/internal/membership"
	"libralend/internal/notification"
	"libralend/internal/pool"
	"libralend/internal/store/memory"
)

type fixture struct {
	store      *memory.Store
	pool       *pool.Pool
	dispatcher notification.Dispatcher
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := memory.New()
	p := pool.New(4)
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = p.Shutdown(ctx)
	})
	return &fixture{
		store: store,
		pool:  p,
		dispatcher: notification.NewDispatcher(
			store.Notifications, store.Members, store.Loans, store.Books, p),
	}
}

func (f *fixture) seedMember(t *testing.T, role membership.Role) *membership.Member {
	t.Helper()
	m := &membership.Member{
		ID:           uuid.New(),
		Name:         "Grace Hopper",
		Email:        uuid.NewString() + "@example.com",
		MembershipID: uuid.NewString(),
		Status:       membership.StatusActive,
		Role:         role,
	}
	require.NoError(t, f.store.Members.Create(context.Background(), m))
	return m
}

func (f *fixture) seedLoan(t *testing.T, memberID uuid.UUID, due time.Time) *lending.Transaction {
	t.Helper()
	book := &catalog.Book{
		ID:          uuid.New(),
		ISBN:        uuid.NewString(),
		Title:       "Structure and Interpretation",
		TotalCopies: 1,
		Status:      catalog.StatusUnavailable,
	}
	require.NoError(t, f.store.Books.Create(context.Background(), book))
	txn := &lending.Transaction{
		ID:         uuid.New(),
		BookID:     book.ID,
		MemberID:   memberID,
		Type:       lending.TypeBorrow,
		BorrowDate: due.AddDate(0, 0, -14),
		DueDate:    due,
		FineAmount: decimal.Zero,
		Status:     lending.StatusActive,
	}
	require.NoError(t, f.store.Loans.Create(context.Background(), txn))
	return txn
}

func Test_SendOne_PersistsNotification(t *testing.T) {
	f := newFixture(t)
	member := f.seedMember(t, membership.RoleMember)

	n, err := f.dispatcher.SendOne(context.Background(), member.ID,
		notification.TypeGeneral, "Closed Friday", "The library closes early this Friday.")

	require.NoError(t, err)
	require.NotNil(t, n.MemberID)
	assert.Equal(t, member.ID, *n.MemberID)
	assert.False(t, n.Read)

	stored, err := f.dispatcher.ListByMember(context.Background(), member.ID)
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, "Closed Friday", stored[0].Title)
}

func Test_Broadcast_ReachesEveryActiveMember(t *testing.T) {
	// arrange: 50 active members, one inactive, one librarian
	f := newFixture(t)
	members := make([]*membership.Member, 50)
	for i := range members {
		members[i] = f.seedMember(t, membership.RoleMember)
	}
	librarian := f.seedMember(t, membership.RoleLibrarian)
	inactive := f.seedMember(t, membership.RoleMember)
	inactive.Status = membership.StatusInactive
	require.NoError(t, f.store.Members.Update(context.Background(), inactive))

	// act
	failed, err := f.dispatcher.Broadcast(context.Background(),
		notification.TypeNewArrival, "New Arrivals", "Fresh titles are on the shelves.")

	// assert
	require.NoError(t, err)
	assert.Zero(t, failed)
	for _, m := range members {
		got, err := f.dispatcher.ListByMember(context.Background(), m.ID)
		require.NoError(t, err)
		assert.Len(t, got, 1)
	}
	got, err := f.dispatcher.ListByMember(context.Background(), librarian.ID)
	require.NoError(t, err)
	assert.Empty(t, got, "librarians are not broadcast targets")
	got, err = f.dispatcher.ListByMember(context.Background(), inactive.ID)
	require.NoError(t, err)
	assert.Empty(t, got, "inactive members are not broadcast targets")
}

func Test_Broadcast_CountsFailuresWithoutAborting(t *testing.T) {
	// arrange: delivery fails for three specific members
	f := newFixture(t)
	members := make([]*membership.Member, 50)
	for i := range members {
		members[i] = f.seedMember(t, membership.RoleMember)
	}
	doomed := map[uuid.UUID]bool{
		members[3].ID:  true,
		members[17].ID: true,
		members[42].ID: true,
	}
	f.store.Notifications.FailCreate = func(n *notification.Notification) error {
		if n.MemberID != nil && doomed[*n.MemberID] {
			return fmt.Errorf("smtp relay unreachable")
		}
		return nil
	}

	// act
	failed, err := f.dispatcher.Broadcast(context.Background(),
		notification.TypeGeneral, "Maintenance", "The catalog will be briefly offline tonight.")

	// assert
	require.NoError(t, err)
	assert.Equal(t, 3, failed)

	delivered := 0
	for _, m := range members {
		got, err := f.dispatcher.ListByMember(context.Background(), m.ID)
		require.NoError(t, err)
		delivered += len(got)
	}
	assert.Equal(t, 47, delivered)
}

func Test_DispatchDueSoon_RemindsMembersDueTomorrow(t *testing.T) {
	// arrange: one loan due tomorrow, one due next week
	f := newFixture(t)
	dueTomorrow := f.seedMember(t, membership.RoleMember)
	dueLater := f.seedMember(t, membership.RoleMember)
	f.seedLoan(t, dueTomorrow.ID, time.Now().AddDate(0, 0, 1))
	f.seedLoan(t, dueLater.ID, time.Now().AddDate(0, 0, 7))

	// act
	task, err := f.dispatcher.DispatchDueSoon(context.Background())
	require.NoError(t, err)
	require.NoError(t, task.Wait(context.Background()))

	// assert
	got, err := f.dispatcher.ListByMember(context.Background(), dueTomorrow.ID)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, notification.TypeDueDate, got[0].Type)
	assert.Equal(t, "Book Due Tomorrow", got[0].Title)
	assert.Contains(t, got[0].Message, "Structure and Interpretation")
	assert.Contains(t, got[0].Message, "due tomorrow")

	none, err := f.dispatcher.ListByMember(context.Background(), dueLater.ID)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func Test_DispatchOverdue_NotifiesOverdueLoansOnly(t *testing.T) {
	// arrange: one overdue loan, one still current
	f := newFixture(t)
	overdue := f.seedMember(t, membership.RoleMember)
	current := f.seedMember(t, membership.RoleMember)
	f.seedLoan(t, overdue.ID, time.Now().AddDate(0, 0, -3))
	f.seedLoan(t, current.ID, time.Now().AddDate(0, 0, 3))

	// act
	task, err := f.dispatcher.DispatchOverdue(context.Background())
	require.NoError(t, err)
	require.NoError(t, task.Wait(context.Background()))

	// assert
	got, err := f.dispatcher.ListByMember(context.Background(), overdue.ID)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, notification.TypeOverdue, got[0].Type)
	assert.Equal(t, "Overdue Book", got[0].Title)
	assert.Contains(t, got[0].Message, "return it immediately")

	none, err := f.dispatcher.ListByMember(context.Background(), current.ID)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func Test_DispatchDueSoon_SurvivesCallerCancellation(t *testing.T) {
	f := newFixture(t)
	member := f.seedMember(t, membership.RoleMember)
	f.seedLoan(t, member.ID, time.Now().AddDate(0, 0, 1))

	ctx, cancel := context.WithCancel(context.Background())
	task, err := f.dispatcher.DispatchDueSoon(ctx)
	require.NoError(t, err)
	cancel()

	require.NoError(t, task.Wait(context.Background()))
	got, err := f.dispatcher.ListByMember(context.Background(), member.ID)
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func Test_MarkRead_FlipsFlagOnce(t *testing.T) {
	f := newFixture(t)
	member := f.seedMember(t, membership.RoleMember)
	n, err := f.dispatcher.SendOne(context.Background(), member.ID,
		notification.TypeGeneral, "Hello", "Welcome to the library.")
	require.NoError(t, err)

	unread, err := f.dispatcher.ListUnreadByMember(context.Background(), member.ID)
	require.NoError(t, err)
	require.Len(t, unread, 1)

	require.NoError(t, f.dispatcher.MarkRead(context.Background(), n.ID))

	unread, err = f.dispatcher.ListUnreadByMember(context.Background(), member.ID)
	require.NoError(t, err)
	assert.Empty(t, unread)

	all, err := f.dispatcher.ListByMember(context.Background(), member.ID)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.True(t, all[0].Read)
}

func Test_MarkRead_UnknownNotification_ReturnsNotFound(t *testing.T) {
	f := newFixture(t)

	err := f.dispatcher.MarkRead(context.Background(), uuid.New())

	assert.True(t, liberr.IsNotFound(err))
}
