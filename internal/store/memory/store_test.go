// internal/store/memory/store_test.go
package memory_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"libralend/internal/catalog"
	"libralend/internal/lending"
	"libralend/internal/membership"
	"libralend/internal/store/memory"
)

func Test_InTx_SerializesAgainstDirectAccess(t *testing.T) {
	store := memory.New()
	book := &catalog.Book{
		ID: uuid.New(), ISBN: "978-1", Title: "Dune",
		TotalCopies: 1, AvailableCopies: 1, Status: catalog.StatusAvailable,
	}
	require.NoError(t, store.Books.Create(context.Background(), book))

	err := store.InTx(context.Background(), func(books lending.BookStore, _ lending.MemberStore, _ lending.TransactionStore) error {
		ok, err := books.DecrementAvailable(context.Background(), book.ID)
		require.NoError(t, err)
		require.True(t, ok)
		return nil
	})
	require.NoError(t, err)

	got, err := store.Books.Get(context.Background(), book.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, got.AvailableCopies)
	assert.Equal(t, catalog.StatusUnavailable, got.Status)
}

func Test_DecrementAvailable_StopsAtZero(t *testing.T) {
	store := memory.New()
	book := &catalog.Book{
		ID: uuid.New(), ISBN: "978-2", Title: "Hyperion",
		TotalCopies: 1, AvailableCopies: 1, Status: catalog.StatusAvailable,
	}
	require.NoError(t, store.Books.Create(context.Background(), book))

	ok, err := store.Books.DecrementAvailable(context.Background(), book.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = store.Books.DecrementAvailable(context.Background(), book.ID)
	require.NoError(t, err)
	assert.False(t, ok, "no copy left to take")
}

func Test_IncrementAvailable_CapsAtTotal(t *testing.T) {
	store := memory.New()
	book := &catalog.Book{
		ID: uuid.New(), ISBN: "978-3", Title: "SICP",
		TotalCopies: 2, AvailableCopies: 2, Status: catalog.StatusAvailable,
	}
	require.NoError(t, store.Books.Create(context.Background(), book))

	ok, err := store.Books.IncrementAvailable(context.Background(), book.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	got, err := store.Books.Get(context.Background(), book.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, got.AvailableCopies)
}

// Property: no interleaving of borrows and returns can push a book's
// available copies below zero or above its total, and UNAVAILABLE tracks
// zero availability exactly.
func Test_Availability_Invariant(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		store := memory.New()
		ctx := context.Background()

		total := rapid.IntRange(1, 5).Draw(t, "totalCopies")
		book := &catalog.Book{
			ID: uuid.New(), ISBN: "978-x", Title: "Property Book",
			TotalCopies: total, AvailableCopies: total, Status: catalog.StatusAvailable,
		}
		require.NoError(t, store.Books.Create(ctx, book))

		member := &membership.Member{
			ID: uuid.New(), Name: "Ada", Email: "ada@example.com",
			MembershipID: "LIB-1", Status: membership.StatusActive, Role: membership.RoleMember,
		}
		require.NoError(t, store.Members.Create(ctx, member))

		svc := lending.NewService(store, lending.NewFinePolicy(lending.DefaultDailyRate), lending.DefaultLoanDays)

		var open []uuid.UUID
		steps := rapid.IntRange(1, 40).Draw(t, "steps")
		for i := 0; i < steps; i++ {
			if len(open) > 0 && rapid.Bool().Draw(t, "doReturn") {
				idx := rapid.IntRange(0, len(open)-1).Draw(t, "loanIdx")
				_, err := svc.Return(ctx, open[idx], time.Time{})
				require.NoError(t, err)
				open = append(open[:idx], open[idx+1:]...)
			} else {
				txn, err := svc.Borrow(ctx, book.ID, member.ID, 0)
				if err == nil {
					open = append(open, txn.ID)
				}
			}

			got, err := store.Books.Get(ctx, book.ID)
			require.NoError(t, err)
			assert.GreaterOrEqual(t, got.AvailableCopies, 0)
			assert.LessOrEqual(t, got.AvailableCopies, total)
			if got.AvailableCopies == 0 {
				assert.Equal(t, catalog.StatusUnavailable, got.Status)
			} else {
				assert.Equal(t, catalog.StatusAvailable, got.Status)
			}
			assert.Equal(t, total-len(open), got.AvailableCopies)
		}
	})
}
