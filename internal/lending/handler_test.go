// internal/lending/handler_test.go
package lending_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"libralend/internal/lending"
	"libralend/internal/membership"
	"libralend/internal/store/memory"
)

func newTestServer(t *testing.T) (*httptest.Server, *memory.Store) {
	t.Helper()
	store := memory.New()
	r := chi.NewRouter()
	lending.NewHandler(newService(store)).Routes(r)
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv, store
}

func Test_POST_Loans_CreatesLoan(t *testing.T) {
	srv, store := newTestServer(t)
	book := seedBook(t, store, 1)
	member := seedMember(t, store, membership.StatusActive)

	body := fmt.Sprintf(`{"book_id":%q,"member_id":%q}`, book.ID, member.ID)
	resp, err := http.Post(srv.URL+"/loans", "application/json", strings.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	var txn lending.Transaction
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&txn))
	assert.Equal(t, book.ID, txn.BookID)
	assert.Equal(t, lending.StatusActive, txn.Status)
}

func Test_POST_Loans_UnavailableBook_Returns409(t *testing.T) {
	srv, store := newTestServer(t)
	book := seedBook(t, store, 0)
	member := seedMember(t, store, membership.StatusActive)

	body := fmt.Sprintf(`{"book_id":%q,"member_id":%q}`, book.ID, member.ID)
	resp, err := http.Post(srv.URL+"/loans", "application/json", strings.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func Test_POST_LoansReturn_ClosesLoanWithFine(t *testing.T) {
	srv, store := newTestServer(t)
	book := seedBook(t, store, 1)
	member := seedMember(t, store, membership.StatusActive)
	svc := newService(store)
	txn, err := svc.Borrow(context.Background(), book.ID, member.ID, 0)
	require.NoError(t, err)

	lateDate := txn.BorrowDate.AddDate(0, 0, 20).Format("2006-01-02")
	resp, err := http.Post(srv.URL+"/loans/"+txn.ID.String()+"/return?return_date="+lateDate, "application/json", nil)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)

	var returned lending.Transaction
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&returned))
	assert.Equal(t, lending.StatusReturned, returned.Status)
	assert.True(t, returned.FineAmount.Equal(decimal.RequireFromString("12.00")))
}

func Test_GET_Loans_UnknownID_Returns404(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, err := http.Get(srv.URL + "/loans/" + uuid.NewString())
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func Test_GET_MemberLoans_FiltersActive(t *testing.T) {
	srv, store := newTestServer(t)
	book := seedBook(t, store, 2)
	member := seedMember(t, store, membership.StatusActive)
	svc := newService(store)

	first, err := svc.Borrow(context.Background(), book.ID, member.ID, 0)
	require.NoError(t, err)
	_, err = svc.Return(context.Background(), first.ID, time.Time{})
	require.NoError(t, err)
	_, err = svc.Borrow(context.Background(), book.ID, member.ID, 0)
	require.NoError(t, err)

	resp, err := http.Get(srv.URL + "/members/" + member.ID.String() + "/loans?active=true")
	require.NoError(t, err)
	defer resp.Body.Close()

	var active []lending.Transaction
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&active))
	assert.Len(t, active, 1)

	resp, err = http.Get(srv.URL + "/members/" + member.ID.String() + "/loans")
	require.NoError(t, err)
	defer resp.Body.Close()

	var all []lending.Transaction
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&all))
	assert.Len(t, all, 2)
}
