// internal/lending/handler.go
package lending

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"libralend/internal/httpapi"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// Routes mounts the lending endpoints on r.
func (h *Handler) Routes(r chi.Router) {
	r.Post("/loans", h.handleBorrow)
	r.Post("/loans/{id}/return", h.handleReturn)
	r.Get("/loans", h.handleList)
	r.Get("/loans/overdue", h.handleListOverdue)
	r.Get("/loans/stats", h.handleStats)
	r.Get("/loans/{id}", h.handleGet)
	r.Get("/members/{id}/loans", h.handleListByMember)
	r.Get("/members/{id}/loans/overdue", h.handleListOverdueByMember)
}

func (h *Handler) handleBorrow(w http.ResponseWriter, r *http.Request) {
	var req struct {
		BookID   uuid.UUID `json:"book_id"`
		MemberID uuid.UUID `json:"member_id"`
		LoanDays int       `json:"loan_days"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	txn, err := h.service.Borrow(r.Context(), req.BookID, req.MemberID, req.LoanDays)
	if err != nil {
		httpapi.WriteError(w, err)
		return
	}
	httpapi.WriteJSON(w, http.StatusCreated, txn)
}

func (h *Handler) handleReturn(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid transaction ID", http.StatusBadRequest)
		return
	}

	var returnDate time.Time
	if raw := r.URL.Query().Get("return_date"); raw != "" {
		returnDate, err = time.Parse("2006-01-02", raw)
		if err != nil {
			http.Error(w, "invalid return_date, want YYYY-MM-DD", http.StatusBadRequest)
			return
		}
	}

	txn, err := h.service.Return(r.Context(), id, returnDate)
	if err != nil {
		httpapi.WriteError(w, err)
		return
	}
	httpapi.WriteJSON(w, http.StatusOK, txn)
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	txns, err := h.service.ListAll(r.Context())
	if err != nil {
		httpapi.WriteError(w, err)
		return
	}
	httpapi.WriteJSON(w, http.StatusOK, txns)
}

func (h *Handler) handleListOverdue(w http.ResponseWriter, r *http.Request) {
	txns, err := h.service.ListOverdue(r.Context())
	if err != nil {
		httpapi.WriteError(w, err)
		return
	}
	httpapi.WriteJSON(w, http.StatusOK, txns)
}

func (h *Handler) handleStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.service.Stats(r.Context())
	if err != nil {
		httpapi.WriteError(w, err)
		return
	}
	httpapi.WriteJSON(w, http.StatusOK, stats)
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid transaction ID", http.StatusBadRequest)
		return
	}

	txn, err := h.service.Get(r.Context(), id)
	if err != nil {
		httpapi.WriteError(w, err)
		return
	}
	httpapi.WriteJSON(w, http.StatusOK, txn)
}

func (h *Handler) handleListOverdueByMember(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid member ID", http.StatusBadRequest)
		return
	}

	txns, err := h.service.ListOverdueByMember(r.Context(), id)
	if err != nil {
		httpapi.WriteError(w, err)
		return
	}
	httpapi.WriteJSON(w, http.StatusOK, txns)
}

func (h *Handler) handleListByMember(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid member ID", http.StatusBadRequest)
		return
	}

	var (
		txns []Transaction
		lerr error
	)
	if r.URL.Query().Get("active") == "true" {
		txns, lerr = h.service.ListActiveByMember(r.Context(), id)
	} else {
		txns, lerr = h.service.ListByMember(r.Context(), id)
	}
	if lerr != nil {
		httpapi.WriteError(w, lerr)
		return
	}
	httpapi.WriteJSON(w, http.StatusOK, txns)
}
