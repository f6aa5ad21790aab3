// internal/report/handler.go
package report

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"libralend/internal/httpapi"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// Routes mounts the report endpoints on r. Handlers await the handle on
// behalf of HTTP clients; library consumers can hold the handle instead.
func (h *Handler) Routes(r chi.Router) {
	r.Get("/reports/inventory", h.handleInventory)
	r.Get("/reports/trends", h.handleTrends)
	r.Get("/reports/overdue", h.handleOverdue)
}

func (h *Handler) handleInventory(w http.ResponseWriter, r *http.Request) {
	handle, err := h.service.Inventory(r.Context())
	if err != nil {
		httpapi.WriteError(w, err)
		return
	}
	report, err := handle.Wait(r.Context())
	if err != nil {
		httpapi.WriteError(w, err)
		return
	}
	httpapi.WriteJSON(w, http.StatusOK, report)
}

func (h *Handler) handleTrends(w http.ResponseWriter, r *http.Request) {
	start, err := time.Parse("2006-01-02", r.URL.Query().Get("start"))
	if err != nil {
		http.Error(w, "invalid start, want YYYY-MM-DD", http.StatusBadRequest)
		return
	}
	end, err := time.Parse("2006-01-02", r.URL.Query().Get("end"))
	if err != nil {
		http.Error(w, "invalid end, want YYYY-MM-DD", http.StatusBadRequest)
		return
	}

	handle, err := h.service.BorrowingTrends(r.Context(), start, end)
	if err != nil {
		httpapi.WriteError(w, err)
		return
	}
	report, err := handle.Wait(r.Context())
	if err != nil {
		httpapi.WriteError(w, err)
		return
	}
	httpapi.WriteJSON(w, http.StatusOK, report)
}

func (h *Handler) handleOverdue(w http.ResponseWriter, r *http.Request) {
	handle, err := h.service.Overdue(r.Context())
	if err != nil {
		httpapi.WriteError(w, err)
		return
	}
	report, err := handle.Wait(r.Context())
	if err != nil {
		httpapi.WriteError(w, err)
		return
	}
	httpapi.WriteJSON(w, http.StatusOK, report)
}
