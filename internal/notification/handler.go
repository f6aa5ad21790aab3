// internal/notification/handler.go
package notification

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"libralend/internal/httpapi"
)

type Handler struct {
	dispatcher Dispatcher
}

func NewHandler(dispatcher Dispatcher) *Handler {
	return &Handler{dispatcher: dispatcher}
}

// Routes mounts the notification endpoints on r.
func (h *Handler) Routes(r chi.Router) {
	r.Post("/notifications", h.handleSendOne)
	r.Post("/notifications/broadcast", h.handleBroadcast)
	r.Post("/notifications/dispatch/due-soon", h.handleDispatchDueSoon)
	r.Post("/notifications/dispatch/overdue", h.handleDispatchOverdue)
	r.Get("/members/{id}/notifications", h.handleListByMember)
	r.Post("/notifications/{id}/read", h.handleMarkRead)
}

func (h *Handler) handleSendOne(w http.ResponseWriter, r *http.Request) {
	var req struct {
		MemberID uuid.UUID `json:"member_id"`
		Type     Type      `json:"type"`
		Title    string    `json:"title"`
		Message  string    `json:"message"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	n, err := h.dispatcher.SendOne(r.Context(), req.MemberID, req.Type, req.Title, req.Message)
	if err != nil {
		httpapi.WriteError(w, err)
		return
	}
	httpapi.WriteJSON(w, http.StatusCreated, n)
}

func (h *Handler) handleBroadcast(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Type    Type   `json:"type"`
		Title   string `json:"title"`
		Message string `json:"message"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	failed, err := h.dispatcher.Broadcast(r.Context(), req.Type, req.Title, req.Message)
	if err != nil {
		httpapi.WriteError(w, err)
		return
	}
	httpapi.WriteJSON(w, http.StatusOK, map[string]int{"failed": failed})
}

func (h *Handler) handleDispatchDueSoon(w http.ResponseWriter, r *http.Request) {
	if _, err := h.dispatcher.DispatchDueSoon(r.Context()); err != nil {
		httpapi.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusAccepted)
}

func (h *Handler) handleDispatchOverdue(w http.ResponseWriter, r *http.Request) {
	if _, err := h.dispatcher.DispatchOverdue(r.Context()); err != nil {
		httpapi.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusAccepted)
}

func (h *Handler) handleListByMember(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid member ID", http.StatusBadRequest)
		return
	}

	var (
		notifications []Notification
		lerr          error
	)
	if r.URL.Query().Get("unread") == "true" {
		notifications, lerr = h.dispatcher.ListUnreadByMember(r.Context(), id)
	} else {
		notifications, lerr = h.dispatcher.ListByMember(r.Context(), id)
	}
	if lerr != nil {
		httpapi.WriteError(w, lerr)
		return
	}
	httpapi.WriteJSON(w, http.StatusOK, notifications)
}

func (h *Handler) handleMarkRead(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid notification ID", http.StatusBadRequest)
		return
	}

	if err := h.dispatcher.MarkRead(r.Context(), id); err != nil {
		httpapi.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
