package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	notifapp "github.com/suittrip/backend/internal/application/notification"
)

// NotificationHandler serves the store owner's notification feed.
type NotificationHandler struct {
	svc notifapp.Service
}

func NewNotificationHandler(svc notifapp.Service) *NotificationHandler {
	return &NotificationHandler{svc: svc}
}

func (h *NotificationHandler) List(w http.ResponseWriter, r *http.Request) {
	sid, ok := storeID(w, r)
	if !ok {
		return
	}
	unreadOnly := r.URL.Query().Get("unread") == "true"
	notifications, err := h.svc.List(r.Context(), sid, unreadOnly)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writePage(w, r, notifications)
}

func (h *NotificationHandler) Get(w http.ResponseWriter, r *http.Request) {
	sid, ok := storeID(w, r)
	if !ok {
		return
	}
	n, err := h.svc.Get(r.Context(), sid, chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, n, "")
}

func (h *NotificationHandler) Delete(w http.ResponseWriter, r *http.Request) {
	sid, ok := storeID(w, r)
	if !ok {
		return
	}
	if err := h.svc.Delete(r.Context(), sid, chi.URLParam(r, "id")); err != nil {
		writeDomainError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, nil, "알림이 삭제되었습니다")
}

func (h *NotificationHandler) UnreadCount(w http.ResponseWriter, r *http.Request) {
	sid, ok := storeID(w, r)
	if !ok {
		return
	}
	count, err := h.svc.UnreadCount(r.Context(), sid)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, map[string]int{"count": count}, "")
}

func (h *NotificationHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	sid, ok := storeID(w, r)
	if !ok {
		return
	}
	if err := h.svc.MarkRead(r.Context(), sid, chi.URLParam(r, "id")); err != nil {
		writeDomainError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, nil, "읽음 처리되었습니다")
}

func (h *NotificationHandler) MarkAllRead(w http.ResponseWriter, r *http.Request) {
	sid, ok := storeID(w, r)
	if !ok {
		return
	}
	count, err := h.svc.MarkAllRead(r.Context(), sid)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, map[string]int{"updated": count}, "모든 알림을 읽음 처리했습니다")
}
