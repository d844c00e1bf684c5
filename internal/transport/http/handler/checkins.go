package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	checkinapp "github.com/suittrip/backend/internal/application/checkin"
)

// CheckinHandler serves luggage handover and pickup.
type CheckinHandler struct {
	svc checkinapp.Service
}

func NewCheckinHandler(svc checkinapp.Service) *CheckinHandler {
	return &CheckinHandler{svc: svc}
}

func (h *CheckinHandler) Create(w http.ResponseWriter, r *http.Request) {
	sid, ok := storeID(w, r)
	if !ok {
		return
	}
	var req checkinapp.CheckinRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.ReservationID == "" {
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "reservationId가 필요합니다", nil)
		return
	}
	c, err := h.svc.Checkin(r.Context(), sid, req)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeSuccess(w, http.StatusCreated, c, "체크인되었습니다")
}

func (h *CheckinHandler) Get(w http.ResponseWriter, r *http.Request) {
	sid, ok := storeID(w, r)
	if !ok {
		return
	}
	c, err := h.svc.Get(r.Context(), sid, chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, c, "")
}

func (h *CheckinHandler) List(w http.ResponseWriter, r *http.Request) {
	sid, ok := storeID(w, r)
	if !ok {
		return
	}
	activeOnly := r.URL.Query().Get("active") == "true"
	checkins, err := h.svc.List(r.Context(), sid, activeOnly)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writePage(w, r, checkins)
}

func (h *CheckinHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	sid, ok := storeID(w, r)
	if !ok {
		return
	}
	c, err := h.svc.Checkout(r.Context(), sid, chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, c, "체크아웃되었습니다")
}
