package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/suittrip/backend/internal/application/reservation"
)

// ReservationHandler serves the store-side reservation workflow.
type ReservationHandler struct {
	svc reservation.Service
}

func NewReservationHandler(svc reservation.Service) *ReservationHandler {
	return &ReservationHandler{svc: svc}
}

func (h *ReservationHandler) Create(w http.ResponseWriter, r *http.Request) {
	sid, ok := storeID(w, r)
	if !ok {
		return
	}
	var req reservation.CreateRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	rv, err := h.svc.Create(r.Context(), sid, req)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeSuccess(w, http.StatusCreated, rv, "예약이 등록되었습니다")
}

func (h *ReservationHandler) List(w http.ResponseWriter, r *http.Request) {
	sid, ok := storeID(w, r)
	if !ok {
		return
	}
	var status *string
	if s := r.URL.Query().Get("status"); s != "" {
		status = &s
	}
	reservations, err := h.svc.List(r.Context(), sid, status)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writePage(w, r, reservations)
}

func (h *ReservationHandler) Get(w http.ResponseWriter, r *http.Request) {
	sid, ok := storeID(w, r)
	if !ok {
		return
	}
	rv, err := h.svc.Get(r.Context(), sid, chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, rv, "")
}

func (h *ReservationHandler) Approve(w http.ResponseWriter, r *http.Request) {
	sid, ok := storeID(w, r)
	if !ok {
		return
	}
	rv, err := h.svc.Approve(r.Context(), sid, chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, rv, "예약이 승인되었습니다")
}

type updateReservationStatusRequest struct {
	Status string `json:"status"`
}

func (h *ReservationHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	sid, ok := storeID(w, r)
	if !ok {
		return
	}
	var req updateReservationStatusRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	rv, err := h.svc.UpdateStatus(r.Context(), sid, chi.URLParam(r, "id"), req.Status)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, rv, "예약 상태가 변경되었습니다")
}

type rejectRequest struct {
	Reason string `json:"reason"`
}

func (h *ReservationHandler) Reject(w http.ResponseWriter, r *http.Request) {
	sid, ok := storeID(w, r)
	if !ok {
		return
	}
	var req rejectRequest
	if r.ContentLength > 0 && !decodeJSON(w, r, &req) {
		return
	}
	rv, err := h.svc.Reject(r.Context(), sid, chi.URLParam(r, "id"), req.Reason)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, rv, "예약이 거절되었습니다")
}

func (h *ReservationHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	sid, ok := storeID(w, r)
	if !ok {
		return
	}
	rv, err := h.svc.Cancel(r.Context(), sid, chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, rv, "예약이 취소되었습니다")
}

type attachPhotosRequest struct {
	Photos []string `json:"photos"` // base64-encoded images
}

func (h *ReservationHandler) AttachPhotos(w http.ResponseWriter, r *http.Request) {
	sid, ok := storeID(w, r)
	if !ok {
		return
	}
	var req attachPhotosRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	rv, err := h.svc.AttachLuggagePhotos(r.Context(), sid, chi.URLParam(r, "id"), req.Photos)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, rv, "짐 사진이 등록되었습니다")
}
