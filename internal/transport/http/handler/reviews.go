package handler

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	reviewapp "github.com/suittrip/backend/internal/application/review"
)

// ReviewHandler serves customer reviews and owner replies.
type ReviewHandler struct {
	svc reviewapp.Service
}

func NewReviewHandler(svc reviewapp.Service) *ReviewHandler {
	return &ReviewHandler{svc: svc}
}

func (h *ReviewHandler) List(w http.ResponseWriter, r *http.Request) {
	sid, ok := storeID(w, r)
	if !ok {
		return
	}
	var rating *int
	if v := r.URL.Query().Get("rating"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "rating must be a number", nil)
			return
		}
		rating = &n
	}
	reviews, err := h.svc.List(r.Context(), sid, rating)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writePage(w, r, reviews)
}

func (h *ReviewHandler) Get(w http.ResponseWriter, r *http.Request) {
	sid, ok := storeID(w, r)
	if !ok {
		return
	}
	review, err := h.svc.Get(r.Context(), sid, chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, review, "")
}

func (h *ReviewHandler) Summary(w http.ResponseWriter, r *http.Request) {
	sid, ok := storeID(w, r)
	if !ok {
		return
	}
	summary, err := h.svc.Summarize(r.Context(), sid)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, summary, "")
}

type respondRequest struct {
	Content string `json:"content"`
}

func (h *ReviewHandler) Respond(w http.ResponseWriter, r *http.Request) {
	sid, ok := storeID(w, r)
	if !ok {
		return
	}
	var req respondRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	review, err := h.svc.Respond(r.Context(), sid, chi.URLParam(r, "id"), req.Content)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeSuccess(w, http.StatusCreated, review, "답글이 등록되었습니다")
}

func (h *ReviewHandler) UpdateResponse(w http.ResponseWriter, r *http.Request) {
	sid, ok := storeID(w, r)
	if !ok {
		return
	}
	var req respondRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	review, err := h.svc.UpdateResponse(r.Context(), sid, chi.URLParam(r, "id"), req.Content)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, review, "답글이 수정되었습니다")
}

func (h *ReviewHandler) DeleteResponse(w http.ResponseWriter, r *http.Request) {
	sid, ok := storeID(w, r)
	if !ok {
		return
	}
	review, err := h.svc.DeleteResponse(r.Context(), sid, chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, review, "답글이 삭제되었습니다")
}
