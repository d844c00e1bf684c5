package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/suittrip/backend/internal/application/storageunit"
)

// StorageHandler serves the store's storage unit inventory.
type StorageHandler struct {
	svc storageunit.Service
}

func NewStorageHandler(svc storageunit.Service) *StorageHandler {
	return &StorageHandler{svc: svc}
}

func (h *StorageHandler) Create(w http.ResponseWriter, r *http.Request) {
	sid, ok := storeID(w, r)
	if !ok {
		return
	}
	var req storageunit.CreateRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	unit, err := h.svc.Create(r.Context(), sid, req)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeSuccess(w, http.StatusCreated, unit, "보관함이 등록되었습니다")
}

func (h *StorageHandler) List(w http.ResponseWriter, r *http.Request) {
	sid, ok := storeID(w, r)
	if !ok {
		return
	}
	var status, unitType *string
	if s := r.URL.Query().Get("status"); s != "" {
		status = &s
	}
	if tp := r.URL.Query().Get("type"); tp != "" {
		unitType = &tp
	}
	units, err := h.svc.List(r.Context(), sid, status, unitType)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writePage(w, r, units)
}

func (h *StorageHandler) Get(w http.ResponseWriter, r *http.Request) {
	sid, ok := storeID(w, r)
	if !ok {
		return
	}
	unit, err := h.svc.Get(r.Context(), sid, chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, unit, "")
}

func (h *StorageHandler) Update(w http.ResponseWriter, r *http.Request) {
	sid, ok := storeID(w, r)
	if !ok {
		return
	}
	var req storageunit.UpdateRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	unit, err := h.svc.Update(r.Context(), sid, chi.URLParam(r, "id"), req)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, unit, "보관함 정보가 수정되었습니다")
}

func (h *StorageHandler) Delete(w http.ResponseWriter, r *http.Request) {
	sid, ok := storeID(w, r)
	if !ok {
		return
	}
	if err := h.svc.Delete(r.Context(), sid, chi.URLParam(r, "id")); err != nil {
		writeDomainError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, nil, "보관함이 삭제되었습니다")
}
