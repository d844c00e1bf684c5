package handler

import (
	"net/http"

	storeapp "github.com/suittrip/backend/internal/application/store"
)

// StoreHandler serves the merchant's own profile and settings.
type StoreHandler struct {
	svc storeapp.Service
}

func NewStoreHandler(svc storeapp.Service) *StoreHandler {
	return &StoreHandler{svc: svc}
}

func (h *StoreHandler) Profile(w http.ResponseWriter, r *http.Request) {
	sid, ok := storeID(w, r)
	if !ok {
		return
	}
	store, err := h.svc.Profile(r.Context(), sid)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, store, "")
}

func (h *StoreHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	sid, ok := storeID(w, r)
	if !ok {
		return
	}
	var req storeapp.UpdateProfileRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	store, err := h.svc.UpdateProfile(r.Context(), sid, req)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, store, "프로필이 수정되었습니다")
}

// Status returns just the operating status for storefront polling.
func (h *StoreHandler) Status(w http.ResponseWriter, r *http.Request) {
	sid, ok := storeID(w, r)
	if !ok {
		return
	}
	store, err := h.svc.Profile(r.Context(), sid)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, map[string]string{"status": store.Status}, "")
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

func (h *StoreHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	sid, ok := storeID(w, r)
	if !ok {
		return
	}
	var req updateStatusRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := h.svc.UpdateStatus(r.Context(), sid, req.Status); err != nil {
		writeDomainError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, map[string]string{"status": req.Status}, "영업 상태가 변경되었습니다")
}

func (h *StoreHandler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	sid, ok := storeID(w, r)
	if !ok {
		return
	}
	var req storeapp.UpdateSettingsRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	store, err := h.svc.UpdateSettings(r.Context(), sid, req)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, store.Settings, "설정이 저장되었습니다")
}

func (h *StoreHandler) Deactivate(w http.ResponseWriter, r *http.Request) {
	sid, ok := storeID(w, r)
	if !ok {
		return
	}
	if err := h.svc.Deactivate(r.Context(), sid); err != nil {
		writeDomainError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, nil, "계정이 비활성화되었습니다")
}
