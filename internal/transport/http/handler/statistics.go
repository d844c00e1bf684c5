package handler

import (
	"net/http"
	"strconv"
	"time"

	statsapp "github.com/suittrip/backend/internal/application/statistics"
)

// StatisticsHandler serves the dashboard aggregates.
type StatisticsHandler struct {
	svc statsapp.Service
}

func NewStatisticsHandler(svc statsapp.Service) *StatisticsHandler {
	return &StatisticsHandler{svc: svc}
}

func (h *StatisticsHandler) Daily(w http.ResponseWriter, r *http.Request) {
	sid, ok := storeID(w, r)
	if !ok {
		return
	}
	day := time.Now()
	if d := r.URL.Query().Get("date"); d != "" {
		parsed, err := time.Parse("2006-01-02", d)
		if err != nil {
			writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "date must be YYYY-MM-DD", nil)
			return
		}
		day = parsed
	}
	daily, err := h.svc.Daily(r.Context(), sid, day)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, daily, "")
}

func (h *StatisticsHandler) Monthly(w http.ResponseWriter, r *http.Request) {
	sid, ok := storeID(w, r)
	if !ok {
		return
	}
	months := 6
	if m := r.URL.Query().Get("months"); m != "" {
		n, err := strconv.Atoi(m)
		if err != nil || n < 1 || n > 24 {
			writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "months must be 1-24", nil)
			return
		}
		months = n
	}
	points, err := h.svc.Monthly(r.Context(), sid, months)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, points, "")
}

func (h *StatisticsHandler) Revenue(w http.ResponseWriter, r *http.Request) {
	sid, ok := storeID(w, r)
	if !ok {
		return
	}
	now := time.Now()
	from := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	to := now
	if f := r.URL.Query().Get("from"); f != "" {
		parsed, err := time.Parse("2006-01-02", f)
		if err != nil {
			writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "from must be YYYY-MM-DD", nil)
			return
		}
		from = parsed
	}
	if t := r.URL.Query().Get("to"); t != "" {
		parsed, err := time.Parse("2006-01-02", t)
		if err != nil {
			writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "to must be YYYY-MM-DD", nil)
			return
		}
		// Inclusive end of day.
		to = parsed.Add(24*time.Hour - time.Second)
	}
	revenue, err := h.svc.Revenue(r.Context(), sid, from, to)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, revenue, "")
}
