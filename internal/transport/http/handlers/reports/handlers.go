package reportshandler

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"workhub/internal/domain/reports"
	"workhub/internal/transport/http/api"
	"workhub/internal/transport/http/middleware"
	"workhub/internal/transport/http/shared"
)

type Handler struct {
	Reports *reports.Service
}

func NewHandler(svc *reports.Service) *Handler {
	return &Handler{Reports: svc}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/reports", func(r chi.Router) {
		r.Use(middleware.RequireAuth, middleware.RequireAdmin)
		r.Get("/attendance", h.handleAttendance)
		r.Get("/rooms", h.handleRooms)
	})
}

func (h *Handler) handleAttendance(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())

	period, ok := h.period(w, r, reqID)
	if !ok {
		return
	}

	rows, err := h.Reports.Attendance(r.Context(), period)
	if err != nil {
		slog.Warn("attendance report failed", "err", err)
		api.Fail(w, http.StatusInternalServerError, "internal", "failed to build attendance report", reqID)
		return
	}

	switch r.URL.Query().Get("format") {
	case "csv":
		w.Header().Set("Content-Type", "text/csv")
		w.Header().Set("Content-Disposition", `attachment; filename="attendance.csv"`)
		if err := reports.WriteAttendanceCSV(w, rows); err != nil {
			slog.Warn("attendance csv render failed", "err", err)
		}
	case "pdf":
		w.Header().Set("Content-Type", "application/pdf")
		w.Header().Set("Content-Disposition", `attachment; filename="attendance.pdf"`)
		if err := reports.WriteAttendancePDF(w, period, rows); err != nil {
			slog.Warn("attendance pdf render failed", "err", err)
		}
	default:
		api.Success(w, rows, reqID)
	}
}

func (h *Handler) handleRooms(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())

	period, ok := h.period(w, r, reqID)
	if !ok {
		return
	}

	rows, err := h.Reports.Rooms(r.Context(), period)
	if err != nil {
		slog.Warn("room report failed", "err", err)
		api.Fail(w, http.StatusInternalServerError, "internal", "failed to build room report", reqID)
		return
	}

	switch r.URL.Query().Get("format") {
	case "csv":
		w.Header().Set("Content-Type", "text/csv")
		w.Header().Set("Content-Disposition", `attachment; filename="rooms.csv"`)
		if err := reports.WriteRoomUsageCSV(w, rows); err != nil {
			slog.Warn("room csv render failed", "err", err)
		}
	case "pdf":
		w.Header().Set("Content-Type", "application/pdf")
		w.Header().Set("Content-Disposition", `attachment; filename="rooms.pdf"`)
		if err := reports.WriteRoomUsagePDF(w, period, rows); err != nil {
			slog.Warn("room pdf render failed", "err", err)
		}
	default:
		api.Success(w, rows, reqID)
	}
}

func (h *Handler) period(w http.ResponseWriter, r *http.Request, reqID string) (reports.Period, bool) {
	var from, to *time.Time
	if raw := r.URL.Query().Get("from"); raw != "" {
		parsed, err := shared.ParseDate(raw)
		if err != nil {
			api.Fail(w, http.StatusBadRequest, "validation_error", "from must be YYYY-MM-DD", reqID)
			return reports.Period{}, false
		}
		from = &parsed
	}
	if raw := r.URL.Query().Get("to"); raw != "" {
		parsed, err := shared.ParseDate(raw)
		if err != nil {
			api.Fail(w, http.StatusBadRequest, "validation_error", "to must be YYYY-MM-DD", reqID)
			return reports.Period{}, false
		}
		to = &parsed
	}

	period, err := h.Reports.NormalizePeriod(from, to)
	if errors.Is(err, reports.ErrInvalidPeriod) {
		api.Fail(w, http.StatusBadRequest, "validation_error", "to must not precede from", reqID)
		return reports.Period{}, false
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "internal", "failed to resolve report period", reqID)
		return reports.Period{}, false
	}
	return period, true
}
