package attendancehandler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"workhub/internal/domain/attendance"
	"workhub/internal/domain/directory"
	"workhub/internal/transport/http/api"
	"workhub/internal/transport/http/middleware"
	"workhub/internal/transport/http/shared"
)

type Handler struct {
	Attendance *attendance.Service
}

func NewHandler(svc *attendance.Service) *Handler {
	return &Handler{Attendance: svc}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/officeattendances", func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Post("/", h.handleLog)
		r.Get("/", h.handleList)
		r.Get("/{attendanceID}", h.handleGet)
		r.Put("/{attendanceID}", h.handleUpdate)
		r.Delete("/{attendanceID}", h.handleDelete)
	})
}

type logRequest struct {
	Date   string `json:"date"`
	Status string `json:"status"`
}

func (h *Handler) handleLog(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	user, _ := middleware.GetUser(r.Context())

	var payload logRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid JSON body", reqID)
		return
	}

	v := shared.NewValidator()
	date, _ := v.Date("date", payload.Date)
	if v.Reject(w, reqID) {
		return
	}

	record, err := h.Attendance.Log(r.Context(), user.UserID, date, payload.Status)
	if errors.Is(err, attendance.ErrAlreadyLogged) {
		api.Fail(w, http.StatusBadRequest, "already_logged", "attendance already logged for this date", reqID)
		return
	}
	if errors.Is(err, attendance.ErrInvalidStatus) {
		api.Fail(w, http.StatusBadRequest, "validation_error", "status must be present or remote", reqID)
		return
	}
	if err != nil {
		slog.Warn("attendance log failed", "err", err)
		api.Fail(w, http.StatusInternalServerError, "internal", "failed to log attendance", reqID)
		return
	}
	api.Created(w, record, reqID)
}

// handleList returns the caller's own records; admins may pass userId to
// inspect anyone's, or omit it for everyone.
func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	user, _ := middleware.GetUser(r.Context())

	userID := r.URL.Query().Get("userId")
	if user.Role != directory.RoleAdmin {
		userID = user.UserID
	}

	var date *time.Time
	if raw := r.URL.Query().Get("date"); raw != "" {
		parsed, err := shared.ParseDate(raw)
		if err != nil {
			api.Fail(w, http.StatusBadRequest, "validation_error", "date must be YYYY-MM-DD", reqID)
			return
		}
		normalized := shared.NormalizeDate(parsed)
		date = &normalized
	}

	list, err := h.Attendance.List(r.Context(), userID, date)
	if err != nil {
		slog.Warn("attendance list failed", "err", err)
		api.Fail(w, http.StatusInternalServerError, "internal", "failed to list attendance", reqID)
		return
	}
	api.Success(w, list, reqID)
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	user, _ := middleware.GetUser(r.Context())

	record, err := h.Attendance.Get(r.Context(), chi.URLParam(r, "attendanceID"))
	if errors.Is(err, attendance.ErrNotFound) {
		api.Fail(w, http.StatusNotFound, "not_found", "attendance record not found", reqID)
		return
	}
	if err != nil {
		slog.Warn("attendance get failed", "err", err)
		api.Fail(w, http.StatusInternalServerError, "internal", "failed to load attendance", reqID)
		return
	}
	if record.UserID != user.UserID && user.Role != directory.RoleAdmin {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "attendance record belongs to another user", reqID)
		return
	}
	api.Success(w, record, reqID)
}

type updateRequest struct {
	Date   *string `json:"date"`
	Status *string `json:"status"`
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	user, _ := middleware.GetUser(r.Context())

	var payload updateRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid JSON body", reqID)
		return
	}

	patch := attendance.AttendanceUpdate{Status: payload.Status}
	if payload.Date != nil {
		parsed, err := shared.ParseDate(*payload.Date)
		if err != nil {
			api.Fail(w, http.StatusBadRequest, "validation_error", "date must be YYYY-MM-DD", reqID)
			return
		}
		normalized := shared.NormalizeDate(parsed)
		patch.Date = &normalized
	}

	record, err := h.Attendance.Update(r.Context(), chi.URLParam(r, "attendanceID"), user.UserID, patch)
	switch {
	case errors.Is(err, attendance.ErrNotFound):
		api.Fail(w, http.StatusNotFound, "not_found", "attendance record not found", reqID)
		return
	case errors.Is(err, attendance.ErrNotOwner):
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "attendance record belongs to another user", reqID)
		return
	case errors.Is(err, attendance.ErrAlreadyLogged):
		api.Fail(w, http.StatusBadRequest, "already_logged", "attendance already logged for this date", reqID)
		return
	case errors.Is(err, attendance.ErrInvalidStatus):
		api.Fail(w, http.StatusBadRequest, "validation_error", "status must be present or remote", reqID)
		return
	case err != nil:
		slog.Warn("attendance update failed", "err", err)
		api.Fail(w, http.StatusInternalServerError, "internal", "failed to update attendance", reqID)
		return
	}
	api.Success(w, record, reqID)
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	user, _ := middleware.GetUser(r.Context())

	removed, err := h.Attendance.Delete(r.Context(), chi.URLParam(r, "attendanceID"), user.UserID)
	if errors.Is(err, attendance.ErrNotOwner) {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "attendance record belongs to another user", reqID)
		return
	}
	if err != nil {
		slog.Warn("attendance delete failed", "err", err)
		api.Fail(w, http.StatusInternalServerError, "internal", "failed to delete attendance", reqID)
		return
	}
	if !removed {
		api.Fail(w, http.StatusNotFound, "not_found", "attendance record not found", reqID)
		return
	}
	api.Success(w, map[string]bool{"deleted": true}, reqID)
}
