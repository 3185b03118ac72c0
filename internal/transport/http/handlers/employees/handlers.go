package employeeshandler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"workhub/internal/domain/directory"
	"workhub/internal/transport/http/api"
	"workhub/internal/transport/http/middleware"
)

type Handler struct {
	Directory *directory.Service
}

func NewHandler(dir *directory.Service) *Handler {
	return &Handler{Directory: dir}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/user", func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.With(middleware.RequireAdmin).Get("/", h.handleList)
		r.Get("/{userID}", h.handleGet)
		r.With(middleware.RequireAdmin).Put("/{userID}", h.handleUpdate)
		r.With(middleware.RequireAdmin).Delete("/{userID}", h.handleDelete)
	})
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	employees, err := h.Directory.List(r.Context())
	if err != nil {
		slog.Warn("employee list failed", "err", err)
		api.Fail(w, http.StatusInternalServerError, "internal", "failed to list employees", reqID)
		return
	}
	api.Success(w, employees, reqID)
}

// handleGet allows an employee to read their own record; anything else
// needs the admin role.
func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	userID := chi.URLParam(r, "userID")

	user, _ := middleware.GetUser(r.Context())
	if user.UserID != userID && user.Role != directory.RoleAdmin {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "cannot read another employee", reqID)
		return
	}

	emp, err := h.Directory.Get(r.Context(), userID)
	if errors.Is(err, directory.ErrNotFound) {
		api.Fail(w, http.StatusNotFound, "not_found", "employee not found", reqID)
		return
	}
	if err != nil {
		slog.Warn("employee get failed", "err", err)
		api.Fail(w, http.StatusInternalServerError, "internal", "failed to load employee", reqID)
		return
	}
	api.Success(w, emp, reqID)
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	userID := chi.URLParam(r, "userID")

	var patch directory.EmployeeUpdate
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid JSON body", reqID)
		return
	}

	emp, err := h.Directory.Update(r.Context(), userID, patch)
	if errors.Is(err, directory.ErrNotFound) {
		api.Fail(w, http.StatusNotFound, "not_found", "employee not found", reqID)
		return
	}
	if errors.Is(err, directory.ErrInvalidRole) {
		api.Fail(w, http.StatusBadRequest, "validation_error", "invalid role", reqID)
		return
	}
	if errors.Is(err, directory.ErrEmailTaken) {
		api.Fail(w, http.StatusBadRequest, "validation_error", "email already in use", reqID)
		return
	}
	if err != nil {
		slog.Warn("employee update failed", "err", err)
		api.Fail(w, http.StatusInternalServerError, "internal", "failed to update employee", reqID)
		return
	}
	api.Success(w, emp, reqID)
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	userID := chi.URLParam(r, "userID")

	removed, err := h.Directory.Delete(r.Context(), userID)
	if err != nil {
		slog.Warn("employee delete failed", "err", err)
		api.Fail(w, http.StatusInternalServerError, "internal", "failed to delete employee", reqID)
		return
	}
	if !removed {
		api.Fail(w, http.StatusNotFound, "not_found", "employee not found", reqID)
		return
	}
	api.Success(w, map[string]bool{"deleted": true}, reqID)
}
