package adminshandler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"workhub/internal/domain/directory"
	"workhub/internal/transport/http/api"
	"workhub/internal/transport/http/middleware"
	"workhub/internal/transport/http/shared"
)

type Handler struct {
	Directory *directory.Service
}

func NewHandler(dir *directory.Service) *Handler {
	return &Handler{Directory: dir}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/admin", func(r chi.Router) {
		r.Use(middleware.RequireAuth, middleware.RequireAdmin)
		r.Get("/", h.handleList)
		r.Post("/", h.handleGrant)
		r.Delete("/{userID}", h.handleRevoke)
	})
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	admins, err := h.Directory.ListAdmins(r.Context())
	if err != nil {
		slog.Warn("admin list failed", "err", err)
		api.Fail(w, http.StatusInternalServerError, "internal", "failed to list admins", reqID)
		return
	}
	api.Success(w, admins, reqID)
}

type grantRequest struct {
	UserID      string `json:"userId"`
	Permissions string `json:"permissions"`
}

func (h *Handler) handleGrant(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())

	var payload grantRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid JSON body", reqID)
		return
	}

	v := shared.NewValidator()
	v.Required("userId", payload.UserID, "userId is required")
	if v.Reject(w, reqID) {
		return
	}

	admin, err := h.Directory.GrantAdmin(r.Context(), payload.UserID, payload.Permissions)
	if errors.Is(err, directory.ErrNotFound) {
		api.Fail(w, http.StatusNotFound, "not_found", "employee not found", reqID)
		return
	}
	if err != nil {
		slog.Warn("admin grant failed", "err", err)
		api.Fail(w, http.StatusInternalServerError, "internal", "failed to grant admin", reqID)
		return
	}
	api.Created(w, admin, reqID)
}

func (h *Handler) handleRevoke(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	userID := chi.URLParam(r, "userID")

	removed, err := h.Directory.RevokeAdmin(r.Context(), userID)
	if err != nil {
		slog.Warn("admin revoke failed", "err", err)
		api.Fail(w, http.StatusInternalServerError, "internal", "failed to revoke admin", reqID)
		return
	}
	if !removed {
		api.Fail(w, http.StatusNotFound, "not_found", "admin grant not found", reqID)
		return
	}
	api.Success(w, map[string]bool{"revoked": true}, reqID)
}
