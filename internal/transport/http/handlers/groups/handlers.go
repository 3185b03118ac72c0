package groupshandler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"workhub/internal/domain/directory"
	"workhub/internal/domain/groups"
	"workhub/internal/transport/http/api"
	"workhub/internal/transport/http/middleware"
	"workhub/internal/transport/http/shared"
)

type Handler struct {
	Groups *groups.Service
}

func NewHandler(svc *groups.Service) *Handler {
	return &Handler{Groups: svc}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/groups", func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Get("/", h.handleList)
		r.Get("/{groupID}", h.handleGet)
		r.With(middleware.RequireAdmin).Post("/", h.handleCreate)
		r.With(middleware.RequireAdmin).Put("/{groupID}", h.handleUpdate)
		r.With(middleware.RequireAdmin).Delete("/{groupID}", h.handleDelete)
	})

	r.Route("/groupmemberships", func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Get("/", h.handleListMemberships)
		r.Post("/", h.handleJoin)
		r.Delete("/{groupID}", h.handleLeave)
	})
}

type groupRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())

	var payload groupRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid JSON body", reqID)
		return
	}

	v := shared.NewValidator()
	v.Required("name", payload.Name, "name is required")
	if v.Reject(w, reqID) {
		return
	}

	group, err := h.Groups.Create(r.Context(), payload.Name, payload.Description)
	if err != nil {
		slog.Warn("group create failed", "err", err)
		api.Fail(w, http.StatusInternalServerError, "internal", "failed to create group", reqID)
		return
	}
	api.Created(w, group, reqID)
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	list, err := h.Groups.List(r.Context())
	if err != nil {
		slog.Warn("group list failed", "err", err)
		api.Fail(w, http.StatusInternalServerError, "internal", "failed to list groups", reqID)
		return
	}
	api.Success(w, list, reqID)
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	group, err := h.Groups.Get(r.Context(), chi.URLParam(r, "groupID"))
	if errors.Is(err, groups.ErrNotFound) {
		api.Fail(w, http.StatusNotFound, "not_found", "group not found", reqID)
		return
	}
	if err != nil {
		slog.Warn("group get failed", "err", err)
		api.Fail(w, http.StatusInternalServerError, "internal", "failed to load group", reqID)
		return
	}
	api.Success(w, group, reqID)
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())

	var patch groups.GroupUpdate
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid JSON body", reqID)
		return
	}

	group, err := h.Groups.Update(r.Context(), chi.URLParam(r, "groupID"), patch)
	if errors.Is(err, groups.ErrNotFound) {
		api.Fail(w, http.StatusNotFound, "not_found", "group not found", reqID)
		return
	}
	if err != nil {
		slog.Warn("group update failed", "err", err)
		api.Fail(w, http.StatusInternalServerError, "internal", "failed to update group", reqID)
		return
	}
	api.Success(w, group, reqID)
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	removed, err := h.Groups.Delete(r.Context(), chi.URLParam(r, "groupID"))
	if err != nil {
		slog.Warn("group delete failed", "err", err)
		api.Fail(w, http.StatusInternalServerError, "internal", "failed to delete group", reqID)
		return
	}
	if !removed {
		api.Fail(w, http.StatusNotFound, "not_found", "group not found", reqID)
		return
	}
	api.Success(w, map[string]bool{"deleted": true}, reqID)
}

type membershipRequest struct {
	GroupID string `json:"groupId"`
	UserID  string `json:"userId"`
}

// handleJoin adds a member. Without an explicit userId the caller joins
// themselves; adding someone else requires the admin role.
func (h *Handler) handleJoin(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	user, _ := middleware.GetUser(r.Context())

	var payload membershipRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid JSON body", reqID)
		return
	}

	v := shared.NewValidator()
	v.Required("groupId", payload.GroupID, "groupId is required")
	if v.Reject(w, reqID) {
		return
	}

	memberID := payload.UserID
	if memberID == "" {
		memberID = user.UserID
	}
	if memberID != user.UserID && user.Role != directory.RoleAdmin {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "cannot add another user to a group", reqID)
		return
	}

	membership, err := h.Groups.Join(r.Context(), memberID, payload.GroupID)
	if errors.Is(err, groups.ErrNotFound) {
		api.Fail(w, http.StatusNotFound, "not_found", "group not found", reqID)
		return
	}
	if errors.Is(err, groups.ErrAlreadyMember) {
		api.Fail(w, http.StatusBadRequest, "already_joined", "already a member of this group", reqID)
		return
	}
	if err != nil {
		slog.Warn("membership create failed", "err", err)
		api.Fail(w, http.StatusInternalServerError, "internal", "failed to join group", reqID)
		return
	}
	api.Created(w, membership, reqID)
}

func (h *Handler) handleListMemberships(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	user, _ := middleware.GetUser(r.Context())

	userID := r.URL.Query().Get("userId")
	if user.Role != directory.RoleAdmin {
		userID = user.UserID
	}

	list, err := h.Groups.Memberships(r.Context(), userID, r.URL.Query().Get("groupId"))
	if err != nil {
		slog.Warn("membership list failed", "err", err)
		api.Fail(w, http.StatusInternalServerError, "internal", "failed to list memberships", reqID)
		return
	}
	api.Success(w, list, reqID)
}

func (h *Handler) handleLeave(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	user, _ := middleware.GetUser(r.Context())

	memberID := r.URL.Query().Get("userId")
	if memberID == "" {
		memberID = user.UserID
	}
	if memberID != user.UserID && user.Role != directory.RoleAdmin {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "cannot remove another user from a group", reqID)
		return
	}

	removed, err := h.Groups.Leave(r.Context(), memberID, chi.URLParam(r, "groupID"))
	if err != nil {
		slog.Warn("membership delete failed", "err", err)
		api.Fail(w, http.StatusInternalServerError, "internal", "failed to leave group", reqID)
		return
	}
	if !removed {
		api.Fail(w, http.StatusNotFound, "not_found", "membership not found", reqID)
		return
	}
	api.Success(w, map[string]bool{"removed": true}, reqID)
}
