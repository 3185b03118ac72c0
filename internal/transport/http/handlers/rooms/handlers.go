package roomshandler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"workhub/internal/domain/rooms"
	"workhub/internal/transport/http/api"
	"workhub/internal/transport/http/middleware"
	"workhub/internal/transport/http/shared"
)

type Handler struct {
	Rooms *rooms.Service
}

func NewHandler(svc *rooms.Service) *Handler {
	return &Handler{Rooms: svc}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/rooms", func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Get("/", h.handleList)
		r.Get("/{roomID}", h.handleGet)
		r.With(middleware.RequireAdmin).Post("/", h.handleCreate)
		r.With(middleware.RequireAdmin).Put("/{roomID}", h.handleUpdate)
		r.With(middleware.RequireAdmin).Delete("/{roomID}", h.handleDelete)
	})
}

type roomRequest struct {
	Name     string `json:"name"`
	Capacity int    `json:"capacity"`
	Location string `json:"location"`
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())

	var payload roomRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid JSON body", reqID)
		return
	}

	v := shared.NewValidator()
	v.Required("name", payload.Name, "name is required")
	if payload.Capacity < 0 {
		v.Add("capacity", "must not be negative")
	}
	if v.Reject(w, reqID) {
		return
	}

	room, err := h.Rooms.CreateRoom(r.Context(), payload.Name, payload.Capacity, payload.Location)
	if err != nil {
		slog.Warn("room create failed", "err", err)
		api.Fail(w, http.StatusInternalServerError, "internal", "failed to create room", reqID)
		return
	}
	api.Created(w, room, reqID)
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	list, err := h.Rooms.ListRooms(r.Context())
	if err != nil {
		slog.Warn("room list failed", "err", err)
		api.Fail(w, http.StatusInternalServerError, "internal", "failed to list rooms", reqID)
		return
	}
	api.Success(w, list, reqID)
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	room, err := h.Rooms.GetRoom(r.Context(), chi.URLParam(r, "roomID"))
	if errors.Is(err, rooms.ErrNotFound) {
		api.Fail(w, http.StatusNotFound, "not_found", "room not found", reqID)
		return
	}
	if err != nil {
		slog.Warn("room get failed", "err", err)
		api.Fail(w, http.StatusInternalServerError, "internal", "failed to load room", reqID)
		return
	}
	api.Success(w, room, reqID)
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())

	var patch rooms.RoomUpdate
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid JSON body", reqID)
		return
	}

	room, err := h.Rooms.UpdateRoom(r.Context(), chi.URLParam(r, "roomID"), patch)
	if errors.Is(err, rooms.ErrNotFound) {
		api.Fail(w, http.StatusNotFound, "not_found", "room not found", reqID)
		return
	}
	if err != nil {
		slog.Warn("room update failed", "err", err)
		api.Fail(w, http.StatusInternalServerError, "internal", "failed to update room", reqID)
		return
	}
	api.Success(w, room, reqID)
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	removed, err := h.Rooms.DeleteRoom(r.Context(), chi.URLParam(r, "roomID"))
	if err != nil {
		slog.Warn("room delete failed", "err", err)
		api.Fail(w, http.StatusInternalServerError, "internal", "failed to delete room", reqID)
		return
	}
	if !removed {
		api.Fail(w, http.StatusNotFound, "not_found", "room not found", reqID)
		return
	}
	api.Success(w, map[string]bool{"deleted": true}, reqID)
}
