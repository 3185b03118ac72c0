package participationshandler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"workhub/internal/domain/events"
	"workhub/internal/transport/http/api"
	"workhub/internal/transport/http/middleware"
	"workhub/internal/transport/http/shared"
)

// Handler exposes the strict participation endpoints. Unlike the
// /events/{id}/attend route, a duplicate join here is a 400.
type Handler struct {
	Events *events.Service
}

func NewHandler(svc *events.Service) *Handler {
	return &Handler{Events: svc}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/eventparticipations", func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Post("/", h.handleJoin)
		r.Delete("/{eventID}", h.handleCancel)
	})
}

type joinRequest struct {
	EventID string `json:"eventId"`
}

func (h *Handler) handleJoin(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	user, _ := middleware.GetUser(r.Context())

	var payload joinRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid JSON body", reqID)
		return
	}

	v := shared.NewValidator()
	v.Required("eventId", payload.EventID, "eventId is required")
	if v.Reject(w, reqID) {
		return
	}

	participation, err := h.Events.JoinOrReject(r.Context(), user.UserID, payload.EventID)
	switch {
	case errors.Is(err, events.ErrNotFound):
		api.Fail(w, http.StatusNotFound, "not_found", "event not found", reqID)
		return
	case errors.Is(err, events.ErrAlreadyJoined):
		api.Fail(w, http.StatusBadRequest, "already_joined", "already participating in this event", reqID)
		return
	case errors.Is(err, events.ErrEventInPast):
		api.Fail(w, http.StatusBadRequest, "event_in_past", "event has already taken place", reqID)
		return
	case errors.Is(err, events.ErrScheduleClash):
		api.Fail(w, http.StatusBadRequest, "schedule_clash", "already attending another event at that time", reqID)
		return
	case err != nil:
		slog.Warn("participation create failed", "err", err)
		api.Fail(w, http.StatusInternalServerError, "internal", "failed to join event", reqID)
		return
	}

	api.Created(w, participation, reqID)
}

func (h *Handler) handleCancel(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	user, _ := middleware.GetUser(r.Context())

	removed, err := h.Events.Cancel(r.Context(), user.UserID, chi.URLParam(r, "eventID"))
	if err != nil {
		slog.Warn("participation cancel failed", "err", err)
		api.Fail(w, http.StatusInternalServerError, "internal", "failed to cancel participation", reqID)
		return
	}
	if !removed {
		api.Fail(w, http.StatusNotFound, "not_found", "participation not found", reqID)
		return
	}
	api.Success(w, map[string]bool{"cancelled": true}, reqID)
}
