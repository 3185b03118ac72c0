package eventshandler

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

type Handler struct {
	Events *events.Service
}

func NewHandler(svc *events.Service) *Handler {
	return &Handler{Events: svc}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/events", func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Get("/", h.handleList)
		r.Get("/{eventID}", h.handleGet)
		r.With(middleware.RequireAdmin).Post("/", h.handleCreate)
		r.With(middleware.RequireAdmin).Put("/{eventID}", h.handleUpdate)
		r.With(middleware.RequireAdmin).Delete("/{eventID}", h.handleDelete)

		r.Post("/{eventID}/attend", h.handleAttend)
		r.Get("/{eventID}/attendees", h.handleAttendees)
		r.Post("/{eventID}/reviews", h.handleAddReview)
		r.Get("/{eventID}/reviews", h.handleListReviews)
		r.With(middleware.RequireAdmin).Delete("/{eventID}/reviews/{reviewID}", h.handleDeleteReview)
	})
}

type eventRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	EventDate   string `json:"eventDate"`
	StartTime   string `json:"startTime"`
	EndTime     string `json:"endTime"`
	Location    string `json:"location"`
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())

	var payload eventRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid JSON body", reqID)
		return
	}

	v := shared.NewValidator()
	v.Required("title", payload.Title, "title is required")
	v.Required("startTime", payload.StartTime, "startTime is required")
	v.Required("endTime", payload.EndTime, "endTime is required")
	v.Clock("startTime", payload.StartTime)
	v.Clock("endTime", payload.EndTime)
	eventDate, _ := v.Date("eventDate", payload.EventDate)
	if v.Reject(w, reqID) {
		return
	}

	user, _ := middleware.GetUser(r.Context())
	event, err := h.Events.Create(r.Context(), events.Event{
		Title:       payload.Title,
		Description: payload.Description,
		EventDate:   shared.NormalizeDate(eventDate),
		StartTime:   payload.StartTime,
		EndTime:     payload.EndTime,
		Location:    payload.Location,
		CreatedBy:   user.UserID,
	})
	if err != nil {
		slog.Warn("event create failed", "err", err)
		api.Fail(w, http.StatusInternalServerError, "internal", "failed to create event", reqID)
		return
	}
	api.Created(w, event, reqID)
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	list, err := h.Events.List(r.Context())
	if err != nil {
		slog.Warn("event list failed", "err", err)
		api.Fail(w, http.StatusInternalServerError, "internal", "failed to list events", reqID)
		return
	}
	api.Success(w, list, reqID)
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	event, err := h.Events.Get(r.Context(), chi.URLParam(r, "eventID"))
	if errors.Is(err, events.ErrNotFound) {
		api.Fail(w, http.StatusNotFound, "not_found", "event not found", reqID)
		return
	}
	if err != nil {
		slog.Warn("event get failed", "err", err)
		api.Fail(w, http.StatusInternalServerError, "internal", "failed to load event", reqID)
		return
	}
	api.Success(w, event, reqID)
}

type eventUpdateRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	EventDate   *string `json:"eventDate"`
	StartTime   *string `json:"startTime"`
	EndTime     *string `json:"endTime"`
	Location    *string `json:"location"`
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())

	var payload eventUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid JSON body", reqID)
		return
	}

	patch := events.EventUpdate{
		Title:       payload.Title,
		Description: payload.Description,
		StartTime:   payload.StartTime,
		EndTime:     payload.EndTime,
		Location:    payload.Location,
	}
	v := shared.NewValidator()
	if payload.StartTime != nil {
		v.Clock("startTime", *payload.StartTime)
	}
	if payload.EndTime != nil {
		v.Clock("endTime", *payload.EndTime)
	}
	if payload.EventDate != nil {
		if parsed, ok := v.Date("eventDate", *payload.EventDate); ok {
			normalized := shared.NormalizeDate(parsed)
			patch.EventDate = &normalized
		}
	}
	if v.Reject(w, reqID) {
		return
	}

	event, err := h.Events.Update(r.Context(), chi.URLParam(r, "eventID"), patch)
	if errors.Is(err, events.ErrNotFound) {
		api.Fail(w, http.StatusNotFound, "not_found", "event not found", reqID)
		return
	}
	if err != nil {
		slog.Warn("event update failed", "err", err)
		api.Fail(w, http.StatusInternalServerError, "internal", "failed to update event", reqID)
		return
	}
	api.Success(w, event, reqID)
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	removed, err := h.Events.Delete(r.Context(), chi.URLParam(r, "eventID"))
	if err != nil {
		slog.Warn("event delete failed", "err", err)
		api.Fail(w, http.StatusInternalServerError, "internal", "failed to delete event", reqID)
		return
	}
	if !removed {
		api.Fail(w, http.StatusNotFound, "not_found", "event not found", reqID)
		return
	}
	api.Success(w, map[string]bool{"deleted": true}, reqID)
}

// handleAttend is the tolerant join: attending an event twice returns the
// original participation with a 200 instead of an error.
func (h *Handler) handleAttend(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	user, _ := middleware.GetUser(r.Context())

	participation, created, err := h.Events.JoinOrGetExisting(r.Context(), user.UserID, chi.URLParam(r, "eventID"))
	if err != nil {
		failJoin(w, err, reqID)
		return
	}
	if created {
		api.Created(w, participation, reqID)
		return
	}
	api.Success(w, participation, reqID)
}

func (h *Handler) handleAttendees(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	attendees, err := h.Events.Attendees(r.Context(), chi.URLParam(r, "eventID"))
	if errors.Is(err, events.ErrNotFound) {
		api.Fail(w, http.StatusNotFound, "not_found", "event not found", reqID)
		return
	}
	if err != nil {
		slog.Warn("attendee list failed", "err", err)
		api.Fail(w, http.StatusInternalServerError, "internal", "failed to list attendees", reqID)
		return
	}
	api.Success(w, attendees, reqID)
}

type reviewRequest struct {
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

func (h *Handler) handleAddReview(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	user, _ := middleware.GetUser(r.Context())

	var payload reviewRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid JSON body", reqID)
		return
	}

	review, err := h.Events.AddReview(r.Context(), chi.URLParam(r, "eventID"), user.UserID, payload.Rating, payload.Comment)
	if errors.Is(err, events.ErrInvalidRating) {
		api.Fail(w, http.StatusBadRequest, "validation_error", "rating must be between 1 and 5", reqID)
		return
	}
	if errors.Is(err, events.ErrNotFound) {
		api.Fail(w, http.StatusNotFound, "not_found", "event not found", reqID)
		return
	}
	if err != nil {
		slog.Warn("review create failed", "err", err)
		api.Fail(w, http.StatusInternalServerError, "internal", "failed to create review", reqID)
		return
	}
	api.Created(w, review, reqID)
}

func (h *Handler) handleListReviews(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	reviews, err := h.Events.ListReviews(r.Context(), chi.URLParam(r, "eventID"))
	if errors.Is(err, events.ErrNotFound) {
		api.Fail(w, http.StatusNotFound, "not_found", "event not found", reqID)
		return
	}
	if err != nil {
		slog.Warn("review list failed", "err", err)
		api.Fail(w, http.StatusInternalServerError, "internal", "failed to list reviews", reqID)
		return
	}
	api.Success(w, reviews, reqID)
}

func (h *Handler) handleDeleteReview(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	removed, err := h.Events.DeleteReview(r.Context(), chi.URLParam(r, "reviewID"))
	if err != nil {
		slog.Warn("review delete failed", "err", err)
		api.Fail(w, http.StatusInternalServerError, "internal", "failed to delete review", reqID)
		return
	}
	if !removed {
		api.Fail(w, http.StatusNotFound, "not_found", "review not found", reqID)
		return
	}
	api.Success(w, map[string]bool{"deleted": true}, reqID)
}

// failJoin maps the join-time domain errors onto the API error taxonomy.
// Every domain-rule violation is a 400; only a missing event is a 404.
func failJoin(w http.ResponseWriter, err error, reqID string) {
	switch {
	case errors.Is(err, events.ErrNotFound):
		api.Fail(w, http.StatusNotFound, "not_found", "event not found", reqID)
	case errors.Is(err, events.ErrEventInPast):
		api.Fail(w, http.StatusBadRequest, "event_in_past", "event has already taken place", reqID)
	case errors.Is(err, events.ErrScheduleClash):
		api.Fail(w, http.StatusBadRequest, "schedule_clash", "already attending another event at that time", reqID)
	case errors.Is(err, events.ErrAlreadyJoined):
		api.Fail(w, http.StatusBadRequest, "already_joined", "already participating in this event", reqID)
	default:
		slog.Warn("event join failed", "err", err)
		api.Fail(w, http.StatusInternalServerError, "internal", "failed to join event", reqID)
	}
}
