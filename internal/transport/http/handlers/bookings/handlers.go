package bookingshandler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"workhub/internal/domain/rooms"
	"workhub/internal/transport/http/api"
	"workhub/internal/transport/http/middleware"
	"workhub/internal/transport/http/shared"
)

// Handler exposes room bookings. A booking is addressed by its composite
// key; the userId component always comes from the session, which is what
// makes mutations owner-only.
type Handler struct {
	Rooms *rooms.Service
}

func NewHandler(svc *rooms.Service) *Handler {
	return &Handler{Rooms: svc}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/roombookings", func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Post("/", h.handleCreate)
		r.Get("/", h.handleList)
		r.Put("/{roomID}", h.handleUpdate)
		r.Delete("/{roomID}", h.handleDelete)
	})
}

type bookingRequest struct {
	RoomID      string `json:"roomId"`
	BookingDate string `json:"bookingDate"`
	StartTime   string `json:"startTime"`
	EndTime     string `json:"endTime"`
	Purpose     string `json:"purpose"`
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	user, _ := middleware.GetUser(r.Context())

	var payload bookingRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid JSON body", reqID)
		return
	}

	v := shared.NewValidator()
	v.Required("roomId", payload.RoomID, "roomId is required")
	v.Required("startTime", payload.StartTime, "startTime is required")
	v.Required("endTime", payload.EndTime, "endTime is required")
	v.Clock("startTime", payload.StartTime)
	v.Clock("endTime", payload.EndTime)
	bookingDate, _ := v.Date("bookingDate", payload.BookingDate)
	if v.Reject(w, reqID) {
		return
	}

	booking, err := h.Rooms.Book(r.Context(), rooms.Booking{
		RoomID:      payload.RoomID,
		UserID:      user.UserID,
		BookingDate: shared.NormalizeDate(bookingDate),
		StartTime:   payload.StartTime,
		EndTime:     payload.EndTime,
		Purpose:     payload.Purpose,
	})
	if err != nil {
		failBooking(w, err, reqID)
		return
	}
	api.Created(w, booking, reqID)
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())

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

	list, err := h.Rooms.ListBookings(r.Context(), r.URL.Query().Get("roomId"), r.URL.Query().Get("userId"), date)
	if err != nil {
		slog.Warn("booking list failed", "err", err)
		api.Fail(w, http.StatusInternalServerError, "internal", "failed to list bookings", reqID)
		return
	}
	api.Success(w, list, reqID)
}

type bookingUpdateRequest struct {
	BookingDate *string `json:"bookingDate"`
	StartTime   *string `json:"startTime"`
	EndTime     *string `json:"endTime"`
	Purpose     *string `json:"purpose"`
}

// handleUpdate addresses the booking by roomID path segment plus the
// date and startTime query parameters. The session user completes the key.
func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	user, _ := middleware.GetUser(r.Context())

	key, ok := h.bookingKey(w, r, user.UserID, reqID)
	if !ok {
		return
	}

	var payload bookingUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid JSON body", reqID)
		return
	}

	patch := rooms.BookingUpdate{
		StartTime: payload.StartTime,
		EndTime:   payload.EndTime,
		Purpose:   payload.Purpose,
	}
	if payload.BookingDate != nil {
		parsed, err := shared.ParseDate(*payload.BookingDate)
		if err != nil {
			api.Fail(w, http.StatusBadRequest, "validation_error", "bookingDate must be YYYY-MM-DD", reqID)
			return
		}
		normalized := shared.NormalizeDate(parsed)
		patch.BookingDate = &normalized
	}

	booking, err := h.Rooms.UpdateBooking(r.Context(), key, patch)
	if err != nil {
		failBooking(w, err, reqID)
		return
	}
	api.Success(w, booking, reqID)
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	user, _ := middleware.GetUser(r.Context())

	key, ok := h.bookingKey(w, r, user.UserID, reqID)
	if !ok {
		return
	}

	removed, err := h.Rooms.CancelBooking(r.Context(), key)
	if err != nil {
		slog.Warn("booking cancel failed", "err", err)
		api.Fail(w, http.StatusInternalServerError, "internal", "failed to cancel booking", reqID)
		return
	}
	if !removed {
		api.Fail(w, http.StatusNotFound, "not_found", "booking not found", reqID)
		return
	}
	api.Success(w, map[string]bool{"cancelled": true}, reqID)
}

func (h *Handler) bookingKey(w http.ResponseWriter, r *http.Request, userID, reqID string) (rooms.BookingKey, bool) {
	startTime := r.URL.Query().Get("startTime")
	rawDate := r.URL.Query().Get("date")

	v := shared.NewValidator()
	v.Required("startTime", startTime, "startTime query parameter is required")
	date, _ := v.Date("date", rawDate)
	if v.Reject(w, reqID) {
		return rooms.BookingKey{}, false
	}

	return rooms.BookingKey{
		RoomID:      chi.URLParam(r, "roomID"),
		UserID:      userID,
		BookingDate: shared.NormalizeDate(date),
		StartTime:   startTime,
	}, true
}

func failBooking(w http.ResponseWriter, err error, reqID string) {
	switch {
	case errors.Is(err, rooms.ErrSlotOccupied):
		api.Fail(w, http.StatusBadRequest, "slot_occupied", "Room is already booked", reqID)
	case errors.Is(err, rooms.ErrInvalidTimeRange):
		api.Fail(w, http.StatusBadRequest, "validation_error", "startTime must be before endTime", reqID)
	case errors.Is(err, rooms.ErrNotFound):
		api.Fail(w, http.StatusNotFound, "not_found", "room or booking not found", reqID)
	default:
		slog.Warn("booking operation failed", "err", err)
		api.Fail(w, http.StatusInternalServerError, "internal", "booking operation failed", reqID)
	}
}
