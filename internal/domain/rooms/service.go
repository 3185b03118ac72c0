package rooms

import (
	"context"
	"errors"
	"strings"
	"time"
)

var (
	ErrNotFound         = errors.New("room or booking not found")
	ErrSlotOccupied     = errors.New("room is already booked")
	ErrInvalidTimeRange = errors.New("start time must be before end time")
)

type Service struct {
	Store StoreAPI
}

func NewService(store StoreAPI) *Service {
	return &Service{Store: store}
}

func (s *Service) CreateRoom(ctx context.Context, name string, capacity int, location string) (Room, error) {
	return s.Store.CreateRoom(ctx, strings.TrimSpace(name), capacity, strings.TrimSpace(location))
}

func (s *Service) GetRoom(ctx context.Context, id string) (Room, error) {
	return s.Store.GetRoom(ctx, id)
}

func (s *Service) ListRooms(ctx context.Context) ([]Room, error) {
	return s.Store.ListRooms(ctx)
}

func (s *Service) UpdateRoom(ctx context.Context, id string, patch RoomUpdate) (Room, error) {
	room, err := s.Store.GetRoom(ctx, id)
	if err != nil {
		return Room{}, err
	}
	mergeRoom(&room, patch)
	if err := s.Store.UpdateRoom(ctx, room); err != nil {
		return Room{}, err
	}
	return room, nil
}

func (s *Service) DeleteRoom(ctx context.Context, id string) (bool, error) {
	return s.Store.DeleteRoom(ctx, id)
}

// Book reserves a slot. The store rejects with ErrSlotOccupied when the
// half-open interval overlaps an existing booking for the room and date.
func (s *Service) Book(ctx context.Context, booking Booking) (Booking, error) {
	if err := validateTimes(booking.StartTime, booking.EndTime); err != nil {
		return Booking{}, err
	}
	if _, err := s.Store.GetRoom(ctx, booking.RoomID); err != nil {
		return Booking{}, err
	}
	if err := s.Store.CreateBooking(ctx, booking); err != nil {
		return Booking{}, err
	}
	return s.Store.GetBooking(ctx, booking.Key())
}

func (s *Service) GetBooking(ctx context.Context, key BookingKey) (Booking, error) {
	return s.Store.GetBooking(ctx, key)
}

func (s *Service) ListBookings(ctx context.Context, roomID, userID string, date *time.Time) ([]Booking, error) {
	return s.Store.ListBookings(ctx, roomID, userID, date)
}

func (s *Service) UpdateBooking(ctx context.Context, key BookingKey, patch BookingUpdate) (Booking, error) {
	booking, err := s.Store.GetBooking(ctx, key)
	if err != nil {
		return Booking{}, err
	}
	mergeBooking(&booking, patch)
	if err := validateTimes(booking.StartTime, booking.EndTime); err != nil {
		return Booking{}, err
	}
	if err := s.Store.UpdateBooking(ctx, key, booking); err != nil {
		return Booking{}, err
	}
	return s.Store.GetBooking(ctx, booking.Key())
}

func (s *Service) CancelBooking(ctx context.Context, key BookingKey) (bool, error) {
	return s.Store.DeleteBooking(ctx, key)
}

func mergeRoom(room *Room, patch RoomUpdate) {
	if patch.Name != nil {
		room.Name = strings.TrimSpace(*patch.Name)
	}
	if patch.Capacity != nil {
		room.Capacity = *patch.Capacity
	}
	if patch.Location != nil {
		room.Location = strings.TrimSpace(*patch.Location)
	}
}

func mergeBooking(booking *Booking, patch BookingUpdate) {
	if patch.BookingDate != nil {
		booking.BookingDate = *patch.BookingDate
	}
	if patch.StartTime != nil {
		booking.StartTime = strings.TrimSpace(*patch.StartTime)
	}
	if patch.EndTime != nil {
		booking.EndTime = strings.TrimSpace(*patch.EndTime)
	}
	if patch.Purpose != nil {
		booking.Purpose = strings.TrimSpace(*patch.Purpose)
	}
}

func validateTimes(start, end string) error {
	startMin, err := ParseClock(start)
	if err != nil {
		return ErrInvalidTimeRange
	}
	endMin, err := ParseClock(end)
	if err != nil {
		return ErrInvalidTimeRange
	}
	if startMin >= endMin {
		return ErrInvalidTimeRange
	}
	return nil
}
