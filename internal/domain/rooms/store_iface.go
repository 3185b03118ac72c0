package rooms

import (
	"context"
	"time"
)

type StoreAPI interface {
	CreateRoom(ctx context.Context, name string, capacity int, location string) (Room, error)
	GetRoom(ctx context.Context, id string) (Room, error)
	ListRooms(ctx context.Context) ([]Room, error)
	UpdateRoom(ctx context.Context, room Room) error
	DeleteRoom(ctx context.Context, id string) (bool, error)

	CreateBooking(ctx context.Context, booking Booking) error
	GetBooking(ctx context.Context, key BookingKey) (Booking, error)
	ListBookings(ctx context.Context, roomID, userID string, date *time.Time) ([]Booking, error)
	UpdateBooking(ctx context.Context, key BookingKey, booking Booking) error
	DeleteBooking(ctx context.Context, key BookingKey) (bool, error)
}
