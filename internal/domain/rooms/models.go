package rooms

import "time"

type Room struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Capacity  int       `json:"capacity"`
	Location  string    `json:"location"`
	CreatedAt time.Time `json:"createdAt"`
}

type RoomUpdate struct {
	Name     *string `json:"name"`
	Capacity *int    `json:"capacity"`
	Location *string `json:"location"`
}

// Booking has no surrogate key; the (room, user, date, start) tuple is its
// identity. Times are wall-clock "HH:MM" strings on the booking date.
type Booking struct {
	RoomID      string    `json:"roomId"`
	UserID      string    `json:"userId"`
	BookingDate time.Time `json:"bookingDate"`
	StartTime   string    `json:"startTime"`
	EndTime     string    `json:"endTime"`
	Purpose     string    `json:"purpose"`
	CreatedAt   time.Time `json:"createdAt"`
}

type BookingKey struct {
	RoomID      string
	UserID      string
	BookingDate time.Time
	StartTime   string
}

func (b Booking) Key() BookingKey {
	return BookingKey{RoomID: b.RoomID, UserID: b.UserID, BookingDate: b.BookingDate, StartTime: b.StartTime}
}

type BookingUpdate struct {
	BookingDate *time.Time `json:"bookingDate"`
	StartTime   *string    `json:"startTime"`
	EndTime     *string    `json:"endTime"`
	Purpose     *string    `json:"purpose"`
}
