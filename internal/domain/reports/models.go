package reports

import "time"

// AttendanceRow summarizes one employee's office presence over a period.
type AttendanceRow struct {
	UserID       string `json:"userId"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	DaysPresent  int    `json:"daysPresent"`
	DaysRemote   int    `json:"daysRemote"`
	EventsJoined int    `json:"eventsJoined"`
}

// RoomUsageRow summarizes bookings per room over a period.
type RoomUsageRow struct {
	RoomID        string `json:"roomId"`
	Name          string `json:"name"`
	Location      string `json:"location"`
	Bookings      int    `json:"bookings"`
	MinutesBooked int    `json:"minutesBooked"`
}

// Period bounds a report; both ends are inclusive dates.
type Period struct {
	From time.Time
	To   time.Time
}
