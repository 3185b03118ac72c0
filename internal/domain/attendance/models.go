package attendance

import "time"

const (
	StatusPresent = "present"
	StatusRemote  = "remote"
)

// Attendance records that a user was in the office on a given day. Date
// carries no time component; it is normalized to UTC midnight before it
// reaches this package.
type Attendance struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Date      time.Time `json:"date"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
}

type AttendanceUpdate struct {
	Date   *time.Time `json:"date"`
	Status *string    `json:"status"`
}
