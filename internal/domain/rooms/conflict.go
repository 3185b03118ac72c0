package rooms

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ParseClock converts "HH:MM" to minutes since midnight.
func ParseClock(value string) (int, error) {
	parts := strings.SplitN(strings.TrimSpace(value), ":", 2)
	if len(parts) != 2 {
		return 0, fmt.Errorf("invalid time %q", value)
	}
	hours, err := strconv.Atoi(parts[0])
	if err != nil || hours < 0 || hours > 23 {
		return 0, fmt.Errorf("invalid time %q", value)
	}
	minutes, err := strconv.Atoi(parts[1])
	if err != nil || minutes < 0 || minutes > 59 {
		return 0, fmt.Errorf("invalid time %q", value)
	}
	return hours*60 + minutes, nil
}

// Overlaps reports whether the half-open intervals [aStart,aEnd) and
// [bStart,bEnd) intersect. A booking ending exactly when another starts
// does not overlap.
func Overlaps(aStart, aEnd, bStart, bEnd int) bool {
	return aStart < bEnd && bStart < aEnd
}

// HasConflict checks the candidate slot against existing bookings for the
// same room and date. A booking matching exclude is skipped so updates do
// not collide with themselves.
func HasConflict(existing []Booking, candidate Booking, exclude *BookingKey) (bool, error) {
	candStart, err := ParseClock(candidate.StartTime)
	if err != nil {
		return false, err
	}
	candEnd, err := ParseClock(candidate.EndTime)
	if err != nil {
		return false, err
	}

	for _, b := range existing {
		if b.RoomID != candidate.RoomID || !sameDay(b.BookingDate, candidate.BookingDate) {
			continue
		}
		if exclude != nil && matchesKey(b, *exclude) {
			continue
		}
		start, err := ParseClock(b.StartTime)
		if err != nil {
			return false, err
		}
		end, err := ParseClock(b.EndTime)
		if err != nil {
			return false, err
		}
		if Overlaps(start, end, candStart, candEnd) {
			return true, nil
		}
	}
	return false, nil
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.UTC().Date()
	by, bm, bd := b.UTC().Date()
	return ay == by && am == bm && ad == bd
}

func matchesKey(b Booking, key BookingKey) bool {
	return b.RoomID == key.RoomID &&
		b.UserID == key.UserID &&
		sameDay(b.BookingDate, key.BookingDate) &&
		b.StartTime == key.StartTime
}
