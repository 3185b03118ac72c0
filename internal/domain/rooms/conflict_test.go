package rooms

import (
	"testing"
	"time"
)

func TestParseClock(t *testing.T) {
	tests := []struct {
		input   string
		want    int
		wantErr bool
	}{
		{input: "00:00", want: 0},
		{input: "09:00", want: 540},
		{input: "09:30", want: 570},
		{input: "23:59", want: 1439},
		{input: " 10:15 ", want: 615},
		{input: "24:00", wantErr: true},
		{input: "09:60", wantErr: true},
		{input: "9", wantErr: true},
		{input: "", wantErr: true},
		{input: "morning", wantErr: true},
	}

	for _, tc := range tests {
		got, err := ParseClock(tc.input)
		if tc.wantErr {
			if err == nil {
				t.Errorf("ParseClock(%q): expected error", tc.input)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseClock(%q): unexpected error %v", tc.input, err)
			continue
		}
		if got != tc.want {
			t.Errorf("ParseClock(%q) = %d, want %d", tc.input, got, tc.want)
		}
	}
}

func TestOverlaps(t *testing.T) {
	tests := []struct {
		name                           string
		aStart, aEnd, bStart, bEnd int
		want                           bool
	}{
		{name: "identical", aStart: 540, aEnd: 600, bStart: 540, bEnd: 600, want: true},
		{name: "partial overlap", aStart: 540, aEnd: 600, bStart: 570, bEnd: 630, want: true},
		{name: "contained", aStart: 540, aEnd: 660, bStart: 570, bEnd: 600, want: true},
		{name: "back to back", aStart: 540, aEnd: 600, bStart: 600, bEnd: 660, want: false},
		{name: "back to back reversed", aStart: 600, aEnd: 660, bStart: 540, bEnd: 600, want: false},
		{name: "disjoint", aStart: 540, aEnd: 600, bStart: 720, bEnd: 780, want: false},
		{name: "one minute overlap", aStart: 540, aEnd: 601, bStart: 600, bEnd: 660, want: true},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			if got := Overlaps(tc.aStart, tc.aEnd, tc.bStart, tc.bEnd); got != tc.want {
				t.Fatalf("Overlaps(%d,%d,%d,%d) = %v, want %v", tc.aStart, tc.aEnd, tc.bStart, tc.bEnd, got, tc.want)
			}
		})
	}
}

func TestHasConflict(t *testing.T) {
	date := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)
	otherDate := date.AddDate(0, 0, 1)

	existing := []Booking{
		{RoomID: "r1", UserID: "u1", BookingDate: date, StartTime: "09:00", EndTime: "10:00"},
		{RoomID: "r1", UserID: "u2", BookingDate: date, StartTime: "14:00", EndTime: "15:00"},
		{RoomID: "r2", UserID: "u1", BookingDate: date, StartTime: "09:00", EndTime: "17:00"},
		{RoomID: "r1", UserID: "u3", BookingDate: otherDate, StartTime: "09:00", EndTime: "17:00"},
	}

	tests := []struct {
		name      string
		candidate Booking
		exclude   *BookingKey
		want      bool
	}{
		{
			name:      "overlapping same room",
			candidate: Booking{RoomID: "r1", UserID: "v", BookingDate: date, StartTime: "09:30", EndTime: "10:30"},
			want:      true,
		},
		{
			name:      "back to back is free",
			candidate: Booking{RoomID: "r1", UserID: "v", BookingDate: date, StartTime: "10:00", EndTime: "11:00"},
			want:      false,
		},
		{
			name:      "ends exactly at existing start",
			candidate: Booking{RoomID: "r1", UserID: "v", BookingDate: date, StartTime: "08:00", EndTime: "09:00"},
			want:      false,
		},
		{
			name:      "different room all day",
			candidate: Booking{RoomID: "r3", UserID: "v", BookingDate: date, StartTime: "00:00", EndTime: "23:59"},
			want:      false,
		},
		{
			name:      "same slot different date",
			candidate: Booking{RoomID: "r1", UserID: "v", BookingDate: otherDate.AddDate(0, 0, 1), StartTime: "09:00", EndTime: "10:00"},
			want:      false,
		},
		{
			name:      "update excluding own key",
			candidate: Booking{RoomID: "r1", UserID: "u1", BookingDate: date, StartTime: "09:15", EndTime: "09:45"},
			exclude:   &BookingKey{RoomID: "r1", UserID: "u1", BookingDate: date, StartTime: "09:00"},
			want:      false,
		},
		{
			name:      "update colliding with another booking",
			candidate: Booking{RoomID: "r1", UserID: "u1", BookingDate: date, StartTime: "14:30", EndTime: "15:30"},
			exclude:   &BookingKey{RoomID: "r1", UserID: "u1", BookingDate: date, StartTime: "09:00"},
			want:      true,
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			got, err := HasConflict(existing, tc.candidate, tc.exclude)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tc.want {
				t.Fatalf("HasConflict = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestHasConflictRejectsBadTimes(t *testing.T) {
	date := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)
	candidate := Booking{RoomID: "r1", BookingDate: date, StartTime: "not-a-time", EndTime: "10:00"}
	if _, err := HasConflict(nil, candidate, nil); err == nil {
		t.Fatal("expected error for malformed start time")
	}
}
