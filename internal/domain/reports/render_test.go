package reports

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"
	"time"
)

func TestWriteAttendanceCSV(t *testing.T) {
	rows := []AttendanceRow{
		{UserID: "u1", Name: "Alice Ng", Email: "alice@example.com", DaysPresent: 12, DaysRemote: 3, EventsJoined: 2},
		{UserID: "u2", Name: "Bob Tan", Email: "bob@example.com", DaysPresent: 8, DaysRemote: 0, EventsJoined: 0},
	}

	var buf bytes.Buffer
	if err := WriteAttendanceCSV(&buf, rows); err != nil {
		t.Fatalf("write csv: %v", err)
	}

	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("expected header + 2 rows, got %d records", len(records))
	}
	if records[0][0] != "userId" {
		t.Fatalf("header = %v", records[0])
	}
	if records[1][3] != "12" || records[1][4] != "3" {
		t.Fatalf("alice counts = %v", records[1])
	}
}

func TestWriteRoomUsageCSVEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteRoomUsageCSV(&buf, nil); err != nil {
		t.Fatalf("write csv: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("expected header only, got %d lines", len(lines))
	}
}

func TestWriteAttendancePDFProducesDocument(t *testing.T) {
	period := Period{
		From: time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC),
		To:   time.Date(2026, 4, 30, 0, 0, 0, 0, time.UTC),
	}
	rows := []AttendanceRow{{UserID: "u1", Name: "Alice Ng", Email: "alice@example.com", DaysPresent: 10}}

	var buf bytes.Buffer
	if err := WriteAttendancePDF(&buf, period, rows); err != nil {
		t.Fatalf("write pdf: %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("%PDF")) {
		t.Fatalf("output does not look like a PDF, starts with %q", buf.Bytes()[:8])
	}
}

func TestNormalizePeriod(t *testing.T) {
	now := time.Date(2026, 4, 15, 10, 30, 0, 0, time.UTC)
	svc := &Service{Now: func() time.Time { return now }}

	period, err := svc.NormalizePeriod(nil, nil)
	if err != nil {
		t.Fatalf("defaults: %v", err)
	}
	if period.To != time.Date(2026, 4, 15, 0, 0, 0, 0, time.UTC) {
		t.Fatalf("default To = %v", period.To)
	}
	if period.From != time.Date(2026, 3, 16, 0, 0, 0, 0, time.UTC) {
		t.Fatalf("default From = %v", period.From)
	}

	from := time.Date(2026, 4, 20, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 4, 10, 0, 0, 0, 0, time.UTC)
	if _, err := svc.NormalizePeriod(&from, &to); err != ErrInvalidPeriod {
		t.Fatalf("expected ErrInvalidPeriod, got %v", err)
	}
}
