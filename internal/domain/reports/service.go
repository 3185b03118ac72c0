package reports

import (
	"context"
	"errors"
	"time"
)

var ErrInvalidPeriod = errors.New("report period end precedes start")

type StoreAPI interface {
	AttendanceSummary(ctx context.Context, period Period) ([]AttendanceRow, error)
	RoomUsage(ctx context.Context, period Period) ([]RoomUsageRow, error)
}

type Service struct {
	Store StoreAPI
	Now   func() time.Time
}

func NewService(store StoreAPI) *Service {
	return &Service{Store: store, Now: time.Now}
}

// NormalizePeriod fills missing bounds with a trailing 30-day window and
// truncates both ends to UTC dates.
func (s *Service) NormalizePeriod(from, to *time.Time) (Period, error) {
	now := s.Now().UTC()
	period := Period{
		From: now.AddDate(0, 0, -30),
		To:   now,
	}
	if from != nil {
		period.From = *from
	}
	if to != nil {
		period.To = *to
	}
	period.From = dateOnly(period.From)
	period.To = dateOnly(period.To)
	if period.To.Before(period.From) {
		return Period{}, ErrInvalidPeriod
	}
	return period, nil
}

func (s *Service) Attendance(ctx context.Context, period Period) ([]AttendanceRow, error) {
	return s.Store.AttendanceSummary(ctx, period)
}

func (s *Service) Rooms(ctx context.Context, period Period) ([]RoomUsageRow, error) {
	return s.Store.RoomUsage(ctx, period)
}

func dateOnly(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
