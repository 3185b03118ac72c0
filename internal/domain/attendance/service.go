package attendance

import (
	"context"
	"errors"
	"time"
)

var (
	ErrNotFound      = errors.New("attendance record not found")
	ErrAlreadyLogged = errors.New("attendance already logged for this date")
	ErrInvalidStatus = errors.New("invalid attendance status")
	ErrNotOwner      = errors.New("attendance record belongs to another user")
)

type Service struct {
	Store StoreAPI
}

func NewService(store StoreAPI) *Service {
	return &Service{Store: store}
}

// Log records office presence for one UTC calendar day. A second log for
// the same (user, date) fails; the unique index makes the check hold under
// concurrency too.
func (s *Service) Log(ctx context.Context, userID string, date time.Time, status string) (Attendance, error) {
	if status == "" {
		status = StatusPresent
	}
	if !validStatus(status) {
		return Attendance{}, ErrInvalidStatus
	}
	return s.Store.Create(ctx, Attendance{
		UserID: userID,
		Date:   dateOnly(date),
		Status: status,
	})
}

func (s *Service) Get(ctx context.Context, id string) (Attendance, error) {
	return s.Store.Get(ctx, id)
}

func (s *Service) List(ctx context.Context, userID string, date *time.Time) ([]Attendance, error) {
	if date != nil {
		d := dateOnly(*date)
		date = &d
	}
	return s.Store.List(ctx, userID, date)
}

// Update applies the provided fields; only the owning user may change a
// record.
func (s *Service) Update(ctx context.Context, id, userID string, patch AttendanceUpdate) (Attendance, error) {
	a, err := s.Store.Get(ctx, id)
	if err != nil {
		return Attendance{}, err
	}
	if a.UserID != userID {
		return Attendance{}, ErrNotOwner
	}
	if patch.Date != nil {
		a.Date = dateOnly(*patch.Date)
	}
	if patch.Status != nil {
		if !validStatus(*patch.Status) {
			return Attendance{}, ErrInvalidStatus
		}
		a.Status = *patch.Status
	}
	if err := s.Store.Update(ctx, a); err != nil {
		return Attendance{}, err
	}
	return a, nil
}

func (s *Service) Delete(ctx context.Context, id, userID string) (bool, error) {
	a, err := s.Store.Get(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if a.UserID != userID {
		return false, ErrNotOwner
	}
	return s.Store.Delete(ctx, id)
}

func validStatus(status string) bool {
	return status == StatusPresent || status == StatusRemote
}

func dateOnly(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
