package attendance

import (
	"context"
	"time"
)

type StoreAPI interface {
	Create(ctx context.Context, a Attendance) (Attendance, error)
	Get(ctx context.Context, id string) (Attendance, error)
	List(ctx context.Context, userID string, date *time.Time) ([]Attendance, error)
	Update(ctx context.Context, a Attendance) error
	Delete(ctx context.Context, id string) (bool, error)
}
