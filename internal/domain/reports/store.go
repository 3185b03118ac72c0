package reports

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

func (s *Store) AttendanceSummary(ctx context.Context, period Period) ([]AttendanceRow, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT e.id, e.name, e.email,
           COUNT(a.id) FILTER (WHERE a.status = 'present') AS days_present,
           COUNT(a.id) FILTER (WHERE a.status = 'remote') AS days_remote,
           (SELECT COUNT(1)
              FROM event_participations p
              JOIN events ev ON p.event_id = ev.id
             WHERE p.user_id = e.id
               AND ev.event_date BETWEEN $1 AND $2) AS events_joined
    FROM employees e
    LEFT JOIN office_attendances a
      ON a.user_id = e.id AND a.date BETWEEN $1 AND $2
    GROUP BY e.id, e.name, e.email
    ORDER BY e.name
  `, period.From, period.To)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []AttendanceRow
	for rows.Next() {
		var row AttendanceRow
		if err := rows.Scan(&row.UserID, &row.Name, &row.Email, &row.DaysPresent, &row.DaysRemote, &row.EventsJoined); err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

func (s *Store) RoomUsage(ctx context.Context, period Period) ([]RoomUsageRow, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT r.id, r.name, r.location,
           COUNT(b.room_id) AS bookings,
           COALESCE(SUM(
             (split_part(b.end_time, ':', 1)::int * 60 + split_part(b.end_time, ':', 2)::int) -
             (split_part(b.start_time, ':', 1)::int * 60 + split_part(b.start_time, ':', 2)::int)
           ), 0) AS minutes_booked
    FROM rooms r
    LEFT JOIN room_bookings b
      ON b.room_id = r.id AND b.booking_date BETWEEN $1 AND $2
    GROUP BY r.id, r.name, r.location
    ORDER BY r.name
  `, period.From, period.To)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []RoomUsageRow
	for rows.Next() {
		var row RoomUsageRow
		if err := rows.Scan(&row.RoomID, &row.Name, &row.Location, &row.Bookings, &row.MinutesBooked); err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, rows.Err()
}
