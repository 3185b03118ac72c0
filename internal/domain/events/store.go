package events

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const pgUniqueViolation = "23505"

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

func (s *Store) CreateEvent(ctx context.Context, event Event) (Event, error) {
	err := s.DB.QueryRow(ctx, `
    INSERT INTO events (title, description, event_date, start_time, end_time, location, created_by)
    VALUES ($1,$2,$3,$4,$5,$6,$7)
    RETURNING id, created_at, updated_at
  `, event.Title, event.Description, event.EventDate, event.StartTime, event.EndTime, event.Location, event.CreatedBy).
		Scan(&event.ID, &event.CreatedAt, &event.UpdatedAt)
	if err != nil {
		return Event{}, err
	}
	return event, nil
}

func (s *Store) GetEvent(ctx context.Context, id string) (Event, error) {
	var event Event
	err := s.DB.QueryRow(ctx, `
    SELECT id, title, description, event_date, start_time, end_time, location, COALESCE(created_by::text, ''), created_at, updated_at
    FROM events
    WHERE id = $1
  `, id).Scan(&event.ID, &event.Title, &event.Description, &event.EventDate, &event.StartTime, &event.EndTime, &event.Location, &event.CreatedBy, &event.CreatedAt, &event.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Event{}, ErrNotFound
	}
	if err != nil {
		return Event{}, err
	}
	return event, nil
}

func (s *Store) ListEvents(ctx context.Context) ([]Event, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, title, description, event_date, start_time, end_time, location, COALESCE(created_by::text, ''), created_at, updated_at
    FROM events
    ORDER BY event_date, start_time
  `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Event
	for rows.Next() {
		var event Event
		if err := rows.Scan(&event.ID, &event.Title, &event.Description, &event.EventDate, &event.StartTime, &event.EndTime, &event.Location, &event.CreatedBy, &event.CreatedAt, &event.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, event)
	}
	return out, rows.Err()
}

func (s *Store) UpdateEvent(ctx context.Context, event Event) error {
	tag, err := s.DB.Exec(ctx, `
    UPDATE events
    SET title = $1, description = $2, event_date = $3, start_time = $4, end_time = $5, location = $6, updated_at = now()
    WHERE id = $7
  `, event.Title, event.Description, event.EventDate, event.StartTime, event.EndTime, event.Location, event.ID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) DeleteEvent(ctx context.Context, id string) (bool, error) {
	tag, err := s.DB.Exec(ctx, "DELETE FROM events WHERE id = $1", id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (s *Store) GetParticipation(ctx context.Context, userID, eventID string) (Participation, error) {
	var p Participation
	err := s.DB.QueryRow(ctx, `
    SELECT user_id, event_id, status, created_at
    FROM event_participations
    WHERE user_id = $1 AND event_id = $2
  `, userID, eventID).Scan(&p.UserID, &p.EventID, &p.Status, &p.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Participation{}, ErrNotFound
	}
	if err != nil {
		return Participation{}, err
	}
	return p, nil
}

func (s *Store) CreateParticipation(ctx context.Context, p Participation) (Participation, error) {
	err := s.DB.QueryRow(ctx, `
    INSERT INTO event_participations (user_id, event_id, status)
    VALUES ($1,$2,$3)
    RETURNING created_at
  `, p.UserID, p.EventID, p.Status).Scan(&p.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return Participation{}, ErrAlreadyJoined
		}
		return Participation{}, err
	}
	return p, nil
}

func (s *Store) DeleteParticipation(ctx context.Context, userID, eventID string) (bool, error) {
	tag, err := s.DB.Exec(ctx, `
    DELETE FROM event_participations
    WHERE user_id = $1 AND event_id = $2
  `, userID, eventID)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// HasParticipationAt reports whether the user already joined another event
// starting at the same date and time.
func (s *Store) HasParticipationAt(ctx context.Context, userID string, date time.Time, startTime string) (bool, error) {
	var count int
	err := s.DB.QueryRow(ctx, `
    SELECT COUNT(1)
    FROM event_participations p
    JOIN events e ON p.event_id = e.id
    WHERE p.user_id = $1 AND e.event_date = $2 AND e.start_time = $3
  `, userID, date, startTime).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (s *Store) ListAttendees(ctx context.Context, eventID string) ([]Attendee, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT DISTINCT u.id, u.name, u.email
    FROM event_participations p
    JOIN employees u ON p.user_id = u.id
    WHERE p.event_id = $1
    ORDER BY u.name
  `, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Attendee
	for rows.Next() {
		var a Attendee
		if err := rows.Scan(&a.UserID, &a.Name, &a.Email); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (s *Store) CreateReview(ctx context.Context, review Review) (Review, error) {
	err := s.DB.QueryRow(ctx, `
    INSERT INTO event_reviews (event_id, user_id, rating, comment)
    VALUES ($1,$2,$3,$4)
    RETURNING id, created_at
  `, review.EventID, review.UserID, review.Rating, review.Comment).Scan(&review.ID, &review.CreatedAt)
	if err != nil {
		return Review{}, err
	}
	return review, nil
}

func (s *Store) GetReview(ctx context.Context, id string) (Review, error) {
	var review Review
	err := s.DB.QueryRow(ctx, `
    SELECT id, event_id, user_id, rating, comment, created_at
    FROM event_reviews
    WHERE id = $1
  `, id).Scan(&review.ID, &review.EventID, &review.UserID, &review.Rating, &review.Comment, &review.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Review{}, ErrNotFound
	}
	if err != nil {
		return Review{}, err
	}
	return review, nil
}

func (s *Store) ListReviews(ctx context.Context, eventID string) ([]Review, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, event_id, user_id, rating, comment, created_at
    FROM event_reviews
    WHERE event_id = $1
    ORDER BY created_at DESC
  `, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Review
	for rows.Next() {
		var review Review
		if err := rows.Scan(&review.ID, &review.EventID, &review.UserID, &review.Rating, &review.Comment, &review.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, review)
	}
	return out, rows.Err()
}

func (s *Store) DeleteReview(ctx context.Context, id string) (bool, error) {
	tag, err := s.DB.Exec(ctx, "DELETE FROM event_reviews WHERE id = $1", id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}
