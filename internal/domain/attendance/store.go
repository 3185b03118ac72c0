package attendance

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

func (s *Store) Create(ctx context.Context, a Attendance) (Attendance, error) {
	err := s.DB.QueryRow(ctx, `
    INSERT INTO office_attendances (user_id, date, status)
    VALUES ($1,$2,$3)
    RETURNING id, created_at
  `, a.UserID, a.Date, a.Status).Scan(&a.ID, &a.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return Attendance{}, ErrAlreadyLogged
		}
		return Attendance{}, err
	}
	return a, nil
}

func (s *Store) Get(ctx context.Context, id string) (Attendance, error) {
	var a Attendance
	err := s.DB.QueryRow(ctx, `
    SELECT id, user_id, date, status, created_at
    FROM office_attendances
    WHERE id = $1
  `, id).Scan(&a.ID, &a.UserID, &a.Date, &a.Status, &a.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Attendance{}, ErrNotFound
	}
	if err != nil {
		return Attendance{}, err
	}
	return a, nil
}

func (s *Store) List(ctx context.Context, userID string, date *time.Time) ([]Attendance, error) {
	query := `
    SELECT id, user_id, date, status, created_at
    FROM office_attendances
    WHERE 1=1
  `
	args := []any{}
	if userID != "" {
		args = append(args, userID)
		query += " AND user_id = $1"
	}
	if date != nil {
		args = append(args, *date)
		if len(args) == 1 {
			query += " AND date = $1"
		} else {
			query += " AND date = $2"
		}
	}
	query += " ORDER BY date DESC"

	rows, err := s.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Attendance
	for rows.Next() {
		var a Attendance
		if err := rows.Scan(&a.ID, &a.UserID, &a.Date, &a.Status, &a.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (s *Store) Update(ctx context.Context, a Attendance) error {
	tag, err := s.DB.Exec(ctx, `
    UPDATE office_attendances
    SET date = $1, status = $2
    WHERE id = $3
  `, a.Date, a.Status, a.ID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return ErrAlreadyLogged
		}
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, id string) (bool, error) {
	tag, err := s.DB.Exec(ctx, "DELETE FROM office_attendances WHERE id = $1", id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}
