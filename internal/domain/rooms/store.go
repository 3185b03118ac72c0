package rooms

import (
	"context"
	"errors"
	"strconv"
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

func (s *Store) CreateRoom(ctx context.Context, name string, capacity int, location string) (Room, error) {
	var room Room
	err := s.DB.QueryRow(ctx, `
    INSERT INTO rooms (name, capacity, location)
    VALUES ($1,$2,$3)
    RETURNING id, name, capacity, location, created_at
  `, name, capacity, location).Scan(&room.ID, &room.Name, &room.Capacity, &room.Location, &room.CreatedAt)
	if err != nil {
		return Room{}, err
	}
	return room, nil
}

func (s *Store) GetRoom(ctx context.Context, id string) (Room, error) {
	var room Room
	err := s.DB.QueryRow(ctx, `
    SELECT id, name, capacity, location, created_at
    FROM rooms
    WHERE id = $1
  `, id).Scan(&room.ID, &room.Name, &room.Capacity, &room.Location, &room.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Room{}, ErrNotFound
	}
	if err != nil {
		return Room{}, err
	}
	return room, nil
}

func (s *Store) ListRooms(ctx context.Context) ([]Room, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, name, capacity, location, created_at
    FROM rooms
    ORDER BY name
  `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Room
	for rows.Next() {
		var room Room
		if err := rows.Scan(&room.ID, &room.Name, &room.Capacity, &room.Location, &room.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, room)
	}
	return out, rows.Err()
}

func (s *Store) UpdateRoom(ctx context.Context, room Room) error {
	tag, err := s.DB.Exec(ctx, `
    UPDATE rooms
    SET name = $1, capacity = $2, location = $3
    WHERE id = $4
  `, room.Name, room.Capacity, room.Location, room.ID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) DeleteRoom(ctx context.Context, id string) (bool, error) {
	tag, err := s.DB.Exec(ctx, "DELETE FROM rooms WHERE id = $1", id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// CreateBooking runs the overlap check and the insert inside one
// transaction. Concurrent writers are serialized only by the row the
// insert touches; the composite primary key backstops exact duplicates.
func (s *Store) CreateBooking(ctx context.Context, booking Booking) error {
	tx, err := s.DB.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	existing, err := bookingsForRoomDate(ctx, tx, booking.RoomID, booking.BookingDate)
	if err != nil {
		return err
	}
	conflict, err := HasConflict(existing, booking, nil)
	if err != nil {
		return err
	}
	if conflict {
		return ErrSlotOccupied
	}

	if _, err := tx.Exec(ctx, `
    INSERT INTO room_bookings (room_id, user_id, booking_date, start_time, end_time, purpose)
    VALUES ($1,$2,$3,$4,$5,$6)
  `, booking.RoomID, booking.UserID, booking.BookingDate, booking.StartTime, booking.EndTime, booking.Purpose); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return ErrSlotOccupied
		}
		return err
	}

	return tx.Commit(ctx)
}

func (s *Store) GetBooking(ctx context.Context, key BookingKey) (Booking, error) {
	var booking Booking
	err := s.DB.QueryRow(ctx, `
    SELECT room_id, user_id, booking_date, start_time, end_time, purpose, created_at
    FROM room_bookings
    WHERE room_id = $1 AND user_id = $2 AND booking_date = $3 AND start_time = $4
  `, key.RoomID, key.UserID, key.BookingDate, key.StartTime).Scan(
		&booking.RoomID, &booking.UserID, &booking.BookingDate, &booking.StartTime, &booking.EndTime, &booking.Purpose, &booking.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return Booking{}, ErrNotFound
	}
	if err != nil {
		return Booking{}, err
	}
	return booking, nil
}

func (s *Store) ListBookings(ctx context.Context, roomID, userID string, date *time.Time) ([]Booking, error) {
	query := `
    SELECT room_id, user_id, booking_date, start_time, end_time, purpose, created_at
    FROM room_bookings
    WHERE 1=1
  `
	args := []any{}
	if roomID != "" {
		args = append(args, roomID)
		query += " AND room_id = $" + itoa(len(args))
	}
	if userID != "" {
		args = append(args, userID)
		query += " AND user_id = $" + itoa(len(args))
	}
	if date != nil {
		args = append(args, *date)
		query += " AND booking_date = $" + itoa(len(args))
	}
	query += " ORDER BY booking_date, start_time"

	rows, err := s.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Booking
	for rows.Next() {
		var booking Booking
		if err := rows.Scan(&booking.RoomID, &booking.UserID, &booking.BookingDate, &booking.StartTime, &booking.EndTime, &booking.Purpose, &booking.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, booking)
	}
	return out, rows.Err()
}

// UpdateBooking re-runs the conflict check with the booking's own key
// excluded from the conflict set.
func (s *Store) UpdateBooking(ctx context.Context, key BookingKey, booking Booking) error {
	tx, err := s.DB.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	existing, err := bookingsForRoomDate(ctx, tx, booking.RoomID, booking.BookingDate)
	if err != nil {
		return err
	}
	conflict, err := HasConflict(existing, booking, &key)
	if err != nil {
		return err
	}
	if conflict {
		return ErrSlotOccupied
	}

	tag, err := tx.Exec(ctx, `
    UPDATE room_bookings
    SET booking_date = $1, start_time = $2, end_time = $3, purpose = $4
    WHERE room_id = $5 AND user_id = $6 AND booking_date = $7 AND start_time = $8
  `, booking.BookingDate, booking.StartTime, booking.EndTime, booking.Purpose,
		key.RoomID, key.UserID, key.BookingDate, key.StartTime)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}

	return tx.Commit(ctx)
}

func (s *Store) DeleteBooking(ctx context.Context, key BookingKey) (bool, error) {
	tag, err := s.DB.Exec(ctx, `
    DELETE FROM room_bookings
    WHERE room_id = $1 AND user_id = $2 AND booking_date = $3 AND start_time = $4
  `, key.RoomID, key.UserID, key.BookingDate, key.StartTime)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func bookingsForRoomDate(ctx context.Context, tx pgx.Tx, roomID string, date time.Time) ([]Booking, error) {
	rows, err := tx.Query(ctx, `
    SELECT room_id, user_id, booking_date, start_time, end_time, purpose, created_at
    FROM room_bookings
    WHERE room_id = $1 AND booking_date = $2
  `, roomID, date)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Booking
	for rows.Next() {
		var booking Booking
		if err := rows.Scan(&booking.RoomID, &booking.UserID, &booking.BookingDate, &booking.StartTime, &booking.EndTime, &booking.Purpose, &booking.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, booking)
	}
	return out, rows.Err()
}

func itoa(n int) string {
	return strconv.Itoa(n)
}
