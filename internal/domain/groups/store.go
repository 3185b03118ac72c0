package groups

import (
	"context"
	"errors"

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

func (s *Store) CreateGroup(ctx context.Context, group Group) (Group, error) {
	err := s.DB.QueryRow(ctx, `
    INSERT INTO groups (name, description)
    VALUES ($1,$2)
    RETURNING id, created_at
  `, group.Name, group.Description).Scan(&group.ID, &group.CreatedAt)
	if err != nil {
		return Group{}, err
	}
	return group, nil
}

func (s *Store) GetGroup(ctx context.Context, id string) (Group, error) {
	var group Group
	err := s.DB.QueryRow(ctx, `
    SELECT id, name, description, created_at
    FROM groups
    WHERE id = $1
  `, id).Scan(&group.ID, &group.Name, &group.Description, &group.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Group{}, ErrNotFound
	}
	if err != nil {
		return Group{}, err
	}
	return group, nil
}

func (s *Store) ListGroups(ctx context.Context) ([]Group, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, name, description, created_at
    FROM groups
    ORDER BY name
  `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Group
	for rows.Next() {
		var group Group
		if err := rows.Scan(&group.ID, &group.Name, &group.Description, &group.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, group)
	}
	return out, rows.Err()
}

func (s *Store) UpdateGroup(ctx context.Context, group Group) error {
	tag, err := s.DB.Exec(ctx, `
    UPDATE groups
    SET name = $1, description = $2
    WHERE id = $3
  `, group.Name, group.Description, group.ID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) DeleteGroup(ctx context.Context, id string) (bool, error) {
	tag, err := s.DB.Exec(ctx, "DELETE FROM groups WHERE id = $1", id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (s *Store) CreateMembership(ctx context.Context, m Membership) (Membership, error) {
	err := s.DB.QueryRow(ctx, `
    INSERT INTO group_memberships (user_id, group_id)
    VALUES ($1,$2)
    RETURNING created_at
  `, m.UserID, m.GroupID).Scan(&m.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return Membership{}, ErrAlreadyMember
		}
		return Membership{}, err
	}
	return m, nil
}

func (s *Store) ListMemberships(ctx context.Context, userID, groupID string) ([]Membership, error) {
	query := `
    SELECT user_id, group_id, created_at
    FROM group_memberships
    WHERE 1=1
  `
	args := []any{}
	if userID != "" {
		args = append(args, userID)
		query += " AND user_id = $1"
	}
	if groupID != "" {
		args = append(args, groupID)
		if len(args) == 1 {
			query += " AND group_id = $1"
		} else {
			query += " AND group_id = $2"
		}
	}
	query += " ORDER BY created_at"

	rows, err := s.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Membership
	for rows.Next() {
		var m Membership
		if err := rows.Scan(&m.UserID, &m.GroupID, &m.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func (s *Store) DeleteMembership(ctx context.Context, userID, groupID string) (bool, error) {
	tag, err := s.DB.Exec(ctx, `
    DELETE FROM group_memberships
    WHERE user_id = $1 AND group_id = $2
  `, userID, groupID)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}
