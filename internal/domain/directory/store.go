package directory

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

func (s *Store) CreateEmployee(ctx context.Context, name, email, passwordHash, role string) (Employee, error) {
	var emp Employee
	err := s.DB.QueryRow(ctx, `
    INSERT INTO employees (name, email, password_hash, role)
    VALUES ($1,$2,$3,$4)
    RETURNING id, name, email, role, created_at, updated_at
  `, name, email, passwordHash, role).Scan(&emp.ID, &emp.Name, &emp.Email, &emp.Role, &emp.CreatedAt, &emp.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return Employee{}, ErrEmailTaken
		}
		return Employee{}, err
	}
	return emp, nil
}

func (s *Store) GetEmployee(ctx context.Context, id string) (Employee, error) {
	var emp Employee
	err := s.DB.QueryRow(ctx, `
    SELECT id, name, email, role, created_at, updated_at
    FROM employees
    WHERE id = $1
  `, id).Scan(&emp.ID, &emp.Name, &emp.Email, &emp.Role, &emp.CreatedAt, &emp.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Employee{}, ErrNotFound
	}
	if err != nil {
		return Employee{}, err
	}
	return emp, nil
}

func (s *Store) FindCredentialByEmail(ctx context.Context, email string) (Credential, error) {
	var cred Credential
	err := s.DB.QueryRow(ctx, `
    SELECT id, name, email, role, password_hash
    FROM employees
    WHERE email = $1
  `, email).Scan(&cred.ID, &cred.Name, &cred.Email, &cred.Role, &cred.PasswordHash)
	if errors.Is(err, pgx.ErrNoRows) {
		return Credential{}, ErrNotFound
	}
	if err != nil {
		return Credential{}, err
	}
	return cred, nil
}

func (s *Store) ListEmployees(ctx context.Context) ([]Employee, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, name, email, role, created_at, updated_at
    FROM employees
    ORDER BY name
  `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var employees []Employee
	for rows.Next() {
		var emp Employee
		if err := rows.Scan(&emp.ID, &emp.Name, &emp.Email, &emp.Role, &emp.CreatedAt, &emp.UpdatedAt); err != nil {
			return nil, err
		}
		employees = append(employees, emp)
	}
	return employees, rows.Err()
}

func (s *Store) UpdateEmployee(ctx context.Context, emp Employee) error {
	tag, err := s.DB.Exec(ctx, `
    UPDATE employees
    SET name = $1, email = $2, role = $3, updated_at = now()
    WHERE id = $4
  `, emp.Name, emp.Email, emp.Role, emp.ID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return ErrEmailTaken
		}
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) DeleteEmployee(ctx context.Context, id string) (bool, error) {
	tag, err := s.DB.Exec(ctx, "DELETE FROM employees WHERE id = $1", id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (s *Store) GrantAdmin(ctx context.Context, userID, permissions string) (Admin, error) {
	var admin Admin
	err := s.DB.QueryRow(ctx, `
    INSERT INTO admins (user_id, permissions)
    VALUES ($1,$2)
    ON CONFLICT (user_id) DO UPDATE SET permissions = EXCLUDED.permissions
    RETURNING id, user_id, permissions, created_at
  `, userID, permissions).Scan(&admin.ID, &admin.UserID, &admin.Permissions, &admin.CreatedAt)
	if err != nil {
		return Admin{}, err
	}

	// Keep the denormalized role string in step with the overlay row.
	if _, err := s.DB.Exec(ctx, "UPDATE employees SET role = $1, updated_at = now() WHERE id = $2", RoleAdmin, userID); err != nil {
		return Admin{}, err
	}
	return admin, nil
}

func (s *Store) RevokeAdmin(ctx context.Context, userID string) (bool, error) {
	tag, err := s.DB.Exec(ctx, "DELETE FROM admins WHERE user_id = $1", userID)
	if err != nil {
		return false, err
	}
	if tag.RowsAffected() == 0 {
		return false, nil
	}
	if _, err := s.DB.Exec(ctx, "UPDATE employees SET role = $1, updated_at = now() WHERE id = $2", RoleEmployee, userID); err != nil {
		return false, err
	}
	return true, nil
}

func (s *Store) ListAdmins(ctx context.Context) ([]Admin, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, user_id, permissions, created_at
    FROM admins
    ORDER BY created_at
  `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var admins []Admin
	for rows.Next() {
		var admin Admin
		if err := rows.Scan(&admin.ID, &admin.UserID, &admin.Permissions, &admin.CreatedAt); err != nil {
			return nil, err
		}
		admins = append(admins, admin)
	}
	return admins, rows.Err()
}

func (s *Store) IsAdmin(ctx context.Context, userID string) (bool, error) {
	var count int
	if err := s.DB.QueryRow(ctx, "SELECT COUNT(1) FROM admins WHERE user_id = $1", userID).Scan(&count); err != nil {
		return false, err
	}
	return count > 0, nil
}
