package db

import (
	"context"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"workhub/internal/domain/directory"
	"workhub/internal/platform/config"
)

// Seed provisions the initial admin account so a fresh deployment is usable.
func Seed(ctx context.Context, pool *pgxpool.Pool, cfg config.Config) error {
	email := strings.TrimSpace(cfg.SeedAdminEmail)
	if email == "" || cfg.SeedAdminPassword == "" {
		return nil
	}

	var userID string
	err := pool.QueryRow(ctx, "SELECT id FROM employees WHERE email = $1", email).Scan(&userID)
	if err != nil {
		hash, hashErr := directory.HashPassword(cfg.SeedAdminPassword)
		if hashErr != nil {
			return hashErr
		}
		if err := pool.QueryRow(ctx, `
      INSERT INTO employees (name, email, password_hash, role)
      VALUES ($1,$2,$3,$4)
      RETURNING id
    `, cfg.SeedAdminName, email, hash, directory.RoleAdmin).Scan(&userID); err != nil {
			return err
		}
	}

	_, err = pool.Exec(ctx, `
    INSERT INTO admins (user_id, permissions)
    VALUES ($1,$2)
    ON CONFLICT (user_id) DO NOTHING
  `, userID, "all")
	return err
}
