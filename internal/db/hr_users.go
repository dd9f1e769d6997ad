package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
)

// CreateHRUser inserts a recruiter account with a pre-hashed password
func (db *DB) CreateHRUser(ctx context.Context, email, name, passwordHash string) (*HRUser, error) {
	var u HRUser
	err := db.pool.QueryRow(ctx,
		`INSERT INTO hr_users (email, name, password_hash)
		 VALUES ($1, $2, $3)
		 RETURNING id, email, name, password_hash, created_at`,
		email, name, passwordHash,
	).Scan(&u.ID, &u.Email, &u.Name, &u.PasswordHash, &u.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create hr user: %w", err)
	}
	return &u, nil
}

// GetHRUserByEmail retrieves a recruiter account by email; nil if absent
func (db *DB) GetHRUserByEmail(ctx context.Context, email string) (*HRUser, error) {
	var u HRUser
	err := db.pool.QueryRow(ctx,
		`SELECT id, email, name, password_hash, created_at
		 FROM hr_users WHERE email = $1`,
		email,
	).Scan(&u.ID, &u.Email, &u.Name, &u.PasswordHash, &u.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get hr user: %w", err)
	}
	return &u, nil
}
