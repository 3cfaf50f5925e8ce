package auth

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

// PostgresDirectory implements Directory over database/sql (pgx stdlib driver).
type PostgresDirectory struct {
	db *sql.DB
}

var _ Directory = (*PostgresDirectory)(nil)

func NewPostgresDirectory(db *sql.DB) *PostgresDirectory {
	return &PostgresDirectory{db: db}
}

const userColumns = `id, username, password_hash, role_id, hospital_code, is_active, last_login_at, created_at, updated_at`

func (d *PostgresDirectory) FindByID(ctx context.Context, id int64) (*User, error) {
	row := d.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	return scanUser(row)
}

func (d *PostgresDirectory) FindActiveByUsername(ctx context.Context, username string) (*User, error) {
	row := d.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE username = $1 AND is_active = true`, username)
	return scanUser(row)
}

func (d *PostgresDirectory) UpdateLastLogin(ctx context.Context, id int64, at time.Time) error {
	res, err := d.db.ExecContext(ctx,
		`UPDATE users SET last_login_at = $2, updated_at = $2 WHERE id = $1`, id, at)
	if err != nil {
		return err
	}
	return requireOneRow(res)
}

func (d *PostgresDirectory) UpdatePassword(ctx context.Context, id int64, passwordHash string, at time.Time) error {
	res, err := d.db.ExecContext(ctx,
		`UPDATE users SET password_hash = $2, updated_at = $3 WHERE id = $1`, id, passwordHash, at)
	if err != nil {
		return err
	}
	return requireOneRow(res)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (*User, error) {
	var (
		u            User
		roleID       int
		hospitalCode sql.NullString
		lastLoginAt  sql.NullTime
	)
	err := row.Scan(&u.ID, &u.Username, &u.PasswordHash, &roleID, &hospitalCode, &u.IsActive, &lastLoginAt, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	u.Role = Role(roleID)
	if hospitalCode.Valid {
		u.HospitalCode = hospitalCode.String
	}
	if lastLoginAt.Valid {
		t := lastLoginAt.Time
		u.LastLoginAt = &t
	}
	return &u, nil
}

func requireOneRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrUserNotFound
	}
	return nil
}
