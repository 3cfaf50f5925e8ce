package users

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"medreport-platform/internal/auth"
	"medreport-platform/internal/rbac"
	"medreport-platform/pkg/utils"
)

// PostgresRepo implements Repository over database/sql (pgx stdlib driver).
type PostgresRepo struct {
	db *sql.DB
}

var _ Repository = (*PostgresRepo)(nil)

func NewPostgresRepo(db *sql.DB) *PostgresRepo {
	return &PostgresRepo{db: db}
}

const userColumns = `id, username, password_hash, role_id, hospital_code, is_active, last_login_at, created_at, updated_at`

func (r *PostgresRepo) FindByID(ctx context.Context, id int64) (*auth.User, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	return scanUser(row)
}

// Create checks active-username uniqueness and inserts inside one
// transaction, so a concurrent insert of the same username cannot slip
// between check and insert.
func (r *PostgresRepo) Create(ctx context.Context, u *auth.User) error {
	return utils.WithTx(ctx, r.db, &sql.TxOptions{Isolation: sql.LevelSerializable}, func(ctx context.Context, tx *sql.Tx) error {
		var taken bool
		err := tx.QueryRowContext(ctx,
			`SELECT EXISTS(SELECT 1 FROM users WHERE username = $1 AND is_active = true)`,
			u.Username,
		).Scan(&taken)
		if err != nil {
			return err
		}
		if taken {
			return ErrUsernameTaken
		}

		return tx.QueryRowContext(ctx,
			`INSERT INTO users (username, password_hash, role_id, hospital_code, is_active, created_at, updated_at)
			 VALUES ($1, $2, $3, $4, $5, $6, $7)
			 RETURNING id`,
			u.Username, u.PasswordHash, int(u.Role), nullableString(u.HospitalCode), u.IsActive, u.CreatedAt, u.UpdatedAt,
		).Scan(&u.ID)
	})
}

func (r *PostgresRepo) Update(ctx context.Context, u *auth.User) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE users SET role_id = $2, hospital_code = $3, updated_at = $4 WHERE id = $1`,
		u.ID, int(u.Role), nullableString(u.HospitalCode), u.UpdatedAt)
	if err != nil {
		return err
	}
	return requireOneRow(res)
}

func (r *PostgresRepo) Deactivate(ctx context.Context, id int64, at time.Time) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE users SET is_active = false, updated_at = $2 WHERE id = $1`, id, at)
	if err != nil {
		return err
	}
	return requireOneRow(res)
}

func (r *PostgresRepo) UpdatePassword(ctx context.Context, id int64, passwordHash string, at time.Time) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE users SET password_hash = $2, updated_at = $3 WHERE id = $1`, id, passwordHash, at)
	if err != nil {
		return err
	}
	return requireOneRow(res)
}

func (r *PostgresRepo) List(ctx context.Context, scope rbac.Scope) ([]*auth.User, error) {
	var (
		rows *sql.Rows
		err  error
	)
	if scope.Unrestricted {
		rows, err = r.db.QueryContext(ctx,
			`SELECT `+userColumns+` FROM users ORDER BY id ASC`)
	} else {
		rows, err = r.db.QueryContext(ctx,
			`SELECT `+userColumns+` FROM users WHERE hospital_code = $1 ORDER BY id ASC`,
			scope.HospitalCode)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*auth.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (*auth.User, error) {
	var (
		u            auth.User
		roleID       int
		hospitalCode sql.NullString
		lastLoginAt  sql.NullTime
	)
	err := row.Scan(&u.ID, &u.Username, &u.PasswordHash, &roleID, &hospitalCode, &u.IsActive, &lastLoginAt, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, auth.ErrUserNotFound
		}
		return nil, err
	}
	u.Role = auth.Role(roleID)
	if hospitalCode.Valid {
		u.HospitalCode = hospitalCode.String
	}
	if lastLoginAt.Valid {
		t := lastLoginAt.Time
		u.LastLoginAt = &t
	}
	return &u, nil
}

func nullableString(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func requireOneRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return auth.ErrUserNotFound
	}
	return nil
}
