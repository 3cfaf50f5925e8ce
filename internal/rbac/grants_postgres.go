package rbac

import (
	"context"
	"database/sql"
	"errors"

	"medreport-platform/internal/auth"
)

// PostgresGrants reads the role_permissions table.
type PostgresGrants struct {
	db *sql.DB
}

var _ GrantSource = (*PostgresGrants)(nil)

func NewPostgresGrants(db *sql.DB) *PostgresGrants {
	return &PostgresGrants{db: db}
}

func (g *PostgresGrants) Lookup(ctx context.Context, role auth.Role, capability string) (bool, bool, error) {
	var allowed bool
	err := g.db.QueryRowContext(ctx,
		`SELECT allowed FROM role_permissions WHERE role_id = $1 AND capability = $2`,
		int(role), capability,
	).Scan(&allowed)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, false, nil
		}
		return false, false, err
	}
	return allowed, true, nil
}
