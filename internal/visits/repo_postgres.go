package visits

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
)

// PostgresRepo implements Repository over database/sql (pgx stdlib driver).
type PostgresRepo struct {
	db *sql.DB
}

var _ Repository = (*PostgresRepo)(nil)

func NewPostgresRepo(db *sql.DB) *PostgresRepo {
	return &PostgresRepo{db: db}
}

func (r *PostgresRepo) List(ctx context.Context, req ListRequest) ([]Visit, error) {
	query := strings.Builder{}
	query.WriteString(`SELECT id, hospital_code, disease_code, patient_ref, visited_at FROM patient_visits`)

	var (
		conds []string
		args  []any
	)
	add := func(cond string, arg any) {
		args = append(args, arg)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}
	if req.HospitalCode != "" {
		add(`hospital_code = $%d`, req.HospitalCode)
	}
	if req.DiseaseCode != "" {
		add(`disease_code = $%d`, req.DiseaseCode)
	}
	if !req.From.IsZero() {
		add(`visited_at >= $%d`, req.From)
	}
	if !req.To.IsZero() {
		add(`visited_at < $%d`, req.To)
	}
	if len(conds) > 0 {
		query.WriteString(` WHERE ` + strings.Join(conds, ` AND `))
	}
	query.WriteString(` ORDER BY visited_at DESC, id DESC`)

	rows, err := r.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Visit
	for rows.Next() {
		var v Visit
		if err := rows.Scan(&v.ID, &v.HospitalCode, &v.DiseaseCode, &v.PatientRef, &v.VisitedAt); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}
