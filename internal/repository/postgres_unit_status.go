package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/raf-aleaqarih/raf-dashboard-main/internal/domain"
)

type PostgresUnitStatusRepository struct {
	db *sql.DB
}

func NewPostgresUnitStatusRepository(db *sql.DB) *PostgresUnitStatusRepository {
	return &PostgresUnitStatusRepository{db: db}
}

var _ UnitStatusRepository = (*PostgresUnitStatusRepository)(nil)

const unitStatusColumns = `unit_status_id::text, project_id, project_name, total_units, statuses, created_at, updated_at`

func scanUnitStatus(row interface{ Scan(...any) error }) (*domain.UnitStatus, error) {
	var u domain.UnitStatus
	var statuses []byte
	if err := row.Scan(&u.ID, &u.ProjectID, &u.ProjectName, &u.TotalUnits, &statuses, &u.CreatedAt, &u.UpdatedAt); err != nil {
		return nil, err
	}
	if len(statuses) > 0 {
		if err := json.Unmarshal(statuses, &u.Statuses); err != nil {
			return nil, fmt.Errorf("decode statuses: %w", err)
		}
	}
	return &u, nil
}

func (r *PostgresUnitStatusRepository) ListAll(ctx context.Context) ([]*domain.UnitStatus, error) {
	q := `SELECT ` + unitStatusColumns + ` FROM unit_status ORDER BY project_name`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, classify("list unit status", err)
	}
	defer rows.Close()

	out := []*domain.UnitStatus{}
	for rows.Next() {
		u, err := scanUnitStatus(rows)
		if err != nil {
			return nil, classify("scan unit status", err)
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

func (r *PostgresUnitStatusRepository) Upsert(ctx context.Context, projectID, projectName string, statuses []domain.StatusShare, totalUnits int) (*domain.UnitStatus, error) {
	raw, err := json.Marshal(statuses)
	if err != nil {
		return nil, fmt.Errorf("encode statuses: %w", err)
	}
	q := `
		INSERT INTO unit_status (unit_status_id, project_id, project_name, total_units, statuses)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (project_id)
		DO UPDATE SET project_name = EXCLUDED.project_name,
		              total_units = EXCLUDED.total_units,
		              statuses = EXCLUDED.statuses,
		              updated_at = NOW()
		RETURNING ` + unitStatusColumns + `
	`
	u, err := scanUnitStatus(r.db.QueryRowContext(ctx, q, uuid.New().String(), projectID, projectName, totalUnits, raw))
	if err != nil {
		return nil, classify("upsert unit status", err)
	}
	return u, nil
}

func (r *PostgresUnitStatusRepository) UpdateStatuses(ctx context.Context, projectID string, statuses []domain.StatusShare, totalUnits *int) (*domain.UnitStatus, error) {
	raw, err := json.Marshal(statuses)
	if err != nil {
		return nil, fmt.Errorf("encode statuses: %w", err)
	}

	q := `
		UPDATE unit_status
		SET statuses = $1, updated_at = NOW()
		WHERE project_id = $2
		RETURNING ` + unitStatusColumns + `
	`
	args := []any{raw, projectID}
	if totalUnits != nil {
		q = `
		UPDATE unit_status
		SET statuses = $1, total_units = $2, updated_at = NOW()
		WHERE project_id = $3
		RETURNING ` + unitStatusColumns + `
	`
		args = []any{raw, *totalUnits, projectID}
	}

	u, err := scanUnitStatus(r.db.QueryRowContext(ctx, q, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, classify("update unit status", err)
	}
	return u, nil
}

func (r *PostgresUnitStatusRepository) DeleteByProject(ctx context.Context, projectID string) error {
	if projectID == "" {
		return ErrNotFound
	}
	_, err := r.db.ExecContext(ctx, `DELETE FROM unit_status WHERE project_id = $1`, projectID)
	if err != nil {
		return classify("delete unit status", err)
	}
	return nil
}
