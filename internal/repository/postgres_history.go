package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/raf-aleaqarih/raf-dashboard-main/internal/domain"
)

type PostgresHistoryRepository struct {
	db *sql.DB
}

func NewPostgresHistoryRepository(db *sql.DB) *PostgresHistoryRepository {
	return &PostgresHistoryRepository{db: db}
}

var _ HistoryRepository = (*PostgresHistoryRepository)(nil)

// buildWhere renders the filter set into WHERE fragments. Mirrors how the
// same filters back both the page query and the stats aggregation.
func buildWhere(filters HistoryFilters, args *[]any, argN *int) []string {
	where := []string{}
	if filters.Action != nil {
		where = append(where, fmt.Sprintf("action = $%d", *argN))
		*args = append(*args, *filters.Action)
		*argN++
	}
	if filters.StartDate != nil {
		where = append(where, fmt.Sprintf("created_at >= $%d", *argN))
		*args = append(*args, *filters.StartDate)
		*argN++
	}
	if filters.EndDate != nil {
		where = append(where, fmt.Sprintf("created_at <= $%d", *argN))
		*args = append(*args, *filters.EndDate)
		*argN++
	}
	return where
}

func whereClause(where []string) string {
	if len(where) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(where, " AND ")
}

func (r *PostgresHistoryRepository) Append(ctx context.Context, h *domain.ContactHistory) error {
	if h.ID == "" {
		h.ID = uuid.New().String()
	}
	oldData, err := marshalSnapshot(h.OldData)
	if err != nil {
		return fmt.Errorf("append history: %w", err)
	}
	newData, err := marshalSnapshot(h.NewData)
	if err != nil {
		return fmt.Errorf("append history: %w", err)
	}
	changed, err := json.Marshal(h.ChangedFields)
	if err != nil {
		return fmt.Errorf("append history: %w", err)
	}

	q := `
		INSERT INTO contact_history (history_id, action, old_data, new_data, changed_fields, ip_address, user_agent)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err = r.db.ExecContext(ctx, q, h.ID, h.Action, oldData, newData, changed, h.IPAddress, h.UserAgent)
	if err != nil {
		return classify("append history", err)
	}
	return nil
}

func marshalSnapshot(s *domain.ContactSnapshot) ([]byte, error) {
	if s == nil {
		return nil, nil
	}
	return json.Marshal(s)
}

func (r *PostgresHistoryRepository) List(ctx context.Context, filters HistoryFilters, page, limit int) ([]*domain.ContactHistory, int, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}

	args := []any{}
	argN := 1
	where := buildWhere(filters, &args, &argN)
	clause := whereClause(where)

	countQ := `SELECT COUNT(*) FROM contact_history` + clause
	var total int
	if err := r.db.QueryRowContext(ctx, countQ, args...).Scan(&total); err != nil {
		return nil, 0, classify("count history", err)
	}

	listArgs := append(append([]any{}, args...), limit, (page-1)*limit)
	listQ := `
		SELECT history_id::text, action, old_data, new_data, changed_fields, ip_address, user_agent, created_at
		FROM contact_history` + clause + `
		ORDER BY created_at DESC
		LIMIT $` + fmt.Sprintf("%d", argN) + ` OFFSET $` + fmt.Sprintf("%d", argN+1)

	rows, err := r.db.QueryContext(ctx, listQ, listArgs...)
	if err != nil {
		return nil, 0, classify("list history", err)
	}
	defer rows.Close()

	out := []*domain.ContactHistory{}
	for rows.Next() {
		var h domain.ContactHistory
		var oldData, newData, changed []byte
		var ip, ua sql.NullString
		if err := rows.Scan(&h.ID, &h.Action, &oldData, &newData, &changed, &ip, &ua, &h.CreatedAt); err != nil {
			return nil, 0, classify("scan history", err)
		}
		if len(oldData) > 0 {
			h.OldData = &domain.ContactSnapshot{}
			if err := json.Unmarshal(oldData, h.OldData); err != nil {
				return nil, 0, fmt.Errorf("decode old_data: %w", err)
			}
		}
		if len(newData) > 0 {
			h.NewData = &domain.ContactSnapshot{}
			if err := json.Unmarshal(newData, h.NewData); err != nil {
				return nil, 0, fmt.Errorf("decode new_data: %w", err)
			}
		}
		if len(changed) > 0 {
			if err := json.Unmarshal(changed, &h.ChangedFields); err != nil {
				return nil, 0, fmt.Errorf("decode changed_fields: %w", err)
			}
		}
		h.IPAddress = ip.String
		h.UserAgent = ua.String
		out = append(out, &h)
	}
	return out, total, rows.Err()
}

func (r *PostgresHistoryRepository) CountByAction(ctx context.Context, filters HistoryFilters) (map[string]int, error) {
	args := []any{}
	argN := 1
	where := buildWhere(filters, &args, &argN)

	q := `SELECT action, COUNT(*) FROM contact_history` + whereClause(where) + ` GROUP BY action`
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, classify("count by action", err)
	}
	defer rows.Close()

	counts := map[string]int{}
	for rows.Next() {
		var action string
		var n int
		if err := rows.Scan(&action, &n); err != nil {
			return nil, classify("scan action count", err)
		}
		counts[action] = n
	}
	return counts, rows.Err()
}

func (r *PostgresHistoryRepository) Delete(ctx context.Context, id string) error {
	if id == "" {
		return ErrNotFound
	}
	res, err := r.db.ExecContext(ctx, `DELETE FROM contact_history WHERE history_id = $1`, id)
	if err != nil {
		return classify("delete history", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return classify("delete history", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
