package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/raf-aleaqarih/raf-dashboard-main/internal/domain"
	"github.com/raf-aleaqarih/raf-dashboard-main/internal/phone"
)

type PostgresContactRepository struct {
	db *sql.DB
}

func NewPostgresContactRepository(db *sql.DB) *PostgresContactRepository {
	return &PostgresContactRepository{db: db}
}

var _ ContactRepository = (*PostgresContactRepository)(nil)

const contactColumns = `contact_id::text, unified_phone, marketing_phone, floating_phone, floating_whatsapp, created_at, updated_at`

func scanContact(row interface{ Scan(...any) error }) (*domain.ContactNumbers, error) {
	var c domain.ContactNumbers
	err := row.Scan(&c.ID, &c.UnifiedPhone, &c.MarketingPhone, &c.FloatingPhone, &c.FloatingWhatsapp, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// GetOrCreateDefault reads the latest record by creation time. An empty table
// is seeded with the defaults, so the resource always appears to exist.
func (r *PostgresContactRepository) GetOrCreateDefault(ctx context.Context) (*domain.ContactNumbers, error) {
	q := `
		SELECT ` + contactColumns + `
		FROM contact_numbers
		ORDER BY created_at DESC
		LIMIT 1
	`
	c, err := scanContact(r.db.QueryRowContext(ctx, q))
	if err == nil {
		return c, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, classify("read current", err)
	}

	def := domain.DefaultContactNumbers()
	ins := `
		INSERT INTO contact_numbers (contact_id, unified_phone, marketing_phone, floating_phone, floating_whatsapp)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + contactColumns + `
	`
	c, err = scanContact(r.db.QueryRowContext(ctx, ins,
		uuid.New().String(), def.UnifiedPhone, def.MarketingPhone, def.FloatingPhone, def.FloatingWhatsapp))
	if err != nil {
		return nil, classify("seed default", err)
	}
	return c, nil
}

// validateFields is the schema-level re-check of the phone format rules.
func validateFields(fields map[string]string) error {
	bad := map[string]string{}
	for name, value := range fields {
		switch name {
		case domain.FieldUnifiedPhone:
			if !phone.ValidateUnified(value) {
				bad[name] = "must be exactly 9 digits"
			}
		case domain.FieldMarketingPhone, domain.FieldFloatingPhone, domain.FieldFloatingWhatsapp:
			if !phone.ValidateMarketing(value) {
				bad[name] = "must start with 05 followed by 8 digits"
			}
		default:
			bad[name] = "unknown field"
		}
	}
	if len(bad) > 0 {
		return &ValidationError{Fields: bad}
	}
	return nil
}

var contactColumnByField = map[string]string{
	domain.FieldUnifiedPhone:     "unified_phone",
	domain.FieldMarketingPhone:   "marketing_phone",
	domain.FieldFloatingPhone:    "floating_phone",
	domain.FieldFloatingWhatsapp: "floating_whatsapp",
}

func (r *PostgresContactRepository) ApplyUpdate(ctx context.Context, id string, fields map[string]string) (*domain.ContactNumbers, error) {
	if id == "" {
		return nil, ErrNotFound
	}
	if len(fields) == 0 {
		return nil, fmt.Errorf("apply update: no fields supplied")
	}
	if err := validateFields(fields); err != nil {
		return nil, err
	}

	set := []string{}
	args := []any{}
	argN := 1
	// deterministic column order keeps the statement stable for a given field set
	for _, name := range domain.ContactFieldNames() {
		value, ok := fields[name]
		if !ok {
			continue
		}
		set = append(set, fmt.Sprintf("%s = $%d", contactColumnByField[name], argN))
		args = append(args, value)
		argN++
	}
	set = append(set, "updated_at = NOW()")
	args = append(args, id)

	q := `
		UPDATE contact_numbers
		SET ` + strings.Join(set, ", ") + `
		WHERE contact_id = $` + fmt.Sprintf("%d", argN) + `
		RETURNING ` + contactColumns + `
	`
	c, err := scanContact(r.db.QueryRowContext(ctx, q, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, classify("apply update", err)
	}
	return c, nil
}

func (r *PostgresContactRepository) ResetToDefaults(ctx context.Context, id string) (*domain.ContactNumbers, error) {
	if id == "" {
		return nil, ErrNotFound
	}
	def := domain.DefaultContactNumbers()
	q := `
		UPDATE contact_numbers
		SET unified_phone = $1, marketing_phone = $2, floating_phone = $3, floating_whatsapp = $4, updated_at = NOW()
		WHERE contact_id = $5
		RETURNING ` + contactColumns + `
	`
	c, err := scanContact(r.db.QueryRowContext(ctx, q,
		def.UnifiedPhone, def.MarketingPhone, def.FloatingPhone, def.FloatingWhatsapp, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, classify("reset to defaults", err)
	}
	return c, nil
}
