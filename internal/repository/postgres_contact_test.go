package repository

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/raf-aleaqarih/raf-dashboard-main/internal/domain"
)

var contactTestColumns = []string{
	"contact_id", "unified_phone", "marketing_phone", "floating_phone", "floating_whatsapp", "created_at", "updated_at",
}

func contactTestRow(id string) *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows(contactTestColumns).
		AddRow(id, "920031103", "0500000000", "0500000000", "0500000000", now, now)
}

func TestGetOrCreateDefault_ReturnsExisting(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT (.+) FROM contact_numbers").
		WillReturnRows(contactTestRow("id-1"))

	repo := NewPostgresContactRepository(db)
	c, err := repo.GetOrCreateDefault(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "id-1", c.ID)
	assert.Equal(t, "920031103", c.UnifiedPhone)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetOrCreateDefault_SeedsEmptyTable(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT (.+) FROM contact_numbers").
		WillReturnError(sql.ErrNoRows)
	mock.ExpectQuery("INSERT INTO contact_numbers").
		WithArgs(sqlmock.AnyArg(), "920031103", "0500000000", "0500000000", "0500000000").
		WillReturnRows(contactTestRow("seeded"))

	repo := NewPostgresContactRepository(db)
	c, err := repo.GetOrCreateDefault(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "seeded", c.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetOrCreateDefault_ClassifiesTimeout(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT (.+) FROM contact_numbers").
		WillReturnError(context.DeadlineExceeded)

	repo := NewPostgresContactRepository(db)
	_, err = repo.GetOrCreateDefault(context.Background())
	require.Error(t, err)

	var connErr *ConnectivityError
	require.True(t, errors.As(err, &connErr))
	assert.Equal(t, KindTimeout, connErr.Kind)
}

func TestApplyUpdate_RejectsBadValues(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewPostgresContactRepository(db)
	_, err = repo.ApplyUpdate(context.Background(), "id-1", map[string]string{
		domain.FieldUnifiedPhone: "12345",
	})

	var valErr *ValidationError
	require.True(t, errors.As(err, &valErr))
	assert.Contains(t, valErr.Fields, domain.FieldUnifiedPhone)
}

func TestApplyUpdate_UpdatesSubset(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("UPDATE contact_numbers").
		WithArgs("0512345678", "id-1").
		WillReturnRows(contactTestRow("id-1"))

	repo := NewPostgresContactRepository(db)
	c, err := repo.ApplyUpdate(context.Background(), "id-1", map[string]string{
		domain.FieldMarketingPhone: "0512345678",
	})
	require.NoError(t, err)
	assert.Equal(t, "id-1", c.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestApplyUpdate_MissingRecord(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("UPDATE contact_numbers").
		WillReturnError(sql.ErrNoRows)

	repo := NewPostgresContactRepository(db)
	_, err = repo.ApplyUpdate(context.Background(), "gone", map[string]string{
		domain.FieldUnifiedPhone: "920031103",
	})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestResetToDefaults(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("UPDATE contact_numbers").
		WithArgs("920031103", "0500000000", "0500000000", "0500000000", "id-1").
		WillReturnRows(contactTestRow("id-1"))

	repo := NewPostgresContactRepository(db)
	c, err := repo.ResetToDefaults(context.Background(), "id-1")
	require.NoError(t, err)
	assert.Equal(t, "920031103", c.UnifiedPhone)
	assert.NoError(t, mock.ExpectationsWereMet())
}
