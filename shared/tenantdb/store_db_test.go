package tenantdb

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/corehr/hr-admin-backend/shared/models"
	"github.com/corehr/hr-admin-backend/shared/schema"
)

func newMockStore(t *testing.T) (*Store, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: db}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	return NewStore(gdb), mock
}

func mustKey(t *testing.T, raw string) schema.TenantKey {
	t.Helper()
	key, err := schema.ParseTenantKey(raw)
	require.NoError(t, err)
	return key
}

const registryCountSQL = `SELECT count(*) FROM "companies" WHERE company_code = $1`

func TestGetEmployeeUnknownTenant(t *testing.T) {
	store, mock := newMockStore(t)
	key := mustKey(t, "acme")

	mock.ExpectQuery(regexp.QuoteMeta(registryCountSQL)).
		WithArgs("acme").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	_, err := store.GetEmployee(context.Background(), key, "E1")
	assert.ErrorIs(t, err, ErrTenantNotFound)
	// No expectation for the dynamic table: the registry check must fail
	// before any tenant table name is used.
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetEmployeeNoRows(t *testing.T) {
	store, mock := newMockStore(t)
	key := mustKey(t, "acme")

	mock.ExpectQuery(regexp.QuoteMeta(registryCountSQL)).
		WithArgs("acme").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery(regexp.QuoteMeta(`FROM "acme_employees" WHERE employee_code = $1`)).
		WithArgs("E404").
		WillReturnRows(sqlmock.NewRows([]string{"id", "employee_code"}))

	_, err := store.GetEmployee(context.Background(), key, "E404")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateEmployeeNoRowsMatched(t *testing.T) {
	store, mock := newMockStore(t)
	key := mustKey(t, "acme")

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(registryCountSQL)).
		WithArgs("acme").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE "acme_employees" SET email = $1 WHERE employee_code = $2`)).
		WithArgs("new@acme.io", "E404").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	err := store.UpdateEmployee(context.Background(), key, "E404", models.EmployeeUpdate{Email: strPtr("new@acme.io")})
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateTenantDuplicateCode(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(registryCountSQL)).
		WithArgs("acme").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectRollback()

	err := store.CreateTenant(context.Background(), &models.Company{CompanyCode: "acme"})
	assert.ErrorIs(t, err, ErrDuplicateKey)
	// Neither the registry insert nor any CREATE TABLE may have run.
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDashboardSummaryDegradesToZero(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "companies" ORDER BY company_code`)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "company_code", "company_name"}).
			AddRow(1, "acme", "Acme Corp").
			AddRow(2, "globex", "Globex"))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT COUNT(*) FROM "acme_employees"`)).
		WillReturnError(errors.New(`pq: relation "acme_employees" does not exist`))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT COUNT(*) FROM "globex_employees"`)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

	summary, err := store.DashboardSummary(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, summary.CompanyCount)
	assert.Equal(t, int64(3), summary.EmployeeCount)
	require.Len(t, summary.Companies, 2)
	assert.Equal(t, int64(0), summary.Companies[0].EmployeeCount)
	assert.Equal(t, int64(3), summary.Companies[1].EmployeeCount)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTeamsForTenantMissingEmployeeTable(t *testing.T) {
	store, mock := newMockStore(t)
	key := mustKey(t, "acme")

	mock.ExpectQuery(regexp.QuoteMeta(registryCountSQL)).
		WithArgs("acme").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT EXISTS (SELECT 1 FROM information_schema.tables WHERE table_name = $1)`)).
		WithArgs("acme_employees").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))

	_, err := store.TeamsForTenant(context.Background(), key)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteTenantDropsTablesBeforeRegistryRow(t *testing.T) {
	store, mock := newMockStore(t)
	key := mustKey(t, "acme")

	// Ordered expectations: members, teams, employees, then the registry
	// row, all inside one transaction.
	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(registryCountSQL)).
		WithArgs("acme").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectExec(regexp.QuoteMeta(`DROP TABLE IF EXISTS "acme_team_members"`)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(regexp.QuoteMeta(`DROP TABLE IF EXISTS "acme_teams"`)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(regexp.QuoteMeta(`DROP TABLE IF EXISTS "acme_employees"`)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "companies" WHERE company_code = $1`)).
		WithArgs("acme").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := store.DeleteTenant(context.Background(), key)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
