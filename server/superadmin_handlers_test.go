package main

import (
	"bytes"
	"errors"
	"net/http"
	"net/http/httptest"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/corehr/hr-admin-backend/shared/middleware"
	"github.com/corehr/hr-admin-backend/shared/tenantdb"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: db}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	return gdb, mock
}

func TestVerifyToleratesCodeCleanupFailure(t *testing.T) {
	gin.SetMode(gin.TestMode)
	t.Setenv("JWT_SECRET", "test-secret")

	db, mock := newMockDB(t)
	am, err := middleware.NewAuthMiddleware()
	require.NoError(t, err)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "superadmin_verification_codes" WHERE email = $1 AND code = $2`)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "code", "expires_at"}).
			AddRow(1, "admin@corehr.io", "123456", time.Now().Add(5*time.Minute)))

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "superadmin_devices"`)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectCommit()

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "superadmin_verification_codes" WHERE email = $1`)).
		WillReturnError(errors.New("connection reset"))
	mock.ExpectRollback()

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	body := `{"email":"admin@corehr.io","code":"123456","device_id":"dev-1"}`
	c.Request = httptest.NewRequest(http.MethodPost, "/superadmin/verify", bytes.NewBufferString(body))
	c.Request.Header.Set("Content-Type", "application/json")

	handleSuperAdminVerify(db, tenantdb.NewStore(db), am)(c)

	// The cleanup failure is logged, not fatal: the flow proceeds to session
	// creation, which fails here only because no Redis client is configured.
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "Failed to create session")
	assert.NoError(t, mock.ExpectationsWereMet())
}
