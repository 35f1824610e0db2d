package utils

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/corehr/hr-admin-backend/shared/schema"
	"github.com/corehr/hr-admin-backend/shared/tenantdb"
)

func TestStoreErrorResponseMapping(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{name: "not found", err: tenantdb.ErrNotFound, wantStatus: http.StatusNotFound},
		{name: "wrapped not found", err: fmt.Errorf("%w: employee E1", tenantdb.ErrNotFound), wantStatus: http.StatusNotFound},
		{name: "tenant not found", err: tenantdb.ErrTenantNotFound, wantStatus: http.StatusNotFound},
		{name: "duplicate key", err: tenantdb.ErrDuplicateKey, wantStatus: http.StatusConflict},
		{name: "no fields provided", err: tenantdb.ErrNoFieldsProvided, wantStatus: http.StatusBadRequest},
		{name: "integrity violation", err: tenantdb.ErrIntegrityViolation, wantStatus: http.StatusBadRequest},
		{name: "invalid identifier", err: schema.ErrInvalidIdentifier, wantStatus: http.StatusBadRequest},
		{name: "schema inconsistency", err: tenantdb.ErrSchemaInconsistency, wantStatus: http.StatusInternalServerError},
		{name: "unknown error", err: errors.New("driver exploded"), wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)

			StoreErrorResponse(c, tt.err)

			assert.Equal(t, tt.wantStatus, w.Code)

			var resp APIResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.False(t, resp.Success)
			assert.NotEmpty(t, resp.Error)
		})
	}
}

func TestStoreErrorResponseHidesInternalDetail(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	StoreErrorResponse(c, errors.New("pq: relation \"acme_employees\" does not exist"))

	var resp APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "internal error", resp.Error)
}

func TestResponseEnvelope(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	CreatedResponse(c, "Company created", map[string]string{"company_code": "ACME"})

	assert.Equal(t, http.StatusCreated, w.Code)

	var resp APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "Company created", resp.Message)
}
