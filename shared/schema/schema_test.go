package schema

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTenantKey(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantErr bool
	}{
		{name: "simple uppercase", raw: "ACME"},
		{name: "mixed case with digits", raw: "Acme42"},
		{name: "underscore", raw: "acme_corp"},
		{name: "single letter", raw: "a"},
		{name: "empty", raw: "", wantErr: true},
		{name: "leading digit", raw: "1acme", wantErr: true},
		{name: "leading underscore", raw: "_acme", wantErr: true},
		{name: "space", raw: "acme corp", wantErr: true},
		{name: "hyphen", raw: "acme-corp", wantErr: true},
		{name: "quote injection", raw: `acme"; DROP TABLE companies; --`, wantErr: true},
		{name: "semicolon", raw: "acme;", wantErr: true},
		{name: "backtick", raw: "acme`x", wantErr: true},
		{name: "too long", raw: strings.Repeat("a", 65), wantErr: true},
		{name: "max length", raw: strings.Repeat("a", 64)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key, err := ParseTenantKey(tt.raw)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrInvalidIdentifier)
				assert.True(t, key.IsZero())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.raw, key.String())
		})
	}
}

func TestTableNaming(t *testing.T) {
	key, err := ParseTenantKey("ACME")
	require.NoError(t, err)

	assert.Equal(t, "ACME_employees", key.EmployeesTable().Name())
	assert.Equal(t, "ACME_teams", key.TeamsTable().Name())
	assert.Equal(t, "ACME_team_members", key.TeamMembersTable().Name())
	assert.Equal(t, `"ACME_employees"`, key.EmployeesTable().Quoted())
}

func TestTableNamingIsDeterministic(t *testing.T) {
	a, err := ParseTenantKey("acme")
	require.NoError(t, err)
	b, err := ParseTenantKey("acme")
	require.NoError(t, err)
	assert.Equal(t, a.EmployeesTable(), b.EmployeesTable())

	// Case is preserved, so differently-cased keys get distinct tables.
	c, err := ParseTenantKey("Acme")
	require.NoError(t, err)
	assert.NotEqual(t, a.EmployeesTable().Name(), c.EmployeesTable().Name())
}

func TestCreateDDL(t *testing.T) {
	key, err := ParseTenantKey("acme")
	require.NoError(t, err)

	emp := CreateEmployeesDDL(key)
	assert.Contains(t, emp, `CREATE TABLE IF NOT EXISTS "acme_employees"`)
	assert.Contains(t, emp, "employee_code VARCHAR(100) NOT NULL UNIQUE")
	assert.Contains(t, emp, "REFERENCES companies (company_code) ON DELETE CASCADE")

	teams := CreateTeamsDDL(key)
	assert.Contains(t, teams, `CREATE TABLE IF NOT EXISTS "acme_teams"`)
	assert.Contains(t, teams, "team_name VARCHAR(255) NOT NULL UNIQUE")

	members := CreateTeamMembersDDL(key)
	assert.Contains(t, members, `CREATE TABLE IF NOT EXISTS "acme_team_members"`)
	assert.Contains(t, members, `REFERENCES "acme_teams" (id) ON DELETE CASCADE`)
	assert.Contains(t, members, "UNIQUE (team_id, employee_code)")
}

func TestDropDDL(t *testing.T) {
	key, err := ParseTenantKey("acme")
	require.NoError(t, err)
	assert.Equal(t, `DROP TABLE IF EXISTS "acme_employees"`, DropDDL(key.EmployeesTable()))
}
