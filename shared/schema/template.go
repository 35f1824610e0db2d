package schema

import "fmt"

// RegistryTable is the fixed tenant registry every dynamic table references.
const RegistryTable = "companies"

// CreateEmployeesDDL emits idempotent DDL for a tenant's employee table.
// The company_code foreign key gives row-level referential integrity back to
// the registry; dropping the table itself stays an explicit lifecycle step.
func CreateEmployeesDDL(key TenantKey) string {
	return fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
	id BIGSERIAL PRIMARY KEY,
	company_code VARCHAR(100) NOT NULL REFERENCES %s (company_code) ON DELETE CASCADE,
	employee_code VARCHAR(100) NOT NULL UNIQUE,
	first_name VARCHAR(156),
	last_name VARCHAR(156),
	email VARCHAR(100),
	mobile VARCHAR(56),
	designation VARCHAR(156),
	role VARCHAR(50),
	password_hash VARCHAR(256),
	active BOOLEAN NOT NULL DEFAULT TRUE
)`, key.EmployeesTable().Quoted(), RegistryTable)
}

// CreateTeamsDDL emits idempotent DDL for a tenant's team table. Team names
// are unique per tenant by construction since the table itself is per tenant.
func CreateTeamsDDL(key TenantKey) string {
	return fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
	id BIGSERIAL PRIMARY KEY,
	company_code VARCHAR(100) NOT NULL REFERENCES %s (company_code) ON DELETE CASCADE,
	team_name VARCHAR(255) NOT NULL UNIQUE,
	team_description TEXT
)`, key.TeamsTable().Quoted(), RegistryTable)
}

// CreateTeamMembersDDL emits idempotent DDL for a tenant's team membership
// table. Membership cascades away with its team; the employee side is
// checked in code because the employee table carries its own natural key.
func CreateTeamMembersDDL(key TenantKey) string {
	return fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
	id BIGSERIAL PRIMARY KEY,
	company_code VARCHAR(100) NOT NULL REFERENCES %s (company_code) ON DELETE CASCADE,
	team_id BIGINT NOT NULL REFERENCES %s (id) ON DELETE CASCADE,
	employee_code VARCHAR(100) NOT NULL,
	UNIQUE (team_id, employee_code)
)`, key.TeamMembersTable().Quoted(), RegistryTable, key.TeamsTable().Quoted())
}

// DropDDL emits idempotent drop DDL for a dynamic table.
func DropDDL(t Table) string {
	return fmt.Sprintf("DROP TABLE IF EXISTS %s", t.Quoted())
}
