package schema

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// ErrInvalidIdentifier is returned when a tenant key cannot be used safely
// as part of a SQL identifier.
var ErrInvalidIdentifier = errors.New("invalid identifier")

// tenantKeyPattern allow-lists tenant keys before they are ever embedded in
// a table name. Everything outside this set is rejected up front, so no
// caller-influenced string reaches DDL/DML identifier position unchecked.
var tenantKeyPattern = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_]{0,63}$`)

// TenantKey is a validated company code. The zero value is not usable;
// values are produced only by ParseTenantKey.
type TenantKey struct {
	key string
}

// ParseTenantKey validates a raw company code and wraps it in a TenantKey.
func ParseTenantKey(raw string) (TenantKey, error) {
	if !tenantKeyPattern.MatchString(raw) {
		return TenantKey{}, fmt.Errorf("%w: tenant key %q", ErrInvalidIdentifier, raw)
	}
	return TenantKey{key: raw}, nil
}

// String returns the raw company code.
func (k TenantKey) String() string {
	return k.key
}

// IsZero reports whether the key was never parsed.
func (k TenantKey) IsZero() bool {
	return k.key == ""
}

// Table is a handle for one of a tenant's dynamic tables. It can only be
// obtained through a TenantKey, which guarantees the name already passed
// validation.
type Table struct {
	name string
}

// EmployeesTable returns the handle for the tenant's employee table.
func (k TenantKey) EmployeesTable() Table {
	return Table{name: k.key + "_employees"}
}

// TeamsTable returns the handle for the tenant's team table.
func (k TenantKey) TeamsTable() Table {
	return Table{name: k.key + "_teams"}
}

// TeamMembersTable returns the handle for the tenant's team membership table.
func (k TenantKey) TeamMembersTable() Table {
	return Table{name: k.key + "_team_members"}
}

// Name returns the unquoted table name.
func (t Table) Name() string {
	return t.name
}

// Quoted renders the table name as a double-quoted PostgreSQL identifier.
// Quoting preserves the case of the tenant key, so "ACME" and "acme" map to
// distinct tables just as they are distinct registry keys.
func (t Table) Quoted() string {
	return `"` + strings.ReplaceAll(t.name, `"`, ``) + `"`
}
