package tenantdb

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// Error kinds surfaced by the tenant store. Handlers map these to HTTP
// statuses; callers match with errors.Is.
var (
	// ErrNotFound means an employee, team or member row is absent.
	ErrNotFound = errors.New("not found")
	// ErrTenantNotFound means the referenced company is not in the registry.
	ErrTenantNotFound = errors.New("company not found")
	// ErrDuplicateKey means a unique constraint was violated.
	ErrDuplicateKey = errors.New("duplicate key")
	// ErrNoFieldsProvided means an update carried an empty change-set.
	ErrNoFieldsProvided = errors.New("no fields to update")
	// ErrIntegrityViolation covers constraint violations not covered above.
	ErrIntegrityViolation = errors.New("integrity violation")
	// ErrSchemaInconsistency means a registry row exists but the tenant's
	// dynamic table is gone, or the other way round.
	ErrSchemaInconsistency = errors.New("schema inconsistency")
)

// PostgreSQL SQLSTATE codes
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	pgUndefinedTable      = "42P01"
)

// translate converts driver-level errors into the store's error kinds.
// Raw driver detail stays out of the returned messages.
func translate(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return fmt.Errorf("%w (%s)", ErrDuplicateKey, pgErr.ConstraintName)
		case pgForeignKeyViolation:
			return fmt.Errorf("%w (%s)", ErrIntegrityViolation, pgErr.ConstraintName)
		case pgUndefinedTable:
			return fmt.Errorf("%w: table missing", ErrSchemaInconsistency)
		}
	}
	return err
}
