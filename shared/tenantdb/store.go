package tenantdb

import (
	"context"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/corehr/hr-admin-backend/shared/models"
	"github.com/corehr/hr-admin-backend/shared/schema"
)

// Store executes DML against the registry and the dynamic per-tenant
// tables. Table names come exclusively from schema.TenantKey handles;
// every value is bound, never interpolated.
type Store struct {
	db  *gorm.DB
	log *logrus.Entry
}

// NewStore creates a store over an established database connection.
func NewStore(db *gorm.DB) *Store {
	return &Store{
		db:  db,
		log: logrus.WithField("component", "tenantdb"),
	}
}

// requireTenant fails with ErrTenantNotFound before any dynamic table name
// is used, so callers never see a raw undefined-table error for a company
// that simply does not exist.
func (s *Store) requireTenant(tx *gorm.DB, key schema.TenantKey) error {
	var count int64
	if err := tx.Model(&models.Company{}).Where("company_code = ?", key.String()).Count(&count).Error; err != nil {
		return translate(err)
	}
	if count == 0 {
		return fmt.Errorf("%w: %s", ErrTenantNotFound, key.String())
	}
	return nil
}

const employeeColumns = "id, company_code, employee_code, first_name, last_name, email, mobile, designation, role, password_hash, active"

// InsertEmployee adds an employee row to the tenant's dynamic table.
// The password hash is supplied by the caller.
func (s *Store) InsertEmployee(ctx context.Context, key schema.TenantKey, emp models.Employee) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.requireTenant(tx, key); err != nil {
			return err
		}
		query := fmt.Sprintf(`INSERT INTO %s
			(company_code, employee_code, first_name, last_name, email, mobile, designation, role, password_hash, active)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`, key.EmployeesTable().Quoted())
		if err := tx.Exec(query,
			key.String(), emp.EmployeeCode, emp.FirstName, emp.LastName, emp.Email,
			emp.Mobile, emp.Designation, emp.Role, emp.PasswordHash, emp.Active,
		).Error; err != nil {
			return translate(err)
		}
		return nil
	})
}

// GetEmployee fetches one employee by code from the tenant's table.
func (s *Store) GetEmployee(ctx context.Context, key schema.TenantKey, employeeCode string) (models.Employee, error) {
	db := s.db.WithContext(ctx)
	if err := s.requireTenant(db, key); err != nil {
		return models.Employee{}, err
	}

	var emp models.Employee
	query := fmt.Sprintf("SELECT %s FROM %s WHERE employee_code = ?", employeeColumns, key.EmployeesTable().Quoted())
	res := db.Raw(query, employeeCode).Scan(&emp)
	if res.Error != nil {
		return models.Employee{}, translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return models.Employee{}, fmt.Errorf("%w: employee %s", ErrNotFound, employeeCode)
	}
	return emp, nil
}

// ListEmployees returns every employee row for the tenant.
func (s *Store) ListEmployees(ctx context.Context, key schema.TenantKey) ([]models.Employee, error) {
	db := s.db.WithContext(ctx)
	if err := s.requireTenant(db, key); err != nil {
		return nil, err
	}

	employees := []models.Employee{}
	query := fmt.Sprintf("SELECT %s FROM %s ORDER BY employee_code", employeeColumns, key.EmployeesTable().Quoted())
	if err := db.Raw(query).Scan(&employees).Error; err != nil {
		return nil, translate(err)
	}
	return employees, nil
}

// buildEmployeeSet renders the SET clause for a partial employee update.
func buildEmployeeSet(update models.EmployeeUpdate) (string, []interface{}) {
	var cols []string
	var args []interface{}
	if update.FirstName != nil {
		cols, args = append(cols, "first_name = ?"), append(args, *update.FirstName)
	}
	if update.LastName != nil {
		cols, args = append(cols, "last_name = ?"), append(args, *update.LastName)
	}
	if update.Email != nil {
		cols, args = append(cols, "email = ?"), append(args, *update.Email)
	}
	if update.Mobile != nil {
		cols, args = append(cols, "mobile = ?"), append(args, *update.Mobile)
	}
	if update.Designation != nil {
		cols, args = append(cols, "designation = ?"), append(args, *update.Designation)
	}
	if update.Active != nil {
		cols, args = append(cols, "active = ?"), append(args, *update.Active)
	}
	return strings.Join(cols, ", "), args
}

// UpdateEmployee applies a partial update to one employee row.
func (s *Store) UpdateEmployee(ctx context.Context, key schema.TenantKey, employeeCode string, update models.EmployeeUpdate) error {
	if update.IsEmpty() {
		return ErrNoFieldsProvided
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.requireTenant(tx, key); err != nil {
			return err
		}
		setClause, args := buildEmployeeSet(update)
		query := fmt.Sprintf("UPDATE %s SET %s WHERE employee_code = ?", key.EmployeesTable().Quoted(), setClause)
		res := tx.Exec(query, append(args, employeeCode)...)
		if res.Error != nil {
			return translate(res.Error)
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("%w: employee %s", ErrNotFound, employeeCode)
		}
		return nil
	})
}

// DeleteEmployee removes one employee row. Deleting an absent row is a
// no-op reported as success.
func (s *Store) DeleteEmployee(ctx context.Context, key schema.TenantKey, employeeCode string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.requireTenant(tx, key); err != nil {
			return err
		}
		query := fmt.Sprintf("DELETE FROM %s WHERE employee_code = ?", key.EmployeesTable().Quoted())
		if err := tx.Exec(query, employeeCode).Error; err != nil {
			return translate(err)
		}
		// Membership rows are keyed by employee code without a foreign key,
		// so they are cleaned up here alongside the employee.
		query = fmt.Sprintf("DELETE FROM %s WHERE employee_code = ?", key.TeamMembersTable().Quoted())
		if err := tx.Exec(query, employeeCode).Error; err != nil {
			return translate(err)
		}
		return nil
	})
}
