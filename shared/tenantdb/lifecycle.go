package tenantdb

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/corehr/hr-admin-backend/shared/models"
	"github.com/corehr/hr-admin-backend/shared/schema"
)

// CreateTenant inserts the registry row and provisions the tenant's three
// dynamic tables. PostgreSQL DDL is transactional, so the whole operation
// commits or rolls back as one unit and no orphaned registry row can
// survive a failed CREATE TABLE. Two racing creates are settled by the
// registry's unique constraint; the loser gets ErrDuplicateKey.
func (s *Store) CreateTenant(ctx context.Context, company *models.Company) error {
	key, err := schema.ParseTenantKey(company.CompanyCode)
	if err != nil {
		return err
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Company{}).Where("company_code = ?", key.String()).Count(&count).Error; err != nil {
			return translate(err)
		}
		if count > 0 {
			return fmt.Errorf("%w: company code %s", ErrDuplicateKey, key.String())
		}

		company.Active = true
		if err := tx.Create(company).Error; err != nil {
			return translate(err)
		}

		for _, ddl := range []string{
			schema.CreateEmployeesDDL(key),
			schema.CreateTeamsDDL(key),
			schema.CreateTeamMembersDDL(key),
		} {
			if err := tx.Exec(ddl).Error; err != nil {
				return translate(err)
			}
		}

		s.log.WithField("company", key.String()).Info("tenant created with dynamic tables")
		return nil
	})
}

// GetTenant fetches one registry row by company code.
func (s *Store) GetTenant(ctx context.Context, key schema.TenantKey) (models.Company, error) {
	var company models.Company
	err := s.db.WithContext(ctx).Where("company_code = ?", key.String()).First(&company).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Company{}, fmt.Errorf("%w: %s", ErrTenantNotFound, key.String())
		}
		return models.Company{}, translate(err)
	}
	return company, nil
}

// ListTenants returns every registry row.
func (s *Store) ListTenants(ctx context.Context) ([]models.Company, error) {
	companies := []models.Company{}
	if err := s.db.WithContext(ctx).Order("company_code").Find(&companies).Error; err != nil {
		return nil, translate(err)
	}
	return companies, nil
}

// buildCompanyUpdates maps a partial registry mutation onto column updates.
func buildCompanyUpdates(update models.CompanyUpdate) map[string]interface{} {
	updates := map[string]interface{}{}
	if update.CompanyName != nil {
		updates["company_name"] = *update.CompanyName
	}
	if update.CompanyAddress != nil {
		updates["company_address"] = *update.CompanyAddress
	}
	if update.CompanyCity != nil {
		updates["company_city"] = *update.CompanyCity
	}
	if update.CompanyState != nil {
		updates["company_state"] = *update.CompanyState
	}
	if update.CompanyCountry != nil {
		updates["company_country"] = *update.CompanyCountry
	}
	if update.CompanyEmail != nil {
		updates["company_email"] = *update.CompanyEmail
	}
	if update.CompanyPhone != nil {
		updates["company_phone"] = *update.CompanyPhone
	}
	if update.Active != nil {
		updates["active"] = *update.Active
	}
	return updates
}

// UpdateTenant mutates the registry row only; the company code itself is
// immutable and no DDL is involved.
func (s *Store) UpdateTenant(ctx context.Context, key schema.TenantKey, update models.CompanyUpdate) error {
	if update.IsEmpty() {
		return ErrNoFieldsProvided
	}
	res := s.db.WithContext(ctx).Model(&models.Company{}).
		Where("company_code = ?", key.String()).
		Updates(buildCompanyUpdates(update))
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: %s", ErrTenantNotFound, key.String())
	}
	return nil
}

// DeleteTenant drops the tenant's dynamic tables and then deletes the
// registry row, all in one transaction. Dropping tables first is the safer
// failure direction: a crash mid-way leaves an orphaned table at worst,
// never a registry row pointing at dangling references.
func (s *Store) DeleteTenant(ctx context.Context, key schema.TenantKey) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.requireTenant(tx, key); err != nil {
			return err
		}

		// Members reference teams, so they go first.
		for _, table := range []schema.Table{
			key.TeamMembersTable(),
			key.TeamsTable(),
			key.EmployeesTable(),
		} {
			if err := tx.Exec(schema.DropDDL(table)).Error; err != nil {
				return translate(err)
			}
		}

		if err := tx.Where("company_code = ?", key.String()).Delete(&models.Company{}).Error; err != nil {
			return translate(err)
		}

		s.log.WithField("company", key.String()).Info("tenant and dynamic tables deleted")
		return nil
	})
}
