package tenantdb

import (
	"context"
	"fmt"

	"github.com/corehr/hr-admin-backend/shared/models"
	"github.com/corehr/hr-admin-backend/shared/schema"
)

// DashboardSummary rolls up every tenant in the registry. A tenant whose
// employee table is missing or unreadable counts as zero employees instead
// of failing the whole call; partial data beats total failure on the
// dashboard, and the degradation is logged rather than hidden.
func (s *Store) DashboardSummary(ctx context.Context) (models.DashboardSummary, error) {
	db := s.db.WithContext(ctx)

	var companies []models.Company
	if err := db.Order("company_code").Find(&companies).Error; err != nil {
		return models.DashboardSummary{}, translate(err)
	}

	summary := models.DashboardSummary{
		CompanyCount: len(companies),
		Companies:    make([]models.DashboardCompany, 0, len(companies)),
	}
	for _, company := range companies {
		entry := models.DashboardCompany{
			CompanyID:   company.ID,
			CompanyCode: company.CompanyCode,
			CompanyName: company.CompanyName,
		}
		// Registry rows predate key validation only if someone wrote them
		// out-of-band; treat those like a missing table.
		if key, err := schema.ParseTenantKey(company.CompanyCode); err == nil {
			var count int64
			query := fmt.Sprintf("SELECT COUNT(*) FROM %s", key.EmployeesTable().Quoted())
			if err := db.Raw(query).Scan(&count).Error; err != nil {
				s.log.WithField("company", company.CompanyCode).
					WithError(err).Warn("employee count unavailable, reporting zero")
			} else {
				entry.EmployeeCount = count
			}
		} else {
			s.log.WithField("company", company.CompanyCode).Warn("unsafe company code in registry, reporting zero")
		}
		summary.EmployeeCount += entry.EmployeeCount
		summary.Companies = append(summary.Companies, entry)
	}
	return summary, nil
}

// employeeTableExists consults the catalog instead of probing with a query,
// so a missing table never surfaces as a driver error here.
func (s *Store) employeeTableExists(ctx context.Context, key schema.TenantKey) (bool, error) {
	var exists bool
	err := s.db.WithContext(ctx).Raw(
		"SELECT EXISTS (SELECT 1 FROM information_schema.tables WHERE table_name = ?)",
		key.EmployeesTable().Name(),
	).Scan(&exists).Error
	if err != nil {
		return false, translate(err)
	}
	return exists, nil
}

// TeamsForTenant lists every team of the tenant with its resolved members.
// The employee table is a prerequisite for any listing since membership
// resolves against employee identity; a registry row without the table
// reports NotFound, not an empty result.
func (s *Store) TeamsForTenant(ctx context.Context, key schema.TenantKey) ([]models.TeamInfo, error) {
	db := s.db.WithContext(ctx)
	if err := s.requireTenant(db, key); err != nil {
		return nil, err
	}

	exists, err := s.employeeTableExists(ctx, key)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, fmt.Errorf("%w: employee records for %s", ErrNotFound, key.String())
	}

	teams := []models.Team{}
	query := fmt.Sprintf("SELECT id, company_code, team_name, team_description FROM %s ORDER BY id", key.TeamsTable().Quoted())
	if err := db.Raw(query).Scan(&teams).Error; err != nil {
		return nil, translate(err)
	}

	membersQuery := fmt.Sprintf(`SELECT e.employee_code, e.first_name, e.last_name
		FROM %s AS e
		JOIN %s AS m ON m.employee_code = e.employee_code
		WHERE m.team_id = ?
		ORDER BY e.employee_code`, key.EmployeesTable().Quoted(), key.TeamMembersTable().Quoted())

	infos := make([]models.TeamInfo, 0, len(teams))
	for _, team := range teams {
		members := []models.TeamMemberInfo{}
		if err := db.Raw(membersQuery, team.ID).Scan(&members).Error; err != nil {
			return nil, translate(err)
		}
		infos = append(infos, models.TeamInfo{
			TeamID:          team.ID,
			TeamName:        team.TeamName,
			TeamDescription: team.TeamDescription,
			MemberCount:     len(members),
			Members:         members,
		})
	}
	return infos, nil
}
