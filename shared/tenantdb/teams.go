package tenantdb

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/corehr/hr-admin-backend/shared/models"
	"github.com/corehr/hr-admin-backend/shared/schema"
)

// CreateTeam inserts a team into the tenant's team table and returns the
// generated team id.
func (s *Store) CreateTeam(ctx context.Context, key schema.TenantKey, name, description string) (int64, error) {
	var teamID int64
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.requireTenant(tx, key); err != nil {
			return err
		}
		query := fmt.Sprintf(`INSERT INTO %s (company_code, team_name, team_description)
			VALUES (?, ?, ?) RETURNING id`, key.TeamsTable().Quoted())
		if err := tx.Raw(query, key.String(), name, description).Scan(&teamID).Error; err != nil {
			return translate(err)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return teamID, nil
}

// buildTeamSet renders the SET clause for a partial team update.
func buildTeamSet(update models.TeamUpdate) (string, []interface{}) {
	var cols []string
	var args []interface{}
	if update.TeamName != nil {
		cols, args = append(cols, "team_name = ?"), append(args, *update.TeamName)
	}
	if update.TeamDescription != nil {
		cols, args = append(cols, "team_description = ?"), append(args, *update.TeamDescription)
	}
	return strings.Join(cols, ", "), args
}

// UpdateTeam applies a partial update to one team row.
func (s *Store) UpdateTeam(ctx context.Context, key schema.TenantKey, teamID int64, update models.TeamUpdate) error {
	if update.IsEmpty() {
		return ErrNoFieldsProvided
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.requireTenant(tx, key); err != nil {
			return err
		}
		setClause, args := buildTeamSet(update)
		query := fmt.Sprintf("UPDATE %s SET %s WHERE id = ?", key.TeamsTable().Quoted(), setClause)
		res := tx.Exec(query, append(args, teamID)...)
		if res.Error != nil {
			return translate(res.Error)
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("%w: team %d", ErrNotFound, teamID)
		}
		return nil
	})
}

// DeleteTeam removes a team; its membership rows cascade away with it.
func (s *Store) DeleteTeam(ctx context.Context, key schema.TenantKey, teamID int64) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.requireTenant(tx, key); err != nil {
			return err
		}
		query := fmt.Sprintf("DELETE FROM %s WHERE id = ?", key.TeamsTable().Quoted())
		res := tx.Exec(query, teamID)
		if res.Error != nil {
			return translate(res.Error)
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("%w: team %d", ErrNotFound, teamID)
		}
		return nil
	})
}

// AddTeamMembers adds employees to a team. Every employee code must exist
// in the tenant's employee table; membership never references an employee
// the tenant does not have.
func (s *Store) AddTeamMembers(ctx context.Context, key schema.TenantKey, teamID int64, employeeCodes []string) error {
	if len(employeeCodes) == 0 {
		return ErrNoFieldsProvided
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.requireTenant(tx, key); err != nil {
			return err
		}

		var teamCount int64
		query := fmt.Sprintf("SELECT COUNT(*) FROM %s WHERE id = ?", key.TeamsTable().Quoted())
		if err := tx.Raw(query, teamID).Scan(&teamCount).Error; err != nil {
			return translate(err)
		}
		if teamCount == 0 {
			return fmt.Errorf("%w: team %d", ErrNotFound, teamID)
		}

		existsQuery := fmt.Sprintf("SELECT COUNT(*) FROM %s WHERE employee_code = ?", key.EmployeesTable().Quoted())
		insertQuery := fmt.Sprintf(`INSERT INTO %s (company_code, team_id, employee_code)
			VALUES (?, ?, ?)`, key.TeamMembersTable().Quoted())
		for _, code := range employeeCodes {
			var count int64
			if err := tx.Raw(existsQuery, code).Scan(&count).Error; err != nil {
				return translate(err)
			}
			if count == 0 {
				return fmt.Errorf("%w: employee %s", ErrNotFound, code)
			}
			if err := tx.Exec(insertQuery, key.String(), teamID, code).Error; err != nil {
				return translate(err)
			}
		}
		return nil
	})
}

// RemoveTeamMember removes one employee from a team.
func (s *Store) RemoveTeamMember(ctx context.Context, key schema.TenantKey, teamID int64, employeeCode string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.requireTenant(tx, key); err != nil {
			return err
		}
		query := fmt.Sprintf("DELETE FROM %s WHERE team_id = ? AND employee_code = ?", key.TeamMembersTable().Quoted())
		res := tx.Exec(query, teamID, employeeCode)
		if res.Error != nil {
			return translate(res.Error)
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("%w: employee %s in team %d", ErrNotFound, employeeCode, teamID)
		}
		return nil
	})
}

// TeamCount returns how many teams the tenant has.
func (s *Store) TeamCount(ctx context.Context, key schema.TenantKey) (int64, error) {
	db := s.db.WithContext(ctx)
	if err := s.requireTenant(db, key); err != nil {
		return 0, err
	}
	var count int64
	query := fmt.Sprintf("SELECT COUNT(*) FROM %s", key.TeamsTable().Quoted())
	if err := db.Raw(query).Scan(&count).Error; err != nil {
		return 0, translate(err)
	}
	return count, nil
}
