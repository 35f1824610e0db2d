package main

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/corehr/hr-admin-backend/shared/models"
	"github.com/corehr/hr-admin-backend/shared/schema"
	"github.com/corehr/hr-admin-backend/shared/tenantdb"
	"github.com/corehr/hr-admin-backend/shared/utils"
)

// CreateTeamRequest represents the create team request
type CreateTeamRequest struct {
	CompanyCode     string `json:"company_code" binding:"required"`
	TeamName        string `json:"team_name" binding:"required"`
	TeamDescription string `json:"team_description"`
}

// AddTeamMembersRequest represents the add team members request
type AddTeamMembersRequest struct {
	CompanyCode   string   `json:"company_code" binding:"required"`
	TeamID        int64    `json:"team_id" binding:"required"`
	EmployeeCodes []string `json:"employee_codes" binding:"required,min=1"`
}

func parseTeamID(c *gin.Context) (int64, bool) {
	teamID, err := strconv.ParseInt(c.Param("team_id"), 10, 64)
	if err != nil {
		utils.BadRequestResponse(c, "Invalid team id")
		return 0, false
	}
	return teamID, true
}

// handleCreateTeam creates a team in the company's team table.
func handleCreateTeam(store *tenantdb.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CreateTeamRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			utils.BadRequestResponse(c, "Invalid request format")
			return
		}

		key, err := schema.ParseTenantKey(req.CompanyCode)
		if err != nil {
			utils.StoreErrorResponse(c, err)
			return
		}

		teamID, err := store.CreateTeam(c.Request.Context(), key, req.TeamName, req.TeamDescription)
		if err != nil {
			utils.StoreErrorResponse(c, err)
			return
		}
		utils.CreatedResponse(c, "Team created successfully", gin.H{"team_id": teamID})
	}
}

// handleUpdateTeam applies a partial team update.
func handleUpdateTeam(store *tenantdb.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		key, err := schema.ParseTenantKey(c.Param("company_code"))
		if err != nil {
			utils.StoreErrorResponse(c, err)
			return
		}
		teamID, ok := parseTeamID(c)
		if !ok {
			return
		}

		var req models.TeamUpdate
		if err := c.ShouldBindJSON(&req); err != nil {
			utils.BadRequestResponse(c, "Invalid request format")
			return
		}

		if err := store.UpdateTeam(c.Request.Context(), key, teamID, req); err != nil {
			utils.StoreErrorResponse(c, err)
			return
		}
		utils.OKResponse(c, "Team updated successfully", nil)
	}
}

// handleDeleteTeam removes a team and, through the cascade, its members.
func handleDeleteTeam(store *tenantdb.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		key, err := schema.ParseTenantKey(c.Param("company_code"))
		if err != nil {
			utils.StoreErrorResponse(c, err)
			return
		}
		teamID, ok := parseTeamID(c)
		if !ok {
			return
		}

		if err := store.DeleteTeam(c.Request.Context(), key, teamID); err != nil {
			utils.StoreErrorResponse(c, err)
			return
		}
		utils.OKResponse(c, "Team deleted successfully", nil)
	}
}

// handleAddTeamMembers adds employees to a team; every code must exist in
// the company's employee table.
func handleAddTeamMembers(store *tenantdb.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req AddTeamMembersRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			utils.BadRequestResponse(c, "Invalid request format")
			return
		}

		key, err := schema.ParseTenantKey(req.CompanyCode)
		if err != nil {
			utils.StoreErrorResponse(c, err)
			return
		}

		if err := store.AddTeamMembers(c.Request.Context(), key, req.TeamID, req.EmployeeCodes); err != nil {
			utils.StoreErrorResponse(c, err)
			return
		}
		utils.CreatedResponse(c, "Team members added successfully", nil)
	}
}

// handleRemoveTeamMember removes one employee from a team.
func handleRemoveTeamMember(store *tenantdb.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		key, err := schema.ParseTenantKey(c.Param("company_code"))
		if err != nil {
			utils.StoreErrorResponse(c, err)
			return
		}
		teamID, ok := parseTeamID(c)
		if !ok {
			return
		}

		if err := store.RemoveTeamMember(c.Request.Context(), key, teamID, c.Param("employee_code")); err != nil {
			utils.StoreErrorResponse(c, err)
			return
		}
		utils.OKResponse(c, "Team member removed successfully", nil)
	}
}

// handleGetCompanyTeams lists the company's teams with resolved members.
func handleGetCompanyTeams(store *tenantdb.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		key, err := schema.ParseTenantKey(c.Param("company_code"))
		if err != nil {
			utils.StoreErrorResponse(c, err)
			return
		}

		teams, err := store.TeamsForTenant(c.Request.Context(), key)
		if err != nil {
			utils.StoreErrorResponse(c, err)
			return
		}
		utils.OKResponse(c, "Teams retrieved successfully", gin.H{
			"company_code": key.String(),
			"teams":        teams,
		})
	}
}

// handleTeamCount returns how many teams the company has.
func handleTeamCount(store *tenantdb.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		key, err := schema.ParseTenantKey(c.Param("company_code"))
		if err != nil {
			utils.StoreErrorResponse(c, err)
			return
		}

		count, err := store.TeamCount(c.Request.Context(), key)
		if err != nil {
			utils.StoreErrorResponse(c, err)
			return
		}
		utils.OKResponse(c, "Team count retrieved successfully", gin.H{
			"company_code": key.String(),
			"team_count":   count,
		})
	}
}
