package models

// Team is a row in one tenant's dynamic team table.
type Team struct {
	ID              int64  `json:"id"`
	CompanyCode     string `json:"company_code"`
	TeamName        string `json:"team_name"`
	TeamDescription string `json:"team_description"`
}

// TeamUpdate carries a partial team mutation.
type TeamUpdate struct {
	TeamName        *string `json:"team_name"`
	TeamDescription *string `json:"team_description"`
}

// IsEmpty reports whether the update carries no fields at all.
func (u TeamUpdate) IsEmpty() bool {
	return u.TeamName == nil && u.TeamDescription == nil
}

// TeamMemberInfo identifies one employee inside a team listing.
type TeamMemberInfo struct {
	EmployeeCode string `json:"employee_code"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
}

// TeamInfo is a team plus its resolved members.
type TeamInfo struct {
	TeamID          int64            `json:"team_id"`
	TeamName        string           `json:"team_name"`
	TeamDescription string           `json:"team_description"`
	MemberCount     int              `json:"member_count"`
	Members         []TeamMemberInfo `json:"members"`
}

// DashboardCompany is one tenant's slice of the dashboard rollup.
type DashboardCompany struct {
	CompanyID     uint   `json:"company_id"`
	CompanyCode   string `json:"company_code"`
	CompanyName   string `json:"company_name"`
	EmployeeCount int64  `json:"employee_count"`
}

// DashboardSummary is the cross-tenant rollup served to the superadmin.
type DashboardSummary struct {
	CompanyCount  int                `json:"company_count"`
	EmployeeCount int64              `json:"employee_count"`
	Companies     []DashboardCompany `json:"companies"`
}
