package models

// Employee is a row in one tenant's dynamic employee table. The struct is
// scanned from raw queries; there is no fixed table behind it.
type Employee struct {
	ID           int64  `json:"id"`
	CompanyCode  string `json:"company_code"`
	EmployeeCode string `json:"employee_code"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	Email        string `json:"email"`
	Mobile       string `json:"mobile"`
	Designation  string `json:"designation"`
	Role         string `json:"role"`
	PasswordHash string `json:"-"`
	Active       bool   `json:"active"`
}

// EmployeeUpdate carries a partial employee mutation; only non-nil fields
// make it into the SET clause.
type EmployeeUpdate struct {
	FirstName   *string `json:"first_name"`
	LastName    *string `json:"last_name"`
	Email       *string `json:"email"`
	Mobile      *string `json:"mobile"`
	Designation *string `json:"designation"`
	Active      *bool   `json:"active"`
}

// IsEmpty reports whether the update carries no fields at all.
func (u EmployeeUpdate) IsEmpty() bool {
	return u.FirstName == nil && u.LastName == nil && u.Email == nil &&
		u.Mobile == nil && u.Designation == nil && u.Active == nil
}
