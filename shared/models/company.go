package models

import (
	"time"
)

// Company represents a tenant in the registry. The company code is the
// immutable key every dynamic table name is derived from.
type Company struct {
	ID             uint      `json:"id" gorm:"primaryKey"`
	CompanyCode    string    `json:"company_code" gorm:"type:varchar(100);uniqueIndex;not null"`
	CompanyName    string    `json:"company_name" gorm:"type:varchar(256)"`
	CompanyAddress string    `json:"company_address" gorm:"type:varchar(256)"`
	CompanyCity    string    `json:"company_city" gorm:"type:varchar(100)"`
	CompanyState   string    `json:"company_state" gorm:"type:varchar(100)"`
	CompanyCountry string    `json:"company_country" gorm:"type:varchar(100)"`
	CompanyEmail   string    `json:"company_email" gorm:"type:varchar(100)"`
	CompanyPhone   string    `json:"company_phone" gorm:"type:varchar(56)"`
	Active         bool      `json:"active" gorm:"default:true"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// TableName returns the table name for the Company model
func (Company) TableName() string {
	return "companies"
}

// CompanyUpdate carries a partial registry-row mutation. Nil fields are
// left untouched.
type CompanyUpdate struct {
	CompanyName    *string `json:"company_name"`
	CompanyAddress *string `json:"company_address"`
	CompanyCity    *string `json:"company_city"`
	CompanyState   *string `json:"company_state"`
	CompanyCountry *string `json:"company_country"`
	CompanyEmail   *string `json:"company_email"`
	CompanyPhone   *string `json:"company_phone"`
	Active         *bool   `json:"active"`
}

// IsEmpty reports whether the update carries no fields at all.
func (u CompanyUpdate) IsEmpty() bool {
	return u.CompanyName == nil && u.CompanyAddress == nil && u.CompanyCity == nil &&
		u.CompanyState == nil && u.CompanyCountry == nil && u.CompanyEmail == nil &&
		u.CompanyPhone == nil && u.Active == nil
}
