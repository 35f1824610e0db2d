package models

import "time"

// SuperAdminDevice is a device the superadmin has completed email
// verification from. Logins from trusted devices skip the code step.
type SuperAdminDevice struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	AdminEmail string    `json:"admin_email" gorm:"type:varchar(255);index"`
	DeviceID   string    `json:"device_id" gorm:"type:varchar(255)"`
	LastUsedAt time.Time `json:"last_used_at"`
}

func (SuperAdminDevice) TableName() string {
	return "superadmin_devices"
}

// SuperAdminVerificationCode is a pending email verification code.
type SuperAdminVerificationCode struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Email     string    `json:"email" gorm:"type:varchar(255);index"`
	Code      string    `json:"code" gorm:"type:varchar(6)"`
	ExpiresAt time.Time `json:"expires_at"`
}

func (SuperAdminVerificationCode) TableName() string {
	return "superadmin_verification_codes"
}

// AdminSession is the superadmin session mirrored in Redis alongside the
// issued JWT.
type AdminSession struct {
	Email      string    `json:"email"`
	SessionID  string    `json:"session_id"`
	CreatedAt  time.Time `json:"created_at"`
	LastUsedAt time.Time `json:"last_used_at"`
	ExpiresAt  time.Time `json:"expires_at"`
}

// IsExpired checks if the session has expired
func (s *AdminSession) IsExpired() bool {
	return time.Now().After(s.ExpiresAt)
}
