package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/corehr/hr-admin-backend/shared/middleware"
	"github.com/corehr/hr-admin-backend/shared/models"
	"github.com/corehr/hr-admin-backend/shared/tenantdb"
	"github.com/corehr/hr-admin-backend/shared/utils"
)

const verificationCodeTTL = 10 * time.Minute

// SuperAdminLoginRequest represents the superadmin login request
type SuperAdminLoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
	DeviceID string `json:"device_id" binding:"required"`
}

// SuperAdminVerifyRequest represents the verification code request
type SuperAdminVerifyRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Code     string `json:"code" binding:"required"`
	DeviceID string `json:"device_id" binding:"required"`
}

// SuperAdminLoginResponse is returned once a device is trusted.
type SuperAdminLoginResponse struct {
	AccessToken string                  `json:"access_token"`
	TokenType   string                  `json:"token_type"`
	Email       string                  `json:"email"`
	Role        string                  `json:"role"`
	Dashboard   models.DashboardSummary `json:"dashboard"`
}

// checkSuperAdminCredentials compares the request against the
// env-configured superadmin identity. The configured password is a bcrypt
// hash, never plaintext.
func checkSuperAdminCredentials(email, password string) bool {
	configuredEmail := os.Getenv("SUPERADMIN_EMAIL")
	configuredHash := os.Getenv("SUPERADMIN_PASSWORD_HASH")
	if configuredEmail == "" || configuredHash == "" {
		logrus.Error("superadmin credentials not configured")
		return false
	}
	if email != configuredEmail {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(configuredHash), []byte(password)) == nil
}

// newVerificationCode derives a 6-digit code.
func newVerificationCode() string {
	return fmt.Sprintf("%06d", uuid.New().ID()%1000000)
}

// cachedDashboard serves the dashboard from Redis when fresh, otherwise
// recomputes and re-caches it.
func cachedDashboard(c *gin.Context, store *tenantdb.Store) (models.DashboardSummary, error) {
	if cached, err := utils.CacheGet(utils.DashboardCacheKey); err == nil {
		var summary models.DashboardSummary
		if err := json.Unmarshal([]byte(cached), &summary); err == nil {
			return summary, nil
		}
	}

	summary, err := store.DashboardSummary(c.Request.Context())
	if err != nil {
		return models.DashboardSummary{}, err
	}
	if data, err := json.Marshal(summary); err == nil {
		if err := utils.CacheSet(utils.DashboardCacheKey, string(data), utils.DashboardCacheTTL); err != nil {
			logrus.WithError(err).Warn("failed to cache dashboard summary")
		}
	}
	return summary, nil
}

// invalidateDashboard drops the cached summary after any mutation that
// changes tenant or employee counts.
func invalidateDashboard() {
	if err := utils.CacheDelete(utils.DashboardCacheKey); err != nil {
		logrus.WithError(err).Warn("failed to invalidate dashboard cache")
	}
}

func issueAdminSession(c *gin.Context, am *middleware.AuthMiddleware, store *tenantdb.Store, email string) {
	token, err := am.IssueToken(email)
	if err != nil {
		utils.InternalServerErrorResponse(c, "Failed to issue access token")
		return
	}
	if _, err := utils.CreateAdminSession(token, email, middleware.TokenTTL); err != nil {
		utils.InternalServerErrorResponse(c, "Failed to create session")
		return
	}

	dashboard, err := cachedDashboard(c, store)
	if err != nil {
		utils.StoreErrorResponse(c, err)
		return
	}

	utils.OKResponse(c, "Login successful", SuperAdminLoginResponse{
		AccessToken: token,
		TokenType:   "bearer",
		Email:       email,
		Role:        middleware.SuperAdminRole,
		Dashboard:   dashboard,
	})
}

// handleSuperAdminLogin authenticates the superadmin. Known devices get a
// token immediately; unknown devices get a verification code by email.
func handleSuperAdminLogin(db *gorm.DB, store *tenantdb.Store, am *middleware.AuthMiddleware, mailer *utils.Mailer) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req SuperAdminLoginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			utils.BadRequestResponse(c, "Invalid request format")
			return
		}

		if !checkSuperAdminCredentials(req.Email, req.Password) {
			utils.ForbiddenResponse(c, "Invalid email or password")
			return
		}

		var device models.SuperAdminDevice
		err := db.Where("admin_email = ? AND device_id = ?", req.Email, req.DeviceID).First(&device).Error
		if err == nil {
			db.Model(&device).Update("last_used_at", time.Now())
			issueAdminSession(c, am, store, req.Email)
			return
		}

		// Unknown device: issue a fresh verification code, superseding any
		// pending one.
		code := newVerificationCode()
		if err := db.Where("email = ?", req.Email).Delete(&models.SuperAdminVerificationCode{}).Error; err != nil {
			utils.InternalServerErrorResponse(c, "Failed to prepare verification code")
			return
		}
		record := models.SuperAdminVerificationCode{
			Email:     req.Email,
			Code:      code,
			ExpiresAt: time.Now().Add(verificationCodeTTL),
		}
		if err := db.Create(&record).Error; err != nil {
			utils.InternalServerErrorResponse(c, "Failed to store verification code")
			return
		}

		if err := mailer.SendVerificationCode(req.Email, code); err != nil {
			utils.ServiceUnavailableResponse(c, "Failed to send verification email")
			return
		}

		utils.OKResponse(c, "Verification code sent to your email", nil)
	}
}

// handleSuperAdminVerify completes the new-device flow: a valid code trusts
// the device and issues a token.
func handleSuperAdminVerify(db *gorm.DB, store *tenantdb.Store, am *middleware.AuthMiddleware) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req SuperAdminVerifyRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			utils.BadRequestResponse(c, "Invalid request format")
			return
		}

		var record models.SuperAdminVerificationCode
		err := db.Where("email = ? AND code = ?", req.Email, req.Code).First(&record).Error
		if err != nil || record.ExpiresAt.Before(time.Now()) {
			utils.BadRequestResponse(c, "Invalid or expired verification code")
			return
		}

		device := models.SuperAdminDevice{
			AdminEmail: req.Email,
			DeviceID:   req.DeviceID,
			LastUsedAt: time.Now(),
		}
		if err := db.Create(&device).Error; err != nil {
			utils.InternalServerErrorResponse(c, "Failed to trust device")
			return
		}
		if err := db.Where("email = ?", req.Email).Delete(&models.SuperAdminVerificationCode{}).Error; err != nil {
			// The device is already trusted; a leftover code only sits until
			// its expiry, so log and carry on.
			logrus.WithError(err).Warn("failed to clean up used verification code")
		}

		issueAdminSession(c, am, store, req.Email)
	}
}

// handleSuperAdminLogout revokes the presented token's session. The JWT
// stays cryptographically valid until expiry, but without its Redis
// session it is refused everywhere.
func handleSuperAdminLogout() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 {
			utils.UnauthorizedResponse(c, "Authorization token required")
			return
		}
		if err := utils.DeleteAdminSession(parts[1]); err != nil {
			utils.InternalServerErrorResponse(c, "Failed to revoke session")
			return
		}
		utils.OKResponse(c, "Logged out successfully", nil)
	}
}

// handleDashboard serves the cross-tenant rollup to an authenticated
// superadmin.
func handleDashboard(store *tenantdb.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		summary, err := cachedDashboard(c, store)
		if err != nil {
			utils.StoreErrorResponse(c, err)
			return
		}
		utils.OKResponse(c, "Dashboard retrieved successfully", summary)
	}
}
