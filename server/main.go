package main

import (
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/corehr/hr-admin-backend/shared/config"
	"github.com/corehr/hr-admin-backend/shared/middleware"
	"github.com/corehr/hr-admin-backend/shared/models"
	"github.com/corehr/hr-admin-backend/shared/tenantdb"
	"github.com/corehr/hr-admin-backend/shared/utils"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		logrus.Warn("No .env file found, using environment variables")
	}

	// Initialize Redis for sessions and the dashboard cache
	if err := utils.InitRedis(); err != nil {
		log.Fatal("Failed to connect to Redis:", err)
	}
	defer utils.CloseRedis()

	// Initialize database
	db, err := config.ConnectDatabase()
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	// Fixed tables only; per-tenant tables are provisioned by the
	// lifecycle orchestrator at runtime.
	if err := db.AutoMigrate(
		&models.Company{},
		&models.SuperAdminDevice{},
		&models.SuperAdminVerificationCode{},
	); err != nil {
		log.Fatal("Failed to migrate fixed tables:", err)
	}

	store := tenantdb.NewStore(db)

	// Initialize authentication middleware
	authMiddleware, err := middleware.NewAuthMiddleware()
	if err != nil {
		log.Fatal("Failed to initialize auth middleware:", err)
	}

	// Initialize the verification mailer
	mailer, err := utils.NewMailer()
	if err != nil {
		log.Fatal("Failed to initialize mailer:", err)
	}

	// Tenant lifecycle events are optional; without a broker the backend
	// runs with events disabled.
	var producer *EventProducer
	if broker := os.Getenv("KAFKA_BROKER"); broker != "" {
		producer = NewEventProducer(broker)
		defer producer.Close()
	} else {
		logrus.Warn("KAFKA_BROKER not set, tenant lifecycle events disabled")
	}

	// Initialize Gin router
	router := gin.Default()

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		utils.OKResponse(c, "HR admin service is healthy", nil)
	})

	// Superadmin authentication and dashboard
	superadmin := router.Group("/superadmin")
	{
		superadmin.POST("/login", handleSuperAdminLogin(db, store, authMiddleware, mailer))
		superadmin.POST("/verify", handleSuperAdminVerify(db, store, authMiddleware))
		superadmin.POST("/logout", authMiddleware.RequireSuperAdmin(), handleSuperAdminLogout())
		superadmin.GET("/dashboard", authMiddleware.RequireSuperAdmin(), handleDashboard(store))
	}

	// Company (tenant) lifecycle
	companies := router.Group("/companies")
	companies.Use(authMiddleware.RequireSuperAdmin())
	{
		companies.POST("", handleCreateCompany(store, producer))
		companies.GET("", handleGetCompanies(store))
		companies.GET("/:code", handleGetCompany(store))
		companies.PUT("/:code", handleUpdateCompany(store, producer))
		companies.DELETE("/:code", handleDeleteCompany(store, producer))
	}

	// Per-tenant employee management
	employees := router.Group("/employees")
	employees.Use(authMiddleware.RequireSuperAdmin())
	{
		employees.POST("", handleAddEmployee(store, producer))
		employees.GET("/:company_code", handleListEmployees(store))
		employees.GET("/:company_code/:employee_code", handleGetEmployee(store))
		employees.PUT("/:company_code/:employee_code", handleUpdateEmployee(store))
		employees.DELETE("/:company_code/:employee_code", handleDeleteEmployee(store, producer))
	}

	// Per-tenant teams and membership
	teams := router.Group("/teams")
	teams.Use(authMiddleware.RequireSuperAdmin())
	{
		teams.POST("", handleCreateTeam(store))
		teams.POST("/members", handleAddTeamMembers(store))
		teams.GET("/:company_code", handleGetCompanyTeams(store))
		teams.GET("/:company_code/count", handleTeamCount(store))
		teams.PATCH("/:company_code/:team_id", handleUpdateTeam(store))
		teams.DELETE("/:company_code/:team_id", handleDeleteTeam(store))
		teams.DELETE("/:company_code/:team_id/members/:employee_code", handleRemoveTeamMember(store))
	}

	// Start server
	port := os.Getenv("SERVER_PORT")
	if port == "" {
		port = "8001"
	}

	logrus.Infof("HR admin service starting on port %s", port)
	if err := router.Run(":" + port); err != nil {
		log.Fatal("Failed to start HR admin service:", err)
	}
}
