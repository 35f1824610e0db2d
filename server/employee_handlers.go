package main

import (
	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"github.com/corehr/hr-admin-backend/shared/models"
	"github.com/corehr/hr-admin-backend/shared/schema"
	"github.com/corehr/hr-admin-backend/shared/tenantdb"
	"github.com/corehr/hr-admin-backend/shared/utils"
)

// AddEmployeeRequest represents the add employee request
type AddEmployeeRequest struct {
	CompanyCode  string `json:"company_code" binding:"required"`
	EmployeeCode string `json:"employee_code" binding:"required"`
	FirstName    string `json:"first_name" binding:"required"`
	LastName     string `json:"last_name" binding:"required"`
	Email        string `json:"email" binding:"required,email"`
	Mobile       string `json:"mobile"`
	Designation  string `json:"designation"`
	Role         string `json:"role"`
	Password     string `json:"password" binding:"required,min=8"`
}

// handleAddEmployee inserts an employee into the company's dynamic table.
// The plaintext credential is hashed here and never stored.
func handleAddEmployee(store *tenantdb.Store, producer *EventProducer) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req AddEmployeeRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			utils.BadRequestResponse(c, "Invalid request format")
			return
		}

		key, err := schema.ParseTenantKey(req.CompanyCode)
		if err != nil {
			utils.StoreErrorResponse(c, err)
			return
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			utils.InternalServerErrorResponse(c, "Failed to hash password")
			return
		}

		employee := models.Employee{
			CompanyCode:  req.CompanyCode,
			EmployeeCode: req.EmployeeCode,
			FirstName:    req.FirstName,
			LastName:     req.LastName,
			Email:        req.Email,
			Mobile:       req.Mobile,
			Designation:  req.Designation,
			Role:         req.Role,
			PasswordHash: string(hash),
			Active:       true,
		}

		if err := store.InsertEmployee(c.Request.Context(), key, employee); err != nil {
			utils.StoreErrorResponse(c, err)
			return
		}

		invalidateDashboard()
		producer.Publish(EventEmployeeAdded, key.String(), req.EmployeeCode)
		utils.CreatedResponse(c, "Employee added successfully", employee)
	}
}

// handleListEmployees lists every employee of a company.
func handleListEmployees(store *tenantdb.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		key, err := schema.ParseTenantKey(c.Param("company_code"))
		if err != nil {
			utils.StoreErrorResponse(c, err)
			return
		}

		employees, err := store.ListEmployees(c.Request.Context(), key)
		if err != nil {
			utils.StoreErrorResponse(c, err)
			return
		}
		utils.OKResponse(c, "Employees retrieved successfully", employees)
	}
}

// handleGetEmployee fetches one employee by code.
func handleGetEmployee(store *tenantdb.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		key, err := schema.ParseTenantKey(c.Param("company_code"))
		if err != nil {
			utils.StoreErrorResponse(c, err)
			return
		}

		employee, err := store.GetEmployee(c.Request.Context(), key, c.Param("employee_code"))
		if err != nil {
			utils.StoreErrorResponse(c, err)
			return
		}
		utils.OKResponse(c, "Employee retrieved successfully", employee)
	}
}

// handleUpdateEmployee applies a partial update built only from the fields
// actually supplied.
func handleUpdateEmployee(store *tenantdb.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		key, err := schema.ParseTenantKey(c.Param("company_code"))
		if err != nil {
			utils.StoreErrorResponse(c, err)
			return
		}

		var req models.EmployeeUpdate
		if err := c.ShouldBindJSON(&req); err != nil {
			utils.BadRequestResponse(c, "Invalid request format")
			return
		}

		if err := store.UpdateEmployee(c.Request.Context(), key, c.Param("employee_code"), req); err != nil {
			utils.StoreErrorResponse(c, err)
			return
		}
		utils.OKResponse(c, "Employee updated successfully", nil)
	}
}

// handleDeleteEmployee removes an employee; deleting an absent employee
// still reports success.
func handleDeleteEmployee(store *tenantdb.Store, producer *EventProducer) gin.HandlerFunc {
	return func(c *gin.Context) {
		key, err := schema.ParseTenantKey(c.Param("company_code"))
		if err != nil {
			utils.StoreErrorResponse(c, err)
			return
		}

		employeeCode := c.Param("employee_code")
		if err := store.DeleteEmployee(c.Request.Context(), key, employeeCode); err != nil {
			utils.StoreErrorResponse(c, err)
			return
		}

		invalidateDashboard()
		producer.Publish(EventEmployeeDeleted, key.String(), employeeCode)
		utils.OKResponse(c, "Employee deleted successfully", nil)
	}
}
