package main

import (
	"github.com/gin-gonic/gin"

	"github.com/corehr/hr-admin-backend/shared/models"
	"github.com/corehr/hr-admin-backend/shared/schema"
	"github.com/corehr/hr-admin-backend/shared/tenantdb"
	"github.com/corehr/hr-admin-backend/shared/utils"
)

// CreateCompanyRequest represents the create company request
type CreateCompanyRequest struct {
	CompanyCode    string `json:"company_code" binding:"required"`
	CompanyName    string `json:"company_name" binding:"required"`
	CompanyAddress string `json:"company_address"`
	CompanyCity    string `json:"company_city"`
	CompanyState   string `json:"company_state"`
	CompanyCountry string `json:"company_country"`
	CompanyEmail   string `json:"company_email"`
	CompanyPhone   string `json:"company_phone"`
}

// handleCreateCompany provisions a new tenant: registry row plus its
// dynamic tables, atomically.
func handleCreateCompany(store *tenantdb.Store, producer *EventProducer) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CreateCompanyRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			utils.BadRequestResponse(c, "Invalid request format")
			return
		}

		company := models.Company{
			CompanyCode:    req.CompanyCode,
			CompanyName:    req.CompanyName,
			CompanyAddress: req.CompanyAddress,
			CompanyCity:    req.CompanyCity,
			CompanyState:   req.CompanyState,
			CompanyCountry: req.CompanyCountry,
			CompanyEmail:   req.CompanyEmail,
			CompanyPhone:   req.CompanyPhone,
		}

		if err := store.CreateTenant(c.Request.Context(), &company); err != nil {
			utils.StoreErrorResponse(c, err)
			return
		}

		invalidateDashboard()
		producer.Publish(EventTenantCreated, company.CompanyCode, "")
		utils.CreatedResponse(c, "Company created and employee table initialized", company)
	}
}

// handleGetCompanies lists every registry row.
func handleGetCompanies(store *tenantdb.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		companies, err := store.ListTenants(c.Request.Context())
		if err != nil {
			utils.StoreErrorResponse(c, err)
			return
		}
		utils.OKResponse(c, "Companies retrieved successfully", companies)
	}
}

// handleGetCompany fetches a single registry row by code.
func handleGetCompany(store *tenantdb.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		key, err := schema.ParseTenantKey(c.Param("code"))
		if err != nil {
			utils.StoreErrorResponse(c, err)
			return
		}

		company, err := store.GetTenant(c.Request.Context(), key)
		if err != nil {
			utils.StoreErrorResponse(c, err)
			return
		}
		utils.OKResponse(c, "Company retrieved successfully", company)
	}
}

// handleUpdateCompany applies a partial registry mutation; no DDL involved.
func handleUpdateCompany(store *tenantdb.Store, producer *EventProducer) gin.HandlerFunc {
	return func(c *gin.Context) {
		key, err := schema.ParseTenantKey(c.Param("code"))
		if err != nil {
			utils.StoreErrorResponse(c, err)
			return
		}

		var req models.CompanyUpdate
		if err := c.ShouldBindJSON(&req); err != nil {
			utils.BadRequestResponse(c, "Invalid request format")
			return
		}

		if err := store.UpdateTenant(c.Request.Context(), key, req); err != nil {
			utils.StoreErrorResponse(c, err)
			return
		}

		invalidateDashboard()
		producer.Publish(EventTenantUpdated, key.String(), "")
		utils.OKResponse(c, "Company updated successfully", nil)
	}
}

// handleDeleteCompany tears down the tenant's dynamic tables and registry
// row.
func handleDeleteCompany(store *tenantdb.Store, producer *EventProducer) gin.HandlerFunc {
	return func(c *gin.Context) {
		key, err := schema.ParseTenantKey(c.Param("code"))
		if err != nil {
			utils.StoreErrorResponse(c, err)
			return
		}

		if err := store.DeleteTenant(c.Request.Context(), key); err != nil {
			utils.StoreErrorResponse(c, err)
			return
		}

		invalidateDashboard()
		producer.Publish(EventTenantDeleted, key.String(), "")
		utils.OKResponse(c, "Company and its dynamic tables deleted successfully", nil)
	}
}
