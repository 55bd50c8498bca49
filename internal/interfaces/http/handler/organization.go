package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	identityapp "github.com/worksuite/backend/internal/application/identity"
	"github.com/worksuite/backend/internal/domain/shared"
	"github.com/worksuite/backend/internal/interfaces/http/dto"
)

// OrganizationHandler handles organization management HTTP requests
type OrganizationHandler struct {
	BaseHandler
	orgService *identityapp.OrganizationService
}

// NewOrganizationHandler creates a new organization handler
func NewOrganizationHandler(orgService *identityapp.OrganizationService) *OrganizationHandler {
	return &OrganizationHandler{
		orgService: orgService,
	}
}

// CreateOrganizationRequest represents a request to create an organization
type CreateOrganizationRequest struct {
	TenantID uuid.UUID `json:"tenant_id" binding:"required"`
	Code     string    `json:"code" binding:"required,min=2,max=50"`
	Name     string    `json:"name" binding:"required,min=1,max=200"`
	Website  string    `json:"website" binding:"omitempty,url,max=500"`
}

// Create creates a new organization under an existing tenant
func (h *OrganizationHandler) Create(c *gin.Context) {
	var req CreateOrganizationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	input := identityapp.CreateOrganizationInput{
		TenantID: req.TenantID,
		Code:     req.Code,
		Name:     req.Name,
		Website:  req.Website,
	}

	org, err := h.orgService.Create(c.Request.Context(), input)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, org)
}

// GetByID retrieves an organization by ID
func (h *OrganizationHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid organization ID")
		return
	}

	org, err := h.orgService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, org)
}

// ListByTenant retrieves the organizations of a tenant
func (h *OrganizationHandler) ListByTenant(c *gin.Context) {
	tenantID, err := uuid.Parse(c.Query("tenant_id"))
	if err != nil {
		h.BadRequest(c, "Invalid or missing tenant_id")
		return
	}

	req := dto.DefaultListRequest()
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	filter := shared.Filter{
		Page:     req.Page,
		PageSize: req.PageSize,
		OrderBy:  req.OrderBy,
		OrderDir: req.OrderDir,
		Search:   req.Search,
	}

	orgs, err := h.orgService.ListByTenant(c.Request.Context(), tenantID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, orgs)
}
