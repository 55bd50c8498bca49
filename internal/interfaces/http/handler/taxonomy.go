package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	taxonomyapp "github.com/worksuite/backend/internal/application/taxonomy"
	"github.com/worksuite/backend/internal/domain/taxonomy"
	"github.com/worksuite/backend/internal/interfaces/http/dto"
)

// TaxonomyHandler handles classification item API endpoints. The kind
// path segment selects statuses, priorities or sizes; the scope of a
// lookup or write is carried in query parameters and the request body.
type TaxonomyHandler struct {
	BaseHandler
	service    *taxonomyapp.Service
	propagator *taxonomyapp.Propagator
}

// NewTaxonomyHandler creates a new TaxonomyHandler
func NewTaxonomyHandler(service *taxonomyapp.Service, propagator *taxonomyapp.Propagator) *TaxonomyHandler {
	return &TaxonomyHandler{
		service:    service,
		propagator: propagator,
	}
}

// ScopeQuery carries the scope tuple of a resolution request
type ScopeQuery struct {
	TenantID       *uuid.UUID `form:"tenant_id" binding:"omitempty"`
	OrganizationID *uuid.UUID `form:"organization_id" binding:"omitempty"`
	ProjectID      *uuid.UUID `form:"project_id" binding:"omitempty"`
	TeamID         *uuid.UUID `form:"team_id" binding:"omitempty"`
}

// Scope builds the domain scope from the query parameters
func (q ScopeQuery) Scope() taxonomy.Scope {
	return taxonomy.Scope{
		TenantID:       q.TenantID,
		OrganizationID: q.OrganizationID,
		ProjectID:      q.ProjectID,
		TeamID:         q.TeamID,
	}
}

// CreateItemRequest represents a request to create a classification item
type CreateItemRequest struct {
	Name           string     `json:"name" binding:"required,min=1,max=100"`
	Description    string     `json:"description" binding:"max=500"`
	Icon           string     `json:"icon" binding:"max=200"`
	Color          string     `json:"color" binding:"omitempty,max=20"`
	TenantID       *uuid.UUID `json:"tenant_id" binding:"required"`
	OrganizationID *uuid.UUID `json:"organization_id"`
	ProjectID      *uuid.UUID `json:"project_id"`
	TeamID         *uuid.UUID `json:"team_id"`
}

// ReorderRequest represents a batch of (id, order) updates
type ReorderRequest struct {
	Entries []ReorderEntryRequest `json:"entries" binding:"required,min=1,dive"`
}

// ReorderEntryRequest is one entry of a reorder batch
type ReorderEntryRequest struct {
	ID    uuid.UUID `json:"id" binding:"required"`
	Order int       `json:"order" binding:"gte=0"`
}

// PropagateRequest represents an on-demand propagation command for a
// freshly provisioned project or team
type PropagateRequest struct {
	TenantID       uuid.UUID  `json:"tenant_id" binding:"required"`
	OrganizationID uuid.UUID  `json:"organization_id" binding:"required"`
	ProjectID      *uuid.UUID `json:"project_id"`
	TeamID         *uuid.UUID `json:"team_id"`
}

// Resolve returns the item set applicable to the requested scope,
// falling back tier by tier to the global defaults
func (h *TaxonomyHandler) Resolve(c *gin.Context) {
	kind, err := taxonomy.ParseKind(c.Param("kind"))
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	var query ScopeQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	items, err := h.service.Resolve(c.Request.Context(), kind, query.Scope())
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, items)
}

// Create creates a scoped, user-defined classification item
func (h *TaxonomyHandler) Create(c *gin.Context) {
	kind, err := taxonomy.ParseKind(c.Param("kind"))
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	var req CreateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	input := taxonomyapp.CreateItemInput{
		Name:           req.Name,
		Description:    req.Description,
		Icon:           req.Icon,
		Color:          req.Color,
		TenantID:       req.TenantID,
		OrganizationID: req.OrganizationID,
		ProjectID:      req.ProjectID,
		TeamID:         req.TeamID,
	}

	item, err := h.service.Create(c.Request.Context(), kind, input)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, item)
}

// Delete removes a user-defined item. System records come back as 409
// so callers can tell refusal apart from absence.
func (h *TaxonomyHandler) Delete(c *gin.Context) {
	kind, err := taxonomy.ParseKind(c.Param("kind"))
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid item ID format")
		return
	}

	result, err := h.service.Delete(c.Request.Context(), kind, id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	switch result.Outcome {
	case taxonomyapp.DeleteOutcomeDeleted:
		h.NoContent(c)
	case taxonomyapp.DeleteOutcomeNotFound:
		h.NotFound(c, "Item not found")
	case taxonomyapp.DeleteOutcomeNotEligible:
		h.Error(c, http.StatusConflict, dto.ErrCodeSystemProtected, "System records cannot be deleted")
	default:
		h.InternalError(c, "Unknown delete outcome")
	}
}

// Reorder applies a batch of column order updates to status items
func (h *TaxonomyHandler) Reorder(c *gin.Context) {
	kind, err := taxonomy.ParseKind(c.Param("kind"))
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	var req ReorderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	entries := make([]taxonomyapp.ReorderEntry, len(req.Entries))
	for i, e := range req.Entries {
		entries[i] = taxonomyapp.ReorderEntry{ID: e.ID, Order: e.Order}
	}

	result, err := h.service.Reorder(c.Request.Context(), kind, entries)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, result)
}

// Propagate clones the organization tier of every kind into a new
// project or team. Exactly one of project_id and team_id must be set.
func (h *TaxonomyHandler) Propagate(c *gin.Context) {
	var req PropagateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	if (req.ProjectID == nil) == (req.TeamID == nil) {
		h.BadRequest(c, "Exactly one of project_id and team_id must be provided")
		return
	}

	var (
		report taxonomyapp.PropagationReport
		err    error
	)
	if req.ProjectID != nil {
		report, err = h.propagator.PropagateToProject(c.Request.Context(), req.TenantID, req.OrganizationID, *req.ProjectID)
	} else {
		report, err = h.propagator.PropagateToTeam(c.Request.Context(), req.TenantID, req.OrganizationID, *req.TeamID)
	}
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, report)
}
