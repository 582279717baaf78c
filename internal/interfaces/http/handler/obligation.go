package handler

import (
	contractapp "github.com/GaudenzB/blueearth-contracts/internal/application/contract"
	"github.com/gin-gonic/gin"
)

// ObligationHandler handles contract obligation endpoints
type ObligationHandler struct {
	BaseHandler
	service *contractapp.ObligationService
}

// NewObligationHandler creates a new ObligationHandler
func NewObligationHandler(service *contractapp.ObligationService) *ObligationHandler {
	return &ObligationHandler{service: service}
}

// RegisterRoutes registers obligation routes nested under contracts
func (h *ObligationHandler) RegisterRoutes(rg *gin.RouterGroup) {
	contracts := rg.Group("/contracts/:id/obligations")
	{
		contracts.POST("", h.Create)
		contracts.GET("", h.List)
		contracts.PATCH("/:obligationId", h.Update)
		contracts.DELETE("/:obligationId", h.Delete)
	}
}

// Create adds an obligation to a contract
func (h *ObligationHandler) Create(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}
	contractID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid contract ID")
		return
	}

	var req contractapp.CreateObligationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	resp, err := h.service.Create(c.Request.Context(), tenantID, contractID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Created(c, resp)
}

// List returns a contract's obligations
func (h *ObligationHandler) List(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}
	contractID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid contract ID")
		return
	}

	items, err := h.service.ListByContract(c.Request.Context(), tenantID, contractID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, items)
}

// Update edits an obligation
func (h *ObligationHandler) Update(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}
	obligationID, err := parseIDParam(c, "obligationId")
	if err != nil {
		h.BadRequest(c, "Invalid obligation ID")
		return
	}

	var req contractapp.UpdateObligationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	resp, err := h.service.Update(c.Request.Context(), tenantID, obligationID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, resp)
}

// Delete removes an obligation
func (h *ObligationHandler) Delete(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}
	obligationID, err := parseIDParam(c, "obligationId")
	if err != nil {
		h.BadRequest(c, "Invalid obligation ID")
		return
	}

	if err := h.service.Delete(c.Request.Context(), tenantID, obligationID); err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.NoContent(c)
}
