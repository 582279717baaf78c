package handler

import (
	contractapp "github.com/GaudenzB/blueearth-contracts/internal/application/contract"
	"github.com/gin-gonic/gin"
)

// AttachmentHandler handles contract-document link endpoints
type AttachmentHandler struct {
	BaseHandler
	service *contractapp.AttachmentService
}

// NewAttachmentHandler creates a new AttachmentHandler
func NewAttachmentHandler(service *contractapp.AttachmentService) *AttachmentHandler {
	return &AttachmentHandler{service: service}
}

// RegisterRoutes registers attachment routes nested under contracts
func (h *AttachmentHandler) RegisterRoutes(rg *gin.RouterGroup) {
	docs := rg.Group("/contracts/:id/documents")
	{
		docs.POST("", h.Attach)
		docs.GET("", h.List)
		docs.POST("/:linkId/primary", h.SetPrimary)
		docs.DELETE("/:linkId", h.Detach)
	}
}

// Attach links a document to a contract. Attaching the same document twice
// answers 409.
func (h *AttachmentHandler) Attach(c *gin.Context) {
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

	var req contractapp.AttachDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	resp, err := h.service.Attach(c.Request.Context(), tenantID, contractID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Created(c, resp)
}

// List returns a contract's attached documents, primary first
func (h *AttachmentHandler) List(c *gin.Context) {
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

// SetPrimary promotes a link to be the contract's primary document
func (h *AttachmentHandler) SetPrimary(c *gin.Context) {
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
	linkID, err := parseIDParam(c, "linkId")
	if err != nil {
		h.BadRequest(c, "Invalid link ID")
		return
	}

	resp, err := h.service.SetPrimary(c.Request.Context(), tenantID, contractID, linkID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, resp)
}

// Detach removes a document link
func (h *AttachmentHandler) Detach(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}
	linkID, err := parseIDParam(c, "linkId")
	if err != nil {
		h.BadRequest(c, "Invalid link ID")
		return
	}

	if err := h.service.Detach(c.Request.Context(), tenantID, linkID); err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.NoContent(c)
}
