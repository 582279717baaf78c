package handler

import (
	"net/http"

	contractapp "github.com/GaudenzB/blueearth-contracts/internal/application/contract"
	"github.com/GaudenzB/blueearth-contracts/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// PrefillHandler handles wizard prefill endpoints
type PrefillHandler struct {
	BaseHandler
	service *contractapp.PrefillService
}

// NewPrefillHandler creates a new PrefillHandler
func NewPrefillHandler(service *contractapp.PrefillService) *PrefillHandler {
	return &PrefillHandler{service: service}
}

// RegisterRoutes registers prefill routes
func (h *PrefillHandler) RegisterRoutes(rg *gin.RouterGroup) {
	prefill := rg.Group("/contracts/prefill")
	{
		prefill.POST("", h.Create)
		prefill.GET("/:id", h.Get)
	}
}

// Create stores a prefill snapshot. A missing document id is a field error,
// not a generic bad request.
func (h *PrefillHandler) Create(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	var req contractapp.CreatePrefillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}
	if req.DocumentID == uuid.Nil {
		c.JSON(http.StatusBadRequest, dto.NewValidationErrorResponse(
			"Request validation failed", getRequestID(c),
			[]dto.FieldError{{Field: "document_id", Code: "required", Message: "This field is required"}}))
		return
	}

	resp, err := h.service.Create(c.Request.Context(), tenantID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Created(c, resp)
}

// Get round-trips a stored prefill
func (h *PrefillHandler) Get(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}
	prefillID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid prefill ID")
		return
	}

	resp, err := h.service.GetByID(c.Request.Context(), tenantID, prefillID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, resp)
}
