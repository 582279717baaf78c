package handler

import (
	analysisapp "github.com/GaudenzB/blueearth-contracts/internal/application/analysis"
	"github.com/gin-gonic/gin"
)

// AnalysisHandler handles document analysis endpoints
type AnalysisHandler struct {
	BaseHandler
	service *analysisapp.Service
}

// NewAnalysisHandler creates a new AnalysisHandler
func NewAnalysisHandler(service *analysisapp.Service) *AnalysisHandler {
	return &AnalysisHandler{service: service}
}

// RegisterRoutes registers analysis routes under the contract upload flow
func (h *AnalysisHandler) RegisterRoutes(rg *gin.RouterGroup) {
	upload := rg.Group("/contracts/upload")
	{
		upload.POST("/analyze/:documentId", h.Analyze)
		upload.GET("/analysis/:analysisId", h.GetStatus)
	}
}

// Analyze schedules extraction for a document. Repeated calls for the same
// document return the existing analysis record.
func (h *AnalysisHandler) Analyze(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}
	documentID, err := parseIDParam(c, "documentId")
	if err != nil {
		h.BadRequest(c, "Invalid document ID")
		return
	}

	resp, err := h.service.Request(c.Request.Context(), tenantID, documentID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Created(c, resp)
}

// GetStatus polls the state of an analysis
func (h *AnalysisHandler) GetStatus(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}
	analysisID, err := parseIDParam(c, "analysisId")
	if err != nil {
		h.BadRequest(c, "Invalid analysis ID")
		return
	}

	resp, err := h.service.GetStatus(c.Request.Context(), tenantID, analysisID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, resp)
}
