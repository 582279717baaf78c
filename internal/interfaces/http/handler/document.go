package handler

import (
	"net/http"
	"strconv"
	"time"

	documentapp "github.com/GaudenzB/blueearth-contracts/internal/application/document"
	"github.com/GaudenzB/blueearth-contracts/internal/domain/document"
	"github.com/GaudenzB/blueearth-contracts/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// DocumentHandler handles document upload and metadata endpoints
type DocumentHandler struct {
	BaseHandler
	service *documentapp.Service
}

// NewDocumentHandler creates a new DocumentHandler
func NewDocumentHandler(service *documentapp.Service) *DocumentHandler {
	return &DocumentHandler{service: service}
}

// RegisterRoutes registers document routes
func (h *DocumentHandler) RegisterRoutes(rg *gin.RouterGroup) {
	docs := rg.Group("/documents")
	{
		docs.POST("", h.Upload)
		docs.GET("", h.List)
		docs.GET("/:id", h.Get)
		docs.PATCH("/:id", h.Update)
		docs.DELETE("/:id", h.Delete)
		docs.GET("/:id/download", h.Download)
	}
}

// Upload accepts a multipart document upload. Size and MIME validation
// failures come back as field errors on the "file" field.
func (h *DocumentHandler) Upload(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.NewValidationErrorResponse(
			"Request validation failed", getRequestID(c),
			[]dto.FieldError{{Field: "file", Code: "required", Message: "A file is required"}}))
		return
	}

	if fileHeader.Size > document.MaxFileSize {
		c.JSON(http.StatusBadRequest, dto.NewValidationErrorResponse(
			"Request validation failed", getRequestID(c),
			[]dto.FieldError{{
				Field:   "file",
				Code:    "max_size",
				Message: "File exceeds the maximum size of " + strconv.FormatInt(document.MaxFileSize>>20, 10) + " MB",
			}}))
		return
	}

	contentType := fileHeader.Header.Get("Content-Type")
	if err := document.ValidateContentType(contentType); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewValidationErrorResponse(
			"Request validation failed", getRequestID(c),
			[]dto.FieldError{{Field: "file", Code: "content_type", Message: "File type is not allowed"}}))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		h.InternalError(c, "Failed to read uploaded file")
		return
	}
	defer file.Close()

	req := documentapp.UploadDocumentRequest{
		Title:        c.PostForm("title"),
		Type:         c.PostForm("type"),
		Description:  c.PostForm("description"),
		Tags:         c.PostForm("tags"),
		Confidential: c.PostForm("confidential") == "true",
		FileName:     fileHeader.Filename,
		ContentType:  contentType,
		FileSize:     fileHeader.Size,
		Content:      file,
	}
	if userID, err := getUserID(c); err == nil && userID != uuid.Nil {
		req.UploadedBy = &userID
	}

	resp, err := h.service.Upload(c.Request.Context(), tenantID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Created(c, resp)
}

// Get retrieves a document by ID
func (h *DocumentHandler) Get(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}
	documentID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid document ID")
		return
	}

	resp, err := h.service.GetByID(c.Request.Context(), tenantID, documentID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, resp)
}

// List retrieves documents with pagination and filters
func (h *DocumentHandler) List(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	var filter documentapp.DocumentListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	result, err := h.service.List(c.Request.Context(), tenantID, filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.SuccessWithMeta(c, result.Items, result.Total, result.Page, result.PageSize)
}

// Update edits document metadata
func (h *DocumentHandler) Update(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}
	documentID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid document ID")
		return
	}

	var req documentapp.UpdateDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	resp, err := h.service.Update(c.Request.Context(), tenantID, documentID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, resp)
}

// Delete removes a document and its blob
func (h *DocumentHandler) Delete(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}
	documentID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid document ID")
		return
	}

	if err := h.service.Delete(c.Request.Context(), tenantID, documentID); err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.NoContent(c)
}

// Download returns a presigned download link
func (h *DocumentHandler) Download(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}
	documentID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid document ID")
		return
	}

	resp, err := h.service.DownloadLink(c.Request.Context(), tenantID, documentID, 15*time.Minute)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, resp)
}
