package document

import (
	"io"
	"time"

	"github.com/GaudenzB/blueearth-contracts/internal/domain/document"
	"github.com/google/uuid"
)

// UploadDocumentRequest represents a document upload
type UploadDocumentRequest struct {
	Title        string
	Type         string
	Description  string
	Tags         string // comma separated
	Confidential bool
	FileName     string
	ContentType  string
	FileSize     int64
	Content      io.Reader
	UploadedBy   *uuid.UUID
}

// UpdateDocumentRequest represents a metadata update
type UpdateDocumentRequest struct {
	Title        *string `json:"title" binding:"omitempty,min=1,max=200"`
	Description  *string `json:"description" binding:"omitempty,max=2000"`
	Type         *string `json:"type" binding:"omitempty,oneof=contract agreement report amendment exhibit other"`
	Tags         *string `json:"tags"`
	Confidential *bool   `json:"confidential"`
}

// DocumentResponse represents a document in API responses
type DocumentResponse struct {
	ID           uuid.UUID  `json:"id"`
	TenantID     uuid.UUID  `json:"tenant_id"`
	Title        string     `json:"title"`
	FileName     string     `json:"file_name"`
	Type         string     `json:"type"`
	Description  string     `json:"description"`
	Tags         []string   `json:"tags"`
	Confidential bool       `json:"confidential"`
	FileSize     int64      `json:"file_size"`
	ContentType  string     `json:"content_type"`
	UploadedBy   *uuid.UUID `json:"uploaded_by,omitempty"`
	UploadedAt   time.Time  `json:"uploaded_at"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// DocumentListFilter represents filter options for document listing
type DocumentListFilter struct {
	Search   string `form:"search"`
	Type     string `form:"type" binding:"omitempty,oneof=contract agreement report amendment exhibit other"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// DownloadLinkResponse carries a presigned download URL
type DownloadLinkResponse struct {
	URL       string    `json:"url"`
	ExpiresAt time.Time `json:"expires_at"`
}

// ToDocumentResponse maps a domain document to its response DTO
func ToDocumentResponse(doc *document.Document) DocumentResponse {
	tags := doc.Tags
	if tags == nil {
		tags = []string{}
	}
	return DocumentResponse{
		ID:           doc.ID,
		TenantID:     doc.TenantID,
		Title:        doc.Title,
		FileName:     doc.FileName,
		Type:         string(doc.Type),
		Description:  doc.Description,
		Tags:         tags,
		Confidential: doc.Confidential,
		FileSize:     doc.FileSize,
		ContentType:  doc.ContentType,
		UploadedBy:   doc.UploadedBy,
		UploadedAt:   doc.UploadedAt,
		CreatedAt:    doc.CreatedAt,
		UpdatedAt:    doc.UpdatedAt,
	}
}
