package document

import (
	"strings"
	"time"

	"github.com/GaudenzB/blueearth-contracts/internal/domain/shared"
	"github.com/google/uuid"
)

// MaxFileSize is the maximum allowed document size (20MB)
const MaxFileSize = 20 * 1024 * 1024

// Type classifies an uploaded document
type Type string

const (
	TypeContract  Type = "contract"
	TypeAgreement Type = "agreement"
	TypeReport    Type = "report"
	TypeAmendment Type = "amendment"
	TypeExhibit   Type = "exhibit"
	TypeOther     Type = "other"
)

// IsValid checks if the document type is valid
func (t Type) IsValid() bool {
	switch t {
	case TypeContract, TypeAgreement, TypeReport, TypeAmendment, TypeExhibit, TypeOther:
		return true
	default:
		return false
	}
}

// AllowedContentTypes is the whitelist of MIME types accepted for upload.
// SVG is excluded: it can embed scripts.
var AllowedContentTypes = map[string]bool{
	"application/pdf":    true,
	"application/msword": true,
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": true,
	"application/vnd.ms-excel": true,
	"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet": true,
	"text/plain": true,
	"text/csv":   true,
	"image/jpeg": true,
	"image/png":  true,
	"image/tiff": true,
}

// Document represents an uploaded file with its business metadata.
// The stored blob is immutable; only metadata may be edited after upload.
type Document struct {
	shared.TenantAggregateRoot
	Title        string
	FileName     string
	Type         Type
	Description  string
	Tags         []string
	Confidential bool
	StorageKey   string
	FileSize     int64
	ContentType  string
	UploadedBy   *uuid.UUID
	UploadedAt   time.Time
}

// New creates a new document after validating upload metadata
func New(tenantID uuid.UUID, title, fileName string, docType Type, fileSize int64, contentType, storageKey string, uploadedBy *uuid.UUID) (*Document, error) {
	if tenantID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_TENANT_ID", "Tenant ID cannot be empty")
	}
	if err := validateTitle(title); err != nil {
		return nil, err
	}
	if err := validateFileName(fileName); err != nil {
		return nil, err
	}
	if !docType.IsValid() {
		return nil, shared.NewDomainError("INVALID_DOCUMENT_TYPE", "Invalid document type")
	}
	if err := ValidateFileSize(fileSize); err != nil {
		return nil, err
	}
	if err := ValidateContentType(contentType); err != nil {
		return nil, err
	}
	if storageKey == "" {
		return nil, shared.NewDomainError("INVALID_STORAGE_KEY", "Storage key cannot be empty")
	}

	root := shared.NewTenantAggregateRoot(tenantID)
	if uploadedBy != nil {
		root.SetCreatedBy(*uploadedBy)
	}

	return &Document{
		TenantAggregateRoot: root,
		Title:               title,
		FileName:            fileName,
		Type:                docType,
		StorageKey:          storageKey,
		FileSize:            fileSize,
		ContentType:         contentType,
		UploadedBy:          uploadedBy,
		UploadedAt:          time.Now(),
		Tags:                []string{},
	}, nil
}

// UpdateMetadata edits the mutable metadata fields
func (d *Document) UpdateMetadata(title, description string, docType Type) error {
	if err := validateTitle(title); err != nil {
		return err
	}
	if !docType.IsValid() {
		return shared.NewDomainError("INVALID_DOCUMENT_TYPE", "Invalid document type")
	}
	if len(description) > 2000 {
		return shared.NewDomainError("INVALID_DESCRIPTION", "Description cannot exceed 2000 characters")
	}

	d.Title = title
	d.Description = description
	d.Type = docType
	d.UpdatedAt = time.Now()
	d.IncrementVersion()

	return nil
}

// SetTags replaces the tag set, normalizing whitespace and dropping empties
func (d *Document) SetTags(tags []string) error {
	if len(tags) > 20 {
		return shared.NewDomainError("INVALID_TAGS", "Cannot set more than 20 tags")
	}
	cleaned := make([]string, 0, len(tags))
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if tag == "" {
			continue
		}
		if len(tag) > 50 {
			return shared.NewDomainError("INVALID_TAGS", "Tag cannot exceed 50 characters")
		}
		cleaned = append(cleaned, tag)
	}
	d.Tags = cleaned
	d.UpdatedAt = time.Now()
	d.IncrementVersion()
	return nil
}

// SetConfidential flags the document as confidential
func (d *Document) SetConfidential(confidential bool) {
	d.Confidential = confidential
	d.UpdatedAt = time.Now()
	d.IncrementVersion()
}

// ParseTags splits a comma-delimited tag string into a normalized list
func ParseTags(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return []string{}
	}
	parts := strings.Split(raw, ",")
	tags := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			tags = append(tags, p)
		}
	}
	return tags
}

// ValidateFileSize rejects empty files and files above the size ceiling
func ValidateFileSize(size int64) error {
	if size <= 0 {
		return shared.NewDomainError("INVALID_FILE_SIZE", "File size must be positive")
	}
	if size > MaxFileSize {
		return shared.NewDomainError("FILE_TOO_LARGE", "File size cannot exceed 20MB")
	}
	return nil
}

// ValidateContentType rejects MIME types outside the upload whitelist
func ValidateContentType(contentType string) error {
	if contentType == "" {
		return shared.NewDomainError("INVALID_CONTENT_TYPE", "Content type cannot be empty")
	}
	base := contentType
	if idx := strings.Index(contentType, ";"); idx >= 0 {
		base = strings.TrimSpace(contentType[:idx])
	}
	if !AllowedContentTypes[strings.ToLower(base)] {
		return shared.NewDomainError("DISALLOWED_CONTENT_TYPE", "Content type '"+base+"' is not allowed")
	}
	return nil
}

func validateTitle(title string) error {
	if strings.TrimSpace(title) == "" {
		return shared.NewDomainError("INVALID_TITLE", "Title cannot be empty")
	}
	if len(title) > 255 {
		return shared.NewDomainError("INVALID_TITLE", "Title cannot exceed 255 characters")
	}
	return nil
}

func validateFileName(fileName string) error {
	if fileName == "" {
		return shared.NewDomainError("INVALID_FILE_NAME", "File name cannot be empty")
	}
	if len(fileName) > 255 {
		return shared.NewDomainError("INVALID_FILE_NAME", "File name cannot exceed 255 characters")
	}
	if strings.ContainsAny(fileName, "/\\") {
		return shared.NewDomainError("INVALID_FILE_NAME", "File name cannot contain path separators")
	}
	return nil
}
