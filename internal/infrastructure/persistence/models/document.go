package models

import (
	"encoding/json"
	"time"

	"github.com/GaudenzB/blueearth-contracts/internal/domain/document"
	"github.com/google/uuid"
)

// DocumentModel is the persistence model for documents
type DocumentModel struct {
	TenantAggregateModel
	Title        string `gorm:"type:varchar(255);not null"`
	FileName     string `gorm:"type:varchar(255);not null"`
	Type         string `gorm:"type:varchar(30);not null;index"`
	Description  string `gorm:"type:text"`
	Tags         string `gorm:"type:jsonb;default:'[]'"`
	Confidential bool   `gorm:"not null;default:false"`
	StorageKey   string `gorm:"type:varchar(512);not null"`
	FileSize     int64  `gorm:"not null"`
	ContentType  string `gorm:"type:varchar(120);not null"`
	UploadedBy   *uuid.UUID `gorm:"type:uuid"`
	UploadedAt   time.Time  `gorm:"not null"`
}

// TableName returns the table name for GORM
func (DocumentModel) TableName() string {
	return "documents"
}

// ToDomain converts the model to a domain document
func (m *DocumentModel) ToDomain() *document.Document {
	doc := &document.Document{
		Title:        m.Title,
		FileName:     m.FileName,
		Type:         document.Type(m.Type),
		Description:  m.Description,
		Confidential: m.Confidential,
		StorageKey:   m.StorageKey,
		FileSize:     m.FileSize,
		ContentType:  m.ContentType,
		UploadedBy:   m.UploadedBy,
		UploadedAt:   m.UploadedAt,
		Tags:         []string{},
	}
	m.PopulateTenantAggregateRoot(&doc.TenantAggregateRoot)
	if m.Tags != "" {
		_ = json.Unmarshal([]byte(m.Tags), &doc.Tags)
	}
	return doc
}

// DocumentModelFromDomain converts a domain document to the persistence model
func DocumentModelFromDomain(doc *document.Document) *DocumentModel {
	tags, err := json.Marshal(doc.Tags)
	if err != nil {
		tags = []byte("[]")
	}
	m := &DocumentModel{
		Title:        doc.Title,
		FileName:     doc.FileName,
		Type:         string(doc.Type),
		Description:  doc.Description,
		Tags:         string(tags),
		Confidential: doc.Confidential,
		StorageKey:   doc.StorageKey,
		FileSize:     doc.FileSize,
		ContentType:  doc.ContentType,
		UploadedBy:   doc.UploadedBy,
		UploadedAt:   doc.UploadedAt,
	}
	m.FromDomainTenantAggregateRoot(doc.TenantAggregateRoot)
	return m
}
