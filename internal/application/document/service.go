package document

import (
	"context"
	"fmt"
	"time"

	"github.com/GaudenzB/blueearth-contracts/internal/domain/document"
	"github.com/GaudenzB/blueearth-contracts/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Service handles document upload and metadata operations
type Service struct {
	repo      document.Repository
	storage   ObjectStorage
	keyPrefix string
	logger    *zap.Logger
}

// NewService creates a new document Service
func NewService(repo document.Repository, storage ObjectStorage, keyPrefix string, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		repo:      repo,
		storage:   storage,
		keyPrefix: keyPrefix,
		logger:    logger,
	}
}

// Upload validates the file, stores the blob, and persists the metadata.
// The blob is written first; if the metadata save fails the blob is removed
// so storage holds no orphans.
func (s *Service) Upload(ctx context.Context, tenantID uuid.UUID, req UploadDocumentRequest) (*DocumentResponse, error) {
	if err := document.ValidateFileSize(req.FileSize); err != nil {
		return nil, err
	}
	if err := document.ValidateContentType(req.ContentType); err != nil {
		return nil, err
	}

	title := req.Title
	if title == "" {
		title = req.FileName
	}
	docType := document.Type(req.Type)
	if req.Type == "" {
		docType = document.TypeOther
	}

	storageKey := fmt.Sprintf("%s/%s/%s/%s", s.keyPrefix, tenantID, uuid.New(), req.FileName)

	doc, err := document.New(tenantID, title, req.FileName, docType, req.FileSize, req.ContentType, storageKey, req.UploadedBy)
	if err != nil {
		return nil, err
	}
	if req.Description != "" {
		if err := doc.UpdateMetadata(title, req.Description, docType); err != nil {
			return nil, err
		}
	}
	if req.Tags != "" {
		if err := doc.SetTags(document.ParseTags(req.Tags)); err != nil {
			return nil, err
		}
	}
	doc.SetConfidential(req.Confidential)

	if err := s.storage.Put(ctx, storageKey, req.Content, req.FileSize, req.ContentType); err != nil {
		s.logger.Error("Failed to store document blob",
			zap.String("storage_key", storageKey),
			zap.Error(err),
		)
		return nil, shared.NewDomainError("STORAGE_ERROR", "Failed to store uploaded file")
	}

	if err := s.repo.Save(ctx, doc); err != nil {
		if delErr := s.storage.Delete(ctx, storageKey); delErr != nil {
			s.logger.Warn("Failed to remove orphaned blob",
				zap.String("storage_key", storageKey),
				zap.Error(delErr),
			)
		}
		return nil, err
	}

	s.logger.Info("Document uploaded",
		zap.String("document_id", doc.ID.String()),
		zap.String("tenant_id", tenantID.String()),
		zap.Int64("file_size", doc.FileSize),
	)

	resp := ToDocumentResponse(doc)
	return &resp, nil
}

// GetByID retrieves a document by ID
func (s *Service) GetByID(ctx context.Context, tenantID, documentID uuid.UUID) (*DocumentResponse, error) {
	doc, err := s.repo.FindByIDForTenant(ctx, tenantID, documentID)
	if err != nil {
		return nil, err
	}
	resp := ToDocumentResponse(doc)
	return &resp, nil
}

// List retrieves documents with filtering and pagination
func (s *Service) List(ctx context.Context, tenantID uuid.UUID, filter DocumentListFilter) (shared.Paginated[DocumentResponse], error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}

	repoFilter := shared.Filter{
		Page:     filter.Page,
		PageSize: filter.PageSize,
		OrderBy:  filter.OrderBy,
		OrderDir: filter.OrderDir,
		Search:   filter.Search,
		Filters:  map[string]interface{}{},
	}
	if filter.Type != "" {
		repoFilter.Filters["type"] = filter.Type
	}

	docs, err := s.repo.FindAllForTenant(ctx, tenantID, repoFilter)
	if err != nil {
		return shared.Paginated[DocumentResponse]{}, err
	}
	total, err := s.repo.CountForTenant(ctx, tenantID, repoFilter)
	if err != nil {
		return shared.Paginated[DocumentResponse]{}, err
	}

	items := make([]DocumentResponse, len(docs))
	for i := range docs {
		items[i] = ToDocumentResponse(&docs[i])
	}
	return shared.NewPaginated(items, total, filter.Page, filter.PageSize), nil
}

// Update edits document metadata
func (s *Service) Update(ctx context.Context, tenantID, documentID uuid.UUID, req UpdateDocumentRequest) (*DocumentResponse, error) {
	doc, err := s.repo.FindByIDForTenant(ctx, tenantID, documentID)
	if err != nil {
		return nil, err
	}

	title := doc.Title
	if req.Title != nil {
		title = *req.Title
	}
	description := doc.Description
	if req.Description != nil {
		description = *req.Description
	}
	docType := doc.Type
	if req.Type != nil {
		docType = document.Type(*req.Type)
	}
	if err := doc.UpdateMetadata(title, description, docType); err != nil {
		return nil, err
	}

	if req.Tags != nil {
		if err := doc.SetTags(document.ParseTags(*req.Tags)); err != nil {
			return nil, err
		}
	}
	if req.Confidential != nil {
		doc.SetConfidential(*req.Confidential)
	}

	if err := s.repo.Save(ctx, doc); err != nil {
		return nil, err
	}
	resp := ToDocumentResponse(doc)
	return &resp, nil
}

// Delete removes the document metadata and its stored blob
func (s *Service) Delete(ctx context.Context, tenantID, documentID uuid.UUID) error {
	doc, err := s.repo.FindByIDForTenant(ctx, tenantID, documentID)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, tenantID, documentID); err != nil {
		return err
	}

	if err := s.storage.Delete(ctx, doc.StorageKey); err != nil {
		// Metadata is already gone; log and let a cleanup job reap the blob
		s.logger.Warn("Failed to delete document blob",
			zap.String("storage_key", doc.StorageKey),
			zap.Error(err),
		)
	}
	return nil
}

// DownloadLink returns a presigned download URL for the document blob
func (s *Service) DownloadLink(ctx context.Context, tenantID, documentID uuid.UUID, expiresIn time.Duration) (*DownloadLinkResponse, error) {
	doc, err := s.repo.FindByIDForTenant(ctx, tenantID, documentID)
	if err != nil {
		return nil, err
	}

	url, expiresAt, err := s.storage.PresignDownload(ctx, doc.StorageKey, expiresIn)
	if err != nil {
		return nil, shared.NewDomainError("STORAGE_ERROR", "Failed to generate download link")
	}
	return &DownloadLinkResponse{URL: url, ExpiresAt: expiresAt}, nil
}
