package persistence

import (
	"context"
	"errors"

	"github.com/GaudenzB/blueearth-contracts/internal/domain/contract"
	"github.com/GaudenzB/blueearth-contracts/internal/domain/shared"
	"github.com/GaudenzB/blueearth-contracts/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormDocumentLinkRepository implements contract.DocumentLinkRepository using GORM
type GormDocumentLinkRepository struct {
	db *gorm.DB
}

// NewGormDocumentLinkRepository creates a new GormDocumentLinkRepository
func NewGormDocumentLinkRepository(db *gorm.DB) *GormDocumentLinkRepository {
	return &GormDocumentLinkRepository{db: db}
}

// FindByID finds a document link by ID within a tenant
func (r *GormDocumentLinkRepository) FindByID(ctx context.Context, tenantID, id uuid.UUID) (*contract.DocumentLink, error) {
	var model models.ContractDocumentModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByContract finds all document links for a contract
func (r *GormDocumentLinkRepository) FindByContract(ctx context.Context, tenantID, contractID uuid.UUID) ([]contract.DocumentLink, error) {
	var linkModels []models.ContractDocumentModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND contract_id = ?", tenantID, contractID).
		Order("is_primary DESC, created_at ASC").
		Find(&linkModels).Error; err != nil {
		return nil, err
	}

	links := make([]contract.DocumentLink, len(linkModels))
	for i, model := range linkModels {
		links[i] = *model.ToDomain()
	}
	return links, nil
}

// FindByPair finds the link between a contract and a document
func (r *GormDocumentLinkRepository) FindByPair(ctx context.Context, tenantID, contractID, documentID uuid.UUID) (*contract.DocumentLink, error) {
	var model models.ContractDocumentModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND contract_id = ? AND document_id = ?", tenantID, contractID, documentID).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// Save creates or updates a document link. A contract can reference each
// document at most once; the unique (contract, document) index enforces
// this under concurrent inserts, and violations surface as
// shared.ErrAlreadyExists.
func (r *GormDocumentLinkRepository) Save(ctx context.Context, link *contract.DocumentLink) error {
	model := models.ContractDocumentModelFromDomain(link)
	err := r.db.WithContext(ctx).Save(model).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return shared.ErrAlreadyExists
	}
	return err
}

// SetPrimary marks the given link as the contract's primary document,
// demoting any previous primary in the same transaction.
func (r *GormDocumentLinkRepository) SetPrimary(ctx context.Context, tenantID, contractID, linkID uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var model models.ContractDocumentModel
		if err := tx.
			Where("tenant_id = ? AND contract_id = ? AND id = ?", tenantID, contractID, linkID).
			First(&model).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return shared.ErrNotFound
			}
			return err
		}

		if err := tx.Model(&models.ContractDocumentModel{}).
			Where("tenant_id = ? AND contract_id = ? AND is_primary = ? AND id <> ?", tenantID, contractID, true, linkID).
			Update("is_primary", false).Error; err != nil {
			return err
		}

		return tx.Model(&models.ContractDocumentModel{}).
			Where("tenant_id = ? AND id = ?", tenantID, linkID).
			Update("is_primary", true).Error
	})
}

// Delete deletes a document link within a tenant
func (r *GormDocumentLinkRepository) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.ContractDocumentModel{}, "tenant_id = ? AND id = ?", tenantID, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Ensure GormDocumentLinkRepository implements contract.DocumentLinkRepository
var _ contract.DocumentLinkRepository = (*GormDocumentLinkRepository)(nil)
