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

// GormPrefillRepository implements contract.PrefillRepository using GORM
type GormPrefillRepository struct {
	db *gorm.DB
}

// NewGormPrefillRepository creates a new GormPrefillRepository
func NewGormPrefillRepository(db *gorm.DB) *GormPrefillRepository {
	return &GormPrefillRepository{db: db}
}

// FindByID finds a prefill by ID within a tenant
func (r *GormPrefillRepository) FindByID(ctx context.Context, tenantID, id uuid.UUID) (*contract.Prefill, error) {
	var model models.ContractPrefillModel
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

// Save creates or updates a prefill
func (r *GormPrefillRepository) Save(ctx context.Context, prefill *contract.Prefill) error {
	model := models.ContractPrefillModelFromDomain(prefill)
	return r.db.WithContext(ctx).Save(model).Error
}

// Delete deletes a prefill within a tenant
func (r *GormPrefillRepository) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.ContractPrefillModel{}, "tenant_id = ? AND id = ?", tenantID, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Ensure GormPrefillRepository implements contract.PrefillRepository
var _ contract.PrefillRepository = (*GormPrefillRepository)(nil)
