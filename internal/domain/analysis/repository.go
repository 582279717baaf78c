package analysis

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines persistence operations for analysis results
type Repository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Result, error)
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*Result, error)
	FindByDocument(ctx context.Context, tenantID, documentID uuid.UUID) (*Result, error)
	Save(ctx context.Context, result *Result) error
}
