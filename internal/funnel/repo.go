package funnel

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/minicrmhq/minicrm-backend/pkg/db/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Repository manages persistence for funnel positions.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds a GORM DB to funnel operations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Upsert inserts the funnel row or, when the (customer_id, store_id) pair
// already exists, overwrites stage and notes in place. Concurrent writers
// race on a single row, so the last commit wins and exactly one row remains.
func (r *Repository) Upsert(ctx context.Context, status *models.FunnelStatus) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "customer_id"}, {Name: "store_id"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"stage":      status.Stage,
				"notes":      status.Notes,
				"updated_at": time.Now().UTC(),
			}),
		}).
		Create(status).Error
}

// FindByCustomer loads the funnel row for a customer within a store.
func (r *Repository) FindByCustomer(ctx context.Context, customerID, storeID uuid.UUID) (*models.FunnelStatus, error) {
	var status models.FunnelStatus
	if err := r.db.WithContext(ctx).
		Where("customer_id = ? AND store_id = ?", customerID, storeID).
		First(&status).Error; err != nil {
		return nil, err
	}
	return &status, nil
}

// ListByStore returns every funnel row for the store, for batch enrichment.
func (r *Repository) ListByStore(ctx context.Context, storeID uuid.UUID) ([]models.FunnelStatus, error) {
	var statuses []models.FunnelStatus
	if err := r.db.WithContext(ctx).
		Where("store_id = ?", storeID).
		Find(&statuses).Error; err != nil {
		return nil, err
	}
	return statuses, nil
}
