package stores

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/minicrmhq/minicrm-backend/internal/repo"
	"github.com/minicrmhq/minicrm-backend/pkg/db/models"
)

// Repository manages persistence for store profiles.
type Repository struct {
	repo.Base
}

// NewRepository binds a GORM DB to store profile operations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{Base: repo.NewBase(db)}
}

// FindByID loads a store profile by primary key.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.StoreProfile, error) {
	var profile models.StoreProfile
	if err := r.DB(ctx).First(&profile, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}

// Upsert inserts the profile or, when the id already exists, overwrites
// the editable columns in place.
func (r *Repository) Upsert(ctx context.Context, profile *models.StoreProfile) error {
	return r.DB(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "id"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"store_name": profile.StoreName,
				"phone":      profile.Phone,
				"updated_at": time.Now().UTC(),
			}),
		}).
		Create(profile).Error
}
