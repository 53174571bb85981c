package notes

import (
	"context"

	"github.com/google/uuid"
	"github.com/minicrmhq/minicrm-backend/pkg/db/models"
	"gorm.io/gorm"
)

// Repository manages persistence for customer notes.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds a GORM DB to note operations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create persists a new note row.
func (r *Repository) Create(ctx context.Context, note *models.Note) error {
	return r.db.WithContext(ctx).Create(note).Error
}

// ListByCustomer returns the customer's notes, newest first.
func (r *Repository) ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]models.Note, error) {
	var notes []models.Note
	if err := r.db.WithContext(ctx).
		Where("customer_id = ?", customerID).
		Order("created_at DESC").
		Find(&notes).Error; err != nil {
		return nil, err
	}
	return notes, nil
}
