package customers

import (
	"context"

	"github.com/google/uuid"
	"github.com/minicrmhq/minicrm-backend/pkg/db/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Repository manages persistence for customers and their tags.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds a GORM DB to customer operations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create persists a new customer row.
func (r *Repository) Create(ctx context.Context, customer *models.Customer) error {
	return r.db.WithContext(ctx).Create(customer).Error
}

// FindByID loads a customer by its UUID.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Customer, error) {
	var customer models.Customer
	if err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&customer).Error; err != nil {
		return nil, err
	}
	return &customer, nil
}

// ListByStore returns the store's customers, newest first.
func (r *Repository) ListByStore(ctx context.Context, storeID uuid.UUID) ([]models.Customer, error) {
	var customers []models.Customer
	if err := r.db.WithContext(ctx).
		Where("store_id = ?", storeID).
		Order("created_at DESC").
		Find(&customers).Error; err != nil {
		return nil, err
	}
	return customers, nil
}

// CountByStore counts the store's customers.
func (r *Repository) CountByStore(ctx context.Context, storeID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Customer{}).
		Where("store_id = ?", storeID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// AddTag attaches a label to the customer. The unique index on
// (customer_id, tag) plus DO NOTHING makes re-adding a label harmless.
func (r *Repository) AddTag(ctx context.Context, tag *models.Tag) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "customer_id"}, {Name: "tag"}},
			DoNothing: true,
		}).
		Create(tag).Error
}

// ListTagsByCustomer returns the customer's labels in insertion order.
func (r *Repository) ListTagsByCustomer(ctx context.Context, customerID uuid.UUID) ([]models.Tag, error) {
	var tags []models.Tag
	if err := r.db.WithContext(ctx).
		Where("customer_id = ?", customerID).
		Order("created_at ASC").
		Find(&tags).Error; err != nil {
		return nil, err
	}
	return tags, nil
}

// ListTagsByStore returns every label in the store, for batch enrichment.
func (r *Repository) ListTagsByStore(ctx context.Context, storeID uuid.UUID) ([]models.Tag, error) {
	var tags []models.Tag
	if err := r.db.WithContext(ctx).
		Where("store_id = ?", storeID).
		Order("created_at ASC").
		Find(&tags).Error; err != nil {
		return nil, err
	}
	return tags, nil
}
