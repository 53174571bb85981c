package loyalty

import (
	"context"

	"github.com/google/uuid"
	"github.com/minicrmhq/minicrm-backend/pkg/db/models"
	"gorm.io/gorm"
)

// Repository manages persistence for purchases and the cached points total
// each purchase feeds.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, purchase *models.Purchase) error
	ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]models.Purchase, error)
	IncrementPoints(ctx context.Context, customerID uuid.UUID, delta int) (int64, error)
	SumPointsByStore(ctx context.Context, storeID uuid.UUID) (int64, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository returns a purchase repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, purchase *models.Purchase) error {
	return r.db.WithContext(ctx).Create(purchase).Error
}

func (r *repository) ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]models.Purchase, error) {
	var purchases []models.Purchase
	if err := r.db.WithContext(ctx).
		Where("customer_id = ?", customerID).
		Order("created_at DESC").
		Find(&purchases).Error; err != nil {
		return nil, err
	}
	return purchases, nil
}

// IncrementPoints applies a relative update to the customer's cached total so
// concurrent purchases never clobber each other. Returns the number of rows
// touched; zero means the customer no longer exists.
func (r *repository) IncrementPoints(ctx context.Context, customerID uuid.UUID, delta int) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&models.Customer{}).
		Where("id = ?", customerID).
		UpdateColumn("total_points", gorm.Expr("total_points + ?", delta))
	return result.RowsAffected, result.Error
}

func (r *repository) SumPointsByStore(ctx context.Context, storeID uuid.UUID) (int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).
		Model(&models.Customer{}).
		Where("store_id = ?", storeID).
		Select("COALESCE(SUM(total_points), 0)").
		Scan(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}
