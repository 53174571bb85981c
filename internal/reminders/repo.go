package reminders

import (
	"context"

	"github.com/google/uuid"
	"github.com/minicrmhq/minicrm-backend/pkg/db/models"
	dbtypes "github.com/minicrmhq/minicrm-backend/pkg/db/types"
	"gorm.io/gorm"
)

// StoreDueCount pairs a store with its number of unsent reminders in a
// window. Produced for the daily digest.
type StoreDueCount struct {
	StoreID uuid.UUID `gorm:"column:store_id"`
	Due     int64     `gorm:"column:due"`
}

// Repository manages persistence for follow-up reminders.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds a GORM DB to reminder operations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create persists a new reminder row.
func (r *Repository) Create(ctx context.Context, reminder *models.Reminder) error {
	return r.db.WithContext(ctx).Create(reminder).Error
}

// FindByID loads a reminder scoped to the store that owns it.
func (r *Repository) FindByID(ctx context.Context, id, storeID uuid.UUID) (*models.Reminder, error) {
	var reminder models.Reminder
	if err := r.db.WithContext(ctx).
		Where("id = ? AND store_id = ?", id, storeID).
		First(&reminder).Error; err != nil {
		return nil, err
	}
	return &reminder, nil
}

// ListInRange returns the store's reminders with reminder_date inside the
// inclusive [from, to] window, newest date first.
func (r *Repository) ListInRange(ctx context.Context, storeID uuid.UUID, from, to dbtypes.Date) ([]models.Reminder, error) {
	var reminders []models.Reminder
	if err := r.db.WithContext(ctx).
		Where("store_id = ? AND reminder_date >= ? AND reminder_date <= ?", storeID, from, to).
		Order("reminder_date DESC").
		Find(&reminders).Error; err != nil {
		return nil, err
	}
	return reminders, nil
}

// ListByCustomer returns every reminder for one customer, newest date first.
func (r *Repository) ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]models.Reminder, error) {
	var reminders []models.Reminder
	if err := r.db.WithContext(ctx).
		Where("customer_id = ?", customerID).
		Order("reminder_date DESC").
		Find(&reminders).Error; err != nil {
		return nil, err
	}
	return reminders, nil
}

// MarkSent flips is_sent on an unsent reminder. Zero rows affected means the
// reminder was already sent or does not exist; the caller disambiguates.
func (r *Repository) MarkSent(ctx context.Context, id, storeID uuid.UUID) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&models.Reminder{}).
		Where("id = ? AND store_id = ? AND is_sent = ?", id, storeID, false).
		UpdateColumn("is_sent", true)
	return result.RowsAffected, result.Error
}

// CountInRange counts the store's reminders inside the inclusive window,
// sent or not. Feeds the dashboard's upcoming-reminders figure.
func (r *Repository) CountInRange(ctx context.Context, storeID uuid.UUID, from, to dbtypes.Date) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Reminder{}).
		Where("store_id = ? AND reminder_date >= ? AND reminder_date <= ?", storeID, from, to).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CountUnsentByStore groups unsent reminders inside the window by store,
// across all stores. Feeds the cron digest and its gauge.
func (r *Repository) CountUnsentByStore(ctx context.Context, from, to dbtypes.Date) ([]StoreDueCount, error) {
	var counts []StoreDueCount
	if err := r.db.WithContext(ctx).
		Model(&models.Reminder{}).
		Select("store_id, COUNT(*) AS due").
		Where("is_sent = ? AND reminder_date >= ? AND reminder_date <= ?", false, from, to).
		Group("store_id").
		Scan(&counts).Error; err != nil {
		return nil, err
	}
	return counts, nil
}
