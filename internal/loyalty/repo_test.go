package loyalty

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/minicrmhq/minicrm-backend/pkg/db/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupLoyaltyTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	require.NoError(t, err)

	customers := `
CREATE TABLE IF NOT EXISTS customers (
  id TEXT PRIMARY KEY,
  store_id TEXT NOT NULL,
  customer_name TEXT NOT NULL,
  whatsapp_number TEXT NOT NULL,
  email TEXT,
  product_interest TEXT,
  total_points INTEGER NOT NULL DEFAULT 0,
  created_at DATETIME,
  updated_at DATETIME
);`
	purchases := `
CREATE TABLE IF NOT EXISTS purchases (
  id TEXT PRIMARY KEY,
  customer_id TEXT NOT NULL,
  store_id TEXT NOT NULL,
  purchase_value TEXT NOT NULL,
  points_earned INTEGER NOT NULL,
  description TEXT,
  created_at DATETIME
);`
	require.NoError(t, db.Exec(customers).Error)
	require.NoError(t, db.Exec(purchases).Error)
	return db
}

func seedCustomer(t *testing.T, db *gorm.DB, storeID uuid.UUID, points int) *models.Customer {
	t.Helper()
	customer := &models.Customer{
		ID:             uuid.New(),
		StoreID:        storeID,
		CustomerName:   "Maria Silva",
		WhatsappNumber: "+5511999990000",
		TotalPoints:    points,
	}
	require.NoError(t, db.Create(customer).Error)
	return customer
}

func TestRepository_CreateAndList(t *testing.T) {
	db := setupLoyaltyTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	customer := seedCustomer(t, db, uuid.New(), 0)

	first := &models.Purchase{
		ID:            uuid.New(),
		CustomerID:    customer.ID,
		StoreID:       customer.StoreID,
		PurchaseValue: decimal.RequireFromString("19.90"),
		PointsEarned:  19,
	}
	require.NoError(t, repo.Create(ctx, first))

	second := &models.Purchase{
		ID:            uuid.New(),
		CustomerID:    customer.ID,
		StoreID:       customer.StoreID,
		PurchaseValue: decimal.RequireFromString("50.00"),
		PointsEarned:  50,
	}
	require.NoError(t, db.Exec(
		"UPDATE purchases SET created_at = datetime('now', '-1 hour') WHERE id = ?", first.ID,
	).Error)
	require.NoError(t, repo.Create(ctx, second))

	got, err := repo.ListByCustomer(ctx, customer.ID)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, second.ID, got[0].ID, "newest purchase first")
	assert.Equal(t, first.ID, got[1].ID)
	assert.True(t, got[1].PurchaseValue.Equal(decimal.RequireFromString("19.90")))
}

func TestRepository_IncrementPoints(t *testing.T) {
	db := setupLoyaltyTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	customer := seedCustomer(t, db, uuid.New(), 10)

	rows, err := repo.IncrementPoints(ctx, customer.ID, 25)
	require.NoError(t, err)
	assert.Equal(t, int64(1), rows)

	rows, err = repo.IncrementPoints(ctx, customer.ID, 5)
	require.NoError(t, err)
	assert.Equal(t, int64(1), rows)

	var reloaded models.Customer
	require.NoError(t, db.First(&reloaded, "id = ?", customer.ID).Error)
	assert.Equal(t, 40, reloaded.TotalPoints)

	rows, err = repo.IncrementPoints(ctx, uuid.New(), 100)
	require.NoError(t, err)
	assert.Equal(t, int64(0), rows, "unknown customer touches no rows")
}

func TestRepository_SumPointsByStore(t *testing.T) {
	db := setupLoyaltyTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	storeID := uuid.New()
	seedCustomer(t, db, storeID, 120)
	seedCustomer(t, db, storeID, 30)
	seedCustomer(t, db, uuid.New(), 999)

	total, err := repo.SumPointsByStore(ctx, storeID)
	require.NoError(t, err)
	assert.Equal(t, int64(150), total)

	total, err = repo.SumPointsByStore(ctx, uuid.New())
	require.NoError(t, err)
	assert.Zero(t, total)
}
