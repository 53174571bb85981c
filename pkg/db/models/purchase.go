package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Purchase is an append-only loyalty ledger entry. PointsEarned is
// derived at insert time and never recomputed.
type Purchase struct {
	ID            uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	CustomerID    uuid.UUID       `gorm:"column:customer_id;type:uuid;not null;index"`
	StoreID       uuid.UUID       `gorm:"column:store_id;type:uuid;not null;index"`
	PurchaseValue decimal.Decimal `gorm:"column:purchase_value;type:numeric(12,2);not null"`
	PointsEarned  int             `gorm:"column:points_earned;not null"`
	Description   *string         `gorm:"column:description"`
	CreatedAt     time.Time       `gorm:"column:created_at;autoCreateTime"`
}

func (Purchase) TableName() string {
	return "purchases"
}
