package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/minicrmhq/minicrm-backend/pkg/enums"
)

// FunnelStatus holds the single current sales-funnel position of a
// customer. The (customer_id, store_id) unique index backs the upsert
// that keeps at most one row per customer per store.
type FunnelStatus struct {
	ID         uuid.UUID         `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	CustomerID uuid.UUID         `gorm:"column:customer_id;type:uuid;not null;uniqueIndex:idx_funnel_customer_store"`
	StoreID    uuid.UUID         `gorm:"column:store_id;type:uuid;not null;uniqueIndex:idx_funnel_customer_store"`
	Stage      enums.FunnelStage `gorm:"column:stage;type:text;not null;default:'new'"`
	Notes      *string           `gorm:"column:notes"`
	CreatedAt  time.Time         `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt  time.Time         `gorm:"column:updated_at;autoUpdateTime"`
}

func (FunnelStatus) TableName() string {
	return "customer_sales_funnel"
}
