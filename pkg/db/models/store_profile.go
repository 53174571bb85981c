package models

import (
	"time"

	"github.com/google/uuid"
)

// StoreProfile represents the tenant that owns a customer base. The row
// maps one-to-one onto a signed-in owner identity managed outside this
// service.
type StoreProfile struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	OwnerID   uuid.UUID `gorm:"column:owner_id;type:uuid;not null;uniqueIndex"`
	StoreName string    `gorm:"column:store_name;not null"`
	Phone     *string   `gorm:"column:phone"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (StoreProfile) TableName() string {
	return "store_profiles"
}
