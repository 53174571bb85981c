package models

import (
	"time"

	"github.com/google/uuid"
)

// Customer is the central CRM entity. TotalPoints caches the sum of
// points_earned across the customer's purchases; it is only written
// through the loyalty service's increment-by-delta update.
type Customer struct {
	ID              uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	StoreID         uuid.UUID `gorm:"column:store_id;type:uuid;not null;index"`
	CustomerName    string    `gorm:"column:customer_name;not null"`
	WhatsappNumber  string    `gorm:"column:whatsapp_number;not null"`
	Email           *string   `gorm:"column:email"`
	ProductInterest *string   `gorm:"column:product_interest"`
	TotalPoints     int       `gorm:"column:total_points;not null;default:0"`
	CreatedAt       time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (Customer) TableName() string {
	return "customers"
}
