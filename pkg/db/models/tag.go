package models

import (
	"time"

	"github.com/google/uuid"
)

// Tag is a short segmentation label attached to a customer. Labels form
// a set per customer: creation skips duplicates on (customer_id, tag).
type Tag struct {
	ID         uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	CustomerID uuid.UUID `gorm:"column:customer_id;type:uuid;not null;uniqueIndex:idx_customer_tags_customer_tag"`
	StoreID    uuid.UUID `gorm:"column:store_id;type:uuid;not null;index"`
	Tag        string    `gorm:"column:tag;not null;uniqueIndex:idx_customer_tags_customer_tag"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (Tag) TableName() string {
	return "customer_tags"
}
