package models

import (
	"time"

	"github.com/google/uuid"
)

// Note is a free-text interaction record, append-only.
type Note struct {
	ID         uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	CustomerID uuid.UUID `gorm:"column:customer_id;type:uuid;not null;index"`
	StoreID    uuid.UUID `gorm:"column:store_id;type:uuid;not null;index"`
	Note       string    `gorm:"column:note;not null"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (Note) TableName() string {
	return "customer_notes"
}
