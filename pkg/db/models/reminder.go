package models

import (
	"time"

	"github.com/google/uuid"

	dbtypes "github.com/minicrmhq/minicrm-backend/pkg/db/types"
)

// Reminder schedules a follow-up with a customer on a calendar date.
// IsSent is flipped by the external delivery mechanism; this service
// only exposes the idempotent mark-sent operation and never unsets it.
type Reminder struct {
	ID           uuid.UUID    `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	CustomerID   uuid.UUID    `gorm:"column:customer_id;type:uuid;not null;index"`
	StoreID      uuid.UUID    `gorm:"column:store_id;type:uuid;not null;index"`
	ReminderDate dbtypes.Date `gorm:"column:reminder_date;not null;index"`
	Message      string       `gorm:"column:message;not null"`
	IsSent       bool         `gorm:"column:is_sent;not null;default:false"`
	CreatedAt    time.Time    `gorm:"column:created_at;autoCreateTime"`
}

func (Reminder) TableName() string {
	return "follow_up_reminders"
}
