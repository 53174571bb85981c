package customers

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/minicrmhq/minicrm-backend/pkg/db/models"
	dbtypes "github.com/minicrmhq/minicrm-backend/pkg/db/types"
	"github.com/minicrmhq/minicrm-backend/pkg/enums"
)

// CreateCustomerInput captures the customer fields plus the optional
// follow-up records created alongside the customer.
type CreateCustomerInput struct {
	Name            string
	WhatsappNumber  string
	Email           *string
	ProductInterest *string

	Stage           string
	FunnelNotes     *string
	Tags            []string
	InitialNote     *string
	ReminderDate    *dbtypes.Date
	ReminderMessage string
}

// CustomerDTO is a customer enriched with its funnel stage and tags.
type CustomerDTO struct {
	ID              uuid.UUID         `json:"id"`
	StoreID         uuid.UUID         `json:"store_id"`
	CustomerName    string            `json:"customer_name"`
	WhatsappNumber  string            `json:"whatsapp_number"`
	Email           *string           `json:"email,omitempty"`
	ProductInterest *string           `json:"product_interest,omitempty"`
	TotalPoints     int               `json:"total_points"`
	Stage           enums.FunnelStage `json:"stage"`
	Tags            []string          `json:"tags"`
	CreatedAt       time.Time         `json:"created_at"`
	UpdatedAt       time.Time         `json:"updated_at"`
}

func newCustomerDTO(customer *models.Customer, stage enums.FunnelStage, tags []string) *CustomerDTO {
	if stage == "" {
		stage = enums.FunnelStageNew
	}
	if tags == nil {
		tags = []string{}
	}
	return &CustomerDTO{
		ID:              customer.ID,
		StoreID:         customer.StoreID,
		CustomerName:    customer.CustomerName,
		WhatsappNumber:  customer.WhatsappNumber,
		Email:           customer.Email,
		ProductInterest: customer.ProductInterest,
		TotalPoints:     customer.TotalPoints,
		Stage:           stage,
		Tags:            tags,
		CreatedAt:       customer.CreatedAt,
		UpdatedAt:       customer.UpdatedAt,
	}
}

// ListFilter narrows a customer listing. Zero-valued fields match everything;
// set fields are combined with AND.
type ListFilter struct {
	SearchTerm string
	Stage      string
	Tag        string
}

// Matches applies the filter to one enriched customer. The search term is a
// case-insensitive substring match over name, whatsapp number and email.
func (f ListFilter) Matches(dto *CustomerDTO) bool {
	if term := strings.ToLower(strings.TrimSpace(f.SearchTerm)); term != "" {
		name := strings.ToLower(dto.CustomerName)
		phone := strings.ToLower(dto.WhatsappNumber)
		email := ""
		if dto.Email != nil {
			email = strings.ToLower(*dto.Email)
		}
		if !strings.Contains(name, term) && !strings.Contains(phone, term) && !strings.Contains(email, term) {
			return false
		}
	}
	if f.Stage != "" && string(dto.Stage) != f.Stage {
		return false
	}
	if f.Tag != "" {
		found := false
		for _, tag := range dto.Tags {
			if tag == f.Tag {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}
