package customers

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/minicrmhq/minicrm-backend/internal/funnel"
	"github.com/minicrmhq/minicrm-backend/internal/reminders"
	"github.com/minicrmhq/minicrm-backend/pkg/db/models"
	"github.com/minicrmhq/minicrm-backend/pkg/enums"
	pkgerrors "github.com/minicrmhq/minicrm-backend/pkg/errors"
	"gorm.io/gorm"
)

type customerRepository interface {
	Create(ctx context.Context, customer *models.Customer) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Customer, error)
	ListByStore(ctx context.Context, storeID uuid.UUID) ([]models.Customer, error)
	AddTag(ctx context.Context, tag *models.Tag) error
	ListTagsByCustomer(ctx context.Context, customerID uuid.UUID) ([]models.Tag, error)
	ListTagsByStore(ctx context.Context, storeID uuid.UUID) ([]models.Tag, error)
}

type funnelService interface {
	SetStage(ctx context.Context, storeID, customerID uuid.UUID, input funnel.SetStageInput) (*models.FunnelStatus, error)
	GetStatus(ctx context.Context, storeID, customerID uuid.UUID) (*models.FunnelStatus, error)
}

type funnelRepository interface {
	ListByStore(ctx context.Context, storeID uuid.UUID) ([]models.FunnelStatus, error)
}

type reminderService interface {
	Schedule(ctx context.Context, storeID, customerID uuid.UUID, input reminders.ScheduleInput) (*models.Reminder, error)
}

type noteService interface {
	Add(ctx context.Context, storeID, customerID uuid.UUID, text string) (*models.Note, error)
}

// Service aggregates customers with their funnel position, tags and
// follow-up records.
type Service interface {
	Create(ctx context.Context, storeID uuid.UUID, input CreateCustomerInput) (*CustomerDTO, error)
	Get(ctx context.Context, storeID, customerID uuid.UUID) (*CustomerDTO, error)
	List(ctx context.Context, storeID uuid.UUID, filter ListFilter) ([]*CustomerDTO, error)
}

type service struct {
	repo       customerRepository
	funnel     funnelService
	funnelRepo funnelRepository
	reminders  reminderService
	notes      noteService
}

// NewService wires a customer service with the provided collaborators.
func NewService(repo customerRepository, funnelSvc funnelService, funnelRepo funnelRepository, reminderSvc reminderService, noteSvc noteService) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("customer repository required")
	}
	if funnelSvc == nil || funnelRepo == nil {
		return nil, fmt.Errorf("funnel access required")
	}
	if reminderSvc == nil {
		return nil, fmt.Errorf("reminder service required")
	}
	if noteSvc == nil {
		return nil, fmt.Errorf("note service required")
	}
	return &service{
		repo:       repo,
		funnel:     funnelSvc,
		funnelRepo: funnelRepo,
		reminders:  reminderSvc,
		notes:      noteSvc,
	}, nil
}

// Create validates the whole input up front, inserts the customer, then runs
// the optional secondary inserts (funnel stage, tags, note, reminder). A
// secondary failure does not roll the customer back: the created customer is
// returned together with a typed error carrying its id, so the caller can
// retry the follow-up records against an existing customer.
func (s *service) Create(ctx context.Context, storeID uuid.UUID, input CreateCustomerInput) (*CustomerDTO, error) {
	name := strings.TrimSpace(input.Name)
	whatsapp := strings.TrimSpace(input.WhatsappNumber)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "customer name is required")
	}
	if whatsapp == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "whatsapp number is required")
	}
	if input.Stage != "" {
		if _, err := enums.ParseFunnelStage(input.Stage); err != nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, err.Error())
		}
	}
	if input.ReminderDate != nil && !input.ReminderDate.Valid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "reminder date is invalid")
	}

	customer := &models.Customer{
		StoreID:         storeID,
		CustomerName:    name,
		WhatsappNumber:  whatsapp,
		Email:           input.Email,
		ProductInterest: input.ProductInterest,
	}
	if err := s.repo.Create(ctx, customer); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create customer")
	}

	stage := enums.FunnelStageNew
	var tags []string
	if step, err := s.createSecondary(ctx, storeID, customer, input, &stage, &tags); err != nil {
		dto := newCustomerDTO(customer, stage, tags)
		return dto, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "customer created but follow-up setup failed").
			WithDetails(map[string]any{"customer_id": customer.ID, "step": step})
	}
	return newCustomerDTO(customer, stage, tags), nil
}

func (s *service) createSecondary(ctx context.Context, storeID uuid.UUID, customer *models.Customer, input CreateCustomerInput, stage *enums.FunnelStage, tags *[]string) (string, error) {
	if input.Stage != "" || input.FunnelNotes != nil {
		target := input.Stage
		if target == "" {
			target = string(enums.FunnelStageNew)
		}
		status, err := s.funnel.SetStage(ctx, storeID, customer.ID, funnel.SetStageInput{
			Stage: target,
			Notes: input.FunnelNotes,
		})
		if err != nil {
			return "funnel", err
		}
		*stage = status.Stage
	}

	for _, raw := range dedupeTags(input.Tags) {
		if err := s.repo.AddTag(ctx, &models.Tag{
			CustomerID: customer.ID,
			StoreID:    storeID,
			Tag:        raw,
		}); err != nil {
			return "tags", err
		}
		*tags = append(*tags, raw)
	}

	if input.InitialNote != nil && strings.TrimSpace(*input.InitialNote) != "" {
		if _, err := s.notes.Add(ctx, storeID, customer.ID, *input.InitialNote); err != nil {
			return "note", err
		}
	}

	if input.ReminderDate != nil {
		if _, err := s.reminders.Schedule(ctx, storeID, customer.ID, reminders.ScheduleInput{
			Date:    *input.ReminderDate,
			Message: input.ReminderMessage,
		}); err != nil {
			return "reminder", err
		}
	}
	return "", nil
}

// Get loads one customer enriched with funnel stage and tags. Customers that
// were never staged report the new stage.
func (s *service) Get(ctx context.Context, storeID, customerID uuid.UUID) (*CustomerDTO, error) {
	customer, err := s.resolve(ctx, storeID, customerID)
	if err != nil {
		return nil, err
	}

	status, err := s.funnel.GetStatus(ctx, storeID, customerID)
	if err != nil {
		return nil, err
	}

	tagRows, err := s.repo.ListTagsByCustomer(ctx, customerID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list customer tags")
	}
	tags := make([]string, 0, len(tagRows))
	for _, row := range tagRows {
		tags = append(tags, row.Tag)
	}

	return newCustomerDTO(customer, status.Stage, tags), nil
}

// List returns the store's customers newest first, enriched in two batch
// queries rather than per-customer lookups, then filtered in memory.
func (s *service) List(ctx context.Context, storeID uuid.UUID, filter ListFilter) ([]*CustomerDTO, error) {
	if filter.Stage != "" {
		if _, err := enums.ParseFunnelStage(filter.Stage); err != nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, err.Error())
		}
	}

	rows, err := s.repo.ListByStore(ctx, storeID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list customers")
	}

	statuses, err := s.funnelRepo.ListByStore(ctx, storeID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list funnel stages")
	}
	stageByCustomer := make(map[uuid.UUID]enums.FunnelStage, len(statuses))
	for _, status := range statuses {
		stageByCustomer[status.CustomerID] = status.Stage
	}

	tagRows, err := s.repo.ListTagsByStore(ctx, storeID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list tags")
	}
	tagsByCustomer := make(map[uuid.UUID][]string, len(tagRows))
	for _, row := range tagRows {
		tagsByCustomer[row.CustomerID] = append(tagsByCustomer[row.CustomerID], row.Tag)
	}

	result := make([]*CustomerDTO, 0, len(rows))
	for i := range rows {
		dto := newCustomerDTO(&rows[i], stageByCustomer[rows[i].ID], tagsByCustomer[rows[i].ID])
		if filter.Matches(dto) {
			result = append(result, dto)
		}
	}
	return result, nil
}

func (s *service) resolve(ctx context.Context, storeID, customerID uuid.UUID) (*models.Customer, error) {
	if customerID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "customer id is required")
	}
	customer, err := s.repo.FindByID(ctx, customerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "customer not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load customer")
	}
	if customer.StoreID != storeID {
		return nil, pkgerrors.New(pkgerrors.CodeConflict, "customer belongs to a different store")
	}
	return customer, nil
}

func dedupeTags(raw []string) []string {
	seen := make(map[string]struct{}, len(raw))
	out := make([]string, 0, len(raw))
	for _, tag := range raw {
		tag = strings.TrimSpace(tag)
		if tag == "" {
			continue
		}
		if _, ok := seen[tag]; ok {
			continue
		}
		seen[tag] = struct{}{}
		out = append(out, tag)
	}
	return out
}
