package reminders

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/minicrmhq/minicrm-backend/pkg/db/models"
	dbtypes "github.com/minicrmhq/minicrm-backend/pkg/db/types"
	pkgerrors "github.com/minicrmhq/minicrm-backend/pkg/errors"
	"gorm.io/gorm"
)

type reminderRepository interface {
	Create(ctx context.Context, reminder *models.Reminder) error
	FindByID(ctx context.Context, id, storeID uuid.UUID) (*models.Reminder, error)
	ListInRange(ctx context.Context, storeID uuid.UUID, from, to dbtypes.Date) ([]models.Reminder, error)
	ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]models.Reminder, error)
	MarkSent(ctx context.Context, id, storeID uuid.UUID) (int64, error)
	CountInRange(ctx context.Context, storeID uuid.UUID, from, to dbtypes.Date) (int64, error)
}

type customerRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Customer, error)
}

// Service schedules follow-up reminders and tracks their delivery state.
type Service interface {
	Schedule(ctx context.Context, storeID, customerID uuid.UUID, input ScheduleInput) (*models.Reminder, error)
	ListUpcoming(ctx context.Context, storeID uuid.UUID, from, to dbtypes.Date) ([]models.Reminder, error)
	ListByCustomer(ctx context.Context, storeID, customerID uuid.UUID) ([]models.Reminder, error)
	MarkSent(ctx context.Context, storeID, reminderID uuid.UUID) (*models.Reminder, error)
	CountUpcoming(ctx context.Context, storeID uuid.UUID, from, to dbtypes.Date) (int64, error)
}

type service struct {
	repo      reminderRepository
	customers customerRepository
}

// NewService wires a reminder service with the provided repositories.
func NewService(repo reminderRepository, customers customerRepository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("reminder repository required")
	}
	if customers == nil {
		return nil, fmt.Errorf("customer repository required")
	}
	return &service{repo: repo, customers: customers}, nil
}

// ScheduleInput carries the reminder date and an optional custom message.
type ScheduleInput struct {
	Date    dbtypes.Date
	Message string
}

// DefaultMessage is the follow-up text used when the caller schedules a
// reminder without one.
func DefaultMessage(customerName string) string {
	return fmt.Sprintf("Follow-up com %s", customerName)
}

// Schedule creates a reminder for the customer. Blank messages fall back to
// the default follow-up text with the customer's name.
func (s *service) Schedule(ctx context.Context, storeID, customerID uuid.UUID, input ScheduleInput) (*models.Reminder, error) {
	if !input.Date.Valid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "reminder date is required")
	}

	customer, err := resolveCustomer(ctx, s.customers, storeID, customerID)
	if err != nil {
		return nil, err
	}

	message := strings.TrimSpace(input.Message)
	if message == "" {
		message = DefaultMessage(customer.CustomerName)
	}

	reminder := &models.Reminder{
		CustomerID:   customer.ID,
		StoreID:      storeID,
		ReminderDate: input.Date,
		Message:      message,
	}
	if err := s.repo.Create(ctx, reminder); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create reminder")
	}
	return reminder, nil
}

// ListUpcoming returns the store's reminders with dates inside the inclusive
// [from, to] window, newest date first.
func (s *service) ListUpcoming(ctx context.Context, storeID uuid.UUID, from, to dbtypes.Date) ([]models.Reminder, error) {
	if err := validateRange(from, to); err != nil {
		return nil, err
	}
	reminders, err := s.repo.ListInRange(ctx, storeID, from, to)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list reminders")
	}
	return reminders, nil
}

func (s *service) ListByCustomer(ctx context.Context, storeID, customerID uuid.UUID) ([]models.Reminder, error) {
	if _, err := resolveCustomer(ctx, s.customers, storeID, customerID); err != nil {
		return nil, err
	}
	reminders, err := s.repo.ListByCustomer(ctx, customerID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list customer reminders")
	}
	return reminders, nil
}

// MarkSent flips the reminder to sent. Repeating the call is a no-op that
// returns the reminder unchanged, so delivery hooks can retry safely.
func (s *service) MarkSent(ctx context.Context, storeID, reminderID uuid.UUID) (*models.Reminder, error) {
	if reminderID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "reminder id is required")
	}

	if _, err := s.repo.MarkSent(ctx, reminderID, storeID); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "mark reminder sent")
	}

	// Zero rows updated covers both "already sent" and "missing"; the reload
	// tells them apart.
	reminder, err := s.repo.FindByID(ctx, reminderID, storeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "reminder not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load reminder")
	}
	return reminder, nil
}

func (s *service) CountUpcoming(ctx context.Context, storeID uuid.UUID, from, to dbtypes.Date) (int64, error) {
	if err := validateRange(from, to); err != nil {
		return 0, err
	}
	count, err := s.repo.CountInRange(ctx, storeID, from, to)
	if err != nil {
		return 0, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count reminders")
	}
	return count, nil
}

func validateRange(from, to dbtypes.Date) error {
	if !from.Valid() || !to.Valid() {
		return pkgerrors.New(pkgerrors.CodeValidation, "date range is required")
	}
	if to.Before(from) {
		return pkgerrors.New(pkgerrors.CodeValidation, "range end precedes range start")
	}
	return nil
}

func resolveCustomer(ctx context.Context, repo customerRepository, storeID, customerID uuid.UUID) (*models.Customer, error) {
	if customerID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "customer id is required")
	}
	customer, err := repo.FindByID(ctx, customerID)
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
