package reminders

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/minicrmhq/minicrm-backend/pkg/db/models"
	dbtypes "github.com/minicrmhq/minicrm-backend/pkg/db/types"
	pkgerrors "github.com/minicrmhq/minicrm-backend/pkg/errors"
	"gorm.io/gorm"
)

type fakeReminderRepo struct {
	createFn   func(ctx context.Context, reminder *models.Reminder) error
	findFn     func(ctx context.Context, id, storeID uuid.UUID) (*models.Reminder, error)
	listFn     func(ctx context.Context, storeID uuid.UUID, from, to dbtypes.Date) ([]models.Reminder, error)
	markSentFn func(ctx context.Context, id, storeID uuid.UUID) (int64, error)
}

func (f *fakeReminderRepo) Create(ctx context.Context, reminder *models.Reminder) error {
	if f.createFn != nil {
		return f.createFn(ctx, reminder)
	}
	return nil
}

func (f *fakeReminderRepo) FindByID(ctx context.Context, id, storeID uuid.UUID) (*models.Reminder, error) {
	if f.findFn != nil {
		return f.findFn(ctx, id, storeID)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeReminderRepo) ListInRange(ctx context.Context, storeID uuid.UUID, from, to dbtypes.Date) ([]models.Reminder, error) {
	if f.listFn != nil {
		return f.listFn(ctx, storeID, from, to)
	}
	return nil, nil
}

func (f *fakeReminderRepo) ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]models.Reminder, error) {
	return nil, nil
}

func (f *fakeReminderRepo) MarkSent(ctx context.Context, id, storeID uuid.UUID) (int64, error) {
	if f.markSentFn != nil {
		return f.markSentFn(ctx, id, storeID)
	}
	return 0, nil
}

func (f *fakeReminderRepo) CountInRange(ctx context.Context, storeID uuid.UUID, from, to dbtypes.Date) (int64, error) {
	return 0, nil
}

type fakeCustomers struct {
	customer *models.Customer
	err      error
}

func (f *fakeCustomers) FindByID(ctx context.Context, id uuid.UUID) (*models.Customer, error) {
	return f.customer, f.err
}

func TestService_ScheduleDefaultMessage(t *testing.T) {
	storeID := uuid.New()
	customerID := uuid.New()

	var created *models.Reminder
	repo := &fakeReminderRepo{createFn: func(ctx context.Context, reminder *models.Reminder) error {
		created = reminder
		return nil
	}}
	customers := &fakeCustomers{customer: &models.Customer{
		ID: customerID, StoreID: storeID, CustomerName: "João Pereira",
	}}

	svc, err := NewService(repo, customers)
	if err != nil {
		t.Fatalf("NewService error: %v", err)
	}

	date := dbtypes.NewDate(2026, 9, 15)
	got, err := svc.Schedule(context.Background(), storeID, customerID, ScheduleInput{Date: date})
	if err != nil {
		t.Fatalf("Schedule error: %v", err)
	}
	if created == nil || got != created {
		t.Fatal("expected reminder to be created and returned")
	}
	if got.Message != "Follow-up com João Pereira" {
		t.Fatalf("message = %q, want default follow-up text", got.Message)
	}
	if got.ReminderDate != date {
		t.Fatalf("date = %s, want %s", got.ReminderDate, date)
	}
	if got.IsSent {
		t.Fatal("new reminders start unsent")
	}
}

func TestService_ScheduleCustomMessage(t *testing.T) {
	storeID := uuid.New()
	customerID := uuid.New()
	repo := &fakeReminderRepo{}
	customers := &fakeCustomers{customer: &models.Customer{ID: customerID, StoreID: storeID, CustomerName: "Ana"}}

	svc, err := NewService(repo, customers)
	if err != nil {
		t.Fatalf("NewService error: %v", err)
	}

	got, err := svc.Schedule(context.Background(), storeID, customerID, ScheduleInput{
		Date:    dbtypes.NewDate(2026, 10, 1),
		Message: "  Ligar sobre a promoção  ",
	})
	if err != nil {
		t.Fatalf("Schedule error: %v", err)
	}
	if got.Message != "Ligar sobre a promoção" {
		t.Fatalf("message = %q, want trimmed custom text", got.Message)
	}
}

func TestService_ScheduleValidation(t *testing.T) {
	repo := &fakeReminderRepo{createFn: func(ctx context.Context, reminder *models.Reminder) error {
		t.Fatal("create should not run without a date")
		return nil
	}}
	customers := &fakeCustomers{err: gorm.ErrRecordNotFound}

	svc, err := NewService(repo, customers)
	if err != nil {
		t.Fatalf("NewService error: %v", err)
	}

	_, err = svc.Schedule(context.Background(), uuid.New(), uuid.New(), ScheduleInput{})
	if pkgerrors.CodeOf(err) != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestService_ListUpcomingRange(t *testing.T) {
	repo := &fakeReminderRepo{}
	customers := &fakeCustomers{}
	svc, err := NewService(repo, customers)
	if err != nil {
		t.Fatalf("NewService error: %v", err)
	}

	from := dbtypes.NewDate(2026, 9, 10)
	to := dbtypes.NewDate(2026, 9, 1)
	_, err = svc.ListUpcoming(context.Background(), uuid.New(), from, to)
	if pkgerrors.CodeOf(err) != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error for inverted range, got %v", err)
	}

	_, err = svc.ListUpcoming(context.Background(), uuid.New(), dbtypes.Date{}, to)
	if pkgerrors.CodeOf(err) != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error for zero start, got %v", err)
	}
}

func TestService_MarkSentIdempotent(t *testing.T) {
	storeID := uuid.New()
	reminderID := uuid.New()

	sent := &models.Reminder{ID: reminderID, StoreID: storeID, IsSent: true}
	repo := &fakeReminderRepo{
		markSentFn: func(ctx context.Context, id, sID uuid.UUID) (int64, error) {
			return 0, nil // already sent
		},
		findFn: func(ctx context.Context, id, sID uuid.UUID) (*models.Reminder, error) {
			return sent, nil
		},
	}
	svc, err := NewService(repo, &fakeCustomers{})
	if err != nil {
		t.Fatalf("NewService error: %v", err)
	}

	got, err := svc.MarkSent(context.Background(), storeID, reminderID)
	if err != nil {
		t.Fatalf("MarkSent error: %v", err)
	}
	if !got.IsSent {
		t.Fatal("reminder must stay sent")
	}
}

func TestService_MarkSentUnknownReminder(t *testing.T) {
	repo := &fakeReminderRepo{}
	svc, err := NewService(repo, &fakeCustomers{})
	if err != nil {
		t.Fatalf("NewService error: %v", err)
	}

	_, err = svc.MarkSent(context.Background(), uuid.New(), uuid.New())
	if pkgerrors.CodeOf(err) != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}
