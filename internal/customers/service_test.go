package customers

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/minicrmhq/minicrm-backend/internal/funnel"
	"github.com/minicrmhq/minicrm-backend/internal/reminders"
	"github.com/minicrmhq/minicrm-backend/pkg/db/models"
	dbtypes "github.com/minicrmhq/minicrm-backend/pkg/db/types"
	"github.com/minicrmhq/minicrm-backend/pkg/enums"
	pkgerrors "github.com/minicrmhq/minicrm-backend/pkg/errors"
	"gorm.io/gorm"
)

type fakeCustomerRepo struct {
	createFn     func(ctx context.Context, customer *models.Customer) error
	findFn       func(ctx context.Context, id uuid.UUID) (*models.Customer, error)
	listFn       func(ctx context.Context, storeID uuid.UUID) ([]models.Customer, error)
	addTagFn     func(ctx context.Context, tag *models.Tag) error
	custTagsFn   func(ctx context.Context, customerID uuid.UUID) ([]models.Tag, error)
	storeTagsFn  func(ctx context.Context, storeID uuid.UUID) ([]models.Tag, error)
}

func (f *fakeCustomerRepo) Create(ctx context.Context, customer *models.Customer) error {
	if f.createFn != nil {
		return f.createFn(ctx, customer)
	}
	customer.ID = uuid.New()
	return nil
}

func (f *fakeCustomerRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.Customer, error) {
	if f.findFn != nil {
		return f.findFn(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeCustomerRepo) ListByStore(ctx context.Context, storeID uuid.UUID) ([]models.Customer, error) {
	if f.listFn != nil {
		return f.listFn(ctx, storeID)
	}
	return nil, nil
}

func (f *fakeCustomerRepo) AddTag(ctx context.Context, tag *models.Tag) error {
	if f.addTagFn != nil {
		return f.addTagFn(ctx, tag)
	}
	return nil
}

func (f *fakeCustomerRepo) ListTagsByCustomer(ctx context.Context, customerID uuid.UUID) ([]models.Tag, error) {
	if f.custTagsFn != nil {
		return f.custTagsFn(ctx, customerID)
	}
	return nil, nil
}

func (f *fakeCustomerRepo) ListTagsByStore(ctx context.Context, storeID uuid.UUID) ([]models.Tag, error) {
	if f.storeTagsFn != nil {
		return f.storeTagsFn(ctx, storeID)
	}
	return nil, nil
}

type fakeFunnelService struct {
	setFn func(ctx context.Context, storeID, customerID uuid.UUID, input funnel.SetStageInput) (*models.FunnelStatus, error)
	getFn func(ctx context.Context, storeID, customerID uuid.UUID) (*models.FunnelStatus, error)
}

func (f *fakeFunnelService) SetStage(ctx context.Context, storeID, customerID uuid.UUID, input funnel.SetStageInput) (*models.FunnelStatus, error) {
	if f.setFn != nil {
		return f.setFn(ctx, storeID, customerID, input)
	}
	stage, err := enums.ParseFunnelStage(input.Stage)
	if err != nil {
		return nil, err
	}
	return &models.FunnelStatus{CustomerID: customerID, StoreID: storeID, Stage: stage}, nil
}

func (f *fakeFunnelService) GetStatus(ctx context.Context, storeID, customerID uuid.UUID) (*models.FunnelStatus, error) {
	if f.getFn != nil {
		return f.getFn(ctx, storeID, customerID)
	}
	return &models.FunnelStatus{CustomerID: customerID, StoreID: storeID, Stage: enums.FunnelStageNew}, nil
}

type fakeFunnelRepo struct {
	statuses []models.FunnelStatus
}

func (f *fakeFunnelRepo) ListByStore(ctx context.Context, storeID uuid.UUID) ([]models.FunnelStatus, error) {
	return f.statuses, nil
}

type fakeReminderService struct {
	scheduleFn func(ctx context.Context, storeID, customerID uuid.UUID, input reminders.ScheduleInput) (*models.Reminder, error)
}

func (f *fakeReminderService) Schedule(ctx context.Context, storeID, customerID uuid.UUID, input reminders.ScheduleInput) (*models.Reminder, error) {
	if f.scheduleFn != nil {
		return f.scheduleFn(ctx, storeID, customerID, input)
	}
	return &models.Reminder{CustomerID: customerID, StoreID: storeID, ReminderDate: input.Date}, nil
}

type fakeNoteService struct {
	addFn func(ctx context.Context, storeID, customerID uuid.UUID, text string) (*models.Note, error)
}

func (f *fakeNoteService) Add(ctx context.Context, storeID, customerID uuid.UUID, text string) (*models.Note, error) {
	if f.addFn != nil {
		return f.addFn(ctx, storeID, customerID, text)
	}
	return &models.Note{CustomerID: customerID, StoreID: storeID, Note: text}, nil
}

func newTestService(t *testing.T, repo customerRepository, funnelSvc funnelService, funnelRepo funnelRepository, reminderSvc reminderService, noteSvc noteService) Service {
	t.Helper()
	svc, err := NewService(repo, funnelSvc, funnelRepo, reminderSvc, noteSvc)
	if err != nil {
		t.Fatalf("NewService error: %v", err)
	}
	return svc
}

func TestService_CreateWithSecondaries(t *testing.T) {
	storeID := uuid.New()
	repo := &fakeCustomerRepo{}

	var addedTags []string
	repo.addTagFn = func(ctx context.Context, tag *models.Tag) error {
		addedTags = append(addedTags, tag.Tag)
		return nil
	}

	var scheduled *reminders.ScheduleInput
	reminderSvc := &fakeReminderService{scheduleFn: func(ctx context.Context, sID, cID uuid.UUID, input reminders.ScheduleInput) (*models.Reminder, error) {
		scheduled = &input
		return &models.Reminder{CustomerID: cID, StoreID: sID, ReminderDate: input.Date}, nil
	}}

	var notedText string
	noteSvc := &fakeNoteService{addFn: func(ctx context.Context, sID, cID uuid.UUID, text string) (*models.Note, error) {
		notedText = text
		return &models.Note{Note: text}, nil
	}}

	svc := newTestService(t, repo, &fakeFunnelService{}, &fakeFunnelRepo{}, reminderSvc, noteSvc)

	note := "indicada pela Carla"
	date := dbtypes.NewDate(2026, 9, 10)
	got, err := svc.Create(context.Background(), storeID, CreateCustomerInput{
		Name:           "Ana Costa",
		WhatsappNumber: "+5511988887777",
		Stage:          "in_progress",
		Tags:           []string{"vip", "vip", " ", "inverno"},
		InitialNote:    &note,
		ReminderDate:   &date,
	})
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if got.ID == uuid.Nil {
		t.Fatal("expected customer id to be assigned")
	}
	if got.Stage != enums.FunnelStageInProgress {
		t.Fatalf("stage = %s, want in_progress", got.Stage)
	}
	if len(addedTags) != 2 || addedTags[0] != "vip" || addedTags[1] != "inverno" {
		t.Fatalf("tags = %v, want deduped [vip inverno]", addedTags)
	}
	if notedText != note {
		t.Fatalf("note = %q, want %q", notedText, note)
	}
	if scheduled == nil || scheduled.Date != date {
		t.Fatalf("reminder not scheduled with %s: %+v", date, scheduled)
	}
}

func TestService_CreateValidation(t *testing.T) {
	repo := &fakeCustomerRepo{createFn: func(ctx context.Context, customer *models.Customer) error {
		t.Fatal("create should not run for invalid input")
		return nil
	}}
	svc := newTestService(t, repo, &fakeFunnelService{}, &fakeFunnelRepo{}, &fakeReminderService{}, &fakeNoteService{})

	cases := []struct {
		name  string
		input CreateCustomerInput
	}{
		{name: "blank name", input: CreateCustomerInput{Name: "  ", WhatsappNumber: "+55"}},
		{name: "blank whatsapp", input: CreateCustomerInput{Name: "Ana"}},
		{name: "bad stage", input: CreateCustomerInput{Name: "Ana", WhatsappNumber: "+55", Stage: "won"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), uuid.New(), tc.input)
			if pkgerrors.CodeOf(err) != pkgerrors.CodeValidation {
				t.Fatalf("expected validation error, got %v", err)
			}
		})
	}
}

func TestService_CreateSecondaryFailureKeepsCustomer(t *testing.T) {
	storeID := uuid.New()
	repo := &fakeCustomerRepo{
		addTagFn: func(ctx context.Context, tag *models.Tag) error {
			return fmt.Errorf("connection reset")
		},
	}
	svc := newTestService(t, repo, &fakeFunnelService{}, &fakeFunnelRepo{}, &fakeReminderService{}, &fakeNoteService{})

	got, err := svc.Create(context.Background(), storeID, CreateCustomerInput{
		Name:           "Ana Costa",
		WhatsappNumber: "+5511988887777",
		Tags:           []string{"vip"},
	})
	if pkgerrors.CodeOf(err) != pkgerrors.CodeDependency {
		t.Fatalf("expected dependency error, got %v", err)
	}
	if got == nil || got.ID == uuid.Nil {
		t.Fatal("created customer must be returned despite the secondary failure")
	}
	typed := pkgerrors.As(err)
	details, ok := typed.Details().(map[string]any)
	if !ok {
		t.Fatalf("expected details map, got %T", typed.Details())
	}
	if details["customer_id"] != got.ID {
		t.Fatalf("details customer_id = %v, want %s", details["customer_id"], got.ID)
	}
	if details["step"] != "tags" {
		t.Fatalf("details step = %v, want tags", details["step"])
	}
}

func TestService_GetDefaultsStage(t *testing.T) {
	storeID := uuid.New()
	customerID := uuid.New()
	repo := &fakeCustomerRepo{findFn: func(ctx context.Context, id uuid.UUID) (*models.Customer, error) {
		return &models.Customer{ID: customerID, StoreID: storeID, CustomerName: "Ana"}, nil
	}}
	svc := newTestService(t, repo, &fakeFunnelService{}, &fakeFunnelRepo{}, &fakeReminderService{}, &fakeNoteService{})

	got, err := svc.Get(context.Background(), storeID, customerID)
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if got.Stage != enums.FunnelStageNew {
		t.Fatalf("stage = %s, want new", got.Stage)
	}
	if got.Tags == nil || len(got.Tags) != 0 {
		t.Fatalf("tags = %v, want empty slice", got.Tags)
	}
}

func TestService_ListFilters(t *testing.T) {
	storeID := uuid.New()
	ana := models.Customer{ID: uuid.New(), StoreID: storeID, CustomerName: "Ana Costa", WhatsappNumber: "+5511911110000"}
	marianaEmail := "mariana@example.com"
	mariana := models.Customer{ID: uuid.New(), StoreID: storeID, CustomerName: "Beatriz Lima", WhatsappNumber: "+5511922220000", Email: &marianaEmail}
	carlos := models.Customer{ID: uuid.New(), StoreID: storeID, CustomerName: "Carlos Souza", WhatsappNumber: "+5511933330000"}

	repo := &fakeCustomerRepo{
		listFn: func(ctx context.Context, sID uuid.UUID) ([]models.Customer, error) {
			return []models.Customer{carlos, mariana, ana}, nil
		},
		storeTagsFn: func(ctx context.Context, sID uuid.UUID) ([]models.Tag, error) {
			return []models.Tag{
				{CustomerID: ana.ID, Tag: "vip"},
				{CustomerID: carlos.ID, Tag: "inverno"},
			}, nil
		},
	}
	funnelRepo := &fakeFunnelRepo{statuses: []models.FunnelStatus{
		{CustomerID: carlos.ID, StoreID: storeID, Stage: enums.FunnelStageCompleted},
	}}
	svc := newTestService(t, repo, &fakeFunnelService{}, funnelRepo, &fakeReminderService{}, &fakeNoteService{})
	ctx := context.Background()

	t.Run("search matches name and email", func(t *testing.T) {
		got, err := svc.List(ctx, storeID, ListFilter{SearchTerm: "ANA"})
		if err != nil {
			t.Fatalf("List error: %v", err)
		}
		if len(got) != 2 {
			t.Fatalf("got %d customers, want 2 (name Ana, email mariana@)", len(got))
		}
	})

	t.Run("stage filter uses default new", func(t *testing.T) {
		got, err := svc.List(ctx, storeID, ListFilter{Stage: "new"})
		if err != nil {
			t.Fatalf("List error: %v", err)
		}
		if len(got) != 2 {
			t.Fatalf("got %d customers, want 2 unstaged treated as new", len(got))
		}
	})

	t.Run("tag filter", func(t *testing.T) {
		got, err := svc.List(ctx, storeID, ListFilter{Tag: "vip"})
		if err != nil {
			t.Fatalf("List error: %v", err)
		}
		if len(got) != 1 || got[0].ID != ana.ID {
			t.Fatalf("unexpected result: %+v", got)
		}
	})

	t.Run("filters combine with AND", func(t *testing.T) {
		got, err := svc.List(ctx, storeID, ListFilter{SearchTerm: "ana", Tag: "inverno"})
		if err != nil {
			t.Fatalf("List error: %v", err)
		}
		if len(got) != 0 {
			t.Fatalf("got %d customers, want 0", len(got))
		}
	})

	t.Run("invalid stage rejected", func(t *testing.T) {
		_, err := svc.List(ctx, storeID, ListFilter{Stage: "archived"})
		if pkgerrors.CodeOf(err) != pkgerrors.CodeValidation {
			t.Fatalf("expected validation error, got %v", err)
		}
	})
}
