package stores

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/minicrmhq/minicrm-backend/pkg/db/models"
	pkgerrors "github.com/minicrmhq/minicrm-backend/pkg/errors"
)

type fakeStoreRepo struct {
	findFn   func(ctx context.Context, id uuid.UUID) (*models.StoreProfile, error)
	upsertFn func(ctx context.Context, profile *models.StoreProfile) error
}

func (f *fakeStoreRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.StoreProfile, error) {
	if f.findFn != nil {
		return f.findFn(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeStoreRepo) Upsert(ctx context.Context, profile *models.StoreProfile) error {
	if f.upsertFn != nil {
		return f.upsertFn(ctx, profile)
	}
	return nil
}

func TestService_Get(t *testing.T) {
	storeID := uuid.New()
	phone := "+5511988887777"
	repo := &fakeStoreRepo{
		findFn: func(ctx context.Context, id uuid.UUID) (*models.StoreProfile, error) {
			return &models.StoreProfile{ID: id, StoreName: "Loja da Ana", Phone: &phone}, nil
		},
	}

	svc, err := NewService(repo)
	if err != nil {
		t.Fatalf("NewService error: %v", err)
	}

	got, err := svc.Get(context.Background(), storeID)
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if got.ID != storeID || got.StoreName != "Loja da Ana" {
		t.Fatalf("unexpected profile: %+v", got)
	}
	if got.Phone == nil || *got.Phone != phone {
		t.Fatalf("expected phone %q got %v", phone, got.Phone)
	}
}

func TestService_GetMissingProfile(t *testing.T) {
	svc, err := NewService(&fakeStoreRepo{})
	if err != nil {
		t.Fatalf("NewService error: %v", err)
	}

	_, err = svc.Get(context.Background(), uuid.New())
	if pkgerrors.CodeOf(err) != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestService_UpsertTrimsName(t *testing.T) {
	storeID := uuid.New()
	var saved *models.StoreProfile
	repo := &fakeStoreRepo{
		upsertFn: func(ctx context.Context, profile *models.StoreProfile) error {
			saved = profile
			return nil
		},
	}

	svc, err := NewService(repo)
	if err != nil {
		t.Fatalf("NewService error: %v", err)
	}

	got, err := svc.Upsert(context.Background(), storeID, UpsertProfileInput{StoreName: "  Loja da Ana  "})
	if err != nil {
		t.Fatalf("Upsert error: %v", err)
	}
	if saved == nil || saved.ID != storeID || saved.StoreName != "Loja da Ana" {
		t.Fatalf("unexpected upsert payload: %+v", saved)
	}
	if got.StoreName != "Loja da Ana" {
		t.Fatalf("unexpected dto: %+v", got)
	}
}

func TestService_UpsertRejectsBlankName(t *testing.T) {
	svc, err := NewService(&fakeStoreRepo{})
	if err != nil {
		t.Fatalf("NewService error: %v", err)
	}

	_, err = svc.Upsert(context.Background(), uuid.New(), UpsertProfileInput{StoreName: "   "})
	if pkgerrors.CodeOf(err) != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestService_UpsertRejectsMissingStore(t *testing.T) {
	svc, err := NewService(&fakeStoreRepo{})
	if err != nil {
		t.Fatalf("NewService error: %v", err)
	}

	_, err = svc.Upsert(context.Background(), uuid.Nil, UpsertProfileInput{StoreName: "Loja"})
	if pkgerrors.CodeOf(err) != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}
