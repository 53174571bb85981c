package notes

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/minicrmhq/minicrm-backend/pkg/db/models"
	pkgerrors "github.com/minicrmhq/minicrm-backend/pkg/errors"
	"gorm.io/gorm"
)

type noteRepository interface {
	Create(ctx context.Context, note *models.Note) error
	ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]models.Note, error)
}

type customerRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Customer, error)
}

// Service records free-text interaction notes. Notes are append-only.
type Service interface {
	Add(ctx context.Context, storeID, customerID uuid.UUID, text string) (*models.Note, error)
	ListByCustomer(ctx context.Context, storeID, customerID uuid.UUID) ([]models.Note, error)
}

type service struct {
	repo      noteRepository
	customers customerRepository
}

// NewService wires a note service with the provided repositories.
func NewService(repo noteRepository, customers customerRepository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("note repository required")
	}
	if customers == nil {
		return nil, fmt.Errorf("customer repository required")
	}
	return &service{repo: repo, customers: customers}, nil
}

func (s *service) Add(ctx context.Context, storeID, customerID uuid.UUID, text string) (*models.Note, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "note text is required")
	}

	customer, err := resolveCustomer(ctx, s.customers, storeID, customerID)
	if err != nil {
		return nil, err
	}

	note := &models.Note{
		CustomerID: customer.ID,
		StoreID:    storeID,
		Note:       text,
	}
	if err := s.repo.Create(ctx, note); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create note")
	}
	return note, nil
}

func (s *service) ListByCustomer(ctx context.Context, storeID, customerID uuid.UUID) ([]models.Note, error) {
	if _, err := resolveCustomer(ctx, s.customers, storeID, customerID); err != nil {
		return nil, err
	}
	notes, err := s.repo.ListByCustomer(ctx, customerID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list notes")
	}
	return notes, nil
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
