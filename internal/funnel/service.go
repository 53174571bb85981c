package funnel

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/minicrmhq/minicrm-backend/pkg/db/models"
	"github.com/minicrmhq/minicrm-backend/pkg/enums"
	pkgerrors "github.com/minicrmhq/minicrm-backend/pkg/errors"
	"gorm.io/gorm"
)

type funnelRepository interface {
	Upsert(ctx context.Context, status *models.FunnelStatus) error
	FindByCustomer(ctx context.Context, customerID, storeID uuid.UUID) (*models.FunnelStatus, error)
}

type customerRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Customer, error)
}

// Service tracks each customer's position in the sales funnel.
type Service interface {
	SetStage(ctx context.Context, storeID, customerID uuid.UUID, input SetStageInput) (*models.FunnelStatus, error)
	GetStatus(ctx context.Context, storeID, customerID uuid.UUID) (*models.FunnelStatus, error)
}

type service struct {
	repo      funnelRepository
	customers customerRepository
}

// NewService wires a funnel service with the provided repositories.
func NewService(repo funnelRepository, customers customerRepository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("funnel repository required")
	}
	if customers == nil {
		return nil, fmt.Errorf("customer repository required")
	}
	return &service{repo: repo, customers: customers}, nil
}

// SetStageInput carries the target stage and optional free-text notes.
type SetStageInput struct {
	Stage string
	Notes *string
}

// SetStage moves the customer to the given stage, creating the funnel row on
// first use. Invalid stages are rejected before any store access.
func (s *service) SetStage(ctx context.Context, storeID, customerID uuid.UUID, input SetStageInput) (*models.FunnelStatus, error) {
	stage, err := enums.ParseFunnelStage(input.Stage)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, err.Error())
	}

	customer, err := resolveCustomer(ctx, s.customers, storeID, customerID)
	if err != nil {
		return nil, err
	}

	status := &models.FunnelStatus{
		CustomerID: customer.ID,
		StoreID:    storeID,
		Stage:      stage,
		Notes:      input.Notes,
	}
	if err := s.repo.Upsert(ctx, status); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "upsert funnel stage")
	}
	return s.GetStatus(ctx, storeID, customerID)
}

// GetStatus returns the customer's funnel row. Customers that were never
// staged report the new stage rather than an error.
func (s *service) GetStatus(ctx context.Context, storeID, customerID uuid.UUID) (*models.FunnelStatus, error) {
	customer, err := resolveCustomer(ctx, s.customers, storeID, customerID)
	if err != nil {
		return nil, err
	}

	status, err := s.repo.FindByCustomer(ctx, customer.ID, storeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &models.FunnelStatus{
				CustomerID: customer.ID,
				StoreID:    storeID,
				Stage:      enums.FunnelStageNew,
			}, nil
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load funnel stage")
	}
	return status, nil
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
