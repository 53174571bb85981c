package loyalty

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/minicrmhq/minicrm-backend/pkg/config"
	"github.com/minicrmhq/minicrm-backend/pkg/db/models"
	pkgerrors "github.com/minicrmhq/minicrm-backend/pkg/errors"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type customerRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Customer, error)
}

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// Service records purchases and keeps customer point totals in sync.
type Service interface {
	RecordPurchase(ctx context.Context, storeID, customerID uuid.UUID, input RecordPurchaseInput) (*models.Purchase, error)
	ListPurchases(ctx context.Context, storeID, customerID uuid.UUID) ([]models.Purchase, error)
}

type service struct {
	repo      Repository
	customers customerRepository
	tx        txRunner
	cfg       config.LoyaltyConfig
}

// NewService wires a loyalty service with the provided repositories.
func NewService(repo Repository, customers customerRepository, tx txRunner, cfg config.LoyaltyConfig) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("loyalty repository required")
	}
	if customers == nil {
		return nil, fmt.Errorf("customer repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	return &service{repo: repo, customers: customers, tx: tx, cfg: cfg}, nil
}

// RecordPurchaseInput captures the data a purchase requires. PointsPerReal
// overrides the store-wide rate when set.
type RecordPurchaseInput struct {
	Value         decimal.Decimal
	PointsPerReal *int
	Description   *string
}

// RecordPurchase appends a purchase to the customer's history and bumps the
// cached total inside one transaction, so the total always equals the sum of
// recorded purchase points.
func (s *service) RecordPurchase(ctx context.Context, storeID, customerID uuid.UUID, input RecordPurchaseInput) (*models.Purchase, error) {
	rate := s.cfg.DefaultPointsPerReal
	if input.PointsPerReal != nil {
		rate = *input.PointsPerReal
	}
	points, err := ComputePoints(input.Value, rate)
	if err != nil {
		return nil, err
	}

	customer, err := resolveCustomer(ctx, s.customers, storeID, customerID)
	if err != nil {
		return nil, err
	}

	purchase := &models.Purchase{
		CustomerID:    customer.ID,
		StoreID:       storeID,
		PurchaseValue: input.Value,
		PointsEarned:  points,
		Description:   input.Description,
	}

	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		if err := repo.Create(ctx, purchase); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create purchase")
		}
		rows, err := repo.IncrementPoints(ctx, customer.ID, points)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "increment customer points")
		}
		if rows == 0 {
			return pkgerrors.New(pkgerrors.CodeNotFound, "customer not found")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return purchase, nil
}

func (s *service) ListPurchases(ctx context.Context, storeID, customerID uuid.UUID) ([]models.Purchase, error) {
	if _, err := resolveCustomer(ctx, s.customers, storeID, customerID); err != nil {
		return nil, err
	}
	purchases, err := s.repo.ListByCustomer(ctx, customerID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list purchases")
	}
	return purchases, nil
}

// resolveCustomer loads a customer and confirms it belongs to the provided
// store. A missing row maps to NotFound; a row owned by another store maps to
// Conflict so cross-store references surface as such instead of vanishing.
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
