package stores

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/minicrmhq/minicrm-backend/pkg/db/models"
	pkgerrors "github.com/minicrmhq/minicrm-backend/pkg/errors"
)

type storeRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.StoreProfile, error)
	Upsert(ctx context.Context, profile *models.StoreProfile) error
}

// UpsertProfileInput carries the editable profile fields.
type UpsertProfileInput struct {
	StoreName string
	Phone     *string
}

// ProfileDTO is the outward shape of a store profile.
type ProfileDTO struct {
	ID        uuid.UUID `json:"id"`
	StoreName string    `json:"store_name"`
	Phone     *string   `json:"phone,omitempty"`
}

// Service manages the tenant profile behind the store identity header.
// Owner identity itself lives outside this service; the profile row only
// labels the tenant.
type Service interface {
	Get(ctx context.Context, storeID uuid.UUID) (*ProfileDTO, error)
	Upsert(ctx context.Context, storeID uuid.UUID, input UpsertProfileInput) (*ProfileDTO, error)
}

type service struct {
	repo storeRepository
}

// NewService wires a store profile service with the provided repository.
func NewService(repo storeRepository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("store repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) Get(ctx context.Context, storeID uuid.UUID) (*ProfileDTO, error) {
	if storeID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "store id is required")
	}
	profile, err := s.repo.FindByID(ctx, storeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "store profile not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load store profile")
	}
	return toDTO(profile), nil
}

func (s *service) Upsert(ctx context.Context, storeID uuid.UUID, input UpsertProfileInput) (*ProfileDTO, error) {
	if storeID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "store id is required")
	}
	name := strings.TrimSpace(input.StoreName)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "store name is required")
	}

	profile := &models.StoreProfile{
		ID:        storeID,
		OwnerID:   storeID,
		StoreName: name,
		Phone:     input.Phone,
	}
	if err := s.repo.Upsert(ctx, profile); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "upsert store profile")
	}
	return toDTO(profile), nil
}

func toDTO(profile *models.StoreProfile) *ProfileDTO {
	return &ProfileDTO{
		ID:        profile.ID,
		StoreName: profile.StoreName,
		Phone:     profile.Phone,
	}
}
