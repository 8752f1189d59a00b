package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"commerce/internal/apperror"
	"commerce/internal/model"
	"commerce/internal/repository"

	"github.com/google/uuid"
)

// --- DTOs ---

type BrandRequest struct {
	Name string `json:"name"`
}

// --- Interface ---

type BrandService interface {
	List(ctx context.Context, search string, page, limit int) ([]model.Brand, int64, error)
	Get(ctx context.Context, id uuid.UUID) (*model.Brand, error)
	Create(ctx context.Context, req BrandRequest) (*model.Brand, error)
	Update(ctx context.Context, id uuid.UUID, req BrandRequest) (*model.Brand, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Copy(ctx context.Context, id uuid.UUID) (*model.Brand, error)
}

type brandService struct {
	brandRepo repository.BrandRepository
}

func NewBrandService(brandRepo repository.BrandRepository) BrandService {
	return &brandService{brandRepo: brandRepo}
}

// --- Implementation ---

func (s *brandService) List(ctx context.Context, search string, page, limit int) ([]model.Brand, int64, error) {
	brands, total, err := s.brandRepo.List(ctx, search, page, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to fetch brands: %w", err)
	}
	return brands, total, nil
}

func (s *brandService) Get(ctx context.Context, id uuid.UUID) (*model.Brand, error) {
	brand, err := s.brandRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrRecordNotFound) {
			return nil, apperror.ErrNotFound
		}
		return nil, err
	}
	return brand, nil
}

func (s *brandService) Create(ctx context.Context, req BrandRequest) (*model.Brand, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, apperror.Invalid("name", "required")
	}

	brand := &model.Brand{Name: name}
	if err := s.brandRepo.Create(ctx, brand); err != nil {
		return nil, fmt.Errorf("failed to create brand: %w", err)
	}
	return brand, nil
}

func (s *brandService) Update(ctx context.Context, id uuid.UUID, req BrandRequest) (*model.Brand, error) {
	brand, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, apperror.Invalid("name", "required")
	}

	brand.Name = name
	if err := s.brandRepo.Save(ctx, brand); err != nil {
		return nil, fmt.Errorf("failed to update brand: %w", err)
	}
	return brand, nil
}

// Delete removes the brand. Its categories and products are removed by the
// database cascade, not here.
func (s *brandService) Delete(ctx context.Context, id uuid.UUID) error {
	rows, err := s.brandRepo.DeleteByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to delete brand: %w", err)
	}
	if rows == 0 {
		return apperror.ErrNotFound
	}
	return nil
}

func (s *brandService) Copy(ctx context.Context, id uuid.UUID) (*model.Brand, error) {
	original, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.Create(ctx, BrandRequest{Name: copyName(original.Name)})
}
