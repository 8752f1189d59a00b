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

type CategoryRequest struct {
	Name    string `json:"name"`
	BrandID string `json:"brand_id"`
}

// --- Interface ---

type CategoryService interface {
	List(ctx context.Context, brandID *uuid.UUID, search string, page, limit int) ([]model.Category, int64, error)
	Get(ctx context.Context, id uuid.UUID) (*model.Category, error)
	Create(ctx context.Context, req CategoryRequest) (*model.Category, error)
	Update(ctx context.Context, id uuid.UUID, req CategoryRequest) (*model.Category, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Copy(ctx context.Context, id uuid.UUID) (*model.Category, error)
}

type categoryService struct {
	categoryRepo repository.CategoryRepository
	brandRepo    repository.BrandRepository
}

func NewCategoryService(categoryRepo repository.CategoryRepository, brandRepo repository.BrandRepository) CategoryService {
	return &categoryService{categoryRepo: categoryRepo, brandRepo: brandRepo}
}

// --- Implementation ---

func (s *categoryService) validate(ctx context.Context, req CategoryRequest) (string, uuid.UUID, error) {
	ve := apperror.NewValidation()

	name := strings.TrimSpace(req.Name)
	if name == "" {
		ve.Add("name", "required")
	}

	var brandID uuid.UUID
	if req.BrandID == "" {
		ve.Add("brand_id", "required")
	} else {
		parsed, err := uuid.Parse(req.BrandID)
		if err != nil {
			ve.Add("brand_id", "must be a valid id")
		} else if _, err := s.brandRepo.FindByID(ctx, parsed); err != nil {
			if errors.Is(err, repository.ErrRecordNotFound) {
				ve.Add("brand_id", "brand does not exist")
			} else {
				return "", uuid.Nil, err
			}
		} else {
			brandID = parsed
		}
	}

	return name, brandID, ve.ErrOrNil()
}

func (s *categoryService) List(ctx context.Context, brandID *uuid.UUID, search string, page, limit int) ([]model.Category, int64, error) {
	categories, total, err := s.categoryRepo.List(ctx, brandID, search, page, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to fetch categories: %w", err)
	}
	return categories, total, nil
}

func (s *categoryService) Get(ctx context.Context, id uuid.UUID) (*model.Category, error) {
	category, err := s.categoryRepo.FindByIDWithBrand(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrRecordNotFound) {
			return nil, apperror.ErrNotFound
		}
		return nil, err
	}
	return category, nil
}

func (s *categoryService) Create(ctx context.Context, req CategoryRequest) (*model.Category, error) {
	name, brandID, err := s.validate(ctx, req)
	if err != nil {
		return nil, err
	}

	category := &model.Category{Name: name, BrandID: brandID}
	if err := s.categoryRepo.Create(ctx, category); err != nil {
		return nil, fmt.Errorf("failed to create category: %w", err)
	}
	return s.Get(ctx, category.ID)
}

func (s *categoryService) Update(ctx context.Context, id uuid.UUID, req CategoryRequest) (*model.Category, error) {
	category, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	name, brandID, err := s.validate(ctx, req)
	if err != nil {
		return nil, err
	}

	category.Name = name
	category.BrandID = brandID
	category.Brand = nil
	if err := s.categoryRepo.Save(ctx, category); err != nil {
		return nil, fmt.Errorf("failed to update category: %w", err)
	}
	return s.Get(ctx, id)
}

// Delete removes the category; its products go with it via the database cascade.
func (s *categoryService) Delete(ctx context.Context, id uuid.UUID) error {
	rows, err := s.categoryRepo.DeleteByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}
	if rows == 0 {
		return apperror.ErrNotFound
	}
	return nil
}

func (s *categoryService) Copy(ctx context.Context, id uuid.UUID) (*model.Category, error) {
	original, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.Create(ctx, CategoryRequest{
		Name:    copyName(original.Name),
		BrandID: original.BrandID.String(),
	})
}
