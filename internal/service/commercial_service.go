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

type CommercialRequest struct {
	Code     string `json:"code"`
	FullName string `json:"full_name"`
	Phone    string `json:"phone"`
}

type CommercialService interface {
	List(ctx context.Context, search string, page, limit int) ([]model.Commercial, int64, error)
	Get(ctx context.Context, id uuid.UUID) (*model.Commercial, error)
	Create(ctx context.Context, req CommercialRequest) (*model.Commercial, error)
	Update(ctx context.Context, id uuid.UUID, req CommercialRequest) (*model.Commercial, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Copy(ctx context.Context, id uuid.UUID) (*model.Commercial, error)
}

type commercialService struct {
	commercialRepo repository.CommercialRepository
}

func NewCommercialService(commercialRepo repository.CommercialRepository) CommercialService {
	return &commercialService{commercialRepo: commercialRepo}
}

func (s *commercialService) validate(ctx context.Context, req CommercialRequest, excludeID uuid.UUID) error {
	ve := apperror.NewValidation()

	code := strings.TrimSpace(req.Code)
	if code == "" {
		ve.Add("code", "required")
	} else {
		exists, err := s.commercialRepo.CodeExists(ctx, code, excludeID)
		if err != nil {
			return err
		}
		if exists {
			ve.Add("code", "has already been taken")
		}
	}

	if strings.TrimSpace(req.FullName) == "" {
		ve.Add("full_name", "required")
	}

	return ve.ErrOrNil()
}

func (s *commercialService) List(ctx context.Context, search string, page, limit int) ([]model.Commercial, int64, error) {
	commerciaux, total, err := s.commercialRepo.List(ctx, search, page, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to fetch commerciaux: %w", err)
	}
	return commerciaux, total, nil
}

func (s *commercialService) Get(ctx context.Context, id uuid.UUID) (*model.Commercial, error) {
	commercial, err := s.commercialRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrRecordNotFound) {
			return nil, apperror.ErrNotFound
		}
		return nil, err
	}
	return commercial, nil
}

func (s *commercialService) Create(ctx context.Context, req CommercialRequest) (*model.Commercial, error) {
	if err := s.validate(ctx, req, uuid.Nil); err != nil {
		return nil, err
	}

	commercial := &model.Commercial{
		Code:     strings.TrimSpace(req.Code),
		FullName: strings.TrimSpace(req.FullName),
		Phone:    strings.TrimSpace(req.Phone),
	}
	if err := s.commercialRepo.Create(ctx, commercial); err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return nil, apperror.Invalid("code", "has already been taken")
		}
		return nil, fmt.Errorf("failed to create commercial: %w", err)
	}
	return commercial, nil
}

func (s *commercialService) Update(ctx context.Context, id uuid.UUID, req CommercialRequest) (*model.Commercial, error) {
	commercial, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.validate(ctx, req, id); err != nil {
		return nil, err
	}

	commercial.Code = strings.TrimSpace(req.Code)
	commercial.FullName = strings.TrimSpace(req.FullName)
	commercial.Phone = strings.TrimSpace(req.Phone)
	if err := s.commercialRepo.Save(ctx, commercial); err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return nil, apperror.Invalid("code", "has already been taken")
		}
		return nil, fmt.Errorf("failed to update commercial: %w", err)
	}
	return commercial, nil
}

func (s *commercialService) Delete(ctx context.Context, id uuid.UUID) error {
	rows, err := s.commercialRepo.DeleteByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to delete commercial: %w", err)
	}
	if rows == 0 {
		return apperror.ErrNotFound
	}
	return nil
}

// Copy duplicates an agent with a copy-suffixed name. Code and phone must
// stay distinguishable, so their trailing digit run is incremented until the
// code no longer collides.
func (s *commercialService) Copy(ctx context.Context, id uuid.UUID) (*model.Commercial, error) {
	original, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	code := incrementTrailingDigits(original.Code)
	for attempts := 0; attempts < 100; attempts++ {
		exists, err := s.commercialRepo.CodeExists(ctx, code, uuid.Nil)
		if err != nil {
			return nil, err
		}
		if !exists {
			break
		}
		code = incrementTrailingDigits(code)
	}

	phone := original.Phone
	if phone != "" {
		phone = incrementTrailingDigits(phone)
	}

	return s.Create(ctx, CommercialRequest{
		Code:     code,
		FullName: copyName(original.FullName),
		Phone:    phone,
	})
}
