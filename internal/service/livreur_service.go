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

type LivreurRequest struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

type LivreurService interface {
	List(ctx context.Context, search string, page, limit int) ([]model.Livreur, int64, error)
	Get(ctx context.Context, id uuid.UUID) (*model.Livreur, error)
	Create(ctx context.Context, req LivreurRequest) (*model.Livreur, error)
	Update(ctx context.Context, id uuid.UUID, req LivreurRequest) (*model.Livreur, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type livreurService struct {
	livreurRepo repository.LivreurRepository
}

func NewLivreurService(livreurRepo repository.LivreurRepository) LivreurService {
	return &livreurService{livreurRepo: livreurRepo}
}

func (s *livreurService) validate(req LivreurRequest) (string, string, error) {
	ve := apperror.NewValidation()

	name := strings.TrimSpace(req.Name)
	if name == "" {
		ve.Add("name", "required")
	}

	return name, strings.TrimSpace(req.Phone), ve.ErrOrNil()
}

func (s *livreurService) List(ctx context.Context, search string, page, limit int) ([]model.Livreur, int64, error) {
	livreurs, total, err := s.livreurRepo.List(ctx, search, page, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to fetch livreurs: %w", err)
	}
	return livreurs, total, nil
}

func (s *livreurService) Get(ctx context.Context, id uuid.UUID) (*model.Livreur, error) {
	livreur, err := s.livreurRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrRecordNotFound) {
			return nil, apperror.ErrNotFound
		}
		return nil, err
	}
	return livreur, nil
}

func (s *livreurService) Create(ctx context.Context, req LivreurRequest) (*model.Livreur, error) {
	name, phone, err := s.validate(req)
	if err != nil {
		return nil, err
	}

	livreur := &model.Livreur{Name: name, Phone: phone}
	if err := s.livreurRepo.Create(ctx, livreur); err != nil {
		return nil, fmt.Errorf("failed to create livreur: %w", err)
	}
	return livreur, nil
}

func (s *livreurService) Update(ctx context.Context, id uuid.UUID, req LivreurRequest) (*model.Livreur, error) {
	livreur, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	name, phone, err := s.validate(req)
	if err != nil {
		return nil, err
	}

	livreur.Name = name
	livreur.Phone = phone
	if err := s.livreurRepo.Save(ctx, livreur); err != nil {
		return nil, fmt.Errorf("failed to update livreur: %w", err)
	}
	return livreur, nil
}

func (s *livreurService) Delete(ctx context.Context, id uuid.UUID) error {
	rows, err := s.livreurRepo.DeleteByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to delete livreur: %w", err)
	}
	if rows == 0 {
		return apperror.ErrNotFound
	}
	return nil
}
