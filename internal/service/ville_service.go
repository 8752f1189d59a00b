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

type VilleRequest struct {
	Name string `json:"name"`
}

type VilleService interface {
	List(ctx context.Context, search string, page, limit int) ([]model.Ville, int64, error)
	Get(ctx context.Context, id uuid.UUID) (*model.Ville, error)
	Create(ctx context.Context, req VilleRequest) (*model.Ville, error)
	Update(ctx context.Context, id uuid.UUID, req VilleRequest) (*model.Ville, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Copy(ctx context.Context, id uuid.UUID) (*model.Ville, error)
}

type villeService struct {
	villeRepo repository.VilleRepository
}

func NewVilleService(villeRepo repository.VilleRepository) VilleService {
	return &villeService{villeRepo: villeRepo}
}

func (s *villeService) List(ctx context.Context, search string, page, limit int) ([]model.Ville, int64, error) {
	villes, total, err := s.villeRepo.List(ctx, search, page, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to fetch villes: %w", err)
	}
	return villes, total, nil
}

func (s *villeService) Get(ctx context.Context, id uuid.UUID) (*model.Ville, error) {
	ville, err := s.villeRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrRecordNotFound) {
			return nil, apperror.ErrNotFound
		}
		return nil, err
	}
	return ville, nil
}

func (s *villeService) Create(ctx context.Context, req VilleRequest) (*model.Ville, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, apperror.Invalid("name", "required")
	}

	ville := &model.Ville{Name: name}
	if err := s.villeRepo.Create(ctx, ville); err != nil {
		return nil, fmt.Errorf("failed to create ville: %w", err)
	}
	return ville, nil
}

func (s *villeService) Update(ctx context.Context, id uuid.UUID, req VilleRequest) (*model.Ville, error) {
	ville, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, apperror.Invalid("name", "required")
	}

	ville.Name = name
	if err := s.villeRepo.Save(ctx, ville); err != nil {
		return nil, fmt.Errorf("failed to update ville: %w", err)
	}
	return ville, nil
}

// Delete removes the city. Its sectors cascade away; client references are
// detached by the database (SET NULL), not removed.
func (s *villeService) Delete(ctx context.Context, id uuid.UUID) error {
	rows, err := s.villeRepo.DeleteByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to delete ville: %w", err)
	}
	if rows == 0 {
		return apperror.ErrNotFound
	}
	return nil
}

func (s *villeService) Copy(ctx context.Context, id uuid.UUID) (*model.Ville, error) {
	original, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.Create(ctx, VilleRequest{Name: copyName(original.Name)})
}
