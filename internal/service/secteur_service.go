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

type SecteurRequest struct {
	Name    string `json:"name"`
	VilleID string `json:"ville_id"`
}

type SecteurService interface {
	List(ctx context.Context, villeID *uuid.UUID, page, limit int) ([]model.Secteur, int64, error)
	ListByVille(ctx context.Context, villeID uuid.UUID) ([]model.Secteur, error)
	Get(ctx context.Context, id uuid.UUID) (*model.Secteur, error)
	Create(ctx context.Context, req SecteurRequest) (*model.Secteur, error)
	Update(ctx context.Context, id uuid.UUID, req SecteurRequest) (*model.Secteur, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type secteurService struct {
	secteurRepo repository.SecteurRepository
	villeRepo   repository.VilleRepository
}

func NewSecteurService(secteurRepo repository.SecteurRepository, villeRepo repository.VilleRepository) SecteurService {
	return &secteurService{secteurRepo: secteurRepo, villeRepo: villeRepo}
}

func (s *secteurService) validate(ctx context.Context, req SecteurRequest) (string, uuid.UUID, error) {
	ve := apperror.NewValidation()

	name := strings.TrimSpace(req.Name)
	if name == "" {
		ve.Add("name", "required")
	}

	var villeID uuid.UUID
	if req.VilleID == "" {
		ve.Add("ville_id", "required")
	} else if parsed, err := uuid.Parse(req.VilleID); err != nil {
		ve.Add("ville_id", "must be a valid id")
	} else if _, err := s.villeRepo.FindByID(ctx, parsed); err != nil {
		if errors.Is(err, repository.ErrRecordNotFound) {
			ve.Add("ville_id", "ville does not exist")
		} else {
			return "", uuid.Nil, err
		}
	} else {
		villeID = parsed
	}

	return name, villeID, ve.ErrOrNil()
}

func (s *secteurService) List(ctx context.Context, villeID *uuid.UUID, page, limit int) ([]model.Secteur, int64, error) {
	secteurs, total, err := s.secteurRepo.List(ctx, villeID, page, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to fetch secteurs: %w", err)
	}
	return secteurs, total, nil
}

func (s *secteurService) ListByVille(ctx context.Context, villeID uuid.UUID) ([]model.Secteur, error) {
	secteurs, err := s.secteurRepo.ListByVille(ctx, villeID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch secteurs for ville: %w", err)
	}
	return secteurs, nil
}

func (s *secteurService) Get(ctx context.Context, id uuid.UUID) (*model.Secteur, error) {
	secteur, err := s.secteurRepo.FindByIDWithVille(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrRecordNotFound) {
			return nil, apperror.ErrNotFound
		}
		return nil, err
	}
	return secteur, nil
}

func (s *secteurService) Create(ctx context.Context, req SecteurRequest) (*model.Secteur, error) {
	name, villeID, err := s.validate(ctx, req)
	if err != nil {
		return nil, err
	}

	secteur := &model.Secteur{Name: name, VilleID: villeID}
	if err := s.secteurRepo.Create(ctx, secteur); err != nil {
		return nil, fmt.Errorf("failed to create secteur: %w", err)
	}
	return s.Get(ctx, secteur.ID)
}

func (s *secteurService) Update(ctx context.Context, id uuid.UUID, req SecteurRequest) (*model.Secteur, error) {
	secteur, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	name, villeID, err := s.validate(ctx, req)
	if err != nil {
		return nil, err
	}

	secteur.Name = name
	secteur.VilleID = villeID
	secteur.Ville = nil
	if err := s.secteurRepo.Save(ctx, secteur); err != nil {
		return nil, fmt.Errorf("failed to update secteur: %w", err)
	}
	return s.Get(ctx, id)
}

func (s *secteurService) Delete(ctx context.Context, id uuid.UUID) error {
	rows, err := s.secteurRepo.DeleteByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to delete secteur: %w", err)
	}
	if rows == 0 {
		return apperror.ErrNotFound
	}
	return nil
}
