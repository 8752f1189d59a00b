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

type TransporteurRequest struct {
	DriverName  string `json:"driver_name"`
	Plate       string `json:"plate"`
	NationalID  string `json:"national_id"`
	Phone       string `json:"phone"`
	VehicleType string `json:"vehicle_type"`
}

type TransporteurService interface {
	List(ctx context.Context, search string, page, limit int) ([]model.Transporteur, int64, error)
	Get(ctx context.Context, id uuid.UUID) (*model.Transporteur, error)
	Create(ctx context.Context, req TransporteurRequest) (*model.Transporteur, error)
	Update(ctx context.Context, id uuid.UUID, req TransporteurRequest) (*model.Transporteur, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type transporteurService struct {
	transporteurRepo repository.TransporteurRepository
}

func NewTransporteurService(transporteurRepo repository.TransporteurRepository) TransporteurService {
	return &transporteurService{transporteurRepo: transporteurRepo}
}

func (s *transporteurService) validate(req TransporteurRequest) error {
	ve := apperror.NewValidation()

	if strings.TrimSpace(req.DriverName) == "" {
		ve.Add("driver_name", "required")
	}
	if strings.TrimSpace(req.Plate) == "" {
		ve.Add("plate", "required")
	}

	return ve.ErrOrNil()
}

func (s *transporteurService) List(ctx context.Context, search string, page, limit int) ([]model.Transporteur, int64, error) {
	transporteurs, total, err := s.transporteurRepo.List(ctx, search, page, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to fetch transporteurs: %w", err)
	}
	return transporteurs, total, nil
}

func (s *transporteurService) Get(ctx context.Context, id uuid.UUID) (*model.Transporteur, error) {
	transporteur, err := s.transporteurRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrRecordNotFound) {
			return nil, apperror.ErrNotFound
		}
		return nil, err
	}
	return transporteur, nil
}

func (s *transporteurService) Create(ctx context.Context, req TransporteurRequest) (*model.Transporteur, error) {
	if err := s.validate(req); err != nil {
		return nil, err
	}

	transporteur := &model.Transporteur{
		DriverName:  strings.TrimSpace(req.DriverName),
		Plate:       strings.TrimSpace(req.Plate),
		NationalID:  strings.TrimSpace(req.NationalID),
		Phone:       strings.TrimSpace(req.Phone),
		VehicleType: strings.TrimSpace(req.VehicleType),
	}
	if err := s.transporteurRepo.Create(ctx, transporteur); err != nil {
		return nil, fmt.Errorf("failed to create transporteur: %w", err)
	}
	return transporteur, nil
}

func (s *transporteurService) Update(ctx context.Context, id uuid.UUID, req TransporteurRequest) (*model.Transporteur, error) {
	transporteur, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.validate(req); err != nil {
		return nil, err
	}

	transporteur.DriverName = strings.TrimSpace(req.DriverName)
	transporteur.Plate = strings.TrimSpace(req.Plate)
	transporteur.NationalID = strings.TrimSpace(req.NationalID)
	transporteur.Phone = strings.TrimSpace(req.Phone)
	transporteur.VehicleType = strings.TrimSpace(req.VehicleType)
	if err := s.transporteurRepo.Save(ctx, transporteur); err != nil {
		return nil, fmt.Errorf("failed to update transporteur: %w", err)
	}
	return transporteur, nil
}

// Delete removes the carrier along with its stock entries (cascade).
func (s *transporteurService) Delete(ctx context.Context, id uuid.UUID) error {
	rows, err := s.transporteurRepo.DeleteByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to delete transporteur: %w", err)
	}
	if rows == 0 {
		return apperror.ErrNotFound
	}
	return nil
}
