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
	"github.com/shopspring/decimal"
)

// --- DTOs ---

type CreateClientRequest struct {
	Code            string `json:"code"`
	FullName        string `json:"full_name"`
	Phone           string `json:"phone"`
	SpecialDiscount string `json:"special_discount"`
	Percentage      string `json:"percentage"`
	VilleID         string `json:"ville_id"`
	SecteurID       string `json:"secteur_id"`
	CommercialID    string `json:"commercial_id"`
}

type UpdateClientRequest struct {
	Code            *string `json:"code"`
	FullName        *string `json:"full_name"`
	Phone           *string `json:"phone"`
	SpecialDiscount *string `json:"special_discount"`
	Percentage      *string `json:"percentage"`
	VilleID         *string `json:"ville_id"`      // empty string clears the reference
	SecteurID       *string `json:"secteur_id"`    //
	CommercialID    *string `json:"commercial_id"` //
}

// --- Interface ---

type ClientService interface {
	List(ctx context.Context, villeID, secteurID, commercialID *uuid.UUID, search string, page, limit int) ([]model.Client, int64, error)
	Get(ctx context.Context, id uuid.UUID) (*model.Client, error)
	Create(ctx context.Context, req CreateClientRequest) (*model.Client, error)
	Update(ctx context.Context, id uuid.UUID, req UpdateClientRequest) (*model.Client, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type clientService struct {
	clientRepo     repository.ClientRepository
	villeRepo      repository.VilleRepository
	secteurRepo    repository.SecteurRepository
	commercialRepo repository.CommercialRepository
}

func NewClientService(
	clientRepo repository.ClientRepository,
	villeRepo repository.VilleRepository,
	secteurRepo repository.SecteurRepository,
	commercialRepo repository.CommercialRepository,
) ClientService {
	return &clientService{
		clientRepo:     clientRepo,
		villeRepo:      villeRepo,
		secteurRepo:    secteurRepo,
		commercialRepo: commercialRepo,
	}
}

// --- Implementation ---

// percentField validates a percentage string in [0, 100].
func percentField(ve *apperror.ValidationError, field, value string) decimal.Decimal {
	d := parseAmount(ve, field, value, false)
	if d.GreaterThan(decimal.NewFromInt(100)) {
		ve.Add(field, "must not exceed 100")
	}
	return d
}

type parentLookup func(ctx context.Context, id uuid.UUID) error

// resolveOptionalRef parses an optional foreign reference. Empty input
// yields nil (reference cleared).
func resolveOptionalRef(ctx context.Context, ve *apperror.ValidationError, field, raw string, lookup parentLookup) (*uuid.UUID, error) {
	if raw == "" {
		return nil, nil
	}
	parsed, err := uuid.Parse(raw)
	if err != nil {
		ve.Add(field, "must be a valid id")
		return nil, nil
	}
	if err := lookup(ctx, parsed); err != nil {
		if errors.Is(err, repository.ErrRecordNotFound) {
			ve.Add(field, "does not exist")
			return nil, nil
		}
		return nil, err
	}
	return &parsed, nil
}

func (s *clientService) lookupVille(ctx context.Context, id uuid.UUID) error {
	_, err := s.villeRepo.FindByID(ctx, id)
	return err
}

func (s *clientService) lookupSecteur(ctx context.Context, id uuid.UUID) error {
	_, err := s.secteurRepo.FindByID(ctx, id)
	return err
}

func (s *clientService) lookupCommercial(ctx context.Context, id uuid.UUID) error {
	_, err := s.commercialRepo.FindByID(ctx, id)
	return err
}

func (s *clientService) checkCode(ctx context.Context, ve *apperror.ValidationError, code string, excludeID uuid.UUID) error {
	if code == "" {
		ve.Add("code", "required")
		return nil
	}
	exists, err := s.clientRepo.CodeExists(ctx, code, excludeID)
	if err != nil {
		return err
	}
	if exists {
		ve.Add("code", "has already been taken")
	}
	return nil
}

func (s *clientService) List(ctx context.Context, villeID, secteurID, commercialID *uuid.UUID, search string, page, limit int) ([]model.Client, int64, error) {
	clients, total, err := s.clientRepo.List(ctx, villeID, secteurID, commercialID, search, page, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to fetch clients: %w", err)
	}
	return clients, total, nil
}

func (s *clientService) Get(ctx context.Context, id uuid.UUID) (*model.Client, error) {
	client, err := s.clientRepo.FindByIDWithRelations(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrRecordNotFound) {
			return nil, apperror.ErrNotFound
		}
		return nil, err
	}
	return client, nil
}

func (s *clientService) Create(ctx context.Context, req CreateClientRequest) (*model.Client, error) {
	ve := apperror.NewValidation()

	code := strings.TrimSpace(req.Code)
	if err := s.checkCode(ctx, ve, code, uuid.Nil); err != nil {
		return nil, err
	}
	fullName := strings.TrimSpace(req.FullName)
	if fullName == "" {
		ve.Add("full_name", "required")
	}

	discount := percentField(ve, "special_discount", req.SpecialDiscount)
	percentage := percentField(ve, "percentage", req.Percentage)

	villeID, err := resolveOptionalRef(ctx, ve, "ville_id", req.VilleID, s.lookupVille)
	if err != nil {
		return nil, err
	}
	secteurID, err := resolveOptionalRef(ctx, ve, "secteur_id", req.SecteurID, s.lookupSecteur)
	if err != nil {
		return nil, err
	}
	commercialID, err := resolveOptionalRef(ctx, ve, "commercial_id", req.CommercialID, s.lookupCommercial)
	if err != nil {
		return nil, err
	}

	if err := ve.ErrOrNil(); err != nil {
		return nil, err
	}

	client := &model.Client{
		Code:            code,
		FullName:        fullName,
		Phone:           strings.TrimSpace(req.Phone),
		SpecialDiscount: discount,
		Percentage:      percentage,
		VilleID:         villeID,
		SecteurID:       secteurID,
		CommercialID:    commercialID,
	}
	if err := s.clientRepo.Create(ctx, client); err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return nil, apperror.Invalid("code", "has already been taken")
		}
		return nil, fmt.Errorf("failed to create client: %w", err)
	}
	return s.Get(ctx, client.ID)
}

func (s *clientService) Update(ctx context.Context, id uuid.UUID, req UpdateClientRequest) (*model.Client, error) {
	client, err := s.clientRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrRecordNotFound) {
			return nil, apperror.ErrNotFound
		}
		return nil, err
	}

	ve := apperror.NewValidation()

	if req.Code != nil {
		code := strings.TrimSpace(*req.Code)
		if err := s.checkCode(ctx, ve, code, id); err != nil {
			return nil, err
		}
		client.Code = code
	}
	if req.FullName != nil {
		fullName := strings.TrimSpace(*req.FullName)
		if fullName == "" {
			ve.Add("full_name", "required")
		}
		client.FullName = fullName
	}
	if req.Phone != nil {
		client.Phone = strings.TrimSpace(*req.Phone)
	}
	if req.SpecialDiscount != nil {
		client.SpecialDiscount = percentField(ve, "special_discount", *req.SpecialDiscount)
	}
	if req.Percentage != nil {
		client.Percentage = percentField(ve, "percentage", *req.Percentage)
	}
	if req.VilleID != nil {
		villeID, err := resolveOptionalRef(ctx, ve, "ville_id", *req.VilleID, s.lookupVille)
		if err != nil {
			return nil, err
		}
		client.VilleID = villeID
	}
	if req.SecteurID != nil {
		secteurID, err := resolveOptionalRef(ctx, ve, "secteur_id", *req.SecteurID, s.lookupSecteur)
		if err != nil {
			return nil, err
		}
		client.SecteurID = secteurID
	}
	if req.CommercialID != nil {
		commercialID, err := resolveOptionalRef(ctx, ve, "commercial_id", *req.CommercialID, s.lookupCommercial)
		if err != nil {
			return nil, err
		}
		client.CommercialID = commercialID
	}

	if err := ve.ErrOrNil(); err != nil {
		return nil, err
	}

	client.Ville = nil
	client.Secteur = nil
	client.Commercial = nil
	if err := s.clientRepo.Save(ctx, client); err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return nil, apperror.Invalid("code", "has already been taken")
		}
		return nil, fmt.Errorf("failed to update client: %w", err)
	}
	return s.Get(ctx, id)
}

func (s *clientService) Delete(ctx context.Context, id uuid.UUID) error {
	rows, err := s.clientRepo.DeleteByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to delete client: %w", err)
	}
	if rows == 0 {
		return apperror.ErrNotFound
	}
	return nil
}
