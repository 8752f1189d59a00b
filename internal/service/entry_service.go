package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"commerce/internal/apperror"
	"commerce/internal/model"
	"commerce/internal/repository"

	"github.com/google/uuid"
)

// Publisher pushes domain events to connected dashboard clients.
// The websocket hub satisfies it; a nil publisher disables the feed.
type Publisher interface {
	Publish(eventType string, data interface{})
}

// --- DTOs ---

type CreateEntryRequest struct {
	Ref            string `json:"ref"`
	PurchasePrice  string `json:"purchase_price"`
	Quantity       int    `json:"quantity"`
	BLNumber       string `json:"bl_number"`
	LoadDate       string `json:"load_date"`   // RFC 3339, optional
	UnloadDate     string `json:"unload_date"` //
	ShortageQty    int    `json:"shortage_qty"`
	ProductID      string `json:"product_id"`
	TransporteurID string `json:"transporteur_id"`
}

type UpdateEntryRequest struct {
	Ref            *string `json:"ref"`
	PurchasePrice  *string `json:"purchase_price"`
	Quantity       *int    `json:"quantity"`
	BLNumber       *string `json:"bl_number"`
	LoadDate       *string `json:"load_date"`
	UnloadDate     *string `json:"unload_date"`
	ShortageQty    *int    `json:"shortage_qty"`
	ProductID      *string `json:"product_id"`
	TransporteurID *string `json:"transporteur_id"`
}

// --- Interface ---

type EntryService interface {
	List(ctx context.Context, productID, transporteurID *uuid.UUID, page, limit int) ([]model.StockEntry, int64, error)
	Get(ctx context.Context, id uuid.UUID) (*model.StockEntry, error)
	Create(ctx context.Context, actorID uuid.UUID, req CreateEntryRequest) (*model.StockEntry, error)
	Update(ctx context.Context, actorID, id uuid.UUID, req UpdateEntryRequest) (*model.StockEntry, error)
	Delete(ctx context.Context, actorID, id uuid.UUID) error
}

type entryService struct {
	entryRepo        repository.StockEntryRepository
	productRepo      repository.ProductRepository
	transporteurRepo repository.TransporteurRepository
	audit            AuditService
	hub              Publisher
}

func NewEntryService(
	entryRepo repository.StockEntryRepository,
	productRepo repository.ProductRepository,
	transporteurRepo repository.TransporteurRepository,
	audit AuditService,
	hub Publisher,
) EntryService {
	return &entryService{
		entryRepo:        entryRepo,
		productRepo:      productRepo,
		transporteurRepo: transporteurRepo,
		audit:            audit,
		hub:              hub,
	}
}

// --- Implementation ---

func parseDate(ve *apperror.ValidationError, field, value string) *time.Time {
	if value == "" {
		return nil
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		// accept plain dates from the entry form
		t, err = time.Parse("2006-01-02", value)
	}
	if err != nil {
		ve.Add(field, "must be a valid date")
		return nil
	}
	return &t
}

func (s *entryService) resolveProduct(ctx context.Context, ve *apperror.ValidationError, raw string) (uuid.UUID, error) {
	if raw == "" {
		ve.Add("product_id", "required")
		return uuid.Nil, nil
	}
	parsed, err := uuid.Parse(raw)
	if err != nil {
		ve.Add("product_id", "must be a valid id")
		return uuid.Nil, nil
	}
	if _, err := s.productRepo.FindByID(ctx, parsed); err != nil {
		if errors.Is(err, repository.ErrRecordNotFound) {
			ve.Add("product_id", "product does not exist")
			return uuid.Nil, nil
		}
		return uuid.Nil, err
	}
	return parsed, nil
}

func (s *entryService) resolveTransporteur(ctx context.Context, ve *apperror.ValidationError, raw string) (uuid.UUID, error) {
	if raw == "" {
		ve.Add("transporteur_id", "required")
		return uuid.Nil, nil
	}
	parsed, err := uuid.Parse(raw)
	if err != nil {
		ve.Add("transporteur_id", "must be a valid id")
		return uuid.Nil, nil
	}
	if _, err := s.transporteurRepo.FindByID(ctx, parsed); err != nil {
		if errors.Is(err, repository.ErrRecordNotFound) {
			ve.Add("transporteur_id", "transporteur does not exist")
			return uuid.Nil, nil
		}
		return uuid.Nil, err
	}
	return parsed, nil
}

func (s *entryService) publish(eventType string, data interface{}) {
	if s.hub != nil {
		s.hub.Publish(eventType, data)
	}
}

func (s *entryService) List(ctx context.Context, productID, transporteurID *uuid.UUID, page, limit int) ([]model.StockEntry, int64, error) {
	entries, total, err := s.entryRepo.List(ctx, productID, transporteurID, page, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to fetch entrees: %w", err)
	}
	return entries, total, nil
}

func (s *entryService) Get(ctx context.Context, id uuid.UUID) (*model.StockEntry, error) {
	entry, err := s.entryRepo.FindByIDWithRelations(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrRecordNotFound) {
			return nil, apperror.ErrNotFound
		}
		return nil, err
	}
	return entry, nil
}

func (s *entryService) Create(ctx context.Context, actorID uuid.UUID, req CreateEntryRequest) (*model.StockEntry, error) {
	ve := apperror.NewValidation()

	ref := strings.TrimSpace(req.Ref)
	if ref == "" {
		ve.Add("ref", "required")
	}
	price := parseAmount(ve, "purchase_price", req.PurchasePrice, true)
	if req.Quantity < 1 {
		ve.Add("quantity", "must be at least 1")
	}
	if req.ShortageQty < 0 {
		ve.Add("shortage_qty", "must not be negative")
	}
	loadDate := parseDate(ve, "load_date", req.LoadDate)
	unloadDate := parseDate(ve, "unload_date", req.UnloadDate)
	if loadDate != nil && unloadDate != nil && unloadDate.Before(*loadDate) {
		ve.Add("unload_date", "must not precede load_date")
	}

	productID, err := s.resolveProduct(ctx, ve, req.ProductID)
	if err != nil {
		return nil, err
	}
	transporteurID, err := s.resolveTransporteur(ctx, ve, req.TransporteurID)
	if err != nil {
		return nil, err
	}

	if err := ve.ErrOrNil(); err != nil {
		return nil, err
	}

	entry := &model.StockEntry{
		Ref:            ref,
		PurchasePrice:  price,
		Quantity:       req.Quantity,
		BLNumber:       strings.TrimSpace(req.BLNumber),
		LoadDate:       loadDate,
		UnloadDate:     unloadDate,
		ShortageQty:    req.ShortageQty,
		ProductID:      productID,
		TransporteurID: transporteurID,
	}
	if err := s.entryRepo.Create(ctx, entry); err != nil {
		return nil, fmt.Errorf("failed to create entree: %w", err)
	}

	s.audit.Record(ctx, actorID, model.ActionCreate, "entrees", entry.ID.String(), entry.Ref)

	created, err := s.Get(ctx, entry.ID)
	if err != nil {
		return nil, err
	}
	s.publish("entree.created", created)
	return created, nil
}

func (s *entryService) Update(ctx context.Context, actorID, id uuid.UUID, req UpdateEntryRequest) (*model.StockEntry, error) {
	entry, err := s.entryRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrRecordNotFound) {
			return nil, apperror.ErrNotFound
		}
		return nil, err
	}

	ve := apperror.NewValidation()

	if req.Ref != nil {
		ref := strings.TrimSpace(*req.Ref)
		if ref == "" {
			ve.Add("ref", "required")
		}
		entry.Ref = ref
	}
	if req.PurchasePrice != nil {
		entry.PurchasePrice = parseAmount(ve, "purchase_price", *req.PurchasePrice, true)
	}
	if req.Quantity != nil {
		if *req.Quantity < 1 {
			ve.Add("quantity", "must be at least 1")
		}
		entry.Quantity = *req.Quantity
	}
	if req.BLNumber != nil {
		entry.BLNumber = strings.TrimSpace(*req.BLNumber)
	}
	if req.LoadDate != nil {
		entry.LoadDate = parseDate(ve, "load_date", *req.LoadDate)
	}
	if req.UnloadDate != nil {
		entry.UnloadDate = parseDate(ve, "unload_date", *req.UnloadDate)
	}
	if entry.LoadDate != nil && entry.UnloadDate != nil && entry.UnloadDate.Before(*entry.LoadDate) {
		ve.Add("unload_date", "must not precede load_date")
	}
	if req.ShortageQty != nil {
		if *req.ShortageQty < 0 {
			ve.Add("shortage_qty", "must not be negative")
		}
		entry.ShortageQty = *req.ShortageQty
	}
	if req.ProductID != nil {
		productID, err := s.resolveProduct(ctx, ve, *req.ProductID)
		if err != nil {
			return nil, err
		}
		if productID != uuid.Nil {
			entry.ProductID = productID
		}
	}
	if req.TransporteurID != nil {
		transporteurID, err := s.resolveTransporteur(ctx, ve, *req.TransporteurID)
		if err != nil {
			return nil, err
		}
		if transporteurID != uuid.Nil {
			entry.TransporteurID = transporteurID
		}
	}

	if err := ve.ErrOrNil(); err != nil {
		return nil, err
	}

	entry.Product = nil
	entry.Transporteur = nil
	if err := s.entryRepo.Save(ctx, entry); err != nil {
		return nil, fmt.Errorf("failed to update entree: %w", err)
	}

	s.audit.Record(ctx, actorID, model.ActionUpdate, "entrees", entry.ID.String(), entry.Ref)

	updated, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	s.publish("entree.updated", updated)
	return updated, nil
}

func (s *entryService) Delete(ctx context.Context, actorID, id uuid.UUID) error {
	rows, err := s.entryRepo.DeleteByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to delete entree: %w", err)
	}
	if rows == 0 {
		return apperror.ErrNotFound
	}

	s.audit.Record(ctx, actorID, model.ActionDelete, "entrees", id.String(), "")
	s.publish("entree.deleted", map[string]string{"id": id.String()})
	return nil
}
