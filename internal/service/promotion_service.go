package service

import (
	"context"
	"errors"
	"fmt"

	"commerce/internal/apperror"
	"commerce/internal/model"
	"commerce/internal/repository"

	"github.com/google/uuid"
)

// --- DTOs ---

type CreatePromotionRequest struct {
	ProductID        string `json:"product_id"`
	OfferedProductID string `json:"offered_product_id"`
	PromotedQty      int    `json:"promoted_qty"`
	OfferedQty       int    `json:"offered_qty"`
	Active           *bool  `json:"active"`
}

type UpdatePromotionRequest struct {
	ProductID        *string `json:"product_id"`
	OfferedProductID *string `json:"offered_product_id"`
	PromotedQty      *int    `json:"promoted_qty"`
	OfferedQty       *int    `json:"offered_qty"`
	Active           *bool   `json:"active"`
}

// --- Interface ---

type PromotionService interface {
	List(ctx context.Context, page, limit int) ([]model.Promotion, int64, error)
	Get(ctx context.Context, id uuid.UUID) (*model.Promotion, error)
	Create(ctx context.Context, actorID uuid.UUID, req CreatePromotionRequest) (*model.Promotion, error)
	Update(ctx context.Context, actorID, id uuid.UUID, req UpdatePromotionRequest) (*model.Promotion, error)
	Delete(ctx context.Context, actorID, id uuid.UUID) error
}

type promotionService struct {
	promotionRepo repository.PromotionRepository
	productRepo   repository.ProductRepository
	audit         AuditService
}

func NewPromotionService(promotionRepo repository.PromotionRepository, productRepo repository.ProductRepository, audit AuditService) PromotionService {
	return &promotionService{promotionRepo: promotionRepo, productRepo: productRepo, audit: audit}
}

// --- Implementation ---

func (s *promotionService) resolveProduct(ctx context.Context, ve *apperror.ValidationError, field, raw string) (uuid.UUID, error) {
	if raw == "" {
		ve.Add(field, "required")
		return uuid.Nil, nil
	}
	parsed, err := uuid.Parse(raw)
	if err != nil {
		ve.Add(field, "must be a valid id")
		return uuid.Nil, nil
	}
	if _, err := s.productRepo.FindByID(ctx, parsed); err != nil {
		if errors.Is(err, repository.ErrRecordNotFound) {
			ve.Add(field, "product does not exist")
			return uuid.Nil, nil
		}
		return uuid.Nil, err
	}
	return parsed, nil
}

func (s *promotionService) List(ctx context.Context, page, limit int) ([]model.Promotion, int64, error) {
	promotions, total, err := s.promotionRepo.List(ctx, page, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to fetch promotions: %w", err)
	}
	return promotions, total, nil
}

func (s *promotionService) Get(ctx context.Context, id uuid.UUID) (*model.Promotion, error) {
	promotion, err := s.promotionRepo.FindByIDWithProducts(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrRecordNotFound) {
			return nil, apperror.ErrNotFound
		}
		return nil, err
	}
	return promotion, nil
}

func (s *promotionService) Create(ctx context.Context, actorID uuid.UUID, req CreatePromotionRequest) (*model.Promotion, error) {
	ve := apperror.NewValidation()

	productID, err := s.resolveProduct(ctx, ve, "product_id", req.ProductID)
	if err != nil {
		return nil, err
	}
	offeredID, err := s.resolveProduct(ctx, ve, "offered_product_id", req.OfferedProductID)
	if err != nil {
		return nil, err
	}
	if req.PromotedQty < 1 {
		ve.Add("promoted_qty", "must be at least 1")
	}
	if req.OfferedQty < 1 {
		ve.Add("offered_qty", "must be at least 1")
	}
	if err := ve.ErrOrNil(); err != nil {
		return nil, err
	}

	active := true
	if req.Active != nil {
		active = *req.Active
	}

	promotion := &model.Promotion{
		ProductID:        productID,
		OfferedProductID: offeredID,
		PromotedQty:      req.PromotedQty,
		OfferedQty:       req.OfferedQty,
		Active:           active,
	}
	if err := s.promotionRepo.Create(ctx, promotion); err != nil {
		return nil, fmt.Errorf("failed to create promotion: %w", err)
	}

	s.audit.Record(ctx, actorID, model.ActionCreate, "promotions", promotion.ID.String(), "")
	return s.Get(ctx, promotion.ID)
}

func (s *promotionService) Update(ctx context.Context, actorID, id uuid.UUID, req UpdatePromotionRequest) (*model.Promotion, error) {
	promotion, err := s.promotionRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrRecordNotFound) {
			return nil, apperror.ErrNotFound
		}
		return nil, err
	}

	ve := apperror.NewValidation()

	if req.ProductID != nil {
		productID, err := s.resolveProduct(ctx, ve, "product_id", *req.ProductID)
		if err != nil {
			return nil, err
		}
		if productID != uuid.Nil {
			promotion.ProductID = productID
		}
	}
	if req.OfferedProductID != nil {
		offeredID, err := s.resolveProduct(ctx, ve, "offered_product_id", *req.OfferedProductID)
		if err != nil {
			return nil, err
		}
		if offeredID != uuid.Nil {
			promotion.OfferedProductID = offeredID
		}
	}
	if req.PromotedQty != nil {
		if *req.PromotedQty < 1 {
			ve.Add("promoted_qty", "must be at least 1")
		}
		promotion.PromotedQty = *req.PromotedQty
	}
	if req.OfferedQty != nil {
		if *req.OfferedQty < 1 {
			ve.Add("offered_qty", "must be at least 1")
		}
		promotion.OfferedQty = *req.OfferedQty
	}
	if req.Active != nil {
		promotion.Active = *req.Active
	}

	if err := ve.ErrOrNil(); err != nil {
		return nil, err
	}

	promotion.Product = nil
	promotion.OfferedProduct = nil
	if err := s.promotionRepo.Save(ctx, promotion); err != nil {
		return nil, fmt.Errorf("failed to update promotion: %w", err)
	}

	s.audit.Record(ctx, actorID, model.ActionUpdate, "promotions", promotion.ID.String(), "")
	return s.Get(ctx, id)
}

func (s *promotionService) Delete(ctx context.Context, actorID, id uuid.UUID) error {
	rows, err := s.promotionRepo.DeleteByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to delete promotion: %w", err)
	}
	if rows == 0 {
		return apperror.ErrNotFound
	}

	s.audit.Record(ctx, actorID, model.ActionDelete, "promotions", id.String(), "")
	return nil
}
