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

// Monetary fields travel as strings and are parsed with shopspring/decimal
// so no precision is lost in JSON float round-trips.
type CreateProductRequest struct {
	Ref               string `json:"ref"`
	Label             string `json:"label"`
	PurchasePriceUnit string `json:"purchase_price_unit"`
	SalePriceUnit     string `json:"sale_price_unit"`
	PurchasePriceCase string `json:"purchase_price_case"`
	SalePriceCase     string `json:"sale_price_case"`
	Weight            string `json:"weight"`
	UnitsPerCase      int    `json:"units_per_case"`
	Active            *bool  `json:"active"`
	BrandID           string `json:"brand_id"`
	CategoryID        string `json:"category_id"`
}

type UpdateProductRequest struct {
	Ref               *string `json:"ref"`
	Label             *string `json:"label"`
	PurchasePriceUnit *string `json:"purchase_price_unit"`
	SalePriceUnit     *string `json:"sale_price_unit"`
	PurchasePriceCase *string `json:"purchase_price_case"`
	SalePriceCase     *string `json:"sale_price_case"`
	Weight            *string `json:"weight"`
	UnitsPerCase      *int    `json:"units_per_case"`
	Active            *bool   `json:"active"`
	BrandID           *string `json:"brand_id"`
	CategoryID        *string `json:"category_id"`
}

// --- Interface ---

type ProductService interface {
	List(ctx context.Context, brandID, categoryID *uuid.UUID, search string, page, limit int) ([]model.Product, int64, error)
	Get(ctx context.Context, id uuid.UUID) (*model.Product, error)
	Create(ctx context.Context, actorID uuid.UUID, req CreateProductRequest) (*model.Product, error)
	Update(ctx context.Context, actorID, id uuid.UUID, req UpdateProductRequest) (*model.Product, error)
	Delete(ctx context.Context, actorID, id uuid.UUID) error
}

type productService struct {
	productRepo  repository.ProductRepository
	brandRepo    repository.BrandRepository
	categoryRepo repository.CategoryRepository
	audit        AuditService
}

func NewProductService(
	productRepo repository.ProductRepository,
	brandRepo repository.BrandRepository,
	categoryRepo repository.CategoryRepository,
	audit AuditService,
) ProductService {
	return &productService{
		productRepo:  productRepo,
		brandRepo:    brandRepo,
		categoryRepo: categoryRepo,
		audit:        audit,
	}
}

// --- Implementation ---

func (s *productService) List(ctx context.Context, brandID, categoryID *uuid.UUID, search string, page, limit int) ([]model.Product, int64, error) {
	products, total, err := s.productRepo.List(ctx, brandID, categoryID, search, page, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to fetch products: %w", err)
	}
	return products, total, nil
}

func (s *productService) Get(ctx context.Context, id uuid.UUID) (*model.Product, error) {
	product, err := s.productRepo.FindByIDWithRelations(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrRecordNotFound) {
			return nil, apperror.ErrNotFound
		}
		return nil, err
	}
	return product, nil
}

// resolveParents checks brand/category existence and their consistency,
// recording violations on ve.
func (s *productService) resolveParents(ctx context.Context, ve *apperror.ValidationError, brandIDRaw, categoryIDRaw string) (uuid.UUID, uuid.UUID, error) {
	var brandID, categoryID uuid.UUID

	if brandIDRaw == "" {
		ve.Add("brand_id", "required")
	} else if parsed, err := uuid.Parse(brandIDRaw); err != nil {
		ve.Add("brand_id", "must be a valid id")
	} else if _, err := s.brandRepo.FindByID(ctx, parsed); err != nil {
		if errors.Is(err, repository.ErrRecordNotFound) {
			ve.Add("brand_id", "brand does not exist")
		} else {
			return uuid.Nil, uuid.Nil, err
		}
	} else {
		brandID = parsed
	}

	if categoryIDRaw == "" {
		ve.Add("category_id", "required")
	} else if parsed, err := uuid.Parse(categoryIDRaw); err != nil {
		ve.Add("category_id", "must be a valid id")
	} else if category, err := s.categoryRepo.FindByID(ctx, parsed); err != nil {
		if errors.Is(err, repository.ErrRecordNotFound) {
			ve.Add("category_id", "category does not exist")
		} else {
			return uuid.Nil, uuid.Nil, err
		}
	} else {
		categoryID = parsed
		if brandID != uuid.Nil && category.BrandID != brandID {
			ve.Add("category_id", "category does not belong to the selected brand")
		}
	}

	return brandID, categoryID, nil
}

func (s *productService) checkRef(ctx context.Context, ve *apperror.ValidationError, ref string, excludeID uuid.UUID) error {
	if ref == "" {
		ve.Add("ref", "required")
		return nil
	}
	exists, err := s.productRepo.RefExists(ctx, ref, excludeID)
	if err != nil {
		return err
	}
	if exists {
		ve.Add("ref", "has already been taken")
	}
	return nil
}

func (s *productService) Create(ctx context.Context, actorID uuid.UUID, req CreateProductRequest) (*model.Product, error) {
	ve := apperror.NewValidation()

	ref := strings.TrimSpace(req.Ref)
	if err := s.checkRef(ctx, ve, ref, uuid.Nil); err != nil {
		return nil, err
	}
	label := strings.TrimSpace(req.Label)
	if label == "" {
		ve.Add("label", "required")
	}

	purchaseUnit := parseAmount(ve, "purchase_price_unit", req.PurchasePriceUnit, true)
	saleUnit := parseAmount(ve, "sale_price_unit", req.SalePriceUnit, true)
	purchaseCase := parseAmount(ve, "purchase_price_case", req.PurchasePriceCase, false)
	saleCase := parseAmount(ve, "sale_price_case", req.SalePriceCase, false)
	weight := parseAmount(ve, "weight", req.Weight, false)

	unitsPerCase := req.UnitsPerCase
	if unitsPerCase == 0 {
		unitsPerCase = 1
	}
	if unitsPerCase < 1 {
		ve.Add("units_per_case", "must be at least 1")
	}

	brandID, categoryID, err := s.resolveParents(ctx, ve, req.BrandID, req.CategoryID)
	if err != nil {
		return nil, err
	}
	if err := ve.ErrOrNil(); err != nil {
		return nil, err
	}

	active := true
	if req.Active != nil {
		active = *req.Active
	}

	product := &model.Product{
		Ref:               ref,
		Label:             label,
		PurchasePriceUnit: purchaseUnit,
		SalePriceUnit:     saleUnit,
		PurchasePriceCase: purchaseCase,
		SalePriceCase:     saleCase,
		Weight:            weight,
		UnitsPerCase:      unitsPerCase,
		Active:            active,
		BrandID:           brandID,
		CategoryID:        categoryID,
	}

	if err := s.productRepo.Create(ctx, product); err != nil {
		// Lost a race against a concurrent insert with the same ref.
		if errors.Is(err, repository.ErrDuplicateKey) {
			return nil, apperror.Invalid("ref", "has already been taken")
		}
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	s.audit.Record(ctx, actorID, model.ActionCreate, "products", product.ID.String(), product.Ref)
	return s.Get(ctx, product.ID)
}

func (s *productService) Update(ctx context.Context, actorID, id uuid.UUID, req UpdateProductRequest) (*model.Product, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrRecordNotFound) {
			return nil, apperror.ErrNotFound
		}
		return nil, err
	}

	ve := apperror.NewValidation()

	if req.Ref != nil {
		ref := strings.TrimSpace(*req.Ref)
		if err := s.checkRef(ctx, ve, ref, id); err != nil {
			return nil, err
		}
		product.Ref = ref
	}
	if req.Label != nil {
		label := strings.TrimSpace(*req.Label)
		if label == "" {
			ve.Add("label", "required")
		}
		product.Label = label
	}
	if req.PurchasePriceUnit != nil {
		product.PurchasePriceUnit = parseAmount(ve, "purchase_price_unit", *req.PurchasePriceUnit, true)
	}
	if req.SalePriceUnit != nil {
		product.SalePriceUnit = parseAmount(ve, "sale_price_unit", *req.SalePriceUnit, true)
	}
	if req.PurchasePriceCase != nil {
		product.PurchasePriceCase = parseAmount(ve, "purchase_price_case", *req.PurchasePriceCase, false)
	}
	if req.SalePriceCase != nil {
		product.SalePriceCase = parseAmount(ve, "sale_price_case", *req.SalePriceCase, false)
	}
	if req.Weight != nil {
		product.Weight = parseAmount(ve, "weight", *req.Weight, false)
	}
	if req.UnitsPerCase != nil {
		if *req.UnitsPerCase < 1 {
			ve.Add("units_per_case", "must be at least 1")
		}
		product.UnitsPerCase = *req.UnitsPerCase
	}
	if req.Active != nil {
		product.Active = *req.Active
	}

	if req.BrandID != nil || req.CategoryID != nil {
		brandIDRaw := product.BrandID.String()
		if req.BrandID != nil {
			brandIDRaw = *req.BrandID
		}
		categoryIDRaw := product.CategoryID.String()
		if req.CategoryID != nil {
			categoryIDRaw = *req.CategoryID
		}
		brandID, categoryID, err := s.resolveParents(ctx, ve, brandIDRaw, categoryIDRaw)
		if err != nil {
			return nil, err
		}
		if brandID != uuid.Nil {
			product.BrandID = brandID
		}
		if categoryID != uuid.Nil {
			product.CategoryID = categoryID
		}
	}

	if err := ve.ErrOrNil(); err != nil {
		return nil, err
	}

	product.Brand = nil
	product.Category = nil
	if err := s.productRepo.Save(ctx, product); err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return nil, apperror.Invalid("ref", "has already been taken")
		}
		return nil, fmt.Errorf("failed to update product: %w", err)
	}

	s.audit.Record(ctx, actorID, model.ActionUpdate, "products", product.ID.String(), product.Ref)
	return s.Get(ctx, id)
}

// Delete removes the product; its stock entries and promotions go with it
// via the database cascade.
func (s *productService) Delete(ctx context.Context, actorID, id uuid.UUID) error {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrRecordNotFound) {
			return apperror.ErrNotFound
		}
		return err
	}

	if _, err := s.productRepo.DeleteByID(ctx, id); err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}

	s.audit.Record(ctx, actorID, model.ActionDelete, "products", id.String(), product.Ref)
	return nil
}
