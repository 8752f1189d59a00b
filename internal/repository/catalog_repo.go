package repository

import (
	"context"
	"strings"

	"commerce/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// --- Brand ---

type BrandRepository interface {
	CRUD[model.Brand]
	List(ctx context.Context, search string, page, limit int) ([]model.Brand, int64, error)
}

type brandRepository struct {
	crud[model.Brand]
}

func NewBrandRepository(db *gorm.DB) BrandRepository {
	return &brandRepository{crud: newCRUD[model.Brand](db)}
}

func (r *brandRepository) List(ctx context.Context, search string, page, limit int) ([]model.Brand, int64, error) {
	var brands []model.Brand
	var total int64

	query := GetDB(ctx, r.db).Model(&model.Brand{})
	if search != "" {
		query = query.Where("lower(name) LIKE ?", "%"+strings.ToLower(search)+"%")
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, translate(err)
	}
	if err := query.Order("created_at DESC").Offset((page - 1) * limit).Limit(limit).Find(&brands).Error; err != nil {
		return nil, 0, translate(err)
	}
	return brands, total, nil
}

// --- Category ---

type CategoryRepository interface {
	CRUD[model.Category]
	List(ctx context.Context, brandID *uuid.UUID, search string, page, limit int) ([]model.Category, int64, error)
	FindByIDWithBrand(ctx context.Context, id uuid.UUID) (*model.Category, error)
}

type categoryRepository struct {
	crud[model.Category]
}

func NewCategoryRepository(db *gorm.DB) CategoryRepository {
	return &categoryRepository{crud: newCRUD[model.Category](db)}
}

func (r *categoryRepository) List(ctx context.Context, brandID *uuid.UUID, search string, page, limit int) ([]model.Category, int64, error) {
	var categories []model.Category
	var total int64

	query := GetDB(ctx, r.db).Model(&model.Category{})
	if brandID != nil {
		query = query.Where("brand_id = ?", *brandID)
	}
	if search != "" {
		query = query.Where("lower(name) LIKE ?", "%"+strings.ToLower(search)+"%")
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, translate(err)
	}
	err := query.Preload("Brand").Order("created_at DESC").
		Offset((page - 1) * limit).Limit(limit).Find(&categories).Error
	if err != nil {
		return nil, 0, translate(err)
	}
	return categories, total, nil
}

func (r *categoryRepository) FindByIDWithBrand(ctx context.Context, id uuid.UUID) (*model.Category, error) {
	var category model.Category
	if err := GetDB(ctx, r.db).Preload("Brand").First(&category, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &category, nil
}

// --- Product ---

type ProductRepository interface {
	CRUD[model.Product]
	List(ctx context.Context, brandID, categoryID *uuid.UUID, search string, page, limit int) ([]model.Product, int64, error)
	FindByIDWithRelations(ctx context.Context, id uuid.UUID) (*model.Product, error)
	RefExists(ctx context.Context, ref string, excludeID uuid.UUID) (bool, error)
}

type productRepository struct {
	crud[model.Product]
}

func NewProductRepository(db *gorm.DB) ProductRepository {
	return &productRepository{crud: newCRUD[model.Product](db)}
}

func (r *productRepository) List(ctx context.Context, brandID, categoryID *uuid.UUID, search string, page, limit int) ([]model.Product, int64, error) {
	var products []model.Product
	var total int64

	query := GetDB(ctx, r.db).Model(&model.Product{})
	if brandID != nil {
		query = query.Where("brand_id = ?", *brandID)
	}
	if categoryID != nil {
		query = query.Where("category_id = ?", *categoryID)
	}
	if search != "" {
		like := "%" + strings.ToLower(search) + "%"
		query = query.Where("lower(ref) LIKE ? OR lower(label) LIKE ?", like, like)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, translate(err)
	}
	err := query.Preload("Brand").Preload("Category").Order("created_at DESC").
		Offset((page - 1) * limit).Limit(limit).Find(&products).Error
	if err != nil {
		return nil, 0, translate(err)
	}
	return products, total, nil
}

func (r *productRepository) FindByIDWithRelations(ctx context.Context, id uuid.UUID) (*model.Product, error) {
	var product model.Product
	err := GetDB(ctx, r.db).Preload("Brand").Preload("Category").First(&product, "id = ?", id).Error
	if err != nil {
		return nil, translate(err)
	}
	return &product, nil
}

func (r *productRepository) RefExists(ctx context.Context, ref string, excludeID uuid.UUID) (bool, error) {
	var count int64
	query := GetDB(ctx, r.db).Model(&model.Product{}).Where("ref = ?", ref)
	if excludeID != uuid.Nil {
		query = query.Where("id <> ?", excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return false, translate(err)
	}
	return count > 0, nil
}

// --- Promotion ---

type PromotionRepository interface {
	CRUD[model.Promotion]
	List(ctx context.Context, page, limit int) ([]model.Promotion, int64, error)
	FindByIDWithProducts(ctx context.Context, id uuid.UUID) (*model.Promotion, error)
}

type promotionRepository struct {
	crud[model.Promotion]
}

func NewPromotionRepository(db *gorm.DB) PromotionRepository {
	return &promotionRepository{crud: newCRUD[model.Promotion](db)}
}

func (r *promotionRepository) List(ctx context.Context, page, limit int) ([]model.Promotion, int64, error) {
	var promotions []model.Promotion
	var total int64

	query := GetDB(ctx, r.db).Model(&model.Promotion{})
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, translate(err)
	}
	err := query.Preload("Product").Preload("OfferedProduct").Order("created_at DESC").
		Offset((page - 1) * limit).Limit(limit).Find(&promotions).Error
	if err != nil {
		return nil, 0, translate(err)
	}
	return promotions, total, nil
}

func (r *promotionRepository) FindByIDWithProducts(ctx context.Context, id uuid.UUID) (*model.Promotion, error) {
	var promotion model.Promotion
	err := GetDB(ctx, r.db).Preload("Product").Preload("OfferedProduct").
		First(&promotion, "id = ?", id).Error
	if err != nil {
		return nil, translate(err)
	}
	return &promotion, nil
}
