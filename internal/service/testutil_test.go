package service

import (
	"context"
	"testing"

	"commerce/internal/database"
	"commerce/internal/model"
	"commerce/internal/repository"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupTestDB opens a per-test in-memory database with foreign keys enforced
// so the cascade behavior under test matches production.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := "file:" + t.Name() + "?mode=memory&cache=shared&_foreign_keys=on"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func newCatalogFixture(t *testing.T, db *gorm.DB) (BrandService, CategoryService, ProductService) {
	t.Helper()
	brandRepo := repository.NewBrandRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	productRepo := repository.NewProductRepository(db)
	audit := NewAuditService(repository.NewAuditRepository(db))

	return NewBrandService(brandRepo),
		NewCategoryService(categoryRepo, brandRepo),
		NewProductService(productRepo, brandRepo, categoryRepo, audit)
}

func mustCreateBrand(t *testing.T, svc BrandService, name string) *model.Brand {
	t.Helper()
	brand, err := svc.Create(context.Background(), BrandRequest{Name: name})
	if err != nil {
		t.Fatalf("create brand %q: %v", name, err)
	}
	return brand
}

func mustCreateCategory(t *testing.T, svc CategoryService, name, brandID string) *model.Category {
	t.Helper()
	category, err := svc.Create(context.Background(), CategoryRequest{Name: name, BrandID: brandID})
	if err != nil {
		t.Fatalf("create category %q: %v", name, err)
	}
	return category
}

func mustCreateProduct(t *testing.T, svc ProductService, ref, brandID, categoryID string) *model.Product {
	t.Helper()
	product, err := svc.Create(context.Background(), uuid.Nil, CreateProductRequest{
		Ref:               ref,
		Label:             "Product " + ref,
		PurchasePriceUnit: "10.00",
		SalePriceUnit:     "12.50",
		BrandID:           brandID,
		CategoryID:        categoryID,
	})
	if err != nil {
		t.Fatalf("create product %q: %v", ref, err)
	}
	return product
}
