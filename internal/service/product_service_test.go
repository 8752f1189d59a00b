package service

import (
	"context"
	"errors"
	"testing"

	"commerce/internal/apperror"
	"commerce/internal/model"

	"github.com/google/uuid"
)

func TestProductRefMustBeUnique(t *testing.T) {
	db := setupTestDB(t)
	brands, categories, products := newCatalogFixture(t, db)
	ctx := context.Background()

	brand := mustCreateBrand(t, brands, "Acme")
	category := mustCreateCategory(t, categories, "Widgets", brand.ID.String())
	mustCreateProduct(t, products, "PR-0001", brand.ID.String(), category.ID.String())

	_, err := products.Create(ctx, uuid.Nil, CreateProductRequest{
		Ref:               "PR-0001",
		Label:             "Duplicate",
		PurchasePriceUnit: "1.00",
		SalePriceUnit:     "2.00",
		BrandID:           brand.ID.String(),
		CategoryID:        category.ID.String(),
	})
	ve, ok := apperror.AsValidation(err)
	if !ok {
		t.Fatalf("expected validation error, got %v", err)
	}
	if ve.Fields["ref"] == "" {
		t.Fatalf("expected violation on ref, got %v", ve.Fields)
	}

	var count int64
	db.Model(&model.Product{}).Count(&count)
	if count != 1 {
		t.Errorf("product count = %d, want 1", count)
	}
}

func TestProductCategoryMustBelongToBrand(t *testing.T) {
	db := setupTestDB(t)
	brands, categories, products := newCatalogFixture(t, db)

	acme := mustCreateBrand(t, brands, "Acme")
	globex := mustCreateBrand(t, brands, "Globex")
	globexCat := mustCreateCategory(t, categories, "Gadgets", globex.ID.String())

	_, err := products.Create(context.Background(), uuid.Nil, CreateProductRequest{
		Ref:               "PR-0001",
		Label:             "Mismatch",
		PurchasePriceUnit: "1.00",
		SalePriceUnit:     "2.00",
		BrandID:           acme.ID.String(),
		CategoryID:        globexCat.ID.String(),
	})
	ve, ok := apperror.AsValidation(err)
	if !ok {
		t.Fatalf("expected validation error, got %v", err)
	}
	if ve.Fields["category_id"] == "" {
		t.Fatalf("expected violation on category_id, got %v", ve.Fields)
	}
}

func TestProductPriceValidation(t *testing.T) {
	db := setupTestDB(t)
	brands, categories, products := newCatalogFixture(t, db)

	brand := mustCreateBrand(t, brands, "Acme")
	category := mustCreateCategory(t, categories, "Widgets", brand.ID.String())

	_, err := products.Create(context.Background(), uuid.Nil, CreateProductRequest{
		Ref:               "PR-0001",
		Label:             "Bad prices",
		PurchasePriceUnit: "not-a-number",
		SalePriceUnit:     "-5",
		BrandID:           brand.ID.String(),
		CategoryID:        category.ID.String(),
	})
	ve, ok := apperror.AsValidation(err)
	if !ok {
		t.Fatalf("expected validation error, got %v", err)
	}
	if ve.Fields["purchase_price_unit"] == "" || ve.Fields["sale_price_unit"] == "" {
		t.Fatalf("expected violations on both price fields, got %v", ve.Fields)
	}
}

func TestProductUpdatePartial(t *testing.T) {
	db := setupTestDB(t)
	brands, categories, products := newCatalogFixture(t, db)
	ctx := context.Background()

	brand := mustCreateBrand(t, brands, "Acme")
	category := mustCreateCategory(t, categories, "Widgets", brand.ID.String())
	product := mustCreateProduct(t, products, "PR-0001", brand.ID.String(), category.ID.String())

	newLabel := "Renamed"
	updated, err := products.Update(ctx, uuid.Nil, product.ID, UpdateProductRequest{Label: &newLabel})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Label != "Renamed" {
		t.Errorf("label = %q, want %q", updated.Label, "Renamed")
	}
	if updated.Ref != "PR-0001" {
		t.Errorf("untouched ref changed: %q", updated.Ref)
	}
	if !updated.SalePriceUnit.Equal(product.SalePriceUnit) {
		t.Errorf("untouched price changed: %s", updated.SalePriceUnit)
	}
}

func TestProductDeleteNotFound(t *testing.T) {
	db := setupTestDB(t)
	_, _, products := newCatalogFixture(t, db)

	err := products.Delete(context.Background(), uuid.Nil, uuid.New())
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestProductMutationsAreAudited(t *testing.T) {
	db := setupTestDB(t)
	brands, categories, products := newCatalogFixture(t, db)
	ctx := context.Background()

	brand := mustCreateBrand(t, brands, "Acme")
	category := mustCreateCategory(t, categories, "Widgets", brand.ID.String())
	product := mustCreateProduct(t, products, "PR-0001", brand.ID.String(), category.ID.String())

	if err := products.Delete(ctx, uuid.Nil, product.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	var logs []model.AuditLog
	if err := db.Order("created_at ASC").Find(&logs).Error; err != nil {
		t.Fatalf("load audit logs: %v", err)
	}
	if len(logs) != 2 {
		t.Fatalf("audit log count = %d, want 2", len(logs))
	}
	if logs[0].Action != model.ActionCreate || logs[1].Action != model.ActionDelete {
		t.Errorf("actions = %s, %s", logs[0].Action, logs[1].Action)
	}
	if logs[1].Entity != "products" || logs[1].EntityName != "PR-0001" {
		t.Errorf("delete log = %+v", logs[1])
	}
}
