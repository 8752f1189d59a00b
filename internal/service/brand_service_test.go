package service

import (
	"context"
	"errors"
	"testing"

	"commerce/internal/apperror"
	"commerce/internal/model"

	"github.com/google/uuid"
)

func TestBrandCreateRequiresName(t *testing.T) {
	db := setupTestDB(t)
	brands, _, _ := newCatalogFixture(t, db)

	_, err := brands.Create(context.Background(), BrandRequest{Name: "   "})
	ve, ok := apperror.AsValidation(err)
	if !ok {
		t.Fatalf("expected validation error, got %v", err)
	}
	if ve.Fields["name"] == "" {
		t.Fatalf("expected violation on name, got %v", ve.Fields)
	}
}

func TestBrandUpdateNotFound(t *testing.T) {
	db := setupTestDB(t)
	brands, _, _ := newCatalogFixture(t, db)

	_, err := brands.Update(context.Background(), uuid.New(), BrandRequest{Name: "X"})
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestBrandDeleteNotFound(t *testing.T) {
	db := setupTestDB(t)
	brands, _, _ := newCatalogFixture(t, db)

	if err := brands.Delete(context.Background(), uuid.New()); !errors.Is(err, apperror.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestBrandCopy(t *testing.T) {
	db := setupTestDB(t)
	brands, _, _ := newCatalogFixture(t, db)

	original := mustCreateBrand(t, brands, "Acme")
	dup, err := brands.Copy(context.Background(), original.ID)
	if err != nil {
		t.Fatalf("copy: %v", err)
	}
	if dup.Name != "Acme (copy)" {
		t.Errorf("copy name = %q, want %q", dup.Name, "Acme (copy)")
	}
	if dup.ID == original.ID {
		t.Error("copy must be a new record")
	}
}

// Deleting a brand takes its categories and products with it, but leaves
// other brands' data alone.
func TestBrandDeleteCascades(t *testing.T) {
	db := setupTestDB(t)
	brands, categories, products := newCatalogFixture(t, db)
	ctx := context.Background()

	acme := mustCreateBrand(t, brands, "Acme")
	widgets := mustCreateCategory(t, categories, "Widgets", acme.ID.String())
	mustCreateProduct(t, products, "PR-0001", acme.ID.String(), widgets.ID.String())

	other := mustCreateBrand(t, brands, "Globex")
	otherCat := mustCreateCategory(t, categories, "Gadgets", other.ID.String())
	mustCreateProduct(t, products, "PR-0002", other.ID.String(), otherCat.ID.String())

	if err := brands.Delete(ctx, acme.ID); err != nil {
		t.Fatalf("delete brand: %v", err)
	}

	var categoryCount, productCount int64
	db.Model(&model.Category{}).Count(&categoryCount)
	db.Model(&model.Product{}).Count(&productCount)
	if categoryCount != 1 || productCount != 1 {
		t.Errorf("after cascade: %d categories, %d products; want 1 and 1", categoryCount, productCount)
	}

	if _, err := categories.Get(ctx, widgets.ID); !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("cascaded category still readable: %v", err)
	}
}
