package service

import (
	"context"
	"testing"

	"commerce/internal/apperror"
	"commerce/internal/model"
	"commerce/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type recordingPublisher struct {
	events []string
}

func (p *recordingPublisher) Publish(eventType string, data interface{}) {
	p.events = append(p.events, eventType)
}

type entryFixture struct {
	entries       EntryService
	transporteurs TransporteurService
	products      ProductService
	hub           *recordingPublisher
	product       *model.Product
	transporteur  *model.Transporteur
}

func newEntryFixture(t *testing.T, db *gorm.DB) entryFixture {
	t.Helper()
	ctx := context.Background()

	brands, categories, products := newCatalogFixture(t, db)
	brand := mustCreateBrand(t, brands, "Acme")
	category := mustCreateCategory(t, categories, "Widgets", brand.ID.String())
	product := mustCreateProduct(t, products, "PR-0001", brand.ID.String(), category.ID.String())

	transporteurRepo := repository.NewTransporteurRepository(db)
	transporteurs := NewTransporteurService(transporteurRepo)
	transporteur, err := transporteurs.Create(ctx, TransporteurRequest{DriverName: "Hamid", Plate: "12345-A-6"})
	if err != nil {
		t.Fatalf("create transporteur: %v", err)
	}

	hub := &recordingPublisher{}
	audit := NewAuditService(repository.NewAuditRepository(db))
	entries := NewEntryService(repository.NewStockEntryRepository(db), repository.NewProductRepository(db), transporteurRepo, audit, hub)

	return entryFixture{
		entries:       entries,
		transporteurs: transporteurs,
		products:      products,
		hub:           hub,
		product:       product,
		transporteur:  transporteur,
	}
}

func TestEntryCreatePublishesEvent(t *testing.T) {
	db := setupTestDB(t)
	f := newEntryFixture(t, db)

	entry, err := f.entries.Create(context.Background(), uuid.Nil, CreateEntryRequest{
		Ref:            "ENT-001",
		PurchasePrice:  "1500.00",
		Quantity:       40,
		BLNumber:       "BL-77",
		LoadDate:       "2026-08-01",
		UnloadDate:     "2026-08-02",
		ProductID:      f.product.ID.String(),
		TransporteurID: f.transporteur.ID.String(),
	})
	if err != nil {
		t.Fatalf("create entry: %v", err)
	}
	if entry.Product == nil || entry.Product.Ref != "PR-0001" {
		t.Errorf("product not preloaded: %+v", entry.Product)
	}
	if len(f.hub.events) != 1 || f.hub.events[0] != "entree.created" {
		t.Errorf("events = %v, want [entree.created]", f.hub.events)
	}
}

func TestEntryDeletePublishesEvent(t *testing.T) {
	db := setupTestDB(t)
	f := newEntryFixture(t, db)
	ctx := context.Background()

	entry, err := f.entries.Create(ctx, uuid.Nil, CreateEntryRequest{
		Ref:            "ENT-001",
		PurchasePrice:  "1500.00",
		Quantity:       40,
		ProductID:      f.product.ID.String(),
		TransporteurID: f.transporteur.ID.String(),
	})
	if err != nil {
		t.Fatalf("create entry: %v", err)
	}

	if err := f.entries.Delete(ctx, uuid.Nil, entry.ID); err != nil {
		t.Fatalf("delete entry: %v", err)
	}

	if len(f.hub.events) != 2 || f.hub.events[1] != "entree.deleted" {
		t.Errorf("events = %v, want [entree.created entree.deleted]", f.hub.events)
	}
}

func TestEntryDatesMustBeOrdered(t *testing.T) {
	db := setupTestDB(t)
	f := newEntryFixture(t, db)

	_, err := f.entries.Create(context.Background(), uuid.Nil, CreateEntryRequest{
		Ref:            "ENT-001",
		PurchasePrice:  "1500.00",
		Quantity:       40,
		LoadDate:       "2026-08-10",
		UnloadDate:     "2026-08-02",
		ProductID:      f.product.ID.String(),
		TransporteurID: f.transporteur.ID.String(),
	})
	ve, ok := apperror.AsValidation(err)
	if !ok {
		t.Fatalf("expected validation error, got %v", err)
	}
	if ve.Fields["unload_date"] == "" {
		t.Fatalf("expected violation on unload_date, got %v", ve.Fields)
	}
}

func TestEntryQuantityValidation(t *testing.T) {
	db := setupTestDB(t)
	f := newEntryFixture(t, db)

	_, err := f.entries.Create(context.Background(), uuid.Nil, CreateEntryRequest{
		Ref:            "ENT-001",
		PurchasePrice:  "1500.00",
		Quantity:       0,
		ShortageQty:    -3,
		ProductID:      f.product.ID.String(),
		TransporteurID: f.transporteur.ID.String(),
	})
	ve, ok := apperror.AsValidation(err)
	if !ok {
		t.Fatalf("expected validation error, got %v", err)
	}
	if ve.Fields["quantity"] == "" || ve.Fields["shortage_qty"] == "" {
		t.Fatalf("expected violations on quantity and shortage_qty, got %v", ve.Fields)
	}
}

// Deleting a carrier removes its stock entries through the storage cascade.
func TestTransporteurDeleteCascadesEntries(t *testing.T) {
	db := setupTestDB(t)
	f := newEntryFixture(t, db)
	ctx := context.Background()

	if _, err := f.entries.Create(ctx, uuid.Nil, CreateEntryRequest{
		Ref:            "ENT-001",
		PurchasePrice:  "1500.00",
		Quantity:       40,
		ProductID:      f.product.ID.String(),
		TransporteurID: f.transporteur.ID.String(),
	}); err != nil {
		t.Fatalf("create entry: %v", err)
	}

	if err := f.transporteurs.Delete(ctx, f.transporteur.ID); err != nil {
		t.Fatalf("delete transporteur: %v", err)
	}

	var count int64
	db.Model(&model.StockEntry{}).Count(&count)
	if count != 0 {
		t.Errorf("entry count after cascade = %d, want 0", count)
	}
}
