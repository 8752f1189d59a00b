package service

import (
	"context"
	"testing"

	"commerce/internal/apperror"
	"commerce/internal/repository"

	"gorm.io/gorm"
)

type clientFixture struct {
	clients     ClientService
	villes      VilleService
	secteurs    SecteurService
	commerciaux CommercialService
}

func newClientFixture(t *testing.T, db *gorm.DB) clientFixture {
	t.Helper()
	villeRepo := repository.NewVilleRepository(db)
	secteurRepo := repository.NewSecteurRepository(db)
	commercialRepo := repository.NewCommercialRepository(db)
	return clientFixture{
		clients:     NewClientService(repository.NewClientRepository(db), villeRepo, secteurRepo, commercialRepo),
		villes:      NewVilleService(villeRepo),
		secteurs:    NewSecteurService(secteurRepo, villeRepo),
		commerciaux: NewCommercialService(commercialRepo),
	}
}

func TestClientPercentageBounds(t *testing.T) {
	db := setupTestDB(t)
	f := newClientFixture(t, db)

	_, err := f.clients.Create(context.Background(), CreateClientRequest{
		Code:       "CL001",
		FullName:   "Chez Karim",
		Percentage: "150",
	})
	ve, ok := apperror.AsValidation(err)
	if !ok {
		t.Fatalf("expected validation error, got %v", err)
	}
	if ve.Fields["percentage"] == "" {
		t.Fatalf("expected violation on percentage, got %v", ve.Fields)
	}
}

func TestClientUnknownVilleRejected(t *testing.T) {
	db := setupTestDB(t)
	f := newClientFixture(t, db)

	_, err := f.clients.Create(context.Background(), CreateClientRequest{
		Code:     "CL001",
		FullName: "Chez Karim",
		VilleID:  "6f1c2b62-0000-0000-0000-000000000000",
	})
	ve, ok := apperror.AsValidation(err)
	if !ok {
		t.Fatalf("expected validation error, got %v", err)
	}
	if ve.Fields["ville_id"] == "" {
		t.Fatalf("expected violation on ville_id, got %v", ve.Fields)
	}
}

// Removing a city or agent detaches the reference on its clients instead of
// deleting them.
func TestClientSurvivesVilleDeletion(t *testing.T) {
	db := setupTestDB(t)
	f := newClientFixture(t, db)
	ctx := context.Background()

	ville, err := f.villes.Create(ctx, VilleRequest{Name: "Casablanca"})
	if err != nil {
		t.Fatalf("create ville: %v", err)
	}
	secteur, err := f.secteurs.Create(ctx, SecteurRequest{Name: "Maarif", VilleID: ville.ID.String()})
	if err != nil {
		t.Fatalf("create secteur: %v", err)
	}

	client, err := f.clients.Create(ctx, CreateClientRequest{
		Code:      "CL001",
		FullName:  "Chez Karim",
		VilleID:   ville.ID.String(),
		SecteurID: secteur.ID.String(),
	})
	if err != nil {
		t.Fatalf("create client: %v", err)
	}

	if err := f.villes.Delete(ctx, ville.ID); err != nil {
		t.Fatalf("delete ville: %v", err)
	}

	got, err := f.clients.Get(ctx, client.ID)
	if err != nil {
		t.Fatalf("client gone after ville deletion: %v", err)
	}
	if got.VilleID != nil {
		t.Errorf("ville reference not detached: %v", got.VilleID)
	}
	// the secteur cascaded away with its ville, so that reference clears too
	if got.SecteurID != nil {
		t.Errorf("secteur reference not detached: %v", got.SecteurID)
	}
}

func TestClientUpdateClearsReference(t *testing.T) {
	db := setupTestDB(t)
	f := newClientFixture(t, db)
	ctx := context.Background()

	commercial, err := f.commerciaux.Create(ctx, CommercialRequest{Code: "COM001", FullName: "Alice"})
	if err != nil {
		t.Fatalf("create commercial: %v", err)
	}
	client, err := f.clients.Create(ctx, CreateClientRequest{
		Code:         "CL001",
		FullName:     "Chez Karim",
		CommercialID: commercial.ID.String(),
	})
	if err != nil {
		t.Fatalf("create client: %v", err)
	}

	empty := ""
	updated, err := f.clients.Update(ctx, client.ID, UpdateClientRequest{CommercialID: &empty})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.CommercialID != nil {
		t.Errorf("commercial reference not cleared: %v", updated.CommercialID)
	}
}
