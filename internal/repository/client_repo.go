package repository

import (
	"context"
	"strings"

	"commerce/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// --- Ville ---

type VilleRepository interface {
	CRUD[model.Ville]
	List(ctx context.Context, search string, page, limit int) ([]model.Ville, int64, error)
}

type villeRepository struct {
	crud[model.Ville]
}

func NewVilleRepository(db *gorm.DB) VilleRepository {
	return &villeRepository{crud: newCRUD[model.Ville](db)}
}

func (r *villeRepository) List(ctx context.Context, search string, page, limit int) ([]model.Ville, int64, error) {
	var villes []model.Ville
	var total int64

	query := GetDB(ctx, r.db).Model(&model.Ville{})
	if search != "" {
		query = query.Where("lower(name) LIKE ?", "%"+strings.ToLower(search)+"%")
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, translate(err)
	}
	if err := query.Order("name ASC").Offset((page - 1) * limit).Limit(limit).Find(&villes).Error; err != nil {
		return nil, 0, translate(err)
	}
	return villes, total, nil
}

// --- Secteur ---

type SecteurRepository interface {
	CRUD[model.Secteur]
	List(ctx context.Context, villeID *uuid.UUID, page, limit int) ([]model.Secteur, int64, error)
	ListByVille(ctx context.Context, villeID uuid.UUID) ([]model.Secteur, error)
	FindByIDWithVille(ctx context.Context, id uuid.UUID) (*model.Secteur, error)
}

type secteurRepository struct {
	crud[model.Secteur]
}

func NewSecteurRepository(db *gorm.DB) SecteurRepository {
	return &secteurRepository{crud: newCRUD[model.Secteur](db)}
}

func (r *secteurRepository) List(ctx context.Context, villeID *uuid.UUID, page, limit int) ([]model.Secteur, int64, error) {
	var secteurs []model.Secteur
	var total int64

	query := GetDB(ctx, r.db).Model(&model.Secteur{})
	if villeID != nil {
		query = query.Where("ville_id = ?", *villeID)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, translate(err)
	}
	err := query.Preload("Ville").Order("name ASC").
		Offset((page - 1) * limit).Limit(limit).Find(&secteurs).Error
	if err != nil {
		return nil, 0, translate(err)
	}
	return secteurs, total, nil
}

// ListByVille backs the /api/secteurs-by-ville lookup used by dependent
// selects on client forms.
func (r *secteurRepository) ListByVille(ctx context.Context, villeID uuid.UUID) ([]model.Secteur, error) {
	var secteurs []model.Secteur
	err := GetDB(ctx, r.db).Where("ville_id = ?", villeID).Order("name ASC").Find(&secteurs).Error
	if err != nil {
		return nil, translate(err)
	}
	return secteurs, nil
}

func (r *secteurRepository) FindByIDWithVille(ctx context.Context, id uuid.UUID) (*model.Secteur, error) {
	var secteur model.Secteur
	if err := GetDB(ctx, r.db).Preload("Ville").First(&secteur, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &secteur, nil
}

// --- Commercial ---

type CommercialRepository interface {
	CRUD[model.Commercial]
	List(ctx context.Context, search string, page, limit int) ([]model.Commercial, int64, error)
	CodeExists(ctx context.Context, code string, excludeID uuid.UUID) (bool, error)
}

type commercialRepository struct {
	crud[model.Commercial]
}

func NewCommercialRepository(db *gorm.DB) CommercialRepository {
	return &commercialRepository{crud: newCRUD[model.Commercial](db)}
}

func (r *commercialRepository) List(ctx context.Context, search string, page, limit int) ([]model.Commercial, int64, error) {
	var commerciaux []model.Commercial
	var total int64

	query := GetDB(ctx, r.db).Model(&model.Commercial{})
	if search != "" {
		like := "%" + strings.ToLower(search) + "%"
		query = query.Where("lower(code) LIKE ? OR lower(full_name) LIKE ?", like, like)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, translate(err)
	}
	err := query.Order("code ASC").Offset((page - 1) * limit).Limit(limit).Find(&commerciaux).Error
	if err != nil {
		return nil, 0, translate(err)
	}
	return commerciaux, total, nil
}

func (r *commercialRepository) CodeExists(ctx context.Context, code string, excludeID uuid.UUID) (bool, error) {
	var count int64
	query := GetDB(ctx, r.db).Model(&model.Commercial{}).Where("code = ?", code)
	if excludeID != uuid.Nil {
		query = query.Where("id <> ?", excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return false, translate(err)
	}
	return count > 0, nil
}

// --- Client ---

type ClientRepository interface {
	CRUD[model.Client]
	List(ctx context.Context, villeID, secteurID, commercialID *uuid.UUID, search string, page, limit int) ([]model.Client, int64, error)
	FindByIDWithRelations(ctx context.Context, id uuid.UUID) (*model.Client, error)
	CodeExists(ctx context.Context, code string, excludeID uuid.UUID) (bool, error)
}

type clientRepository struct {
	crud[model.Client]
}

func NewClientRepository(db *gorm.DB) ClientRepository {
	return &clientRepository{crud: newCRUD[model.Client](db)}
}

func (r *clientRepository) List(ctx context.Context, villeID, secteurID, commercialID *uuid.UUID, search string, page, limit int) ([]model.Client, int64, error) {
	var clients []model.Client
	var total int64

	query := GetDB(ctx, r.db).Model(&model.Client{})
	if villeID != nil {
		query = query.Where("ville_id = ?", *villeID)
	}
	if secteurID != nil {
		query = query.Where("secteur_id = ?", *secteurID)
	}
	if commercialID != nil {
		query = query.Where("commercial_id = ?", *commercialID)
	}
	if search != "" {
		like := "%" + strings.ToLower(search) + "%"
		query = query.Where("lower(code) LIKE ? OR lower(full_name) LIKE ? OR phone LIKE ?", like, like, like)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, translate(err)
	}
	err := query.Preload("Ville").Preload("Secteur").Preload("Commercial").
		Order("created_at DESC").Offset((page - 1) * limit).Limit(limit).Find(&clients).Error
	if err != nil {
		return nil, 0, translate(err)
	}
	return clients, total, nil
}

func (r *clientRepository) FindByIDWithRelations(ctx context.Context, id uuid.UUID) (*model.Client, error) {
	var client model.Client
	err := GetDB(ctx, r.db).Preload("Ville").Preload("Secteur").Preload("Commercial").
		First(&client, "id = ?", id).Error
	if err != nil {
		return nil, translate(err)
	}
	return &client, nil
}

func (r *clientRepository) CodeExists(ctx context.Context, code string, excludeID uuid.UUID) (bool, error) {
	var count int64
	query := GetDB(ctx, r.db).Model(&model.Client{}).Where("code = ?", code)
	if excludeID != uuid.Nil {
		query = query.Where("id <> ?", excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return false, translate(err)
	}
	return count > 0, nil
}
