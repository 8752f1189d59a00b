package repository

import (
	"context"
	"strings"

	"commerce/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// --- Transporteur ---

type TransporteurRepository interface {
	CRUD[model.Transporteur]
	List(ctx context.Context, search string, page, limit int) ([]model.Transporteur, int64, error)
}

type transporteurRepository struct {
	crud[model.Transporteur]
}

func NewTransporteurRepository(db *gorm.DB) TransporteurRepository {
	return &transporteurRepository{crud: newCRUD[model.Transporteur](db)}
}

func (r *transporteurRepository) List(ctx context.Context, search string, page, limit int) ([]model.Transporteur, int64, error) {
	var transporteurs []model.Transporteur
	var total int64

	query := GetDB(ctx, r.db).Model(&model.Transporteur{})
	if search != "" {
		like := "%" + strings.ToLower(search) + "%"
		query = query.Where("lower(driver_name) LIKE ? OR lower(plate) LIKE ?", like, like)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, translate(err)
	}
	err := query.Order("created_at DESC").Offset((page - 1) * limit).Limit(limit).Find(&transporteurs).Error
	if err != nil {
		return nil, 0, translate(err)
	}
	return transporteurs, total, nil
}

// --- Livreur ---

type LivreurRepository interface {
	CRUD[model.Livreur]
	List(ctx context.Context, search string, page, limit int) ([]model.Livreur, int64, error)
}

type livreurRepository struct {
	crud[model.Livreur]
}

func NewLivreurRepository(db *gorm.DB) LivreurRepository {
	return &livreurRepository{crud: newCRUD[model.Livreur](db)}
}

func (r *livreurRepository) List(ctx context.Context, search string, page, limit int) ([]model.Livreur, int64, error) {
	var livreurs []model.Livreur
	var total int64

	query := GetDB(ctx, r.db).Model(&model.Livreur{})
	if search != "" {
		query = query.Where("lower(name) LIKE ?", "%"+strings.ToLower(search)+"%")
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, translate(err)
	}
	if err := query.Order("name ASC").Offset((page - 1) * limit).Limit(limit).Find(&livreurs).Error; err != nil {
		return nil, 0, translate(err)
	}
	return livreurs, total, nil
}

// --- StockEntry ---

type StockEntryRepository interface {
	CRUD[model.StockEntry]
	List(ctx context.Context, productID, transporteurID *uuid.UUID, page, limit int) ([]model.StockEntry, int64, error)
	FindByIDWithRelations(ctx context.Context, id uuid.UUID) (*model.StockEntry, error)
	ListRecent(ctx context.Context, limit int) ([]model.StockEntry, error)
}

type stockEntryRepository struct {
	crud[model.StockEntry]
}

func NewStockEntryRepository(db *gorm.DB) StockEntryRepository {
	return &stockEntryRepository{crud: newCRUD[model.StockEntry](db)}
}

func (r *stockEntryRepository) List(ctx context.Context, productID, transporteurID *uuid.UUID, page, limit int) ([]model.StockEntry, int64, error) {
	var entries []model.StockEntry
	var total int64

	query := GetDB(ctx, r.db).Model(&model.StockEntry{})
	if productID != nil {
		query = query.Where("product_id = ?", *productID)
	}
	if transporteurID != nil {
		query = query.Where("transporteur_id = ?", *transporteurID)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, translate(err)
	}
	err := query.Preload("Product").Preload("Transporteur").Order("created_at DESC").
		Offset((page - 1) * limit).Limit(limit).Find(&entries).Error
	if err != nil {
		return nil, 0, translate(err)
	}
	return entries, total, nil
}

func (r *stockEntryRepository) FindByIDWithRelations(ctx context.Context, id uuid.UUID) (*model.StockEntry, error) {
	var entry model.StockEntry
	err := GetDB(ctx, r.db).Preload("Product").Preload("Transporteur").
		First(&entry, "id = ?", id).Error
	if err != nil {
		return nil, translate(err)
	}
	return &entry, nil
}

func (r *stockEntryRepository) ListRecent(ctx context.Context, limit int) ([]model.StockEntry, error) {
	var entries []model.StockEntry
	err := GetDB(ctx, r.db).Preload("Product").Preload("Transporteur").
		Order("created_at DESC").Limit(limit).Find(&entries).Error
	if err != nil {
		return nil, translate(err)
	}
	return entries, nil
}
