package service

import (
	"context"
	"fmt"

	"commerce/internal/model"
	"commerce/internal/repository"
)

// DashboardStats is the aggregate snapshot shown on the landing page.
type DashboardStats struct {
	Brands        int64             `json:"brands"`
	Categories    int64             `json:"categories"`
	Products      int64             `json:"products"`
	Promotions    int64             `json:"promotions"`
	Clients       int64             `json:"clients"`
	Villes        int64             `json:"villes"`
	Commerciaux   int64             `json:"commerciaux"`
	Livreurs      int64             `json:"livreurs"`
	Transporteurs int64             `json:"transporteurs"`
	Entrees       int64             `json:"entrees"`
	RecentEntrees []model.StockEntry `json:"recent_entrees"`
}

type DashboardService interface {
	Stats(ctx context.Context) (*DashboardStats, error)
}

type dashboardService struct {
	brandRepo        repository.BrandRepository
	categoryRepo     repository.CategoryRepository
	productRepo      repository.ProductRepository
	promotionRepo    repository.PromotionRepository
	clientRepo       repository.ClientRepository
	villeRepo        repository.VilleRepository
	commercialRepo   repository.CommercialRepository
	livreurRepo      repository.LivreurRepository
	transporteurRepo repository.TransporteurRepository
	entryRepo        repository.StockEntryRepository
}

func NewDashboardService(
	brandRepo repository.BrandRepository,
	categoryRepo repository.CategoryRepository,
	productRepo repository.ProductRepository,
	promotionRepo repository.PromotionRepository,
	clientRepo repository.ClientRepository,
	villeRepo repository.VilleRepository,
	commercialRepo repository.CommercialRepository,
	livreurRepo repository.LivreurRepository,
	transporteurRepo repository.TransporteurRepository,
	entryRepo repository.StockEntryRepository,
) DashboardService {
	return &dashboardService{
		brandRepo:        brandRepo,
		categoryRepo:     categoryRepo,
		productRepo:      productRepo,
		promotionRepo:    promotionRepo,
		clientRepo:       clientRepo,
		villeRepo:        villeRepo,
		commercialRepo:   commercialRepo,
		livreurRepo:      livreurRepo,
		transporteurRepo: transporteurRepo,
		entryRepo:        entryRepo,
	}
}

func (s *dashboardService) Stats(ctx context.Context) (*DashboardStats, error) {
	stats := &DashboardStats{}

	counts := []struct {
		dst   *int64
		count func(context.Context) (int64, error)
	}{
		{&stats.Brands, s.brandRepo.Count},
		{&stats.Categories, s.categoryRepo.Count},
		{&stats.Products, s.productRepo.Count},
		{&stats.Promotions, s.promotionRepo.Count},
		{&stats.Clients, s.clientRepo.Count},
		{&stats.Villes, s.villeRepo.Count},
		{&stats.Commerciaux, s.commercialRepo.Count},
		{&stats.Livreurs, s.livreurRepo.Count},
		{&stats.Transporteurs, s.transporteurRepo.Count},
		{&stats.Entrees, s.entryRepo.Count},
	}
	for _, c := range counts {
		total, err := c.count(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to compute dashboard stats: %w", err)
		}
		*c.dst = total
	}

	recent, err := s.entryRepo.ListRecent(ctx, 10)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch recent entrees: %w", err)
	}
	stats.RecentEntrees = recent

	return stats, nil
}
