package service

import (
	"context"

	"recrent-shop/internal/catalog"
	"recrent-shop/internal/domain"
)

// CatalogService serves the buyer-facing, filtered view of the catalog.
type CatalogService struct {
	products ProductService
}

func NewCatalogService(products ProductService) *CatalogService {
	return &CatalogService{products: products}
}

// Browse returns the products matching f in display order.
func (s *CatalogService) Browse(ctx context.Context, f catalog.Filter) ([]domain.Product, error) {
	products, err := s.products.List(ctx)
	if err != nil {
		return nil, err
	}
	return catalog.Apply(products, f), nil
}

// Facets returns the filter values available across the whole catalog.
func (s *CatalogService) Facets(ctx context.Context) (catalog.Facets, error) {
	products, err := s.products.List(ctx)
	if err != nil {
		return catalog.Facets{}, err
	}
	return catalog.BuildFacets(products), nil
}
