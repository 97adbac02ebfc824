package service

import (
	"context"

	"github.com/Lixing-Zhang/kart-challenge/storefront/internal/listing"
	"github.com/Lixing-Zhang/kart-challenge/storefront/internal/models"
	"github.com/Lixing-Zhang/kart-challenge/storefront/internal/repository"
)

// ProductService handles business logic for products
type ProductService struct {
	repo repository.ProductRepository
}

// NewProductService creates a new product service
func NewProductService(repo repository.ProductRepository) *ProductService {
	return &ProductService{
		repo: repo,
	}
}

// ListProducts returns all products, or those of one category, in service order
func (s *ProductService) ListProducts(ctx context.Context, category string) ([]models.Product, error) {
	return s.repo.GetAll(ctx, category)
}

// FeaturedProducts returns the first listing.FeaturedLimit products
func (s *ProductService) FeaturedProducts(ctx context.Context) ([]models.Product, error) {
	products, err := s.repo.GetAll(ctx, "")
	if err != nil {
		return nil, err
	}
	return listing.Featured(products), nil
}

// GetProduct returns a product by ID
func (s *ProductService) GetProduct(ctx context.Context, id string) (*models.Product, error) {
	return s.repo.GetByID(ctx, id)
}
