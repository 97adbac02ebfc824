package repository

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	"github.com/Lixing-Zhang/kart-challenge/storefront/internal/models"
)

var (
	ErrInvalidProductID = errors.New("invalid product id")
)

// JSONClient is the subset of fetch.Client the repositories need
type JSONClient interface {
	GetJSON(ctx context.Context, path string, out any) error
	PostJSON(ctx context.Context, path string, body, out any) error
}

// ProductRepository defines the interface for product data access
type ProductRepository interface {
	GetAll(ctx context.Context, category string) ([]models.Product, error)
	GetByID(ctx context.Context, id string) (*models.Product, error)
}

// CatalogProductRepository reads products from the remote catalog service
type CatalogProductRepository struct {
	client JSONClient
}

// NewCatalogProductRepository creates a product repository backed by the catalog API
func NewCatalogProductRepository(client JSONClient) *CatalogProductRepository {
	return &CatalogProductRepository{
		client: client,
	}
}

// GetAll returns every product, optionally filtered by category, in service order
func (r *CatalogProductRepository) GetAll(ctx context.Context, category string) ([]models.Product, error) {
	path := "/products"
	if category != "" {
		path += "?category=" + url.QueryEscape(category)
	}

	var products []models.Product
	if err := r.client.GetJSON(ctx, path, &products); err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	if products == nil {
		products = []models.Product{}
	}
	return products, nil
}

// GetByID returns a single product by its ID
func (r *CatalogProductRepository) GetByID(ctx context.Context, id string) (*models.Product, error) {
	if id == "" {
		return nil, ErrInvalidProductID
	}

	var product models.Product
	if err := r.client.GetJSON(ctx, "/products/"+url.PathEscape(id), &product); err != nil {
		return nil, fmt.Errorf("get product %s: %w", id, err)
	}
	return &product, nil
}
