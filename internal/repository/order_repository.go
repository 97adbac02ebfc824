package repository

import (
	"context"
	"fmt"

	"github.com/Lixing-Zhang/kart-challenge/storefront/internal/models"
)

// OrderRepository submits orders to the catalog service
type OrderRepository interface {
	Create(ctx context.Context, req models.OrderRequest) (*models.OrderResponse, error)
}

// CatalogOrderRepository posts orders to the remote catalog service
type CatalogOrderRepository struct {
	client JSONClient
}

func NewCatalogOrderRepository(client JSONClient) *CatalogOrderRepository {
	return &CatalogOrderRepository{client: client}
}

// Create issues exactly one POST /orders
func (r *CatalogOrderRepository) Create(ctx context.Context, req models.OrderRequest) (*models.OrderResponse, error) {
	var resp models.OrderResponse
	if err := r.client.PostJSON(ctx, "/orders", req, &resp); err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}
	return &resp, nil
}
