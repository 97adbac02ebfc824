package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Lixing-Zhang/kart-challenge/storefront/internal/catalogtest"
	"github.com/Lixing-Zhang/kart-challenge/storefront/internal/fetch"
	"github.com/Lixing-Zhang/kart-challenge/storefront/internal/models"
	"github.com/Lixing-Zhang/kart-challenge/storefront/pkg/logger"
)

func newRepos(t *testing.T, products []models.Product) (*CatalogProductRepository, *CatalogOrderRepository, *catalogtest.Server) {
	t.Helper()
	srv := catalogtest.NewServer(t, products)
	client := fetch.NewClient(srv.URL, logger.New("error"))
	return NewCatalogProductRepository(client), NewCatalogOrderRepository(client), srv
}

func TestCatalogProductRepository_GetAll(t *testing.T) {
	products := catalogtest.Products(12)
	repo, _, _ := newRepos(t, products)

	t.Run("all products in service order", func(t *testing.T) {
		got, err := repo.GetAll(context.Background(), "")
		require.NoError(t, err)
		require.Len(t, got, 12)
		for i := range products {
			assert.Equal(t, products[i].ID, got[i].ID)
		}
	})

	t.Run("filtered by category", func(t *testing.T) {
		got, err := repo.GetAll(context.Background(), "Home")
		require.NoError(t, err)
		require.NotEmpty(t, got)
		for _, p := range got {
			assert.Equal(t, "Home", p.Category)
		}
	})

	t.Run("empty result is not nil", func(t *testing.T) {
		emptyRepo, _, _ := newRepos(t, nil)
		got, err := emptyRepo.GetAll(context.Background(), "")
		require.NoError(t, err)
		assert.NotNil(t, got)
		assert.Empty(t, got)
	})
}

func TestCatalogProductRepository_GetAll_Failure(t *testing.T) {
	repo, _, srv := newRepos(t, catalogtest.Products(3))
	srv.FailListing(true)

	_, err := repo.GetAll(context.Background(), "")
	assert.ErrorIs(t, err, fetch.ErrNetwork)
}

func TestCatalogProductRepository_GetByID(t *testing.T) {
	repo, _, srv := newRepos(t, catalogtest.Products(5))

	tests := []struct {
		name    string
		id      string
		wantErr error
	}{
		{name: "found", id: "3"},
		{name: "not found", id: "999", wantErr: fetch.ErrNetwork},
		{name: "empty id", id: "", wantErr: ErrInvalidProductID},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			product, err := repo.GetByID(context.Background(), tt.id)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, models.ID(tt.id), product.ID)
		})
	}

	assert.Equal(t, 1, srv.Calls("GET /products/3"))
}

func TestCatalogOrderRepository_Create(t *testing.T) {
	_, orders, srv := newRepos(t, nil)
	srv.SetOrderID("ORD-7")

	req := models.OrderRequest{
		FullName:     "Asha Rao",
		Mobile:       "9000000000",
		Address:      "12 MG Road",
		City:         "Pune",
		State:        "MH",
		Pincode:      "411001",
		Quantity:     2,
		ProductID:    "42",
		ProductTitle: "Desk Lamp",
	}

	resp, err := orders.Create(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, models.ID("ORD-7"), resp.ID)

	received := srv.Orders()
	require.Len(t, received, 1)
	assert.Equal(t, req, received[0])

	srv.FailOrders(true)
	_, err = orders.Create(context.Background(), req)
	assert.ErrorIs(t, err, fetch.ErrNetwork)
}
