package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Lixing-Zhang/kart-challenge/storefront/internal/catalogtest"
	"github.com/Lixing-Zhang/kart-challenge/storefront/internal/fetch"
	"github.com/Lixing-Zhang/kart-challenge/storefront/internal/listing"
	"github.com/Lixing-Zhang/kart-challenge/storefront/internal/repository"
	"github.com/Lixing-Zhang/kart-challenge/storefront/pkg/logger"
)

func newProductService(t *testing.T, n int) (*ProductService, *catalogtest.Server) {
	t.Helper()
	srv := catalogtest.NewServer(t, catalogtest.Products(n))
	client := fetch.NewClient(srv.URL, logger.New("error"))
	return NewProductService(repository.NewCatalogProductRepository(client)), srv
}

func TestProductService_FeaturedProducts(t *testing.T) {
	for _, n := range []int{0, 5, 8, 20} {
		svc, _ := newProductService(t, n)

		featured, err := svc.FeaturedProducts(context.Background())
		require.NoError(t, err)
		assert.LessOrEqual(t, len(featured), listing.FeaturedLimit)
		if n >= listing.FeaturedLimit {
			assert.Len(t, featured, listing.FeaturedLimit)
			assert.Equal(t, "1", featured[0].ID.String())
		}
	}
}

func TestProductService_ListProducts(t *testing.T) {
	svc, _ := newProductService(t, 12)

	all, err := svc.ListProducts(context.Background(), "")
	require.NoError(t, err)
	assert.Len(t, all, 12)

	sports, err := svc.ListProducts(context.Background(), "Sports")
	require.NoError(t, err)
	assert.Len(t, sports, 2)
}

func TestProductService_GetProduct(t *testing.T) {
	svc, srv := newProductService(t, 3)

	product, err := svc.GetProduct(context.Background(), "2")
	require.NoError(t, err)
	assert.Equal(t, "2", product.ID.String())
	assert.Equal(t, 1, srv.Calls("GET /products/2"))
}
