package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/Lixing-Zhang/kart-challenge/storefront/internal/models"
	"github.com/Lixing-Zhang/kart-challenge/storefront/internal/service"
	"github.com/Lixing-Zhang/kart-challenge/storefront/internal/web"
)

// ProductHandler serves the product detail view
type ProductHandler struct {
	products  *service.ProductService
	snapshots *ProductSnapshots
	render    *web.Renderer
	logger    *slog.Logger
}

// NewProductHandler creates a new product handler
func NewProductHandler(products *service.ProductService, snapshots *ProductSnapshots, render *web.Renderer, logger *slog.Logger) *ProductHandler {
	return &ProductHandler{
		products:  products,
		snapshots: snapshots,
		render:    render,
		logger:    logger,
	}
}

// GetProduct handles GET /product/{id}?s=<token>
// A product carried under the navigation token is shown as is; otherwise it
// is fetched once. A failed fetch leaves the page on its loading placeholder.
func (h *ProductHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	id := productID(r)

	product, token, ok := h.resolve(r.Context(), id, r.URL.Query().Get("s"))
	if !ok {
		h.render.Render(w, r, http.StatusOK, web.PageLoading, "Loading", nil)
		return
	}

	form := service.NewOrderForm(product)
	h.render.Render(w, r, http.StatusOK, web.PageProduct, product.Title, web.ProductView{
		Product:     product,
		OrderAction: orderURL(models.ID(id)),
		StateToken:  token,
		FormToken:   uuid.NewString(),
		Form:        form.Input(),
		Errors:      form.Errors(),
	})
}

// resolve returns the product carried under token when it matches id, and
// otherwise fetches it and carries it under a fresh token so the order form
// post does not fetch again.
func (h *ProductHandler) resolve(ctx context.Context, id, token string) (models.Product, string, bool) {
	key := models.ID(id)

	if token != "" {
		if snapshot, err := h.snapshots.Get(token); err == nil {
			if p, ok := snapshot[key]; ok {
				return p, token, true
			}
		}
	}

	product, err := h.products.GetProduct(ctx, id)
	if err != nil {
		h.logger.Warn("failed to get product", "productId", id, "error", err)
		return models.Product{}, "", false
	}

	token = h.snapshots.Put(map[models.ID]models.Product{key: *product})
	return *product, token, true
}
