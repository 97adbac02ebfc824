package handlers

import (
	"fmt"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"

	"github.com/Lixing-Zhang/kart-challenge/storefront/internal/listing"
	"github.com/Lixing-Zhang/kart-challenge/storefront/internal/models"
	"github.com/Lixing-Zhang/kart-challenge/storefront/internal/navstate"
	"github.com/Lixing-Zhang/kart-challenge/storefront/internal/service"
	"github.com/Lixing-Zhang/kart-challenge/storefront/internal/web"
)

// ProductSnapshots carries the products a page showed to the detail view,
// keyed by product id.
type ProductSnapshots = navstate.Store[map[models.ID]models.Product]

// Confirmations carries a placed order to the confirmation view.
type Confirmations = navstate.Store[models.OrderConfirmation]

// PageHandler serves the landing, shop and static pages
type PageHandler struct {
	products  *service.ProductService
	snapshots *ProductSnapshots
	render    *web.Renderer
	logger    *slog.Logger
}

// NewPageHandler creates a new page handler
func NewPageHandler(products *service.ProductService, snapshots *ProductSnapshots, render *web.Renderer, logger *slog.Logger) *PageHandler {
	return &PageHandler{
		products:  products,
		snapshots: snapshots,
		render:    render,
		logger:    logger,
	}
}

// Home handles GET /
func (h *PageHandler) Home(w http.ResponseWriter, r *http.Request) {
	featured, err := h.products.FeaturedProducts(r.Context())
	if err != nil {
		h.logger.Warn("failed to load featured products", "error", err)
	}

	h.render.Render(w, r, http.StatusOK, web.PageHome, "", web.HomeView{
		Featured: productCards(h.snapshots, featured),
	})
}

// Shop handles GET /shop?category=&sort=
// Unknown category or sort values are ignored.
func (h *PageHandler) Shop(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	category := listing.ParseCategory(q.Get("category"))
	sortKey := listing.ParseSortKey(q.Get("sort"))

	model := listing.New(h.products, h.logger)
	model.SetSort(sortKey)
	// A failed load leaves the listing empty; the model already logged it.
	_ = model.Load(r.Context(), category)

	h.render.Render(w, r, http.StatusOK, web.PageShop, "Shop", web.ShopView{
		Products: productCards(h.snapshots, model.Displayed()),
		Category: model.Category(),
		Sort:     string(model.SortKey()),
		Empty:    model.Empty(),
	})
}

// About handles GET /about
func (h *PageHandler) About(w http.ResponseWriter, r *http.Request) {
	h.render.Render(w, r, http.StatusOK, web.PageAbout, "About Us", nil)
}

// Contact handles GET /contact
func (h *PageHandler) Contact(w http.ResponseWriter, r *http.Request) {
	h.render.Render(w, r, http.StatusOK, web.PageContact, "Contact Us", nil)
}

// NotFound renders the not-found view for any unmatched path
func (h *PageHandler) NotFound(w http.ResponseWriter, r *http.Request) {
	h.render.Render(w, r, http.StatusNotFound, web.PageNotFound, "Page not found", nil)
}

// productCards stores the shown products under one navigation token and
// links every card to its detail page with that token.
func productCards(snapshots *ProductSnapshots, products []models.Product) []web.ProductCard {
	cards := make([]web.ProductCard, 0, len(products))
	if len(products) == 0 {
		return cards
	}

	byID := make(map[models.ID]models.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}
	token := snapshots.Put(byID)

	for _, p := range products {
		cards = append(cards, web.ProductCard{
			Product: p,
			Href:    productURL(p.ID, token),
		})
	}
	return cards
}

func productURL(id models.ID, token string) string {
	u := "/product/" + url.PathEscape(id.String())
	if token != "" {
		u += "?s=" + url.QueryEscape(token)
	}
	return u
}

func orderURL(id models.ID) string {
	return "/product/" + url.PathEscape(id.String()) + "/order"
}

// productID returns the {id} route parameter unescaped. chi matches on the
// raw path when one is set, so an id containing "/" arrives escaped.
func productID(r *http.Request) string {
	id := chi.URLParam(r, "id")
	if r.URL.RawPath == "" {
		return id
	}
	if unescaped, err := url.PathUnescape(id); err == nil {
		return unescaped
	}
	return id
}

func confirmationURL(token string) string {
	return fmt.Sprintf("/order-confirmation?s=%s", url.QueryEscape(token))
}
