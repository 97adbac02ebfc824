package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/Lixing-Zhang/kart-challenge/storefront/internal/models"
	"github.com/Lixing-Zhang/kart-challenge/storefront/internal/service"
	"github.com/Lixing-Zhang/kart-challenge/storefront/internal/web"
)

// OrderHandler handles the cash-on-delivery order form and its confirmation
type OrderHandler struct {
	products      *ProductHandler
	orderService  *service.OrderService
	confirmations *Confirmations
	render        *web.Renderer
	log           *slog.Logger
}

// NewOrderHandler creates a new order handler
func NewOrderHandler(products *ProductHandler, orderService *service.OrderService, confirmations *Confirmations, render *web.Renderer, log *slog.Logger) *OrderHandler {
	return &OrderHandler{
		products:      products,
		orderService:  orderService,
		confirmations: confirmations,
		render:        render,
		log:           log,
	}
}

// CreateOrder handles POST /product/{id}/order
// - 303: order placed, redirect to the confirmation view
// - 422: form invalid, nothing was sent
// - 409: the form was already submitted
// - 502: the catalog service refused or could not be reached
func (h *OrderHandler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.log.Warn("failed to parse order form", "error", err)
		http.Error(w, "Invalid form body", http.StatusBadRequest)
		return
	}

	id := productID(r)
	product, stateToken, ok := h.products.resolve(r.Context(), id, r.PostForm.Get("s"))
	if !ok {
		h.render.Render(w, r, http.StatusBadGateway, web.PageLoading, "Loading", nil)
		return
	}

	form := service.NewOrderForm(product)
	if err := form.Bind(r.PostForm); err != nil {
		h.log.Error("failed to bind order form", "error", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	formToken := r.PostForm.Get("form_token")
	confirmation, err := h.orderService.PlaceOrder(r.Context(), form, formToken)
	if err == nil {
		token := h.confirmations.Put(*confirmation)
		http.Redirect(w, r, confirmationURL(token), http.StatusSeeOther)
		return
	}

	view := web.ProductView{
		Product:     product,
		OrderAction: orderURL(models.ID(id)),
		StateToken:  stateToken,
		FormToken:   formToken,
		Form:        form.Input(),
		Errors:      form.Errors(),
		Message:     form.Message(),
		FormOpen:    true,
	}

	status := http.StatusBadGateway
	switch {
	case errors.Is(err, service.ErrInvalidOrder):
		status = http.StatusUnprocessableEntity
	case errors.Is(err, service.ErrDuplicateSubmission):
		status = http.StatusConflict
		view.FormToken = uuid.NewString()
		view.Message = service.SubmitFailedMessage
	}

	h.render.Render(w, r, status, web.PageProduct, product.Title, view)
}

// GetConfirmation handles GET /order-confirmation?s=<token>
// The carried order is shown once; a reload shows the page without a summary.
func (h *OrderHandler) GetConfirmation(w http.ResponseWriter, r *http.Request) {
	view := web.ConfirmationView{}
	if token := r.URL.Query().Get("s"); token != "" {
		if confirmation, err := h.confirmations.Take(token); err == nil {
			view.Order = &confirmation
		}
	}

	h.render.Render(w, r, http.StatusOK, web.PageConfirmation, "Order Confirmed", view)
}
