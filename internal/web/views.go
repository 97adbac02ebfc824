package web

import (
	"github.com/Lixing-Zhang/kart-challenge/storefront/internal/models"
	"github.com/Lixing-Zhang/kart-challenge/storefront/internal/service"
)

// ProductCard is one product tile in a grid. Href carries the navigation
// state token so the detail page can skip its fetch.
type ProductCard struct {
	Product models.Product
	Href    string
}

type HomeView struct {
	Featured []ProductCard
}

type ShopView struct {
	Products []ProductCard
	Category string
	Sort     string
	Empty    bool
}

// ProductView is the detail page with its order form.
type ProductView struct {
	Product     models.Product
	OrderAction string
	StateToken  string
	FormToken   string
	Form        service.OrderInput
	Errors      service.FieldErrors
	Message     string
	FormOpen    bool
}

type ConfirmationView struct {
	Order *models.OrderConfirmation
}
