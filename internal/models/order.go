package models

import "github.com/shopspring/decimal"

// OrderRequest is the payload posted to the catalog service
// Field names match the remote POST /orders contract
type OrderRequest struct {
	FullName     string `json:"full_name"`
	Mobile       string `json:"mobile"`
	Address      string `json:"address"`
	City         string `json:"city"`
	State        string `json:"state"`
	Pincode      string `json:"pincode"`
	Quantity     int    `json:"quantity"`
	Email        string `json:"email"`
	ProductID    ID     `json:"product_id"`
	ProductTitle string `json:"product_title"`
}

// OrderResponse is the part of the POST /orders response the storefront reads.
type OrderResponse struct {
	ID ID `json:"id"`
}

// OrderConfirmation is the submitted request plus the server-assigned id and
// the product price at submission time. It only lives in navigation state.
type OrderConfirmation struct {
	OrderRequest
	ID    ID              `json:"id"`
	Price decimal.Decimal `json:"price"`
}
