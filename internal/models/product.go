package models

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

// DefaultImageURL is shown when a product has no images.
const DefaultImageURL = "https://images.unsplash.com/photo-1542291026-7eec264c27ff?q=80&w=1200&auto=format&fit=crop"

// Categories is the fixed set of catalog categories, in display order.
var Categories = []string{"Electronics", "Fashion", "Home", "Beauty", "Sports", "Accessories"}

// IsCategory reports whether name is one of Categories.
func IsCategory(name string) bool {
	for _, c := range Categories {
		if c == name {
			return true
		}
	}
	return false
}

// ID is an opaque identifier assigned by the catalog service.
// It decodes from either a JSON string or a JSON number.
type ID string

func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("id must be a string or number: %w", err)
	}
	*id = ID(n.String())
	return nil
}

func (id ID) String() string { return string(id) }

// Product represents a catalog item offered for sale
// Schema matches the remote catalog service
type Product struct {
	ID              ID              `json:"id"`
	Title           string          `json:"title"`
	Description     string          `json:"description"`
	Category        string          `json:"category"`
	Price           decimal.Decimal `json:"price"`
	Images          []string        `json:"images,omitempty"`
	DiscountPercent float64         `json:"discount_percent,omitempty"`
	Features        []string        `json:"features,omitempty"`
	Benefits        []string        `json:"benefits,omitempty"`
	Specifications  []string        `json:"specifications,omitempty"`
}

// PrimaryImage returns the first image or DefaultImageURL when there is none.
func (p Product) PrimaryImage() string {
	if len(p.Images) > 0 && p.Images[0] != "" {
		return p.Images[0]
	}
	return DefaultImageURL
}

// Thumbnails returns up to four images following the primary one.
func (p Product) Thumbnails() []string {
	if len(p.Images) <= 1 {
		return nil
	}
	end := len(p.Images)
	if end > 5 {
		end = 5
	}
	return p.Images[1:end]
}

// HasDiscount reports whether a discount percentage is set.
func (p Product) HasDiscount() bool {
	return p.DiscountPercent > 0
}
