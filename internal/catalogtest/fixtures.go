package catalogtest

import (
	"fmt"

	"github.com/brianvoe/gofakeit"
	"github.com/shopspring/decimal"

	"github.com/Lixing-Zhang/kart-challenge/storefront/internal/models"
)

// Product builds a catalog product with the given id, category and price.
func Product(id, category string, price int64) models.Product {
	return models.Product{
		ID:          models.ID(id),
		Title:       fmt.Sprintf("%s %s", gofakeit.Color(), gofakeit.Word()),
		Description: gofakeit.Sentence(8),
		Category:    category,
		Price:       decimal.NewFromInt(price),
		Images:      []string{fmt.Sprintf("https://img.example.com/%s.jpg", id)},
	}
}

// Products builds n products spread over the fixed categories with prices
// descending from n*10.
func Products(n int) []models.Product {
	out := make([]models.Product, 0, n)
	for i := 0; i < n; i++ {
		category := models.Categories[i%len(models.Categories)]
		out = append(out, Product(fmt.Sprint(i+1), category, int64((n-i)*10)))
	}
	return out
}

// OrderForm returns valid order form values as posted by a browser.
func OrderForm() map[string]string {
	return map[string]string{
		"full_name": gofakeit.Name(),
		"mobile":    "+91" + gofakeit.Numerify("##########"),
		"address":   gofakeit.Street(),
		"city":      gofakeit.City(),
		"state":     gofakeit.State(),
		"pincode":   gofakeit.Numerify("######"),
		"quantity":  "1",
		"email":     gofakeit.Email(),
	}
}
