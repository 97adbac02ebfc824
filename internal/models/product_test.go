package models

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProduct_PrimaryImage(t *testing.T) {
	tests := []struct {
		name   string
		images []string
		want   string
	}{
		{"no images", nil, DefaultImageURL},
		{"empty slice", []string{}, DefaultImageURL},
		{"blank first image", []string{""}, DefaultImageURL},
		{"first image", []string{"https://cdn/a.jpg", "https://cdn/b.jpg"}, "https://cdn/a.jpg"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Product{Title: "Lamp", Images: tt.images}
			assert.Equal(t, tt.want, p.PrimaryImage())
		})
	}
}

func TestProduct_Thumbnails(t *testing.T) {
	p := Product{Images: []string{"a", "b", "c", "d", "e", "f", "g"}}
	assert.Equal(t, []string{"b", "c", "d", "e"}, p.Thumbnails())

	single := Product{Images: []string{"a"}}
	assert.Empty(t, single.Thumbnails())
}

func TestProduct_DecodeCatalogJSON(t *testing.T) {
	raw := `{
		"id": 42,
		"title": "Wireless Earbuds",
		"description": "Noise cancelling",
		"category": "Electronics",
		"price": 499,
		"images": [],
		"discount_percent": 10,
		"features": ["Bluetooth 5.3"]
	}`

	var p Product
	require.NoError(t, json.Unmarshal([]byte(raw), &p))

	assert.Equal(t, ID("42"), p.ID)
	assert.True(t, p.Price.Equal(decimal.NewFromInt(499)))
	assert.True(t, p.HasDiscount())
	assert.Equal(t, DefaultImageURL, p.PrimaryImage())
	assert.Equal(t, []string{"Bluetooth 5.3"}, p.Features)
}

func TestID_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		raw     string
		want    ID
		wantErr bool
	}{
		{`"abc123"`, "abc123", false},
		{`17`, "17", false},
		{`null`, "", false},
		{`{"x":1}`, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			var id ID
			err := json.Unmarshal([]byte(tt.raw), &id)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, id)
		})
	}
}

func TestIsCategory(t *testing.T) {
	assert.True(t, IsCategory("Fashion"))
	assert.False(t, IsCategory("fashion"))
	assert.False(t, IsCategory(""))
}
