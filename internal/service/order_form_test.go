package service

import (
	"context"
	"errors"
	"net/url"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Lixing-Zhang/kart-challenge/storefront/internal/models"
)

// fakeOrders records calls and answers with a fixed response or error
type fakeOrders struct {
	id    models.ID
	err   error
	calls []models.OrderRequest
}

func (f *fakeOrders) Create(ctx context.Context, req models.OrderRequest) (*models.OrderResponse, error) {
	f.calls = append(f.calls, req)
	if f.err != nil {
		return nil, f.err
	}
	return &models.OrderResponse{ID: f.id}, nil
}

func testProduct() models.Product {
	return models.Product{
		ID:       "42",
		Title:    "Wireless Earbuds",
		Category: "Electronics",
		Price:    decimal.NewFromInt(499),
	}
}

func validValues() url.Values {
	return url.Values{
		"full_name": {"Asha Rao"},
		"mobile":    {"9000000000"},
		"address":   {"12 MG Road, Near Park"},
		"city":      {"Pune"},
		"state":     {"Maharashtra"},
		"pincode":   {"411001"},
		"quantity":  {"2"},
	}
}

func TestOrderForm_Defaults(t *testing.T) {
	form := NewOrderForm(testProduct())

	assert.Equal(t, FormEditing, form.State())
	assert.Equal(t, "1", form.Input().Quantity)
	assert.NotEqual(t, FormSubmitting, form.State())
	assert.Empty(t, form.Message())
}

func TestOrderForm_Validate(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(v url.Values)
		wantField string
		wantMsg   string
	}{
		{name: "missing name", mutate: func(v url.Values) { v.Del("full_name") }, wantField: "full_name", wantMsg: "This field is required."},
		{name: "blank mobile", mutate: func(v url.Values) { v.Set("mobile", "   ") }, wantField: "mobile", wantMsg: "This field is required."},
		{name: "missing address", mutate: func(v url.Values) { v.Del("address") }, wantField: "address", wantMsg: "This field is required."},
		{name: "missing city", mutate: func(v url.Values) { v.Del("city") }, wantField: "city", wantMsg: "This field is required."},
		{name: "missing state", mutate: func(v url.Values) { v.Del("state") }, wantField: "state", wantMsg: "This field is required."},
		{name: "missing pincode", mutate: func(v url.Values) { v.Del("pincode") }, wantField: "pincode", wantMsg: "This field is required."},
		{name: "quantity omitted", mutate: func(v url.Values) { v.Del("quantity") }, wantField: "quantity", wantMsg: "This field is required."},
		{name: "quantity zero", mutate: func(v url.Values) { v.Set("quantity", "0") }, wantField: "quantity", wantMsg: "Must be at least 1."},
		{name: "quantity negative", mutate: func(v url.Values) { v.Set("quantity", "-3") }, wantField: "quantity", wantMsg: "Must be at least 1."},
		{name: "quantity not numeric", mutate: func(v url.Values) { v.Set("quantity", "two") }, wantField: "quantity", wantMsg: "Enter a number."},
		{name: "bad email", mutate: func(v url.Values) { v.Set("email", "not-an-email") }, wantField: "email", wantMsg: "Enter a valid e-mail address."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			values := validValues()
			tt.mutate(values)

			form := NewOrderForm(testProduct())
			require.NoError(t, form.Bind(values))

			errs := form.Validate()
			require.Len(t, errs, 1, "errors: %v", errs)
			assert.Equal(t, tt.wantMsg, errs[tt.wantField])
		})
	}
}

func TestOrderForm_ValidateAcceptsOptionalEmail(t *testing.T) {
	for _, email := range []string{"", "asha@example.com"} {
		values := validValues()
		values.Set("email", email)

		form := NewOrderForm(testProduct())
		require.NoError(t, form.Bind(values))
		assert.Empty(t, form.Validate())
	}
}

func TestOrderForm_SubmitSuccess(t *testing.T) {
	orders := &fakeOrders{id: "X"}
	form := NewOrderForm(testProduct())
	require.NoError(t, form.Bind(validValues()))

	confirmation, err := form.Submit(context.Background(), orders)
	require.NoError(t, err)

	require.Len(t, orders.calls, 1)
	sent := orders.calls[0]
	assert.Equal(t, models.ID("42"), sent.ProductID)
	assert.Equal(t, "Wireless Earbuds", sent.ProductTitle)
	assert.Equal(t, 2, sent.Quantity)
	assert.Equal(t, "", sent.Email)

	assert.Equal(t, FormSucceeded, form.State())
	assert.Equal(t, models.ID("X"), confirmation.ID)
	assert.True(t, confirmation.Price.Equal(decimal.NewFromInt(499)))
	assert.Equal(t, sent, confirmation.OrderRequest)
	assert.Equal(t, "Asha Rao", confirmation.FullName)
	assert.Equal(t, "12 MG Road, Near Park", confirmation.Address)

	_, err = form.Submit(context.Background(), orders)
	assert.ErrorIs(t, err, ErrNotEditing)
	assert.ErrorIs(t, form.Bind(validValues()), ErrNotEditing)
}

func TestOrderForm_SubmitInvalidMakesNoCall(t *testing.T) {
	orders := &fakeOrders{id: "X"}
	form := NewOrderForm(testProduct())

	values := validValues()
	values.Set("quantity", "0")
	require.NoError(t, form.Bind(values))

	_, err := form.Submit(context.Background(), orders)
	assert.ErrorIs(t, err, ErrInvalidOrder)
	assert.Empty(t, orders.calls)
	assert.Equal(t, FormEditing, form.State())
	assert.Contains(t, form.Errors(), "quantity")
}

func TestOrderForm_SubmitFailureReturnsToEditing(t *testing.T) {
	orders := &fakeOrders{err: errors.New("network error")}
	form := NewOrderForm(testProduct())
	require.NoError(t, form.Bind(validValues()))

	_, err := form.Submit(context.Background(), orders)
	assert.ErrorIs(t, err, ErrSubmitFailed)
	assert.Equal(t, FormEditing, form.State())
	assert.NotEqual(t, FormSubmitting, form.State())
	assert.Equal(t, SubmitFailedMessage, form.Message())
	assert.Equal(t, "Asha Rao", form.Input().FullName)

	// The shopper can resubmit by hand.
	orders.err = nil
	orders.id = "Y"
	confirmation, err := form.Submit(context.Background(), orders)
	require.NoError(t, err)
	assert.Equal(t, models.ID("Y"), confirmation.ID)
	assert.Len(t, orders.calls, 2)
}

func TestFormState_String(t *testing.T) {
	assert.Equal(t, "editing", FormEditing.String())
	assert.Equal(t, "submitting", FormSubmitting.String())
	assert.Equal(t, "succeeded", FormSucceeded.String())
	assert.Equal(t, "unknown", FormState(9).String())
}
