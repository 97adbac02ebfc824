package service

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/Lixing-Zhang/kart-challenge/storefront/internal/models"
	"github.com/Lixing-Zhang/kart-challenge/storefront/internal/repository"
)

// SubmitFailedMessage is the only message shown when an order cannot be placed.
const SubmitFailedMessage = "Could not submit order. Please try again."

var (
	ErrInvalidOrder = errors.New("order form is invalid")
	ErrSubmitFailed = errors.New("could not submit order")
	ErrNotEditing   = errors.New("order form is not being edited")
)

// FormState is the lifecycle of one order attempt.
type FormState int

const (
	FormEditing FormState = iota
	FormSubmitting
	FormSucceeded
)

func (s FormState) String() string {
	switch s {
	case FormEditing:
		return "editing"
	case FormSubmitting:
		return "submitting"
	case FormSucceeded:
		return "succeeded"
	default:
		return "unknown"
	}
}

// FieldErrors maps a form field name to its message.
type FieldErrors map[string]string

// OrderInput holds the raw form values as typed by the shopper.
type OrderInput struct {
	FullName string `form:"full_name"`
	Mobile   string `form:"mobile"`
	Address  string `form:"address"`
	City     string `form:"city"`
	State    string `form:"state"`
	Pincode  string `form:"pincode"`
	Quantity string `form:"quantity"`
	Email    string `form:"email"`
}

// orderFields is OrderInput after quantity parsing, carrying the rules.
type orderFields struct {
	FullName string `form:"full_name" validate:"required"`
	Mobile   string `form:"mobile" validate:"required"`
	Address  string `form:"address" validate:"required"`
	City     string `form:"city" validate:"required"`
	State    string `form:"state" validate:"required"`
	Pincode  string `form:"pincode" validate:"required"`
	Quantity int    `form:"quantity" validate:"min=1"`
	Email    string `form:"email" validate:"omitempty,email"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := f.Tag.Get("form")
		if i := strings.Index(name, ","); i >= 0 {
			name = name[:i]
		}
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// OrderForm is the state of one cash-on-delivery order attempt for a product.
type OrderForm struct {
	product models.Product
	input   OrderInput
	state   FormState
	errors  FieldErrors
	message string
}

// NewOrderForm starts an order for product with quantity defaulting to 1.
func NewOrderForm(product models.Product) *OrderForm {
	return &OrderForm{
		product: product,
		input:   OrderInput{Quantity: "1"},
		state:   FormEditing,
		errors:  FieldErrors{},
	}
}

// Bind copies posted form values into the form. Only allowed while editing.
func (f *OrderForm) Bind(values url.Values) error {
	if f.state != FormEditing {
		return ErrNotEditing
	}
	f.input = OrderInput{
		FullName: strings.TrimSpace(values.Get("full_name")),
		Mobile:   strings.TrimSpace(values.Get("mobile")),
		Address:  strings.TrimSpace(values.Get("address")),
		City:     strings.TrimSpace(values.Get("city")),
		State:    strings.TrimSpace(values.Get("state")),
		Pincode:  strings.TrimSpace(values.Get("pincode")),
		Quantity: strings.TrimSpace(values.Get("quantity")),
		Email:    strings.TrimSpace(values.Get("email")),
	}
	return nil
}

func (f *OrderForm) Product() models.Product { return f.product }
func (f *OrderForm) Input() OrderInput       { return f.input }
func (f *OrderForm) State() FormState        { return f.state }
func (f *OrderForm) Errors() FieldErrors     { return f.errors }
func (f *OrderForm) Message() string         { return f.message }

// Validate checks the required fields, the quantity and the optional e-mail.
// It never touches the network.
func (f *OrderForm) Validate() FieldErrors {
	errs := FieldErrors{}

	fields := orderFields{
		FullName: f.input.FullName,
		Mobile:   f.input.Mobile,
		Address:  f.input.Address,
		City:     f.input.City,
		State:    f.input.State,
		Pincode:  f.input.Pincode,
		Email:    f.input.Email,
	}

	// A missing or malformed quantity is reported once; 1 keeps the min rule quiet.
	fields.Quantity = 1
	switch q, err := strconv.Atoi(f.input.Quantity); {
	case f.input.Quantity == "":
		errs["quantity"] = messageForTag("required", "")
	case err != nil:
		errs["quantity"] = messageForTag("numeric", "")
	default:
		fields.Quantity = q
	}

	if err := validate.Struct(fields); err != nil {
		var ve validator.ValidationErrors
		if !errors.As(err, &ve) {
			errs["_"] = "The form data is invalid."
			return errs
		}
		for _, fe := range ve {
			errs[fe.Field()] = messageForTag(fe.Tag(), fe.Param())
		}
	}
	return errs
}

// Request assembles the POST /orders payload. Call after Validate succeeded.
func (f *OrderForm) Request() models.OrderRequest {
	quantity, _ := strconv.Atoi(f.input.Quantity)
	return models.OrderRequest{
		FullName:     f.input.FullName,
		Mobile:       f.input.Mobile,
		Address:      f.input.Address,
		City:         f.input.City,
		State:        f.input.State,
		Pincode:      f.input.Pincode,
		Quantity:     quantity,
		Email:        f.input.Email,
		ProductID:    f.product.ID,
		ProductTitle: f.product.Title,
	}
}

// Submit validates the form and, when valid, posts exactly one order.
// On failure the form returns to editing with SubmitFailedMessage set.
func (f *OrderForm) Submit(ctx context.Context, orders repository.OrderRepository) (*models.OrderConfirmation, error) {
	if f.state != FormEditing {
		return nil, ErrNotEditing
	}

	f.message = ""
	f.errors = f.Validate()
	if len(f.errors) > 0 {
		return nil, ErrInvalidOrder
	}

	f.state = FormSubmitting
	req := f.Request()

	resp, err := orders.Create(ctx, req)
	if err != nil {
		f.state = FormEditing
		f.message = SubmitFailedMessage
		return nil, fmt.Errorf("%w: %v", ErrSubmitFailed, err)
	}

	f.state = FormSucceeded
	return &models.OrderConfirmation{
		OrderRequest: req,
		ID:           resp.ID,
		Price:        f.product.Price,
	}, nil
}

func messageForTag(tag, param string) string {
	switch tag {
	case "required":
		return "This field is required."
	case "email":
		return "Enter a valid e-mail address."
	case "numeric":
		return "Enter a number."
	case "min":
		return "Must be at least " + param + "."
	default:
		return "Invalid value."
	}
}
