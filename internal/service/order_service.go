package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/Lixing-Zhang/kart-challenge/storefront/internal/metric"
	"github.com/Lixing-Zhang/kart-challenge/storefront/internal/models"
	"github.com/Lixing-Zhang/kart-challenge/storefront/internal/repository"
)

var (
	ErrDuplicateSubmission = errors.New("order form already submitted")
)

// SubmissionGuard claims a rendered form's token for the duration of a submission
type SubmissionGuard interface {
	Begin(token string) bool
	Finish(token string, accepted bool)
}

// OrderService places cash-on-delivery orders with the catalog service
type OrderService struct {
	orders repository.OrderRepository
	guard  SubmissionGuard
	log    *slog.Logger
}

// NewOrderService creates a new order service
func NewOrderService(orders repository.OrderRepository, guard SubmissionGuard, log *slog.Logger) *OrderService {
	return &OrderService{
		orders: orders,
		guard:  guard,
		log:    log,
	}
}

// PlaceOrder submits form once per form token. A token whose order was
// accepted, or that is being submitted right now, is refused without
// contacting the catalog service.
func (s *OrderService) PlaceOrder(ctx context.Context, form *OrderForm, token string) (*models.OrderConfirmation, error) {
	if token == "" || !s.guard.Begin(token) {
		metric.OrderSubmissionsTotal.WithLabelValues("replayed").Inc()
		s.log.Warn("order form replayed", "product_id", form.Product().ID)
		return nil, ErrDuplicateSubmission
	}

	confirmation, err := form.Submit(ctx, s.orders)
	s.guard.Finish(token, err == nil)

	switch {
	case err == nil:
		metric.OrderSubmissionsTotal.WithLabelValues("succeeded").Inc()
		s.log.Info("order created successfully",
			"order_id", confirmation.ID,
			"product_id", confirmation.ProductID,
			"quantity", confirmation.Quantity,
		)
		return confirmation, nil
	case errors.Is(err, ErrInvalidOrder):
		metric.OrderSubmissionsTotal.WithLabelValues("invalid").Inc()
		s.log.Info("order form rejected", "product_id", form.Product().ID, "fields", len(form.Errors()))
	default:
		metric.OrderSubmissionsTotal.WithLabelValues("failed").Inc()
		s.log.Error("failed to create order", "product_id", form.Product().ID, "error", err)
	}
	return nil, err
}
