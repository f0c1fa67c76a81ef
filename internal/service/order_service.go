package service

import (
	"context"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/HackingCorp/ltcgroup-sub001/internal/model"
	"github.com/HackingCorp/ltcgroup-sub001/internal/ports"
	"github.com/HackingCorp/ltcgroup-sub001/internal/pricing"
)

type OrderService struct {
	orders ports.IOrderRepository
	newID  func() string
}

func NewOrderService(orders ports.IOrderRepository) *OrderService {
	return &OrderService{orders: orders, newID: uuid.NewString}
}

// orderReference derives a short customer-facing reference from an order id.
func orderReference(id string) string {
	compact := strings.ReplaceAll(id, "-", "")
	if len(compact) > 8 {
		compact = compact[:8]
	}
	return "LTC-" + strings.ToUpper(compact)
}

func (s *OrderService) Create(ctx context.Context, req model.OrderRequest) (*model.Order, error) {
	quote, err := pricing.Price(req.CardType, req.DeliveryOption, req.RequestNIU)
	if err != nil {
		return nil, err
	}

	id := s.newID()
	order := &model.Order{
		ID:              id,
		OrderRef:        orderReference(id),
		CardType:        strings.ToLower(req.CardType),
		CustomerName:    strings.TrimSpace(req.CustomerName),
		Email:           strings.TrimSpace(req.Email),
		Phone:           strings.TrimSpace(req.Phone),
		NIU:             strings.TrimSpace(req.NIU),
		DeliveryOption:  strings.ToLower(req.DeliveryOption),
		DeliveryAddress: strings.TrimSpace(req.DeliveryAddress),
		CardPrice:       quote.CardPrice,
		DeliveryFee:     quote.DeliveryFee,
		NIUFee:          quote.NIUFee,
		Total:           quote.Total,
		PaymentStatus:   model.StatusNotPaid,
	}

	if err := s.orders.Create(ctx, order); err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "order created", "order_ref", order.OrderRef, "total", order.Total)
	return order, nil
}

func (s *OrderService) Get(ctx context.Context, ref string) (*model.Order, error) {
	return s.orders.FindByReference(ctx, strings.TrimSpace(ref))
}
