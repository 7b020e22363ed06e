package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/srgjo27/gercamp/internal/core/domain"
	"github.com/srgjo27/gercamp/internal/core/ports"
	"github.com/srgjo27/gercamp/internal/platform/metrics"
)

const kindOrder = "order"

type OrderItemRequest struct {
	ProductID string `json:"productId" validate:"required,uuid"`
	Quantity  int    `json:"quantity" validate:"required,gte=1"`
}

type CreateOrderRequest struct {
	Items           []OrderItemRequest `json:"items" validate:"required,min=1,dive"`
	ShippingAddress string             `json:"shippingAddress" validate:"required,max=500"`
}

type UpdateOrderRequest struct {
	ID              string  `json:"-" validate:"required,uuid"`
	ShippingAddress *string `json:"shippingAddress" validate:"omitempty,min=1,max=500"`
	Status          *string `json:"status" validate:"omitempty,oneof=PENDING CONFIRMED SHIPPED DELIVERED CANCELLED"`
}

type ListOrdersRequest struct {
	UserID string `form:"userId" json:"userId" validate:"omitempty,uuid"`
	Status string `form:"status" json:"status" validate:"omitempty,oneof=PENDING CONFIRMED SHIPPED DELIVERED CANCELLED"`
	First  int    `form:"first" json:"first" validate:"gte=0"`
	After  string `form:"after" json:"after"`
}

type OrderService struct {
	productRepo ports.ProductRepository
	orderRepo   ports.OrderRepository
	opts        options
}

func NewOrderService(productRepo ports.ProductRepository, orderRepo ports.OrderRepository, opts ...Option) *OrderService {
	return &OrderService{
		productRepo: productRepo,
		orderRepo:   orderRepo,
		opts:        newOptions(opts),
	}
}

// CreateOrder prices every line at the product's current price and checks
// stock for all of them before anything is written. The repository then
// writes the order and decrements stock in one transaction.
func (s *OrderService) CreateOrder(ctx context.Context, p domain.Principal, req CreateOrderRequest) (*domain.Order, error) {
	if err := validateInput(req); err != nil {
		return nil, err
	}

	orderID := uuid.New()
	products := make(map[uuid.UUID]*domain.Product, len(req.Items))
	requested := make(map[uuid.UUID]int, len(req.Items))
	items := make([]domain.OrderItem, 0, len(req.Items))

	for _, line := range req.Items {
		productID := uuid.MustParse(line.ProductID)

		product, ok := products[productID]
		if !ok {
			var err error
			product, err = s.productRepo.GetByID(ctx, productID)
			if err != nil {
				return nil, err
			}
			products[productID] = product
		}

		requested[productID] += line.Quantity
		if requested[productID] > product.Stock {
			metrics.IncConflict(kindOrder)
			return nil, domain.NewConflict("insufficient stock for product %s: requested %d, available %d",
				product.Name, requested[productID], product.Stock)
		}

		items = append(items, domain.OrderItem{
			ID:        uuid.New(),
			OrderID:   orderID,
			ProductID: product.ID,
			SellerID:  product.OwnerID,
			Quantity:  line.Quantity,
			UnitPrice: product.Price,
		})
	}

	now := s.opts.now().UTC()
	order := &domain.Order{
		ID:              orderID,
		UserID:          p.AccountID,
		ShippingAddress: req.ShippingAddress,
		TotalPrice:      domain.OrderTotal(items),
		Status:          domain.OrderPending,
		CreatedAt:       now,
		UpdatedAt:       now,
		Items:           items,
	}

	if err := s.orderRepo.Create(ctx, order); err != nil {
		if domain.IsKind(err, domain.KindConflict) {
			metrics.IncConflict(kindOrder)
		}
		return nil, err
	}

	metrics.IncReservationCreated(kindOrder)
	s.opts.auditor.Record(ctx, p, "create", kindOrder, order.ID, order.TotalPrice.StringFixed(2))

	return order, nil
}

func (s *OrderService) UpdateOrder(ctx context.Context, p domain.Principal, req UpdateOrderRequest) (*domain.Order, error) {
	if err := validateInput(req); err != nil {
		return nil, err
	}
	if req.ShippingAddress == nil && req.Status == nil {
		return nil, domain.NewValidation("nothing to update")
	}

	order, err := s.orderRepo.GetByID(ctx, uuid.MustParse(req.ID))
	if err != nil {
		return nil, err
	}

	if req.ShippingAddress != nil {
		if order.UserID != p.AccountID && !p.IsAdmin() {
			return nil, domain.NewForbidden("only the buyer or an administrator can change the shipping address")
		}
		if order.Status != domain.OrderPending {
			return nil, &domain.Error{Kind: domain.KindInvalidTransition, Message: fmt.Sprintf("cannot change the address of a %s order", order.Status)}
		}
	}

	var to domain.OrderStatus
	if req.Status != nil {
		to = domain.OrderStatus(*req.Status)
		if err := checkOrderTransition(p, order, to); err != nil {
			return nil, err
		}
	}

	if req.ShippingAddress != nil {
		if err := s.orderRepo.UpdateShippingAddress(ctx, order.ID, *req.ShippingAddress); err != nil {
			return nil, err
		}
		order.ShippingAddress = *req.ShippingAddress
		order.UpdatedAt = s.opts.now().UTC()
	}

	if req.Status != nil {
		if err := s.transition(ctx, p, order, to); err != nil {
			return nil, err
		}
	}

	return order, nil
}

// checkOrderTransition authorizes a status change. The buyer may only
// cancel; sellers of any item and administrators may make any allowed change.
func checkOrderTransition(p domain.Principal, o *domain.Order, to domain.OrderStatus) error {
	if !p.IsAdmin() && !o.SellerOf(p) {
		if o.UserID != p.AccountID || to != domain.OrderCancelled {
			return domain.NewForbidden("not allowed to change this order")
		}
	}
	if !o.Status.CanTransitionTo(to) {
		return domain.NewInvalidTransition(o.Status, to)
	}
	return nil
}

// transition applies a checked status change. Stock is restored by the
// repository inside the status update.
func (s *OrderService) transition(ctx context.Context, p domain.Principal, o *domain.Order, to domain.OrderStatus) error {
	if err := s.orderRepo.UpdateStatus(ctx, o.ID, o.Status, to); err != nil {
		return err
	}

	o.Status = to
	o.UpdatedAt = s.opts.now().UTC()

	if to == domain.OrderCancelled {
		metrics.AddStockRestored(totalUnits(o))
	}
	metrics.IncTransition(kindOrder, to.String())
	s.opts.auditor.Record(ctx, p, "status:"+to.String(), kindOrder, o.ID, "")
	return nil
}

func (s *OrderService) CancelOrder(ctx context.Context, p domain.Principal, orderID string) (*domain.Order, error) {
	status := string(domain.OrderCancelled)
	return s.UpdateOrder(ctx, p, UpdateOrderRequest{ID: orderID, Status: &status})
}

// DeleteOrder physically removes an order. Items of an order that still
// holds stock are returned to stock. Administrators only.
func (s *OrderService) DeleteOrder(ctx context.Context, p domain.Principal, orderID string) error {
	if !p.IsAdmin() {
		return domain.NewForbidden("only an administrator can delete orders")
	}

	id, err := parseID("id", orderID)
	if err != nil {
		return err
	}

	order, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.orderRepo.Delete(ctx, id); err != nil {
		return err
	}

	if order.Status.Restockable() {
		metrics.AddStockRestored(totalUnits(order))
	}
	s.opts.auditor.Record(ctx, p, "delete", kindOrder, id, "")
	return nil
}

func (s *OrderService) GetOrder(ctx context.Context, p domain.Principal, orderID string) (*domain.Order, error) {
	id, err := parseID("id", orderID)
	if err != nil {
		return nil, err
	}

	order, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !p.IsAdmin() && order.UserID != p.AccountID && !order.SellerOf(p) {
		return nil, domain.NewForbidden("not allowed to view this order")
	}
	return order, nil
}

// ListOrders pages through orders. Non-admin callers always get their own
// orders only, whatever userId they ask for.
func (s *OrderService) ListOrders(ctx context.Context, p domain.Principal, req ListOrdersRequest) (domain.Page[domain.Order], error) {
	if err := validateInput(req); err != nil {
		return domain.Page[domain.Order]{}, err
	}

	page := domain.PageRequest{First: req.First, After: req.After}
	after, err := page.AfterID()
	if err != nil {
		return domain.Page[domain.Order]{}, err
	}

	filter := domain.OrderFilter{
		UserID: p.ScopeUser(optionalID(req.UserID)),
		Status: domain.OrderStatus(req.Status),
	}
	limit := page.Limit(s.opts.limits.Default, s.opts.limits.Max)

	rows, err := s.orderRepo.List(ctx, filter, after, limit+1)
	if err != nil {
		return domain.Page[domain.Order]{}, fmt.Errorf("list orders: %w", err)
	}

	total, err := s.orderRepo.Count(ctx, filter)
	if err != nil {
		return domain.Page[domain.Order]{}, fmt.Errorf("count orders: %w", err)
	}

	return domain.NewPage(rows, limit, total, func(o domain.Order) uuid.UUID { return o.ID }), nil
}

func totalUnits(o *domain.Order) int {
	n := 0
	for _, item := range o.Items {
		n += item.Quantity
	}
	return n
}
