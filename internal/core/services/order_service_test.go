package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/srgjo27/gercamp/internal/core/domain"
	"github.com/srgjo27/gercamp/internal/core/ports/mocks"
	"github.com/srgjo27/gercamp/internal/core/services"
)

func product(owner uuid.UUID, price int64, stock int) *domain.Product {
	return &domain.Product{ID: uuid.New(), OwnerID: owner, Name: "Airag", Price: decimal.NewFromInt(price), Stock: stock}
}

func TestCreateOrder_PricesAndSnapshots(t *testing.T) {
	productRepo := mocks.NewProductRepository(t)
	orderRepo := mocks.NewOrderRepository(t)
	svc := services.NewOrderService(productRepo, orderRepo)

	ctx := context.Background()
	seller := uuid.New()
	a := product(seller, 10, 5)
	b := product(seller, 5, 3)

	productRepo.On("GetByID", ctx, a.ID).Return(a, nil)
	productRepo.On("GetByID", ctx, b.ID).Return(b, nil)
	orderRepo.On("Create", ctx, mock.MatchedBy(func(o *domain.Order) bool {
		return len(o.Items) == 2 && o.Items[0].SellerID == seller && o.Items[0].UnitPrice.Equal(a.Price)
	})).Return(nil)

	order, err := svc.CreateOrder(ctx, customer(), services.CreateOrderRequest{
		Items: []services.OrderItemRequest{
			{ProductID: a.ID.String(), Quantity: 2},
			{ProductID: b.ID.String(), Quantity: 1},
		},
		ShippingAddress: "Zuunmod",
	})

	require.NoError(t, err)
	assert.Equal(t, domain.OrderPending, order.Status)
	assert.Equal(t, "25", order.TotalPrice.String())
}

func TestCreateOrder_InsufficientStockWritesNothing(t *testing.T) {
	productRepo := mocks.NewProductRepository(t)
	orderRepo := mocks.NewOrderRepository(t)
	svc := services.NewOrderService(productRepo, orderRepo)

	ctx := context.Background()
	a := product(uuid.New(), 10, 5)
	b := product(uuid.New(), 5, 0)

	productRepo.On("GetByID", ctx, a.ID).Return(a, nil)
	productRepo.On("GetByID", ctx, b.ID).Return(b, nil)

	_, err := svc.CreateOrder(ctx, customer(), services.CreateOrderRequest{
		Items: []services.OrderItemRequest{
			{ProductID: a.ID.String(), Quantity: 2},
			{ProductID: b.ID.String(), Quantity: 1},
		},
		ShippingAddress: "Zuunmod",
	})

	require.Error(t, err)
	assert.True(t, domain.IsKind(err, domain.KindConflict))
	assert.Contains(t, err.Error(), "insufficient stock")
	orderRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreateOrder_DuplicateLinesAreSummed(t *testing.T) {
	productRepo := mocks.NewProductRepository(t)
	orderRepo := mocks.NewOrderRepository(t)
	svc := services.NewOrderService(productRepo, orderRepo)

	ctx := context.Background()
	a := product(uuid.New(), 10, 3)

	productRepo.On("GetByID", ctx, a.ID).Return(a, nil).Once()

	_, err := svc.CreateOrder(ctx, customer(), services.CreateOrderRequest{
		Items: []services.OrderItemRequest{
			{ProductID: a.ID.String(), Quantity: 2},
			{ProductID: a.ID.String(), Quantity: 2},
		},
		ShippingAddress: "Zuunmod",
	})

	assert.True(t, domain.IsKind(err, domain.KindConflict))
}

func TestCreateOrder_ValidatesItems(t *testing.T) {
	productRepo := mocks.NewProductRepository(t)
	orderRepo := mocks.NewOrderRepository(t)
	svc := services.NewOrderService(productRepo, orderRepo)

	_, err := svc.CreateOrder(context.Background(), customer(), services.CreateOrderRequest{
		Items:           []services.OrderItemRequest{{ProductID: uuid.NewString(), Quantity: 0}},
		ShippingAddress: "Zuunmod",
	})
	assert.True(t, domain.IsKind(err, domain.KindValidation))

	_, err = svc.CreateOrder(context.Background(), customer(), services.CreateOrderRequest{ShippingAddress: "Zuunmod"})
	assert.True(t, domain.IsKind(err, domain.KindValidation))
}

func orderFor(buyer, seller uuid.UUID, status domain.OrderStatus) *domain.Order {
	id := uuid.New()
	return &domain.Order{
		ID:     id,
		UserID: buyer,
		Status: status,
		Items: []domain.OrderItem{
			{ID: uuid.New(), OrderID: id, ProductID: uuid.New(), SellerID: seller, Quantity: 3, UnitPrice: decimal.NewFromInt(4)},
		},
	}
}

func TestCancelOrder_BuyerRestoresStock(t *testing.T) {
	productRepo := mocks.NewProductRepository(t)
	orderRepo := mocks.NewOrderRepository(t)
	svc := services.NewOrderService(productRepo, orderRepo)

	ctx := context.Background()
	buyer := customer()
	order := orderFor(buyer.AccountID, uuid.New(), domain.OrderConfirmed)

	orderRepo.On("GetByID", ctx, order.ID).Return(order, nil)
	orderRepo.On("UpdateStatus", ctx, order.ID, domain.OrderConfirmed, domain.OrderCancelled).Return(nil)

	got, err := svc.CancelOrder(ctx, buyer, order.ID.String())

	require.NoError(t, err)
	assert.Equal(t, domain.OrderCancelled, got.Status)
}

func TestCancelOrder_DeliveredIsInvalidTransition(t *testing.T) {
	productRepo := mocks.NewProductRepository(t)
	orderRepo := mocks.NewOrderRepository(t)
	svc := services.NewOrderService(productRepo, orderRepo)

	ctx := context.Background()
	buyer := customer()
	order := orderFor(buyer.AccountID, uuid.New(), domain.OrderDelivered)

	orderRepo.On("GetByID", ctx, order.ID).Return(order, nil)

	_, err := svc.CancelOrder(ctx, buyer, order.ID.String())

	assert.True(t, domain.IsKind(err, domain.KindInvalidTransition))
	orderRepo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdateOrder_SellerShips(t *testing.T) {
	productRepo := mocks.NewProductRepository(t)
	orderRepo := mocks.NewOrderRepository(t)
	svc := services.NewOrderService(productRepo, orderRepo)

	ctx := context.Background()
	seller := domain.Principal{AccountID: uuid.New(), Role: domain.RoleHerder}
	stranger := domain.Principal{AccountID: uuid.New(), Role: domain.RoleHerder}
	order := orderFor(uuid.New(), seller.AccountID, domain.OrderConfirmed)

	orderRepo.On("GetByID", ctx, order.ID).Return(order, nil)

	shipped := string(domain.OrderShipped)
	_, err := svc.UpdateOrder(ctx, stranger, services.UpdateOrderRequest{ID: order.ID.String(), Status: &shipped})
	assert.True(t, domain.IsKind(err, domain.KindForbidden))

	orderRepo.On("UpdateStatus", ctx, order.ID, domain.OrderConfirmed, domain.OrderShipped).Return(nil)
	got, err := svc.UpdateOrder(ctx, seller, services.UpdateOrderRequest{ID: order.ID.String(), Status: &shipped})

	require.NoError(t, err)
	assert.Equal(t, domain.OrderShipped, got.Status)
}

func TestUpdateOrder_AddressOnlyWhilePending(t *testing.T) {
	productRepo := mocks.NewProductRepository(t)
	orderRepo := mocks.NewOrderRepository(t)
	svc := services.NewOrderService(productRepo, orderRepo)

	ctx := context.Background()
	buyer := customer()
	pending := orderFor(buyer.AccountID, uuid.New(), domain.OrderPending)
	shipped := orderFor(buyer.AccountID, uuid.New(), domain.OrderShipped)
	address := "Darkhan"

	orderRepo.On("GetByID", ctx, pending.ID).Return(pending, nil)
	orderRepo.On("GetByID", ctx, shipped.ID).Return(shipped, nil)
	orderRepo.On("UpdateShippingAddress", ctx, pending.ID, address).Return(nil)

	got, err := svc.UpdateOrder(ctx, buyer, services.UpdateOrderRequest{ID: pending.ID.String(), ShippingAddress: &address})
	require.NoError(t, err)
	assert.Equal(t, address, got.ShippingAddress)

	_, err = svc.UpdateOrder(ctx, buyer, services.UpdateOrderRequest{ID: shipped.ID.String(), ShippingAddress: &address})
	assert.True(t, domain.IsKind(err, domain.KindInvalidTransition))
}

func TestGetOrder_Visibility(t *testing.T) {
	productRepo := mocks.NewProductRepository(t)
	orderRepo := mocks.NewOrderRepository(t)
	svc := services.NewOrderService(productRepo, orderRepo)

	ctx := context.Background()
	buyer := customer()
	seller := domain.Principal{AccountID: uuid.New(), Role: domain.RoleHerder}
	order := orderFor(buyer.AccountID, seller.AccountID, domain.OrderPending)

	orderRepo.On("GetByID", ctx, order.ID).Return(order, nil)

	_, err := svc.GetOrder(ctx, buyer, order.ID.String())
	assert.NoError(t, err)

	_, err = svc.GetOrder(ctx, seller, order.ID.String())
	assert.NoError(t, err)

	_, err = svc.GetOrder(ctx, customer(), order.ID.String())
	assert.True(t, domain.IsKind(err, domain.KindForbidden))
}

func TestListOrders_BadCursor(t *testing.T) {
	productRepo := mocks.NewProductRepository(t)
	orderRepo := mocks.NewOrderRepository(t)
	svc := services.NewOrderService(productRepo, orderRepo)

	_, err := svc.ListOrders(context.Background(), customer(), services.ListOrdersRequest{After: "!!"})
	assert.True(t, domain.IsKind(err, domain.KindValidation))
}

func TestDeleteOrder_AdminOnly(t *testing.T) {
	productRepo := mocks.NewProductRepository(t)
	orderRepo := mocks.NewOrderRepository(t)
	svc := services.NewOrderService(productRepo, orderRepo)

	ctx := context.Background()
	buyer := customer()
	order := orderFor(buyer.AccountID, uuid.New(), domain.OrderConfirmed)

	err := svc.DeleteOrder(ctx, buyer, order.ID.String())
	assert.True(t, domain.IsKind(err, domain.KindForbidden))
	orderRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)

	orderRepo.On("GetByID", ctx, order.ID).Return(order, nil)
	orderRepo.On("Delete", ctx, order.ID).Return(nil)

	err = svc.DeleteOrder(ctx, domain.Principal{AccountID: uuid.New(), Role: domain.RoleAdmin}, order.ID.String())
	assert.NoError(t, err)
}

func TestUpdateOrder_RejectedStatusKeepsAddress(t *testing.T) {
	productRepo := mocks.NewProductRepository(t)
	orderRepo := mocks.NewOrderRepository(t)
	svc := services.NewOrderService(productRepo, orderRepo)

	ctx := context.Background()
	buyer := customer()
	order := orderFor(buyer.AccountID, uuid.New(), domain.OrderPending)
	order.ShippingAddress = "Zuunmod"

	orderRepo.On("GetByID", ctx, order.ID).Return(order, nil)

	address := "Darkhan"
	shipped := string(domain.OrderShipped)
	_, err := svc.UpdateOrder(ctx, buyer, services.UpdateOrderRequest{ID: order.ID.String(), ShippingAddress: &address, Status: &shipped})

	assert.True(t, domain.IsKind(err, domain.KindForbidden))
	orderRepo.AssertNotCalled(t, "UpdateShippingAddress", mock.Anything, mock.Anything, mock.Anything)
	assert.Equal(t, "Zuunmod", order.ShippingAddress)
}

func TestUpdateOrder_SellerMustBeHerder(t *testing.T) {
	productRepo := mocks.NewProductRepository(t)
	orderRepo := mocks.NewOrderRepository(t)
	svc := services.NewOrderService(productRepo, orderRepo)

	ctx := context.Background()
	supplier := domain.Principal{AccountID: uuid.New(), Role: domain.RoleCustomer}
	order := orderFor(uuid.New(), supplier.AccountID, domain.OrderConfirmed)

	orderRepo.On("GetByID", ctx, order.ID).Return(order, nil)

	_, err := svc.GetOrder(ctx, supplier, order.ID.String())
	assert.True(t, domain.IsKind(err, domain.KindForbidden))

	shipped := string(domain.OrderShipped)
	_, err = svc.UpdateOrder(ctx, supplier, services.UpdateOrderRequest{ID: order.ID.String(), Status: &shipped})
	assert.True(t, domain.IsKind(err, domain.KindForbidden))
}
