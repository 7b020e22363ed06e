package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Product struct {
	ID      uuid.UUID       `json:"id"`
	OwnerID uuid.UUID       `json:"ownerId"`
	Name    string          `json:"name"`
	Price   decimal.Decimal `json:"price"`
	Stock   int             `json:"stock"`
}

type Order struct {
	ID              uuid.UUID       `json:"id"`
	UserID          uuid.UUID       `json:"userId"`
	ShippingAddress string          `json:"shippingAddress"`
	TotalPrice      decimal.Decimal `json:"totalPrice"`
	Status          OrderStatus     `json:"status"`
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`
	Items           []OrderItem     `json:"items"`
}

// OrderItem carries the unit price as it was when the order was placed.
type OrderItem struct {
	ID        uuid.UUID       `json:"id"`
	OrderID   uuid.UUID       `json:"orderId"`
	ProductID uuid.UUID       `json:"productId"`
	SellerID  uuid.UUID       `json:"sellerId"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
}

func (i OrderItem) Subtotal() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// SoldBy reports whether sellerID supplied at least one item of the order.
func (o *Order) SoldBy(sellerID uuid.UUID) bool {
	for _, item := range o.Items {
		if item.SellerID == sellerID {
			return true
		}
	}
	return false
}

// SellerOf reports whether p acts as a seller of the order: a herder who
// supplied at least one of its items.
func (o *Order) SellerOf(p Principal) bool {
	return p.Role == RoleHerder && o.SoldBy(p.AccountID)
}

// Quantities sums the ordered quantity per product.
func (o *Order) Quantities() map[uuid.UUID]int {
	q := make(map[uuid.UUID]int, len(o.Items))
	for _, item := range o.Items {
		q[item.ProductID] += item.Quantity
	}
	return q
}

type OrderFilter struct {
	UserID uuid.UUID
	Status OrderStatus
}
