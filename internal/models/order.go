package models

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus is the delivery state of an order
type OrderStatus string

const (
	StatusInProcess      OrderStatus = "order in process"
	StatusOutForDelivery OrderStatus = "out for delivery"
	StatusDelivered      OrderStatus = "delivered"
)

// OrderStatuses lists every settable status in display order
var OrderStatuses = []OrderStatus{StatusInProcess, StatusOutForDelivery, StatusDelivered}

// Valid reports whether s is one of the known statuses
func (s OrderStatus) Valid() bool {
	for _, known := range OrderStatuses {
		if s == known {
			return true
		}
	}
	return false
}

// Address is the delivery address collected at checkout
type Address struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	City      string `json:"city"`
	Pincode   string `json:"pincode"`
	Phone     string `json:"phone"`
}

// Complete reports whether all five fields are non-empty
func (a Address) Complete() bool {
	for _, v := range []string{a.FirstName, a.LastName, a.City, a.Pincode, a.Phone} {
		if strings.TrimSpace(v) == "" {
			return false
		}
	}
	return true
}

// OrderItem is a line of a placed order
type OrderItem struct {
	Name     string  `json:"name"`
	Image    string  `json:"image"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
}

// Total is price × quantity
func (i OrderItem) Total() decimal.Decimal {
	return decimal.NewFromFloat(i.Price).Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// OrderRequest is the checkout payload
type OrderRequest struct {
	Items   []OrderItem `json:"items"`
	Address Address     `json:"address"`
}

// Order represents a placed order
type Order struct {
	ID        string      `json:"_id"`
	Items     []OrderItem `json:"items"`
	Address   Address     `json:"address"`
	Status    OrderStatus `json:"status"`
	CreatedAt time.Time   `json:"createdAt"`
}

// Total sums the order lines
func (o Order) Total() decimal.Decimal {
	total := decimal.Zero
	for _, item := range o.Items {
		total = total.Add(item.Total())
	}
	return total
}

// ShortID is the last six characters of the id, upper-cased
func (o Order) ShortID() string {
	id := o.ID
	if len(id) > 6 {
		id = id[len(id)-6:]
	}
	return strings.ToUpper(id)
}

// StatusUpdate is the admin PATCH payload
type StatusUpdate struct {
	Status OrderStatus `json:"status"`
}
