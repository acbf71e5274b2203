package models

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/vitrine/backoffice/pkg/collection"
)

// OrderStatus is the 1–9 status code of an order.
type OrderStatus int

const (
	StatusAwaitingPayment OrderStatus = iota + 1
	StatusPaymentApproved
	StatusPicking
	StatusShipped
	StatusInTransit
	StatusOutForDelivery
	StatusDelivered
	StatusCanceled
	StatusReturned
)

var statusLabels = map[OrderStatus]string{
	StatusAwaitingPayment: "Aguardando pagamento",
	StatusPaymentApproved: "Pagamento aprovado",
	StatusPicking:         "Em separação",
	StatusShipped:         "Enviado",
	StatusInTransit:       "Em trânsito",
	StatusOutForDelivery:  "Saiu para entrega",
	StatusDelivered:       "Entregue",
	StatusCanceled:        "Cancelado",
	StatusReturned:        "Devolvido",
}

// Valid reports whether s is one of the nine known codes.
func (s OrderStatus) Valid() bool {
	_, ok := statusLabels[s]
	return ok
}

// Label returns the display label, or "" for an unknown code.
func (s OrderStatus) Label() string {
	return statusLabels[s]
}

// OrderStatuses returns every status in code order.
func OrderStatuses() []OrderStatus {
	out := make([]OrderStatus, 0, len(statusLabels))
	for s := StatusAwaitingPayment; s <= StatusReturned; s++ {
		out = append(out, s)
	}
	return out
}

// Send methods accepted for send_method.
const (
	SendMethodSedex = "sedex"
	SendMethodPAC   = "pac"
)

type Order struct {
	ID            uint        `gorm:"primaryKey"`
	Invoice       string      `gorm:"size:50;index"`
	CustomerName  string      `gorm:"size:255"`
	SelledDate    time.Time   `gorm:"index"`
	PaymentMethod string      `gorm:"size:50"`
	SendMethod    string      `gorm:"size:20"`
	TrackingCode  string      `gorm:"size:100"`
	StatusOrder   OrderStatus `gorm:"not null;index"`
	ShippedDate   *time.Time
	EstimatedDate *time.Time
	FinishedDate  *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time

	Products []OrderProduct `gorm:"constraint:OnDelete:CASCADE"`
}

// OrderProduct is one line of an order.
type OrderProduct struct {
	ID                 uint            `gorm:"primaryKey"`
	OrderID            uint            `gorm:"not null;index"`
	ProductID          uint            `gorm:"not null;index"`
	Product            Product         `gorm:"constraint:OnDelete:RESTRICT"`
	Quantity           int             `gorm:"not null"`
	UnitaryValueSelled decimal.Decimal `gorm:"type:decimal(12,2);not null"`
}

// Total is quantity × unit price.
func (l OrderProduct) Total() decimal.Decimal {
	return l.UnitaryValueSelled.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Quantity sums the line quantities.
func (o Order) Quantity() int {
	return collection.Reduce(o.Products, 0, func(n int, l OrderProduct) int { return n + l.Quantity })
}

// ValueTotal sums the line totals.
func (o Order) ValueTotal() decimal.Decimal {
	return collection.Reduce(o.Products, decimal.Zero, func(sum decimal.Decimal, l OrderProduct) decimal.Decimal {
		return sum.Add(l.Total())
	})
}
