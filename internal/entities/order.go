package entities

import "time"

type Order struct {
	ID            string
	Status        OrderStatusType
	PaymentStatus PaymentStatusType
	CustomerName  string
	LineItems     []LineItem
	// TotalCents фиксируется при создании заказа и больше не пересчитывается
	TotalCents int64
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// LineItem неизменяем после размещения заказа.
type LineItem struct {
	Name           string   `json:"name"`
	Quantity       int      `json:"quantity"`
	UnitPriceCents int64    `json:"unit_price_cents"`
	Options        []string `json:"options,omitempty"`
}

type OrderStatusType string

const (
	OrderAccepted   OrderStatusType = "accepted"
	OrderProcessing OrderStatusType = "processing"
	OrderCooking    OrderStatusType = "cooking"
	OrderReady      OrderStatusType = "ready"
	OrderCompleted  OrderStatusType = "completed"
	OrderCancelled  OrderStatusType = "cancelled"
)

func (s OrderStatusType) String() string {
	return string(s)
}

type PaymentStatusType string

const (
	PaymentPending        PaymentStatusType = "pending"
	PaymentPaid           PaymentStatusType = "paid"
	PaymentFailed         PaymentStatusType = "failed"
	PaymentCashOnDelivery PaymentStatusType = "cash_on_delivery"
)

func (s PaymentStatusType) String() string {
	return string(s)
}

type OrderModify struct {
	ID            *string
	Status        *OrderStatusType
	PaymentStatus *PaymentStatusType
}

// OrderCreate приходит из потока размещения заказов (kafka order.placed).
type OrderCreate struct {
	ID            *string
	CustomerName  *string
	PaymentStatus *PaymentStatusType
	LineItems     []LineItem
	TotalCents    *int64
}

// ChangeEvent — уведомление стора об изменении строки заказа.
type ChangeEvent struct {
	OrderID string
	Kind    ChangeKind
}

type ChangeKind string

const (
	ChangeInsert ChangeKind = "insert"
	ChangeUpdate ChangeKind = "update"
)
