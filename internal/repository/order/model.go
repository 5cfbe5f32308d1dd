package order

import "time"

type OrderDB struct {
	ID            string
	Status        string
	PaymentStatus string
	CustomerName  string
	LineItems     []byte
	TotalCents    int64
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
