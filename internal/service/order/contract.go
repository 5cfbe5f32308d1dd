//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=order_test
package order

import (
	"context"

	"kitchen/internal/entities"
)

type Repository interface {
	GetByID(ctx context.Context, id string) (*entities.Order, error)
	Create(ctx context.Context, orderCreate entities.OrderCreate) (*entities.Order, error)
	// UpdateStatus применяет точечное обновление только если текущий статус
	// в сторе совпадает с expectedPrior (compare-and-swap).
	UpdateStatus(ctx context.Context, id string, newStatus, expectedPrior entities.OrderStatusType) (*entities.Order, error)
	UpdatePaymentStatus(ctx context.Context, id string, paymentStatus entities.PaymentStatusType) (*entities.Order, error)
	InsertStatusLog(ctx context.Context, id string, from, to entities.OrderStatusType) error
}

type TxManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}
