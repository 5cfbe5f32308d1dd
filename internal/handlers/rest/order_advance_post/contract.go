//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=order_advance_post_test
package order_advance_post

import (
	"context"

	"kitchen/internal/entities"
	"kitchen/pkg/logger"
)

type handlerLogger interface {
	Info(msg string, fields ...logger.Field)
	Warn(msg string, fields ...logger.Field)
	Error(msg string, fields ...logger.Field)
	With(fields ...logger.Field) logger.Logger
}

type Service interface {
	Advance(ctx context.Context, orderID string, requested entities.OrderStatusType, expectedPrior *entities.OrderStatusType) (*entities.Order, error)
}
