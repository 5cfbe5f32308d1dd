//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=queue_stream_get_test
package queue_stream_get

import (
	"context"

	"kitchen/internal/entities"
	"kitchen/internal/service/projection"
	"kitchen/internal/service/subscription"
	"kitchen/pkg/logger"
)

type handlerLogger interface {
	Info(msg string, fields ...logger.Field)
	Warn(msg string, fields ...logger.Field)
	Error(msg string, fields ...logger.Field)
	With(fields ...logger.Field) logger.Logger
}

type Service interface {
	Subscribe(ctx context.Context, filter projection.Filter) (*subscription.Subscription, []entities.Order, error)
	Unsubscribe(sub *subscription.Subscription)
	Degraded() bool
}
