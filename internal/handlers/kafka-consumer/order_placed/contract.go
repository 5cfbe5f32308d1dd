package order_placed

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
	Place(ctx context.Context, orderCreate entities.OrderCreate) (*entities.Order, error)
}
