package payment_status_changed

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
	SetPaymentStatus(ctx context.Context, orderID string, paymentStatus entities.PaymentStatusType) (*entities.Order, error)
}
