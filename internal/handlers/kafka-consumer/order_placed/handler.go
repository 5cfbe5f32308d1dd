package order_placed

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/IBM/sarama"
	"kitchen/internal/entities"
	orderservice "kitchen/internal/service/order"
	"kitchen/pkg/logger"
)

type placedEvent struct {
	OrderID       string              `json:"order_id"`
	CustomerName  string              `json:"customer_name"`
	PaymentStatus string              `json:"payment_status"`
	LineItems     []entities.LineItem `json:"line_items"`
	TotalCents    int64               `json:"total_cents"`
}

type Handler struct {
	orderService             Service
	log                      handlerLogger
	messageProcessingTimeout time.Duration
}

func New(log handlerLogger, orderService Service, timeout time.Duration) *Handler {
	handlerLog := log.With()

	return &Handler{
		orderService:             orderService,
		log:                      handlerLog,
		messageProcessingTimeout: timeout,
	}
}

func (h *Handler) Setup(sarama.ConsumerGroupSession) error {
	return nil
}

func (h *Handler) Cleanup(sarama.ConsumerGroupSession) error {
	return nil
}

func (h *Handler) ConsumeClaim(sess sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	for {
		select {
		case message, ok := <-claim.Messages():
			if !ok {
				// Messages() закрыт — выходим
				h.log.Info("order.placed: claim.Messages() closed, exiting ConsumeClaim")
				return nil
			}

			shouldExit := h.messageProcessing(sess, message)
			if shouldExit {
				return nil
			}

		case <-sess.Context().Done():
			// Сессия закрыта (rebalance или остановка consumer group) — выходим
			h.log.Info("order.placed: session context done, exiting ConsumeClaim")
			return nil
		}
	}
}

// messageProcessing обрабатывает одно сообщение из Kafka.
// Возвращает true, если нужно прервать ConsumeClaim (при отмене контекста).
// Возвращает false для продолжения обработки следующих сообщений.
func (h *Handler) messageProcessing(sess sarama.ConsumerGroupSession, message *sarama.ConsumerMessage) bool {
	ctx, cancel := context.WithTimeout(sess.Context(), h.messageProcessingTimeout)
	defer cancel()

	var event placedEvent
	err := json.Unmarshal(message.Value, &event)
	if err != nil {
		h.log.With(
			logger.NewField("error", err),
		).Error("order.placed handler received bad message")
		sess.MarkMessage(message, "")
		return false
	}

	msgLog := h.log.With(
		logger.NewField("order", event.OrderID),
		logger.NewField("customer", event.CustomerName),
		logger.NewField("offset", message.Offset),
	)

	msgLog.Info("order.placed processing")

	paymentStatus := entities.PaymentStatusType(event.PaymentStatus)
	orderCreate := entities.OrderCreate{
		CustomerName: &event.CustomerName,
		LineItems:    event.LineItems,
		TotalCents:   &event.TotalCents,
	}
	if event.OrderID != "" {
		orderCreate.ID = &event.OrderID
	}
	if event.PaymentStatus != "" {
		orderCreate.PaymentStatus = &paymentStatus
	}

	order, err := h.orderService.Place(ctx, orderCreate)
	if err != nil {
		switch {
		case errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded):
			msgLog.With(
				logger.NewField("error", err),
			).Warn("order.placed handler context cancelled, message will be reprocessed")
			return true

		case errors.Is(err, orderservice.ErrConflict):
			// повторная доставка того же заказа, заказ уже принят
			msgLog.With(
				logger.NewField("error", err),
			).Warn("order.placed handler duplicate order")

		default:
			msgLog.With(
				logger.NewField("error", err),
			).Warn("order.placed handler failed to process order")
		}
		sess.MarkMessage(message, "")
		return false
	}

	msgLog = h.log.With(
		logger.NewField("order", order.ID),
		logger.NewField("status", order.Status.String()),
		logger.NewField("offset", message.Offset),
	)
	msgLog.Info("order.placed: processed")

	sess.MarkMessage(message, "")
	return false
}
