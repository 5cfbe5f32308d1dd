package queue_stream_get

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"kitchen/internal/entities"
	"kitchen/internal/generated/dto"
	"kitchen/internal/service/projection"
	"kitchen/pkg/logger"
)

const (
	keepaliveInterval = 30 * time.Second
	// подсказка клиенту, через сколько миллисекунд переподключаться
	retryHintMs = 2000
)

type Handler struct {
	log     handlerLogger
	service Service
}

func New(log handlerLogger, service Service) *Handler {
	handlerLog := log.With()

	return &Handler{
		log:     handlerLog,
		service: service,
	}
}

// ServeHTTP — живая очередь по SSE: событие snapshot при подключении, затем
// событие update с полным пересобранным снапшотом на каждое изменение стора.
// Смена вкладки статуса — дело клиента (query-параметр только сужает вывод).
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	filter := projection.ActiveFilter()

	var selected *entities.OrderStatusType
	if statusParam := r.URL.Query().Get("status"); statusParam != "" {
		status := entities.OrderStatusType(statusParam)
		if !filter.Matches(status) {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		selected = &status
	}

	sub, snapshot, err := h.service.Subscribe(r.Context(), filter)
	if err != nil {
		h.log.With(
			logger.NewField("error", err),
		).Error("queue stream subscribe failed")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	defer h.service.Unsubscribe(sub)

	streamLog := h.log.With(
		logger.NewField("remote_addr", r.RemoteAddr),
	)
	streamLog.Info("queue stream connected")

	view := projection.NewView(filter, snapshot)
	view.Select(selected)

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")

	fmt.Fprintf(w, "retry: %d\n\n", retryHintMs)
	h.writeEvent(w, "snapshot", view)
	flusher.Flush()

	ticker := time.NewTicker(keepaliveInterval)
	defer ticker.Stop()

	for {
		select {
		case <-r.Context().Done():
			streamLog.Info("queue stream disconnected")
			return

		case <-ticker.C:
			fmt.Fprint(w, ": keepalive\n\n")
			flusher.Flush()

		case refreshed, ok := <-sub.Updates():
			if !ok {
				streamLog.Warn("queue stream subscription closed")
				return
			}
			view.Replace(refreshed)
			h.writeEvent(w, "update", view)
			flusher.Flush()
		}
	}
}

func (h *Handler) writeEvent(w http.ResponseWriter, name string, view *projection.View) {
	counts := make(map[string]int)
	for status, count := range view.Counts() {
		counts[status.String()] = count
	}

	visible := view.Orders()
	orders := make([]dto.Order, 0, len(visible))
	for i := range visible {
		orders = append(orders, orderToDTO(&visible[i]))
	}

	payload := dto.QueueResponse{
		Orders:   orders,
		Counts:   counts,
		Total:    view.Total(),
		Degraded: h.service.Degraded(),
	}

	data, err := json.Marshal(payload)
	if err != nil {
		h.log.With(
			logger.NewField("error", err),
		).Error("encode SSE payload")
		return
	}

	fmt.Fprintf(w, "event: %s\ndata: %s\n\n", name, data)
}

func orderToDTO(orderEntity *entities.Order) dto.Order {
	lineItems := make([]dto.LineItem, 0, len(orderEntity.LineItems))
	for _, item := range orderEntity.LineItems {
		lineItem := dto.LineItem{
			Name:           item.Name,
			Quantity:       item.Quantity,
			UnitPriceCents: item.UnitPriceCents,
		}
		if len(item.Options) > 0 {
			options := item.Options
			lineItem.Options = &options
		}
		lineItems = append(lineItems, lineItem)
	}

	return dto.Order{
		ID:            orderEntity.ID,
		Status:        orderEntity.Status.String(),
		PaymentStatus: orderEntity.PaymentStatus.String(),
		CustomerName:  orderEntity.CustomerName,
		LineItems:     lineItems,
		TotalCents:    orderEntity.TotalCents,
		CreatedAt:     orderEntity.CreatedAt,
		UpdatedAt:     orderEntity.UpdatedAt,
	}
}
