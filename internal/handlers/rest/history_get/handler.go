package history_get

import (
	"encoding/json"
	"net/http"

	"kitchen/internal/entities"
	"kitchen/internal/generated/dto"
	"kitchen/internal/service/projection"
	"kitchen/pkg/logger"
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

// ServeHTTP отдаёт завершённые и отменённые заказы, новые сверху.
// История запрашивается по требованию, живая подписка здесь не нужна.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	filter := projection.HistoryFilter()

	sub, snapshot, err := h.service.Subscribe(r.Context(), filter)
	if err != nil {
		h.log.With(
			logger.NewField("error", err),
		).Error("history snapshot failed")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	h.service.Unsubscribe(sub)

	view := projection.NewView(filter, snapshot)

	visible := view.Orders()
	orders := make([]dto.Order, 0, len(visible))
	for i := range visible {
		orders = append(orders, orderToDTO(&visible[i]))
	}

	response := dto.HistoryResponse{
		Orders: orders,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	err = json.NewEncoder(w).Encode(response)
	if err != nil {
		h.log.With(
			logger.NewField("error", err),
		).Error("encode JSON response")
	}
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
