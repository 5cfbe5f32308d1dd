package order_advance_post

import (
	"encoding/json"
	"errors"
	"net/http"

	"kitchen/internal/entities"
	"kitchen/internal/generated/dto"
	"kitchen/internal/service/order"
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

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var orderAdvanceDTO dto.OrderAdvanceRequest
	err := json.NewDecoder(r.Body).Decode(&orderAdvanceDTO)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	requested := entities.OrderStatusType(orderAdvanceDTO.Status)

	var expectedPrior *entities.OrderStatusType
	if orderAdvanceDTO.ExpectedStatus != nil {
		expected := entities.OrderStatusType(*orderAdvanceDTO.ExpectedStatus)
		expectedPrior = &expected
	}

	orderEntity, err := h.service.Advance(r.Context(), orderAdvanceDTO.ID, requested, expectedPrior)
	if err != nil {
		switch {
		case errors.Is(err, order.ErrMissingRequiredFields),
			errors.Is(err, order.ErrUndefinedStatus):
			w.WriteHeader(http.StatusBadRequest)
		case errors.Is(err, order.ErrOrderNotFound):
			w.WriteHeader(http.StatusNotFound)
		case errors.Is(err, order.ErrConflict):
			w.WriteHeader(http.StatusConflict)
		case errors.Is(err, order.ErrInvalidTransition):
			w.WriteHeader(http.StatusUnprocessableEntity)
		default:
			w.WriteHeader(http.StatusInternalServerError)
		}
		return
	}

	response := dto.OrderActionResponse{
		Order: orderToDTO(orderEntity),
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
