package order

import "kitchen/internal/entities"

/*
Жизненный цикл заказа — один прямой путь плюс отмена из любого активного статуса:

	accepted ──┐
	           ├──> cooking ──> ready ──> completed
	processing ┘

completed и cancelled терминальны, из них переходов нет.
*/

var transitions = map[entities.OrderStatusType][]entities.OrderStatusType{
	entities.OrderAccepted:   {entities.OrderCooking, entities.OrderCancelled},
	entities.OrderProcessing: {entities.OrderCooking, entities.OrderCancelled},
	entities.OrderCooking:    {entities.OrderReady, entities.OrderCancelled},
	entities.OrderReady:      {entities.OrderCompleted, entities.OrderCancelled},
	entities.OrderCompleted:  nil,
	entities.OrderCancelled:  nil,
}

// ValidateTransition — чистая функция (current, requested) -> ошибка.
// Никакого I/O: запись в стор делает вызывающий уже после валидации.
func ValidateTransition(current, requested entities.OrderStatusType) error {
	allowed, ok := transitions[current]
	if !ok {
		return ErrUndefinedStatus
	}
	for _, next := range allowed {
		if next == requested {
			return nil
		}
	}
	return ErrInvalidTransition
}

func IsTerminal(status entities.OrderStatusType) bool {
	return status == entities.OrderCompleted || status == entities.OrderCancelled
}

// ActiveStatuses — статусы очереди кухни, в порядке прохождения.
func ActiveStatuses() []entities.OrderStatusType {
	return []entities.OrderStatusType{
		entities.OrderAccepted,
		entities.OrderProcessing,
		entities.OrderCooking,
		entities.OrderReady,
	}
}

func TerminalStatuses() []entities.OrderStatusType {
	return []entities.OrderStatusType{
		entities.OrderCompleted,
		entities.OrderCancelled,
	}
}

func isValidStatus(status entities.OrderStatusType) bool {
	_, ok := transitions[status]
	return ok
}

func isValidPaymentStatus(status entities.PaymentStatusType) bool {
	switch status {
	case entities.PaymentPending, entities.PaymentPaid, entities.PaymentFailed, entities.PaymentCashOnDelivery:
		return true
	default:
		return false
	}
}
