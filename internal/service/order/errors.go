package order

import "errors"

var (
	ErrMissingRequiredFields  = errors.New("missing required fields")
	ErrUndefinedStatus        = errors.New("undefined order status")
	ErrUndefinedPaymentStatus = errors.New("undefined payment status")
	ErrInvalidLineItems       = errors.New("invalid line items")
	ErrInvalidTotal           = errors.New("invalid order total")

	// ErrInvalidTransition — запрошенный переход не разрешён из текущего статуса.
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrOrderNotFound     = errors.New("order not found")
	// ErrConflict — статус в сторе уже не совпадает с ожидаемым, заказ
	// параллельно изменил другой оператор. Ретрай только руками после re-fetch.
	ErrConflict = errors.New("order status changed concurrently")
)
