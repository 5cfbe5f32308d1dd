//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=subscription_test
package subscription

import (
	"context"

	"kitchen/internal/entities"
	"kitchen/internal/service/projection"
)

type Repository interface {
	GetByFilter(ctx context.Context, filter projection.Filter) ([]entities.Order, error)
}

// ChangeStream — единственное разделяемое соединение к потоку уведомлений
// стора. Владеет им только хаб; подписки собственных соединений не открывают.
type ChangeStream interface {
	// Connect устанавливает (или восстанавливает) соединение.
	Connect(ctx context.Context) error
	// Listen блокируется, вызывая onEvent на каждое уведомление,
	// и возвращает ошибку при обрыве соединения.
	Listen(ctx context.Context, onEvent func(entities.ChangeEvent)) error
}
