package order

import (
	"context"
	"fmt"

	"kitchen/internal/entities"
)

type Service struct {
	repository Repository
	txManager  TxManager
}

func New(repository Repository, txManager TxManager) *Service {
	return &Service{
		repository: repository,
		txManager:  txManager,
	}
}

// Advance валидирует переход через машину состояний и применяет точечное
// обновление. expectedPrior — статус, который вызывающий видел у себя на
// экране; если стор уже содержит другой статус, возвращается ErrConflict и
// ничего не перезаписывается. При nil expectedPrior текущий статус читается
// из стора и CAS выполняется по прочитанному значению.
func (s *Service) Advance(ctx context.Context, orderID string, requested entities.OrderStatusType, expectedPrior *entities.OrderStatusType) (*entities.Order, error) {
	if orderID == "" {
		return nil, ErrMissingRequiredFields
	}
	if !isValidStatus(requested) {
		return nil, ErrUndefinedStatus
	}

	prior := expectedPrior
	if prior == nil {
		current, err := s.repository.GetByID(ctx, orderID)
		if err != nil {
			return nil, fmt.Errorf("get order: %w", err)
		}
		prior = &current.Status
	}

	if err := ValidateTransition(*prior, requested); err != nil {
		return nil, err
	}

	// Обновление статуса и запись в журнал переходов — одна транзакция.
	// Ошибки записи не ретраятся, повтор — явное действие оператора.
	var updated *entities.Order
	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		var updateErr error
		updated, updateErr = s.repository.UpdateStatus(ctx, orderID, requested, *prior)
		if updateErr != nil {
			return updateErr
		}
		return s.repository.InsertStatusLog(ctx, orderID, *prior, requested)
	})
	if err != nil {
		return nil, err
	}

	return updated, nil
}

// Cancel — эскейп отмены из любого активного статуса. Явное подтверждение
// оператора обязано получить вызывающее UI, не шлюз.
func (s *Service) Cancel(ctx context.Context, orderID string, expectedPrior *entities.OrderStatusType) (*entities.Order, error) {
	return s.Advance(ctx, orderID, entities.OrderCancelled, expectedPrior)
}

// Place создаёт заказ из потока размещения (kafka order.placed).
// Статус нового заказа всегда accepted, состав и сумма write-once.
func (s *Service) Place(ctx context.Context, orderCreate entities.OrderCreate) (*entities.Order, error) {
	if orderCreate.CustomerName == nil || orderCreate.TotalCents == nil {
		return nil, ErrMissingRequiredFields
	}
	if len(orderCreate.LineItems) == 0 {
		return nil, ErrInvalidLineItems
	}
	for _, item := range orderCreate.LineItems {
		if item.Name == "" || item.Quantity <= 0 || item.UnitPriceCents < 0 {
			return nil, ErrInvalidLineItems
		}
	}
	if *orderCreate.TotalCents < 0 {
		return nil, ErrInvalidTotal
	}
	if orderCreate.PaymentStatus != nil && !isValidPaymentStatus(*orderCreate.PaymentStatus) {
		return nil, ErrUndefinedPaymentStatus
	}

	placed, err := s.repository.Create(ctx, orderCreate)
	if err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}

	return placed, nil
}

// SetPaymentStatus — путь внешнего платёжного коллаборатора, статус оплаты
// меняется независимо от статуса приготовления.
func (s *Service) SetPaymentStatus(ctx context.Context, orderID string, paymentStatus entities.PaymentStatusType) (*entities.Order, error) {
	if orderID == "" {
		return nil, ErrMissingRequiredFields
	}
	if !isValidPaymentStatus(paymentStatus) {
		return nil, ErrUndefinedPaymentStatus
	}

	updated, err := s.repository.UpdatePaymentStatus(ctx, orderID, paymentStatus)
	if err != nil {
		return nil, fmt.Errorf("update payment status: %w", err)
	}

	return updated, nil
}

// GetOrder нужен вьюверам для ручного re-fetch после ErrConflict.
func (s *Service) GetOrder(ctx context.Context, orderID string) (*entities.Order, error) {
	if orderID == "" {
		return nil, ErrMissingRequiredFields
	}

	orderEntity, err := s.repository.GetByID(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("get order: %w", err)
	}

	return orderEntity, nil
}
