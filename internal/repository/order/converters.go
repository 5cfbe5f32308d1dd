package order

import (
	"encoding/json"
	"fmt"

	"kitchen/internal/entities"
)

func ToDomain(o *OrderDB) (*entities.Order, error) {
	if o == nil {
		return nil, nil
	}

	var lineItems []entities.LineItem
	if len(o.LineItems) > 0 {
		if err := json.Unmarshal(o.LineItems, &lineItems); err != nil {
			return nil, fmt.Errorf("decode line items: %w", err)
		}
	}

	return &entities.Order{
		ID:            o.ID,
		Status:        entities.OrderStatusType(o.Status),
		PaymentStatus: entities.PaymentStatusType(o.PaymentStatus),
		CustomerName:  o.CustomerName,
		LineItems:     lineItems,
		TotalCents:    o.TotalCents,
		CreatedAt:     o.CreatedAt,
		UpdatedAt:     o.UpdatedAt,
	}, nil
}

func ToDomainList(ordersDB []OrderDB) ([]entities.Order, error) {
	result := make([]entities.Order, 0, len(ordersDB))
	for i := range ordersDB {
		orderEntity, err := ToDomain(&ordersDB[i])
		if err != nil {
			return nil, err
		}
		result = append(result, *orderEntity)
	}
	return result, nil
}

func lineItemsToJSON(items []entities.LineItem) ([]byte, error) {
	if items == nil {
		items = []entities.LineItem{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		return nil, fmt.Errorf("encode line items: %w", err)
	}
	return data, nil
}
