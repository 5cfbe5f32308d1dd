package order

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"kitchen/internal/entities"
	"kitchen/internal/repository"
	"kitchen/internal/service/order"
	"kitchen/internal/service/projection"
)

var qb sq.StatementBuilderType = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

const orderColumns = "id, status, payment_status, customer_name, line_items, total_cents, created_at, updated_at"

type Repository struct {
	querier Querier
}

func New(querier Querier) *Repository {
	return &Repository{
		querier: querier,
	}
}

// GetByFilter — снапшот заказов по фильтру подписки, в порядке фильтра.
func (r *Repository) GetByFilter(ctx context.Context, filter projection.Filter) ([]entities.Order, error) {
	statuses := make([]string, 0, len(filter.Statuses))
	for _, status := range filter.Statuses {
		statuses = append(statuses, status.String())
	}

	orderBy := "created_at ASC"
	if filter.Ordering == projection.NewestFirst {
		orderBy = "created_at DESC"
	}

	query, args, err := qb.
		Select(orderColumns).
		From("orders").
		Where(sq.Eq{"status": statuses}).
		OrderBy(orderBy).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("unexpected order repository getbyfilter error: %w", err)
	}

	rows, err := r.querier.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("unexpected order repository getbyfilter error: %w", err)
	}
	defer rows.Close()

	orderModels := make([]OrderDB, 0, 16)
	for rows.Next() {
		var orderModel OrderDB
		err := rows.Scan(
			&orderModel.ID,
			&orderModel.Status,
			&orderModel.PaymentStatus,
			&orderModel.CustomerName,
			&orderModel.LineItems,
			&orderModel.TotalCents,
			&orderModel.CreatedAt,
			&orderModel.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("unexpected order repository getbyfilter error: %w", err)
		}
		orderModels = append(orderModels, orderModel)
	}

	err = rows.Err()
	if err != nil {
		return nil, fmt.Errorf("unexpected order repository getbyfilter error: %w", err)
	}

	return ToDomainList(orderModels)
}

func (r *Repository) GetByID(ctx context.Context, id string) (*entities.Order, error) {
	query := `SELECT id, status, payment_status, customer_name, line_items, total_cents, created_at, updated_at
		FROM orders
		WHERE id = $1`

	orderModel, err := r.scanOrder(r.querier.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) ||
			repository.IsPgErrorWithCode(err, repository.PgErrInvalidTextRepresentation) {
			return nil, order.ErrOrderNotFound
		}
		return nil, fmt.Errorf("unexpected order repository getbyid error: %w", err)
	}

	return ToDomain(orderModel)
}

// Create вставляет заказ из потока размещения. id назначает стор, если
// событие его не принесло; статус нового заказа всегда accepted.
func (r *Repository) Create(ctx context.Context, orderCreate entities.OrderCreate) (*entities.Order, error) {
	lineItems, err := lineItemsToJSON(orderCreate.LineItems)
	if err != nil {
		return nil, fmt.Errorf("unexpected order repository create error: %w", err)
	}

	paymentStatus := entities.PaymentPending
	if orderCreate.PaymentStatus != nil {
		paymentStatus = *orderCreate.PaymentStatus
	}

	builder := qb.
		Insert("orders").
		Suffix("RETURNING " + orderColumns)

	if orderCreate.ID != nil {
		builder = builder.
			Columns("id", "status", "payment_status", "customer_name", "line_items", "total_cents").
			Values(*orderCreate.ID, entities.OrderAccepted.String(), paymentStatus.String(), *orderCreate.CustomerName, lineItems, *orderCreate.TotalCents)
	} else {
		builder = builder.
			Columns("status", "payment_status", "customer_name", "line_items", "total_cents").
			Values(entities.OrderAccepted.String(), paymentStatus.String(), *orderCreate.CustomerName, lineItems, *orderCreate.TotalCents)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("unexpected order repository create error: %w", err)
	}

	orderModel, err := r.scanOrder(r.querier.QueryRow(ctx, query, args...))
	if err != nil {
		if repository.IsPgErrorWithCode(err, repository.PgErrUniqueViolation) {
			return nil, order.ErrConflict
		}
		return nil, fmt.Errorf("unexpected order repository create error: %w", err)
	}

	return ToDomain(orderModel)
}

// UpdateStatus — условное точечное обновление: строка меняется только если
// текущий статус совпал с expectedPrior. Промах различается на NotFound и
// Conflict повторным чтением строки.
func (r *Repository) UpdateStatus(ctx context.Context, id string, newStatus, expectedPrior entities.OrderStatusType) (*entities.Order, error) {
	// updated_at трогает BEFORE UPDATE триггер
	query := `UPDATE orders
		SET status = $1
		WHERE id = $2 AND status = $3
		RETURNING ` + orderColumns

	orderModel, err := r.scanOrder(r.querier.QueryRow(ctx, query, newStatus.String(), id, expectedPrior.String()))
	if err == nil {
		return ToDomain(orderModel)
	}

	if repository.IsPgErrorWithCode(err, repository.PgErrInvalidTextRepresentation) {
		return nil, order.ErrOrderNotFound
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("unexpected order repository updatestatus error: %w", err)
	}

	// CAS промахнулся: либо заказа нет, либо его успел изменить другой актор
	var currentStatus string
	err = r.querier.QueryRow(ctx, `SELECT status FROM orders WHERE id = $1`, id).Scan(&currentStatus)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, order.ErrOrderNotFound
		}
		return nil, fmt.Errorf("unexpected order repository updatestatus error: %w", err)
	}

	return nil, order.ErrConflict
}

func (r *Repository) UpdatePaymentStatus(ctx context.Context, id string, paymentStatus entities.PaymentStatusType) (*entities.Order, error) {
	query := `UPDATE orders
		SET payment_status = $1
		WHERE id = $2
		RETURNING ` + orderColumns

	orderModel, err := r.scanOrder(r.querier.QueryRow(ctx, query, paymentStatus.String(), id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) ||
			repository.IsPgErrorWithCode(err, repository.PgErrInvalidTextRepresentation) {
			return nil, order.ErrOrderNotFound
		}
		return nil, fmt.Errorf("unexpected order repository updatepaymentstatus error: %w", err)
	}

	return ToDomain(orderModel)
}

func (r *Repository) InsertStatusLog(ctx context.Context, id string, from, to entities.OrderStatusType) error {
	query := `INSERT INTO order_status_log (order_id, from_status, to_status)
		VALUES ($1, $2, $3)`

	_, err := r.querier.Exec(ctx, query, id, from.String(), to.String())
	if err != nil {
		return fmt.Errorf("unexpected order repository insertstatuslog error: %w", err)
	}

	return nil
}

func (r *Repository) scanOrder(row pgx.Row) (*OrderDB, error) {
	var orderModel OrderDB
	err := row.Scan(
		&orderModel.ID,
		&orderModel.Status,
		&orderModel.PaymentStatus,
		&orderModel.CustomerName,
		&orderModel.LineItems,
		&orderModel.TotalCents,
		&orderModel.CreatedAt,
		&orderModel.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &orderModel, nil
}
