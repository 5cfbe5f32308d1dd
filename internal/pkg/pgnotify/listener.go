package pgnotify

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"kitchen/internal/entities"
	"kitchen/pkg/logger"
)

var ErrNotConnected = errors.New("pgnotify: listener is not connected")

// Listener — поток уведомлений стора поверх LISTEN/NOTIFY. Триггер на
// таблице orders шлёт в канал JSON {order_id, kind} на каждый insert/update
// (см. migrations). Держит одно выделенное соединение из общего пула;
// переподключением управляет вызывающий (хаб).
type Listener struct {
	log     logger.Logger
	pool    *pgxpool.Pool
	channel string

	conn *pgxpool.Conn
}

type payload struct {
	OrderID string `json:"order_id"`
	Kind    string `json:"kind"`
}

func NewListener(log logger.Logger, pool *pgxpool.Pool, channel string) *Listener {
	return &Listener{
		log:     log.With(logger.NewField("channel", channel)),
		pool:    pool,
		channel: channel,
	}
}

// Connect занимает соединение из пула и выполняет LISTEN. Повторный вызов
// сбрасывает предыдущее соединение.
func (l *Listener) Connect(ctx context.Context) error {
	l.release()

	conn, err := l.pool.Acquire(ctx)
	if err != nil {
		return fmt.Errorf("acquire listen connection: %w", err)
	}

	_, err = conn.Exec(ctx, "LISTEN "+pgx.Identifier{l.channel}.Sanitize())
	if err != nil {
		conn.Release()
		return fmt.Errorf("listen %s: %w", l.channel, err)
	}

	l.conn = conn
	l.log.Info("change stream connected")
	return nil
}

// Listen блокируется до обрыва соединения или отмены контекста. Битые
// payload'ы логируются и пропускаются, они не валят поток.
func (l *Listener) Listen(ctx context.Context, onEvent func(entities.ChangeEvent)) error {
	if l.conn == nil {
		return ErrNotConnected
	}
	defer l.release()

	for {
		notification, err := l.conn.Conn().WaitForNotification(ctx)
		if err != nil {
			return fmt.Errorf("wait for notification: %w", err)
		}

		var p payload
		if err := json.Unmarshal([]byte(notification.Payload), &p); err != nil {
			l.log.With(
				logger.NewField("payload", notification.Payload),
				logger.NewField("error", err),
			).Error("bad change notification payload")
			continue
		}

		onEvent(entities.ChangeEvent{
			OrderID: p.OrderID,
			Kind:    entities.ChangeKind(p.Kind),
		})
	}
}

func (l *Listener) release() {
	if l.conn != nil {
		l.conn.Release()
		l.conn = nil
	}
}
