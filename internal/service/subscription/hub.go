package subscription

import (
	"context"
	"fmt"
	"sync"
	"time"

	"kitchen/internal/entities"
	"kitchen/internal/service/projection"
	"kitchen/pkg/logger"
	retrierconfig "kitchen/pkg/retrier"
	"kitchen/pkg/retrier/backoff_adapter"
)

const (
	randomization = 0.5
	multiplier    = 2
)

type Config struct {
	// QueryTimeout ограничивает каждый снапшот-запрос к стору.
	QueryTimeout time.Duration
	// Параметры бэкоффа переподключения к потоку уведомлений.
	ReconnectInitialInterval time.Duration
	ReconnectMaxInterval     time.Duration
	// DegradedAfterAttempts — после скольких неудачных попыток подряд
	// выставляется сигнал Degraded (вьюверы могут показывать устаревшее).
	DegradedAfterAttempts uint64
}

// Subscription — контекст одного вьювера внутри хаба. Обновления одного
// вьювера сериализованы его каналом; канал вместимостью 1 конфлейтит
// промежуточные снапшоты, оставляя последний (замена целиком идемпотентна).
type Subscription struct {
	id      uint64
	filter  projection.Filter
	updates chan []entities.Order
}

func (s *Subscription) Filter() projection.Filter {
	return s.filter
}

// Updates закрывается при Unsubscribe.
func (s *Subscription) Updates() <-chan []entities.Order {
	return s.updates
}

// Hub мультиплексирует один поток уведомлений стора на N независимых
// подписок. Консервативная стратегия: на каждое событие полный re-query
// отфильтрованного набора (один запрос на каждый различный фильтр), вместо
// точечного диффа — корректность в обмен на лишние чтения.
type Hub struct {
	log        logger.Logger
	repository Repository
	stream     ChangeStream
	cfg        Config

	mu     sync.Mutex
	subs   map[uint64]*Subscription
	nextID uint64

	degradedMu sync.RWMutex
	degraded   bool
}

func New(log logger.Logger, repository Repository, stream ChangeStream, cfg Config) *Hub {
	return &Hub{
		log:        log.With(logger.NewField("component", "subscription_hub")),
		repository: repository,
		stream:     stream,
		cfg:        cfg,
		subs:       make(map[uint64]*Subscription),
	}
}

// Subscribe регистрирует фильтр вьювера и возвращает стартовый снапшот
// подходящих заказов в порядке фильтра.
func (h *Hub) Subscribe(ctx context.Context, filter projection.Filter) (*Subscription, []entities.Order, error) {
	queryCtx, cancel := context.WithTimeout(ctx, h.cfg.QueryTimeout)
	defer cancel()

	snapshot, err := h.repository.GetByFilter(queryCtx, filter)
	if err != nil {
		return nil, nil, fmt.Errorf("initial snapshot: %w", err)
	}

	h.mu.Lock()
	h.nextID++
	sub := &Subscription{
		id:      h.nextID,
		filter:  filter,
		updates: make(chan []entities.Order, 1),
	}
	h.subs[sub.id] = sub
	h.mu.Unlock()

	SubscriptionsActive.Inc()

	return sub, snapshot, nil
}

// Unsubscribe снимает регистрацию и освобождает ресурсы подписки. Идемпотентен.
func (h *Hub) Unsubscribe(sub *Subscription) {
	if sub == nil {
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.subs[sub.id]; !ok {
		return
	}
	delete(h.subs, sub.id)
	close(sub.updates)
	SubscriptionsActive.Dec()
}

// Degraded сигнализирует интерфейсу, что данные могут быть устаревшими.
func (h *Hub) Degraded() bool {
	h.degradedMu.RLock()
	defer h.degradedMu.RUnlock()
	return h.degraded
}

// Run держит разделяемое соединение к потоку уведомлений: подключение с
// бэкоффом, после каждого восстановления — полный снапшот-ремонт всех живых
// подписок (доставка at-least-once через ресинхронизацию, без реплея).
// Блокируется до отмены контекста.
func (h *Hub) Run(ctx context.Context) error {
	for {
		if err := h.connectWithBackoff(ctx); err != nil {
			return err
		}
		h.setDegraded(false)
		h.resyncAll(ctx)

		err := h.stream.Listen(ctx, func(event entities.ChangeEvent) {
			h.handleEvent(ctx, event)
		})
		if ctx.Err() != nil {
			return ctx.Err()
		}

		StreamDisconnectsTotal.Inc()
		h.log.Warn("change stream disconnected, reconnecting",
			logger.NewField("error", err),
		)
	}
}

func (h *Hub) connectWithBackoff(ctx context.Context) error {
	retryConfig := retrierconfig.Config{
		InitialInterval: h.cfg.ReconnectInitialInterval,
		MaxInterval:     h.cfg.ReconnectMaxInterval,
		MaxElapsedTime:  0, // переподключаемся пока жив контекст
		Randomization:   randomization,
		Multiplier:      multiplier,
		ShouldRetry:     nil,
	}

	retrier := backoff_adapter.New(retryConfig)

	var attempt uint64
	err := retrier.ExecuteWithContext(ctx, func(ctx context.Context) error {
		attempt++
		if h.cfg.DegradedAfterAttempts > 0 && attempt > h.cfg.DegradedAfterAttempts {
			h.setDegraded(true)
		}

		connectErr := h.stream.Connect(ctx)
		if connectErr != nil {
			h.log.With(
				logger.NewField("attempt", attempt),
				logger.NewField("error", connectErr),
			).Warn("change stream connect failed")
		}
		return connectErr
	})
	if err != nil {
		return fmt.Errorf("change stream connect: %w", err)
	}

	return nil
}

// handleEvent — консервативный ребилд: стор запрашивается заново по каждому
// различному фильтру живых подписок и результат рассылается всем вьюверам с
// этим фильтром. Точечный дифф одной изменившейся строки остаётся возможной
// оптимизацией.
func (h *Hub) handleEvent(ctx context.Context, event entities.ChangeEvent) {
	ChangeEventsTotal.Inc()

	h.mu.Lock()
	defer h.mu.Unlock()

	if len(h.subs) == 0 {
		return
	}

	filters := make(map[string]projection.Filter, 2)
	for _, sub := range h.subs {
		filters[sub.filter.Key()] = sub.filter
	}

	snapshots := make(map[string][]entities.Order, len(filters))
	for key, filter := range filters {
		snapshot, err := h.repairFilter(ctx, filter)
		if err != nil {
			h.log.With(
				logger.NewField("order", event.OrderID),
				logger.NewField("kind", event.Kind),
				logger.NewField("error", err),
			).Error("snapshot re-query keeps failing, viewers keep previous state")
			continue
		}
		snapshots[key] = snapshot
	}

	for _, sub := range h.subs {
		if snapshot, ok := snapshots[sub.filter.Key()]; ok {
			push(sub, snapshot)
		}
	}
}

func (h *Hub) resyncAll(ctx context.Context) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for _, sub := range h.subs {
		snapshot, err := h.repairFilter(ctx, sub.filter)
		if err != nil {
			h.log.With(
				logger.NewField("error", err),
			).Error("snapshot repair keeps failing for subscription")
			continue
		}
		push(sub, snapshot)
		ResyncsTotal.Inc()
	}
}

// repairFilter запрашивает снапшот с бэкоффом. Чтения, в отличие от мутаций,
// ретраятся автоматически; после DegradedAfterAttempts неудач подряд попытки
// прекращаются и поднимается Degraded, первый успешный ремонт его снимает.
func (h *Hub) repairFilter(ctx context.Context, filter projection.Filter) ([]entities.Order, error) {
	var attempts uint64
	retryConfig := retrierconfig.Config{
		InitialInterval: h.cfg.ReconnectInitialInterval,
		MaxInterval:     h.cfg.ReconnectMaxInterval,
		MaxElapsedTime:  0,
		Randomization:   randomization,
		Multiplier:      multiplier,
		ShouldRetry: func(error) bool {
			attempts++
			return h.cfg.DegradedAfterAttempts == 0 || attempts < h.cfg.DegradedAfterAttempts
		},
	}

	retrier := backoff_adapter.New(retryConfig)

	var snapshot []entities.Order
	err := retrier.ExecuteWithContext(ctx, func(ctx context.Context) error {
		var queryErr error
		snapshot, queryErr = h.queryFilter(ctx, filter)
		if queryErr != nil {
			SnapshotQueryErrorsTotal.Inc()
			h.log.With(
				logger.NewField("error", queryErr),
			).Warn("snapshot query failed")
		}
		return queryErr
	})
	if err != nil {
		if ctx.Err() == nil {
			h.setDegraded(true)
		}
		return nil, err
	}

	h.setDegraded(false)
	return snapshot, nil
}

func (h *Hub) queryFilter(ctx context.Context, filter projection.Filter) ([]entities.Order, error) {
	queryCtx, cancel := context.WithTimeout(ctx, h.cfg.QueryTimeout)
	defer cancel()

	return h.repository.GetByFilter(queryCtx, filter)
}

func (h *Hub) setDegraded(value bool) {
	h.degradedMu.Lock()
	changed := h.degraded != value
	h.degraded = value
	h.degradedMu.Unlock()

	if !changed {
		return
	}
	if value {
		Degraded.Set(1)
		h.log.Error("hub degraded: change stream repair keeps failing, views may be stale")
	} else {
		Degraded.Set(0)
	}
}

// push не блокируется: при заполненном канале вытесняет устаревший снапшот,
// вьюверу нужен только последний. Вызывается только под h.mu, поэтому не
// гоняется с close в Unsubscribe.
func push(sub *Subscription, snapshot []entities.Order) {
	for {
		select {
		case sub.updates <- snapshot:
			return
		default:
			select {
			case <-sub.updates:
			default:
			}
		}
	}
}
