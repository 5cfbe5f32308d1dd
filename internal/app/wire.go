//go:build wireinject
// +build wireinject

package app

import (
	"context"
	"time"

	"kitchen/internal/handlers/rest/history_get"
	"kitchen/internal/handlers/rest/order_advance_post"
	"kitchen/internal/handlers/rest/order_cancel_post"
	"kitchen/internal/handlers/rest/queue_get"
	"kitchen/internal/handlers/rest/queue_stream_get"
	"kitchen/internal/handlers/tasks/stale_order_watch"
	"kitchen/internal/pkg/config"
	"kitchen/internal/pkg/pgnotify"

	orderRepo "kitchen/internal/repository/order"
	orderService "kitchen/internal/service/order"
	"kitchen/internal/service/subscription"

	"kitchen/pkg/background"
	"kitchen/pkg/logger"
	"kitchen/pkg/querier"
	"kitchen/pkg/tx"

	"github.com/avito-tech/go-transaction-manager/pgxv5"
	"github.com/google/wire"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Application struct {
	ServiceOrder      ServiceOrder
	Hub               *subscription.Hub
	BackgroundWorkers *background.Worker
}

type ServiceOrder interface {
	order_advance_post.Service
	order_cancel_post.Service
}

// ServiceQueue обслуживает read-side хендлеры (снапшот, стрим, история).
type ServiceQueue interface {
	queue_get.Service
	queue_stream_get.Service
	history_get.Service
}

// InitializeApplication для HTTP сервиса (cmd/service)
func InitializeApplication(
	ctx context.Context,
	log logger.Logger,
	pool *pgxpool.Pool,
	getter *pgxv5.CtxGetter,
	cfg *config.Config,
) (*Application, error) {
	wire.Build(
		provideTxManager,
		provideQuerier,

		provideOrderRepository,
		provideServiceOrder,

		provideListener,
		provideHubConfig,
		provideHub,

		provideStaleWatchTask,
		provideTaskList,
		provideBackgroundWorkers,

		wire.Struct(new(Application), "*"),

		wire.Bind(new(ServiceOrder), new(*orderService.Service)),

		wire.Bind(new(orderService.Repository), new(*orderRepo.Repository)),
		wire.Bind(new(orderService.TxManager), new(*tx.Manager)),

		wire.Bind(new(subscription.Repository), new(*orderRepo.Repository)),
		wire.Bind(new(subscription.ChangeStream), new(*pgnotify.Listener)),

		wire.Bind(new(stale_order_watch.Repository), new(*orderRepo.Repository)),
	)
	return &Application{}, nil
}

type KafkaWorkerApp struct {
	OrderService *orderService.Service
}

// InitializeKafkaWorkerApp для Kafka воркера (cmd/worker-order-events)
func InitializeKafkaWorkerApp(
	ctx context.Context,
	log logger.Logger,
	pool *pgxpool.Pool,
	getter *pgxv5.CtxGetter,
	cfg *config.Config,
) (*KafkaWorkerApp, error) {
	wire.Build(
		provideTxManager,
		provideQuerier,

		provideOrderRepository,
		provideServiceOrder,

		wire.Bind(new(orderService.Repository), new(*orderRepo.Repository)),
		wire.Bind(new(orderService.TxManager), new(*tx.Manager)),

		wire.Struct(new(KafkaWorkerApp), "*"),
	)
	return nil, nil
}

func provideTxManager(pool *pgxpool.Pool) *tx.Manager {
	return tx.New(pool)
}

func provideQuerier(pool *pgxpool.Pool, getter *pgxv5.CtxGetter) *querier.Querier {
	return querier.New(pool, getter)
}

func provideOrderRepository(querier *querier.Querier) *orderRepo.Repository {
	return orderRepo.New(querier)
}

func provideServiceOrder(
	repository orderService.Repository,
	txManager orderService.TxManager,
) *orderService.Service {
	return orderService.New(repository, txManager)
}

func provideListener(log logger.Logger, pool *pgxpool.Pool, cfg *config.Config) *pgnotify.Listener {
	return pgnotify.NewListener(log, pool, cfg.Notify.Channel)
}

func provideHubConfig(cfg *config.Config) subscription.Config {
	return subscription.Config{
		QueryTimeout:             cfg.Notify.QueryTimeout,
		ReconnectInitialInterval: cfg.Notify.ReconnectInitialInterval,
		ReconnectMaxInterval:     cfg.Notify.ReconnectMaxInterval,
		DegradedAfterAttempts:    cfg.Notify.DegradedAfterAttempts,
	}
}

func provideHub(
	log logger.Logger,
	repository subscription.Repository,
	stream subscription.ChangeStream,
	hubCfg subscription.Config,
) *subscription.Hub {
	return subscription.New(log, repository, stream, hubCfg)
}

func provideStaleWatchTask(
	log logger.Logger,
	repository stale_order_watch.Repository,
	cfg *config.Config,
) *stale_order_watch.StaleOrderWatch {
	return stale_order_watch.NewStaleOrderWatch(
		log,
		repository,
		time.Duration(cfg.Tasks.StaleWatchInterval),
		time.Duration(cfg.Tasks.StaleAgeThreshold),
	)
}

func provideTaskList(
	staleWatchTask *stale_order_watch.StaleOrderWatch,
) []background.Task {
	return []background.Task{
		staleWatchTask,
	}
}

func provideBackgroundWorkers(ctx context.Context, log logger.Logger, tasks []background.Task) (*background.Worker, error) {
	return background.New(ctx, log, tasks)
}
