package stale_order_watch

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"kitchen/internal/entities"
	"kitchen/internal/service/projection"
	"kitchen/pkg/logger"
)

var staleActiveOrders = promauto.NewGauge(prometheus.GaugeOpts{
	Name: "kitchen_stale_active_orders",
	Help: "Active orders older than the staleness threshold",
})

type Repository interface {
	GetByFilter(ctx context.Context, filter projection.Filter) ([]entities.Order, error)
}

type StaleOrderWatch struct {
	log       logger.Logger
	repo      Repository
	interval  time.Duration
	threshold time.Duration
}

func NewStaleOrderWatch(log logger.Logger, repo Repository, interval, threshold time.Duration) *StaleOrderWatch {
	return &StaleOrderWatch{
		log:       log,
		repo:      repo,
		interval:  interval,
		threshold: threshold,
	}
}

func (s *StaleOrderWatch) TTL() time.Duration {
	return s.interval
}

func (s *StaleOrderWatch) Do(ctx context.Context) error {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, s.interval)
	defer cancel()

	orders, err := s.repo.GetByFilter(ctxWithTimeout, projection.ActiveFilter())
	if err != nil {
		return err
	}

	cutoff := time.Now().Add(-s.threshold)

	stale := 0
	for i := range orders {
		if orders[i].CreatedAt.Before(cutoff) {
			stale++
		}
	}

	staleActiveOrders.Set(float64(stale))

	if stale > 0 {
		s.log.With(
			logger.NewField("stale_orders", stale),
			logger.NewField("threshold", s.threshold),
		).Warn("stale order watch")
	}

	return nil
}

func (s *StaleOrderWatch) Info() string {
	return "stale order watch"
}
