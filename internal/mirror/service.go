// Package mirror keeps the persisted slot in sync with the in-memory
// store. Mutations stay synchronous and authoritative in memory; the
// mirror trails behind them and a durability failure never blocks an
// operation, it is only logged, counted and surfaced on Errs.
package mirror

import (
	"context"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/cafebonheur/pos/internal/config"
	"github.com/cafebonheur/pos/internal/storage/slot"
	"github.com/cafebonheur/pos/internal/store"
)

var (
	writesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "pos_mirror_writes_total",
		Help: "Number of successful slot writes.",
	})
	failuresTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "pos_mirror_failures_total",
		Help: "Number of failed slot writes.",
	})
)

type Service struct {
	cfg    config.Mirror
	logger *slog.Logger
	st     *store.Store
	slot   slot.Slot

	stopChan chan struct{}
	errChan  chan error
}

func NewService(
	cfg config.Mirror,
	logger *slog.Logger,
	st *store.Store,
	s slot.Slot,
) *Service {
	return &Service{
		cfg:      cfg,
		logger:   logger.With(slog.String("service", "mirror")),
		st:       st,
		slot:     s,
		stopChan: make(chan struct{}),
		errChan:  make(chan error, 1),
	}
}

// Errs exposes slot write failures without blocking the writer. At most
// one failure is pending at a time; later ones replace nothing and are
// dropped once the buffer is full.
func (s *Service) Errs() <-chan error {
	return s.errChan
}

type CleanupFunc func()

// Run subscribes to the store and starts the write loop. The returned
// cleanup stops the loop and performs a final flush so mutations made
// just before shutdown are not lost.
func (s *Service) Run(ctx context.Context) CleanupFunc {
	notify := s.st.Subscribe()

	ctx, cancel := context.WithCancel(ctx)

	stoppedChan := make(chan struct{})
	go func() {
		defer close(stoppedChan)
		s.run(ctx, notify)
	}()

	return func() {
		close(s.stopChan)
		select {
		case <-stoppedChan:
		case <-time.After(5 * time.Second):
			cancel()
		}
	}
}

func (s *Service) run(ctx context.Context, notify <-chan struct{}) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-s.stopChan:
			s.flush(ctx)
			return
		case <-notify:
			// Let a burst of mutations settle before writing.
			timer := time.NewTimer(s.cfg.Debounce)
			select {
			case <-timer.C:
			case <-ctx.Done():
				timer.Stop()
				return
			case <-s.stopChan:
				timer.Stop()
				s.flush(ctx)
				return
			}
			s.flush(ctx)
		}
	}
}

func (s *Service) flush(ctx context.Context) {
	writeCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.cfg.WriteTimeout)
	defer cancel()

	if err := slot.WriteState(writeCtx, s.slot, s.st.Snapshot()); err != nil {
		failuresTotal.Inc()
		s.logger.ErrorContext(ctx, "error mirroring state to slot", slog.Any("error", err))

		select {
		case s.errChan <- err:
		default:
		}
		return
	}

	writesTotal.Inc()
}
