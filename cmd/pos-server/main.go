package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/cafebonheur/pos/internal/config"
	"github.com/cafebonheur/pos/internal/http"
	"github.com/cafebonheur/pos/internal/log"
	"github.com/cafebonheur/pos/internal/mirror"
	"github.com/cafebonheur/pos/internal/service"
	"github.com/cafebonheur/pos/internal/storage/slot"
	"github.com/cafebonheur/pos/internal/store"
	"github.com/cafebonheur/pos/pkg/cmdutil"
	"github.com/cafebonheur/pos/pkg/validator"
)

// pendingSlotName holds sales recorded while the terminal was offline,
// next to the main state slot.
const pendingSlotName = "offline-transactions"

func main() {
	if err := run(); err != nil {
		fmt.Printf("error running pos server: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	time.Local = time.UTC

	type Config struct {
		Log    config.Log
		HTTP   config.HTTP
		Store  config.Store
		Redis  config.Redis
		Mirror config.Mirror
	}
	cfg, err := config.New[Config]()
	if err != nil {
		return fmt.Errorf("error loading config: %w", err)
	}

	logger := log.NewSlogLogger(cfg.Log)

	stateSlot, pendingSlot, health, closeSlots, err := buildSlots(ctx, cfg.Store, cfg.Redis)
	if err != nil {
		return fmt.Errorf("error building slots: %w", err)
	}
	defer closeSlots()

	persisted, err := slot.ReadState(ctx, stateSlot)
	if err != nil {
		// Corrupt slot contents count as no persisted state.
		logger.WarnContext(ctx, "slot unreadable, starting from seed data", slog.Any("error", err))
	}

	st := store.New(persisted)

	validate, err := validator.NewDefaultValidator()
	if err != nil {
		return fmt.Errorf("error creating validator: %w", err)
	}

	svcs := http.Services{
		Product:     service.NewProductService(st, validate),
		Customer:    service.NewCustomerService(st, validate),
		User:        service.NewUserService(st, validate),
		Transaction: service.NewTransactionService(st, validate),
		Offline:     service.NewOfflineService(st, pendingSlot, validate),
		Report:      service.NewReportService(st),
	}

	interruptChan := cmdutil.InterruptChan()
	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		svc := mirror.NewService(cfg.Mirror, logger, st, stateSlot)
		cleanup := svc.Run(ctx)
		logger.InfoContext(ctx, "mirror service started")

		<-interruptChan

		logger.InfoContext(ctx, "mirror service is shutting down")
		cleanup()

		logger.InfoContext(ctx, "mirror service is stopped")
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		svc := http.New(cfg.HTTP, logger, svcs, health)
		cleanup, err := svc.Run(ctx)
		if err != nil {
			panic(fmt.Errorf("error running http service: %w", err))
		}

		logger.InfoContext(ctx, "http service started", slog.String("address", fmt.Sprintf(":%d", cfg.HTTP.Port)))

		<-interruptChan

		logger.InfoContext(ctx, "http service is shutting down")
		if err := cleanup(ctx); err != nil {
			logger.ErrorContext(ctx, "error shutting down http service", slog.Any("error", err))
		}

		logger.InfoContext(ctx, "http service is stopped")
	}()

	wg.Wait()

	return nil
}

func buildSlots(ctx context.Context, storeCfg config.Store, redisCfg config.Redis) (slot.Slot, slot.Slot, slot.HealthChecker, func(), error) {
	switch storeCfg.Backend {
	case config.SlotBackendRedis:
		stateSlot, err := slot.NewRedisSlot(ctx, redisCfg, storeCfg.SlotName)
		if err != nil {
			return nil, nil, nil, nil, fmt.Errorf("create redis state slot: %w", err)
		}
		pendingSlot, err := slot.NewRedisSlot(ctx, redisCfg, pendingSlotName)
		if err != nil {
			stateSlot.Close()
			return nil, nil, nil, nil, fmt.Errorf("create redis pending slot: %w", err)
		}
		closeSlots := func() {
			stateSlot.Close()
			pendingSlot.Close()
		}
		return stateSlot, pendingSlot, stateSlot, closeSlots, nil

	default:
		stateSlot, err := slot.NewFileSlot(storeCfg.Dir, storeCfg.SlotName)
		if err != nil {
			return nil, nil, nil, nil, fmt.Errorf("create file state slot: %w", err)
		}
		pendingSlot, err := slot.NewFileSlot(storeCfg.Dir, pendingSlotName)
		if err != nil {
			return nil, nil, nil, nil, fmt.Errorf("create file pending slot: %w", err)
		}
		return stateSlot, pendingSlot, stateSlot, func() {}, nil
	}
}
