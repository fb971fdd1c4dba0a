package http

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/cafebonheur/pos/internal/config"
	"github.com/cafebonheur/pos/internal/http/apierr"
	"github.com/cafebonheur/pos/internal/http/metric"
	"github.com/cafebonheur/pos/internal/http/middleware"
	"github.com/cafebonheur/pos/internal/service"
	"github.com/cafebonheur/pos/internal/storage/slot"
)

// Services bundles the domain services the API exposes.
type Services struct {
	Product     service.ProductService
	Customer    service.CustomerService
	User        service.UserService
	Transaction service.TransactionService
	Offline     service.OfflineService
	Report      service.ReportService
}

// Service represents the HTTP service.
type Service struct {
	cfg     config.HTTP
	logger  *slog.Logger
	metrics *metric.Metrics

	svcs   Services
	health slot.HealthChecker
}

type CleanupFunc func(ctx context.Context) error

func New(
	cfg config.HTTP,
	log *slog.Logger,
	svcs Services,
	health slot.HealthChecker,
) *Service {
	return &Service{
		cfg:     cfg,
		logger:  log.With(slog.String("service", "http")),
		metrics: metric.New(),
		svcs:    svcs,
		health:  health,
	}
}

func (s *Service) Run(ctx context.Context) (CleanupFunc, error) {
	r := chi.NewRouter()
	s.RegisterMiddlewares(r)
	s.RegisterHandlers(r)

	return s.RunWithServer(ctx, r)
}

func (s *Service) RunWithServer(ctx context.Context, handler http.Handler) (CleanupFunc, error) {
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", s.cfg.Port),
		Handler:           handler,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
		MaxHeaderBytes:    1 << 16, // 64 KB
		BaseContext: func(_ net.Listener) context.Context {
			return ctx
		},
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			panic(err)
		}
	}()

	return func(ctx context.Context) error {
		ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		return srv.Shutdown(ctx)
	}, nil
}

func (s *Service) RegisterMiddlewares(r chi.Router) {
	r.Use(
		middleware.Recoverer(s.logger),
		middleware.Metrics(s.metrics),
		middleware.CorrelationID(),
		middleware.Cors(),
		middleware.Logging(s.logger),
	)
}

func (s *Service) RegisterHandlers(r chi.Router) {
	productH := newProductHandler(s.svcs.Product)
	customerH := newCustomerHandler(s.svcs.Customer)
	userH := newUserHandler(s.svcs.User)
	transactionH := newTransactionHandler(s.svcs.Transaction, s.svcs.Offline)
	reportH := newReportHandler(s.svcs.Report)

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/products", func(r chi.Router) {
			r.Get("/", s.wrap(productH.list))
			r.Post("/", s.wrap(productH.create))
			r.Patch("/{id}", s.wrap(productH.update))
			r.Delete("/{id}", s.wrap(productH.delete))
		})

		r.Route("/customers", func(r chi.Router) {
			r.Get("/", s.wrap(customerH.list))
			r.Post("/", s.wrap(customerH.create))
			r.Patch("/{id}", s.wrap(customerH.update))
			r.Delete("/{id}", s.wrap(customerH.delete))
		})

		r.Route("/users", func(r chi.Router) {
			r.Get("/", s.wrap(userH.list))
			r.Post("/", s.wrap(userH.create))
			r.Patch("/{id}", s.wrap(userH.update))
			r.Delete("/{id}", s.wrap(userH.delete))
		})

		r.Route("/transactions", func(r chi.Router) {
			r.Get("/", s.wrap(transactionH.list))
			r.Post("/", s.wrap(transactionH.create))
			r.Post("/checkout", s.wrap(transactionH.checkout))
			r.Route("/offline", func(r chi.Router) {
				r.Get("/", s.wrap(transactionH.listOffline))
				r.Post("/", s.wrap(transactionH.createOffline))
				r.Post("/sync", s.wrap(transactionH.syncOffline))
			})
		})

		r.Route("/reports", func(r chi.Router) {
			r.Get("/summary", s.wrap(reportH.summary))
			r.Get("/sales-by-day", s.wrap(reportH.salesByDay))
			r.Get("/top-products", s.wrap(reportH.topProducts))
			r.Get("/payment-methods", s.wrap(reportH.paymentMethods))
		})
	})

	r.Get("/healthz", s.wrap(s.handleHealthz))

	r.Handle(middleware.MetricsPath, promhttp.HandlerFor(prometheus.DefaultGatherer, promhttp.HandlerOpts{
		ErrorLog: log.Default(),
	}))
}

// handlerFunc is a request handler that funnels failures into the shared
// error responder.
type handlerFunc func(w http.ResponseWriter, r *http.Request) error

func (s *Service) wrap(h handlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := h(w, r); err != nil {
			s.handleResponseError(w, r, err)
		}
	}
}

func (s *Service) handleHealthz(w http.ResponseWriter, r *http.Request) error {
	if s.health != nil {
		if ok, err := s.health.IsHealthy(r.Context()); !ok {
			s.logger.WarnContext(r.Context(), "slot unhealthy", slog.Any("error", err))
			return respondJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "degraded"})
		}
	}
	return respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Service) handleResponseError(w http.ResponseWriter, r *http.Request, err error) {
	res := apierr.New(err)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(res.StatusCode)

	logLevel := slog.LevelInfo
	if res.StatusCode >= 500 {
		logLevel = slog.LevelError
	} else if res.StatusCode >= 400 {
		logLevel = slog.LevelWarn
	}
	s.logger.Log(r.Context(), logLevel, "http response error", slog.Any("error", err))

	if err := json.NewEncoder(w).Encode(res); err != nil {
		s.logger.ErrorContext(r.Context(), "error encoding error response",
			slog.Any("error", err))
	}
}
