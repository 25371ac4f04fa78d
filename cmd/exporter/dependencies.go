package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/quirzy/backend/internal/config"
	"github.com/quirzy/backend/internal/metrics"
	"github.com/quirzy/backend/internal/store"
	"github.com/quirzy/backend/internal/workers"
	"go.uber.org/fx"
)

func ExporterConfig() (config.ExporterConfig, error) {
	if err := godotenv.Load(); err != nil {
		slog.Warn("error loading .env file", "error", err)
	}

	cfg, err := config.LoadExporter()
	if err != nil {
		return config.ExporterConfig{}, err
	}

	if err := cfg.Validate(); err != nil {
		return config.ExporterConfig{}, err
	}

	return cfg, nil
}

func DatabasePool(cfg config.ExporterConfig) (*pgxpool.Pool, error) {
	st, err := store.New(context.Background(), cfg.Database)
	if err != nil {
		return nil, err
	}

	return st.Pool(), nil
}

func PrometheusMetrics(pool *pgxpool.Pool) prometheus.Gatherer {
	registry := prometheus.NewRegistry()

	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),

		metrics.NewTableCountCollector(pool),
	)

	return registry
}

func PrometheusHTTPHandler(cfg config.ExporterConfig, gatherer prometheus.Gatherer, lifecycle fx.Lifecycle) {
	httpCtx, cancel := context.WithCancel(context.Background())

	lifecycle.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			http.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusOK)
				_, _ = w.Write([]byte("OK"))
			})

			http.Handle("GET /metrics", promhttp.HandlerFor(
				gatherer,
				promhttp.HandlerOpts{
					MaxRequestsInFlight:                 100,
					Timeout:                             10 * time.Second,
					EnableOpenMetrics:                   true,
					EnableOpenMetricsTextCreatedSamples: true,
				},
			))

			srv := &http.Server{
				Addr:    fmt.Sprintf(":%d", cfg.Port),
				Handler: nil,
			}

			workers.Global.Go(func() {
				slog.Info("prometheus http handler starting", "address", srv.Addr)
				if err := srv.ListenAndServe(); err != nil {
					if errors.Is(err, http.ErrServerClosed) {
						return
					}

					slog.Error("error starting prometheus http handler", "error", err)
				}
			})

			workers.Global.Go(func() {
				<-httpCtx.Done()

				slog.Info("prometheus http handler shutting down")
				if err := srv.Shutdown(context.Background()); err != nil {
					slog.Error("error shutting down prometheus http handler", "error", err)
				}
			})

			return nil
		},
		OnStop: func(_ context.Context) error {
			cancel()
			workers.Global.Wait()

			return nil
		},
	})
}
