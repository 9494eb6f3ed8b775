// Command mbench-fill loads each configured country from PostgreSQL,
// canonicalizes one parameter column, fills its missing rows by neighbour
// interpolation and writes the column back.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/malaria-bench/mbench/config"
	"github.com/malaria-bench/mbench/logger"
	"github.com/malaria-bench/mbench/metrics"
	"github.com/malaria-bench/mbench/store"
)

func main() {
	cfg, err := config.Load(".env")
	if err != nil {
		logger.L().Error("config", "err", err)
		os.Exit(2)
	}
	logger.Setup(cfg.LogLevel, cfg.LogFormat)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err = execute(ctx, cfg)
	stop()
	if err != nil {
		logger.L().Error("run", "err", err)
		os.Exit(1)
	}
}

func execute(ctx context.Context, cfg config.Config) error {
	log := logger.L()
	m := metrics.New(nil)

	if cfg.MetricsAddr != "" {
		srv := &http.Server{Addr: cfg.MetricsAddr, Handler: router(), ReadHeaderTimeout: 5 * time.Second}
		go func() {
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Error("metrics_server", "err", err)
			}
		}()
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = srv.Shutdown(shutdownCtx)
		}()
		log.Info("metrics_listen", "addr", cfg.MetricsAddr)
	}

	st, err := store.Open(cfg.Postgres)
	if err != nil {
		return err
	}
	defer st.Close()
	if err := st.EnsureSchema(ctx); err != nil {
		return err
	}

	countries := cfg.Countries
	if len(countries) == 0 {
		if countries, err = st.Countries(ctx); err != nil {
			return err
		}
		if len(countries) == 0 {
			return errors.New("no countries stored")
		}
	}

	reports, err := run(ctx, st, cfg, m, countries)
	for _, r := range reports {
		log.Info("country_done", "run_id", r.RunID, "country", r.Country, "parameter", r.Parameter,
			"rows", r.Rows, "filled", r.Filled, "unfilled", r.Unfilled,
			"unresolved", len(r.Unresolved), "components", r.Components, "elapsed", r.Elapsed)
	}

	return err
}

// router serves Prometheus metrics and a liveness probe while the batch runs.
func router() chi.Router {
	r := chi.NewRouter()
	r.Handle("/metrics", promhttp.Handler())
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	return r
}
