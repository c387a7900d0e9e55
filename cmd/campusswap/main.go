package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"campusswap/internal/authz"
	"campusswap/internal/config"
	"campusswap/internal/observability/logging"
	"campusswap/internal/observability/metrics"
	"campusswap/internal/realtime"
	impl "campusswap/internal/service/impl"
	"campusswap/internal/store"
	httpx "campusswap/internal/transport/http"
	"campusswap/pkg/db"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/pflag"
)

const serviceName = "campusswap"

func main() {
	envFile := pflag.String("env-file", ".env", "dotenv file to seed the environment from")
	migrateOnly := pflag.Bool("migrate-only", false, "apply database migrations and exit")
	pflag.Parse()

	if err := config.LoadEnvFile(*envFile); err != nil {
		slog.Error("env file", "error", err)
		os.Exit(1)
	}
	cfg, err := config.Load()
	if err != nil {
		slog.Error("config", "error", err)
		os.Exit(1)
	}

	logger := logging.NewLogger(logging.Config{
		ServiceName: serviceName,
		Environment: cfg.Environment,
		Level:       cfg.LogLevel,
	})
	slog.SetDefault(logger)
	metrics.MustRegister(prometheus.DefaultRegisterer, serviceName)

	if err := run(cfg, *migrateOnly); err != nil {
		logger.Error("exiting", "error", err)
		os.Exit(1)
	}
}

func run(cfg config.Config, migrateOnly bool) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 1) DB
	gdb, err := db.OpenGorm(db.Config{DSN: cfg.DatabaseURL, LogSQL: cfg.LogSQL})
	if err != nil {
		return err
	}
	sqlDB, err := gdb.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	st := store.New(gdb)
	pingCtx, cancelPing := context.WithTimeout(ctx, 5*time.Second)
	err = st.Ping(pingCtx)
	cancelPing()
	if err != nil {
		return err
	}

	if cfg.MigrateOnStart || migrateOnly {
		if err := store.Migrate(ctx, sqlDB); err != nil {
			return err
		}
		slog.Info("migrations applied")
	}
	if migrateOnly {
		return nil
	}

	// 2) Services
	ts, err := impl.NewTokenServiceHS256(impl.TokenConfig{
		Issuer:     cfg.Issuer,
		TTL:        cfg.TokenTTL,
		SigningKey: []byte(cfg.JWTSecret),
	})
	if err != nil {
		return err
	}
	as, err := impl.NewAuthServiceImpl(st, impl.NewPasswordServiceArgon2id(), ts)
	if err != nil {
		return err
	}
	is, err := impl.NewItemServiceImpl(st)
	if err != nil {
		return err
	}

	hub := realtime.NewHub(realtime.HubConfig{SendBuffer: cfg.HubSendBuffer})
	ws := realtime.NewHandler(hub, ts, realtime.HandlerConfig{
		OriginPatterns: realtime.OriginPatterns(cfg.CORSOrigins),
		WriteTimeout:   cfg.WSWriteTimeout,
	})

	// 3) HTTP router
	router := httpx.NewRouter(httpx.RouterDeps{
		Auth:        as,
		Items:       is,
		Gate:        authz.NewGate(ts),
		Realtime:    ws,
		Health:      st.Ping,
		CORSOrigins: cfg.CORSOrigins,
	})

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	srv.RegisterOnShutdown(hub.Shutdown)

	errCh := make(chan error, 1)
	go func() {
		slog.Info("campusswap listening", "addr", srv.Addr, "issuer", cfg.Issuer)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	slog.Info("shutting down", "timeout", cfg.ShutdownTimeout)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return nil
}
