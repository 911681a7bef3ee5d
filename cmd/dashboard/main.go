package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"salary-dashboard/internal/app"
	"salary-dashboard/internal/config"
	"salary-dashboard/internal/httpapi"
	"salary-dashboard/internal/logging"
	"salary-dashboard/internal/store"
)

func main() {
	os.Exit(realMain())
}

func realMain() int {
	cfg, err := config.Load(config.DefaultPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config load failed (%s): %v\n", config.DefaultPath, err)
		return 1
	}
	cfg, vr := config.NormalizeAndValidate(cfg)
	if err := vr.Err(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	logger, err := logging.New(cfg.Log.Level, cfg.Log.Development)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		return 1
	}
	defer func() { _ = logger.Sync() }()
	for _, w := range vr.Warnings {
		logger.Warn("config", zap.String("warning", w))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	ln, err := net.Listen("tcp", cfg.Addr())
	if err != nil {
		logger.Error("listen failed", zap.String("addr", cfg.Addr()), zap.Error(err))
		return 1
	}

	if err := run(ctx, cfg, logger, ln); err != nil {
		var dae *store.DataAccessError
		if errors.As(err, &dae) {
			logger.Error("cannot read employee data", zap.String("op", dae.Op), zap.String("db", cfg.Database.Path), zap.Error(dae.Err))
		} else {
			logger.Error("dashboard stopped", zap.Error(err))
		}
		return 1
	}
	logger.Info("dashboard stopped")
	return 0
}

// run loads the table once, then serves on ln until ctx is done or
// /shutdown is called. ln is always closed.
func run(ctx context.Context, cfg config.Config, logger *zap.Logger, ln net.Listener) error {
	a := app.New(store.NewDataSource(cfg.Database.Path, cfg.Database.BusyTimeoutMS, logger.Named("store")), logger.Named("app"))
	if err := a.Load(ctx); err != nil {
		_ = ln.Close()
		return fmt.Errorf("load: %w", err)
	}

	token := cfg.App.ShutdownToken
	if token == "" {
		t, err := randomToken(16)
		if err != nil {
			_ = ln.Close()
			return err
		}
		token = t
	}

	d := httpapi.Deps{
		App:     a,
		Session: app.NewSession(a),
		Cfg:     cfg,
		Log:     logger.Named("http"),
		Limiter: httpapi.NewClientLimiter(cfg.HTTP.RatePerSec, cfg.HTTP.Burst),
	}

	shutdownReq := make(chan struct{})
	mux := httpapi.NewMux(d)
	mux.HandleFunc("/shutdown", shutdownHandler(token, func() { close(shutdownReq) }))

	srv := &http.Server{
		Handler:           httpapi.NewHandler(d, mux),
		ReadHeaderTimeout: time.Duration(cfg.HTTP.ReadHeaderTimeoutSec) * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("dashboard listening",
			zap.String("url", "http://"+ln.Addr().String()),
			zap.String("db", cfg.Database.Path),
			zap.String("shutdown_token", token),
		)
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		select {
		case <-gctx.Done():
		case <-shutdownReq:
		}
		sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(sctx)
	})
	return g.Wait()
}
