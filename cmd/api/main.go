package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/playaway/gge-go/internal/di"
	"github.com/playaway/gge-go/internal/platform"
	"github.com/playaway/gge-go/internal/server"
	"github.com/playaway/gge-go/internal/session"
)

func main() {
	logger := newLogger()
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, err := di.ProvideStore(ctx, logger)
	if err != nil {
		logger.Error("open store", "error", err)
		os.Exit(1)
	}
	defer store.Close()

	if pw := os.Getenv("GGE_ADMIN_PASSWORD"); pw != "" {
		user := getenv("GGE_ADMIN_USER", "admin")
		if err := platform.SeedSuperAdmin(ctx, store, user, pw, logger); err != nil {
			logger.Error("seed admin", "error", err)
			os.Exit(1)
		}
	}

	h := server.BuildRouter(server.Deps{
		Store:      store,
		Sessions:   session.NewStore(sessionTTL()),
		Authorizer: di.ProvideAuthorizer(),
	}, server.Options{
		EnableCORS:     true,
		AllowedOrigins: splitOrigins(os.Getenv("GGE_CORS_ORIGINS")),
	})

	srv := &http.Server{
		Addr:              getenv("GGE_ADDR", ":8080"),
		Handler:           h,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Error("server", "error", err)
		os.Exit(1)
	}
}

func newLogger() *slog.Logger {
	if os.Getenv("LOG_JSON") == "true" {
		return slog.New(slog.NewJSONHandler(os.Stdout, nil))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, nil))
}

func sessionTTL() time.Duration {
	if v := os.Getenv("GGE_SESSION_TTL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return 24 * time.Hour
}

func splitOrigins(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, v := range strings.Split(s, ",") {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
