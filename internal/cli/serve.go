package cli

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/playaway/gge-go/internal/di"
	"github.com/playaway/gge-go/internal/platform"
	"github.com/playaway/gge-go/internal/server"
	"github.com/playaway/gge-go/internal/session"
)

func cmdServe() *cobra.Command {
	var port int
	var db string
	var corsOn bool
	var adminUser string
	var sessionTTL time.Duration

	c := &cobra.Command{
		Use:   "serve",
		Short: "Run the platform API in-process",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := slog.Default()

			if db == "" {
				if cfg, err := loadConfig(cfgPath); err == nil {
					db = cfg.DBPath
				}
			}
			if db != "" {
				os.Setenv("GGE_DB", db)
			}

			store, err := di.ProvideStore(ctx, logger)
			if err != nil {
				return fmt.Errorf("open store: %w", err)
			}
			defer store.Close()

			// Bootstrap moderation: without one approved SUPER_ADMIN
			// nobody can ever approve anybody.
			if pw := os.Getenv("GGE_ADMIN_PASSWORD"); pw != "" {
				if err := platform.SeedSuperAdmin(ctx, store, adminUser, pw, logger); err != nil {
					return fmt.Errorf("seed admin: %w", err)
				}
			}

			h := server.BuildRouter(server.Deps{
				Store:      store,
				Sessions:   session.NewStore(sessionTTL),
				Authorizer: di.ProvideAuthorizer(),
			}, server.Options{EnableCORS: corsOn})

			addr := fmt.Sprintf(":%d", port)
			logger.Info("listening", "addr", addr)
			return http.ListenAndServe(addr, h)
		},
	}
	c.Flags().IntVar(&port, "port", 8080, "listen port")
	c.Flags().StringVar(&db, "db", "", "sqlite database path (empty = config, then in-memory)")
	c.Flags().BoolVar(&corsOn, "cors", true, "enable CORS for browser clients")
	c.Flags().StringVar(&adminUser, "admin-user", "admin", "username for the seeded super admin")
	c.Flags().DurationVar(&sessionTTL, "session-ttl", 24*time.Hour, "bearer session lifetime")
	return c
}
