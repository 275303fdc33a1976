package di

import (
	"context"
	"log/slog"

	"github.com/playaway/gge-go/internal/platform"
	"github.com/playaway/gge-go/internal/types"
)

// ProvideStore picks the persistence layer from GGE_DB: empty or
// "memory" keeps everything in process, anything else is treated as a
// sqlite database path and migrated on startup.
func ProvideStore(ctx context.Context, logger *slog.Logger) (types.Store, error) {
	dsn := getenv("GGE_DB", "memory")
	if dsn == "" || dsn == "memory" {
		logger.Info("using in-memory store")
		return platform.NewMemoryStore(), nil
	}

	s, err := platform.NewSQLiteStore(dsn, logger)
	if err != nil {
		return nil, err
	}
	if err := s.Migrate(ctx); err != nil {
		s.Close()
		return nil, err
	}
	logger.Info("using sqlite store", "path", dsn)
	return s, nil
}
