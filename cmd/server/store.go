package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/phrazzld/taskboard/internal/config"
	"github.com/phrazzld/taskboard/internal/platform/postgres"
	"github.com/phrazzld/taskboard/internal/platform/redisstore"
	"github.com/phrazzld/taskboard/internal/platform/tables"
	"github.com/phrazzld/taskboard/internal/store"
)

// openStore builds the task store for the configured driver. The store is
// returned immediately; its connection is established in the background.
// The returned close function releases the underlying client.
func openStore(
	ctx context.Context,
	cfg config.StoreConfig,
	logger *slog.Logger,
) (store.TaskStore, func() error, error) {
	logger = logger.With(slog.String("store_driver", cfg.Driver))

	switch cfg.Driver {
	case config.DriverPostgres:
		db, conn := postgres.Open(ctx, cfg, logger)
		closeFn := func() error { return nil }
		if db != nil {
			closeFn = db.Close
		}
		return postgres.NewPostgresTaskStore(db, conn, logger), closeFn, nil

	case config.DriverRedis:
		client, conn := redisstore.Open(ctx, cfg, logger)
		closeFn := func() error { return nil }
		if client != nil {
			closeFn = client.Close
		}
		return redisstore.NewRedisTaskStore(client, conn, cfg.Name, logger), closeFn, nil

	case config.DriverTables:
		client, conn := tables.Open(ctx, cfg, logger)
		return tables.NewTableTaskStore(client, conn, logger), func() error { return nil }, nil

	default:
		return nil, nil, fmt.Errorf("unsupported store driver %q", cfg.Driver)
	}
}
