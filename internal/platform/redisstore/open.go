package redisstore

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/url"
	"strconv"
	"time"

	"github.com/phrazzld/taskboard/internal/config"
	"github.com/phrazzld/taskboard/internal/store"
	"github.com/redis/go-redis/v9"
)

const (
	// DefaultPort is used when the configured port is zero.
	DefaultPort = 6379

	// StoreName identifies this backend in logs and errors.
	StoreName = "redis"
)

// ConnString builds a redis:// (or rediss:// with TLS) URL from the store settings.
func ConnString(cfg config.StoreConfig) string {
	port := cfg.Port
	if port == 0 {
		port = DefaultPort
	}

	scheme := "redis"
	if cfg.TLS {
		scheme = "rediss"
	}

	u := url.URL{
		Scheme: scheme,
		Host:   net.JoinHostPort(cfg.Host, strconv.Itoa(port)),
		Path:   "/0",
	}
	if cfg.User != "" || cfg.Password != "" {
		u.User = url.UserPassword(cfg.User, cfg.Password)
	}
	return u.String()
}

// Open builds a client from the store settings and starts the asynchronous
// connection attempt. The hash holding the tasks is named after cfg.Name.
func Open(ctx context.Context, cfg config.StoreConfig, logger *slog.Logger) (*redis.Client, *store.Connection) {
	opts, err := redis.ParseURL(ConnString(cfg))
	if err != nil {
		return nil, store.FailedConnection(StoreName, fmt.Errorf("invalid redis url: %w", err), logger)
	}
	return OpenOptions(ctx, opts, cfg.ConnectTimeout, logger)
}

// OpenOptions is Open for callers holding ready-made client options.
// Command retries are disabled on opts.
func OpenOptions(
	ctx context.Context,
	opts *redis.Options,
	timeout time.Duration,
	logger *slog.Logger,
) (*redis.Client, *store.Connection) {
	// A failed command is reported once and never retried.
	opts.MaxRetries = -1
	client := redis.NewClient(opts)
	conn := store.Connect(ctx, StoreName, logger, timeout, func(ctx context.Context) error {
		if err := client.Ping(ctx).Err(); err != nil {
			return fmt.Errorf("redis ping failed: %w", err)
		}
		return nil
	})
	return client, conn
}
