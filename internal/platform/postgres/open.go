package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net"
	"net/url"
	"strconv"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // pgx driver
	"github.com/phrazzld/taskboard/internal/config"
	"github.com/phrazzld/taskboard/internal/store"
)

const (
	// DefaultPort is used when the configured port is zero.
	DefaultPort = 5432

	// StoreName identifies this backend in logs and errors.
	StoreName = "postgres"
)

// ConnString builds a PostgreSQL connection URL from the store settings.
// Empty credentials are passed through unchanged.
func ConnString(cfg config.StoreConfig) string {
	port := cfg.Port
	if port == 0 {
		port = DefaultPort
	}

	sslMode := "disable"
	if cfg.TLS {
		sslMode = "require"
	}

	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(cfg.User, cfg.Password),
		Host:     net.JoinHostPort(cfg.Host, strconv.Itoa(port)),
		Path:     "/" + cfg.Name,
		RawQuery: url.Values{"sslmode": []string{sslMode}}.Encode(),
	}
	return u.String()
}

// Open creates the database handle and starts the asynchronous connection
// attempt. It never blocks on the network and never returns an error: an
// unusable connection string yields a store whose operations all fail with
// store.ErrStoreUnavailable.
func Open(
	ctx context.Context,
	cfg config.StoreConfig,
	logger *slog.Logger,
) (*sql.DB, *store.Connection) {
	db, err := sql.Open("pgx", ConnString(cfg))
	if err != nil {
		return nil, store.FailedConnection(StoreName, fmt.Errorf("failed to open database: %w", err), logger)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(5 * time.Minute)

	conn := store.Connect(ctx, StoreName, logger, cfg.ConnectTimeout, func(ctx context.Context) error {
		if err := db.PingContext(ctx); err != nil {
			return fmt.Errorf("database ping failed: %w", err)
		}
		return EnsureSchema(ctx, db, logger)
	})
	return db, conn
}
