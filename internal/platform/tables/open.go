package tables

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/policy"
	"github.com/Azure/azure-sdk-for-go/sdk/data/aztables"
	"github.com/phrazzld/taskboard/internal/config"
	"github.com/phrazzld/taskboard/internal/store"
)

const (
	// StoreName identifies this backend in logs and errors.
	StoreName = "tables"

	// EndpointSuffix is used when no explicit table endpoint is configured.
	EndpointSuffix = "core.windows.net"
)

// ConnString builds a storage account connection string from the store
// settings. User is the account name and Password the account key. An
// explicit Endpoint (an emulator, for instance) replaces the public suffix.
func ConnString(cfg config.StoreConfig) string {
	parts := []string{
		"DefaultEndpointsProtocol=" + protocol(cfg),
		"AccountName=" + cfg.User,
		"AccountKey=" + cfg.Password,
	}
	if cfg.Endpoint != "" {
		parts = append(parts, "TableEndpoint="+cfg.Endpoint)
	} else {
		parts = append(parts, "EndpointSuffix="+EndpointSuffix)
	}
	return strings.Join(parts, ";") + ";"
}

func protocol(cfg config.StoreConfig) string {
	if cfg.Endpoint == "" || cfg.TLS {
		return "https"
	}
	return "http"
}

// Open builds a table client from the store settings and starts the
// asynchronous connection attempt. The table is named after cfg.Name.
func Open(ctx context.Context, cfg config.StoreConfig, logger *slog.Logger) (*aztables.Client, *store.Connection) {
	return OpenConnectionString(ctx, ConnString(cfg), cfg.Name, cfg.ConnectTimeout, logger)
}

// OpenConnectionString is Open for callers holding a full connection string.
func OpenConnectionString(
	ctx context.Context,
	connStr string,
	table string,
	timeout time.Duration,
	logger *slog.Logger,
) (*aztables.Client, *store.Connection) {
	opts := aztables.ClientOptions{
		ClientOptions: azcore.ClientOptions{
			// A failed operation is reported once and never retried.
			Retry: policy.RetryOptions{MaxRetries: -1},
		},
	}

	svc, err := aztables.NewServiceClientFromConnectionString(connStr, &opts)
	if err != nil {
		return nil, store.FailedConnection(StoreName, fmt.Errorf("invalid connection string: %w", err), logger)
	}

	client := svc.NewClient(table)
	conn := store.Connect(ctx, StoreName, logger, timeout, func(ctx context.Context) error {
		return ensureTable(ctx, client)
	})
	return client, conn
}

func ensureTable(ctx context.Context, client *aztables.Client) error {
	if _, err := client.CreateTable(ctx, nil); err != nil {
		var respErr *azcore.ResponseError
		if errors.As(err, &respErr) && respErr.ErrorCode == string(aztables.TableAlreadyExists) {
			return nil
		}
		return fmt.Errorf("create table: %w", err)
	}
	return nil
}
