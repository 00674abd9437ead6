package store

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/phrazzld/taskboard/internal/redact"
)

// DialFunc performs the single attempt to reach a backing store.
type DialFunc func(ctx context.Context) error

// Connection tracks the outcome of the one connection attempt made to a
// backing store at startup. Operations wait on it through Ready.
type Connection struct {
	name string
	done chan struct{}
	err  error
}

func newConnection(name string) *Connection {
	return &Connection{
		name: name,
		done: make(chan struct{}),
	}
}

// Connect starts an asynchronous connection attempt and returns immediately.
// The outcome is logged; a failure is never fatal. A non-positive timeout
// leaves the attempt bounded only by ctx.
func Connect(
	ctx context.Context,
	name string,
	logger *slog.Logger,
	timeout time.Duration,
	dial DialFunc,
) *Connection {
	c := newConnection(name)

	go func() {
		dialCtx := ctx
		if timeout > 0 {
			var cancel context.CancelFunc
			dialCtx, cancel = context.WithTimeout(ctx, timeout)
			defer cancel()
		}

		start := time.Now()
		err := dial(dialCtx)
		c.resolve(err)

		if err != nil {
			logger.Error("store connection failed",
				slog.String("store", name),
				slog.String("error", redact.Error(err)),
				slog.Int64("duration_ms", time.Since(start).Milliseconds()))
			return
		}
		logger.Info("connected to store",
			slog.String("store", name),
			slog.Int64("duration_ms", time.Since(start).Milliseconds()))
	}()

	return c
}

// FailedConnection records a store whose client could not even be
// constructed, typically because the connection string is malformed.
func FailedConnection(name string, err error, logger *slog.Logger) *Connection {
	logger.Error("store connection failed",
		slog.String("store", name),
		slog.String("error", redact.Error(err)))

	c := newConnection(name)
	c.resolve(err)
	return c
}

// EstablishedConnection returns a Connection that is already usable.
// It is meant for callers that manage the underlying handle themselves,
// such as tests running inside a transaction.
func EstablishedConnection(name string) *Connection {
	c := newConnection(name)
	c.resolve(nil)
	return c
}

func (c *Connection) resolve(err error) {
	c.err = err
	close(c.done)
}

// Done is closed once the connection attempt has finished.
func (c *Connection) Done() <-chan struct{} {
	return c.done
}

// Ready waits for the connection attempt to finish and reports whether the
// store can be used. The returned error wraps ErrStoreUnavailable.
func (c *Connection) Ready(ctx context.Context) error {
	select {
	case <-c.done:
		if c.err != nil {
			return fmt.Errorf("%w: %s: %w", ErrStoreUnavailable, c.name, c.err)
		}
		return nil
	case <-ctx.Done():
		return fmt.Errorf("%w: %s: %w", ErrStoreUnavailable, c.name, ctx.Err())
	}
}
