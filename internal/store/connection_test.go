package store_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/phrazzld/taskboard/internal/platform/logger"
	"github.com/phrazzld/taskboard/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConnect_Success(t *testing.T) {
	log, buf := logger.GetTestLogger(t)

	conn := store.Connect(context.Background(), "test", log, time.Second, func(ctx context.Context) error {
		return nil
	})

	require.NoError(t, conn.Ready(context.Background()))
	logger.AssertLogContains(t, buf, "connected to store")
}

func TestConnect_DoesNotBlockCaller(t *testing.T) {
	log, _ := logger.GetTestLogger(t)
	release := make(chan struct{})

	start := time.Now()
	conn := store.Connect(context.Background(), "slow", log, 0, func(ctx context.Context) error {
		<-release
		return nil
	})
	assert.Less(t, time.Since(start), 500*time.Millisecond, "Connect must return before the dial finishes")

	select {
	case <-conn.Done():
		t.Fatal("connection resolved before dial returned")
	default:
	}

	close(release)
	require.NoError(t, conn.Ready(context.Background()))
}

func TestConnect_FailureIsLoggedAndRedacted(t *testing.T) {
	log, buf := logger.GetTestLogger(t)
	dialErr := errors.New("dial postgres://demo:s3cr3t@db:5432/taskboard: refused")

	conn := store.Connect(context.Background(), "postgres", log, time.Second, func(ctx context.Context) error {
		return dialErr
	})

	err := conn.Ready(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, store.ErrStoreUnavailable))
	assert.True(t, errors.Is(err, dialErr))

	logger.AssertLogContains(t, buf, "store connection failed")
	assert.NotContains(t, buf.String(), "s3cr3t")
}

func TestConnect_TimeoutBoundsDial(t *testing.T) {
	log, _ := logger.GetTestLogger(t)

	conn := store.Connect(context.Background(), "hung", log, 20*time.Millisecond, func(ctx context.Context) error {
		<-ctx.Done()
		return ctx.Err()
	})

	err := conn.Ready(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, store.ErrStoreUnavailable))
	assert.True(t, errors.Is(err, context.DeadlineExceeded))
}

func TestReady_RespectsCallerContext(t *testing.T) {
	log, _ := logger.GetTestLogger(t)
	release := make(chan struct{})
	defer close(release)

	conn := store.Connect(context.Background(), "pending", log, 0, func(ctx context.Context) error {
		<-release
		return nil
	})

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	err := conn.Ready(ctx)
	require.Error(t, err)
	assert.True(t, errors.Is(err, store.ErrStoreUnavailable))
}

func TestFailedConnection(t *testing.T) {
	log, buf := logger.GetTestLogger(t)
	cause := errors.New("malformed connection string")

	conn := store.FailedConnection("tables", cause, log)

	err := conn.Ready(context.Background())
	assert.True(t, errors.Is(err, store.ErrStoreUnavailable))
	assert.True(t, errors.Is(err, cause))
	logger.AssertLogContains(t, buf, "malformed connection string")
}

func TestEstablishedConnection(t *testing.T) {
	conn := store.EstablishedConnection("tx")
	assert.NoError(t, conn.Ready(context.Background()))
}
