package worker

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/phrazzld/taskboard/internal/redact"
)

// PoolConfig holds configuration options for the pool.
type PoolConfig struct {
	// WorkerCount determines how many concurrent worker goroutines to start.
	// If zero or negative, the DefaultPoolConfig value is used.
	WorkerCount int

	// QueueSize is the number of jobs that may wait for a worker.
	// If zero or negative, the DefaultPoolConfig value is used.
	QueueSize int
}

// DefaultPoolConfig returns the values NewPool falls back to.
func DefaultPoolConfig() PoolConfig {
	return PoolConfig{
		WorkerCount: 2,
		QueueSize:   100,
	}
}

// ErrorHandler is called when a job returns an error or panics.
type ErrorHandler func(job Job, err error)

// Pool manages a pool of worker goroutines that process jobs from its queue.
type Pool struct {
	queue       *Queue
	workerCount int
	wg          sync.WaitGroup
	startOnce   sync.Once
	stopOnce    sync.Once
	ctx         context.Context
	cancel      context.CancelFunc
	logger      *slog.Logger

	// errorHandler is called when a job execution fails
	errorHandler ErrorHandler
}

// NewPool creates a pool with its own queue. Call Start before submitting.
func NewPool(config PoolConfig, logger *slog.Logger) *Pool {
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With(slog.String("component", "worker_pool"))

	defaults := DefaultPoolConfig()
	workerCount := config.WorkerCount
	if workerCount <= 0 {
		workerCount = defaults.WorkerCount
		logger.Warn("invalid worker count specified, using default",
			slog.Int("specified_count", config.WorkerCount),
			slog.Int("default_count", workerCount))
	}
	queueSize := config.QueueSize
	if queueSize <= 0 {
		queueSize = defaults.QueueSize
		logger.Warn("invalid queue size specified, using default",
			slog.Int("specified_size", config.QueueSize),
			slog.Int("default_size", queueSize))
	}

	ctx, cancel := context.WithCancel(context.Background())

	p := &Pool{
		queue:       NewQueue(queueSize, logger),
		workerCount: workerCount,
		ctx:         ctx,
		cancel:      cancel,
		logger:      logger,
	}
	p.errorHandler = p.logError
	return p
}

// SetErrorHandler replaces the default handler, which logs the failure.
// It must be called before Start.
func (p *Pool) SetErrorHandler(handler ErrorHandler) {
	if handler == nil {
		handler = p.logError
	}
	p.errorHandler = handler
}

// Submit queues a job for execution without blocking.
// It returns ErrQueueFull or ErrQueueClosed when the job was not accepted.
func (p *Pool) Submit(job Job) error {
	return p.queue.Enqueue(job)
}

// Start launches the worker goroutines. Calling it more than once has no effect.
func (p *Pool) Start() {
	p.startOnce.Do(func() {
		p.logger.Info("starting worker pool", slog.Int("worker_count", p.workerCount))
		for i := 0; i < p.workerCount; i++ {
			p.wg.Add(1)
			go p.worker(i)
		}
	})
}

// Stop closes the queue and returns once every accepted job has finished.
// The job context is canceled only after the drain.
func (p *Pool) Stop() {
	p.stopOnce.Do(func() {
		p.logger.Info("stopping worker pool")
		p.queue.Close()
		p.wg.Wait()
		p.cancel()
		p.logger.Info("worker pool stopped")
	})
}

// StopContext is Stop bounded by ctx. When ctx expires first the running
// jobs are canceled and ctx's error is returned.
func (p *Pool) StopContext(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		p.Stop()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		p.cancel()
		return ctx.Err()
	}
}

func (p *Pool) worker(id int) {
	defer p.wg.Done()

	p.logger.Debug("starting worker", slog.Int("worker_id", id))
	for job := range p.queue.Jobs() {
		p.run(id, job)
	}
	p.logger.Debug("worker exited", slog.Int("worker_id", id))
}

func (p *Pool) run(workerID int, job Job) {
	start := time.Now()
	log := p.logger.With(
		slog.Int("worker_id", workerID),
		slog.String("job_id", job.ID().String()),
		slog.String("job_type", job.Type()),
	)

	err := p.execute(job)
	if err != nil {
		p.errorHandler(job, err)
		return
	}

	log.Debug("job completed", slog.Int64("duration_ms", time.Since(start).Milliseconds()))
}

func (p *Pool) execute(job Job) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("job panicked: %v", r)
		}
	}()
	return job.Execute(p.ctx)
}

func (p *Pool) logError(job Job, err error) {
	p.logger.Error("job execution failed",
		slog.String("job_id", job.ID().String()),
		slog.String("job_type", job.Type()),
		slog.String("error", redact.Error(err)))
}
