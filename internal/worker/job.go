package worker

import (
	"context"

	"github.com/google/uuid"
)

// Job represents a unit of background work to be processed.
type Job interface {
	// ID returns the job's unique identifier
	ID() uuid.UUID

	// Type returns the job type identifier, used in logs
	Type() string

	// Execute runs the job logic
	Execute(ctx context.Context) error
}

// Func adapts a function to the Job interface.
type Func struct {
	id      uuid.UUID
	jobType string
	fn      func(ctx context.Context) error
}

// NewFunc wraps fn as a Job of the given type with a fresh ID.
func NewFunc(jobType string, fn func(ctx context.Context) error) *Func {
	return &Func{id: uuid.New(), jobType: jobType, fn: fn}
}

// ID implements Job.
func (f *Func) ID() uuid.UUID { return f.id }

// Type implements Job.
func (f *Func) Type() string { return f.jobType }

// Execute implements Job.
func (f *Func) Execute(ctx context.Context) error { return f.fn(ctx) }
