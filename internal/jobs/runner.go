package jobs

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
)

// ErrAlreadyRunning is returned when Run is called on a busy runner
var ErrAlreadyRunning = errors.New("runner is already running")

// Job is one named unit of batch work
type Job interface {
	Name() string
	Run(ctx context.Context) error
}

// Func adapts a function to the Job interface
type Func struct {
	JobName string
	Fn      func(ctx context.Context) error
}

// Name returns the job name
func (f Func) Name() string { return f.JobName }

// Run calls the function
func (f Func) Run(ctx context.Context) error { return f.Fn(ctx) }

// Runner executes jobs sequentially
type Runner struct {
	logger  *zap.Logger
	mu      sync.Mutex
	running bool
}

// NewRunner creates a runner; a nil logger disables logging
func NewRunner(logger *zap.Logger) *Runner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Runner{logger: logger}
}

// Run executes jobs in order and stops at the first failure. The returned
// error names the failing job and wraps its error.
func (r *Runner) Run(ctx context.Context, jobs ...Job) error {
	r.mu.Lock()
	if r.running {
		r.mu.Unlock()
		return ErrAlreadyRunning
	}
	r.running = true
	r.mu.Unlock()

	defer func() {
		r.mu.Lock()
		r.running = false
		r.mu.Unlock()
	}()

	for i, job := range jobs {
		if err := ctx.Err(); err != nil {
			r.logger.Warn("job skipped", zap.String("job", job.Name()), zap.Error(err))
			return fmt.Errorf("job %s: %w", job.Name(), err)
		}

		log := r.logger.With(zap.String("job", job.Name()), zap.Int("step", i+1), zap.Int("of", len(jobs)))
		log.Info("job started")
		start := time.Now()

		if err := job.Run(ctx); err != nil {
			log.Error("job failed", zap.Duration("elapsed", time.Since(start)), zap.Error(err))
			return fmt.Errorf("job %s: %w", job.Name(), err)
		}
		log.Info("job finished", zap.Duration("elapsed", time.Since(start)))
	}
	return nil
}
