// Package lifecycle drives process shutdown for the worker pool.
//
// The Coordinator is a three-state machine, Running → ShuttingDown →
// Stopped. It is the only component that changes pool-wide lifecycle state;
// workers only read it through ShuttingDown.
package lifecycle

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/dmitrijs2005/guestbook/internal/common"
	"github.com/dmitrijs2005/guestbook/internal/logging"
)

type State int32

const (
	Running State = iota
	ShuttingDown
	Stopped
)

func (s State) String() string {
	switch s {
	case Running:
		return "running"
	case ShuttingDown:
		return "shutting_down"
	case Stopped:
		return "stopped"
	default:
		return "unknown"
	}
}

// Pool is what the coordinator watches: a fixed size and the number of
// workers that have reported termination.
type Pool interface {
	Size() int
	Stopped() int
}

type Coordinator struct {
	state    atomic.Int32
	interval time.Duration
	polls    int
	logger   logging.Logger
}

// New returns a Running coordinator that, once shutdown starts, checks the
// pool every interval and gives up after polls intervals.
func New(interval time.Duration, polls int, logger logging.Logger) *Coordinator {
	return &Coordinator{
		interval: interval,
		polls:    polls,
		logger:   logger.With("module", "lifecycle"),
	}
}

func (c *Coordinator) State() State {
	return State(c.state.Load())
}

// ShuttingDown is the flag workers check after each response.
func (c *Coordinator) ShuttingDown() bool {
	return c.State() != Running
}

// Begin moves Running → ShuttingDown and runs every unblock hook. Later
// calls do nothing and report false.
func (c *Coordinator) Begin(ctx context.Context, unblock ...func()) bool {
	if !c.state.CompareAndSwap(int32(Running), int32(ShuttingDown)) {
		return false
	}
	c.logger.Info(ctx, "shutdown initiated")
	for _, fn := range unblock {
		fn()
	}
	return true
}

// Wait polls pool until every worker has stopped. It returns nil and moves
// to Stopped on success, or common.ErrShutdownTimeout once polls intervals
// have passed with workers still running.
func (c *Coordinator) Wait(ctx context.Context, pool Pool) error {
	c.logger.Info(ctx, "waiting for workers to stop",
		"workers", pool.Size(), "timeout", time.Duration(c.polls)*c.interval)

	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	for i := 0; ; i++ {
		if stopped := pool.Stopped(); stopped >= pool.Size() {
			c.state.Store(int32(Stopped))
			c.logger.Info(ctx, "all workers stopped", "workers", stopped)
			return nil
		}
		if i >= c.polls {
			break
		}
		<-ticker.C
	}

	c.logger.Error(ctx, "shutdown timeout reached, forcing exit",
		"stopped", pool.Stopped(), "workers", pool.Size())
	return common.ErrShutdownTimeout
}

// Run blocks until ctx is done, then performs Begin and Wait.
func (c *Coordinator) Run(ctx context.Context, pool Pool, unblock ...func()) error {
	<-ctx.Done()
	bg := context.WithoutCancel(ctx)
	c.Begin(bg, unblock...)
	return c.Wait(bg, pool)
}
