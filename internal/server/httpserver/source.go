package httpserver

import (
	"context"
	"net/http"
	"sync"

	"github.com/dmitrijs2005/guestbook/internal/common"
)

// job is one request travelling from the accept side to a worker.
type job struct {
	w    http.ResponseWriter
	r    *http.Request
	id   string
	done chan struct{}
}

func newJob(w http.ResponseWriter, r *http.Request, id string) *job {
	return &job{w: w, r: r, id: id, done: make(chan struct{})}
}

// Source is the shared pull-based request stream. The channel is
// unbuffered: an offer succeeds only when a worker takes the job.
type Source struct {
	jobs   chan *job
	closed chan struct{}
	once   sync.Once
}

func NewSource() *Source {
	return &Source{
		jobs:   make(chan *job),
		closed: make(chan struct{}),
	}
}

// Offer hands j to the next free worker. It fails with
// common.ErrShuttingDown once the source is closed, or with ctx's error
// when the client goes away first.
func (s *Source) Offer(ctx context.Context, j *job) error {
	select {
	case <-s.closed:
		return common.ErrShuttingDown
	default:
	}

	select {
	case s.jobs <- j:
		return nil
	case <-s.closed:
		return common.ErrShuttingDown
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Next blocks until a job arrives or the source is closed.
func (s *Source) Next() (*job, bool) {
	select {
	case j := <-s.jobs:
		return j, true
	case <-s.closed:
		return nil, false
	}
}

// Close unblocks all current and future Next and Offer calls. Safe to call
// more than once.
func (s *Source) Close() {
	s.once.Do(func() { close(s.closed) })
}
