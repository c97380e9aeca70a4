package httpserver

import (
	"context"
	"fmt"
	"net/http"
	"runtime/debug"
	"sync"
	"sync/atomic"

	"github.com/dmitrijs2005/guestbook/internal/logging"
	"github.com/dmitrijs2005/guestbook/internal/server/router"
)

// Flag is read by workers after every response.
type Flag interface {
	ShuttingDown() bool
}

// Pool is a fixed set of symmetric workers pulling from one Source.
type Pool struct {
	size     int
	src      *Source
	handlers *Handlers
	flag     Flag
	logger   logging.Logger

	stopped atomic.Int32
	wg      sync.WaitGroup
	start   sync.Once
}

func NewPool(size int, src *Source, h *Handlers, flag Flag, l logging.Logger) *Pool {
	return &Pool{
		size:     size,
		src:      src,
		handlers: h,
		flag:     flag,
		logger:   l.With("module", "pool"),
	}
}

// Start launches the workers. Only the first call has an effect.
func (p *Pool) Start(ctx context.Context) {
	p.start.Do(func() {
		for id := 0; id < p.size; id++ {
			p.wg.Add(1)
			go p.work(ctx, id)
		}
	})
}

func (p *Pool) Size() int { return p.size }

// Stopped is the number of workers that have left their loop.
func (p *Pool) Stopped() int { return int(p.stopped.Load()) }

// Wait blocks until every started worker has returned.
func (p *Pool) Wait() { p.wg.Wait() }

func (p *Pool) work(ctx context.Context, id int) {
	log := p.logger.With("worker", id)
	defer p.wg.Done()
	defer func() {
		p.stopped.Add(1)
		log.Info(ctx, "worker stopped")
	}()

	log.Info(ctx, "worker started")

	for {
		j, ok := p.src.Next()
		if !ok {
			return
		}

		p.serve(log, j)

		if p.flag.ShuttingDown() {
			log.Info(ctx, "worker stopping gracefully")
			return
		}
	}
}

// serve runs one job. done is closed on every path, including a panic in
// the handler, so the accepting goroutine never waits forever.
func (p *Pool) serve(log logging.Logger, j *job) {
	rw := &responseWriter{ResponseWriter: j.w}
	log = log.With("request_id", j.id)
	ctx := context.WithoutCancel(j.r.Context())

	defer close(j.done)
	defer func() {
		if rec := recover(); rec != nil {
			log.Error(ctx, "handler panic", "panic", fmt.Sprint(rec), "stack", string(debug.Stack()))
			if !rw.wrote {
				rw.WriteHeader(http.StatusInternalServerError)
			}
		}
	}()

	action := router.Resolve(j.r.Method, j.r.URL.Path)
	log.Debug(ctx, "request", "method", j.r.Method, "path", j.r.URL.Path, "action", action.Kind.String())

	p.handlers.Handle(ctx, rw, j.r, action)

	log.Info(ctx, "served", "method", j.r.Method, "path", j.r.URL.Path, "status", rw.status)
}

// responseWriter remembers whether and what status was written.
type responseWriter struct {
	http.ResponseWriter
	status int
	wrote  bool
}

func (w *responseWriter) WriteHeader(code int) {
	if w.wrote {
		return
	}
	w.status = code
	w.wrote = true
	w.ResponseWriter.WriteHeader(code)
}

func (w *responseWriter) Write(b []byte) (int, error) {
	if !w.wrote {
		w.WriteHeader(http.StatusOK)
	}
	return w.ResponseWriter.Write(b)
}
