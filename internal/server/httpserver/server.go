package httpserver

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/dmitrijs2005/guestbook/internal/common"
	"github.com/dmitrijs2005/guestbook/internal/logging"
	"github.com/google/uuid"
)

const readHeaderTimeout = 10 * time.Second

// Server ties the net/http accept side to the worker pool.
type Server struct {
	srv    *http.Server
	src    *Source
	pool   *Pool
	flag   Flag
	logger logging.Logger
}

// NewServer builds a Server with a pool of the given size. Workers start
// with Serve.
func NewServer(workers int, h *Handlers, flag Flag, l logging.Logger) *Server {
	src := NewSource()
	s := &Server{
		src:    src,
		pool:   NewPool(workers, src, h, flag, l),
		flag:   flag,
		logger: l.With("module", "http_server"),
	}
	s.srv = &http.Server{
		Handler:           s,
		ReadHeaderTimeout: readHeaderTimeout,
	}
	return s
}

func (s *Server) Pool() *Pool { return s.pool }

// ServeHTTP runs on net/http's connection goroutine. It only queues the
// request and waits for the worker to finish writing the response.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if s.flag.ShuttingDown() {
		w.Header().Set("Connection", "close")
		w.WriteHeader(http.StatusServiceUnavailable)
		return
	}

	j := newJob(w, r, uuid.NewString())
	if err := s.src.Offer(r.Context(), j); err != nil {
		if errors.Is(err, common.ErrShuttingDown) {
			w.Header().Set("Connection", "close")
			w.WriteHeader(http.StatusServiceUnavailable)
		}
		// Otherwise the client is gone; nobody reads the response.
		return
	}
	<-j.done
}

// Serve starts the workers and accepts connections on l until
// StopAccepting is called. A clean stop returns nil.
func (s *Server) Serve(ctx context.Context, l net.Listener) error {
	s.pool.Start(ctx)
	s.logger.Info(ctx, "Starting HTTP server", "address", l.Addr().String(), "workers", s.pool.Size())

	if err := s.srv.Serve(l); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Unblock wakes every worker waiting for a request.
func (s *Server) Unblock() {
	s.src.Close()
}

// StopAccepting closes the listener and waits, up to timeout, for
// connections to go idle. It runs in the background and returns at once.
func (s *Server) StopAccepting(timeout time.Duration) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		s.logger.Info(ctx, "Stopping HTTP server...")
		if err := s.srv.Shutdown(ctx); err != nil {
			s.logger.Warn(ctx, "http shutdown", "error", err)
		}
	}()
}
