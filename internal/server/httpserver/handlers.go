package httpserver

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/dmitrijs2005/guestbook/internal/common"
	"github.com/dmitrijs2005/guestbook/internal/logging"
	"github.com/dmitrijs2005/guestbook/internal/server/guestbook"
	"github.com/dmitrijs2005/guestbook/internal/server/models"
	"github.com/dmitrijs2005/guestbook/internal/server/render"
	"github.com/dmitrijs2005/guestbook/internal/server/router"
)

// MaxBodyBytes caps a submission body.
const MaxBodyBytes = 64 << 10

const (
	contentTypeFragment = "text/css"
	contentTypeCount    = "application/json"

	allowMethods = "POST, GET, OPTIONS"
	allowHeaders = "Content-Type"
	maxAge       = "86400"
)

// EntryService is the guestbook side the handlers call.
type EntryService interface {
	Submit(ctx context.Context, sub guestbook.Submission) (*models.Entry, error)
	List(ctx context.Context) ([]models.Entry, error)
}

// Counter is the visitor counter side of the storage gateway.
type Counter interface {
	IncrementVisitorCount(ctx context.Context) (int64, error)
	ReadVisitorCount(ctx context.Context) (int64, error)
	VisitorCounterEnabled() bool
}

// FileLoader resolves static paths.
type FileLoader interface {
	Load(path string) ([]byte, string, error)
}

// Handlers executes router actions. Every method writes exactly one
// response.
type Handlers struct {
	entries    EntryService
	counter    Counter
	files      FileLoader
	corsOrigin string
	logger     logging.Logger
}

func NewHandlers(es EntryService, c Counter, f FileLoader, corsOrigin string, l logging.Logger) *Handlers {
	return &Handlers{
		entries:    es,
		counter:    c,
		files:      f,
		corsOrigin: corsOrigin,
		logger:     l.With("module", "handlers"),
	}
}

// Handle dispatches on action.Kind.
func (h *Handlers) Handle(ctx context.Context, w http.ResponseWriter, r *http.Request, action router.Action) {
	switch action.Kind {
	case router.ServeStaticFile:
		h.serveStatic(ctx, w, action.Path)
	case router.ListEntriesFragment:
		h.listEntries(ctx, w)
	case router.SubmitEntry:
		h.submitEntry(ctx, w, r)
	case router.GetVisitorCount:
		h.getVisitorCount(ctx, w)
	case router.IncrementVisitorCount:
		h.incrementVisitorCount(ctx, w)
	case router.PreflightCheck:
		h.preflight(w)
	case router.MethodNotAllowed:
		w.WriteHeader(http.StatusMethodNotAllowed)
	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

func (h *Handlers) serveStatic(ctx context.Context, w http.ResponseWriter, path string) {
	b, ct, err := h.files.Load(path)
	if errors.Is(err, common.ErrNotFound) {
		h.logger.Warn(ctx, "file not found", "path", path)
		w.WriteHeader(http.StatusNotFound)
		return
	}
	if err != nil {
		h.logger.Error(ctx, "static file error", "path", path, "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", ct)
	w.Header().Set("Content-Length", strconv.Itoa(len(b)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(b)
}

func (h *Handlers) writeFragment(ctx context.Context, w http.ResponseWriter, status int) {
	list, err := h.entries.List(ctx)
	if err != nil {
		h.logger.Error(ctx, "list entries", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	html, err := render.Entries(list)
	if err != nil {
		h.logger.Error(ctx, "render entries", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", contentTypeFragment)
	w.WriteHeader(status)
	_, _ = io.WriteString(w, html)
}

func (h *Handlers) listEntries(ctx context.Context, w http.ResponseWriter) {
	h.writeFragment(ctx, w, http.StatusOK)
}

func (h *Handlers) submitEntry(ctx context.Context, w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, MaxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			w.WriteHeader(http.StatusRequestEntityTooLarge)
			return
		}
		h.logger.Warn(ctx, "read body", "error", err)
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	sub, err := guestbook.ParseSubmission(body)
	if err != nil {
		h.logger.Warn(ctx, "bad submission", "error", err)
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	if _, err := h.entries.Submit(ctx, sub); err != nil {
		if errors.Is(err, common.ErrInvalidEntry) {
			h.logger.Warn(ctx, "entry refused", "error", err)
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		h.logger.Error(ctx, "insert entry", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	h.writeFragment(ctx, w, http.StatusCreated)
}

func (h *Handlers) counterError(ctx context.Context, w http.ResponseWriter, err error) {
	if errors.Is(err, common.ErrVisitorCounterDisabled) {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	h.logger.Error(ctx, "visitor counter", "error", err)
	w.WriteHeader(http.StatusInternalServerError)
}

func (h *Handlers) getVisitorCount(ctx context.Context, w http.ResponseWriter) {
	n, err := h.counter.ReadVisitorCount(ctx)
	if err != nil {
		h.counterError(ctx, w, err)
		return
	}

	w.Header().Set("Content-Type", contentTypeCount)
	w.Header().Set("Access-Control-Allow-Origin", h.corsOrigin)
	w.WriteHeader(http.StatusOK)
	_, _ = io.WriteString(w, strconv.FormatInt(n, 10))
}

func (h *Handlers) incrementVisitorCount(ctx context.Context, w http.ResponseWriter) {
	if _, err := h.counter.IncrementVisitorCount(ctx); err != nil {
		h.counterError(ctx, w, err)
		return
	}

	w.Header().Set("Access-Control-Allow-Origin", h.corsOrigin)
	w.WriteHeader(http.StatusOK)
}

func (h *Handlers) preflight(w http.ResponseWriter) {
	if !h.counter.VisitorCounterEnabled() {
		w.WriteHeader(http.StatusNotFound)
		return
	}

	hd := w.Header()
	hd.Set("Access-Control-Allow-Origin", h.corsOrigin)
	hd.Set("Access-Control-Allow-Methods", allowMethods)
	hd.Set("Access-Control-Allow-Headers", allowHeaders)
	hd.Set("Access-Control-Max-Age", maxAge)
	w.WriteHeader(http.StatusNoContent)
}
