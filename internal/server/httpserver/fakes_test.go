package httpserver

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/guestbook/internal/common"
	"github.com/dmitrijs2005/guestbook/internal/server/guestbook"
	"github.com/dmitrijs2005/guestbook/internal/server/models"
)

type fakeEntries struct {
	mu        sync.Mutex
	list      []models.Entry
	submitErr error
	listErr   error
	listHook  func()
}

func (f *fakeEntries) Submit(_ context.Context, sub guestbook.Submission) (*models.Entry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.submitErr != nil {
		return nil, f.submitErr
	}
	clean := sub.Sanitize()
	e := models.Entry{Name: clean.Name, Domain: clean.Domain, Message: clean.Message, Color: clean.Color, Time: 1, Public: true}
	f.list = append([]models.Entry{e}, f.list...)
	return &e, nil
}

func (f *fakeEntries) List(context.Context) ([]models.Entry, error) {
	if f.listHook != nil {
		f.listHook()
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listErr != nil {
		return nil, f.listErr
	}
	return append([]models.Entry(nil), f.list...), nil
}

type fakeCounter struct {
	mu      sync.Mutex
	enabled bool
	n       int64
	err     error
}

func (f *fakeCounter) IncrementVisitorCount(context.Context) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.enabled {
		return 0, common.ErrVisitorCounterDisabled
	}
	if f.err != nil {
		return 0, f.err
	}
	f.n++
	return f.n, nil
}

func (f *fakeCounter) ReadVisitorCount(context.Context) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.enabled {
		return 0, common.ErrVisitorCounterDisabled
	}
	if f.err != nil {
		return 0, f.err
	}
	return f.n, nil
}

func (f *fakeCounter) VisitorCounterEnabled() bool { return f.enabled }

type fakeFiles map[string]string

func (f fakeFiles) Load(path string) ([]byte, string, error) {
	b, ok := f[path]
	if !ok {
		return nil, "", common.ErrNotFound
	}
	return []byte(b), "text/html; charset=utf8", nil
}

type staticFlag bool

func (f staticFlag) ShuttingDown() bool { return bool(f) }
