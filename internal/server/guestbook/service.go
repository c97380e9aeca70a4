package guestbook

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/dmitrijs2005/guestbook/internal/server/models"
)

// Store is the part of the storage gateway the guestbook needs.
type Store interface {
	InsertEntry(ctx context.Context, e *models.Entry) error
	ListPublicEntries(ctx context.Context) ([]models.Entry, error)
}

type Service struct {
	store Store
	now   func() time.Time
}

// NewService builds a Service. A nil clock means time.Now.
func NewService(store Store, now func() time.Time) *Service {
	if now == nil {
		now = time.Now
	}
	return &Service{store: store, now: now}
}

// Submit sanitizes sub, stamps it with the current time and stores it as a
// public entry.
func (s *Service) Submit(ctx context.Context, sub Submission) (*models.Entry, error) {
	clean := sub.Sanitize()
	e := &models.Entry{
		Name:    clean.Name,
		Domain:  clean.Domain,
		Message: clean.Message,
		Color:   clean.Color,
		Time:    s.now().Unix(),
		Public:  true,
	}

	if err := s.store.InsertEntry(ctx, e); err != nil {
		return nil, fmt.Errorf("error creating entry: %w", err)
	}
	return e, nil
}

// List returns public entries, newest first.
func (s *Service) List(ctx context.Context) ([]models.Entry, error) {
	list, err := s.store.ListPublicEntries(ctx)
	if err != nil {
		return nil, fmt.Errorf("error listing entries: %w", err)
	}
	slices.Reverse(list)
	return list, nil
}
