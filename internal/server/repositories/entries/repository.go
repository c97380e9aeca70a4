package entries

import (
	"context"

	"github.com/dmitrijs2005/guestbook/internal/server/models"
)

// Repository describes the operations on stored entries.
type Repository interface {
	// Insert appends one entry.
	Insert(ctx context.Context, entry *models.Entry) error

	// ListPublic returns public entries in insertion order.
	ListPublic(ctx context.Context) ([]models.Entry, error)
}
