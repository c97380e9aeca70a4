package storage

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/guestbook/internal/common"
	"github.com/dmitrijs2005/guestbook/internal/dbx"
	"github.com/dmitrijs2005/guestbook/internal/filex"
	"github.com/dmitrijs2005/guestbook/internal/logging"
	"github.com/dmitrijs2005/guestbook/internal/server/migrations"
	"github.com/dmitrijs2005/guestbook/internal/server/models"
	"github.com/dmitrijs2005/guestbook/internal/server/repositories/entries"
	"github.com/dmitrijs2005/guestbook/internal/server/repositories/visitors"
	"github.com/pressly/goose/v3"

	_ "modernc.org/sqlite"
)

// Options tunes optional parts of the schema.
type Options struct {
	VisitorCounter bool
}

type Gateway struct {
	h              *dbx.Serialized
	visitorCounter bool
	logger         logging.Logger
}

// Open opens (creating if needed) the SQLite store at dsn. A plain file
// path gets its parent directory created first.
func Open(ctx context.Context, dsn string, opts Options, logger logging.Logger) (*Gateway, error) {
	if isFilePath(dsn) {
		if _, err := filex.EnsureParentDir(dsn); err != nil {
			return nil, fmt.Errorf("db dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("db open error: %w", err)
	}
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("db ping error: %w", err)
	}

	return &Gateway{
		h:              dbx.NewSerialized(db),
		visitorCounter: opts.VisitorCounter,
		logger:         logger.With("module", "storage"),
	}, nil
}

func isFilePath(dsn string) bool {
	return dsn != "" && dsn != ":memory:" && !strings.HasPrefix(dsn, "file:")
}

// InitializeSchema applies the embedded migrations and, when the visitor
// counter is enabled, creates its row. Safe to call more than once; meant
// to run before any worker starts.
func (g *Gateway) InitializeSchema(ctx context.Context) error {
	goose.SetBaseFS(migrations.Migrations)
	goose.SetLogger(goose.NopLogger())

	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("goose dialect: %w", err)
	}

	if err := goose.UpContext(ctx, g.h.Conn(), "."); err != nil {
		return fmt.Errorf("migration error: %w", err)
	}

	if g.visitorCounter {
		err := g.h.Do(ctx, nil, func(ctx context.Context, tx dbx.DBTX) error {
			return visitors.NewSQLiteRepository(tx).Ensure(ctx, models.VisitorCounterKey)
		})
		if err != nil {
			return err
		}
	}

	version, err := goose.GetDBVersionContext(ctx, g.h.Conn())
	if err != nil {
		return fmt.Errorf("schema version: %w", err)
	}
	g.logger.Info(ctx, "schema ready", "version", version, "visitor_counter", g.visitorCounter)
	return nil
}

// InsertEntry appends e. Entries with an invalid color, a domain without a
// scheme or a non-positive time are refused with common.ErrInvalidEntry.
func (g *Gateway) InsertEntry(ctx context.Context, e *models.Entry) error {
	if err := validate(e); err != nil {
		return err
	}
	return g.h.Do(ctx, nil, func(ctx context.Context, tx dbx.DBTX) error {
		return entries.NewSQLiteRepository(tx).Insert(ctx, e)
	})
}

func validate(e *models.Entry) error {
	switch {
	case e == nil:
		return fmt.Errorf("nil entry: %w", common.ErrInvalidEntry)
	case !models.IsHexColor(e.Color):
		return fmt.Errorf("color %q: %w", e.Color, common.ErrInvalidEntry)
	case !strings.Contains(e.Domain, "://"):
		return fmt.Errorf("domain %q has no scheme: %w", e.Domain, common.ErrInvalidEntry)
	case e.Time <= 0:
		return fmt.Errorf("time %d: %w", e.Time, common.ErrInvalidEntry)
	}
	return nil
}

// ListPublicEntries returns public entries in storage order, oldest first.
func (g *Gateway) ListPublicEntries(ctx context.Context) ([]models.Entry, error) {
	var out []models.Entry
	err := g.h.Do(ctx, nil, func(ctx context.Context, tx dbx.DBTX) error {
		var err error
		out, err = entries.NewSQLiteRepository(tx).ListPublic(ctx)
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// IncrementVisitorCount bumps the counter and returns the new value.
func (g *Gateway) IncrementVisitorCount(ctx context.Context) (int64, error) {
	if !g.visitorCounter {
		return 0, common.ErrVisitorCounterDisabled
	}
	var n int64
	err := g.h.Do(ctx, nil, func(ctx context.Context, tx dbx.DBTX) error {
		var err error
		n, err = visitors.NewSQLiteRepository(tx).Increment(ctx, models.VisitorCounterKey)
		return err
	})
	return n, err
}

func (g *Gateway) ReadVisitorCount(ctx context.Context) (int64, error) {
	if !g.visitorCounter {
		return 0, common.ErrVisitorCounterDisabled
	}
	var n int64
	err := g.h.Do(ctx, nil, func(ctx context.Context, tx dbx.DBTX) error {
		var err error
		n, err = visitors.NewSQLiteRepository(tx).Get(ctx, models.VisitorCounterKey)
		return err
	})
	return n, err
}

// VisitorCounterEnabled reports whether the counter routes are live.
func (g *Gateway) VisitorCounterEnabled() bool {
	return g.visitorCounter
}

func (g *Gateway) Close() error {
	return g.h.Close()
}
