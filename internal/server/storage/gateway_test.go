package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/dmitrijs2005/guestbook/internal/common"
	"github.com/dmitrijs2005/guestbook/internal/logging"
	"github.com/dmitrijs2005/guestbook/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openGateway(t *testing.T, counter bool) (*Gateway, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "data", "entries.db")
	g, err := Open(context.Background(), path, Options{VisitorCounter: counter}, logging.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = g.Close() })
	require.NoError(t, g.InitializeSchema(context.Background()))
	return g, path
}

func entry(i int) *models.Entry {
	return &models.Entry{
		Name:    fmt.Sprintf("name-%d", i),
		Domain:  fmt.Sprintf("https://d%d.example", i),
		Message: fmt.Sprintf("message-%d", i),
		Color:   "#00ff00",
		Time:    int64(1700000000 + i),
		Public:  true,
	}
}

func TestOpen_CreatesDataDirectory(t *testing.T) {
	_, path := openGateway(t, false)

	fi, err := os.Stat(filepath.Dir(path))
	require.NoError(t, err)
	assert.True(t, fi.IsDir())

	_, err = os.Stat(path)
	require.NoError(t, err, "store file must exist after schema init")
}

func TestOpen_FailsWhenDirectoryCannotBeCreated(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o600))

	_, err := Open(context.Background(), filepath.Join(blocker, "entries.db"), Options{}, logging.Nop())
	require.Error(t, err)
}

func TestInitializeSchema_Idempotent(t *testing.T) {
	g, _ := openGateway(t, true)
	ctx := context.Background()

	require.NoError(t, g.InsertEntry(ctx, entry(1)))
	_, err := g.IncrementVisitorCount(ctx)
	require.NoError(t, err)

	require.NoError(t, g.InitializeSchema(ctx))

	list, err := g.ListPublicEntries(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1, "re-init must not drop entries")

	n, err := g.ReadVisitorCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n, "re-init must not reset the counter")
}

func TestInsertAndList_RoundTrip(t *testing.T) {
	g, _ := openGateway(t, false)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		require.NoError(t, g.InsertEntry(ctx, entry(i)))
	}

	list, err := g.ListPublicEntries(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	for i, e := range list {
		assert.Equal(t, *entry(i), e, "storage order is insertion order")
	}
}

func TestInsertEntry_RejectsMalformed(t *testing.T) {
	g, _ := openGateway(t, false)
	ctx := context.Background()

	badColor := entry(1)
	badColor.Color = "red"
	noScheme := entry(2)
	noScheme.Domain = "example.org"
	noTime := entry(3)
	noTime.Time = 0

	for _, e := range []*models.Entry{nil, badColor, noScheme, noTime} {
		err := g.InsertEntry(ctx, e)
		assert.ErrorIs(t, err, common.ErrInvalidEntry)
	}

	list, err := g.ListPublicEntries(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestInsertEntry_ConcurrentWritersDoNotInterleave(t *testing.T) {
	g, _ := openGateway(t, false)
	ctx := context.Background()

	const n = 64
	errs := make(chan error, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs <- g.InsertEntry(ctx, entry(i))
		}(i)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	list, err := g.ListPublicEntries(ctx)
	require.NoError(t, err)
	require.Len(t, list, n)

	seen := make(map[string]bool, n)
	for _, e := range list {
		var i int
		_, err := fmt.Sscanf(e.Name, "name-%d", &i)
		require.NoError(t, err)
		assert.Equal(t, *entry(i), e, "row fields must all belong to the same submission")
		assert.False(t, seen[e.Name], "duplicate row %s", e.Name)
		seen[e.Name] = true
	}
}

func TestListPublicEntries_ConsistentWhileWriting(t *testing.T) {
	g, _ := openGateway(t, false)
	ctx := context.Background()

	const n = 40
	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < n; i++ {
			_ = g.InsertEntry(ctx, entry(i))
		}
	}()

	last := 0
	for {
		list, err := g.ListPublicEntries(ctx)
		require.NoError(t, err)
		require.GreaterOrEqual(t, len(list), last, "a later read never sees fewer rows")
		for i, e := range list {
			require.Equal(t, *entry(i), e)
		}
		last = len(list)
		select {
		case <-done:
			return
		default:
		}
	}
}

func TestVisitorCounter_ConcurrentIncrements(t *testing.T) {
	g, _ := openGateway(t, true)
	ctx := context.Background()

	before, err := g.ReadVisitorCount(ctx)
	require.NoError(t, err)

	const n = 50
	var wg sync.WaitGroup
	errs := make(chan error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := g.IncrementVisitorCount(ctx)
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	after, err := g.ReadVisitorCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, before+n, after)
}

func TestVisitorCounter_Disabled(t *testing.T) {
	g, _ := openGateway(t, false)
	ctx := context.Background()

	assert.False(t, g.VisitorCounterEnabled())

	_, err := g.IncrementVisitorCount(ctx)
	assert.ErrorIs(t, err, common.ErrVisitorCounterDisabled)
	_, err = g.ReadVisitorCount(ctx)
	assert.ErrorIs(t, err, common.ErrVisitorCounterDisabled)
}

func TestInMemoryDSN(t *testing.T) {
	g, err := Open(context.Background(), ":memory:", Options{VisitorCounter: true}, logging.Nop())
	require.NoError(t, err)
	defer g.Close()
	require.NoError(t, g.InitializeSchema(context.Background()))

	n, err := g.IncrementVisitorCount(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}
