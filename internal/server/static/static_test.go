package static

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/dmitrijs2005/guestbook/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRoot(t *testing.T) (string, string) {
	t.Helper()
	parent := t.TempDir()
	root := filepath.Join(parent, "www")
	require.NoError(t, os.MkdirAll(filepath.Join(root, "css"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "index.html"), []byte("<h1>hi</h1>"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "css", "site.css"), []byte("body{}"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(parent, "secret.txt"), []byte("top secret"), 0o644))
	return root, parent
}

func TestLoad_ServesFiles(t *testing.T) {
	root, _ := setupRoot(t)
	d := NewDir(root)

	b, ct, err := d.Load("index.html")
	require.NoError(t, err)
	assert.Equal(t, "<h1>hi</h1>", string(b))
	assert.Equal(t, "text/html; charset=utf8", ct)

	b, ct, err = d.Load("css/site.css")
	require.NoError(t, err)
	assert.Equal(t, "body{}", string(b))
	assert.Equal(t, "text/css", ct)
}

func TestLoad_NotFound(t *testing.T) {
	root, _ := setupRoot(t)
	d := NewDir(root)

	for _, p := range []string{"", "missing.html", "css", "../secret.txt", "css/../../secret.txt", "a\x00b"} {
		b, ct, err := d.Load(p)
		assert.ErrorIs(t, err, common.ErrNotFound, "path %q", p)
		assert.Nil(t, b, "no bytes leak for %q", p)
		assert.Empty(t, ct)
	}
}

func TestContentType(t *testing.T) {
	tests := map[string]string{
		"font.otf":   "font/otf",
		"a.gif":      "image/gif",
		"a.jpg":      "image/jpeg",
		"a.JPEG":     "image/jpeg",
		"a.png":      "image/png",
		"doc.pdf":    "application/pdf",
		"x.htm":      "text/html; charset=utf8",
		"app.js":     "text/javascript",
		"notes.txt":  "text/plain; charset=utf8",
		"data.bin":   "text/plain; charset=utf8",
		"Makefile":   "text/plain",
		"dir/README": "text/plain",
	}
	for in, want := range tests {
		assert.Equal(t, want, ContentType(in), in)
	}
}
