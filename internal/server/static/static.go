// Package static maps request paths to files under a root directory.
package static

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/dmitrijs2005/guestbook/internal/common"
)

// Dir serves files below Root. Paths that leave Root are not found.
type Dir struct {
	Root string
}

func NewDir(root string) *Dir {
	return &Dir{Root: root}
}

// Load reads the file at the slash-separated path relative to Root and
// returns its bytes and content type. Every failure to produce a readable
// regular file wraps common.ErrNotFound.
func (d *Dir) Load(path string) ([]byte, string, error) {
	if path == "" || strings.Contains(path, "\x00") {
		return nil, "", fmt.Errorf("empty path: %w", common.ErrNotFound)
	}

	f, err := os.OpenInRoot(d.Root, filepath.FromSlash(path))
	if err != nil {
		return nil, "", fmt.Errorf("open %s: %v: %w", path, err, common.ErrNotFound)
	}
	defer f.Close()

	fi, err := f.Stat()
	if err != nil {
		return nil, "", fmt.Errorf("stat %s: %v: %w", path, err, common.ErrNotFound)
	}
	if !fi.Mode().IsRegular() {
		return nil, "", fmt.Errorf("%s is not a regular file: %w", path, common.ErrNotFound)
	}

	b, err := io.ReadAll(f)
	if err != nil {
		return nil, "", fmt.Errorf("read %s: %v: %w", path, err, common.ErrNotFound)
	}

	return b, ContentType(path), nil
}

// ContentType picks the Content-Type header from the file extension.
func ContentType(path string) string {
	ext := filepath.Ext(path)
	if ext == "" {
		return "text/plain"
	}

	switch strings.ToLower(ext[1:]) {
	case "otf":
		return "font/otf"
	case "gif":
		return "image/gif"
	case "jpg", "jpeg":
		return "image/jpeg"
	case "png":
		return "image/png"
	case "pdf":
		return "application/pdf"
	case "htm", "html":
		return "text/html; charset=utf8"
	case "js":
		return "text/javascript"
	case "css":
		return "text/css"
	default:
		return "text/plain; charset=utf8"
	}
}
