// Package fs provides a filesystem-backed document catalog.
package fs

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"admitbot"
)

// Ensure Catalog implements admitbot.Catalog at compile time.
var _ admitbot.Catalog = (*Catalog)(nil)

// Catalog enumerates PDF documents under a directory tree. The tree is
// rescanned on every List call so newly downloaded documents appear without
// any cache invalidation.
type Catalog struct {
	dir string
}

// NewCatalog creates a Catalog rooted at dir.
func NewCatalog(dir string) *Catalog {
	return &Catalog{dir: dir}
}

// List returns the PDF documents under the catalog directory in lexical
// walk order. A missing directory yields an empty catalog, not an error.
func (c *Catalog) List(ctx context.Context) ([]admitbot.Document, error) {
	if _, err := os.Stat(c.dir); os.IsNotExist(err) {
		return nil, nil
	}

	var docs []admitbot.Document
	err := filepath.WalkDir(c.dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if d.IsDir() {
			return nil
		}
		if !strings.EqualFold(filepath.Ext(path), ".pdf") {
			return nil
		}
		docs = append(docs, admitbot.NewDocument(path))
		return nil
	})
	if err != nil {
		return nil, err
	}
	return docs, nil
}
