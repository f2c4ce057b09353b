package admitbot

import (
	"context"
	"path/filepath"
)

// Document represents a locally available answerable document.
type Document struct {
	// Path is the document's location on disk.
	Path string

	// DisplayName is the final path segment, used for candidate selection
	// and user-facing labels. Uniqueness is not guaranteed; name collisions
	// resolve to the first match in catalog order.
	DisplayName string
}

// NewDocument returns a Document for the given path with its display name
// derived from the final path segment.
func NewDocument(path string) Document {
	return Document{
		Path:        path,
		DisplayName: filepath.Base(path),
	}
}

// DisplayNames returns the display names of docs in order.
func DisplayNames(docs []Document) []string {
	names := make([]string, len(docs))
	for i, d := range docs {
		names[i] = d.DisplayName
	}
	return names
}

// Catalog enumerates the locally available documents.
type Catalog interface {
	// List returns all documents at a point in time, in a stable order.
	// An empty result is not an error. The catalog is recomputed on every
	// call; implementations must not cache between calls.
	List(ctx context.Context) ([]Document, error)
}
