// Package gallery persists named diagrams (source text plus the render
// configuration they were saved with) so the serve command can re-render
// a saved diagram on demand without the caller resending its source.
package gallery

import (
	"context"
	"errors"
	"time"

	"github.com/flowtext/mmdascii/pkg/config"
)

// ErrNotFound is returned when a requested document does not exist.
var ErrNotFound = errors.New("gallery: document not found")

// Document is one named, saved diagram.
type Document struct {
	Name      string              `json:"name"`
	Source    string              `json:"source"`
	Config    config.RenderConfig `json:"config"`
	CreatedAt time.Time           `json:"created_at"`
	UpdatedAt time.Time           `json:"updated_at"`
}

// Store is the interface for gallery storage backends.
type Store interface {
	// Get retrieves a document by name. Returns ErrNotFound if it
	// doesn't exist.
	Get(ctx context.Context, name string) (*Document, error)

	// Put creates or overwrites a document.
	Put(ctx context.Context, doc *Document) error

	// Delete removes a document. Deleting a missing document is not an
	// error.
	Delete(ctx context.Context, name string) error

	// List returns every saved document's name, sorted.
	List(ctx context.Context) ([]string, error)

	// Close releases any resources held by the backend.
	Close() error
}
