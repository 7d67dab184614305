// Package document reads and writes the file formats nagolos can mark.
// Each handler splits a file into text segments, and writes the marked
// segments back into the same layout.
package document

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// ErrUnsupported is returned when no handler claims a path.
var ErrUnsupported = errors.New("unsupported document format")

// Document is an opened file whose text segments can be replaced with
// marked versions and written back out.
type Document interface {
	// Segments returns the text segments in document order.
	Segments() []string

	// Write writes the document to outPath with the given segments in
	// place of the originals. The slice must have the same length as
	// Segments.
	Write(segments []string, outPath string) error
}

// Handler defines the interface for format-specific readers and writers
type Handler interface {
	// Name returns the handler name
	Name() string

	// CanHandle checks if this handler can handle the given path
	CanHandle(path string) bool

	// Open reads the file and splits it into markable segments
	Open(path string) (Document, error)

	// DefaultOutput returns the conventional output path for the input
	DefaultOutput(path string) string
}

// Registry manages format handlers
type Registry struct {
	handlers []Handler
}

// NewRegistry creates a new handler registry
func NewRegistry() *Registry {
	registry := &Registry{
		handlers: make([]Handler, 0),
	}

	// Register built-in handlers
	registry.Register(NewDocxHandler())
	registry.Register(NewPDFHandler())
	registry.Register(NewHTMLHandler())
	registry.Register(NewTextHandler())

	return registry
}

// Register registers a new handler
func (r *Registry) Register(handler Handler) {
	r.handlers = append(r.handlers, handler)
}

// FindHandler finds the handler for the given path
func (r *Registry) FindHandler(path string) (Handler, error) {
	for _, handler := range r.handlers {
		if handler.CanHandle(path) {
			return handler, nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrUnsupported, filepath.Ext(path))
}

// OutputName derives the conventional output path: the input name with
// a _nagolos suffix before the extension. An empty newExt keeps the
// input's extension.
func OutputName(path, newExt string) string {
	ext := filepath.Ext(path)
	if newExt == "" {
		newExt = ext
	}
	return strings.TrimSuffix(path, ext) + "_nagolos" + newExt
}
