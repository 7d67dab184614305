package document

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// TextHandler reads and writes plain text files
type TextHandler struct{}

// NewTextHandler creates a new text handler
func NewTextHandler() *TextHandler {
	return &TextHandler{}
}

// Name returns the handler name
func (h *TextHandler) Name() string {
	return "text"
}

// CanHandle checks if this handler can handle the given path
func (h *TextHandler) CanHandle(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".txt", ".text":
		return true
	}
	return false
}

// DefaultOutput returns the conventional output path for the input
func (h *TextHandler) DefaultOutput(path string) string {
	return OutputName(path, "")
}

// Open reads the file and splits it into line segments
func (h *TextHandler) Open(path string) (Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read text file: %w", err)
	}
	return &textDocument{segments: SplitLines(string(data))}, nil
}

type textDocument struct {
	segments []string
}

// Segments returns the text segments in document order.
func (d *textDocument) Segments() []string {
	return d.segments
}

// Write writes the document to outPath with the given segments.
func (d *textDocument) Write(segments []string, outPath string) error {
	if len(segments) != len(d.segments) {
		return fmt.Errorf("segment count mismatch: got %d, want %d", len(segments), len(d.segments))
	}
	return os.WriteFile(outPath, []byte(strings.Join(segments, "")), 0o644)
}

// SplitLines splits text after each newline so that joining the parts
// reproduces the input byte for byte. Line endings stay attached to
// their lines, so CRLF files survive unharmed.
func SplitLines(text string) []string {
	if text == "" {
		return nil
	}
	parts := strings.SplitAfter(text, "\n")
	if parts[len(parts)-1] == "" {
		parts = parts[:len(parts)-1]
	}
	return parts
}
