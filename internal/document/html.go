package document

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/net/html"
)

// HTMLHandler reads and writes HTML files. Only visible text nodes are
// marked; markup, scripts and styles pass through untouched.
type HTMLHandler struct{}

// NewHTMLHandler creates a new html handler
func NewHTMLHandler() *HTMLHandler {
	return &HTMLHandler{}
}

// Name returns the handler name
func (h *HTMLHandler) Name() string {
	return "html"
}

// CanHandle checks if this handler can handle the given path
func (h *HTMLHandler) CanHandle(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".html", ".htm":
		return true
	}
	return false
}

// DefaultOutput returns the conventional output path for the input
func (h *HTMLHandler) DefaultOutput(path string) string {
	return OutputName(path, "")
}

// Open parses the file and collects one segment per visible text node.
func (h *HTMLHandler) Open(path string) (Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read html file: %w", err)
	}

	root, err := html.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	var nodes []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			// Skip script, style, noscript tags
			switch n.Data {
			case "script", "style", "noscript", "iframe":
				return
			}
		}

		if n.Type == html.TextNode && strings.TrimSpace(n.Data) != "" {
			nodes = append(nodes, n)
		}

		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)

	segments := make([]string, len(nodes))
	for i, n := range nodes {
		segments[i] = n.Data
	}

	return &htmlDocument{root: root, nodes: nodes, segments: segments}, nil
}

type htmlDocument struct {
	root     *html.Node
	nodes    []*html.Node
	segments []string
}

// Segments returns one segment per visible text node, in document order.
func (d *htmlDocument) Segments() []string {
	return d.segments
}

// Write re-serializes the tree with the marked texts in place.
func (d *htmlDocument) Write(segments []string, outPath string) error {
	if len(segments) != len(d.segments) {
		return fmt.Errorf("segment count mismatch: got %d, want %d", len(segments), len(d.segments))
	}

	for i, n := range d.nodes {
		n.Data = segments[i]
	}

	var buf bytes.Buffer
	if err := html.Render(&buf, d.root); err != nil {
		return fmt.Errorf("render html: %w", err)
	}
	return os.WriteFile(outPath, buf.Bytes(), 0o644)
}
