package document

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/antchfx/xmlquery"
)

const docxDocumentPart = "word/document.xml"

// DocxHandler reads and writes Word documents
type DocxHandler struct{}

// NewDocxHandler creates a new docx handler
func NewDocxHandler() *DocxHandler {
	return &DocxHandler{}
}

// Name returns the handler name
func (h *DocxHandler) Name() string {
	return "docx"
}

// CanHandle checks if this handler can handle the given path
func (h *DocxHandler) CanHandle(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".docx")
}

// DefaultOutput returns the conventional output path for the input
func (h *DocxHandler) DefaultOutput(path string) string {
	return OutputName(path, "")
}

// Open reads the package, parses word/document.xml and collects one
// segment per paragraph. All other package parts are kept as raw bytes
// so the output preserves styles, images and metadata.
func (h *DocxHandler) Open(path string) (Document, error) {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("open docx: %w", err)
	}
	defer func() { _ = zr.Close() }()

	doc := &docxDocument{}
	var docXML []byte
	for _, f := range zr.File {
		rc, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("read docx part %s: %w", f.Name, err)
		}
		data, err := io.ReadAll(rc)
		_ = rc.Close()
		if err != nil {
			return nil, fmt.Errorf("read docx part %s: %w", f.Name, err)
		}
		doc.parts = append(doc.parts, docxPart{name: f.Name, data: data})
		if f.Name == docxDocumentPart {
			docXML = data
		}
	}
	if docXML == nil {
		return nil, fmt.Errorf("open docx: %s missing", docxDocumentPart)
	}

	root, err := xmlquery.Parse(bytes.NewReader(docXML))
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", docxDocumentPart, err)
	}
	doc.root = root

	paras, err := xmlquery.QueryAll(root, "//w:p")
	if err != nil {
		return nil, fmt.Errorf("query paragraphs: %w", err)
	}
	for _, p := range paras {
		runs, err := xmlquery.QueryAll(p, ".//w:t")
		if err != nil {
			return nil, fmt.Errorf("query runs: %w", err)
		}
		if len(runs) == 0 {
			continue
		}
		var text strings.Builder
		for _, run := range runs {
			text.WriteString(run.InnerText())
		}
		doc.paragraphs = append(doc.paragraphs, runs)
		doc.segments = append(doc.segments, text.String())
	}

	return doc, nil
}

type docxPart struct {
	name string
	data []byte
}

type docxDocument struct {
	parts      []docxPart
	root       *xmlquery.Node
	paragraphs [][]*xmlquery.Node
	segments   []string
}

// Segments returns one segment per paragraph, in document order.
func (d *docxDocument) Segments() []string {
	return d.segments
}

// Write rebuilds the package with the marked paragraph texts spread
// back over the original runs.
func (d *docxDocument) Write(segments []string, outPath string) error {
	if len(segments) != len(d.segments) {
		return fmt.Errorf("segment count mismatch: got %d, want %d", len(segments), len(d.segments))
	}

	for i, runs := range d.paragraphs {
		if segments[i] == d.segments[i] {
			continue
		}
		redistribute(runs, d.segments[i], segments[i])
	}

	payload := []byte(d.root.OutputXML(true))

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, part := range d.parts {
		w, err := zw.Create(part.name)
		if err != nil {
			return fmt.Errorf("write docx part %s: %w", part.name, err)
		}
		data := part.data
		if part.name == docxDocumentPart {
			data = payload
		}
		if _, err := w.Write(data); err != nil {
			return fmt.Errorf("write docx part %s: %w", part.name, err)
		}
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("close docx: %w", err)
	}

	return os.WriteFile(outPath, buf.Bytes(), 0o644)
}

// redistribute maps the marked paragraph text back onto the original
// runs. Marking only inserts combining marks, so the two texts walk in
// lockstep: any rune in marked that does not match the original at the
// cursor is an inserted mark and stays with the run that owns the rune
// before it.
func redistribute(runs []*xmlquery.Node, original, marked string) {
	orig := []rune(original)
	mk := []rune(marked)
	oi, mi := 0, 0

	for _, run := range runs {
		n := utf8.RuneCountInString(run.InnerText())
		var b strings.Builder
		for k := 0; k < n && oi < len(orig); k++ {
			for mi < len(mk) && mk[mi] != orig[oi] {
				b.WriteRune(mk[mi])
				mi++
			}
			if mi < len(mk) {
				b.WriteRune(mk[mi])
				mi++
			}
			oi++
		}
		// A mark inserted after this run's final rune stays here, not in
		// the next run, so it keeps the formatting of the letter it sits on.
		for mi < len(mk) && (oi >= len(orig) || mk[mi] != orig[oi]) {
			b.WriteRune(mk[mi])
			mi++
		}
		setRunText(run, b.String())
	}
}

// setRunText replaces the text content of a w:t element.
func setRunText(run *xmlquery.Node, text string) {
	if run.FirstChild != nil && run.FirstChild == run.LastChild && run.FirstChild.Type == xmlquery.TextNode {
		run.FirstChild.Data = text
		return
	}
	if text == "" && run.FirstChild == nil {
		return
	}
	node := &xmlquery.Node{Type: xmlquery.TextNode, Data: text, Parent: run}
	run.FirstChild = node
	run.LastChild = node
}
