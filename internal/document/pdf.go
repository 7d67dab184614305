package document

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"
)

// PDFHandler extracts text from PDF files. PDFs cannot take the marks
// back in place, so the marked output is written as a Word document.
type PDFHandler struct{}

// NewPDFHandler creates a new pdf handler
func NewPDFHandler() *PDFHandler {
	return &PDFHandler{}
}

// Name returns the handler name
func (h *PDFHandler) Name() string {
	return "pdf"
}

// CanHandle checks if this handler can handle the given path
func (h *PDFHandler) CanHandle(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".pdf")
}

// DefaultOutput returns the conventional output path for the input
func (h *PDFHandler) DefaultOutput(path string) string {
	return OutputName(path, ".docx")
}

// Open extracts one text segment per page.
func (h *PDFHandler) Open(path string) (Document, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open pdf: %w", err)
	}
	defer func() { _ = f.Close() }()

	var segments []string
	for i := 1; i <= r.NumPage(); i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			return nil, fmt.Errorf("extract page %d: %w", i, err)
		}
		segments = append(segments, text)
	}

	return &pdfDocument{segments: segments}, nil
}

type pdfDocument struct {
	segments []string
}

// Segments returns one segment per page.
func (d *pdfDocument) Segments() []string {
	return d.segments
}

// Write builds a Word document with one paragraph per extracted line.
func (d *pdfDocument) Write(segments []string, outPath string) error {
	if len(segments) != len(d.segments) {
		return fmt.Errorf("segment count mismatch: got %d, want %d", len(segments), len(d.segments))
	}

	var paragraphs []string
	for _, seg := range segments {
		for _, line := range strings.Split(seg, "\n") {
			paragraphs = append(paragraphs, strings.TrimRight(line, "\r"))
		}
	}

	data, err := BuildDocx(paragraphs)
	if err != nil {
		return fmt.Errorf("build docx: %w", err)
	}
	return os.WriteFile(outPath, data, 0o644)
}
