package document

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const testHTMLPage = `<html><head>
<style>p { color: red; }</style>
<script>var замок = 1;</script>
</head><body>
<p>Він підійшов до замок.</p>
<noscript>Увімкніть скрипти</noscript>
<p>Другий абзац.</p>
</body></html>`

func TestHTMLHandler_ExtractsVisibleTextOnly(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "сторінка.html")
	if err := os.WriteFile(path, []byte(testHTMLPage), 0o644); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	doc, err := NewHTMLHandler().Open(path)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	joined := strings.Join(doc.Segments(), " ")
	if !strings.Contains(joined, "Він підійшов до замок.") {
		t.Errorf("visible paragraph missing from segments: %q", doc.Segments())
	}
	if !strings.Contains(joined, "Другий абзац.") {
		t.Errorf("second paragraph missing from segments: %q", doc.Segments())
	}
	if strings.Contains(joined, "color: red") {
		t.Error("style content should not be segmented")
	}
	if strings.Contains(joined, "var замок") {
		t.Error("script content should not be segmented")
	}
	if strings.Contains(joined, "Увімкніть скрипти") {
		t.Error("noscript content should not be segmented")
	}
}

func TestHTMLDocument_MarkAndRewrite(t *testing.T) {
	dir := t.TempDir()
	inPath := filepath.Join(dir, "вхід.html")
	outPath := filepath.Join(dir, "вхід_nagolos.html")
	if err := os.WriteFile(inPath, []byte(testHTMLPage), 0o644); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	handler := NewHTMLHandler()
	doc, err := handler.Open(inPath)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	segments := doc.Segments()
	marked := make([]string, len(segments))
	for i, seg := range segments {
		marked[i] = strings.ReplaceAll(seg, "замок", "за́мок")
	}

	if err := doc.Write(marked, outPath); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	out, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	rendered := string(out)

	if !strings.Contains(rendered, "Він підійшов до за́мок.") {
		t.Errorf("marked paragraph missing from output:\n%s", rendered)
	}
	if !strings.Contains(rendered, "var замок = 1;") {
		t.Errorf("script content was altered:\n%s", rendered)
	}
	if !strings.Contains(rendered, "color: red") {
		t.Errorf("style content was altered:\n%s", rendered)
	}

	// Marked output parses back to the same visible text
	reopened, err := handler.Open(outPath)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	joined := strings.Join(reopened.Segments(), " ")
	if !strings.Contains(joined, "Він підійшов до за́мок.") {
		t.Errorf("reopened segments lost the marks: %q", reopened.Segments())
	}
}

func TestHTMLHandler_CanHandle(t *testing.T) {
	handler := NewHTMLHandler()
	for _, path := range []string{"a.html", "b.htm", "c.HTML"} {
		if !handler.CanHandle(path) {
			t.Errorf("CanHandle(%q) = false, want true", path)
		}
	}
	if handler.CanHandle("d.txt") {
		t.Error("CanHandle(d.txt) = true, want false")
	}
}
