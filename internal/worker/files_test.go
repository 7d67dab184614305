package worker

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/okovalenko/nagolos/internal/model"
)

// mockProcessor implements Processor
type mockProcessor struct {
	shouldErr bool
	mu        sync.Mutex
	processed []string
}

func (m *mockProcessor) ProcessFile(ctx context.Context, path string) (*model.DocumentReport, error) {
	m.mu.Lock()
	m.processed = append(m.processed, path)
	m.mu.Unlock()

	if m.shouldErr {
		return nil, errors.New("process error")
	}
	return &model.DocumentReport{Source: path, Output: path + ".marked"}, nil
}

func TestBatchProcessor_ProcessPaths(t *testing.T) {
	p := &mockProcessor{}
	processor := NewBatchProcessor(p, 2)

	paths := []string{"a.txt", "b.docx", "c.pdf"}
	results := processor.ProcessPaths(context.Background(), paths)

	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}
	for _, res := range results {
		if res.Error != nil {
			t.Errorf("unexpected error for %s: %v", res.Path, res.Error)
		}
		if res.Report == nil || res.Report.Source != res.Path {
			t.Errorf("report for %s missing or mismatched", res.Path)
		}
	}

	p.mu.Lock()
	processed := len(p.processed)
	p.mu.Unlock()
	if processed != 3 {
		t.Errorf("expected 3 processed files, got %d", processed)
	}
}

func TestBatchProcessor_ProcessPaths_Error(t *testing.T) {
	p := &mockProcessor{shouldErr: true}
	processor := NewBatchProcessor(p, 2)

	results := processor.ProcessPaths(context.Background(), []string{"a.txt", "b.txt"})

	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	for _, res := range results {
		if res.Error == nil {
			t.Errorf("expected error for %s, got nil", res.Path)
		}
		if res.Report != nil {
			t.Errorf("expected nil report for failed %s", res.Path)
		}
	}
}

func TestBatchProcessor_ProcessPaths_Empty(t *testing.T) {
	processor := NewBatchProcessor(&mockProcessor{}, 2)
	results := processor.ProcessPaths(context.Background(), nil)
	if len(results) != 0 {
		t.Errorf("expected no results, got %d", len(results))
	}
}

func TestReadPathsFromFile(t *testing.T) {
	dir := t.TempDir()
	listPath := filepath.Join(dir, "documents.txt")

	content := `# batch input
a.docx

b.pdf
a.docx
  c.txt
`
	if err := os.WriteFile(listPath, []byte(content), 0o644); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	paths, err := ReadPathsFromFile(listPath)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	want := []string{"a.docx", "b.pdf", "c.txt"}
	if len(paths) != len(want) {
		t.Fatalf("expected %d paths, got %d: %v", len(want), len(paths), paths)
	}
	for i, p := range want {
		if paths[i] != p {
			t.Errorf("path %d: got %q, want %q", i, paths[i], p)
		}
	}
}

func TestBatchProcessor_ProcessListFile(t *testing.T) {
	dir := t.TempDir()
	listPath := filepath.Join(dir, "list.txt")
	if err := os.WriteFile(listPath, []byte("x.txt\ny.txt\n"), 0o644); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	processor := NewBatchProcessor(&mockProcessor{}, 2)
	results, err := processor.ProcessListFile(context.Background(), listPath)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(results) != 2 {
		t.Errorf("expected 2 results, got %d", len(results))
	}
}

func TestBatchProcessor_ProcessListFile_Missing(t *testing.T) {
	processor := NewBatchProcessor(&mockProcessor{}, 2)
	_, err := processor.ProcessListFile(context.Background(), "/nonexistent/list.txt")
	if err == nil {
		t.Fatal("Expected error for missing list file, got nil")
	}
}
