package worker

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/okovalenko/nagolos/internal/model"
)

// Processor defines the interface for marking one document file
type Processor interface {
	ProcessFile(ctx context.Context, path string) (*model.DocumentReport, error)
}

// FileJob represents a document marking job
type FileJob struct {
	Path      string
	Processor Processor
}

// Execute executes the file job
func (j *FileJob) Execute(ctx context.Context) Result {
	report, err := j.Processor.ProcessFile(ctx, j.Path)
	if err != nil {
		return &FileResult{
			Path:   j.Path,
			Report: nil,
			Error:  err,
		}
	}
	return &FileResult{
		Path:   j.Path,
		Report: report,
		Error:  nil,
	}
}

// FileResult represents the result of a document marking job
type FileResult struct {
	Path   string
	Report *model.DocumentReport
	Error  error
}

// GetError returns the error from the file result
func (r *FileResult) GetError() error {
	return r.Error
}

// BatchProcessor marks multiple document files concurrently
type BatchProcessor struct {
	processor   Processor
	concurrency int
}

// NewBatchProcessor creates a new batch processor
func NewBatchProcessor(processor Processor, concurrency int) *BatchProcessor {
	return &BatchProcessor{
		processor:   processor,
		concurrency: concurrency,
	}
}

// ProcessPaths marks multiple document files concurrently
func (b *BatchProcessor) ProcessPaths(ctx context.Context, paths []string) []*FileResult {
	if len(paths) == 0 {
		return []*FileResult{}
	}

	// Create worker pool
	pool := NewPool(b.concurrency, len(paths))
	pool.Start()

	// Submit jobs
	for _, path := range paths {
		job := &FileJob{
			Path:      path,
			Processor: b.processor,
		}
		pool.Submit(job)
	}

	// Wait for all jobs to complete
	results := pool.Wait()

	// Convert to FileResults
	fileResults := make([]*FileResult, len(results))
	for i, result := range results {
		fileResults[i] = result.(*FileResult)
	}

	return fileResults
}

// ProcessListFile reads document paths from a list file and marks them concurrently
func (b *BatchProcessor) ProcessListFile(ctx context.Context, listPath string) ([]*FileResult, error) {
	paths, err := ReadPathsFromFile(listPath)
	if err != nil {
		return nil, fmt.Errorf("read paths: %w", err)
	}

	return b.ProcessPaths(ctx, paths), nil
}

// ReadPathsFromFile reads document paths from a file (one per line)
func ReadPathsFromFile(filePath string) ([]string, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	var paths []string
	seen := make(map[string]bool)

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		// Skip empty lines and comments
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		// Deduplicate paths
		if !seen[line] {
			seen[line] = true
			paths = append(paths, line)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan file: %w", err)
	}

	return paths, nil
}
