package worker

import (
	"context"
	"fmt"

	"github.com/okovalenko/nagolos/internal/engine"
)

// Marker marks stress in a single text segment.
type Marker interface {
	Mark(segment string) engine.Result
}

// MarkJob marks one document segment. Index is the segment's position in
// the document, carried through so results can be reassembled in order.
type MarkJob struct {
	Index  int
	Text   string
	Marker Marker
}

// Execute executes the mark job
func (j *MarkJob) Execute(ctx context.Context) Result {
	if err := ctx.Err(); err != nil {
		return &MarkResult{Index: j.Index, Err: err}
	}
	return &MarkResult{Index: j.Index, Marked: j.Marker.Mark(j.Text)}
}

// MarkResult represents the result of a mark job
type MarkResult struct {
	Index  int
	Marked engine.Result
	Err    error
}

// GetError returns the error from the mark result
func (r *MarkResult) GetError() error {
	return r.Err
}

// MarkSegments marks segments concurrently and returns the results in
// segment order. Results arrive from the pool in completion order, so
// each one is placed back by its job index.
func MarkSegments(ctx context.Context, m Marker, segments []string, workers int) ([]engine.Result, error) {
	out := make([]engine.Result, len(segments))
	if len(segments) == 0 {
		return out, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	pool := NewPool(workers, len(segments))
	pool.Start()

	for i, s := range segments {
		pool.Submit(&MarkJob{Index: i, Text: s, Marker: m})
	}

	for _, res := range pool.Wait() {
		mr, ok := res.(*MarkResult)
		if !ok {
			return nil, fmt.Errorf("unexpected result type %T", res)
		}
		if mr.Err != nil {
			return nil, fmt.Errorf("mark segment %d: %w", mr.Index, mr.Err)
		}
		out[mr.Index] = mr.Marked
	}

	return out, nil
}
