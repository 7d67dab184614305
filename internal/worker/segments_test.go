package worker

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/okovalenko/nagolos/internal/engine"
)

// upperMarker uppercases segments, sleeping unevenly so results come
// back from the pool out of submission order.
type upperMarker struct{}

func (upperMarker) Mark(segment string) engine.Result {
	time.Sleep(time.Duration(len(segment)%4) * time.Millisecond)
	return engine.Result{Text: strings.ToUpper(segment)}
}

func TestMarkSegments_PreservesOrder(t *testing.T) {
	segments := make([]string, 40)
	for i := range segments {
		segments[i] = fmt.Sprintf("segment-%d", i)
	}

	out, err := MarkSegments(context.Background(), upperMarker{}, segments, 4)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(out) != len(segments) {
		t.Fatalf("expected %d results, got %d", len(segments), len(out))
	}

	for i, res := range out {
		want := strings.ToUpper(segments[i])
		if res.Text != want {
			t.Errorf("segment %d: got %q, want %q", i, res.Text, want)
		}
	}
}

func TestMarkSegments_Empty(t *testing.T) {
	out, err := MarkSegments(context.Background(), upperMarker{}, nil, 4)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(out) != 0 {
		t.Errorf("expected no results, got %d", len(out))
	}
}

func TestMarkSegments_SingleWorkerFloor(t *testing.T) {
	out, err := MarkSegments(context.Background(), upperMarker{}, []string{"a", "b"}, 0)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if out[0].Text != "A" || out[1].Text != "B" {
		t.Errorf("unexpected results: %q, %q", out[0].Text, out[1].Text)
	}
}

func TestMarkSegments_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := MarkSegments(ctx, upperMarker{}, []string{"a"}, 2)
	if err == nil {
		t.Fatal("Expected error for canceled context, got nil")
	}
}
