package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"
)

func captureStderr(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	old := stderr
	stderr = &buf
	t.Cleanup(func() { stderr = old })
	return &buf
}

func TestSpinnerStop(t *testing.T) {
	buf := captureStderr(t)

	s := newSpinnerWithContext(context.Background(), "Rendering...")
	s.Start()
	time.Sleep(200 * time.Millisecond)
	s.Stop()
	s.Stop()

	if !strings.Contains(buf.String(), "Rendering...") {
		t.Errorf("spinner output = %q", buf.String())
	}
	if !s.Cancelled() {
		t.Error("stopped spinner should report its context as done")
	}
}

func TestSpinnerParentCancel(t *testing.T) {
	captureStderr(t)

	ctx, cancel := context.WithCancel(context.Background())
	s := newSpinnerWithContext(ctx, "Waiting...")
	s.Start()
	cancel()

	done := make(chan struct{})
	go func() {
		s.Stop()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Stop() blocked after parent cancellation")
	}
	if !s.Cancelled() {
		t.Error("spinner should be cancelled with its parent")
	}
}
