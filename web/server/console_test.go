package server

import (
	"fmt"
	"strings"
	"sync"
	"testing"
)

// recordingLogger captures formatted log lines
type recordingLogger struct {
	mu    sync.Mutex
	lines []string
}

func (r *recordingLogger) Printf(format string, args ...interface{}) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lines = append(r.lines, fmt.Sprintf(format, args...))
}

func (r *recordingLogger) all() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.lines...)
}

func TestWebLogger_BasicLogging(t *testing.T) {
	next := &recordingLogger{}
	logger := NewWebLogger("test-render-123", next)

	logger.Printf("Rendering %dx%d image\n", 4, 2)

	lines := next.all()
	if len(lines) != 1 {
		t.Fatalf("Expected 1 line, got %d", len(lines))
	}
	expected := "[test-render-123] Rendering 4x2 image\n"
	if lines[0] != expected {
		t.Errorf("Expected '%s', got '%s'", expected, lines[0])
	}
}

func TestWebLogger_AddsTrailingNewline(t *testing.T) {
	next := &recordingLogger{}
	logger := NewWebLogger("r1", next)

	logger.Printf("no newline")

	if lines := next.all(); len(lines) != 1 || lines[0] != "[r1] no newline\n" {
		t.Errorf("Unexpected lines %q", lines)
	}
}

func TestWebLogger_MultipleMessages(t *testing.T) {
	next := &recordingLogger{}
	logger := NewWebLogger("test-render-456", next)

	messages := []string{"Message 1", "Message 2", "Message 3"}
	for _, msg := range messages {
		logger.Printf("%s\n", msg)
	}

	lines := next.all()
	if len(lines) != len(messages) {
		t.Fatalf("Expected %d lines, got %d", len(messages), len(lines))
	}
	for i, msg := range messages {
		if !strings.HasSuffix(lines[i], msg+"\n") {
			t.Errorf("Line %d: expected suffix %q, got %q", i, msg, lines[i])
		}
	}
}

func TestWebLogger_NilDestination(t *testing.T) {
	logger := NewWebLogger("render-7", nil)

	// Discards output without panicking
	logger.Printf("dropped\n")
}
