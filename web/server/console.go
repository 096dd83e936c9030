package server

import (
	"fmt"
	"strings"

	"github.com/df07/go-pinhole-raytracer/pkg/core"
)

// WebLogger implements core.Logger by tagging each message with its render ID
// and forwarding it to the server log
type WebLogger struct {
	renderID string
	next     core.Logger
}

// NewWebLogger creates a logger for a single render request
func NewWebLogger(renderID string, next core.Logger) *WebLogger {
	if next == nil {
		next = core.NopLogger{}
	}
	return &WebLogger{renderID: renderID, next: next}
}

// Printf implements core.Logger interface
func (wl *WebLogger) Printf(format string, args ...interface{}) {
	message := fmt.Sprintf(format, args...)
	if !strings.HasSuffix(message, "\n") {
		message += "\n"
	}
	wl.next.Printf("[%s] %s", wl.renderID, message)
}
