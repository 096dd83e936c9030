package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"sync/atomic"

	"github.com/df07/go-pinhole-raytracer/pkg/core"
	"github.com/df07/go-pinhole-raytracer/pkg/geometry"
	"github.com/df07/go-pinhole-raytracer/pkg/output"
	"github.com/df07/go-pinhole-raytracer/pkg/renderer"
)

// Server handles web requests for the pinhole raytracer
type Server struct {
	port    int
	logger  core.Logger
	sphere  geometry.Sphere
	renders atomic.Int64
}

// NewServer creates a new web server rendering the default sphere
func NewServer(port int) *Server {
	return &Server{
		port:   port,
		logger: log.Default(),
		sphere: geometry.NewSphere(core.NewVec3(0, 0, -1), 0.5),
	}
}

// SetLogger replaces the server log destination
func (s *Server) SetLogger(logger core.Logger) {
	s.logger = logger
}

// RenderRequest holds the parsed query parameters of a render request
type RenderRequest struct {
	Width       int           `json:"width"`
	AspectRatio float64       `json:"aspect"`
	Format      output.Format `json:"format"`
	Scale       int           `json:"scale"`
}

// Handler returns the API routes
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/render", s.handleRender)
	mux.HandleFunc("/api/health", s.handleHealth)
	return mux
}

// Start starts the web server
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.port)
	s.logger.Printf("Starting web server on http://localhost%s", addr)
	return http.ListenAndServe(addr, s.Handler())
}

// handleHealth provides a simple health check endpoint
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleRender renders one frame and writes it in the requested format
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}

	req, err := parseRenderRequest(r.URL.Query())
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid request: " + err.Error()})
		return
	}

	config := renderer.DefaultCameraConfig()
	config.Width = req.Width
	config.AspectRatio = float32(req.AspectRatio)
	camera, err := renderer.NewCamera(config)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid request: " + err.Error()})
		return
	}

	renderID := fmt.Sprintf("render-%d", s.renders.Add(1))
	raytracer := renderer.NewRaytracer(s.sphere, camera)
	raytracer.SetLogger(NewWebLogger(renderID, s.logger))

	// Request context stops the render when the client disconnects
	frame, stats, err := raytracer.Render(r.Context())
	if err != nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": err.Error()})
		return
	}

	// Encode fully before writing headers so encoder failures still produce a JSON error
	var buf bytes.Buffer
	if err := output.Encode(&buf, frame, req.Format, output.Options{Scale: req.Scale}); err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	h := w.Header()
	h.Set("Content-Type", req.Format.ContentType())
	h.Set("Content-Length", strconv.Itoa(buf.Len()))
	h.Set("Cache-Control", "no-cache")
	h.Set("X-Render-Id", renderID)
	h.Set("X-Render-Hit-Pixels", strconv.Itoa(stats.HitPixels))
	h.Set("X-Render-Hit-Ratio", strconv.FormatFloat(stats.HitRatio(), 'f', 4, 64))
	h.Set("X-Render-Elapsed-Ms", strconv.FormatInt(stats.Duration.Milliseconds(), 10))
	w.WriteHeader(http.StatusOK)
	if _, err := buf.WriteTo(w); err != nil {
		s.logger.Printf("[%s] write response: %v\n", renderID, err)
	}
}

// parseRenderRequest parses and validates query parameters
func parseRenderRequest(values url.Values) (*RenderRequest, error) {
	req := &RenderRequest{}

	var err error
	if req.Width, err = parseIntParam(values, "width", 400, 1, 2000); err != nil {
		return nil, err
	}
	if req.AspectRatio, err = parseFloatParam(values, "aspect", 16.0/9.0, 0.1, 10); err != nil {
		return nil, err
	}
	if req.Scale, err = parseIntParam(values, "scale", 1, 1, 8); err != nil {
		return nil, err
	}

	req.Format = output.FormatPNG
	if value := values.Get("format"); value != "" {
		if req.Format, err = output.ParseFormat(value); err != nil {
			return nil, err
		}
	}

	if req.Width*req.Scale > 4000 {
		return nil, fmt.Errorf("scaled width must be at most 4000, got: %d", req.Width*req.Scale)
	}

	return req, nil
}

// parseIntParam parses an integer parameter from URL query with validation
func parseIntParam(values url.Values, key string, defaultValue, min, max int) (int, error) {
	value := values.Get(key)
	if value == "" {
		return defaultValue, nil
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %s", key, value)
	}
	if parsed < min || parsed > max {
		return 0, fmt.Errorf("%s must be between %d and %d, got: %d", key, min, max, parsed)
	}
	return parsed, nil
}

// parseFloatParam parses a float parameter from URL query with validation
func parseFloatParam(values url.Values, key string, defaultValue, min, max float64) (float64, error) {
	value := values.Get(key)
	if value == "" {
		return defaultValue, nil
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %s", key, value)
	}
	if parsed < min || parsed > max {
		return 0, fmt.Errorf("%s must be between %g and %g, got: %g", key, min, max, parsed)
	}
	return parsed, nil
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

