package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestRun(t *testing.T) {
	tests := []struct {
		name        string
		args        []string
		file        string
		expectError bool
		header      string
	}{
		{"ppm by extension", []string{"-width", "8", "-aspect", "2"}, "render.ppm", false, "P3\n8 4\n255\n"},
		{"png by flag", []string{"-width", "8", "-format", "png"}, "render.img", false, "\x89PNG"},
		{"scaled webp", []string{"-width", "4", "-aspect", "1", "-scale", "2"}, "render.webp", false, "RIFF"},
		{"unknown format", []string{"-format", "gif"}, "render.gif", true, ""},
		{"unsupported extension", []string{"-width", "4"}, "render.jpg", true, ""},
		{"bad flag", []string{"-width", "wide"}, "render.ppm", true, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), tt.file)
			args := append([]string{"-quiet", "-workers", "2", "-out", path}, tt.args...)

			var stdout bytes.Buffer
			err := run(args, &stdout)

			if tt.expectError {
				if err == nil {
					t.Errorf("Expected error for args %v, got none", tt.args)
				}
				if _, statErr := os.Stat(path); statErr == nil {
					t.Errorf("Expected no output file after error, found %s", path)
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}

			data, err := os.ReadFile(path)
			if err != nil {
				t.Fatalf("Expected output file: %v", err)
			}
			if !strings.HasPrefix(string(data), tt.header) {
				t.Errorf("Expected output to start with %q, got %q", tt.header, string(data[:min(len(data), len(tt.header))]))
			}
		})
	}
}

func TestRun_ConfigFile(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.json")
	outPath := filepath.Join(dir, "out", "frame.ppm")

	config := `{"width": 3, "aspect_ratio": 1, "sphere": {"center": [0, 0, -1], "radius": 0.5}, "output": "` +
		filepath.ToSlash(outPath) + `"}`
	if err := os.WriteFile(configPath, []byte(config), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	var stdout bytes.Buffer
	if err := run([]string{"-config", configPath}, &stdout); err != nil {
		t.Fatalf("run: %v", err)
	}

	data, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	lines := strings.Split(string(data), "\n")
	if len(lines) < 5 {
		t.Fatalf("Expected header and 3 rows, got %q", string(data))
	}
	// Only the center pixel sees the sphere
	if lines[4] != "191 217 255 127 127 255 191 217 255 " {
		t.Errorf("Unexpected middle row %q", lines[4])
	}

	if !strings.Contains(stdout.String(), "Render saved as") {
		t.Errorf("Expected progress output, got %q", stdout.String())
	}
}

func TestRun_Help(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		expected string
	}{
		{"help flag", []string{"-help"}, "Usage:"},
		{"short help", []string{"-h"}, "-width"},
		{"double dash help", []string{"--h"}, "-width"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stdout bytes.Buffer
			if err := run(tt.args, &stdout); err != nil {
				t.Fatalf("Expected help to succeed, got %v", err)
			}
			if !strings.Contains(stdout.String(), tt.expected) {
				t.Errorf("Expected %q in output, got %q", tt.expected, stdout.String())
			}
		})
	}
}
