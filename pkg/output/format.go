package output

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Format identifies an image file encoding
type Format string

const (
	FormatPPM  Format = "ppm"  // Plain-text P3 pixmap
	FormatPNG  Format = "png"
	FormatWebP Format = "webp" // Lossless WebP
	FormatTGA  Format = "tga"
	FormatBMP  Format = "bmp"
)

// Formats lists every supported format
var Formats = []Format{FormatPPM, FormatPNG, FormatWebP, FormatTGA, FormatBMP}

// ParseFormat accepts a format name or file extension, case-insensitively
func ParseFormat(name string) (Format, error) {
	name = strings.TrimPrefix(strings.ToLower(strings.TrimSpace(name)), ".")
	if name == "jpg" || name == "jpeg" {
		return "", fmt.Errorf("output: lossy format %q is not supported", name)
	}
	for _, f := range Formats {
		if string(f) == name {
			return f, nil
		}
	}
	return "", fmt.Errorf("output: unknown format %q", name)
}

// FormatFromPath infers the format from a file extension
func FormatFromPath(path string) (Format, error) {
	ext := filepath.Ext(path)
	if ext == "" {
		return "", fmt.Errorf("output: %s has no extension", path)
	}
	return ParseFormat(ext)
}

// Extension returns the file extension including the leading dot
func (f Format) Extension() string {
	return "." + string(f)
}

// ContentType returns the MIME type for HTTP responses
func (f Format) ContentType() string {
	switch f {
	case FormatPPM:
		return "image/x-portable-pixmap"
	case FormatPNG:
		return "image/png"
	case FormatWebP:
		return "image/webp"
	case FormatTGA:
		return "image/x-tga"
	case FormatBMP:
		return "image/bmp"
	}
	return "application/octet-stream"
}
