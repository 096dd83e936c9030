package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/df07/go-pinhole-raytracer/pkg/config"
	"github.com/df07/go-pinhole-raytracer/pkg/core"
	"github.com/df07/go-pinhole-raytracer/pkg/output"
	"github.com/df07/go-pinhole-raytracer/pkg/renderer"
)

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// run parses args, renders one frame and writes it to disk
func run(args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("raytracer", flag.ContinueOnError)
	configFile := fs.String("config", "", "Path to config.json file")
	width := fs.Int("width", 0, "Image width in pixels (default: 400)")
	aspect := fs.Float64("aspect", 0, "Aspect ratio width/height (default: 16/9)")
	out := fs.String("out", "", "Output file (default: output/render_<timestamp>.<format>)")
	format := fs.String("format", "", "Output format: ppm, png, webp, tga, bmp (default: from -out, else ppm)")
	workers := fs.Int("workers", 0, "Number of worker goroutines (default: NumCPU)")
	scale := fs.Int("scale", 0, "Integer upscale factor applied when writing (default: 1)")
	smooth := fs.Bool("smooth", false, "Use Catmull-Rom instead of nearest-neighbour when scaling")
	quiet := fs.Bool("quiet", false, "Suppress progress output")
	help := fs.Bool("help", false, "Show help information")
	fs.SetOutput(stdout)

	if err := fs.Parse(args); err != nil {
		// -h has already printed the flag defaults
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	// Show help if requested
	if *help {
		fmt.Fprintln(stdout, "Pinhole Raytracer")
		fmt.Fprintln(stdout, "Usage: raytracer [options]")
		fmt.Fprintln(stdout)
		fmt.Fprintln(stdout, "Options:")
		fs.PrintDefaults()
		fmt.Fprintln(stdout)
		fmt.Fprintf(stdout, "Formats: %v\n", output.Formats)
		return nil
	}

	// Load config
	var cfg config.Config
	if *configFile != "" {
		var err error
		cfg, err = config.Load(*configFile)
		if err != nil {
			return err
		}
	}

	// CLI flags override config file
	err := cfg.Resolve(config.Flags{
		Width:       *width,
		AspectRatio: *aspect,
		Output:      *out,
		Format:      *format,
		Workers:     *workers,
		Scale:       *scale,
		Smooth:      *smooth,
	})
	if err != nil {
		return err
	}

	logger := renderer.NewWriterLogger(stdout)
	if *quiet {
		logger = core.NopLogger{}
	}

	camera, err := renderer.NewCamera(cfg.CameraConfig())
	if err != nil {
		return err
	}

	raytracer := renderer.NewRaytracer(cfg.SceneSphere(), camera)
	raytracer.SetWorkers(cfg.Workers)
	raytracer.SetLogger(logger)

	frame, _, err := raytracer.Render(context.Background())
	if err != nil {
		return err
	}

	if err := output.Save(cfg.Output, frame, cfg.OutputFormat(), cfg.OutputOptions()); err != nil {
		return err
	}

	logger.Printf("Render saved as %s\n", cfg.Output)
	return nil
}
