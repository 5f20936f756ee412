// Command layersrender renders a JSON layer list to a PNG or PDF file.
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/pflag"

	"github.com/annolab/layers"
	"github.com/annolab/layers/canvas2d"
	"github.com/annolab/layers/export"
)

func main() {
	var (
		in         = pflag.StringP("in", "i", "", "layer list JSON file (defaults to stdin)")
		out        = pflag.StringP("out", "o", "out.png", "output file, .png or .pdf")
		width      = pflag.Int("width", 1024, "output width in pixels")
		height     = pflag.Int("height", 768, "output height in pixels")
		baseWidth  = pflag.Float64("base-width", 0, "design-time base width (0 = unscaled)")
		baseHeight = pflag.Float64("base-height", 0, "design-time base height (0 = unscaled)")
		background = pflag.String("background", "white", "background color")
		verbose    = pflag.BoolP("verbose", "v", false, "log rendering detail to stderr")
	)
	pflag.Parse()

	if *verbose {
		layers.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})))
	}

	if err := run(*in, *out, *width, *height, *baseWidth, *baseHeight, *background); err != nil {
		fmt.Fprintln(os.Stderr, "layersrender:", err)
		os.Exit(1)
	}
}

func run(in, out string, width, height int, baseWidth, baseHeight float64, background string) error {
	layerList, err := readLayers(in)
	if err != nil {
		return err
	}

	opts := []layers.CanvasOption{
		layers.WithBackground(canvas2d.ParseColor(background)),
	}
	if baseWidth > 0 && baseHeight > 0 {
		opts = append(opts, layers.WithBaseDimensions(baseWidth, baseHeight))
	}
	canvas := layers.NewCanvas(width, height, opts...)
	defer canvas.Close()

	switch {
	case strings.HasSuffix(out, ".pdf"):
		f, err := os.Create(out)
		if err != nil {
			return err
		}
		defer f.Close()
		return export.PDF(f, canvas, layerList, width, height)
	default:
		return canvas.ExportPNG(out, layerList, width, height)
	}
}

func readLayers(in string) ([]*layers.Layer, error) {
	var data []byte
	var err error
	if in == "" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(in)
	}
	if err != nil {
		return nil, fmt.Errorf("read layer list: %w", err)
	}
	var list []*layers.Layer
	if err := json.Unmarshal(data, &list); err != nil {
		return nil, fmt.Errorf("parse layer list: %w", err)
	}
	return list, nil
}
