// Package export writes rendered layer compositions to document formats.
package export

import (
	"bytes"
	"fmt"
	"io"

	"github.com/jung-kurt/gofpdf"

	"github.com/annolab/layers"
	"github.com/annolab/layers/canvas2d"
)

// PDF renders the layer list at the given pixel size and writes a
// single-page PDF whose page matches the render dimensions at 72 DPI.
func PDF(w io.Writer, c *layers.Canvas, layerList []*layers.Layer, width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("invalid page size %dx%d", width, height)
	}

	off := c.Pool().Get(width, height)
	defer c.Pool().Put(off)

	off.ClearWithColor(canvas2d.White)
	scale := pageScale(c, width, height)
	if err := c.RenderLayersToContext(off, layerList, scale); err != nil {
		return err
	}

	var png bytes.Buffer
	if err := off.EncodePNG(&png); err != nil {
		return fmt.Errorf("encode page image: %w", err)
	}

	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		UnitStr: "pt",
		Size:    gofpdf.SizeType{Wd: float64(width), Ht: float64(height)},
	})
	pdf.AddPage()
	opts := gofpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("composition", opts, &png)
	pdf.ImageOptions("composition", 0, 0, float64(width), float64(height), false, opts, 0, "")

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	return nil
}

func pageScale(c *layers.Canvas, width, height int) layers.ScaleFactor {
	bw, bh := c.BaseDimensions()
	return layers.ComputeScale(bw, bh, float64(width), float64(height))
}
