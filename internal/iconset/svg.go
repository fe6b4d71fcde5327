package iconset

import (
	"fmt"
	"image"
	"io"

	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
)

// ProbeSVG parses an SVG and returns its viewBox dimensions.
func ProbeSVG(r io.Reader) (w, h float64, err error) {
	icon, err := oksvg.ReadIconStream(r)
	if err != nil {
		return 0, 0, fmt.Errorf("parsing svg: %w", err)
	}
	if icon.ViewBox.W <= 0 || icon.ViewBox.H <= 0 {
		return 0, 0, fmt.Errorf("svg has no usable viewBox")
	}
	return icon.ViewBox.W, icon.ViewBox.H, nil
}

// RasterizeSVG renders an SVG onto a transparent size×size canvas. Only
// the subset of SVG understood by oksvg is drawn.
func RasterizeSVG(r io.Reader, size int) (*image.NRGBA, error) {
	if size <= 0 {
		return nil, fmt.Errorf("invalid raster size %d", size)
	}
	icon, err := oksvg.ReadIconStream(r)
	if err != nil {
		return nil, fmt.Errorf("parsing svg: %w", err)
	}
	if icon.ViewBox.W <= 0 || icon.ViewBox.H <= 0 {
		return nil, fmt.Errorf("svg has no usable viewBox")
	}
	icon.SetTarget(0, 0, float64(size), float64(size))
	rgba := image.NewRGBA(image.Rect(0, 0, size, size))
	scanner := rasterx.NewScannerGV(size, size, rgba, rgba.Bounds())
	icon.Draw(rasterx.NewDasher(size, size, scanner), 1.0)
	return ToNRGBA(rgba), nil
}
