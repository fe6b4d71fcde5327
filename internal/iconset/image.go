package iconset

import (
	"fmt"
	"image"
	"io"
	"sort"
	"strings"

	"github.com/disintegration/imaging"

	// Lets a WebP master stand in for the PNG one.
	_ "golang.org/x/image/webp"
)

var filters = map[string]imaging.ResampleFilter{
	"lanczos":    imaging.Lanczos,
	"catmullrom": imaging.CatmullRom,
	"mitchell":   imaging.MitchellNetravali,
	"linear":     imaging.Linear,
	"box":        imaging.Box,
	"nearest":    imaging.NearestNeighbor,
}

// FilterNames returns the accepted filter names, sorted.
func FilterNames() []string {
	names := make([]string, 0, len(filters))
	for n := range filters {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// ParseFilter maps a config name to a resampling filter. The empty name
// selects Lanczos.
func ParseFilter(name string) (imaging.ResampleFilter, error) {
	if name == "" {
		return imaging.Lanczos, nil
	}
	f, ok := filters[strings.ToLower(name)]
	if !ok {
		return imaging.ResampleFilter{}, fmt.Errorf("unknown resampling filter %q (want one of %s)",
			name, strings.Join(FilterNames(), ", "))
	}
	return f, nil
}

// LoadMaster decodes the master image at path and converts it to NRGBA.
// The file is closed before LoadMaster returns.
func LoadMaster(path string) (*image.NRGBA, error) {
	img, err := imaging.Open(path)
	if err != nil {
		return nil, err
	}
	return ToNRGBA(img), nil
}

// ToNRGBA converts img to a full-alpha pixel format. NRGBA images are
// returned unchanged when their bounds start at the origin.
func ToNRGBA(img image.Image) *image.NRGBA {
	if n, ok := img.(*image.NRGBA); ok && n.Rect.Min == (image.Point{}) {
		return n
	}
	return imaging.Clone(img)
}

// Resize resamples img to exactly w×h; the aspect ratio is not preserved.
func Resize(img image.Image, w, h int, filter imaging.ResampleFilter) *image.NRGBA {
	return imaging.Resize(img, w, h, filter)
}

// EncodePNG writes img as PNG.
func EncodePNG(w io.Writer, img image.Image) error {
	return imaging.Encode(w, img, imaging.PNG)
}
