package iconset

import (
	"errors"
	"image"
	"io"
	"sort"

	"github.com/disintegration/imaging"
	ico "github.com/sergeymakinen/go-ico"
)

// ICOFrameOrder returns sizes with the largest first (the primary frame)
// followed by the rest in ascending order. Duplicates are dropped.
func ICOFrameOrder(sizes []int) []int {
	sorted := append([]int(nil), sizes...)
	sort.Ints(sorted)
	var uniq []int
	for i, s := range sorted {
		if i > 0 && s == sorted[i-1] {
			continue
		}
		uniq = append(uniq, s)
	}
	if len(uniq) == 0 {
		return nil
	}
	last := len(uniq) - 1
	return append([]int{uniq[last]}, uniq[:last]...)
}

// EncodeICO resamples master to each size and writes a multi-frame ICO.
// Frames above 256px are rejected by the ICO format.
func EncodeICO(w io.Writer, master image.Image, sizes []int, filter imaging.ResampleFilter) error {
	order := ICOFrameOrder(sizes)
	if len(order) == 0 {
		return errors.New("ico: no frame sizes")
	}
	src := ToNRGBA(master)
	frames := make([]image.Image, 0, len(order))
	for _, s := range order {
		frames = append(frames, Resize(src, s, s, filter))
	}
	return ico.EncodeAll(w, frames)
}
