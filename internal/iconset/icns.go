package iconset

import (
	"fmt"
	"image"
	"io"

	"github.com/disintegration/imaging"
	"github.com/jackmordaunt/icns/v3"
)

// icnsTypes maps a pixel size to the ICNS chunk types that carry it. Sizes
// with two types are written once as the 1x icon and once as the @2x
// variant of the half size.
var icnsTypes = map[int][]string{
	16:   {"icp4"},
	32:   {"icp5", "ic11"},
	64:   {"icp6", "ic12"},
	128:  {"ic07"},
	256:  {"ic08", "ic13"},
	512:  {"ic09", "ic14"},
	1024: {"ic10"},
}

// ICNSTypes returns the chunk types written for size.
func ICNSTypes(size int) ([]string, bool) {
	t, ok := icnsTypes[size]
	return t, ok
}

// EncodeICNS builds an icon set with one entry per size (plus retina
// aliases) and writes it to w. The set is assembled sequentially instead of
// through icns.NewIconSet, which skips 16px and resizes concurrently.
func EncodeICNS(w io.Writer, master image.Image, sizes []int, filter imaging.ResampleFilter) error {
	if len(sizes) == 0 {
		return fmt.Errorf("icns: no sizes")
	}
	src := ToNRGBA(master)
	set := &icns.IconSet{}
	for _, s := range sizes {
		types, ok := icnsTypes[s]
		if !ok {
			return fmt.Errorf("icns: no icon type for %dx%d", s, s)
		}
		img := Resize(src, s, s, filter)
		for _, id := range types {
			set.Icons = append(set.Icons, &icns.Icon{
				Type:  icns.OsType{ID: id, Size: uint(s)},
				Image: img,
			})
		}
	}
	_, err := set.WriteTo(w)
	return err
}
