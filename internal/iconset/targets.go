// Package iconset holds the fixed icon target tables and the image
// operations used to derive every output from a single master image:
// decoding, resampling, and PNG/ICO/ICNS encoding.
package iconset

import "fmt"

// Output names that are not part of the PNG table.
const (
	ICOName  = "icon.ico"
	SVGName  = "icon.svg"
	ICNSName = "icon.icns"
)

// Target is one PNG variant written to the destination directory.
type Target struct {
	Name   string
	Width  int
	Height int
}

func (t Target) String() string {
	return fmt.Sprintf("%s (%dx%d)", t.Name, t.Width, t.Height)
}

// PNGTargets covers the Tauri bundler defaults plus the Windows Store
// square logos. Non-square masters are forced to these dimensions.
var PNGTargets = []Target{
	{"32x32.png", 32, 32},
	{"128x128.png", 128, 128},
	{"128x128@2x.png", 256, 256},
	{"icon.png", 512, 512},
	{"Square30x30Logo.png", 30, 30},
	{"Square44x44Logo.png", 44, 44},
	{"Square71x71Logo.png", 71, 71},
	{"Square89x89Logo.png", 89, 89},
	{"Square107x107Logo.png", 107, 107},
	{"Square142x142Logo.png", 142, 142},
	{"Square150x150Logo.png", 150, 150},
	{"Square284x284Logo.png", 284, 284},
	{"Square310x310Logo.png", 310, 310},
	{"StoreLogo.png", 50, 50},
}

// ICOSizes are the frames embedded in icon.ico. The largest becomes the
// primary frame.
var ICOSizes = []int{16, 32, 48, 64, 128, 256}

// ICNSSizes is the macOS resolution ladder embedded in icon.icns.
var ICNSSizes = []int{16, 32, 64, 128, 256, 512, 1024}

// LookupTarget returns the PNG target with the given output name.
func LookupTarget(name string) (Target, bool) {
	for _, t := range PNGTargets {
		if t.Name == name {
			return t, true
		}
	}
	return Target{}, false
}
