// Package generator regenerates the bundler icon set from a master image.
//
// A run is strictly sequential: check the source directory, create the
// destination, load the master, then write the ICO, SVG copy, PNG variants
// and ICNS in that order. Only a missing source directory (or a destination
// that cannot be created) aborts the run. Every other failure degrades the
// affected output and is reported as an Outcome.
package generator

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/disintegration/imaging"

	"github.com/Mavwarf/appicon/internal/iconset"
	"github.com/Mavwarf/appicon/internal/paths"
)

// ErrNoSourceDir is returned by Run when the source directory is missing.
var ErrNoSourceDir = errors.New("source directory does not exist")

const (
	defaultMaster        = "favicon.png"
	defaultSVGRasterSize = 1024
)

// Options configures a Generator. LegacyICO and SVG are file names inside
// SourceDir; leaving them empty disables the fallback and passthrough.
type Options struct {
	SourceDir     string
	DestDir       string
	Master        string
	LegacyICO     string
	SVG           string
	Filter        string
	RasterizeSVG  bool
	SVGRasterSize int
}

type encodeFunc func(w io.Writer, master image.Image, sizes []int, filter imaging.ResampleFilter) error

// Generator runs the icon pipeline.
type Generator struct {
	opts   Options
	filter imaging.ResampleFilter
	out    Reporter
	report *Report

	encodeICO  encodeFunc
	encodeICNS encodeFunc
}

// New validates opts and returns a Generator that reports to out. A nil
// out discards progress.
func New(opts Options, out Reporter) (*Generator, error) {
	filter, err := iconset.ParseFilter(opts.Filter)
	if err != nil {
		return nil, err
	}
	if opts.Master == "" {
		opts.Master = defaultMaster
	}
	if opts.SVGRasterSize <= 0 {
		opts.SVGRasterSize = defaultSVGRasterSize
	}
	if out == nil {
		out = ReporterFunc(func(Outcome) {})
	}
	return &Generator{
		opts:       opts,
		filter:     filter,
		out:        out,
		encodeICO:  iconset.EncodeICO,
		encodeICNS: iconset.EncodeICNS,
	}, nil
}

// Run executes the pipeline once. The returned error is non-nil only for
// fatal preconditions; it wraps ErrNoSourceDir when the source directory is
// missing. The report is always returned.
func (g *Generator) Run() (*Report, error) {
	g.report = &Report{
		SourceDir: g.opts.SourceDir,
		DestDir:   g.opts.DestDir,
		Started:   time.Now(),
	}
	report := g.report
	defer func() { report.Duration = time.Since(report.Started) }()

	if !paths.IsDir(g.opts.SourceDir) {
		err := fmt.Errorf("%w: %s", ErrNoSourceDir, g.opts.SourceDir)
		g.emit(Outcome{
			Step:   StepSource,
			Status: StatusError,
			Detail: fmt.Sprintf("Source directory '%s' does not exist.", g.opts.SourceDir),
			Err:    err,
		})
		return report, err
	}
	if err := os.MkdirAll(g.opts.DestDir, paths.DirPerm); err != nil {
		err = fmt.Errorf("creating destination %s: %w", g.opts.DestDir, err)
		g.emit(Outcome{Step: StepSource, Status: StatusError, Detail: err.Error(), Err: err})
		return report, err
	}

	master, masterErr := g.loadMaster()
	g.writeICO(master, masterErr)
	g.copySVG()
	g.writePNGs(master, masterErr)
	g.writeICNS(master, masterErr)
	return report, nil
}

func (g *Generator) emit(o Outcome) {
	g.report.Outcomes = append(g.report.Outcomes, o)
	g.out.Report(o)
}

func (g *Generator) sourcePath(name string) string {
	if name == "" {
		return ""
	}
	return filepath.Join(g.opts.SourceDir, name)
}

func (g *Generator) destPath(name string) string {
	return filepath.Join(g.opts.DestDir, name)
}

// loadMaster decodes the master image, or rasterizes the SVG in its place
// when enabled and the master is missing.
func (g *Generator) loadMaster() (*image.NRGBA, error) {
	p := g.sourcePath(g.opts.Master)
	if !paths.Exists(p) {
		svg := g.sourcePath(g.opts.SVG)
		if !g.opts.RasterizeSVG || svg == "" || !paths.Exists(svg) {
			return nil, fmt.Errorf("%s not found", p)
		}
		img, err := rasterizeFile(svg, g.opts.SVGRasterSize)
		if err != nil {
			return nil, fmt.Errorf("%s not found and rasterizing %s failed: %w", p, svg, err)
		}
		g.emit(Outcome{
			Step:   StepMaster,
			Status: StatusInfo,
			Detail: fmt.Sprintf("Processing PNG using source: %s rasterized at %dx%d", svg, g.opts.SVGRasterSize, g.opts.SVGRasterSize),
		})
		return img, nil
	}

	img, err := iconset.LoadMaster(p)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", p, err)
	}
	b := img.Bounds()
	g.emit(Outcome{
		Step:   StepMaster,
		Status: StatusInfo,
		Detail: fmt.Sprintf("Processing PNG using source: %s (%dx%d)", p, b.Dx(), b.Dy()),
	})
	return img, nil
}

func rasterizeFile(path string, size int) (*image.NRGBA, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return iconset.RasterizeSVG(f, size)
}

// writeICO derives icon.ico from the master and falls back to copying the
// legacy ICO verbatim.
func (g *Generator) writeICO(master *image.NRGBA, masterErr error) {
	dst := g.destPath(iconset.ICOName)
	err := masterErr
	if err == nil {
		var buf bytes.Buffer
		err = g.encodeICO(&buf, master, iconset.ICOSizes, g.filter)
		if err == nil {
			err = paths.AtomicWrite(dst, buf.Bytes())
		}
		if err == nil {
			primary := iconset.ICOFrameOrder(iconset.ICOSizes)[0]
			g.emit(Outcome{
				Step:   StepICO,
				Status: StatusGenerated,
				Name:   iconset.ICOName,
				Path:   dst,
				Width:  primary,
				Height: primary,
				Detail: fmt.Sprintf("%d frames", len(iconset.ICOSizes)),
			})
			return
		}
	}

	g.emit(Outcome{
		Step:   StepICO,
		Status: StatusWarning,
		Name:   iconset.ICOName,
		Detail: fmt.Sprintf("Could not derive %s from master: %v", iconset.ICOName, err),
		Err:    err,
	})

	legacy := g.sourcePath(g.opts.LegacyICO)
	if legacy == "" || !paths.Exists(legacy) {
		g.emit(Outcome{
			Step:   StepICO,
			Status: StatusWarning,
			Name:   iconset.ICOName,
			Detail: fmt.Sprintf("No legacy ICO at %s, skipping %s.", legacy, iconset.ICOName),
		})
		return
	}
	if err := paths.CopyFile(legacy, dst); err != nil {
		g.emit(Outcome{
			Step:   StepICO,
			Status: StatusError,
			Name:   iconset.ICOName,
			Detail: fmt.Sprintf("Error copying ICO: %v", err),
			Err:    err,
		})
		return
	}
	g.emit(Outcome{
		Step:   StepICO,
		Status: StatusUpdated,
		Name:   iconset.ICOName,
		Path:   dst,
		Detail: "copied from " + legacy,
	})
}

// copySVG passes the source SVG through unmodified.
func (g *Generator) copySVG() {
	src := g.sourcePath(g.opts.SVG)
	if src == "" || !paths.Exists(src) {
		g.emit(Outcome{
			Step:   StepSVG,
			Status: StatusWarning,
			Name:   iconset.SVGName,
			Detail: fmt.Sprintf("%s not found.", src),
		})
		return
	}
	dst := g.destPath(iconset.SVGName)
	if err := paths.CopyFile(src, dst); err != nil {
		g.emit(Outcome{
			Step:   StepSVG,
			Status: StatusError,
			Name:   iconset.SVGName,
			Detail: fmt.Sprintf("Error copying SVG: %v", err),
			Err:    err,
		})
		return
	}
	o := Outcome{Step: StepSVG, Status: StatusUpdated, Name: iconset.SVGName, Path: dst}
	if f, err := os.Open(dst); err == nil {
		if w, h, err := iconset.ProbeSVG(f); err == nil {
			o.Detail = fmt.Sprintf("viewBox %gx%g", w, h)
		}
		f.Close()
	}
	g.emit(o)
}

// writePNGs writes every table entry. Entries are independent: a failed
// write is reported and the loop moves on.
func (g *Generator) writePNGs(master *image.NRGBA, masterErr error) {
	if masterErr != nil {
		g.emit(Outcome{
			Step:   StepPNG,
			Status: StatusError,
			Detail: fmt.Sprintf("Error processing PNGs: %v", masterErr),
			Err:    masterErr,
		})
		return
	}
	for _, t := range iconset.PNGTargets {
		g.writePNG(master, t)
	}
}

func (g *Generator) writePNG(master *image.NRGBA, t iconset.Target) {
	dst := g.destPath(t.Name)
	var buf bytes.Buffer
	err := iconset.EncodePNG(&buf, iconset.Resize(master, t.Width, t.Height, g.filter))
	if err == nil {
		err = paths.AtomicWrite(dst, buf.Bytes())
	}
	if err != nil {
		g.emit(Outcome{
			Step:   StepPNG,
			Status: StatusError,
			Name:   t.Name,
			Width:  t.Width,
			Height: t.Height,
			Detail: fmt.Sprintf("Error writing %s: %v", t.Name, err),
			Err:    err,
		})
		return
	}
	g.emit(Outcome{
		Step:   StepPNG,
		Status: StatusGenerated,
		Name:   t.Name,
		Path:   dst,
		Width:  t.Width,
		Height: t.Height,
	})
}

// writeICNS is best-effort: any failure is a warning.
func (g *Generator) writeICNS(master *image.NRGBA, masterErr error) {
	dst := g.destPath(iconset.ICNSName)
	err := masterErr
	if err == nil {
		var buf bytes.Buffer
		err = g.encodeICNS(&buf, master, iconset.ICNSSizes, g.filter)
		if err == nil {
			err = paths.AtomicWrite(dst, buf.Bytes())
		}
	}
	if err != nil {
		g.emit(Outcome{
			Step:   StepICNS,
			Status: StatusWarning,
			Name:   iconset.ICNSName,
			Detail: fmt.Sprintf("Could not generate %s (macOS icon): %v", iconset.ICNSName, err),
			Err:    err,
		})
		return
	}
	sizes := iconset.ICNSSizes
	largest := sizes[len(sizes)-1]
	g.emit(Outcome{
		Step:   StepICNS,
		Status: StatusGenerated,
		Name:   iconset.ICNSName,
		Path:   dst,
		Width:  largest,
		Height: largest,
		Detail: fmt.Sprintf("%d sizes, %d-%dpx", len(sizes), sizes[0], largest),
	})
}
