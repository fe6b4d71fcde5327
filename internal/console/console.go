// Package console prints generator progress for a terminal.
package console

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/fatih/color"
	"golang.org/x/term"

	"github.com/Mavwarf/appicon/internal/generator"
)

// Printer writes one line per outcome. Color is used only when enabled at
// construction; labels are the same either way.
type Printer struct {
	w      io.Writer
	labels map[generator.Status]*color.Color
	dim    *color.Color
	bold   *color.Color
}

// New returns a Printer for f, colored when f is a terminal and NO_COLOR
// is unset.
func New(f *os.File) *Printer {
	return newPrinter(f, ColorEnabled(f))
}

// NewPlain returns a Printer that never emits escape sequences.
func NewPlain(w io.Writer) *Printer {
	return newPrinter(w, false)
}

// ColorEnabled reports whether output to f should be colored.
func ColorEnabled(f *os.File) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}

func newPrinter(w io.Writer, enabled bool) *Printer {
	p := &Printer{
		w: w,
		labels: map[generator.Status]*color.Color{
			generator.StatusGenerated: color.New(color.FgGreen),
			generator.StatusUpdated:   color.New(color.FgCyan),
			generator.StatusWarning:   color.New(color.FgYellow),
			generator.StatusError:     color.New(color.FgRed, color.Bold),
		},
		dim:  color.New(color.Faint),
		bold: color.New(color.Bold),
	}
	for _, c := range p.colors() {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

func (p *Printer) colors() []*color.Color {
	out := []*color.Color{p.dim, p.bold}
	for _, c := range p.labels {
		out = append(out, c)
	}
	return out
}

// Label returns the prefix printed for s, or "" for informational lines.
func Label(s generator.Status) string {
	switch s {
	case generator.StatusGenerated:
		return "Generated:"
	case generator.StatusUpdated:
		return "Updated:"
	case generator.StatusWarning:
		return "Warning:"
	case generator.StatusError:
		return "Error:"
	}
	return ""
}

// Report implements generator.Reporter.
func (p *Printer) Report(o generator.Outcome) {
	fmt.Fprintln(p.w, p.Line(o))
}

// Line formats o the way Report prints it.
func (p *Printer) Line(o generator.Outcome) string {
	label := Label(o.Status)
	if label == "" {
		return o.Message()
	}
	return p.labels[o.Status].Sprint(label) + " " + o.Message()
}

// Summary prints a closing line with counts and elapsed time.
func (p *Printer) Summary(r *generator.Report) {
	fmt.Fprintln(p.w, p.dim.Sprint(SummaryLine(r)))
}

// SummaryLine describes r in one line, e.g.
// "16 written, 1 warning, 0 errors in 420ms".
func SummaryLine(r *generator.Report) string {
	return fmt.Sprintf("%d written, %s, %s in %s",
		len(r.Written()),
		plural(r.Count(generator.StatusWarning), "warning"),
		plural(r.Count(generator.StatusError), "error"),
		r.Duration.Round(time.Millisecond))
}

// Bold and Dim style auxiliary output such as history listings.
func (p *Printer) Bold(s string) string { return p.bold.Sprint(s) }
func (p *Printer) Dim(s string) string  { return p.dim.Sprint(s) }

// Printf writes unstyled text.
func (p *Printer) Printf(format string, a ...any) {
	fmt.Fprintf(p.w, format, a...)
}

func plural(n int, word string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, word)
	}
	return fmt.Sprintf("%d %ss", n, word)
}
