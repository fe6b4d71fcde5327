package generator

import (
	"fmt"
	"time"
)

// Step identifies the pipeline stage that produced an outcome.
type Step string

const (
	StepSource Step = "source"
	StepMaster Step = "master"
	StepICO    Step = "ico"
	StepSVG    Step = "svg"
	StepPNG    Step = "png"
	StepICNS   Step = "icns"
)

// Status classifies an outcome.
type Status int

const (
	StatusInfo Status = iota
	StatusGenerated
	StatusUpdated
	StatusWarning
	StatusError
)

func (s Status) String() string {
	switch s {
	case StatusInfo:
		return "info"
	case StatusGenerated:
		return "generated"
	case StatusUpdated:
		return "updated"
	case StatusWarning:
		return "warning"
	case StatusError:
		return "error"
	}
	return fmt.Sprintf("status(%d)", int(s))
}

// ParseStatus is the inverse of Status.String.
func ParseStatus(s string) (Status, bool) {
	for st := StatusInfo; st <= StatusError; st++ {
		if st.String() == s {
			return st, true
		}
	}
	return 0, false
}

// Outcome is one line of progress: an output written, copied, skipped or
// failed, or an informational note.
type Outcome struct {
	Step   Step
	Status Status
	Name   string // output file name, empty for notes
	Path   string // full output path, empty when nothing was written
	Width  int
	Height int
	Detail string
	Err    error
}

// Message returns the text shown after the status label.
func (o Outcome) Message() string {
	switch o.Status {
	case StatusGenerated:
		msg := o.Name
		if o.Width > 0 {
			msg = fmt.Sprintf("%s (%dx%d)", o.Name, o.Width, o.Height)
		}
		if o.Detail != "" {
			msg += ", " + o.Detail
		}
		return msg
	case StatusUpdated:
		if o.Detail != "" {
			return fmt.Sprintf("%s (%s)", o.Path, o.Detail)
		}
		return o.Path
	default:
		if o.Detail == "" && o.Err != nil {
			return o.Err.Error()
		}
		return o.Detail
	}
}

// Written reports whether the outcome left a file in the destination.
func (o Outcome) Written() bool {
	return o.Status == StatusGenerated || o.Status == StatusUpdated
}

// Reporter receives outcomes as they happen.
type Reporter interface {
	Report(Outcome)
}

// ReporterFunc adapts a function to Reporter.
type ReporterFunc func(Outcome)

func (f ReporterFunc) Report(o Outcome) { f(o) }

// Report collects the outcomes of one run.
type Report struct {
	SourceDir string
	DestDir   string
	Started   time.Time
	Duration  time.Duration
	Outcomes  []Outcome
}

// Count returns how many outcomes have the given status.
func (r *Report) Count(s Status) int {
	n := 0
	for _, o := range r.Outcomes {
		if o.Status == s {
			n++
		}
	}
	return n
}

// Written returns the outcomes that produced a destination file.
func (r *Report) Written() []Outcome {
	var out []Outcome
	for _, o := range r.Outcomes {
		if o.Written() {
			out = append(out, o)
		}
	}
	return out
}

// Find returns the last outcome for the named output.
func (r *Report) Find(name string) (Outcome, bool) {
	for i := len(r.Outcomes) - 1; i >= 0; i-- {
		if r.Outcomes[i].Name == name {
			return r.Outcomes[i], true
		}
	}
	return Outcome{}, false
}
