// Package runlog keeps an optional history of generator runs, either as a
// flat text log or in a SQLite database under paths.DataDir().
package runlog

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/Mavwarf/appicon/internal/generator"
	"github.com/Mavwarf/appicon/internal/paths"
)

// Store abstracts run history storage.
type Store interface {
	Record(run Run) error
	Runs(limit int) ([]Run, error) // most recent runs, oldest first; 0 = all
	Clear() error
	Path() string
	Close() error
}

// Backend names accepted by Open.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
)

// Run results.
const (
	ResultOK      = "ok"
	ResultPartial = "partial"
	ResultAborted = "aborted"
)

// Run is one recorded generator invocation.
type Run struct {
	Time      time.Time
	SourceDir string
	DestDir   string
	Duration  time.Duration
	Result    string
	Error     string // set when the run aborted
	Written   int
	Warnings  int
	Errors    int
	Steps     []StepRecord
}

// StepRecord is the stored form of a generator.Outcome.
type StepRecord struct {
	Kind   string
	Status string
	Name   string
	Detail string
}

// FromReport converts a finished report into a Run. aborted is the error
// returned by generator.Run, if any. Informational outcomes are dropped.
func FromReport(r *generator.Report, aborted error) Run {
	run := Run{
		Time:      r.Started.Truncate(time.Second),
		SourceDir: r.SourceDir,
		DestDir:   r.DestDir,
		Duration:  r.Duration.Round(time.Millisecond),
		Written:   len(r.Written()),
		Warnings:  r.Count(generator.StatusWarning),
		Errors:    r.Count(generator.StatusError),
	}
	for _, o := range r.Outcomes {
		if o.Status == generator.StatusInfo {
			continue
		}
		run.Steps = append(run.Steps, StepRecord{
			Kind:   string(o.Step),
			Status: o.Status.String(),
			Name:   o.Name,
			Detail: o.Message(),
		})
	}
	switch {
	case aborted != nil:
		run.Result = ResultAborted
		run.Error = aborted.Error()
	case run.Errors > 0 || run.Warnings > 0:
		run.Result = ResultPartial
	default:
		run.Result = ResultOK
	}
	return run
}

// Open returns the store for backend inside dir.
func Open(backend, dir string) (Store, error) {
	switch backend {
	case BackendFile:
		return NewFileStore(filepath.Join(dir, paths.LogFileName)), nil
	case BackendSQLite:
		return NewSQLiteStore(filepath.Join(dir, paths.DBFileName))
	}
	return nil, fmt.Errorf("unknown history backend %q", backend)
}
