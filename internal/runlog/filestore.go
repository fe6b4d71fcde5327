package runlog

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/Mavwarf/appicon/internal/paths"
)

// FileStore implements Store using a flat log file.
type FileStore struct {
	path string
}

// NewFileStore returns a FileStore that reads and writes the given log file.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// openLog opens (or creates) the log file for appending, creating the
// parent directory if needed.
func (f *FileStore) openLog() (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(f.path), paths.DirPerm); err != nil {
		return nil, err
	}
	return os.OpenFile(f.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, paths.FilePerm)
}

// Record appends a summary line, one detail line per step and a blank
// separator line.
func (f *FileStore) Record(run Run) error {
	file, err := f.openLog()
	if err != nil {
		return err
	}
	defer file.Close()

	ts := run.Time.Format(time.RFC3339)
	summary := fmt.Sprintf("%s  result=%s  written=%d  warnings=%d  errors=%d  duration=%s  src=%q  dst=%q",
		ts, run.Result, run.Written, run.Warnings, run.Errors, run.Duration, run.SourceDir, run.DestDir)
	if run.Error != "" {
		summary += fmt.Sprintf("  error=%q", run.Error)
	}
	if _, err := fmt.Fprintln(file, summary); err != nil {
		return err
	}
	for i, s := range run.Steps {
		if _, err := fmt.Fprintf(file, "%s    step[%d]  kind=%s  status=%s  name=%s  detail=%q\n",
			ts, i+1, s.Kind, s.Status, s.Name, s.Detail); err != nil {
			return err
		}
	}
	_, err = fmt.Fprintln(file)
	return err
}

func (f *FileStore) Runs(limit int) ([]Run, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	runs := ParseRuns(string(data))
	if limit > 0 && len(runs) > limit {
		runs = runs[len(runs)-limit:]
	}
	return runs, nil
}

func (f *FileStore) Clear() error {
	err := os.Remove(f.path)
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

func (f *FileStore) Path() string {
	return f.path
}

func (f *FileStore) Close() error { return nil }
