package main

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/Mavwarf/appicon/internal/config"
	"github.com/Mavwarf/appicon/internal/console"
	"github.com/Mavwarf/appicon/internal/generator"
	"github.com/Mavwarf/appicon/internal/paths"
	"github.com/Mavwarf/appicon/internal/runlog"
)

func historyCmd(args []string, cfg config.Config) {
	if cfg.History == config.HistoryOff {
		fmt.Println(`Run history is off. Set "history": "file" or "sqlite" in appicon.json, or APPICON_HISTORY.`)
		return
	}
	store, err := runlog.Open(cfg.History, paths.DataDir())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if len(args) > 0 && args[0] == "clear" {
		if err := store.Clear(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("Run history cleared.")
		return
	}

	count, err := parseCount(args)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	runs, err := store.Runs(count)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if len(runs) == 0 {
		fmt.Printf("No runs recorded in %s.\n", store.Path())
		return
	}
	renderRuns(os.Stdout, runs, console.New(os.Stdout))
}

func parseCount(args []string) (int, error) {
	if len(args) == 0 {
		return 10, nil
	}
	n, err := strconv.Atoi(args[0])
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("count must be a positive integer")
	}
	return n, nil
}

// renderRuns prints one summary line per run followed by its
// non-generated steps, so warnings and fallbacks stand out.
func renderRuns(w io.Writer, runs []runlog.Run, p *console.Printer) {
	for i, r := range runs {
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintf(w, "%s  %s  %d written, %d warnings, %d errors  %s\n",
			p.Dim(r.Time.Local().Format("2006-01-02 15:04:05")),
			p.Bold(r.Result), r.Written, r.Warnings, r.Errors, r.Duration)
		if r.Error != "" {
			fmt.Fprintf(w, "  %s\n", r.Error)
		}
		for _, s := range r.Steps {
			if s.Status == generator.StatusGenerated.String() {
				continue
			}
			st, _ := generator.ParseStatus(s.Status)
			label := console.Label(st)
			if label == "" {
				label = s.Status
			}
			fmt.Fprintf(w, "  %s %s\n", label, s.Detail)
		}
	}
}
