package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/Mavwarf/appicon/internal/config"
	"github.com/Mavwarf/appicon/internal/iconset"
)

// printTargets lists the configured sources and every file a run writes.
func printTargets(w io.Writer, cfg config.Config) {
	fmt.Fprintln(w, "Sources:")
	fmt.Fprintf(w, "  %-12s %s\n", "master", cfg.MasterPath())
	fmt.Fprintf(w, "  %-12s %s\n", "legacy ico", orNone(cfg.LegacyICOPath()))
	fmt.Fprintf(w, "  %-12s %s\n", "svg", orNone(cfg.SVGPath()))
	fmt.Fprintf(w, "\nOutputs in %s:\n", cfg.DestDir)

	fmt.Fprintf(w, "  %-24s %s\n", iconset.ICOName, joinSizes(iconset.ICOFrameOrder(iconset.ICOSizes)))
	fmt.Fprintf(w, "  %-24s %s\n", iconset.SVGName, "copy of the source svg")
	for _, t := range iconset.PNGTargets {
		fmt.Fprintf(w, "  %-24s %dx%d\n", t.Name, t.Width, t.Height)
	}

	var chunks []string
	for _, s := range iconset.ICNSSizes {
		types, _ := iconset.ICNSTypes(s)
		chunks = append(chunks, fmt.Sprintf("%d(%s)", s, strings.Join(types, ",")))
	}
	fmt.Fprintf(w, "  %-24s %s\n", iconset.ICNSName, strings.Join(chunks, " "))
}

func joinSizes(sizes []int) string {
	parts := make([]string, len(sizes))
	for i, s := range sizes {
		parts[i] = fmt.Sprintf("%dx%d", s, s)
	}
	return strings.Join(parts, " ")
}

func orNone(s string) string {
	if s == "" {
		return "(none)"
	}
	return s
}
