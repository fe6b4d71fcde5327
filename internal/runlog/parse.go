package runlog

import (
	"strconv"
	"strings"
	"time"
)

// SplitBlocks splits log content on blank lines, dropping empty blocks.
func SplitBlocks(content string) []string {
	raw := strings.Split(content, "\n\n")
	blocks := make([]string, 0, len(raw))
	for _, b := range raw {
		b = strings.TrimSpace(b)
		if b != "" {
			blocks = append(blocks, b)
		}
	}
	return blocks
}

// ParseRuns parses flat log content back into runs. The first line of a
// block is the run summary; "step[" lines that follow are its steps.
// Blocks whose summary does not parse are skipped.
func ParseRuns(content string) []Run {
	content = strings.TrimRight(content, "\n\r ")
	if content == "" {
		return nil
	}
	var runs []Run
	for _, block := range SplitBlocks(content) {
		lines := strings.Split(block, "\n")
		run, ok := parseSummary(lines[0])
		if !ok {
			continue
		}
		for _, line := range lines[1:] {
			if st, ok := parseStep(line); ok {
				run.Steps = append(run.Steps, st)
			}
		}
		runs = append(runs, run)
	}
	return runs
}

func parseSummary(line string) (Run, bool) {
	if strings.Contains(line, "step[") {
		return Run{}, false
	}
	ts, ok := ExtractTimestamp(line)
	if !ok {
		return Run{}, false
	}
	result := extractField(line, "result")
	if result == "" {
		return Run{}, false
	}
	run := Run{
		Time:      ts,
		Result:    result,
		SourceDir: extractQuotedField(line, "src"),
		DestDir:   extractQuotedField(line, "dst"),
		Error:     extractQuotedField(line, "error"),
		Written:   atoi(extractField(line, "written")),
		Warnings:  atoi(extractField(line, "warnings")),
		Errors:    atoi(extractField(line, "errors")),
	}
	if d, err := time.ParseDuration(extractField(line, "duration")); err == nil {
		run.Duration = d
	}
	return run, true
}

func parseStep(line string) (StepRecord, bool) {
	if !strings.Contains(line, "step[") {
		return StepRecord{}, false
	}
	kind := extractField(line, "kind")
	status := extractField(line, "status")
	if kind == "" || status == "" {
		return StepRecord{}, false
	}
	return StepRecord{
		Kind:   kind,
		Status: status,
		Name:   extractField(line, "name"),
		Detail: extractQuotedField(line, "detail"),
	}, true
}

// ExtractTimestamp parses the RFC3339 timestamp at the start of a log line
// (everything before the first double space).
func ExtractTimestamp(line string) (time.Time, bool) {
	tsEnd := strings.Index(line, "  ")
	if tsEnd < 0 {
		return time.Time{}, false
	}
	ts, err := time.Parse(time.RFC3339, line[:tsEnd])
	if err != nil {
		return time.Time{}, false
	}
	return ts, true
}

// extractField returns the value after "key=" in a space-separated line.
// Returns "" if not found.
func extractField(line, key string) string {
	prefix := key + "="
	for _, field := range strings.Fields(line) {
		if strings.HasPrefix(field, prefix) {
			return field[len(prefix):]
		}
	}
	return ""
}

// extractQuotedField returns the %q-encoded value of key=, or "".
func extractQuotedField(line, key string) string {
	prefix := "  " + key + "="
	i := strings.Index(line, prefix)
	if i < 0 {
		return ""
	}
	return extractQuoted(line[i+len(prefix):])
}

// extractQuoted extracts a Go %q-encoded string from the start of s.
// It finds the matching closing quote (respecting backslash escapes),
// then uses strconv.Unquote to decode the value. Returns "" on failure.
func extractQuoted(s string) string {
	if len(s) == 0 || s[0] != '"' {
		return ""
	}
	for i := 1; i < len(s); i++ {
		if s[i] == '\\' {
			i++
			continue
		}
		if s[i] == '"' {
			text, err := strconv.Unquote(s[:i+1])
			if err != nil {
				return ""
			}
			return text
		}
	}
	return ""
}

func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}
