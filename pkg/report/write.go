package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// WriteText writes one line per violation in the form
// <path>:<line>:<column>: [<rule>] <message>, followed by one line per fault.
func (r *Report) WriteText(w io.Writer) error {
	for _, e := range r.entries {
		if _, err := fmt.Fprintf(w, "%s:%d:%d: [%s] %s\n", e.Path, e.Line, e.Column, e.Rule, e.Message); err != nil {
			return err
		}
	}
	for _, f := range r.faults {
		if _, err := fmt.Fprintf(w, "%s: fault [%s] %s\n", f.Location(), f.Component, f.Message); err != nil {
			return err
		}
	}
	return nil
}

type jsonReport struct {
	Diagnostics []Entry      `json:"diagnostics"`
	Faults      []FaultEntry `json:"faults"`
	Summary     Summary      `json:"summary"`
}

// WriteJSON writes the report as a single indented JSON document.
func (r *Report) WriteJSON(w io.Writer) error {
	out := jsonReport{
		Diagnostics: r.entries,
		Faults:      r.faults,
		Summary:     r.summary,
	}
	if out.Diagnostics == nil {
		out.Diagnostics = []Entry{}
	}
	if out.Faults == nil {
		out.Faults = []FaultEntry{}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

// WriteMarkdown writes a section per file with a violations table, then the
// faults and a summary line. It is meant for piped output and CI comments.
func (r *Report) WriteMarkdown(w io.Writer) error {
	var b strings.Builder

	if len(r.entries) == 0 && len(r.faults) == 0 {
		b.WriteString("No lint issues found.\n")
		_, err := io.WriteString(w, b.String())
		return err
	}

	current := ""
	for _, e := range r.entries {
		if e.Path != current {
			if current != "" {
				b.WriteString("\n")
			}
			current = e.Path
			fmt.Fprintf(&b, "## %s\n\n", e.Path)
			b.WriteString("| Line | Column | Rule | Severity | Message |\n")
			b.WriteString("|------|--------|------|----------|---------|\n")
		}
		fmt.Fprintf(&b, "| %d | %d | `%s` | %s | %s |\n",
			e.Line, e.Column, e.Rule, e.Severity, escapeCell(e.Message))
	}

	if len(r.faults) > 0 {
		if current != "" {
			b.WriteString("\n")
		}
		b.WriteString("## Faults\n\n")
		for _, f := range r.faults {
			fmt.Fprintf(&b, "- `%s` %s: %s\n", f.Component, f.Location(), f.Message)
		}
	}

	fmt.Fprintf(&b, "\n**Summary:** %s\n", r.summary)
	_, err := io.WriteString(w, b.String())
	return err
}

// String renders the summary as a single sentence.
func (s Summary) String() string {
	parts := []string{plural(s.Violations, "issue")}
	if s.Errors > 0 {
		parts = append(parts, plural(s.Errors, "error"))
	}
	if s.Warnings > 0 {
		parts = append(parts, plural(s.Warnings, "warning"))
	}
	if s.Info > 0 {
		parts = append(parts, fmt.Sprintf("%d info", s.Info))
	}
	if s.Hints > 0 {
		parts = append(parts, plural(s.Hints, "hint"))
	}
	out := fmt.Sprintf("%s in %s", strings.Join(parts, ", "), plural(s.Files, "file"))
	if s.Faults > 0 {
		out += fmt.Sprintf(" (%s)", plural(s.Faults, "fault"))
	}
	return out
}

// Location renders the fault position as path:line:column, or as much of it
// as is known.
func (f FaultEntry) Location() string {
	switch {
	case f.Path != "" && f.Line > 0:
		return fmt.Sprintf("%s:%d:%d", f.Path, f.Line, f.Column)
	case f.Path != "":
		return f.Path
	default:
		return "-"
	}
}

func plural(n int, word string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, word)
	}
	return fmt.Sprintf("%d %ss", n, word)
}

func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}
