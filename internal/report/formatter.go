package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"git.home.luguber.info/inful/docnav/internal/sidebar"
)

// Formatter writes a report.
type Formatter interface {
	Format(w io.Writer, r *Report) error
}

// NewFormatter creates the appropriate formatter based on format string.
func NewFormatter(format string) Formatter {
	switch format {
	case "json":
		return NewJSONFormatter()
	default:
		return NewTextFormatter()
	}
}

// TextFormatter formats reports as human-readable text.
type TextFormatter struct{}

// NewTextFormatter creates a text formatter.
func NewTextFormatter() *TextFormatter {
	return &TextFormatter{}
}

// Format outputs the report in human-readable text format.
func (f *TextFormatter) Format(w io.Writer, r *Report) error {
	p := &printer{w: w}
	p.printf("Validating sidebars in: %s\n", r.Source)
	p.println(strings.Repeat("━", 60))

	// Group by sidebar, keeping first-seen order
	var order []string
	bySection := make(map[string][]sidebar.Violation)
	for _, v := range r.Violations {
		if _, ok := bySection[v.Section]; !ok {
			order = append(order, v.Section)
		}
		bySection[v.Section] = append(bySection[v.Section], v)
	}
	for _, name := range order {
		for _, v := range bySection[name] {
			p.printf("✗ %s: %s\n", name, sidebar.FormatPath(v.Path))
			p.printf("  %s: %s\n", v.Kind, v.Message)
			if v.Index >= 0 {
				p.printf("  item %d\n", v.Index)
			}
			p.println()
		}
	}

	p.println(strings.Repeat("━", 60))
	p.printf("Results (run %s):\n", r.RunID)
	p.printf("  %d sidebar%s, %d categor%s, %d document%s\n",
		len(r.Sections), pluralize(len(r.Sections), "", "s"),
		r.Categories, pluralize(r.Categories, "y", "ies"),
		r.Docs, pluralize(r.Docs, "", "s"))
	if n := len(r.Violations); n > 0 {
		p.printf("  %d violation%s\n", n, pluralize(n, "", "s"))
		p.println()
		p.println("❌ Sidebar specification has errors that will prevent the site build.")
	} else {
		p.println()
		p.println("✨ Sidebar specification is valid!")
	}
	return p.err
}

// printer remembers the first write error so formatting code stays linear.
type printer struct {
	w   io.Writer
	err error
}

func (p *printer) printf(format string, args ...any) {
	if p.err == nil {
		_, p.err = fmt.Fprintf(p.w, format, args...)
	}
}

func (p *printer) println(args ...any) {
	if p.err == nil {
		_, p.err = fmt.Fprintln(p.w, args...)
	}
}

// JSONFormatter formats reports as JSON.
type JSONFormatter struct{}

// NewJSONFormatter creates a JSON formatter.
func NewJSONFormatter() *JSONFormatter {
	return &JSONFormatter{}
}

// JSONOutput represents the JSON output structure.
type JSONOutput struct {
	RunID          string              `json:"run_id"`
	Source         string              `json:"source"`
	Valid          bool                `json:"valid"`
	Sidebars       []string            `json:"sidebars"`
	Categories     int                 `json:"categories"`
	Docs           int                 `json:"docs"`
	ViolationCount int                 `json:"violation_count"`
	Violations     []sidebar.Violation `json:"violations"`
}

// Format outputs the report in JSON format.
func (f *JSONFormatter) Format(w io.Writer, r *Report) error {
	output := JSONOutput{
		RunID:          r.RunID,
		Source:         r.Source,
		Valid:          r.OK(),
		Sidebars:       r.Sections,
		Categories:     r.Categories,
		Docs:           r.Docs,
		ViolationCount: len(r.Violations),
		Violations:     r.Violations,
	}
	if output.Sidebars == nil {
		output.Sidebars = []string{}
	}
	if output.Violations == nil {
		output.Violations = []sidebar.Violation{}
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(output)
}

func pluralize(count int, one, many string) string {
	if count == 1 {
		return one
	}
	return many
}
