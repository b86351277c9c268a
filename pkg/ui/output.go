package ui

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"
)

// MatchReport is the derived paths one guard produced for a batch
type MatchReport struct {
	Guard string   `json:"guard" yaml:"guard"`
	Group string   `json:"group,omitempty" yaml:"group,omitempty"`
	Paths []string `json:"paths" yaml:"paths"`
}

// GuardSummary describes a loaded guard for listing
type GuardSummary struct {
	Name     string           `json:"name" yaml:"name"`
	Group    string           `json:"group,omitempty" yaml:"group,omitempty"`
	Run      []string         `json:"run,omitempty" yaml:"run,omitempty"`
	Watchers []WatcherSummary `json:"watchers" yaml:"watchers"`
}

// WatcherSummary describes one watcher of a guard
type WatcherSummary struct {
	Pattern string `json:"pattern" yaml:"pattern"`
	Regexp  bool   `json:"regexp" yaml:"regexp"`
	Action  string `json:"action,omitempty" yaml:"action,omitempty"`
}

// Printer renders command results in the selected format
type Printer struct {
	out    io.Writer
	format Format
	styles Styles
}

// NewPrinter creates a printer for out. FormatAuto is resolved against out.
func NewPrinter(out io.Writer, format Format) *Printer {
	resolved := Resolve(format, out)
	return &Printer{
		out:    out,
		format: resolved,
		styles: NewStyles(out, resolved),
	}
}

// Format returns the resolved output format
func (p *Printer) Format() Format {
	return p.format
}

// Matches renders the derived paths of each guard
func (p *Printer) Matches(reports []MatchReport) error {
	switch p.format {
	case FormatJSON:
		return p.encodeJSON(reports)
	case FormatYAML:
		return p.encodeYAML(reports)
	}

	for _, report := range reports {
		if len(report.Paths) == 0 {
			continue
		}
		if _, err := fmt.Fprintln(p.out, p.styles.Heading.Render(guardTitle(report.Guard, report.Group))); err != nil {
			return err
		}
		for _, path := range report.Paths {
			if _, err := fmt.Fprintf(p.out, "  %s\n", p.styles.Path.Render(path)); err != nil {
				return err
			}
		}
	}
	return nil
}

// Guards renders the loaded guards and their watchers
func (p *Printer) Guards(guards []GuardSummary) error {
	switch p.format {
	case FormatJSON:
		return p.encodeJSON(guards)
	case FormatYAML:
		return p.encodeYAML(guards)
	}

	for _, g := range guards {
		title := guardTitle(g.Name, g.Group)
		if len(g.Run) > 0 {
			title += " " + p.styles.Muted.Render("runs "+strings.Join(g.Run, " "))
		}
		if _, err := fmt.Fprintln(p.out, p.styles.Heading.Render(title)); err != nil {
			return err
		}
		for _, w := range g.Watchers {
			kind := "literal"
			if w.Regexp {
				kind = "regexp"
			}
			line := fmt.Sprintf("  %s %s", p.styles.Muted.Render(kind), p.styles.Path.Render(w.Pattern))
			if w.Action != "" {
				line += " -> " + w.Action
			}
			if _, err := fmt.Fprintln(p.out, line); err != nil {
				return err
			}
		}
	}
	return nil
}

func (p *Printer) encodeJSON(v interface{}) error {
	encoder := json.NewEncoder(p.out)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

func (p *Printer) encodeYAML(v interface{}) error {
	encoder := yaml.NewEncoder(p.out)
	encoder.SetIndent(2)
	if err := encoder.Encode(v); err != nil {
		return err
	}
	return encoder.Close()
}

func guardTitle(name, group string) string {
	if group == "" || group == "default" {
		return name
	}
	return fmt.Sprintf("%s (%s)", name, group)
}
