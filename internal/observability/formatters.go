// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/voca-career/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stderr; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %s │\n", pad(title, boxWidth-4))
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "│ %s │\n", pad(truncate(line, boxWidth-4), boxWidth-4))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintContext outputs the normalized profile line, one field per row.
func (p *Printer) PrintContext(pctx types.PromptContext) {
	if pctx == "" {
		return
	}

	label, fields, ok := strings.Cut(string(pctx), ": ")
	if !ok {
		p.printBox("PROFILE", string(pctx))
		return
	}

	// fields are ", "-separated but list values use the same separator, so split on known labels only
	var sb strings.Builder
	for _, f := range splitFields(fields) {
		sb.WriteString(f)
		sb.WriteString("\n")
	}
	p.printBox(strings.ToUpper(label), strings.TrimSuffix(sb.String(), "\n"))
}

// PrintRecommendation outputs a human-readable summary of a recommendation.
func (p *Printer) PrintRecommendation(source string, rec *types.CareerRecommendation) {
	if rec == nil {
		return
	}

	var sb strings.Builder
	if source != "" {
		sb.WriteString(fmt.Sprintf("Profile:  %s\n\n", source))
	}
	sb.WriteString(fmt.Sprintf("%s %s  %d%%\n", rec.TopCareer.Emoji, rec.TopCareer.Title, rec.TopCareer.Alignment))
	sb.WriteString("\n")

	sb.WriteString("Also consider:\n")
	for _, c := range rec.OtherCareers {
		sb.WriteString(fmt.Sprintf("  %s %s  %d%%\n", c.Emoji, c.Title, c.Alignment))
	}

	writeList(&sb, "Skills you have", rec.SkillsYouHave)
	writeList(&sb, "Skills you need", rec.SkillsYouNeed)
	writeList(&sb, "Skills to improve", rec.SkillsToImprove)

	if rec.Advice != "" {
		sb.WriteString("\nAdvice:\n")
		for _, line := range wrap(rec.Advice, boxWidth-6) {
			sb.WriteString("  " + line + "\n")
		}
	}

	p.printBox("CAREER RECOMMENDATION", strings.TrimSuffix(sb.String(), "\n"))
}

func writeList(sb *strings.Builder, title string, items []string) {
	if len(items) == 0 {
		return
	}
	sb.WriteString(fmt.Sprintf("\n%s:\n", title))
	count := min(len(items), maxItemsToShow)
	for i := 0; i < count; i++ {
		sb.WriteString(fmt.Sprintf("  • %s\n", items[i]))
	}
	if len(items) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(items)-maxItemsToShow))
	}
}

// splitFields splits "A: x, B: y, z, C: w" into one entry per "Label: value"
func splitFields(s string) []string {
	parts := strings.Split(s, ", ")
	var fields []string
	for _, part := range parts {
		if isLabeled(part) || len(fields) == 0 {
			fields = append(fields, part)
			continue
		}
		fields[len(fields)-1] += ", " + part
	}
	return fields
}

// isLabeled reports whether part starts with a capitalized "Label:" prefix
func isLabeled(part string) bool {
	label, _, ok := strings.Cut(part, ": ")
	if !ok || label == "" {
		return false
	}
	for _, w := range strings.Fields(label) {
		if w[0] < 'A' || w[0] > 'Z' {
			return false
		}
	}
	return true
}

func wrap(text string, width int) []string {
	var lines []string
	var line string
	for _, word := range strings.Fields(text) {
		switch {
		case line == "":
			line = word
		case len([]rune(line))+1+len([]rune(word)) > width:
			lines = append(lines, line)
			line = word
		default:
			line += " " + word
		}
	}
	if line != "" {
		lines = append(lines, line)
	}
	return lines
}

func truncate(s string, width int) string {
	r := []rune(s)
	if len(r) <= width {
		return s
	}
	return string(r[:width-3]) + "..."
}

func pad(s string, width int) string {
	n := len([]rune(s))
	if n >= width {
		return s
	}
	return s + strings.Repeat(" ", width-n)
}
