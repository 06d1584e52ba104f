// Package observability provides the structured logger and formatted output
// utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/dhrumil1128/career-ai-agent/internal/types"
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
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		// Truncate long lines
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintMemoryStatus outputs a human-readable summary of the server-side
// session memory.
func (p *Printer) PrintMemoryStatus(status *types.MemoryStatus) {
	if status == nil {
		return
	}

	var sb strings.Builder

	if status.ResumeUploaded {
		sb.WriteString("Resume:   loaded\n")
	} else {
		sb.WriteString("Resume:   not loaded\n")
	}
	if status.ResumeFile != "" {
		sb.WriteString(fmt.Sprintf("File:     %s\n", status.ResumeFile))
	}
	sb.WriteString(fmt.Sprintf("Text:     %d characters", status.ResumeTextLength))

	p.printBox("SESSION MEMORY", sb.String())
}

// PrintUploadResult outputs the server's upload confirmation. fileLabel is
// the local file description shown alongside, e.g. "resume.pdf (2 KB)".
func (p *Printer) PrintUploadResult(result *types.UploadResult, fileLabel string) {
	if result == nil {
		return
	}

	var sb strings.Builder
	if fileLabel != "" {
		sb.WriteString(fmt.Sprintf("File:     %s\n", fileLabel))
	}
	sb.WriteString(result.Message)
	if result.Details != "" {
		sb.WriteString(fmt.Sprintf("\n%s", result.Details))
	}

	p.printBox("RESUME UPLOADED", sb.String())
}

// PrintJobs outputs the job search results.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintJobs(result *types.JobSearchResult) {
	if result == nil || len(result.Jobs) == 0 {
		fmt.Fprintf(p.out, "┌%s┐\n", strings.Repeat("─", boxWidth-2))
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, "NO JOBS FOUND")
		fmt.Fprintf(p.out, "└%s┘\n", strings.Repeat("─", boxWidth-2))
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Found %d openings", result.Count))
	if result.Source != "" {
		sb.WriteString(fmt.Sprintf(" (source: %s)", result.Source))
	}
	sb.WriteString("\n\n")

	count := min(len(result.Jobs), maxItemsToShow)
	for i := 0; i < count; i++ {
		job := result.Jobs[i]
		if len(job) > 50 {
			job = job[:47] + "..."
		}
		sb.WriteString(fmt.Sprintf("• %s\n", job))
	}
	if len(result.Jobs) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("\n... and %d more", len(result.Jobs)-maxItemsToShow))
	}

	p.printBox("JOB OPPORTUNITIES", strings.TrimSuffix(sb.String(), "\n"))
}
