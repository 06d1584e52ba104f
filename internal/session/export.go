package session

import (
	"fmt"
	"html"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/dhrumil1128/career-ai-agent/internal/render"
)

// Fixed download filenames for transcript exports.
const (
	TranscriptFilename     = "career_chat_transcript.txt"
	TranscriptHTMLFilename = "career_chat_transcript.html"
)

// WriteTranscript writes the transcript's visible text, one block per
// message, in append order.
func (a *Adapter) WriteTranscript(w io.Writer) error {
	for _, m := range a.Messages() {
		if _, err := fmt.Fprintf(w, "%s: %s\n\n", senderLabel(m.Sender), m.Text); err != nil {
			return fmt.Errorf("failed to write transcript: %w", err)
		}
	}
	return nil
}

// WriteTranscriptHTML writes the transcript as a standalone HTML document.
// Agent messages go through the markup transform; user messages are escaped
// verbatim.
func (a *Adapter) WriteTranscriptHTML(w io.Writer) error {
	var sb strings.Builder
	sb.WriteString("<!DOCTYPE html>\n<html>\n<head>\n")
	sb.WriteString("<meta charset=\"utf-8\">\n<title>Career Chat Transcript</title>\n")
	sb.WriteString("<style>\n")
	sb.WriteString("body { font-family: sans-serif; max-width: 640px; margin: 2rem auto; }\n")
	sb.WriteString(".message { margin: 0.75rem 0; padding: 0.5rem 0.75rem; border-radius: 8px; }\n")
	sb.WriteString(".user { background: #e8f0fe; }\n")
	sb.WriteString(".agent { background: #f1f3f4; }\n")
	sb.WriteString(".sender { font-weight: bold; display: block; margin-bottom: 0.25rem; }\n")
	sb.WriteString("</style>\n</head>\n<body>\n")

	for _, m := range a.Messages() {
		sb.WriteString(fmt.Sprintf("<div class=\"message %s\">", string(m.Sender)))
		sb.WriteString(fmt.Sprintf("<span class=\"sender\">%s</span>", senderLabel(m.Sender)))
		if m.Sender == SenderAgent {
			sb.WriteString(render.FormatMessage(m.Text))
		} else {
			sb.WriteString(strings.ReplaceAll(html.EscapeString(m.Text), "\n", "<br>"))
		}
		sb.WriteString("</div>\n")
	}
	sb.WriteString("</body>\n</html>\n")

	if _, err := io.WriteString(w, sb.String()); err != nil {
		return fmt.Errorf("failed to write transcript: %w", err)
	}
	return nil
}

// ExportTranscript writes the plain-text transcript into dir under the fixed
// download filename and returns the full path.
func (a *Adapter) ExportTranscript(dir string) (string, error) {
	return a.export(dir, TranscriptFilename, a.WriteTranscript)
}

// ExportTranscriptHTML writes the HTML transcript into dir under the fixed
// download filename and returns the full path.
func (a *Adapter) ExportTranscriptHTML(dir string) (string, error) {
	return a.export(dir, TranscriptHTMLFilename, a.WriteTranscriptHTML)
}

func (a *Adapter) export(dir, name string, write func(io.Writer) error) (string, error) {
	if dir == "" {
		dir = "."
	}
	path := filepath.Join(dir, name)

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create export file: %w", err)
	}
	if err := write(f); err != nil {
		_ = f.Close()
		return "", err
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("failed to finalize export file: %w", err)
	}
	return path, nil
}

func senderLabel(s Sender) string {
	if s == SenderUser {
		return "You"
	}
	return "Career Agent"
}
