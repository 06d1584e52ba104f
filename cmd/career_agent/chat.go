package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dhrumil1128/career-ai-agent/internal/config"
	"github.com/dhrumil1128/career-ai-agent/internal/observability"
	"github.com/dhrumil1128/career-ai-agent/internal/render"
	"github.com/dhrumil1128/career-ai-agent/internal/session"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Start an interactive conversation with the career assistant",
	Long: `Start an interactive session. Plain input is sent as a chat message;
slash commands drive uploads, analyses, and session management. Type /help
inside the session for the full list.`,
	RunE: runChat,
}

func init() {
	rootCmd.AddCommand(chatCmd)
}

func runChat(cmd *cobra.Command, _ []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}
	client, err := newClient(cfg)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	adapter := session.New(client, &session.Options{
		OnEvent: transcriptPrinter(out),
	})
	defer adapter.Close()

	// The welcome message is seeded before the event callback can observe
	// it, so print the initial transcript directly.
	for _, msg := range adapter.Messages() {
		printAgentMessage(out, msg.Text)
	}

	// Warm the memory cache so /memory and resume-aware prompts are
	// accurate from the start. Failures are logged, not shown.
	if task, err := adapter.RefreshMemoryStatus(); err == nil {
		_ = task.Wait(cmd.Context())
	}

	repl := &chatSession{
		adapter: adapter,
		cfg:     cfg,
		out:     out,
		in:      bufio.NewScanner(cmd.InOrStdin()),
	}
	fmt.Fprintln(out, "\nType a message and press enter. /help lists commands, /quit exits.")
	return repl.run()
}

// chatSession drives the read-eval-print loop around one adapter.
type chatSession struct {
	adapter *session.Adapter
	cfg     config.Config
	out     io.Writer
	in      *bufio.Scanner
}

func (s *chatSession) run() error {
	for {
		fmt.Fprint(s.out, "\n> ")
		if !s.in.Scan() {
			return s.in.Err()
		}
		line := strings.TrimSpace(s.in.Text())
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, "/") {
			quit, err := s.command(line)
			if err != nil {
				fmt.Fprintf(s.out, "error: %v\n", err)
			}
			if quit {
				return nil
			}
			continue
		}
		s.await(s.adapter.SubmitChatMessage(line))
	}
}

func (s *chatSession) command(line string) (quit bool, err error) {
	fields := strings.Fields(line)
	name, args := fields[0], fields[1:]

	switch name {
	case "/help":
		s.printHelp()
	case "/quit", "/exit":
		return true, nil
	case "/upload":
		if len(args) == 0 {
			return false, fmt.Errorf("usage: /upload <path>")
		}
		s.await(s.adapter.UploadResume(strings.Join(args, " ")))
	case "/match":
		jd, err := s.jobDescription(args)
		if err != nil {
			return false, err
		}
		s.await(s.adapter.AnalyzeMatch(jd))
	case "/gaps":
		jd, err := s.jobDescription(args)
		if err != nil {
			return false, err
		}
		s.await(s.adapter.AnalyzeGaps(jd))
	case "/heatmap":
		jd, err := s.jobDescription(args)
		if err != nil {
			return false, err
		}
		s.await(s.adapter.GenerateHeatmap(jd))
	case "/roles":
		s.await(s.adapter.FetchAlternativeRoles())
	case "/questions":
		if len(args) == 0 {
			return false, fmt.Errorf("usage: /questions <company> [role]")
		}
		s.await(s.adapter.GenerateInterviewQuestions(args[0], strings.Join(args[1:], " ")))
	case "/jobs":
		s.await(s.adapter.SearchJobs(strings.Join(args, " ")))
	case "/memory":
		if task, err := s.adapter.RefreshMemoryStatus(); err == nil {
			_ = task.Wait(context.Background())
		}
		status := s.adapter.MemoryStatus()
		observability.NewPrinter(s.out).PrintMemoryStatus(&status)
	case "/clear-memory":
		s.await(s.adapter.ClearServerMemory())
	case "/clear-resume":
		s.await(s.adapter.ClearStoredResume())
	case "/reset":
		s.adapter.ResetTranscript(s.confirmReset)
	case "/export":
		path, err := s.adapter.ExportTranscript(s.cfg.ExportDir)
		if err != nil {
			return false, err
		}
		fmt.Fprintf(s.out, "Transcript saved to %s\n", path)
	case "/export-html":
		path, err := s.adapter.ExportTranscriptHTML(s.cfg.ExportDir)
		if err != nil {
			return false, err
		}
		fmt.Fprintf(s.out, "Transcript saved to %s\n", path)
	default:
		return false, fmt.Errorf("unknown command %s (try /help)", name)
	}
	return false, nil
}

// await blocks until the task settles. Outcomes reach the screen through the
// event callback, so only submission errors are reported here.
func (s *chatSession) await(task *session.Task, err error) {
	if err != nil {
		fmt.Fprintf(s.out, "error: %v\n", err)
		return
	}
	_ = task.Wait(context.Background())
}

// jobDescription reads a job description from the file named in args, or
// prompts for a pasted one ended by an empty line.
func (s *chatSession) jobDescription(args []string) (string, error) {
	if len(args) > 0 {
		path := strings.Join(args, " ")
		data, err := os.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("failed to read job description file %s: %w", path, err)
		}
		return string(data), nil
	}

	fmt.Fprintln(s.out, "Paste the job description, then finish with an empty line:")
	var lines []string
	for s.in.Scan() {
		line := s.in.Text()
		if strings.TrimSpace(line) == "" {
			break
		}
		lines = append(lines, line)
	}
	jd := strings.Join(lines, "\n")
	if strings.TrimSpace(jd) == "" {
		return "", fmt.Errorf("job description is empty")
	}
	return jd, nil
}

func (s *chatSession) confirmReset() bool {
	fmt.Fprint(s.out, "Clear the conversation? [y/N] ")
	if !s.in.Scan() {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(s.in.Text()))
	return answer == "y" || answer == "yes"
}

func (s *chatSession) printHelp() {
	fmt.Fprint(s.out, `Commands:
  /upload <path>             Upload a resume file
  /match [job-file]          Score the resume against a job description
  /gaps [job-file]           List skills the job asks for that the resume lacks
  /heatmap [job-file]        Section-by-section relevance report
  /roles                     Suggest adjacent roles based on the resume
  /questions <company> [role]  Generate practice interview questions
  /jobs [query]              Search job listings
  /memory                    Show what the service remembers this session
  /clear-memory              Wipe the server-side session memory
  /clear-resume              Remove the stored resume
  /reset                     Clear the conversation locally
  /export                    Save the transcript as text
  /export-html               Save the transcript as HTML
  /quit                      Exit
`)
}

// transcriptPrinter renders adapter events for a scrolling terminal.
func transcriptPrinter(out io.Writer) session.EventCallback {
	return func(ev session.Event) {
		switch ev.Kind {
		case session.EventMessage:
			// User messages were just typed; only agent replies need ink.
			if ev.Message != nil && ev.Message.Sender == session.SenderAgent {
				printAgentMessage(out, ev.Message.Text)
			}
		case session.EventPending:
			fmt.Fprintln(out, "  ⏳ waiting for the career service...")
		case session.EventAlert:
			fmt.Fprintf(out, "\n‼ %s\n", ev.Text)
		case session.EventReset:
			fmt.Fprintln(out, "\nConversation cleared.")
			if ev.Message != nil {
				printAgentMessage(out, ev.Message.Text)
			}
		}
	}
}

func printAgentMessage(out io.Writer, text string) {
	fmt.Fprintf(out, "\nCareer Agent:\n%s\n", render.TerminalMessage(text))
}
