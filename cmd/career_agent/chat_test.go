package main

import (
	"bufio"
	"bytes"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dhrumil1128/career-ai-agent/internal/api"
	"github.com/dhrumil1128/career-ai-agent/internal/config"
	"github.com/dhrumil1128/career-ai-agent/internal/session"
	"github.com/dhrumil1128/career-ai-agent/internal/stub"
)

// newScriptedSession wires a REPL to a stub service and a canned input
// script. All output lands in the returned buffer.
func newScriptedSession(t *testing.T, cfg config.Config, script string) (*chatSession, *bytes.Buffer) {
	t.Helper()

	server := httptest.NewServer(stub.New().Handler())
	t.Cleanup(server.Close)

	client, err := api.New(server.URL, nil)
	require.NoError(t, err)

	buf := new(bytes.Buffer)
	adapter := session.New(client, &session.Options{OnEvent: transcriptPrinter(buf)})
	t.Cleanup(adapter.Close)

	return &chatSession{
		adapter: adapter,
		cfg:     cfg,
		out:     buf,
		in:      bufio.NewScanner(strings.NewReader(script)),
	}, buf
}

func TestChatSession_ChatAndJobs(t *testing.T) {
	s, buf := newScriptedSession(t, config.Default(), "hello\n/jobs remote\n/quit\n")
	require.NoError(t, s.run())

	output := buf.String()
	assert.Contains(t, output, "waiting for the career service")
	assert.Contains(t, output, "Career Agent:")
	assert.Contains(t, output, "Hello! Ask me about roles")
	assert.Contains(t, output, "openings I found")
}

func TestChatSession_UnknownCommand(t *testing.T) {
	s, buf := newScriptedSession(t, config.Default(), "/bogus\n/quit\n")
	require.NoError(t, s.run())

	assert.Contains(t, buf.String(), "unknown command /bogus")
}

func TestChatSession_UploadMissingFile(t *testing.T) {
	s, buf := newScriptedSession(t, config.Default(), "/upload /no/such/file.txt\n/quit\n")
	require.NoError(t, s.run())

	assert.Contains(t, buf.String(), "error: resume file:")
}

func TestChatSession_UploadAndMemory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "resume.txt")
	require.NoError(t, os.WriteFile(path, []byte("Go, Postgres, Kafka."), 0o644))

	script := "/upload " + path + "\n/memory\n/quit\n"
	s, buf := newScriptedSession(t, config.Default(), script)
	require.NoError(t, s.run())

	output := buf.String()
	assert.Contains(t, output, "uploaded successfully")
	assert.Contains(t, output, "SESSION MEMORY")
	assert.Contains(t, output, "Resume:   loaded")
}

func TestChatSession_ResetConfirmed(t *testing.T) {
	s, buf := newScriptedSession(t, config.Default(), "/reset\ny\n/quit\n")
	require.NoError(t, s.run())

	output := buf.String()
	assert.Contains(t, output, "Clear the conversation? [y/N]")
	assert.Contains(t, output, "Conversation cleared.")
	assert.Contains(t, output, "Career AI Assistant")
}

func TestChatSession_ResetDeclined(t *testing.T) {
	s, buf := newScriptedSession(t, config.Default(), "/reset\nn\n/quit\n")
	require.NoError(t, s.run())

	assert.NotContains(t, buf.String(), "Conversation cleared.")
	assert.Len(t, s.adapter.Messages(), 1)
}

func TestChatSession_Export(t *testing.T) {
	cfg := config.Default()
	cfg.ExportDir = t.TempDir()

	s, buf := newScriptedSession(t, cfg, "hello\n/export\n/quit\n")
	require.NoError(t, s.run())

	assert.Contains(t, buf.String(), "Transcript saved to")

	data, err := os.ReadFile(filepath.Join(cfg.ExportDir, session.TranscriptFilename))
	require.NoError(t, err)
	assert.Contains(t, string(data), "You: hello")
}

func TestChatSession_Help(t *testing.T) {
	s, buf := newScriptedSession(t, config.Default(), "/help\n/quit\n")
	require.NoError(t, s.run())

	output := buf.String()
	assert.Contains(t, output, "/upload <path>")
	assert.Contains(t, output, "/export-html")
}

func TestTranscriptPrinter_SkipsUserMessages(t *testing.T) {
	var buf bytes.Buffer
	printer := transcriptPrinter(&buf)

	printer(session.Event{Kind: session.EventMessage, Stream: session.StreamChat, Message: &session.Message{Sender: session.SenderUser, Text: "typed by the user"}})
	printer(session.Event{Kind: session.EventMessage, Stream: session.StreamChat, Message: &session.Message{Sender: session.SenderAgent, Text: "**bold** reply"}})
	printer(session.Event{Kind: session.EventAlert, Stream: session.StreamUpload, Text: "⚠️ upload failed"})

	output := buf.String()
	assert.NotContains(t, output, "typed by the user")
	assert.Contains(t, output, "bold")
	assert.NotContains(t, output, "**")
	assert.Contains(t, output, "upload failed")
}
