package session

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"sync"
	"time"

	gonanoid "github.com/matoous/go-nanoid/v2"

	"github.com/dhrumil1128/career-ai-agent/internal/observability"
	"github.com/dhrumil1128/career-ai-agent/internal/types"
)

// Adapter owns the local view of one conversation: the append-only
// transcript, the pending indicators for in-flight requests, and the cached
// memory status. Every operation submits its request on its own goroutine
// and returns a Task handle immediately; results are reconciled into the
// adapter's state and reported through the event callback.
//
// All state access is serialized internally, so an Adapter is safe for
// concurrent use.
type Adapter struct {
	svc    CareerService
	logger *slog.Logger
	now    func() time.Time

	mu        sync.Mutex
	messages  []Message
	pending   map[string]Stream
	memory    types.MemoryStatus
	uploading bool
	closed    bool

	emitMu  sync.Mutex
	onEvent EventCallback

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// Options configures an Adapter.
type Options struct {
	// OnEvent receives state-change notifications. Optional.
	OnEvent EventCallback
	// Logger overrides the package default.
	Logger *slog.Logger
	// Now overrides the message timestamp source.
	Now func() time.Time
}

// New builds an adapter around svc with the welcome message already in the
// transcript.
func New(svc CareerService, opts *Options) *Adapter {
	if opts == nil {
		opts = &Options{}
	}
	logger := opts.Logger
	if logger == nil {
		logger = observability.Logger()
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}

	ctx, cancel := context.WithCancel(context.Background())
	a := &Adapter{
		svc:     svc,
		logger:  logger,
		now:     now,
		pending: make(map[string]Stream),
		onEvent: opts.OnEvent,
		ctx:     ctx,
		cancel:  cancel,
	}
	a.messages = append(a.messages, a.newMessage(SenderAgent, WelcomeText))
	return a
}

// SubmitChatMessage appends the user's text to the transcript and sends it
// to the service. The reply, or the failure text, is appended as an agent
// message when the request settles; a successful reply also triggers a
// memory refresh.
func (a *Adapter) SubmitChatMessage(text string) (*Task, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil, ErrEmptyMessage
	}

	a.mu.Lock()
	if a.closed {
		a.mu.Unlock()
		return nil, ErrClosed
	}
	userMsg := a.appendLocked(SenderUser, trimmed)
	task, indicator := a.beginLocked(StreamChat)
	a.mu.Unlock()

	a.emit(Event{Kind: EventMessage, Stream: StreamChat, Message: &userMsg})
	a.emit(Event{Kind: EventPending, Stream: StreamChat, Indicator: indicator})

	go func() {
		defer a.wg.Done()
		reply, err := a.svc.Chat(task.ctx, trimmed)
		a.settleTranscript(task, indicator, reply, err)
		if err == nil {
			_, _ = a.RefreshMemoryStatus()
		}
	}()
	return task, nil
}

// UploadResume sends the file at path to the service. Failures surface as a
// blocking alert, never as a transcript message; success appends the
// server's confirmation text and refreshes the memory status. Only one
// upload may be in flight at a time.
func (a *Adapter) UploadResume(path string) (*Task, error) {
	if strings.TrimSpace(path) == "" {
		return nil, ErrNoFileSelected
	}
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("resume file: %w", err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("resume file %s is a directory", path)
	}

	a.mu.Lock()
	if a.closed {
		a.mu.Unlock()
		return nil, ErrClosed
	}
	if a.uploading {
		a.mu.Unlock()
		return nil, ErrUploadInProgress
	}
	a.uploading = true
	task, indicator := a.beginLocked(StreamUpload)
	a.mu.Unlock()

	a.emit(Event{Kind: EventPending, Stream: StreamUpload, Indicator: indicator})

	go func() {
		defer a.wg.Done()
		result, err := a.svc.UploadResume(task.ctx, path)

		a.mu.Lock()
		delete(a.pending, indicator)
		a.uploading = false
		closed := a.closed
		var msg Message
		if err == nil && !closed {
			msg = a.appendLocked(SenderAgent, result.Message)
		}
		a.mu.Unlock()

		if !closed {
			a.emit(Event{Kind: EventPendingCleared, Stream: StreamUpload, Indicator: indicator})
			if err != nil {
				a.emit(Event{Kind: EventAlert, Stream: StreamUpload, Text: FailureText(err)})
			} else {
				a.emit(Event{Kind: EventMessage, Stream: StreamUpload, Message: &msg})
			}
		}
		task.finish(err)
		if err == nil {
			_, _ = a.RefreshMemoryStatus()
		}
	}()
	return task, nil
}

// AnalyzeMatch asks the service to score the stored resume against a job
// description and routes the result into the transcript.
func (a *Adapter) AnalyzeMatch(jobDescription string) (*Task, error) {
	jd := strings.TrimSpace(jobDescription)
	if jd == "" {
		return nil, ErrEmptyJobDescription
	}
	return a.transcriptOp(StreamMatch, func(ctx context.Context) (string, error) {
		return a.svc.AnalyzeMatch(ctx, jd)
	})
}

// AnalyzeGaps asks the service for missing skills and routes the result into
// the transcript.
func (a *Adapter) AnalyzeGaps(jobDescription string) (*Task, error) {
	jd := strings.TrimSpace(jobDescription)
	if jd == "" {
		return nil, ErrEmptyJobDescription
	}
	return a.transcriptOp(StreamGaps, func(ctx context.Context) (string, error) {
		return a.svc.SkillGaps(ctx, jd)
	})
}

// GenerateHeatmap asks the service for a section-by-section relevance report
// and routes the result into the transcript.
func (a *Adapter) GenerateHeatmap(jobDescription string) (*Task, error) {
	jd := strings.TrimSpace(jobDescription)
	if jd == "" {
		return nil, ErrEmptyJobDescription
	}
	return a.transcriptOp(StreamHeatmap, func(ctx context.Context) (string, error) {
		return a.svc.Heatmap(ctx, jd)
	})
}

// FetchAlternativeRoles asks the service for adjacent roles and routes the
// result into the transcript.
func (a *Adapter) FetchAlternativeRoles() (*Task, error) {
	return a.transcriptOp(StreamRoles, func(ctx context.Context) (string, error) {
		return a.svc.AlternativeRoles(ctx)
	})
}

// GenerateInterviewQuestions asks the service for practice questions. An
// empty role defers to the service default.
func (a *Adapter) GenerateInterviewQuestions(company, role string) (*Task, error) {
	co := strings.TrimSpace(company)
	if co == "" {
		return nil, ErrEmptyCompany
	}
	ro := strings.TrimSpace(role)
	return a.transcriptOp(StreamQuestions, func(ctx context.Context) (string, error) {
		return a.svc.InterviewQuestions(ctx, co, ro)
	})
}

// SearchJobs queries the service's job listings and routes a formatted
// summary into the transcript. An empty query defers to the service default.
func (a *Adapter) SearchJobs(query string) (*Task, error) {
	q := strings.TrimSpace(query)
	return a.transcriptOp(StreamJobs, func(ctx context.Context) (string, error) {
		result, err := a.svc.SearchJobs(ctx, q)
		if err != nil {
			return "", err
		}
		return jobsMessage(result), nil
	})
}

// RefreshMemoryStatus fetches the server-side memory snapshot and replaces
// the cached status wholesale. Failures leave the cache untouched and are
// only logged; nothing is shown to the user.
func (a *Adapter) RefreshMemoryStatus() (*Task, error) {
	a.mu.Lock()
	if a.closed {
		a.mu.Unlock()
		return nil, ErrClosed
	}
	task := a.beginTaskLocked(StreamMemory)
	a.mu.Unlock()

	go func() {
		defer a.wg.Done()
		status, err := a.svc.Memory(task.ctx)
		if err != nil {
			a.logger.Warn("memory refresh failed", "error", err)
			task.finish(err)
			return
		}

		a.mu.Lock()
		closed := a.closed
		if !closed {
			a.memory = *status
		}
		a.mu.Unlock()

		if !closed {
			a.emit(Event{Kind: EventMemory, Stream: StreamMemory, Memory: status})
		}
		task.finish(nil)
	}()
	return task, nil
}

// ClearServerMemory wipes the server-side session memory. The confirmation
// or failure surfaces as an alert, and the cached memory status is refreshed
// afterwards.
func (a *Adapter) ClearServerMemory() (*Task, error) {
	return a.alertOp(StreamMemory, a.svc.ClearMemory)
}

// ClearStoredResume removes the resume from server-side memory. The
// confirmation or failure surfaces as an alert, and the cached memory status
// is refreshed afterwards.
func (a *Adapter) ClearStoredResume() (*Task, error) {
	return a.alertOp(StreamMemory, a.svc.ClearResume)
}

// ResetTranscript clears the conversation and seeds the welcome message
// again, if confirm approves it. A nil confirm counts as approval. In-flight
// requests are not canceled; their messages append to the fresh transcript
// when they settle. Server-side memory is untouched.
func (a *Adapter) ResetTranscript(confirm func() bool) bool {
	if confirm != nil && !confirm() {
		return false
	}

	a.mu.Lock()
	if a.closed {
		a.mu.Unlock()
		return false
	}
	a.messages = a.messages[:0]
	welcome := a.appendLocked(SenderAgent, WelcomeText)
	a.mu.Unlock()

	a.emit(Event{Kind: EventReset, Message: &welcome})
	return true
}

// Messages returns a copy of the transcript in append order.
func (a *Adapter) Messages() []Message {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]Message, len(a.messages))
	copy(out, a.messages)
	return out
}

// MemoryStatus returns the cached memory snapshot.
func (a *Adapter) MemoryStatus() types.MemoryStatus {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.memory
}

// ResumeLoaded reports whether the cached memory status says a resume is
// stored server-side.
func (a *Adapter) ResumeLoaded() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.memory.ResumeUploaded
}

// HasPending reports whether stream has a request in flight.
func (a *Adapter) HasPending(stream Stream) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	for _, s := range a.pending {
		if s == stream {
			return true
		}
	}
	return false
}

// PendingCount returns the number of requests currently showing indicators.
func (a *Adapter) PendingCount() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.pending)
}

// Uploading reports whether a resume upload is in flight.
func (a *Adapter) Uploading() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.uploading
}

// Close cancels all in-flight requests and waits for them to settle. The
// adapter rejects new operations afterwards.
func (a *Adapter) Close() {
	a.mu.Lock()
	if a.closed {
		a.mu.Unlock()
		return
	}
	a.closed = true
	a.mu.Unlock()

	a.cancel()
	a.wg.Wait()
}

// transcriptOp runs one request whose outcome, success or failure, lands in
// the transcript as an agent message.
func (a *Adapter) transcriptOp(stream Stream, call func(context.Context) (string, error)) (*Task, error) {
	a.mu.Lock()
	if a.closed {
		a.mu.Unlock()
		return nil, ErrClosed
	}
	task, indicator := a.beginLocked(stream)
	a.mu.Unlock()

	a.emit(Event{Kind: EventPending, Stream: stream, Indicator: indicator})

	go func() {
		defer a.wg.Done()
		reply, err := call(task.ctx)
		a.settleTranscript(task, indicator, reply, err)
	}()
	return task, nil
}

// settleTranscript removes the request's indicator and appends the reply, or
// the failure text, as an agent message. The indicator is always cleared
// before the message lands.
func (a *Adapter) settleTranscript(task *Task, indicator, reply string, err error) {
	text := reply
	if err != nil {
		text = FailureText(err)
		a.logger.Debug("request failed", "stream", string(task.Stream), "error", err)
	}

	a.mu.Lock()
	delete(a.pending, indicator)
	closed := a.closed
	var msg Message
	if !closed {
		msg = a.appendLocked(SenderAgent, text)
	}
	a.mu.Unlock()

	if !closed {
		a.emit(Event{Kind: EventPendingCleared, Stream: task.Stream, Indicator: indicator})
		a.emit(Event{Kind: EventMessage, Stream: task.Stream, Message: &msg})
	}
	task.finish(err)
}

// alertOp runs one request whose confirmation or failure surfaces as an
// alert instead of a transcript message, followed by a memory refresh.
func (a *Adapter) alertOp(stream Stream, call func(context.Context) (string, error)) (*Task, error) {
	a.mu.Lock()
	if a.closed {
		a.mu.Unlock()
		return nil, ErrClosed
	}
	task := a.beginTaskLocked(stream)
	a.mu.Unlock()

	go func() {
		defer a.wg.Done()
		msg, err := call(task.ctx)

		a.mu.Lock()
		closed := a.closed
		a.mu.Unlock()

		if !closed {
			text := msg
			if err != nil {
				text = FailureText(err)
			}
			a.emit(Event{Kind: EventAlert, Stream: stream, Text: text})
		}
		task.finish(err)
		if err == nil {
			_, _ = a.RefreshMemoryStatus()
		}
	}()
	return task, nil
}

func (a *Adapter) beginLocked(stream Stream) (*Task, string) {
	task := a.beginTaskLocked(stream)
	indicator := gonanoid.Must()
	a.pending[indicator] = stream
	return task, indicator
}

func (a *Adapter) beginTaskLocked(stream Stream) *Task {
	ctx, cancel := context.WithCancel(a.ctx)
	task := &Task{
		ID:     gonanoid.Must(),
		Stream: stream,
		ctx:    ctx,
		cancel: cancel,
		done:   make(chan struct{}),
	}
	a.wg.Add(1)
	return task
}

func (a *Adapter) appendLocked(sender Sender, text string) Message {
	msg := a.newMessage(sender, text)
	a.messages = append(a.messages, msg)
	return msg
}

func (a *Adapter) newMessage(sender Sender, text string) Message {
	return Message{
		ID:        gonanoid.Must(),
		Sender:    sender,
		Text:      text,
		Timestamp: a.now(),
	}
}

func (a *Adapter) emit(ev Event) {
	if a.onEvent == nil {
		return
	}
	a.emitMu.Lock()
	defer a.emitMu.Unlock()
	a.onEvent(ev)
}

func jobsMessage(result *types.JobSearchResult) string {
	if result == nil || len(result.Jobs) == 0 {
		return "💼 No openings matched your search. Try a broader query."
	}
	var sb strings.Builder
	sb.WriteString("💼 **Here are some openings I found:**\n")
	for _, job := range result.Jobs {
		sb.WriteString("\n- ")
		sb.WriteString(job)
	}
	return sb.String()
}
