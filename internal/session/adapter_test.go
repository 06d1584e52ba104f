package session

import (
	"context"
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dhrumil1128/career-ai-agent/internal/api"
	"github.com/dhrumil1128/career-ai-agent/internal/types"
)

// MockCareerService implements CareerService for testing
type MockCareerService struct {
	ChatFunc               func(ctx context.Context, userInput string) (string, error)
	UploadResumeFunc       func(ctx context.Context, path string) (*types.UploadResult, error)
	AnalyzeMatchFunc       func(ctx context.Context, jobDescription string) (string, error)
	SkillGapsFunc          func(ctx context.Context, jobDescription string) (string, error)
	HeatmapFunc            func(ctx context.Context, jobDescription string) (string, error)
	AlternativeRolesFunc   func(ctx context.Context) (string, error)
	InterviewQuestionsFunc func(ctx context.Context, company, role string) (string, error)
	SearchJobsFunc         func(ctx context.Context, query string) (*types.JobSearchResult, error)
	MemoryFunc             func(ctx context.Context) (*types.MemoryStatus, error)
	ClearMemoryFunc        func(ctx context.Context) (string, error)
	ClearResumeFunc        func(ctx context.Context) (string, error)

	mu          sync.Mutex
	chatCalls   int
	memoryCalls int
}

func (m *MockCareerService) Chat(ctx context.Context, userInput string) (string, error) {
	m.mu.Lock()
	m.chatCalls++
	m.mu.Unlock()
	if m.ChatFunc != nil {
		return m.ChatFunc(ctx, userInput)
	}
	return "Mock reply", nil
}

func (m *MockCareerService) UploadResume(ctx context.Context, path string) (*types.UploadResult, error) {
	if m.UploadResumeFunc != nil {
		return m.UploadResumeFunc(ctx, path)
	}
	return &types.UploadResult{
		Message:   "✅ Resume 'resume.pdf' uploaded successfully!",
		HasResume: true,
	}, nil
}

func (m *MockCareerService) AnalyzeMatch(ctx context.Context, jobDescription string) (string, error) {
	if m.AnalyzeMatchFunc != nil {
		return m.AnalyzeMatchFunc(ctx, jobDescription)
	}
	return "Match Percentage: 78%", nil
}

func (m *MockCareerService) SkillGaps(ctx context.Context, jobDescription string) (string, error) {
	if m.SkillGapsFunc != nil {
		return m.SkillGapsFunc(ctx, jobDescription)
	}
	return "Missing: Kubernetes", nil
}

func (m *MockCareerService) Heatmap(ctx context.Context, jobDescription string) (string, error) {
	if m.HeatmapFunc != nil {
		return m.HeatmapFunc(ctx, jobDescription)
	}
	return "Skills: strong", nil
}

func (m *MockCareerService) AlternativeRoles(ctx context.Context) (string, error) {
	if m.AlternativeRolesFunc != nil {
		return m.AlternativeRolesFunc(ctx)
	}
	return "1. Platform Engineer", nil
}

func (m *MockCareerService) InterviewQuestions(ctx context.Context, company, role string) (string, error) {
	if m.InterviewQuestionsFunc != nil {
		return m.InterviewQuestionsFunc(ctx, company, role)
	}
	return "1. Tell me about yourself.", nil
}

func (m *MockCareerService) SearchJobs(ctx context.Context, query string) (*types.JobSearchResult, error) {
	if m.SearchJobsFunc != nil {
		return m.SearchJobsFunc(ctx, query)
	}
	return &types.JobSearchResult{Jobs: []string{"Go Developer at Acme"}, Count: 1}, nil
}

func (m *MockCareerService) Memory(ctx context.Context) (*types.MemoryStatus, error) {
	m.mu.Lock()
	m.memoryCalls++
	m.mu.Unlock()
	if m.MemoryFunc != nil {
		return m.MemoryFunc(ctx)
	}
	return &types.MemoryStatus{ResumeUploaded: true, ResumeTextLength: 100}, nil
}

func (m *MockCareerService) ClearMemory(ctx context.Context) (string, error) {
	if m.ClearMemoryFunc != nil {
		return m.ClearMemoryFunc(ctx)
	}
	return "Memory cleared successfully", nil
}

func (m *MockCareerService) ClearResume(ctx context.Context) (string, error) {
	if m.ClearResumeFunc != nil {
		return m.ClearResumeFunc(ctx)
	}
	return "Resume cleared from memory", nil
}

func (m *MockCareerService) MemoryCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.memoryCalls
}

func (m *MockCareerService) ChatCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.chatCalls
}

// eventRecorder captures adapter events for order assertions.
type eventRecorder struct {
	mu     sync.Mutex
	events []Event
}

func (r *eventRecorder) callback(ev Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, ev)
}

func (r *eventRecorder) snapshot() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Event, len(r.events))
	copy(out, r.events)
	return out
}

func waitTask(t *testing.T, task *Task) error {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	select {
	case <-task.Done():
		return task.Err()
	case <-ctx.Done():
		t.Fatal("task did not settle in time")
		return nil
	}
}

func TestNew_SeedsWelcomeMessage(t *testing.T) {
	a := New(&MockCareerService{}, nil)
	defer a.Close()

	msgs := a.Messages()
	require.Len(t, msgs, 1)
	assert.Equal(t, SenderAgent, msgs[0].Sender)
	assert.Equal(t, WelcomeText, msgs[0].Text)
}

func TestSubmitChatMessage_AppendsUserThenReply(t *testing.T) {
	svc := &MockCareerService{
		ChatFunc: func(_ context.Context, input string) (string, error) {
			assert.Equal(t, "how do I switch to backend?", input)
			return "Start with Go.", nil
		},
	}
	a := New(svc, nil)
	defer a.Close()

	task, err := a.SubmitChatMessage("  how do I switch to backend?  ")
	require.NoError(t, err)
	require.NoError(t, waitTask(t, task))

	msgs := a.Messages()
	require.Len(t, msgs, 3)
	assert.Equal(t, SenderUser, msgs[1].Sender)
	assert.Equal(t, "how do I switch to backend?", msgs[1].Text, "input is trimmed before it enters the transcript")
	assert.Equal(t, SenderAgent, msgs[2].Sender)
	assert.Equal(t, "Start with Go.", msgs[2].Text)
	assert.Equal(t, 0, a.PendingCount())
}

func TestSubmitChatMessage_EmptyRejected(t *testing.T) {
	svc := &MockCareerService{}
	a := New(svc, nil)
	defer a.Close()

	_, err := a.SubmitChatMessage("   \n\t ")
	assert.ErrorIs(t, err, ErrEmptyMessage)
	assert.Len(t, a.Messages(), 1, "transcript untouched")
	assert.Equal(t, 0, svc.ChatCalls())
}

func TestSubmitChatMessage_RefreshesMemoryOnSuccess(t *testing.T) {
	svc := &MockCareerService{}
	a := New(svc, nil)
	defer a.Close()

	task, err := a.SubmitChatMessage("hello")
	require.NoError(t, err)
	require.NoError(t, waitTask(t, task))

	require.Eventually(t, func() bool {
		return svc.MemoryCalls() == 1 && a.ResumeLoaded()
	}, 2*time.Second, 10*time.Millisecond)
	assert.Equal(t, 100, a.MemoryStatus().ResumeTextLength)
}

func TestSubmitChatMessage_ServiceFailureLandsInTranscript(t *testing.T) {
	svc := &MockCareerService{
		ChatFunc: func(_ context.Context, _ string) (string, error) {
			return "", &api.ServiceError{Op: "chat", StatusCode: http.StatusInternalServerError, Message: "model unavailable"}
		},
	}
	a := New(svc, nil)
	defer a.Close()

	task, err := a.SubmitChatMessage("hello")
	require.NoError(t, err)
	assert.Error(t, waitTask(t, task))

	msgs := a.Messages()
	require.Len(t, msgs, 3)
	assert.Equal(t, SenderUser, msgs[1].Sender, "user message stays even when the request fails")
	assert.Equal(t, "⚠️ model unavailable", msgs[2].Text)
	assert.Equal(t, 0, a.PendingCount())
	assert.Equal(t, 0, svc.MemoryCalls(), "no memory refresh after a failed chat")

	// The conversation continues normally afterwards.
	svc.ChatFunc = nil
	task, err = a.SubmitChatMessage("still there?")
	require.NoError(t, err)
	require.NoError(t, waitTask(t, task))
	assert.Equal(t, "Mock reply", a.Messages()[4].Text)
}

func TestSubmitChatMessage_TransportFailureUsesGenericText(t *testing.T) {
	svc := &MockCareerService{
		ChatFunc: func(_ context.Context, _ string) (string, error) {
			return "", &api.TransportError{Op: "chat", URL: "http://localhost:8000/api/chat", Cause: errors.New("connection refused")}
		},
	}
	a := New(svc, nil)
	defer a.Close()

	task, err := a.SubmitChatMessage("hello")
	require.NoError(t, err)
	assert.Error(t, waitTask(t, task))

	msgs := a.Messages()
	assert.Equal(t, TransportFailureText, msgs[len(msgs)-1].Text)
}

func TestSubmitChatMessage_IndicatorClearedBeforeReply(t *testing.T) {
	rec := &eventRecorder{}
	a := New(&MockCareerService{}, &Options{OnEvent: rec.callback})
	defer a.Close()

	task, err := a.SubmitChatMessage("hello")
	require.NoError(t, err)
	require.NoError(t, waitTask(t, task))

	var clearedAt, replyAt int
	for i, ev := range rec.snapshot() {
		switch {
		case ev.Kind == EventPendingCleared && ev.Stream == StreamChat:
			clearedAt = i
		case ev.Kind == EventMessage && ev.Stream == StreamChat && ev.Message.Sender == SenderAgent:
			replyAt = i
		}
	}
	assert.Greater(t, replyAt, clearedAt, "indicator must be cleared before the reply lands")
}

func TestConcurrentStreams_RunIndependently(t *testing.T) {
	releaseChat := make(chan struct{})
	releaseHeatmap := make(chan struct{})
	svc := &MockCareerService{
		ChatFunc: func(ctx context.Context, _ string) (string, error) {
			select {
			case <-releaseChat:
				return "chat done", nil
			case <-ctx.Done():
				return "", ctx.Err()
			}
		},
		HeatmapFunc: func(ctx context.Context, _ string) (string, error) {
			select {
			case <-releaseHeatmap:
				return "heatmap done", nil
			case <-ctx.Done():
				return "", ctx.Err()
			}
		},
	}
	a := New(svc, nil)
	defer a.Close()

	chatTask, err := a.SubmitChatMessage("hello")
	require.NoError(t, err)
	heatTask, err := a.GenerateHeatmap("Senior Go engineer")
	require.NoError(t, err)

	assert.True(t, a.HasPending(StreamChat))
	assert.True(t, a.HasPending(StreamHeatmap))
	assert.Equal(t, 2, a.PendingCount())

	// Settle out of submission order: the heatmap does not wait for chat.
	close(releaseHeatmap)
	require.NoError(t, waitTask(t, heatTask))
	assert.True(t, a.HasPending(StreamChat), "chat still in flight")

	close(releaseChat)
	require.NoError(t, waitTask(t, chatTask))
	assert.Equal(t, 0, a.PendingCount())
}

func TestUploadResume_Success(t *testing.T) {
	path := filepath.Join(t.TempDir(), "resume.pdf")
	require.NoError(t, os.WriteFile(path, []byte("resume body"), 0o644))

	svc := &MockCareerService{}
	rec := &eventRecorder{}
	a := New(svc, &Options{OnEvent: rec.callback})
	defer a.Close()

	task, err := a.UploadResume(path)
	require.NoError(t, err)
	require.NoError(t, waitTask(t, task))

	msgs := a.Messages()
	require.Len(t, msgs, 2)
	assert.Equal(t, "✅ Resume 'resume.pdf' uploaded successfully!", msgs[1].Text)
	assert.False(t, a.Uploading())

	require.Eventually(t, func() bool {
		return svc.MemoryCalls() == 1
	}, 2*time.Second, 10*time.Millisecond)
}

func TestUploadResume_NoFileSelected(t *testing.T) {
	a := New(&MockCareerService{}, nil)
	defer a.Close()

	_, err := a.UploadResume("  ")
	assert.ErrorIs(t, err, ErrNoFileSelected)
}

func TestUploadResume_MissingFile(t *testing.T) {
	a := New(&MockCareerService{}, nil)
	defer a.Close()

	_, err := a.UploadResume(filepath.Join(t.TempDir(), "absent.pdf"))
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNoFileSelected)
}

func TestUploadResume_FailureAlertsWithoutTranscript(t *testing.T) {
	path := filepath.Join(t.TempDir(), "resume.pdf")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))

	svc := &MockCareerService{
		UploadResumeFunc: func(_ context.Context, _ string) (*types.UploadResult, error) {
			return nil, &api.ServiceError{Op: "upload-resume", StatusCode: http.StatusInternalServerError, Message: "could not extract text"}
		},
	}
	rec := &eventRecorder{}
	a := New(svc, &Options{OnEvent: rec.callback})
	defer a.Close()

	task, err := a.UploadResume(path)
	require.NoError(t, err)
	assert.Error(t, waitTask(t, task))

	assert.Len(t, a.Messages(), 1, "upload failures never touch the transcript")
	assert.False(t, a.Uploading())
	assert.Equal(t, 0, svc.MemoryCalls())

	var alertText string
	var alerted bool
	for _, ev := range rec.snapshot() {
		if ev.Kind == EventAlert {
			alertText = ev.Text
			alerted = true
			break
		}
	}
	require.True(t, alerted, "upload failure must raise an alert")
	assert.Equal(t, "⚠️ could not extract text", alertText)
}

func TestUploadResume_SecondUploadRejectedWhileInFlight(t *testing.T) {
	path := filepath.Join(t.TempDir(), "resume.pdf")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))

	release := make(chan struct{})
	svc := &MockCareerService{
		UploadResumeFunc: func(ctx context.Context, _ string) (*types.UploadResult, error) {
			select {
			case <-release:
				return &types.UploadResult{Message: "ok", HasResume: true}, nil
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		},
	}
	a := New(svc, nil)
	defer a.Close()

	first, err := a.UploadResume(path)
	require.NoError(t, err)
	assert.True(t, a.Uploading())

	_, err = a.UploadResume(path)
	assert.ErrorIs(t, err, ErrUploadInProgress)

	close(release)
	require.NoError(t, waitTask(t, first))
	assert.False(t, a.Uploading())

	// A fresh upload is accepted once the first settles.
	again, err := a.UploadResume(path)
	require.NoError(t, err)
	require.NoError(t, waitTask(t, again))
}

func TestAnalysisOps_RequireJobDescription(t *testing.T) {
	a := New(&MockCareerService{}, nil)
	defer a.Close()

	ops := []func(string) (*Task, error){
		a.AnalyzeMatch,
		a.AnalyzeGaps,
		a.GenerateHeatmap,
	}
	for _, op := range ops {
		_, err := op("  ")
		assert.ErrorIs(t, err, ErrEmptyJobDescription)
	}
	assert.Len(t, a.Messages(), 1)
}

func TestGenerateInterviewQuestions_RequiresCompany(t *testing.T) {
	svc := &MockCareerService{
		InterviewQuestionsFunc: func(_ context.Context, company, role string) (string, error) {
			assert.Equal(t, "Acme", company)
			assert.Empty(t, role, "blank role passes through so the service default applies")
			return "1. Why Acme?", nil
		},
	}
	a := New(svc, nil)
	defer a.Close()

	_, err := a.GenerateInterviewQuestions("   ", "Backend")
	assert.ErrorIs(t, err, ErrEmptyCompany)

	task, err := a.GenerateInterviewQuestions("Acme", "  ")
	require.NoError(t, err)
	require.NoError(t, waitTask(t, task))

	msgs := a.Messages()
	assert.Equal(t, "1. Why Acme?", msgs[len(msgs)-1].Text)
}

func TestFetchAlternativeRoles_LandsInTranscript(t *testing.T) {
	a := New(&MockCareerService{}, nil)
	defer a.Close()

	task, err := a.FetchAlternativeRoles()
	require.NoError(t, err)
	require.NoError(t, waitTask(t, task))

	msgs := a.Messages()
	require.Len(t, msgs, 2)
	assert.Equal(t, "1. Platform Engineer", msgs[1].Text)
}

func TestSearchJobs_FormatsListing(t *testing.T) {
	svc := &MockCareerService{
		SearchJobsFunc: func(_ context.Context, query string) (*types.JobSearchResult, error) {
			assert.Equal(t, "golang", query)
			return &types.JobSearchResult{
				Jobs:  []string{"Go Developer at Acme", "Backend Engineer at Initech"},
				Count: 2,
			}, nil
		},
	}
	a := New(svc, nil)
	defer a.Close()

	task, err := a.SearchJobs(" golang ")
	require.NoError(t, err)
	require.NoError(t, waitTask(t, task))

	msgs := a.Messages()
	last := msgs[len(msgs)-1].Text
	assert.Contains(t, last, "Go Developer at Acme")
	assert.Contains(t, last, "Backend Engineer at Initech")
}

func TestSearchJobs_EmptyResults(t *testing.T) {
	svc := &MockCareerService{
		SearchJobsFunc: func(_ context.Context, _ string) (*types.JobSearchResult, error) {
			return &types.JobSearchResult{}, nil
		},
	}
	a := New(svc, nil)
	defer a.Close()

	task, err := a.SearchJobs("")
	require.NoError(t, err)
	require.NoError(t, waitTask(t, task))

	msgs := a.Messages()
	assert.Contains(t, msgs[len(msgs)-1].Text, "No openings matched")
}

func TestRefreshMemoryStatus_ReplacesWholesale(t *testing.T) {
	svc := &MockCareerService{
		MemoryFunc: func(_ context.Context) (*types.MemoryStatus, error) {
			return &types.MemoryStatus{ResumeUploaded: true, ResumeTextLength: 2048, ResumeFile: "resume.pdf"}, nil
		},
	}
	a := New(svc, nil)
	defer a.Close()

	task, err := a.RefreshMemoryStatus()
	require.NoError(t, err)
	require.NoError(t, waitTask(t, task))

	status := a.MemoryStatus()
	assert.True(t, status.ResumeUploaded)
	assert.Equal(t, 2048, status.ResumeTextLength)
	assert.Equal(t, "resume.pdf", status.ResumeFile)

	// A later snapshot with no resume fully replaces the old one.
	svc.MemoryFunc = func(_ context.Context) (*types.MemoryStatus, error) {
		return &types.MemoryStatus{}, nil
	}
	task, err = a.RefreshMemoryStatus()
	require.NoError(t, err)
	require.NoError(t, waitTask(t, task))

	status = a.MemoryStatus()
	assert.False(t, status.ResumeUploaded)
	assert.Equal(t, 0, status.ResumeTextLength)
	assert.Empty(t, status.ResumeFile)
}

func TestRefreshMemoryStatus_FailureIsSilent(t *testing.T) {
	svc := &MockCareerService{}
	rec := &eventRecorder{}
	a := New(svc, &Options{OnEvent: rec.callback})
	defer a.Close()

	// Prime the cache.
	task, err := a.RefreshMemoryStatus()
	require.NoError(t, err)
	require.NoError(t, waitTask(t, task))
	before := a.MemoryStatus()
	eventsBefore := len(rec.snapshot())

	svc.MemoryFunc = func(_ context.Context) (*types.MemoryStatus, error) {
		return nil, &api.TransportError{Op: "memory", URL: "http://localhost:8000/api/memory", Cause: errors.New("connection refused")}
	}
	task, err = a.RefreshMemoryStatus()
	require.NoError(t, err)
	assert.Error(t, waitTask(t, task))

	assert.Equal(t, before, a.MemoryStatus(), "failed refresh leaves the cache untouched")
	assert.Len(t, a.Messages(), 1, "memory failures never touch the transcript")
	assert.Len(t, rec.snapshot(), eventsBefore, "a failed refresh emits nothing")
}

func TestClearServerMemory_AlertsAndRefreshes(t *testing.T) {
	svc := &MockCareerService{}
	rec := &eventRecorder{}
	a := New(svc, &Options{OnEvent: rec.callback})
	defer a.Close()

	task, err := a.ClearServerMemory()
	require.NoError(t, err)
	require.NoError(t, waitTask(t, task))

	require.Eventually(t, func() bool {
		return svc.MemoryCalls() == 1
	}, 2*time.Second, 10*time.Millisecond)

	var alertText string
	for _, ev := range rec.snapshot() {
		if ev.Kind == EventAlert {
			alertText = ev.Text
		}
	}
	assert.Equal(t, "Memory cleared successfully", alertText)
	assert.Len(t, a.Messages(), 1)
}

func TestClearStoredResume_Alerts(t *testing.T) {
	svc := &MockCareerService{}
	rec := &eventRecorder{}
	a := New(svc, &Options{OnEvent: rec.callback})
	defer a.Close()

	task, err := a.ClearStoredResume()
	require.NoError(t, err)
	require.NoError(t, waitTask(t, task))

	var alertText string
	for _, ev := range rec.snapshot() {
		if ev.Kind == EventAlert {
			alertText = ev.Text
		}
	}
	assert.Equal(t, "Resume cleared from memory", alertText)
}

func TestResetTranscript_DeclineLeavesTranscript(t *testing.T) {
	a := New(&MockCareerService{}, nil)
	defer a.Close()

	task, err := a.SubmitChatMessage("hello")
	require.NoError(t, err)
	require.NoError(t, waitTask(t, task))
	before := a.Messages()

	ok := a.ResetTranscript(func() bool { return false })
	assert.False(t, ok)
	assert.Equal(t, before, a.Messages())
}

func TestResetTranscript_ClearsToWelcome(t *testing.T) {
	a := New(&MockCareerService{}, nil)
	defer a.Close()

	task, err := a.SubmitChatMessage("hello")
	require.NoError(t, err)
	require.NoError(t, waitTask(t, task))
	require.Greater(t, len(a.Messages()), 1)

	ok := a.ResetTranscript(func() bool { return true })
	assert.True(t, ok)

	msgs := a.Messages()
	require.Len(t, msgs, 1)
	assert.Equal(t, WelcomeText, msgs[0].Text)
}

func TestResetTranscript_PendingRequestSettlesIntoFreshTranscript(t *testing.T) {
	release := make(chan struct{})
	svc := &MockCareerService{
		HeatmapFunc: func(ctx context.Context, _ string) (string, error) {
			select {
			case <-release:
				return "late heatmap", nil
			case <-ctx.Done():
				return "", ctx.Err()
			}
		},
	}
	a := New(svc, nil)
	defer a.Close()

	task, err := a.GenerateHeatmap("Senior Go engineer")
	require.NoError(t, err)

	require.True(t, a.ResetTranscript(nil))
	close(release)
	require.NoError(t, waitTask(t, task))

	msgs := a.Messages()
	require.Len(t, msgs, 2)
	assert.Equal(t, WelcomeText, msgs[0].Text)
	assert.Equal(t, "late heatmap", msgs[1].Text)
}

func TestTaskCancel_SettlesAsTransportFailure(t *testing.T) {
	svc := &MockCareerService{
		ChatFunc: func(ctx context.Context, _ string) (string, error) {
			<-ctx.Done()
			return "", ctx.Err()
		},
	}
	a := New(svc, nil)
	defer a.Close()

	task, err := a.SubmitChatMessage("hello")
	require.NoError(t, err)

	task.Cancel()
	assert.Error(t, waitTask(t, task))

	msgs := a.Messages()
	assert.Equal(t, TransportFailureText, msgs[len(msgs)-1].Text)
	assert.Equal(t, 0, a.PendingCount())
}

func TestClose_WaitsForInFlightAndRejectsNewOps(t *testing.T) {
	started := make(chan struct{})
	svc := &MockCareerService{
		ChatFunc: func(ctx context.Context, _ string) (string, error) {
			close(started)
			<-ctx.Done()
			return "", ctx.Err()
		},
	}
	a := New(svc, nil)

	task, err := a.SubmitChatMessage("hello")
	require.NoError(t, err)
	<-started

	a.Close()

	select {
	case <-task.Done():
		assert.Error(t, task.Err())
	default:
		t.Fatal("Close must wait for in-flight tasks to settle")
	}

	_, err = a.SubmitChatMessage("hello again")
	assert.ErrorIs(t, err, ErrClosed)
	_, err = a.RefreshMemoryStatus()
	assert.ErrorIs(t, err, ErrClosed)
	assert.False(t, a.ResetTranscript(nil))

	// Close is idempotent.
	a.Close()
}

func TestMessages_ReturnsCopy(t *testing.T) {
	a := New(&MockCareerService{}, nil)
	defer a.Close()

	msgs := a.Messages()
	msgs[0].Text = "tampered"

	assert.Equal(t, WelcomeText, a.Messages()[0].Text)
}

func TestMessageTimestamps_UseClock(t *testing.T) {
	fixed := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	a := New(&MockCareerService{}, &Options{Now: func() time.Time { return fixed }})
	defer a.Close()

	task, err := a.SubmitChatMessage("hello")
	require.NoError(t, err)
	require.NoError(t, waitTask(t, task))

	for _, m := range a.Messages() {
		assert.Equal(t, fixed, m.Timestamp)
	}
}
