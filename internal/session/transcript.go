package session

import "time"

// WelcomeText seeds every fresh or reset transcript.
const WelcomeText = "👋 Hi! I'm your Career AI Assistant. Upload your resume and ask me about jobs, resumes, or interviews."

// Sender identifies who produced a transcript message.
type Sender string

const (
	SenderUser  Sender = "user"
	SenderAgent Sender = "agent"
)

// Message is a single transcript entry. Messages are immutable once
// appended; Text holds the raw message text, never a rendered form.
type Message struct {
	ID        string
	Sender    Sender
	Text      string
	Timestamp time.Time
}

// Stream identifies one logical request stream. Streams are independent:
// requests on different streams run concurrently and never queue behind each
// other.
type Stream string

const (
	StreamChat      Stream = "chat"
	StreamUpload    Stream = "upload"
	StreamMatch     Stream = "match"
	StreamGaps      Stream = "gaps"
	StreamRoles     Stream = "roles"
	StreamQuestions Stream = "questions"
	StreamHeatmap   Stream = "heatmap"
	StreamJobs      Stream = "jobs"
	StreamMemory    Stream = "memory"
)
