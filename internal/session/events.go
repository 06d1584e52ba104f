package session

import "github.com/dhrumil1128/career-ai-agent/internal/types"

// EventKind identifies the adapter state change an Event describes.
type EventKind string

const (
	// EventMessage fires when a message is appended to the transcript.
	EventMessage EventKind = "message"
	// EventPending fires when a request starts and shows its indicator.
	EventPending EventKind = "pending"
	// EventPendingCleared fires when an indicator is removed. For requests
	// that produce a transcript message it always precedes that message's
	// EventMessage.
	EventPendingCleared EventKind = "pending_cleared"
	// EventMemory fires when the cached memory status is replaced.
	EventMemory EventKind = "memory"
	// EventAlert fires for blocking notifications outside the transcript,
	// such as upload failures.
	EventAlert EventKind = "alert"
	// EventReset fires when the transcript is cleared back to the welcome
	// message. Message carries the fresh welcome entry.
	EventReset EventKind = "reset"
)

// Event describes one adapter state change.
type Event struct {
	Kind      EventKind
	Stream    Stream
	Message   *Message
	Indicator string
	Memory    *types.MemoryStatus
	Text      string
}

// EventCallback receives adapter events. Events are delivered one at a time
// on the goroutine that produced them; implementations should return quickly
// and must not invoke adapter operations synchronously.
type EventCallback func(Event)
