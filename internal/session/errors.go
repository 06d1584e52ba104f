package session

import (
	"errors"

	"github.com/dhrumil1128/career-ai-agent/internal/api"
)

// Precondition errors returned before any request is started. The caller
// surfaces these directly; they never touch the transcript.
var (
	ErrEmptyMessage        = errors.New("chat message is empty")
	ErrEmptyJobDescription = errors.New("job description is required")
	ErrEmptyCompany        = errors.New("company is required")
	ErrNoFileSelected      = errors.New("no resume file selected")
	ErrUploadInProgress    = errors.New("a resume upload is already in progress")
	ErrClosed              = errors.New("session is closed")
)

// TransportFailureText is shown when the service cannot be reached or its
// response cannot be read.
const TransportFailureText = "⚠️ Could not reach the career service. Check your connection and try again."

// FailureText maps a request error to the text a user sees. Service-reported
// failures surface the service's own error string; everything else collapses
// to the generic transport failure text.
func FailureText(err error) string {
	if api.IsService(err) {
		msg := api.ServiceMessage(err)
		if msg == "" {
			msg = err.Error()
		}
		return "⚠️ " + msg
	}
	return TransportFailureText
}
