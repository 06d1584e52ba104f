// Package session implements the client-side view of one conversation with
// the career assistant service: the transcript, per-request pending
// indicators, the cached memory status, and the operations that reconcile
// remote responses into them.
package session

import (
	"context"

	"github.com/dhrumil1128/career-ai-agent/internal/types"
)

// CareerService is the remote surface the adapter drives. *api.Client
// implements it; tests substitute fakes.
type CareerService interface {
	Chat(ctx context.Context, userInput string) (string, error)
	UploadResume(ctx context.Context, path string) (*types.UploadResult, error)
	AnalyzeMatch(ctx context.Context, jobDescription string) (string, error)
	SkillGaps(ctx context.Context, jobDescription string) (string, error)
	Heatmap(ctx context.Context, jobDescription string) (string, error)
	AlternativeRoles(ctx context.Context) (string, error)
	InterviewQuestions(ctx context.Context, company, role string) (string, error)
	SearchJobs(ctx context.Context, query string) (*types.JobSearchResult, error)
	Memory(ctx context.Context) (*types.MemoryStatus, error)
	ClearMemory(ctx context.Context) (string, error)
	ClearResume(ctx context.Context) (string, error)
}
