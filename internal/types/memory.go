// Package types provides type definitions for structured data used throughout the career agent client.
//
//nolint:revive // types is a standard Go package name pattern
package types

// MemoryStatus is the client-side snapshot of the server's session memory.
// It is replaced wholesale on every successful memory fetch and is the single
// source of truth for whether a resume is loaded.
type MemoryStatus struct {
	ResumeUploaded   bool   `json:"resume_uploaded"`
	ResumeTextLength int    `json:"resume_text_length"`
	ResumeFile       string `json:"resume_file,omitempty"`
}

// UploadResult carries the server's confirmation for a resume upload.
type UploadResult struct {
	Message   string `json:"message"`
	Details   string `json:"details,omitempty"`
	Filename  string `json:"filename,omitempty"`
	HasResume bool   `json:"has_resume"`
}

// JobSearchResult is the server's answer to a job search query.
type JobSearchResult struct {
	Jobs   []string `json:"jobs"`
	Source string   `json:"source,omitempty"`
	Count  int      `json:"count"`
}
