package api

// envelope is the common response wrapper the service uses. Every endpoint
// reports success as a boolean and carries its payload in one of the
// endpoint-specific fields.
type envelope struct {
	Success   bool     `json:"success"`
	Error     string   `json:"error,omitempty"`
	Response  string   `json:"response,omitempty"`
	Result    string   `json:"result,omitempty"`
	Message   string   `json:"message,omitempty"`
	Details   string   `json:"details,omitempty"`
	Filename  string   `json:"filename,omitempty"`
	HasResume bool     `json:"has_resume,omitempty"`
	Jobs      []string `json:"jobs,omitempty"`
	Source    string   `json:"source,omitempty"`
	Count     int      `json:"count,omitempty"`
}

// healthResponse is the health endpoint's payload. It is the one endpoint
// that does not use the success envelope.
type healthResponse struct {
	Status  string `json:"status"`
	Service string `json:"service,omitempty"`
}
