package api

import "net/http"

// headerTransport stamps every outgoing request with the client's
// User-Agent and, when configured, the session identifier header.
type headerTransport struct {
	rt        http.RoundTripper
	userAgent string
	sessionID string
}

func (t *headerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req.Header.Set("User-Agent", t.userAgent)
	if t.sessionID != "" {
		req.Header.Set("X-Session-ID", t.sessionID)
	}
	return t.rt.RoundTrip(req)
}
