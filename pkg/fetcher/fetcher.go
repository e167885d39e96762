// Package fetcher wraps the plain HTTP request/response retrieval used by the
// fetch stage and the summarize utility.
package fetcher

import (
	"fmt"
	"io"
	"net/http"
	"time"
)

// Response captures what callers need from one request: the status line, the
// declared content type, and the full body. Non-2xx responses are returned,
// not converted to errors, so callers can record them.
type Response struct {
	StatusCode  int
	ContentType string
	Body        []byte
}

// OK reports whether the status code is in the 2xx range.
func (r *Response) OK() bool {
	return r.StatusCode >= 200 && r.StatusCode <= 299
}

type Fetcher struct {
	client *http.Client

	// UserAgent, when non-empty, replaces Go's default for every request.
	UserAgent string
}

// New returns a Fetcher whose requests are bounded by timeout, so one slow
// origin cannot stall a stage indefinitely.
func New(timeout time.Duration) *Fetcher {
	return &Fetcher{
		client: &http.Client{Timeout: timeout},
	}
}

// Get retrieves url and returns the raw body. A transport failure or a non-2xx
// status is an error; the per-item loop of the caller records it and moves on.
func (f *Fetcher) Get(url string) ([]byte, error) {
	resp, err := f.GetResponse(url)
	if err != nil {
		return nil, err
	}
	if !resp.OK() {
		return nil, fmt.Errorf("HTTP error: %d", resp.StatusCode)
	}
	return resp.Body, nil
}

// GetResponse retrieves url and returns the response regardless of status
// code. Only transport failures (DNS, connect, timeout, read) are errors.
func (f *Fetcher) GetResponse(url string) (*Response, error) {
	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build HTTP request: %w", err)
	}
	if f.UserAgent != "" {
		req.Header.Set("User-Agent", f.UserAgent)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to make HTTP request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	return &Response{
		StatusCode:  resp.StatusCode,
		ContentType: resp.Header.Get("Content-Type"),
		Body:        body,
	}, nil
}
