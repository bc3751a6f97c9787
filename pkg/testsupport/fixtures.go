// Package testsupport offers fixtures shared by package tests: a well-formed
// onboarding record and a recording stand-in for the onboarding endpoint.
package testsupport

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/goliatone/go-joinform/pkg/model"
)

// ValidSubmission returns a record that passes every validator.
func ValidSubmission() model.EmployeeSubmission {
	return model.EmployeeSubmission{
		FullName:         "Asha Rao",
		Gender:           model.GenderFemale,
		EmailAddress:     "asha.rao@example.com",
		PhoneNumber:      "9876543210",
		PermanentAddress: "12 MG Road, Bengaluru",
		CurrentAddress:   "4 Park Street, Kolkata",
		DateOfJoining:    "2024-07-01",
		JobTitle:         "Analyst",
		Department:       "Finance",
		Salary:           "12.5",
		AadharNumber:     "123456789012",
		PANNumber:        "ABCDE1234F",
		Experience:       "3",
	}
}

// RecordedRequest captures what the endpoint stub received.
type RecordedRequest struct {
	Method  string
	Path    string
	Header  http.Header
	Body    []byte
	Payload map[string]any
}

// Endpoint is an httptest server standing in for the onboarding backend.
type Endpoint struct {
	*httptest.Server

	mu       sync.Mutex
	status   int
	requests []RecordedRequest
	hold     chan struct{}
}

// NewEndpoint starts a stub that answers every request with status. The
// server is closed when the test finishes.
func NewEndpoint(t *testing.T, status int) *Endpoint {
	t.Helper()

	e := &Endpoint{status: status}
	e.Server = httptest.NewServer(http.HandlerFunc(e.serve))
	t.Cleanup(e.Close)
	t.Cleanup(e.Release)
	return e
}

// SubmitURL returns the submit URL of the stub.
func (e *Endpoint) SubmitURL() string {
	return e.Server.URL + "/submit"
}

// SetStatus changes the status returned for subsequent requests.
func (e *Endpoint) SetStatus(status int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.status = status
}

// Hold blocks responses until Release is called, letting tests observe an
// in-flight submission.
func (e *Endpoint) Hold() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.hold = make(chan struct{})
}

// Release unblocks held responses.
func (e *Endpoint) Release() {
	e.mu.Lock()
	hold := e.hold
	e.hold = nil
	e.mu.Unlock()
	if hold != nil {
		close(hold)
	}
}

// Requests returns a copy of the recorded requests.
func (e *Endpoint) Requests() []RecordedRequest {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]RecordedRequest(nil), e.requests...)
}

func (e *Endpoint) serve(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)
	rec := RecordedRequest{
		Method: r.Method,
		Path:   r.URL.Path,
		Header: r.Header.Clone(),
		Body:   body,
	}
	var payload map[string]any
	if err := json.NewDecoder(bytes.NewReader(body)).Decode(&payload); err == nil {
		rec.Payload = payload
	}

	e.mu.Lock()
	e.requests = append(e.requests, rec)
	status := e.status
	hold := e.hold
	e.mu.Unlock()

	if hold != nil {
		select {
		case <-hold:
		case <-r.Context().Done():
			return
		}
	}

	w.WriteHeader(status)
	_, _ = w.Write([]byte(`{"ok":true}`))
}

// Context returns a background context for tests.
func Context() context.Context {
	return context.Background()
}

// CaptureTemplateOutput executes a render function that writes to an io.Writer,
// returning both the string result and the writer contents. Tests can assert
// the renderer returns and writes the same payload without duplicating buffer
// setup.
func CaptureTemplateOutput(t *testing.T, render func(io.Writer) (string, error)) (string, string) {
	t.Helper()

	var buf bytes.Buffer
	out, err := render(&buf)
	if err != nil {
		t.Fatalf("render template: %v", err)
	}

	return out, buf.String()
}
