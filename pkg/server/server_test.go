package server_test

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-joinform/pkg/contract"
	"github.com/goliatone/go-joinform/pkg/model"
	"github.com/goliatone/go-joinform/pkg/renderers/html"
	"github.com/goliatone/go-joinform/pkg/server"
	"github.com/goliatone/go-joinform/pkg/submit"
	"github.com/goliatone/go-joinform/pkg/testsupport"
	"github.com/goliatone/go-joinform/pkg/validation"
)

func newServer(t *testing.T, endpoint *testsupport.Endpoint, options ...server.Option) *server.Server {
	t.Helper()
	c, err := contract.Load(context.Background())
	if err != nil {
		t.Fatalf("load contract: %v", err)
	}
	renderer, err := html.New()
	if err != nil {
		t.Fatalf("html renderer: %v", err)
	}
	client := submit.NewClient(endpoint.SubmitURL(), submit.WithTimeout(2*time.Second))
	t.Cleanup(func() { _ = client.Close() })

	options = append([]server.Option{server.WithAssets(html.AssetsFS())}, options...)
	srv, err := server.New(c.Form(), renderer, client, options...)
	if err != nil {
		t.Fatalf("new server: %v", err)
	}
	return srv
}

func validForm() url.Values {
	values := url.Values{}
	for key, value := range testsupport.ValidSubmission().Values() {
		values.Set(key, value)
	}
	return values
}

func postForm(t *testing.T, handler http.Handler, target string, values url.Values) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestServer_GetRendersForm(t *testing.T) {
	endpoint := testsupport.NewEndpoint(t, http.StatusOK)
	handler := newServer(t, endpoint).Handler()

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if got := rec.Header().Get("Content-Type"); !strings.HasPrefix(got, "text/html") {
		t.Fatalf("content type = %q", got)
	}
	if rec.Header().Get("X-Request-ID") == "" {
		t.Fatalf("expected a request id header")
	}
	body := rec.Body.String()
	for _, name := range append(model.FieldNames(), model.AttachmentPhoto, model.AttachmentSignature) {
		if !strings.Contains(body, `name="`+name+`"`) {
			t.Errorf("page is missing input %q", name)
		}
	}
}

func TestServer_GetFormAsJSON(t *testing.T) {
	endpoint := testsupport.NewEndpoint(t, http.StatusOK)
	handler := newServer(t, endpoint).Handler()

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/?format=json", nil))

	if got := rec.Header().Get("Content-Type"); got != "application/json" {
		t.Fatalf("content type = %q", got)
	}
	if !strings.Contains(rec.Body.String(), `"operationId":"`+contract.OperationID+`"`) {
		t.Fatalf("unexpected json body: %s", rec.Body.String())
	}
}

func TestServer_SubmitSuccessClearsForm(t *testing.T) {
	endpoint := testsupport.NewEndpoint(t, http.StatusCreated)
	handler := newServer(t, endpoint).Handler()

	rec := postForm(t, handler, "/", validForm())

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, submit.MessageSuccess) {
		t.Fatalf("success message missing from page")
	}
	if strings.Contains(body, "asha.rao@example.com") {
		t.Fatalf("values should be cleared after a successful submission")
	}

	requests := endpoint.Requests()
	if len(requests) != 1 {
		t.Fatalf("expected 1 request, got %d", len(requests))
	}
	want := testsupport.ValidSubmission().Payload()
	if diff := cmp.Diff(want, requests[0].Payload); diff != "" {
		t.Fatalf("payload mismatch (-want +got):\n%s", diff)
	}
}

func TestServer_MissingFieldKeepsValues(t *testing.T) {
	endpoint := testsupport.NewEndpoint(t, http.StatusOK)
	handler := newServer(t, endpoint).Handler()

	values := validForm()
	values.Set(model.FieldFullName, "")

	rec := postForm(t, handler, "/", values)

	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, validation.MessageMissingRequired) {
		t.Fatalf("missing-required message not rendered")
	}
	if !strings.Contains(body, `value="asha.rao@example.com"`) {
		t.Fatalf("entered values should be preserved")
	}
	if n := len(endpoint.Requests()); n != 0 {
		t.Fatalf("nothing should be sent, got %d requests", n)
	}
}

func TestServer_FormatErrorIsAttachedToField(t *testing.T) {
	endpoint := testsupport.NewEndpoint(t, http.StatusOK)
	handler := newServer(t, endpoint).Handler()

	values := validForm()
	values.Set(model.FieldPhoneNumber, "12345")

	rec := postForm(t, handler, "/", values)

	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `joinform__field--invalid" data-field="phoneNumber"`) {
		t.Fatalf("phone field should be flagged invalid")
	}
}

func TestServer_UnknownGenderCountsAsMissing(t *testing.T) {
	endpoint := testsupport.NewEndpoint(t, http.StatusOK)
	handler := newServer(t, endpoint).Handler()

	values := validForm()
	values.Set(model.FieldGender, "robot")
	values.Set("unexpected", "ignored")

	rec := postForm(t, handler, "/", values)

	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), validation.MessageMissingRequired) {
		t.Fatalf("expected the missing-required message")
	}
}

func TestServer_RejectionRendersFailure(t *testing.T) {
	endpoint := testsupport.NewEndpoint(t, http.StatusBadRequest)
	handler := newServer(t, endpoint).Handler()

	rec := postForm(t, handler, "/", validForm())

	if rec.Code != http.StatusBadGateway {
		t.Fatalf("status = %d, want 502", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, submit.MessageSendFailure) {
		t.Fatalf("failure message missing")
	}
	if !strings.Contains(body, `value="Asha Rao"`) {
		t.Fatalf("values should survive a rejected submission")
	}
}

func TestServer_SanitizesMarkup(t *testing.T) {
	endpoint := testsupport.NewEndpoint(t, http.StatusOK)
	handler := newServer(t, endpoint).Handler()

	values := validForm()
	values.Set(model.FieldJobTitle, `<script>alert(1)</script>Analyst & Lead`)

	rec := postForm(t, handler, "/", values)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	requests := endpoint.Requests()
	if len(requests) != 1 {
		t.Fatalf("expected 1 request, got %d", len(requests))
	}
	if diff := cmp.Diff("Analyst & Lead", requests[0].Payload[model.FieldJobTitle]); diff != "" {
		t.Fatalf("jobTitle mismatch (-want +got):\n%s", diff)
	}
}

func TestServer_MultipartCapturesAttachments(t *testing.T) {
	endpoint := testsupport.NewEndpoint(t, http.StatusBadRequest)
	handler := newServer(t, endpoint).Handler()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	for key, values := range validForm() {
		if err := writer.WriteField(key, values[0]); err != nil {
			t.Fatalf("write field: %v", err)
		}
	}
	part, err := writer.CreateFormFile(model.AttachmentPhoto, "../me.png")
	if err != nil {
		t.Fatalf("create file part: %v", err)
	}
	_, _ = part.Write([]byte("png-bytes"))
	if err := writer.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/", &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadGateway {
		t.Fatalf("status = %d, want 502", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "me.png") {
		t.Fatalf("picked photo should be listed on the page")
	}
	requests := endpoint.Requests()
	if len(requests) != 1 {
		t.Fatalf("expected 1 request, got %d", len(requests))
	}
	if _, ok := requests[0].Payload[model.AttachmentPhoto]; ok {
		t.Fatalf("attachments must not be transmitted")
	}
}

func postWithSession(t *testing.T, handler http.Handler, session string, values url.Values) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.AddCookie(&http.Cookie{Name: server.SessionCookie, Value: session})
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestServer_GetIssuesSessionCookie(t *testing.T) {
	endpoint := testsupport.NewEndpoint(t, http.StatusOK)
	handler := newServer(t, endpoint).Handler()

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	var found bool
	for _, cookie := range rec.Result().Cookies() {
		if cookie.Name == server.SessionCookie && cookie.Value != "" && cookie.HttpOnly {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected a %s cookie", server.SessionCookie)
	}
}

func TestServer_DuplicateSubmitFromSameSession(t *testing.T) {
	endpoint := testsupport.NewEndpoint(t, http.StatusOK)
	handler := newServer(t, endpoint).Handler()
	endpoint.Hold()

	const session = "6f1c2a4e-1d7b-4c55-9a8e-2f4b7c9d0e11"
	first := make(chan *httptest.ResponseRecorder, 1)
	go func() {
		first <- postWithSession(t, handler, session, validForm())
	}()

	deadline := time.Now().Add(2 * time.Second)
	for len(endpoint.Requests()) == 0 {
		if time.Now().After(deadline) {
			endpoint.Release()
			t.Fatalf("first submission never reached the endpoint")
		}
		time.Sleep(5 * time.Millisecond)
	}

	second := postWithSession(t, handler, session, validForm())
	if second.Code != http.StatusConflict {
		endpoint.Release()
		t.Fatalf("duplicate status = %d, want 409", second.Code)
	}
	if !strings.Contains(second.Body.String(), submit.MessageInFlight) {
		endpoint.Release()
		t.Fatalf("in-flight notice missing")
	}
	if !strings.Contains(second.Body.String(), `value="Asha Rao"`) {
		endpoint.Release()
		t.Fatalf("values should be kept on a refused duplicate")
	}

	endpoint.Release()
	select {
	case rec := <-first:
		if rec.Code != http.StatusOK {
			t.Fatalf("first status = %d, want 200", rec.Code)
		}
	case <-time.After(3 * time.Second):
		t.Fatalf("first submission did not finish")
	}
	if n := len(endpoint.Requests()); n != 1 {
		t.Fatalf("expected exactly 1 request, got %d", n)
	}

	again := postWithSession(t, handler, session, validForm())
	if again.Code != http.StatusOK {
		t.Fatalf("session should be free after the first submission finished, got %d", again.Code)
	}
	if n := len(endpoint.Requests()); n != 2 {
		t.Fatalf("expected 2 requests, got %d", n)
	}
}

func TestServer_BodyLimit(t *testing.T) {
	endpoint := testsupport.NewEndpoint(t, http.StatusOK)
	handler := newServer(t, endpoint, server.WithMaxUploadBytes(64)).Handler()

	values := validForm()
	values.Set(model.FieldPermanentAddress, strings.Repeat("a", 512))

	rec := postForm(t, handler, "/", values)
	if rec.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("status = %d, want 413", rec.Code)
	}
	if n := len(endpoint.Requests()); n != 0 {
		t.Fatalf("nothing should be sent, got %d requests", n)
	}
}

func TestServer_ResetRendersEmptyForm(t *testing.T) {
	endpoint := testsupport.NewEndpoint(t, http.StatusOK)
	handler := newServer(t, endpoint).Handler()

	rec := postForm(t, handler, "/reset", validForm())

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if strings.Contains(rec.Body.String(), "Asha Rao") {
		t.Fatalf("reset should render an empty form")
	}
	if n := len(endpoint.Requests()); n != 0 {
		t.Fatalf("reset must not submit, got %d requests", n)
	}
}

func TestServer_HealthAndAssets(t *testing.T) {
	endpoint := testsupport.NewEndpoint(t, http.StatusOK)
	handler := newServer(t, endpoint).Handler()

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if rec.Code != http.StatusOK || rec.Body.String() != "ok" {
		t.Fatalf("healthz = %d %q", rec.Code, rec.Body.String())
	}

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/assets/"+html.StylesheetName, nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("stylesheet status = %d", rec.Code)
	}
}

func TestServer_ServeStopsOnCancel(t *testing.T) {
	endpoint := testsupport.NewEndpoint(t, http.StatusOK)
	srv := newServer(t, endpoint, server.WithTimeouts(0, 0, time.Second))

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Serve(ctx, listener) }()

	resp, err := http.Get("http://" + listener.Addr().String() + "/healthz")
	if err != nil {
		cancel()
		t.Fatalf("get healthz: %v", err)
	}
	payload, _ := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	if string(payload) != "ok" {
		t.Fatalf("healthz body = %q", payload)
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("serve returned %v", err)
		}
	case <-time.After(3 * time.Second):
		t.Fatalf("server did not stop")
	}
}

func TestNew_RequiresCollaborators(t *testing.T) {
	if _, err := server.New(model.FormModel{}, nil, nil); err == nil {
		t.Fatalf("expected an error without renderer")
	}
}
