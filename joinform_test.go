package joinform_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	joinform "github.com/goliatone/go-joinform"
	"github.com/goliatone/go-joinform/pkg/config"
	"github.com/goliatone/go-joinform/pkg/model"
	"github.com/goliatone/go-joinform/pkg/testsupport"
)

func newApp(t *testing.T, endpoint string) *joinform.App {
	t.Helper()
	cfg := config.Default()
	cfg.Endpoint.URL = endpoint
	app, err := joinform.NewApp(context.Background(), cfg, nil)
	if err != nil {
		t.Fatalf("new app: %v", err)
	}
	t.Cleanup(func() { _ = app.Close() })
	return app
}

func TestNewApp_RegistersRenderers(t *testing.T) {
	app := newApp(t, "https://example.com/submit")

	if diff := cmp.Diff([]string{"html", "tui"}, app.Renderers.List()); diff != "" {
		t.Fatalf("renderers mismatch (-want +got):\n%s", diff)
	}
	if got := app.Client.Endpoint(); got != "https://example.com/submit" {
		t.Fatalf("client endpoint = %q", got)
	}
	if len(app.Form().Fields) != len(model.FieldNames())+2 {
		t.Fatalf("form has %d fields", len(app.Form().Fields))
	}
}

func TestNewApp_AppliesOverlay(t *testing.T) {
	app := newApp(t, "https://example.com/submit")

	pan, ok := app.Form().Field(model.FieldPANNumber)
	if !ok {
		t.Fatalf("PANNumber field missing")
	}
	if pan.Placeholder == "" || pan.Description == "" {
		t.Fatalf("bundled overlay not applied: %+v", pan)
	}
}

func TestNewApp_OverlayDirectory(t *testing.T) {
	dir := t.TempDir()
	overlay := "operations:\n  submitEmployee:\n    form:\n      title: Join Acme\n"
	if err := os.WriteFile(filepath.Join(dir, "acme.yaml"), []byte(overlay), 0o600); err != nil {
		t.Fatalf("write overlay: %v", err)
	}

	cfg := config.Default()
	cfg.UI.SchemaDir = dir
	app, err := joinform.NewApp(context.Background(), cfg, nil)
	if err != nil {
		t.Fatalf("new app: %v", err)
	}
	if app.Form().Title != "Join Acme" {
		t.Fatalf("title = %q", app.Form().Title)
	}

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(bad, []byte("operations:\n  submitEmployee:\n    fields:\n      nickname: {}\n"), 0o600); err != nil {
		t.Fatalf("write overlay: %v", err)
	}
	cfg.UI.SchemaDir = filepath.Dir(bad)
	if _, err := joinform.NewApp(context.Background(), cfg, nil); err == nil {
		t.Fatalf("expected an unknown field error")
	}
}

func TestNewApp_RequiresConfig(t *testing.T) {
	if _, err := joinform.NewApp(context.Background(), nil, nil); err == nil {
		t.Fatalf("expected an error for a nil config")
	}
}

func TestApp_ServerSubmitsThroughClient(t *testing.T) {
	endpoint := testsupport.NewEndpoint(t, http.StatusOK)
	app := newApp(t, endpoint.SubmitURL())

	srv, err := app.NewServer()
	if err != nil {
		t.Fatalf("new server: %v", err)
	}

	values := url.Values{}
	for key, value := range testsupport.ValidSubmission().Values() {
		values.Set(key, value)
	}
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if n := len(endpoint.Requests()); n != 1 {
		t.Fatalf("expected 1 request, got %d", n)
	}
}

func TestApp_NewSession(t *testing.T) {
	app := newApp(t, "https://example.com/submit")

	session, err := app.NewSession()
	if err != nil {
		t.Fatalf("new session: %v", err)
	}
	if session.Pipeline() == nil {
		t.Fatalf("session should own a pipeline")
	}
}
