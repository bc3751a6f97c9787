package uischema_test

import (
	"context"
	"os"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-joinform/pkg/contract"
	"github.com/goliatone/go-joinform/pkg/model"
	"github.com/goliatone/go-joinform/pkg/uischema"
)

func loadForm(t *testing.T) model.FormModel {
	t.Helper()
	c, err := contract.Load(context.Background())
	if err != nil {
		t.Fatalf("load contract: %v", err)
	}
	return c.Form()
}

func decorate(t *testing.T, dir string, form *model.FormModel) error {
	t.Helper()
	store, err := uischema.LoadFS(os.DirFS(dir))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	return uischema.NewDecorator(store).Decorate(form)
}

func TestDecorate_AppliesOverlay(t *testing.T) {
	form := loadForm(t)
	if err := decorate(t, "testdata/overlay", &form); err != nil {
		t.Fatalf("decorate: %v", err)
	}

	if form.Title != "Welcome aboard" {
		t.Fatalf("title = %q", form.Title)
	}
	if form.Metadata["team"] != "people-ops" {
		t.Fatalf("metadata = %#v", form.Metadata)
	}

	first := []string{form.Fields[0].Name, form.Fields[1].Name}
	if diff := cmp.Diff([]string{model.FieldJobTitle, model.FieldFullName}, first); diff != "" {
		t.Fatalf("reordered fields mismatch (-want +got):\n%s", diff)
	}

	jobTitle, _ := form.Field(model.FieldJobTitle)
	if jobTitle.Label != "Job Title" {
		t.Fatalf("jobTitle label = %q", jobTitle.Label)
	}
	current, _ := form.Field(model.FieldCurrentAddress)
	if current.Widget != model.WidgetText {
		t.Fatalf("currentAddress widget = %q", current.Widget)
	}
}

func TestDecorate_UnknownFieldFails(t *testing.T) {
	form := loadForm(t)
	err := decorate(t, "testdata/unknown", &form)
	if err == nil || !strings.Contains(err.Error(), "nickname") {
		t.Fatalf("expected unknown field error, got %v", err)
	}
}

func TestDecorate_EmbeddedOverlayKeepsLabelsAndOrder(t *testing.T) {
	form := loadForm(t)
	before := make([]string, 0, len(form.Fields))
	for _, field := range form.Fields {
		before = append(before, field.Name+"="+field.Label)
	}

	store, err := uischema.LoadFS(uischema.EmbeddedFS())
	if err != nil {
		t.Fatalf("load embedded: %v", err)
	}
	if err := uischema.NewDecorator(store).Decorate(&form); err != nil {
		t.Fatalf("decorate: %v", err)
	}

	after := make([]string, 0, len(form.Fields))
	for _, field := range form.Fields {
		after = append(after, field.Name+"="+field.Label)
	}
	if diff := cmp.Diff(before, after); diff != "" {
		t.Fatalf("labels or order changed (-want +got):\n%s", diff)
	}

	pan, _ := form.Field(model.FieldPANNumber)
	if pan.Placeholder != "ABCDE1234F" {
		t.Fatalf("PANNumber placeholder = %q", pan.Placeholder)
	}
}

func TestDecorate_NoOps(t *testing.T) {
	form := loadForm(t)
	want := loadForm(t)

	if err := uischema.NewDecorator(nil).Decorate(&form); err != nil {
		t.Fatalf("nil store: %v", err)
	}
	form.OperationID = "somethingElse"
	want.OperationID = "somethingElse"
	store, _ := uischema.LoadFS(uischema.EmbeddedFS())
	if err := uischema.NewDecorator(store).Decorate(&form); err != nil {
		t.Fatalf("unmatched operation: %v", err)
	}
	if diff := cmp.Diff(want, form); diff != "" {
		t.Fatalf("form changed (-want +got):\n%s", diff)
	}
}
