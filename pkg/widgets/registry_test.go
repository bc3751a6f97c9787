package widgets

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-joinform/pkg/model"
)

func TestResolve_ExplicitWidgetWins(t *testing.T) {
	reg := NewRegistry()
	field := model.Field{
		Type:   model.FieldTypeString,
		Format: "email",
		Widget: model.WidgetTextArea,
	}

	if got, ok := reg.Resolve(field); !ok || got != model.WidgetTextArea {
		t.Fatalf("expected explicit widget to win, got %q (ok=%v)", got, ok)
	}
}

func TestResolve_Builtins(t *testing.T) {
	reg := NewRegistry()

	cases := []struct {
		name   string
		field  model.Field
		expect model.Widget
	}{
		{
			name:   "file picker",
			field:  model.Field{Type: model.FieldTypeFile},
			expect: model.WidgetFile,
		},
		{
			name:   "short enum radio",
			field:  model.Field{Type: model.FieldTypeEnum, Enum: []string{"male", "female", "other"}},
			expect: model.WidgetRadio,
		},
		{
			name:   "date format",
			field:  model.Field{Type: model.FieldTypeString, Format: "date"},
			expect: model.WidgetDate,
		},
		{
			name:   "email format",
			field:  model.Field{Type: model.FieldTypeString, Format: "Email"},
			expect: model.WidgetEmail,
		},
		{
			name:   "phone format",
			field:  model.Field{Type: model.FieldTypeString, Format: "phone"},
			expect: model.WidgetTel,
		},
		{
			name:   "number type",
			field:  model.Field{Type: model.FieldTypeNumber},
			expect: model.WidgetNumber,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := reg.Resolve(tc.field)
			if !ok {
				t.Fatalf("expected a match")
			}
			if got != tc.expect {
				t.Fatalf("expected %q, got %q", tc.expect, got)
			}
		})
	}
}

func TestResolve_FallsBackToText(t *testing.T) {
	reg := NewRegistry()

	got, ok := reg.Resolve(model.Field{Type: model.FieldTypeString})
	if ok {
		t.Fatalf("expected no matcher to apply")
	}
	if got != model.WidgetText {
		t.Fatalf("expected text fallback, got %q", got)
	}

	long := model.Field{Type: model.FieldTypeEnum, Enum: []string{"a", "b", "c", "d", "e", "f"}}
	if got, _ := reg.Resolve(long); got != model.WidgetText {
		t.Fatalf("long enums should not render as radios, got %q", got)
	}
}

func TestRegister_PriorityAndOrder(t *testing.T) {
	reg := &Registry{}
	always := func(model.Field) bool { return true }
	reg.Register("first", 10, always)
	reg.Register("second", 10, always)
	reg.Register("  ", 100, always)
	reg.Register("ignored", 100, nil)

	if got, _ := reg.Resolve(model.Field{}); got != "first" {
		t.Fatalf("ties should keep registration order, got %q", got)
	}

	reg.Register("urgent", 20, always)
	if got, _ := reg.Resolve(model.Field{}); got != "urgent" {
		t.Fatalf("higher priority should win, got %q", got)
	}
}

func TestDecorate(t *testing.T) {
	form := model.FormModel{Fields: []model.Field{
		{Name: "emailAddress", Format: "email"},
		{Name: "currentAddress", Widget: model.WidgetTextArea},
		{Name: "jobTitle"},
	}}

	Default().Decorate(&form)

	got := make([]model.Widget, 0, len(form.Fields))
	for _, field := range form.Fields {
		got = append(got, field.Widget)
	}
	want := []model.Widget{model.WidgetEmail, model.WidgetTextArea, model.WidgetText}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("widgets mismatch (-want +got):\n%s", diff)
	}
}
