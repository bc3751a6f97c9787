package uischema_test

import (
	"os"
	"testing"
	"testing/fstest"

	"github.com/goliatone/go-joinform/pkg/contract"
	"github.com/goliatone/go-joinform/pkg/uischema"
)

func TestLoadFS_YAMLAndJSON(t *testing.T) {
	store, err := uischema.LoadFS(os.DirFS("testdata/overlay"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	op, ok := store.Operation(contract.OperationID)
	if !ok {
		t.Fatalf("operation %q not found", contract.OperationID)
	}
	if op.Form.Title != "Welcome aboard" {
		t.Fatalf("title should be stripped of markup, got %q", op.Form.Title)
	}
	if op.Form.Metadata["team"] != "people-ops" {
		t.Fatalf("metadata not parsed: %#v", op.Form.Metadata)
	}
	if got := op.Fields["currentAddress"].Description; got != "Where you live today." {
		t.Fatalf("description = %q", got)
	}
	if order := op.Fields["jobTitle"].Order; order == nil || *order != 0 {
		t.Fatalf("jobTitle order not parsed: %v", order)
	}

	if _, ok := store.Operation("otherOperation"); !ok {
		t.Fatalf("json overlay not loaded")
	}
}

func TestLoadFS_NilAndEmbedded(t *testing.T) {
	store, err := uischema.LoadFS(nil)
	if err != nil || !store.Empty() {
		t.Fatalf("nil filesystem should yield an empty store, got %v", err)
	}

	embedded, err := uischema.LoadFS(uischema.EmbeddedFS())
	if err != nil {
		t.Fatalf("load embedded: %v", err)
	}
	if _, ok := embedded.Operation(contract.OperationID); !ok {
		t.Fatalf("embedded overlay should configure %q", contract.OperationID)
	}
}

func TestLoadFS_Errors(t *testing.T) {
	cases := map[string]fstest.MapFS{
		"empty file": {
			"a.yaml": {Data: []byte("  \n")},
		},
		"invalid yaml": {
			"a.yaml": {Data: []byte("operations: [")},
		},
		"invalid json": {
			"a.json": {Data: []byte("{")},
		},
		"duplicate operation": {
			"a.yaml": {Data: []byte("operations:\n  submitEmployee: {}\n")},
			"b.yaml": {Data: []byte("operations:\n  submitEmployee: {}\n")},
		},
		"negative order": {
			"a.yaml": {Data: []byte("operations:\n  submitEmployee:\n    fields:\n      fullName:\n        order: -1\n")},
		},
	}
	for name, fsys := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := uischema.LoadFS(fsys); err == nil {
				t.Fatalf("expected an error")
			}
		})
	}
}

func TestLoadFS_SkipsOtherFiles(t *testing.T) {
	store, err := uischema.LoadFS(fstest.MapFS{
		"README.md": {Data: []byte("# notes")},
	})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !store.Empty() {
		t.Fatalf("non-schema files should be ignored")
	}
}
