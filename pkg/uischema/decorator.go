package uischema

import (
	"fmt"
	"sort"

	"github.com/goliatone/go-joinform/pkg/model"
)

// Decorator applies overlay text and ordering to a form model.
type Decorator struct {
	store *Store
}

// NewDecorator builds a Decorator backed by store. A nil or empty store makes
// the decorator a no-op.
func NewDecorator(store *Store) *Decorator {
	return &Decorator{store: store}
}

// Decorate applies the overlay registered for form.OperationID. Overlay
// entries naming fields the form does not have are reported as errors.
func (d *Decorator) Decorate(form *model.FormModel) error {
	if d == nil || d.store.Empty() || form == nil {
		return nil
	}
	op, ok := d.store.Operation(form.OperationID)
	if !ok {
		return nil
	}

	if op.Form.Title != "" {
		form.Title = op.Form.Title
	}
	if op.Form.Description != "" {
		form.Description = op.Form.Description
	}
	if len(op.Form.Metadata) > 0 {
		if form.Metadata == nil {
			form.Metadata = make(map[string]string, len(op.Form.Metadata))
		}
		for k, v := range op.Form.Metadata {
			form.Metadata[k] = v
		}
	}

	index := make(map[string]int, len(form.Fields))
	for i, field := range form.Fields {
		index[field.Name] = i
	}
	for name := range op.Fields {
		if _, ok := index[name]; !ok {
			return fmt.Errorf("uischema: operation %q (file %s) configures unknown field %q", op.ID, op.Source, name)
		}
	}

	for name, cfg := range op.Fields {
		field := &form.Fields[index[name]]
		if cfg.Label != "" {
			field.Label = cfg.Label
		}
		if cfg.Description != "" {
			field.Description = cfg.Description
		}
		if cfg.Placeholder != "" {
			field.Placeholder = cfg.Placeholder
		}
		if cfg.Widget != "" && !field.IsAttachment() {
			field.Widget = model.Widget(cfg.Widget)
		}
		if cfg.Order != nil {
			field.Order = *cfg.Order
		}
	}

	sort.SliceStable(form.Fields, func(i, j int) bool {
		return form.Fields[i].Order < form.Fields[j].Order
	})
	return nil
}
