package contract

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-joinform/pkg/model"
	"github.com/goliatone/go-joinform/pkg/widgets"
)

//go:embed openapi.yaml
var document []byte

const (
	// OperationID names the submit operation inside the embedded document.
	OperationID = "submitEmployee"
	// SubmitPath is the path the backend accepts submissions on.
	SubmitPath = "/submit"

	extLabel       = "x-formgen-label"
	extWidget      = "x-formgen-widget"
	extOrder       = "x-formgen-order"
	extPlaceholder = "x-formgen-placeholder"
	extMandatory   = "x-formgen-mandatory"
	extAttachments = "x-formgen-attachments"
)

var (
	// ErrOperationMissing indicates the document lacks the submit operation.
	ErrOperationMissing = errors.New("contract: submit operation not declared")
	// ErrSchemaMissing indicates the submit operation has no JSON request schema.
	ErrSchemaMissing = errors.New("contract: request schema not declared")
)

// Contract wraps the parsed document and the request schema of the submit
// operation.
type Contract struct {
	doc       *openapi3.T
	operation *openapi3.Operation
	schema    *openapi3.Schema
	server    string
}

// Load parses and validates the embedded document.
func Load(ctx context.Context) (*Contract, error) {
	return LoadData(ctx, document)
}

// Raw returns a copy of the embedded document.
func Raw() []byte {
	return append([]byte(nil), document...)
}

// LoadData parses raw as an OpenAPI document and resolves the submit
// operation.
func LoadData(ctx context.Context, raw []byte) (*Contract, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(raw) == 0 {
		return nil, errors.New("contract: document payload is empty")
	}

	loader := &openapi3.Loader{Context: ctx}
	doc, err := loader.LoadFromData(raw)
	if err != nil {
		return nil, fmt.Errorf("contract: load document: %w", err)
	}
	if err := doc.Validate(ctx, openapi3.DisableExamplesValidation()); err != nil {
		return nil, fmt.Errorf("contract: validate: %w", err)
	}

	var item *openapi3.PathItem
	if doc.Paths != nil {
		item = doc.Paths.Value(SubmitPath)
	}
	if item == nil || item.Post == nil || item.Post.OperationID != OperationID {
		return nil, ErrOperationMissing
	}

	schema, err := requestSchema(item.Post.RequestBody)
	if err != nil {
		return nil, err
	}

	var server string
	if len(doc.Servers) > 0 && doc.Servers[0] != nil {
		server = strings.TrimRight(doc.Servers[0].URL, "/")
	}

	return &Contract{
		doc:       doc,
		operation: item.Post,
		schema:    schema,
		server:    server,
	}, nil
}

func requestSchema(body *openapi3.RequestBodyRef) (*openapi3.Schema, error) {
	if body == nil || body.Value == nil {
		return nil, ErrSchemaMissing
	}
	mt, ok := body.Value.Content["application/json"]
	if !ok || mt == nil || mt.Schema == nil || mt.Schema.Value == nil {
		return nil, ErrSchemaMissing
	}
	return mt.Schema.Value, nil
}

// Endpoint returns the absolute URL of the submit operation as published by
// the first server entry.
func (c *Contract) Endpoint() string {
	return c.server + SubmitPath
}

// PropertyNames lists the request properties in sorted order.
func (c *Contract) PropertyNames() []string {
	names := make([]string, 0, len(c.schema.Properties))
	for name := range c.schema.Properties {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// CheckPayload validates an outgoing JSON object against the request schema.
func (c *Contract) CheckPayload(payload map[string]any) error {
	if payload == nil {
		return errors.New("contract: payload is nil")
	}
	if err := c.schema.VisitJSON(payload, openapi3.MultiErrors()); err != nil {
		return fmt.Errorf("contract: payload rejected: %w", err)
	}
	return nil
}

// Form projects the request schema into an ordered form model. Attachment
// pickers declared on the operation are appended after the text inputs.
func (c *Contract) Form() model.FormModel {
	form := model.FormModel{
		OperationID: c.operation.OperationID,
		Endpoint:    c.Endpoint(),
		Method:      "POST",
		Title:       c.operation.Summary,
	}
	if c.doc.Info != nil {
		form.Description = c.doc.Info.Description
		form.Metadata = map[string]string{"version": c.doc.Info.Version}
	}

	labeler := model.DefaultLabeler
	for name, ref := range c.schema.Properties {
		if ref == nil || ref.Value == nil {
			continue
		}
		form.Fields = append(form.Fields, fieldFromSchema(name, ref.Value, labeler))
	}
	form.Fields = append(form.Fields, attachmentFields(c.operation.Extensions, labeler)...)

	sort.SliceStable(form.Fields, func(i, j int) bool {
		if form.Fields[i].Order != form.Fields[j].Order {
			return form.Fields[i].Order < form.Fields[j].Order
		}
		return form.Fields[i].Name < form.Fields[j].Name
	})
	return form
}

func fieldFromSchema(name string, schema *openapi3.Schema, labeler func(string) string) model.Field {
	field := model.Field{
		Name:        name,
		Type:        model.FieldTypeString,
		Format:      schema.Format,
		Description: schema.Description,
		Order:       len(model.FieldNames()),
	}
	if label, ok := schema.Extensions[extLabel].(string); ok && label != "" {
		field.Label = label
	} else {
		field.Label = labeler(name)
	}
	if widget, ok := schema.Extensions[extWidget].(string); ok && widget != "" {
		field.Widget = model.Widget(widget)
	}
	if placeholder, ok := schema.Extensions[extPlaceholder].(string); ok {
		field.Placeholder = placeholder
	}
	if order, ok := intValue(schema.Extensions[extOrder]); ok {
		field.Order = order
	}
	if mandatory, ok := schema.Extensions[extMandatory].(bool); ok {
		field.Required = mandatory
	}
	if len(schema.Enum) > 0 {
		field.Type = model.FieldTypeEnum
		for _, value := range schema.Enum {
			if s, ok := value.(string); ok {
				field.Enum = append(field.Enum, s)
			}
		}
	}

	field.Widget, _ = widgets.Default().Resolve(field)
	if field.Type == model.FieldTypeString {
		switch field.Widget {
		case model.WidgetDate:
			field.Type = model.FieldTypeDate
		case model.WidgetNumber:
			field.Type = model.FieldTypeNumber
		}
	}
	return field
}

func attachmentFields(extensions map[string]any, labeler func(string) string) []model.Field {
	entries, ok := extensions[extAttachments].([]any)
	if !ok {
		return nil
	}
	fields := make([]model.Field, 0, len(entries))
	for i, entry := range entries {
		item, ok := entry.(map[string]any)
		if !ok {
			continue
		}
		name, _ := item["name"].(string)
		if name == "" {
			continue
		}
		field := model.Field{
			Name:   name,
			Type:   model.FieldTypeFile,
			Widget: model.WidgetFile,
			Order:  len(model.FieldNames()) + i,
		}
		if label, ok := item["label"].(string); ok && label != "" {
			field.Label = label
		} else {
			field.Label = labeler(name)
		}
		if accept, ok := item["accept"].(string); ok {
			field.Accept = accept
		}
		if order, ok := intValue(item["order"]); ok {
			field.Order = order
		}
		fields = append(fields, field)
	}
	return fields
}

func intValue(value any) (int, bool) {
	switch v := value.(type) {
	case int:
		return v, true
	case int64:
		return int(v), true
	case float64:
		return int(v), true
	default:
		return 0, false
	}
}
