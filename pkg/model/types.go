package model

// FieldType is the simplified enum for form-friendly field kinds.
type FieldType string

const (
	FieldTypeString FieldType = "string"
	FieldTypeNumber FieldType = "number"
	FieldTypeDate   FieldType = "date"
	FieldTypeEnum   FieldType = "enum"
	FieldTypeFile   FieldType = "file"
)

// Widget identifies the input control a renderer should emit for a field.
type Widget string

const (
	WidgetText     Widget = "text"
	WidgetEmail    Widget = "email"
	WidgetTel      Widget = "tel"
	WidgetTextArea Widget = "textarea"
	WidgetDate     Widget = "date"
	WidgetNumber   Widget = "number"
	WidgetRadio    Widget = "radio"
	WidgetFile     Widget = "file"
)

// Field models an individual input inside the onboarding form. Struct fields
// are annotated so renderers can serialise them directly when needed.
type Field struct {
	Name        string            `json:"name"`
	Type        FieldType         `json:"type"`
	Widget      Widget            `json:"widget"`
	Required    bool              `json:"required"`
	Label       string            `json:"label,omitempty"`
	Placeholder string            `json:"placeholder,omitempty"`
	Format      string            `json:"format,omitempty"`
	Description string            `json:"description,omitempty"`
	Accept      string            `json:"accept,omitempty"`
	Enum        []string          `json:"enum,omitempty"`
	Order       int               `json:"order"`
	Metadata    map[string]string `json:"metadata,omitempty"`
}

// IsAttachment reports whether the field captures a file instead of text.
func (f Field) IsAttachment() bool {
	return f.Type == FieldTypeFile
}

// FormModel is the top-level representation renderers consume.
type FormModel struct {
	OperationID string            `json:"operationId"`
	Endpoint    string            `json:"endpoint"`
	Method      string            `json:"method"`
	Title       string            `json:"title,omitempty"`
	Description string            `json:"description,omitempty"`
	Fields      []Field           `json:"fields"`
	Metadata    map[string]string `json:"metadata,omitempty"`
}

// Field returns the descriptor registered under name.
func (m FormModel) Field(name string) (Field, bool) {
	for _, field := range m.Fields {
		if field.Name == name {
			return field, true
		}
	}
	return Field{}, false
}

// InputFields returns the text-bearing fields, skipping attachments.
func (m FormModel) InputFields() []Field {
	out := make([]Field, 0, len(m.Fields))
	for _, field := range m.Fields {
		if field.IsAttachment() {
			continue
		}
		out = append(out, field)
	}
	return out
}

// AttachmentFields returns the file pickers declared on the form.
func (m FormModel) AttachmentFields() []Field {
	var out []Field
	for _, field := range m.Fields {
		if field.IsAttachment() {
			out = append(out, field)
		}
	}
	return out
}
