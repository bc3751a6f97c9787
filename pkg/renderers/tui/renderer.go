package tui

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/goliatone/go-joinform/pkg/model"
	"github.com/goliatone/go-joinform/pkg/render"
)

// Name is the registry key of the terminal renderer.
const Name = "tui"

// Renderer prints a plain-text review of the form: one line per field with
// its current value, followed by any feedback from the last attempt.
type Renderer struct {
	theme Theme
}

var _ render.Renderer = (*Renderer)(nil)

// NewRenderer builds a summary renderer using theme prefixes.
func NewRenderer(theme Theme) *Renderer {
	return &Renderer{theme: theme}
}

func (r *Renderer) Name() string {
	return Name
}

func (r *Renderer) ContentType() string {
	return "text/plain; charset=utf-8"
}

func (r *Renderer) Render(ctx context.Context, form model.FormModel, options render.RenderOptions) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if options.Notice != nil && options.Notice.Message != "" {
		buf.WriteString(r.noticeLine(*options.Notice))
		buf.WriteString("\n\n")
	}
	if form.Title != "" {
		buf.WriteString(form.Title)
		buf.WriteString("\n")
	}

	tw := tabwriter.NewWriter(&buf, 0, 4, 2, ' ', 0)
	for _, field := range form.Fields {
		value := options.Values[field.Name]
		if field.IsAttachment() {
			value = describeFile(attachmentFor(options.Attachments, field.Name))
		}
		value = strings.ReplaceAll(strings.TrimSpace(value), "\n", ", ")
		if value == "" {
			value = "-"
		}
		label := field.Label
		if field.Required {
			label += " *"
		}
		fmt.Fprintf(tw, "  %s\t%s\n", label, value)
		for _, message := range options.Errors.FieldMessages(field.Name) {
			fmt.Fprintf(tw, "  \t%s%s\n", r.theme.ErrorPrefix, message)
		}
	}
	if err := tw.Flush(); err != nil {
		return nil, fmt.Errorf("tui: flush summary: %w", err)
	}

	for _, message := range options.Errors.Form {
		buf.WriteString(r.theme.ErrorPrefix)
		buf.WriteString(message)
		buf.WriteString("\n")
	}
	return buf.Bytes(), nil
}

func (r *Renderer) noticeLine(n render.Notification) string {
	if n.Level == render.LevelSuccess {
		return r.theme.SuccessPrefix + n.Message
	}
	return r.theme.ErrorPrefix + n.Message
}

func attachmentFor(attachments model.Attachments, name string) *model.File {
	switch name {
	case model.AttachmentPhoto:
		return attachments.Photo
	case model.AttachmentSignature:
		return attachments.Signature
	default:
		return nil
	}
}

func describeFile(file *model.File) string {
	if file == nil {
		return ""
	}
	return fmt.Sprintf("%s (%d bytes)", file.Name, file.Size)
}
