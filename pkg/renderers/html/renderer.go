package html

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-joinform/pkg/model"
	"github.com/goliatone/go-joinform/pkg/render"
	rendertemplate "github.com/goliatone/go-joinform/pkg/render/template"
	"github.com/goliatone/go-joinform/pkg/render/template/gotemplate"
)

// Name is the registry key of the HTML renderer.
const Name = "html"

type Option func(*config)

type config struct {
	templateFS       fs.FS
	templateRenderer rendertemplate.TemplateRenderer
	selector         theme.ThemeSelector
	themeName        string
	variant          string
	manifest         *theme.Manifest
	action           string
	resetAction      string
}

// WithTemplatesFS supplies an alternate template bundle.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templateFS = files
	}
}

// WithTemplatesDir loads templates from a directory on disk.
func WithTemplatesDir(path string) Option {
	return func(cfg *config) {
		if path == "" {
			return
		}
		cfg.templateFS = os.DirFS(path)
	}
}

// WithTemplateRenderer injects a custom template engine.
func WithTemplateRenderer(renderer rendertemplate.TemplateRenderer) Option {
	return func(cfg *config) {
		if renderer != nil {
			cfg.templateRenderer = renderer
		}
	}
}

// WithThemeSelector resolves the theme through selector on every render.
func WithThemeSelector(selector theme.ThemeSelector, name, variant string) Option {
	return func(cfg *config) {
		cfg.selector = selector
		cfg.themeName = name
		cfg.variant = variant
	}
}

// WithManifest renders with a fixed manifest instead of the bundled one.
func WithManifest(manifest *theme.Manifest, variant string) Option {
	return func(cfg *config) {
		if manifest != nil {
			cfg.manifest = manifest
			cfg.variant = variant
		}
	}
}

// WithVariant selects a variant of the bundled manifest.
func WithVariant(variant string) Option {
	return func(cfg *config) {
		cfg.variant = variant
	}
}

// WithActions sets the URLs the submit and reset buttons post to.
func WithActions(submit, reset string) Option {
	return func(cfg *config) {
		if submit != "" {
			cfg.action = submit
		}
		if reset != "" {
			cfg.resetAction = reset
		}
	}
}

// Renderer produces a server-rendered HTML page for the onboarding form.
type Renderer struct {
	templates   rendertemplate.TemplateRenderer
	selector    theme.ThemeSelector
	themeName   string
	variant     string
	manifest    *theme.Manifest
	action      string
	resetAction string
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs the renderer applying options.
func New(options ...Option) (*Renderer, error) {
	cfg := config{
		templateFS:  TemplatesFS(),
		action:      "/",
		resetAction: "/reset",
	}
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}
	if cfg.templateFS == nil {
		cfg.templateFS = TemplatesFS()
	}
	if cfg.manifest == nil {
		cfg.manifest = DefaultManifest()
	}

	renderer := cfg.templateRenderer
	if renderer == nil {
		engine, err := gotemplate.New(
			gotemplate.WithFS(cfg.templateFS),
			gotemplate.WithExtension(".tmpl"),
		)
		if err != nil {
			return nil, fmt.Errorf("html renderer: configure template renderer: %w", err)
		}
		renderer = engine
	}

	return &Renderer{
		templates:   renderer,
		selector:    cfg.selector,
		themeName:   cfg.themeName,
		variant:     cfg.variant,
		manifest:    cfg.manifest,
		action:      cfg.action,
		resetAction: cfg.resetAction,
	}, nil
}

func (r *Renderer) Name() string {
	return Name
}

func (r *Renderer) ContentType() string {
	return "text/html; charset=utf-8"
}

// Render executes the themed page template for form.
func (r *Renderer) Render(ctx context.Context, form model.FormModel, options render.RenderOptions) ([]byte, error) {
	if r.templates == nil {
		return nil, errors.New("html renderer: template renderer is nil")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	selection, err := r.selection()
	if err != nil {
		return nil, fmt.Errorf("html renderer: select theme: %w", err)
	}
	themeCfg := rendererConfig(selection)

	action := r.action
	if options.Action != "" {
		action = options.Action
	}

	data := map[string]any{
		"form": map[string]any{
			"title":       form.Title,
			"description": form.Description,
			"operationId": form.OperationID,
			"action":      action,
			"resetAction": r.resetAction,
		},
		"fields":     buildFields(form, options),
		"formErrors": options.Errors.Form,
		"theme": map[string]any{
			"name":       themeCfg.Theme,
			"variant":    themeCfg.Variant,
			"style":      cssVarsStyle(themeCfg.CSSVars),
			"stylesheet": themeCfg.AssetURL(AssetStylesheet),
		},
	}
	if options.Notice != nil && options.Notice.Message != "" {
		data["notice"] = map[string]any{
			"level":   string(options.Notice.Level),
			"message": options.Notice.Message,
		}
	}

	page := themeCfg.Partials[PartialForm]
	result, err := r.templates.RenderTemplate(page, data)
	if err != nil {
		return nil, fmt.Errorf("html renderer: render template: %w", err)
	}
	return []byte(result), nil
}

func (r *Renderer) selection() (*theme.Selection, error) {
	if r.selector != nil {
		return r.selector.Select(r.themeName, r.variant)
	}
	return &theme.Selection{
		Theme:    r.manifest.Name,
		Variant:  r.variant,
		Manifest: r.manifest,
	}, nil
}

func buildFields(form model.FormModel, options render.RenderOptions) []map[string]any {
	fields := make([]map[string]any, 0, len(form.Fields))
	for _, field := range form.Fields {
		value := options.Values[field.Name]
		entry := map[string]any{
			"name":        field.Name,
			"label":       field.Label,
			"widget":      string(field.Widget),
			"required":    field.Required,
			"placeholder": field.Placeholder,
			"description": field.Description,
			"accept":      field.Accept,
			"value":       value,
			"errors":      options.Errors.FieldMessages(field.Name),
		}
		if len(field.Enum) > 0 {
			opts := make([]map[string]any, 0, len(field.Enum))
			for _, option := range field.Enum {
				opts = append(opts, map[string]any{
					"value":   option,
					"label":   model.DefaultLabeler(option),
					"checked": option == value,
				})
			}
			entry["options"] = opts
		}
		if field.IsAttachment() {
			if file := attachmentFor(options.Attachments, field.Name); file != nil {
				entry["attachment"] = map[string]any{
					"name":        file.Name,
					"size":        file.Size,
					"contentType": file.ContentType,
				}
			}
		}
		fields = append(fields, entry)
	}
	return fields
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
