package html

import (
	"sort"
	"strings"

	theme "github.com/goliatone/go-theme"
)

const (
	// PartialForm is the theme template key for the page layout.
	PartialForm = "forms.page"
	// AssetStylesheet is the theme asset key for the stylesheet.
	AssetStylesheet = "forms.stylesheet"
)

func defaultPartials() map[string]string {
	return map[string]string{
		PartialForm: "templates/form.tmpl",
	}
}

// DefaultManifest is the bundled look: a light base and a dark variant.
func DefaultManifest() *theme.Manifest {
	return &theme.Manifest{
		Name:    "joinform",
		Version: "1.0.0",
		Tokens: map[string]string{
			"color-primary":    "#2563eb",
			"color-error":      "#b91c1c",
			"color-success":    "#15803d",
			"color-background": "#f8fafc",
			"color-surface":    "#ffffff",
			"color-text":       "#0f172a",
			"color-border":     "#cbd5e1",
			"radius":           "6px",
		},
		Templates: defaultPartials(),
		Assets: theme.Assets{
			Prefix: "/assets",
			Files: map[string]string{
				AssetStylesheet: StylesheetName,
			},
		},
		Variants: map[string]theme.Variant{
			"dark": {
				Tokens: map[string]string{
					"color-background": "#0f172a",
					"color-surface":    "#1e293b",
					"color-text":       "#e2e8f0",
					"color-border":     "#334155",
				},
			},
		},
	}
}

// rendererConfig flattens a selection into the values templates consume:
// variant tokens override base tokens, every token is exposed as a CSS custom
// property, and asset keys resolve against the manifest prefix.
func rendererConfig(selection *theme.Selection) *theme.RendererConfig {
	cfg := &theme.RendererConfig{
		Partials: defaultPartials(),
		Tokens:   map[string]string{},
		CSSVars:  map[string]string{},
	}
	if selection == nil || selection.Manifest == nil {
		cfg.AssetURL = func(string) string { return "" }
		return cfg
	}

	manifest := selection.Manifest
	cfg.Theme = selection.Theme
	if cfg.Theme == "" {
		cfg.Theme = manifest.Name
	}
	cfg.Variant = selection.Variant

	prefix := manifest.Assets.Prefix
	files := map[string]string{}
	for key, value := range manifest.Assets.Files {
		files[key] = value
	}
	for key, value := range manifest.Templates {
		cfg.Partials[key] = value
	}
	for key, value := range manifest.Tokens {
		cfg.Tokens[key] = value
	}

	if variant, ok := manifest.Variants[selection.Variant]; ok {
		for key, value := range variant.Templates {
			cfg.Partials[key] = value
		}
		for key, value := range variant.Tokens {
			cfg.Tokens[key] = value
		}
		if variant.Assets.Prefix != "" {
			prefix = variant.Assets.Prefix
		}
		for key, value := range variant.Assets.Files {
			files[key] = value
		}
	}

	for key, value := range cfg.Tokens {
		cfg.CSSVars["--"+key] = value
	}
	prefix = strings.TrimRight(prefix, "/")
	cfg.AssetURL = func(key string) string {
		file, ok := files[key]
		if !ok || file == "" {
			return ""
		}
		if strings.Contains(file, "://") || strings.HasPrefix(file, "/") {
			return file
		}
		return prefix + "/" + file
	}
	return cfg
}

func cssVarsStyle(vars map[string]string) string {
	if len(vars) == 0 {
		return ""
	}
	keys := make([]string, 0, len(vars))
	for key := range vars {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var b strings.Builder
	for i, key := range keys {
		if i > 0 {
			b.WriteString(" ")
		}
		b.WriteString(key)
		b.WriteString(": ")
		b.WriteString(vars[key])
		b.WriteString(";")
	}
	return b.String()
}
