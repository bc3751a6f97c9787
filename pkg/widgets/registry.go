package widgets

import (
	"sort"
	"strings"
	"sync"

	"github.com/goliatone/go-joinform/pkg/model"
)

// Matcher decides whether a widget should handle the supplied field.
type Matcher func(field model.Field) bool

type rule struct {
	widget   model.Widget
	priority int
	match    Matcher
	order    int
}

// Registry picks the input control for fields that carry no explicit widget.
// Higher priority wins; ties fall back to registration order. Fields nothing
// matches render as plain text inputs.
type Registry struct {
	mu    sync.RWMutex
	rules []rule
}

// NewRegistry constructs a registry with the built-in matchers registered.
func NewRegistry() *Registry {
	reg := &Registry{}
	reg.registerBuiltins()
	return reg
}

var (
	defaultOnce     sync.Once
	defaultRegistry *Registry
)

// Default returns a shared registry holding only the built-in matchers.
func Default() *Registry {
	defaultOnce.Do(func() {
		defaultRegistry = NewRegistry()
	})
	return defaultRegistry
}

// Register adds a matcher for widget with the given priority. Empty widgets
// and nil matchers are ignored.
func (r *Registry) Register(widget model.Widget, priority int, matcher Matcher) {
	if r == nil || matcher == nil {
		return
	}
	trimmed := model.Widget(strings.TrimSpace(string(widget)))
	if trimmed == "" {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	r.rules = append(r.rules, rule{
		widget:   trimmed,
		priority: priority,
		match:    matcher,
		order:    len(r.rules),
	})
}

// Resolve returns the widget for field. An explicit widget on the field is
// honoured before any matcher runs. The boolean is false when the text
// fallback was used.
func (r *Registry) Resolve(field model.Field) (model.Widget, bool) {
	if explicit := model.Widget(strings.TrimSpace(string(field.Widget))); explicit != "" {
		return explicit, true
	}
	if r == nil {
		return model.WidgetText, false
	}
	r.mu.RLock()
	rules := append([]rule(nil), r.rules...)
	r.mu.RUnlock()

	sort.SliceStable(rules, func(i, j int) bool {
		if rules[i].priority == rules[j].priority {
			return rules[i].order < rules[j].order
		}
		return rules[i].priority > rules[j].priority
	})
	for _, entry := range rules {
		if entry.match(field) {
			return entry.widget, true
		}
	}
	return model.WidgetText, false
}

// Decorate sets the resolved widget on every field of form.
func (r *Registry) Decorate(form *model.FormModel) {
	if form == nil {
		return
	}
	for idx := range form.Fields {
		widget, _ := r.Resolve(form.Fields[idx])
		form.Fields[idx].Widget = widget
	}
}

func (r *Registry) registerBuiltins() {
	r.Register(model.WidgetFile, 100, func(field model.Field) bool {
		return field.Type == model.FieldTypeFile
	})

	r.Register(model.WidgetRadio, 90, func(field model.Field) bool {
		return len(field.Enum) > 0 && len(field.Enum) <= 5
	})

	r.Register(model.WidgetDate, 80, func(field model.Field) bool {
		return field.Type == model.FieldTypeDate || formatIs(field, "date")
	})

	r.Register(model.WidgetEmail, 70, func(field model.Field) bool {
		return formatIs(field, "email")
	})

	r.Register(model.WidgetTel, 60, func(field model.Field) bool {
		return formatIs(field, "tel", "phone")
	})

	r.Register(model.WidgetNumber, 50, func(field model.Field) bool {
		return field.Type == model.FieldTypeNumber
	})
}

func formatIs(field model.Field, formats ...string) bool {
	format := strings.ToLower(strings.TrimSpace(field.Format))
	for _, candidate := range formats {
		if format == candidate {
			return true
		}
	}
	return false
}
