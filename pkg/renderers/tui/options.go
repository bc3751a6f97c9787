package tui

import (
	"go.uber.org/zap"

	"github.com/goliatone/go-joinform/pkg/model"
	"github.com/goliatone/go-joinform/pkg/submit"
)

// Theme captures message prefixes the session applies when printing.
type Theme struct {
	InfoPrefix    string
	SuccessPrefix string
	ErrorPrefix   string
}

// DefaultTheme is used when no theme is configured.
var DefaultTheme = Theme{
	InfoPrefix:    "",
	SuccessPrefix: "✔ ",
	ErrorPrefix:   "✖ ",
}

// FileInspector resolves a path typed by the user into attachment metadata.
type FileInspector func(path string) (*model.File, error)

// Option configures a Session.
type Option func(*Session)

// WithPromptDriver overrides the prompt driver.
func WithPromptDriver(driver PromptDriver) Option {
	return func(s *Session) {
		if driver != nil {
			s.driver = driver
		}
	}
}

// WithTheme applies message prefixes.
func WithTheme(theme Theme) Option {
	return func(s *Session) {
		s.theme = theme
	}
}

// WithFileInspector overrides how attachment paths are resolved.
func WithFileInspector(fn FileInspector) Option {
	return func(s *Session) {
		if fn != nil {
			s.inspect = fn
		}
	}
}

// WithLogger sets the logger handed to the submission pipeline.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Session) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithPipelineOptions forwards extra options to the submission pipeline.
func WithPipelineOptions(options ...submit.PipelineOption) Option {
	return func(s *Session) {
		s.pipelineOptions = append(s.pipelineOptions, options...)
	}
}
