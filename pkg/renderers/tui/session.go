package tui

import (
	"context"
	"errors"
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/goliatone/go-joinform/pkg/formstate"
	"github.com/goliatone/go-joinform/pkg/model"
	"github.com/goliatone/go-joinform/pkg/render"
	"github.com/goliatone/go-joinform/pkg/submit"
)

// Menu actions offered once every field has been prompted.
const (
	ActionSubmit = "Submit"
	ActionReview = "Review answers"
	ActionEdit   = "Edit a field"
	ActionReset  = "Reset"
	ActionQuit   = "Quit"
)

var actions = []string{ActionSubmit, ActionReview, ActionEdit, ActionReset, ActionQuit}

const editBack = "Back"

// Session walks a user through the onboarding form in the terminal. Every
// answer is written to the store immediately; Submit hands the store to the
// pipeline.
type Session struct {
	form     model.FormModel
	store    *formstate.Store
	pipeline *submit.Pipeline
	summary  *Renderer
	driver   PromptDriver
	theme    Theme
	inspect  FileInspector
	logger   *zap.Logger

	pipelineOptions []submit.PipelineOption
	last            *submit.Outcome
}

// NewSession wires a session for form around store and sender.
func NewSession(form model.FormModel, store *formstate.Store, sender submit.Sender, options ...Option) (*Session, error) {
	if store == nil {
		return nil, errors.New("tui: store is required")
	}
	if sender == nil {
		return nil, errors.New("tui: sender is required")
	}
	if len(form.Fields) == 0 {
		return nil, errors.New("tui: form has no fields")
	}

	s := &Session{
		form:    form,
		store:   store,
		theme:   DefaultTheme,
		inspect: inspectFile,
		logger:  zap.NewNop(),
	}
	for _, opt := range options {
		if opt != nil {
			opt(s)
		}
	}
	if s.driver == nil {
		s.driver = NewSurveyDriver(nil)
	}
	s.summary = NewRenderer(s.theme)

	pipelineOptions := append([]submit.PipelineOption{
		submit.WithLogger(s.logger),
		submit.WithNotifier(s),
	}, s.pipelineOptions...)
	s.pipeline = submit.NewPipeline(store, sender, pipelineOptions...)
	return s, nil
}

// Pipeline exposes the submission pipeline driven by the session.
func (s *Session) Pipeline() *submit.Pipeline {
	return s.pipeline
}

// Run prompts every field and then loops over the action menu until the user
// quits, aborts, or ctx is cancelled.
func (s *Session) Run(ctx context.Context) error {
	if err := s.promptAll(ctx); err != nil {
		return err
	}

	for {
		choice, err := s.driver.Select(ctx, SelectConfig{
			Message: "What would you like to do?",
			Options: actions,
		})
		if err != nil {
			return err
		}
		if choice < 0 || choice >= len(actions) {
			return ErrNoSelection
		}

		switch actions[choice] {
		case ActionSubmit:
			outcome := s.pipeline.Submit(ctx)
			if !outcome.Succeeded() {
				continue
			}
			again, err := s.driver.Confirm(ctx, ConfirmConfig{Message: "Fill in another employee?"})
			if err != nil {
				return err
			}
			if !again {
				return nil
			}
			if err := s.promptAll(ctx); err != nil {
				return err
			}
		case ActionReview:
			if err := s.review(ctx); err != nil {
				return err
			}
		case ActionEdit:
			if err := s.edit(ctx); err != nil {
				return err
			}
		case ActionReset:
			s.store.Reset()
			s.last = nil
			if err := s.promptAll(ctx); err != nil {
				return err
			}
		case ActionQuit:
			return nil
		}
	}
}

// Notify prints the outcome of a submission. It satisfies submit.Notifier.
func (s *Session) Notify(ctx context.Context, outcome submit.Outcome) {
	s.last = &outcome
	prefix := s.theme.ErrorPrefix
	if outcome.Succeeded() {
		prefix = s.theme.SuccessPrefix
	}
	if outcome.Message == "" {
		return
	}
	if err := s.driver.Info(ctx, prefix+outcome.Message); err != nil {
		s.logger.Warn("print notification", zap.Error(err))
	}
}

func (s *Session) promptAll(ctx context.Context) error {
	for _, field := range s.form.Fields {
		if err := s.promptField(ctx, field); err != nil {
			return err
		}
	}
	return nil
}

func (s *Session) promptField(ctx context.Context, field model.Field) error {
	if field.IsAttachment() {
		return s.promptAttachment(ctx, field)
	}

	current, _ := s.store.Get().Value(field.Name)
	message := field.Label
	if field.Required {
		message += " *"
	}

	var (
		answer string
		err    error
	)
	switch {
	case len(field.Enum) > 0:
		labels := make([]string, len(field.Enum))
		defaultIndex := 0
		for i, option := range field.Enum {
			labels[i] = model.DefaultLabeler(option)
			if option == current {
				defaultIndex = i
			}
		}
		var idx int
		idx, err = s.driver.Select(ctx, SelectConfig{
			Message:      message,
			Options:      labels,
			DefaultIndex: defaultIndex,
			Help:         field.Description,
		})
		if err == nil {
			if idx < 0 || idx >= len(field.Enum) {
				return ErrNoSelection
			}
			answer = field.Enum[idx]
		}
	case field.Widget == model.WidgetTextArea:
		answer, err = s.driver.TextArea(ctx, TextAreaConfig{
			Message: message,
			Default: current,
			Help:    field.Description,
		})
	default:
		answer, err = s.driver.Input(ctx, InputConfig{
			Message: message,
			Default: current,
			Help:    fieldHelp(field),
		})
	}
	if err != nil {
		return err
	}

	if _, err := s.store.SetField(field.Name, answer); err != nil {
		return fmt.Errorf("tui: store %s: %w", field.Name, err)
	}
	return nil
}

func (s *Session) promptAttachment(ctx context.Context, field model.Field) error {
	path, err := s.driver.Input(ctx, InputConfig{
		Message: field.Label + " (path, blank to skip)",
		Help:    field.Accept,
	})
	if err != nil {
		return err
	}
	path = strings.TrimSpace(path)
	if path == "" {
		return nil
	}

	file, err := s.inspect(path)
	if err != nil {
		return s.driver.Info(ctx, s.theme.ErrorPrefix+fmt.Sprintf("Could not read %s: %v", path, err))
	}
	switch field.Name {
	case model.AttachmentPhoto:
		s.store.SetPhoto(file)
	case model.AttachmentSignature:
		s.store.SetSignature(file)
	}
	return nil
}

func (s *Session) review(ctx context.Context) error {
	options := render.RenderOptions{
		Values:      s.store.Get().Values(),
		Attachments: s.store.Attachments(),
	}
	if s.last != nil && s.last.ValidationFailed() {
		options.Errors = render.FromValidation(s.last.Validation)
	}
	out, err := s.summary.Render(ctx, s.form, options)
	if err != nil {
		return err
	}
	return s.driver.Info(ctx, strings.TrimRight(string(out), "\n"))
}

func (s *Session) edit(ctx context.Context) error {
	labels := make([]string, 0, len(s.form.Fields)+1)
	for _, field := range s.form.Fields {
		labels = append(labels, field.Label)
	}
	labels = append(labels, editBack)

	idx, err := s.driver.Select(ctx, SelectConfig{
		Message:  "Which field?",
		Options:  labels,
		PageSize: len(labels),
	})
	if err != nil {
		return err
	}
	if idx < 0 || idx >= len(s.form.Fields) {
		return nil
	}
	return s.promptField(ctx, s.form.Fields[idx])
}

func fieldHelp(field model.Field) string {
	switch {
	case field.Description != "":
		return field.Description
	case field.Placeholder != "":
		return field.Placeholder
	default:
		return ""
	}
}

func inspectFile(path string) (*model.File, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%s is a directory", path)
	}
	return &model.File{
		Name:        filepath.Base(path),
		ContentType: mime.TypeByExtension(filepath.Ext(path)),
		Size:        info.Size(),
	}, nil
}
