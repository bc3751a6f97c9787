package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"mime/multipart"
	"net"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/goliatone/go-joinform/pkg/formstate"
	"github.com/goliatone/go-joinform/pkg/model"
	"github.com/goliatone/go-joinform/pkg/render"
	"github.com/goliatone/go-joinform/pkg/submit"
)

const defaultMaxUpload = 10 << 20

// Server renders the onboarding form over HTTP and submits posted answers.
type Server struct {
	form            model.FormModel
	renderer        render.Renderer
	sender          submit.Sender
	logger          *zap.Logger
	assets          fs.FS
	maxUpload       int64
	readTimeout     time.Duration
	writeTimeout    time.Duration
	shutdownGrace   time.Duration
	pipelineOptions []submit.PipelineOption
	inflight        inflight
}

// New builds a server for form. renderer produces the page and sender
// delivers accepted records.
func New(form model.FormModel, renderer render.Renderer, sender submit.Sender, options ...Option) (*Server, error) {
	if renderer == nil {
		return nil, errors.New("server: renderer is required")
	}
	if sender == nil {
		return nil, errors.New("server: sender is required")
	}
	s := &Server{
		form:          form,
		renderer:      renderer,
		sender:        sender,
		logger:        zap.NewNop(),
		maxUpload:     defaultMaxUpload,
		readTimeout:   15 * time.Second,
		writeTimeout:  45 * time.Second,
		shutdownGrace: 5 * time.Second,
	}
	for _, opt := range options {
		if opt != nil {
			opt(s)
		}
	}
	return s, nil
}

// Handler returns the routed handler wrapped in request logging.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleForm)
	mux.HandleFunc("POST /{$}", s.handleSubmit)
	mux.HandleFunc("POST /reset", s.handleReset)
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	if s.assets != nil {
		mux.Handle("GET /assets/", http.StripPrefix("/assets/", http.FileServer(http.FS(s.assets))))
	}
	return s.logRequests(mux)
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("server: listen: %w", err)
	}
	return s.Serve(ctx, listener)
}

// Serve accepts connections on listener until ctx is cancelled.
func (s *Server) Serve(ctx context.Context, listener net.Listener) error {
	httpServer := &http.Server{
		Handler:      s.Handler(),
		ReadTimeout:  s.readTimeout,
		WriteTimeout: s.writeTimeout,
	}

	errChan := make(chan error, 1)
	go func() {
		if err := httpServer.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
		close(errChan)
	}()

	s.logger.Info("listening", zap.String("addr", listener.Addr().String()))

	select {
	case err, ok := <-errChan:
		if ok {
			return fmt.Errorf("server: serve: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownGrace)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server: shutdown: %w", err)
	}
	s.logger.Info("server stopped")
	return nil
}

func (s *Server) handleForm(w http.ResponseWriter, r *http.Request) {
	if strings.EqualFold(r.URL.Query().Get("format"), "json") {
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(s.form); err != nil {
			s.logger.Warn("write form json", zap.Error(err))
		}
		return
	}
	session(w, r)
	s.write(w, r, http.StatusOK, render.RenderOptions{})
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	s.write(w, r, http.StatusOK, render.RenderOptions{
		Values: model.Empty().Values(),
	})
}

func (s *Server) handleSubmit(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.maxUpload)
	if err := parseBody(r, s.maxUpload); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			http.Error(w, "request body too large", http.StatusRequestEntityTooLarge)
			return
		}
		http.Error(w, "invalid form submission", http.StatusBadRequest)
		return
	}
	if r.MultipartForm != nil {
		defer func() { _ = r.MultipartForm.RemoveAll() }()
	}

	store := formstate.New()
	store.Set(patchFromRequest(r))
	if r.MultipartForm != nil {
		store.SetPhoto(fileFromRequest(r.MultipartForm, model.AttachmentPhoto))
		store.SetSignature(fileFromRequest(r.MultipartForm, model.AttachmentSignature))
	}

	id := session(w, r)
	if !s.inflight.acquire(id) {
		s.logger.Info("submission already in flight", zap.String("session", id))
		s.write(w, r, http.StatusConflict, render.RenderOptions{
			Values:      store.Get().Values(),
			Attachments: store.Attachments(),
			Notice:      render.Failure(submit.MessageInFlight),
		})
		return
	}
	defer s.inflight.release(id)

	options := append([]submit.PipelineOption{submit.WithLogger(s.logger)}, s.pipelineOptions...)
	outcome := submit.NewPipeline(store, s.sender, options...).Submit(r.Context())

	renderOptions := render.RenderOptions{
		Values:      store.Get().Values(),
		Attachments: store.Attachments(),
	}
	status := http.StatusOK
	switch {
	case outcome.Succeeded():
		renderOptions.Notice = render.Success(outcome.Message)
	case outcome.ValidationFailed():
		status = http.StatusUnprocessableEntity
		renderOptions.Errors = render.FromValidation(outcome.Validation)
		renderOptions.Notice = render.Failure(outcome.Message)
	default:
		status = http.StatusBadGateway
		renderOptions.Notice = render.Failure(outcome.Message)
	}
	s.write(w, r, status, renderOptions)
}

func (s *Server) write(w http.ResponseWriter, r *http.Request, status int, options render.RenderOptions) {
	out, err := s.renderer.Render(r.Context(), s.form, options)
	if err != nil {
		s.logger.Error("render form", zap.Error(err))
		http.Error(w, "could not render form", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", s.renderer.ContentType())
	w.WriteHeader(status)
	_, _ = w.Write(out)
}

func parseBody(r *http.Request, limit int64) error {
	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		return r.ParseMultipartForm(limit)
	}
	return r.ParseForm()
}

// patchFromRequest collects the posted text for every record field. Keys the
// form does not know are ignored, and a gender outside the enum is treated as
// no selection.
func patchFromRequest(r *http.Request) model.Patch {
	values := make(map[string]string)
	for _, name := range model.FieldNames() {
		posted, ok := r.PostForm[name]
		if !ok || len(posted) == 0 {
			continue
		}
		values[name] = sanitizeText(posted[0])
	}
	if raw, ok := values[model.FieldGender]; ok {
		if _, err := model.ParseGender(raw); err != nil {
			values[model.FieldGender] = ""
		}
	}
	patch, err := model.PatchFromValues(values)
	if err != nil {
		return model.Patch{}
	}
	return patch
}

func fileFromRequest(form *multipart.Form, name string) *model.File {
	headers := form.File[name]
	if len(headers) == 0 || headers[0] == nil || headers[0].Filename == "" {
		return nil
	}
	header := headers[0]
	return &model.File{
		Name:        sanitizeFilename(header.Filename),
		ContentType: header.Header.Get("Content-Type"),
		Size:        header.Size,
	}
}
