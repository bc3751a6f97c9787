// Package joinform assembles the onboarding form application: the bundled
// contract, the submission client, the renderer registry, and the terminal
// and browser front ends.
package joinform

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"go.uber.org/zap"

	"github.com/goliatone/go-joinform/pkg/config"
	"github.com/goliatone/go-joinform/pkg/contract"
	"github.com/goliatone/go-joinform/pkg/formstate"
	"github.com/goliatone/go-joinform/pkg/model"
	"github.com/goliatone/go-joinform/pkg/render"
	"github.com/goliatone/go-joinform/pkg/renderers/html"
	"github.com/goliatone/go-joinform/pkg/renderers/tui"
	"github.com/goliatone/go-joinform/pkg/server"
	"github.com/goliatone/go-joinform/pkg/submit"
	"github.com/goliatone/go-joinform/pkg/uischema"
)

// EmployeeSubmission aliases the record type for callers of the root package.
type EmployeeSubmission = model.EmployeeSubmission

// RenderOptions describes per-request values, errors and notices.
type RenderOptions = render.RenderOptions

// App holds the collaborators shared by both front ends.
type App struct {
	Config    *config.Config
	Logger    *zap.Logger
	Contract  *contract.Contract
	Client    *submit.Client
	Renderers *render.Registry

	form model.FormModel
}

// NewApp loads the bundled contract and builds the client and renderers
// described by cfg. A nil logger disables logging.
func NewApp(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*App, error) {
	if cfg == nil {
		return nil, errors.New("joinform: config is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	c, err := contract.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("joinform: %w", err)
	}

	form, err := BuildForm(c, cfg.UI)
	if err != nil {
		return nil, err
	}

	registry, err := NewRegistry(cfg.Theme)
	if err != nil {
		return nil, err
	}

	return &App{
		Config:    cfg,
		Logger:    logger,
		Contract:  c,
		Client:    NewClient(cfg.Endpoint, c, logger),
		Renderers: registry,
		form:      form,
	}, nil
}

// BuildForm projects the contract into a form model and applies the
// presentation overlay from cfg.SchemaDir, or the bundled one.
func BuildForm(c *contract.Contract, cfg config.UIConfig) (model.FormModel, error) {
	var overlay fs.FS = uischema.EmbeddedFS()
	if cfg.SchemaDir != "" {
		overlay = os.DirFS(cfg.SchemaDir)
	}
	store, err := uischema.LoadFS(overlay)
	if err != nil {
		return model.FormModel{}, fmt.Errorf("joinform: %w", err)
	}

	form := c.Form()
	if err := uischema.NewDecorator(store).Decorate(&form); err != nil {
		return model.FormModel{}, fmt.Errorf("joinform: %w", err)
	}
	return form, nil
}

// NewClient builds the submission client. When CheckContract is set, every
// payload is checked against c before it leaves the process.
func NewClient(cfg config.EndpointConfig, c *contract.Contract, logger *zap.Logger) *submit.Client {
	options := []submit.ClientOption{
		submit.WithTimeout(cfg.Timeout),
		submit.WithUserAgent(cfg.UserAgent),
		submit.WithClientLogger(logger),
	}
	if cfg.CheckContract && c != nil {
		options = append(options, submit.WithPayloadGuard(c))
	}
	return submit.NewClient(cfg.URL, options...)
}

// NewRegistry registers the HTML and terminal renderers.
func NewRegistry(themeCfg config.ThemeConfig) (*render.Registry, error) {
	htmlRenderer, err := html.New(html.WithVariant(themeCfg.Variant))
	if err != nil {
		return nil, fmt.Errorf("joinform: %w", err)
	}
	registry := render.NewRegistry()
	if err := registry.Register(htmlRenderer); err != nil {
		return nil, fmt.Errorf("joinform: %w", err)
	}
	if err := registry.Register(tui.NewRenderer(tui.DefaultTheme)); err != nil {
		return nil, fmt.Errorf("joinform: %w", err)
	}
	return registry, nil
}

// Form returns the decorated form model.
func (a *App) Form() model.FormModel {
	return a.form
}

// NewSession builds an interactive terminal session over a fresh store.
func (a *App) NewSession(options ...tui.Option) (*tui.Session, error) {
	options = append([]tui.Option{tui.WithLogger(a.Logger)}, options...)
	return tui.NewSession(a.Form(), formstate.New(), a.Client, options...)
}

// NewServer builds the browser front end using the registered HTML renderer.
func (a *App) NewServer(options ...server.Option) (*server.Server, error) {
	renderer, err := a.Renderers.Get(html.Name)
	if err != nil {
		return nil, fmt.Errorf("joinform: %w", err)
	}
	serverCfg := a.Config.Server
	options = append([]server.Option{
		server.WithLogger(a.Logger),
		server.WithAssets(html.AssetsFS()),
		server.WithMaxUploadBytes(serverCfg.MaxUploadBytes),
		server.WithTimeouts(serverCfg.ReadTimeout, serverCfg.WriteTimeout, serverCfg.ShutdownTimeout),
	}, options...)
	return server.New(a.Form(), renderer, a.Client, options...)
}

// Close releases idle connections held by the client.
func (a *App) Close() error {
	if a.Client == nil {
		return nil
	}
	return a.Client.Close()
}
