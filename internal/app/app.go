// Package app implements the application layer for rockbuild.
package app

import (
	"context"
	"errors"
	"fmt"
	"os"

	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.trai.ch/rockbuild/internal/adapters/telemetry"
	"go.trai.ch/rockbuild/internal/core/domain"
	"go.trai.ch/rockbuild/internal/core/ports"
)

// Runner performs and previews builds.
type Runner interface {
	Run(ctx context.Context, req *domain.BuildRequest) (*domain.BuildMetadata, error)
	Plan(ctx context.Context, req *domain.BuildRequest) (*domain.BuildPlan, error)
}

// App represents the main application logic.
type App struct {
	configLoader ports.ConfigLoader
	runner       Runner
	store        ports.RecordStore
	logger       ports.Logger
	environ      func() []string
}

// New creates a new App instance.
func New(loader ports.ConfigLoader, runner Runner, store ports.RecordStore, log ports.Logger) *App {
	return &App{
		configLoader: loader,
		runner:       runner,
		store:        store,
		logger:       log,
		environ:      os.Environ,
	}
}

// WithEnviron replaces the process environment the build request is resolved from.
// This is primarily used for testing.
func (a *App) WithEnviron(environ func() []string) *App {
	a.environ = environ
	return a
}

// SetLogJSON switches the logger to JSON output when it supports it.
func (a *App) SetLogJSON(enable bool) {
	if l, ok := a.logger.(interface{ SetJSON(bool) }); ok {
		l.SetJSON(enable)
	}
}

// Build compiles and links every enabled component and emits the build metadata.
func (a *App) Build(ctx context.Context, opts Options) error {
	req, err := a.request(opts)
	if err != nil {
		return err
	}

	setupOTel(telemetry.NewBridge(a.logger))

	meta, err := a.runner.Run(ctx, req)
	if err != nil {
		return errors.Join(domain.ErrBuildFailed, err)
	}

	a.logger.Info(fmt.Sprintf("built %d archives for %s", len(meta.Artifacts), req.Target))
	return nil
}

// Plan previews a build without compiling anything.
func (a *App) Plan(ctx context.Context, opts Options) (*domain.BuildPlan, error) {
	req, err := a.request(opts)
	if err != nil {
		return nil, err
	}
	return a.runner.Plan(ctx, req)
}

// Status returns the build records of the last successful run.
func (a *App) Status(_ context.Context, opts Options) ([]domain.BuildRecord, error) {
	req, err := a.request(opts)
	if err != nil {
		return nil, err
	}
	return a.store.List(req.OutDir)
}

// setupOTel configures the OpenTelemetry SDK with the logger bridge.
func setupOTel(bridge *telemetry.Bridge) {
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithSpanProcessor(bridge),
	)
	otel.SetTracerProvider(tp)
}
