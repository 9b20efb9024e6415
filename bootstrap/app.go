package bootstrap

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/kbukum/onion/logger"
	"github.com/kbukum/onion/validation"
)

// App runs a finite task with uniform setup and teardown. The type parameter
// C is the config type. Any struct embedding config.ServiceConfig satisfies
// Config.
//
//	app, err := bootstrap.NewApp(&cfg)
//	app.OnStart(initTelemetry)
//	err = app.RunTask(ctx, func(ctx context.Context) error {
//	    return process(ctx, app.Cfg)
//	})
type App[C Config] struct {
	Name    string
	Version string
	Cfg     C
	Logger  *logger.Logger

	gracefulTimeout time.Duration
	signals         []os.Signal

	onStart []Hook
	onStop  []Hook
}

// NewApp applies config defaults, validates the config (its Validate method,
// then its `validate` struct tags), and sets up the logger.
func NewApp[C Config](cfg C, opts ...Option) (*App[C], error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}
	if err := validation.Validate(cfg); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	base := cfg.GetServiceConfig()
	app := &App[C]{
		Name:            base.Name,
		Version:         base.Version,
		Cfg:             cfg,
		gracefulTimeout: 5 * time.Second,
		signals:         []os.Signal{syscall.SIGINT, syscall.SIGTERM},
	}

	o := resolveOptions(opts)
	if o.gracefulTimeout != nil {
		app.gracefulTimeout = *o.gracefulTimeout
	}
	if o.logger != nil {
		app.Logger = o.logger
	} else {
		logger.Init(base.Logging, base.Name)
		app.Logger = logger.GetGlobalLogger()
	}
	return app, nil
}

// RunTask runs OnStart hooks, then task, then OnStop hooks. The context
// given to task is cancelled on SIGINT or SIGTERM. OnStop hooks always run,
// bounded by the graceful timeout. After a failed start only the hooks
// registered so far run. The task error takes precedence over a shutdown
// error.
func (a *App[C]) RunTask(ctx context.Context, task func(ctx context.Context) error) error {
	if err := runHooks(ctx, a.onStart); err != nil {
		_ = a.shutdown()
		return fmt.Errorf("onStart hook failed: %w", err)
	}

	taskCtx, stop := signal.NotifyContext(ctx, a.signals...)
	defer stop()

	start := time.Now()
	taskErr := task(taskCtx)
	a.Logger.Debug("task finished", logger.DurationFields("task", time.Since(start)))

	if stopErr := a.shutdown(); stopErr != nil && taskErr == nil {
		return stopErr
	}
	return taskErr
}

func (a *App[C]) shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), a.gracefulTimeout)
	defer cancel()

	if err := runHooks(ctx, a.onStop); err != nil {
		a.Logger.Error("onStop hook error", logger.ErrorFields("shutdown", err))
		return err
	}
	return nil
}
