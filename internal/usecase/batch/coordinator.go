// Package batch applies one command template to many apps through a single
// remote session.
package batch

import (
	"context"
	"fmt"

	"github.com/bnema/zerowrap"

	"github.com/appops-dev/appops/internal/boundaries/in"
	"github.com/appops-dev/appops/internal/usecase/session"
)

// Runner executes commands in one session and returns one output per command.
type Runner interface {
	Execute(ctx context.Context, commands []string, onLog session.LogFunc) ([]string, error)
}

// Coordinator implements in.BatchRunner.
type Coordinator struct {
	runner      Runner
	placeholder string
}

// Option configures a Coordinator.
type Option func(*Coordinator)

// WithPlaceholder overrides the %app% placeholder token.
func WithPlaceholder(token string) Option {
	return func(c *Coordinator) {
		c.placeholder = token
	}
}

// NewCoordinator creates a coordinator on top of a session runner.
func NewCoordinator(runner Runner, opts ...Option) *Coordinator {
	c := &Coordinator{
		runner:      runner,
		placeholder: DefaultPlaceholder,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// RunForApps runs template once per app in a single session and returns the
// raw output keyed by app name. Names are normalized and validated before
// anything reaches the remote side; no apps means no session.
func (c *Coordinator) RunForApps(ctx context.Context, appOrApps any, template string, onLog in.AppLogFunc) (map[string]string, error) {
	apps, err := NormalizeAppNames(appOrApps)
	if err != nil {
		return nil, err
	}

	ctx = zerowrap.CtxWithFields(ctx, map[string]any{
		zerowrap.FieldLayer:   "usecase",
		zerowrap.FieldUseCase: "RunForApps",
		zerowrap.FieldCount:   len(apps),
		"template":            template,
	})
	log := zerowrap.FromCtx(ctx)

	if len(apps) == 0 {
		log.Debug().Msg("no apps selected, skipping session")
		return map[string]string{}, nil
	}

	commands, err := ExpandTemplate(apps, template, c.placeholder)
	if err != nil {
		return nil, err
	}

	var onIndexedLog session.LogFunc
	if onLog != nil {
		onIndexedLog = func(chunk string, index int) {
			if index < len(apps) {
				onLog(chunk, apps[index])
			}
		}
	}

	outputs, err := c.runner.Execute(ctx, commands, onIndexedLog)
	if err != nil {
		return nil, err
	}
	if len(outputs) != len(apps) {
		return nil, fmt.Errorf("batch returned %d outputs for %d apps", len(outputs), len(apps))
	}

	result := make(map[string]string, len(apps))
	for i, app := range apps {
		result[app] = outputs[i]
	}
	log.Debug().Msg("batch completed")
	return result, nil
}
