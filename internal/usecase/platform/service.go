package platform

import (
	"context"
	"fmt"
	"strings"

	"github.com/bnema/zerowrap"

	"github.com/appops-dev/appops/internal/boundaries/in"
	"github.com/appops-dev/appops/internal/domain"
	"github.com/appops-dev/appops/internal/usecase/batch"
)

// CommandRunner sends one unframed command in its own session.
type CommandRunner interface {
	Run(ctx context.Context, command string) (string, error)
}

// Service implements in.PlatformService for one server.
type Service struct {
	server      string
	batchRunner in.BatchRunner
	runner      CommandRunner
	log         zerowrap.Logger
}

// NewService creates the platform service of server.
func NewService(server string, batchRunner in.BatchRunner, runner CommandRunner, log zerowrap.Logger) *Service {
	return &Service{
		server:      server,
		batchRunner: batchRunner,
		runner:      runner,
		log:         log,
	}
}

// Server returns the server name this service talks to.
func (s *Service) Server() string {
	return s.server
}

func (s *Service) ctx(ctx context.Context, useCase string) context.Context {
	return zerowrap.CtxWithFields(ctx, map[string]any{
		zerowrap.FieldLayer:   "usecase",
		zerowrap.FieldUseCase: useCase,
		zerowrap.FieldHost:    s.server,
	})
}

// Ping runs the version command alone and returns the platform version.
func (s *Service) Ping(ctx context.Context) (string, error) {
	ctx = s.ctx(ctx, "Ping")
	log := zerowrap.FromCtx(ctx)

	raw, err := s.runner.Run(ctx, CmdVersion)
	if err != nil {
		return "", err
	}
	version, err := ParseVersion(raw)
	if err != nil {
		return "", err
	}
	log.Debug().Str("version", version).Msg("server answered")
	return version, nil
}

// AppsList returns every app on the server.
func (s *Service) AppsList(ctx context.Context) ([]string, error) {
	ctx = s.ctx(ctx, "AppsList")

	raw, err := s.runner.Run(ctx, CmdAppsList)
	if err != nil {
		return nil, err
	}
	return ParseAppsList(raw)
}

// PsScale reports the current scaling of each app.
func (s *Service) PsScale(ctx context.Context, appOrApps any) (map[string]domain.ScalingSpec, error) {
	return forEachApp(s.ctx(ctx, "PsScale"), s.batchRunner, appOrApps, appCommand(CmdPsScale),
		func(_, raw string) (domain.ScalingSpec, error) {
			return ParsePsScale(raw)
		})
}

// ActionPsScale scales each app to the given spec.
func (s *Service) ActionPsScale(ctx context.Context, appOrApps any, scaling domain.ScalingSpec, onLog in.AppLogFunc) error {
	ctx = s.ctx(ctx, "ActionPsScale")
	if err := scaling.Validate(); err != nil {
		return err
	}
	return s.action(ctx, appOrApps, appCommand(CmdPsScale, scaling.Args()), onLog)
}

// ActionPs runs a process lifecycle action on each app.
func (s *Service) ActionPs(ctx context.Context, appOrApps any, action domain.PsAction, onLog in.AppLogFunc) error {
	ctx = s.ctx(ctx, "ActionPs")
	if _, err := domain.ParsePsAction(string(action)); err != nil {
		return err
	}
	return s.action(ctx, appOrApps, appCommand(action.Subcommand()), onLog)
}

func (s *Service) action(ctx context.Context, appOrApps any, template string, onLog in.AppLogFunc) error {
	log := zerowrap.FromCtx(ctx)

	results, err := s.batchRunner.RunForApps(ctx, appOrApps, template, onLog)
	if err != nil {
		return err
	}
	log.Info().Int(zerowrap.FieldCount, len(results)).Str(zerowrap.FieldAction, template).Msg("action completed")
	return nil
}

// ProxyPorts returns the port mappings of each app.
func (s *Service) ProxyPorts(ctx context.Context, appOrApps any) (map[string][]domain.ProxyPort, error) {
	return forEachApp(s.ctx(ctx, "ProxyPorts"), s.batchRunner, appOrApps, appCommand(CmdProxyPorts),
		func(_, raw string) ([]domain.ProxyPort, error) {
			return ParseProxyPorts(raw)
		})
}

// DomainsReport returns the domain configuration and effective domains of each app.
func (s *Service) DomainsReport(ctx context.Context, appOrApps any) (map[string]domain.DomainsReport, error) {
	return forEachApp(s.ctx(ctx, "DomainsReport"), s.batchRunner, appOrApps, appCommand(CmdDomainsReport), NewDomainsReport)
}

// Logs returns each app's recent log lines grouped by instance.
func (s *Service) Logs(ctx context.Context, appOrApps any) (map[string]*domain.LogBundle, error) {
	return forEachApp(s.ctx(ctx, "Logs"), s.batchRunner, appOrApps, appCommand(CmdLogs),
		func(_, raw string) (*domain.LogBundle, error) {
			return ParseLogs(raw)
		})
}

// NginxAccessLogs returns each app's nginx access log.
func (s *Service) NginxAccessLogs(ctx context.Context, appOrApps any) (map[string]string, error) {
	return forEachApp(s.ctx(ctx, "NginxAccessLogs"), s.batchRunner, appOrApps, appCommand(CmdNginxAccess), nginxLogs)
}

// NginxErrorLogs returns each app's nginx error log.
func (s *Service) NginxErrorLogs(ctx context.Context, appOrApps any) (map[string]string, error) {
	return forEachApp(s.ctx(ctx, "NginxErrorLogs"), s.batchRunner, appOrApps, appCommand(CmdNginxError), nginxLogs)
}

// appCommand builds a batch template: subcommand, app placeholder, then args.
func appCommand(subcommand string, args ...string) string {
	return strings.Join(append([]string{subcommand, batch.DefaultPlaceholder}, args...), " ")
}

func nginxLogs(_, raw string) (string, error) {
	return ParseNginxLogs(raw), nil
}

// forEachApp runs template for every app in one session and parses each app's
// output. The first parse failure fails the call; no partial result is returned.
func forEachApp[T any](
	ctx context.Context,
	runner in.BatchRunner,
	appOrApps any,
	template string,
	parse func(app, raw string) (T, error),
) (map[string]T, error) {
	log := zerowrap.FromCtx(ctx)

	raw, err := runner.RunForApps(ctx, appOrApps, template, nil)
	if err != nil {
		return nil, err
	}

	result := make(map[string]T, len(raw))
	for app, out := range raw {
		record, err := parse(app, out)
		if err != nil {
			log.Warn().Err(err).Str("app", app).Msg("unexpected platform output")
			return nil, fmt.Errorf("app %s: %w", app, err)
		}
		result[app] = record
	}
	return result, nil
}
