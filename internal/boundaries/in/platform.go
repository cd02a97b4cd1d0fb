// Package in defines input ports (interfaces) for the use cases.
// Driving adapters (the CLI, a web front-end) depend on these contracts only.
package in

import (
	"context"

	"github.com/appops-dev/appops/internal/domain"
)

// AppLogFunc receives live command output tagged with the app it belongs to.
type AppLogFunc func(chunk, app string)

// BatchRunner runs one command template against many apps in one session.
type BatchRunner interface {
	// RunForApps accepts a name, a domain.AppNamer, or a slice of either, and
	// returns the raw output of each app's command keyed by app name.
	RunForApps(ctx context.Context, appOrApps any, template string, onLog AppLogFunc) (map[string]string, error)
}

// PlatformService exposes the platform operations on one server.
// Every operation that takes apps accepts the same inputs as BatchRunner.
type PlatformService interface {
	// Ping checks that the server answers and returns the platform version.
	Ping(ctx context.Context) (string, error)

	// AppsList returns the names of every app on the server.
	AppsList(ctx context.Context) ([]string, error)

	// PsScale returns the current scaling of each app.
	PsScale(ctx context.Context, appOrApps any) (map[string]domain.ScalingSpec, error)

	// ActionPsScale applies a scaling spec to each app.
	ActionPsScale(ctx context.Context, appOrApps any, scaling domain.ScalingSpec, onLog AppLogFunc) error

	// ActionPs runs a process lifecycle action (restart, start, stop, rebuild).
	ActionPs(ctx context.Context, appOrApps any, action domain.PsAction, onLog AppLogFunc) error

	// ProxyPorts returns the port mappings of each app.
	ProxyPorts(ctx context.Context, appOrApps any) (map[string][]domain.ProxyPort, error)

	// DomainsReport returns the domain configuration and effective domains of each app.
	DomainsReport(ctx context.Context, appOrApps any) (map[string]domain.DomainsReport, error)

	// Logs returns each app's recent logs grouped by instance.
	Logs(ctx context.Context, appOrApps any) (map[string]*domain.LogBundle, error)

	// NginxAccessLogs returns each app's nginx access log, verbatim.
	NginxAccessLogs(ctx context.Context, appOrApps any) (map[string]string, error)

	// NginxErrorLogs returns each app's nginx error log, verbatim.
	NginxErrorLogs(ctx context.Context, appOrApps any) (map[string]string, error)
}

// FleetService spans every configured server.
type FleetService interface {
	// Servers returns the configured server names in sorted order.
	Servers() []string

	// Platform returns the platform service of one server.
	Platform(server string) (PlatformService, error)

	// AppsList lists the apps of every server concurrently, keyed by server.
	AppsList(ctx context.Context) (map[string][]domain.App, error)

	// Ping pings every server concurrently and returns each platform version.
	Ping(ctx context.Context) (map[string]string, error)
}
