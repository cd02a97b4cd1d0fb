package app

import (
	"context"
	"fmt"

	"github.com/bnema/zerowrap"
	"github.com/spf13/afero"

	"github.com/appops-dev/appops/internal/adapters/out/logwriter"
	"github.com/appops-dev/appops/internal/adapters/out/sshexec"
	"github.com/appops-dev/appops/internal/adapters/out/sshnative"
	"github.com/appops-dev/appops/internal/boundaries/in"
	"github.com/appops-dev/appops/internal/boundaries/out"
	"github.com/appops-dev/appops/internal/domain"
	"github.com/appops-dev/appops/internal/usecase/batch"
	"github.com/appops-dev/appops/internal/usecase/fleet"
	"github.com/appops-dev/appops/internal/usecase/platform"
	"github.com/appops-dev/appops/internal/usecase/session"
)

// App is the wired application handed to driving adapters.
type App struct {
	Fleet         in.FleetService
	DefaultServer string
	Log           zerowrap.Logger

	cleanup func()
}

// Load reads the configuration at configPath (or the standard locations),
// creates the logger and wires one platform service per configured server.
// The returned context carries the logger.
func Load(ctx context.Context, configPath string) (context.Context, *App, error) {
	cfg, err := LoadConfig(LoadOptions{ConfigPath: configPath, DotEnvPath: ".env"})
	if err != nil {
		return ctx, nil, err
	}

	log, cleanup, err := initLogger(cfg)
	if err != nil {
		return ctx, nil, err
	}
	ctx = zerowrap.WithCtx(ctx, log)

	var transcripts out.SessionRecorder
	if cfg.Transcript.Enabled {
		recorder, err := logwriter.New(logwriter.Config{
			Dir:        resolveTranscriptDir(cfg),
			MaxSize:    cfg.Transcript.MaxSize,
			MaxBackups: cfg.Transcript.MaxBackups,
			MaxAge:     cfg.Transcript.MaxAge,
		})
		if err != nil {
			if cleanup != nil {
				cleanup()
			}
			return ctx, nil, fmt.Errorf("failed to open transcript dir: %w", err)
		}
		transcripts = recorder
		logCleanup := cleanup
		cleanup = func() {
			_ = transcripts.Close()
			if logCleanup != nil {
				logCleanup()
			}
		}
	}

	fleetSvc, err := NewFleet(cfg, afero.NewOsFs(), log, transcripts)
	if err != nil {
		if cleanup != nil {
			cleanup()
		}
		return ctx, nil, err
	}

	log.Debug().
		Str(zerowrap.FieldComponent, "app").
		Int(zerowrap.FieldCount, len(cfg.Servers)).
		Str("transport", cfg.SSH.Transport).
		Msg("fleet ready")

	return ctx, &App{
		Fleet:         fleetSvc,
		DefaultServer: cfg.ResolveDefaultServer(),
		Log:           log,
		cleanup:       cleanup,
	}, nil
}

// Close releases what Load acquired.
func (a *App) Close() {
	if a.cleanup != nil {
		a.cleanup()
	}
}

// NewFleet wires a platform service for every configured server. Sessions are
// recorded to transcripts when it is not nil.
func NewFleet(cfg Config, fsys afero.Fs, log zerowrap.Logger, transcripts out.SessionRecorder) (*fleet.Service, error) {
	sentinel, err := session.NewSentinel(cfg.Sentinel.Command, cfg.Sentinel.Pattern)
	if err != nil {
		return nil, err
	}

	platforms := make(map[string]in.PlatformService, len(cfg.Servers))
	for _, name := range cfg.ServerNames() {
		conn, err := cfg.Connection(fsys, name)
		if err != nil {
			return nil, err
		}
		transport, err := newTransport(cfg, conn, log)
		if err != nil {
			return nil, err
		}
		if transcripts != nil {
			transport = transcripts.Wrap(name, transport)
		}

		executor := session.NewExecutor(transport, sentinel, log)
		platforms[name] = platform.NewService(name, batch.NewCoordinator(executor), executor, log)
	}

	return fleet.NewService(platforms, cfg.Fleet.Parallelism, log), nil
}

func newTransport(cfg Config, conn domain.ConnectionInfo, log zerowrap.Logger) (out.ShellTransport, error) {
	switch cfg.SSH.Transport {
	case TransportExec:
		return sshexec.NewTransport(conn, sshexec.Config{
			Binary:         cfg.SSH.Binary,
			RemoteCommand:  cfg.SSH.RemoteCommand,
			ConnectTimeout: cfg.SSH.ConnectTimeout,
			KeyDir:         expandHome(cfg.SSH.KeyDir),
		}, log), nil
	case TransportNative:
		return sshnative.NewTransport(conn, sshnative.Config{
			RemoteCommand:  cfg.SSH.RemoteCommand,
			ConnectTimeout: cfg.SSH.ConnectTimeout,
		}, log), nil
	default:
		return nil, fmt.Errorf("%w: unknown ssh.transport %q", domain.ErrInvalidConfig, cfg.SSH.Transport)
	}
}
