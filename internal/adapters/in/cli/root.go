// Package cli implements the CLI adapter for appops.
// This package provides Cobra commands that delegate to the platform services.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/appops-dev/appops/internal/app"
	"github.com/appops-dev/appops/internal/boundaries/in"
	"github.com/appops-dev/appops/internal/domain"
)

var (
	// Version information (set at build time)
	Version   = "dev"
	Commit    = "unknown"
	BuildDate = "unknown"
)

// Output formats.
const (
	OutputText = "text"
	OutputJSON = "json"
	OutputYAML = "yaml"
)

// Loader builds the application from a config path.
type Loader func(ctx context.Context, configPath string) (context.Context, *app.App, error)

// state is shared by every command of one invocation.
type state struct {
	load       Loader
	configPath string
	server     string
	output     string

	ctx context.Context
	app *app.App
}

// NewRootCmd creates the root command for the appops CLI.
func NewRootCmd(load Loader) *cobra.Command {
	cmd, _ := newRootCmd(load)
	return cmd
}

func newRootCmd(load Loader) (*cobra.Command, *state) {
	s := &state{load: load}

	rootCmd := &cobra.Command{
		Use:   "appops",
		Short: "appops - remote control for Dokku servers",
		Long: `appops drives one or more Dokku servers over ssh.

Every command that targets several apps runs them through a single ssh
session, so scaling ten apps costs one connection, not ten.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			switch s.output {
			case OutputText, OutputJSON, OutputYAML:
				return nil
			default:
				return fmt.Errorf("unknown output format %q (use %s, %s or %s)", s.output, OutputText, OutputJSON, OutputYAML)
			}
		},
	}

	rootCmd.PersistentFlags().StringVarP(&s.configPath, "config", "c", "", "Path to config file")
	rootCmd.PersistentFlags().StringVarP(&s.server, "server", "s", "", "Server to target (defaults to default_server)")
	rootCmd.PersistentFlags().StringVarP(&s.output, "output", "o", OutputText, "Output format: text, json or yaml")

	rootCmd.AddCommand(newAppsCmd(s))
	rootCmd.AddCommand(newServersCmd(s))
	rootCmd.AddCommand(newPingCmd(s))
	rootCmd.AddCommand(newPsCmd(s))
	rootCmd.AddCommand(newProxyCmd(s))
	rootCmd.AddCommand(newDomainsCmd(s))
	rootCmd.AddCommand(newLogsCmd(s))
	rootCmd.AddCommand(newNginxCmd(s))
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd, s
}

// Execute runs the CLI against the real application and returns the exit code.
func Execute() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cmd, s := newRootCmd(app.Load)
	defer s.close()

	if err := cmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, cliRenderError(err))
		return exitCode(err)
	}
	return 0
}

// exitCode maps error kinds to distinct exit statuses.
func exitCode(err error) int {
	switch {
	case errors.Is(err, domain.ErrInvalidName), errors.Is(err, domain.ErrInvalidScaling),
		errors.Is(err, domain.ErrInvalidTemplate), errors.Is(err, domain.ErrInvalidConfig),
		errors.Is(err, domain.ErrServerNotFound):
		return 2
	case errors.Is(err, domain.ErrTransport):
		return 3
	case errors.Is(err, domain.ErrParse), errors.Is(err, domain.ErrSentinelMismatch):
		return 4
	default:
		return 1
	}
}

// ensureLoaded loads the application once per invocation.
func (s *state) ensureLoaded(cmd *cobra.Command) error {
	if s.app != nil {
		return nil
	}
	parent := cmd.Context()
	if parent == nil {
		parent = context.Background()
	}
	ctx, a, err := s.load(parent, s.configPath)
	if err != nil {
		return err
	}
	s.ctx, s.app = ctx, a
	return nil
}

// close releases the loaded application, if any.
func (s *state) close() {
	if s.app != nil {
		s.app.Close()
	}
}

// fleet returns the fleet service.
func (s *state) fleet(cmd *cobra.Command) (in.FleetService, error) {
	if err := s.ensureLoaded(cmd); err != nil {
		return nil, err
	}
	return s.app.Fleet, nil
}

// platform returns the service of the --server server, or the default one.
func (s *state) platform(cmd *cobra.Command) (in.PlatformService, error) {
	fleet, err := s.fleet(cmd)
	if err != nil {
		return nil, err
	}
	server := s.server
	if server == "" {
		server = s.app.DefaultServer
	}
	if server == "" {
		return nil, fmt.Errorf("%w: several servers configured, pick one with --server", domain.ErrServerNotFound)
	}
	return fleet.Platform(server)
}

// structured reports whether results go out as data instead of styled text.
func (s *state) structured() bool {
	return s.output == OutputJSON || s.output == OutputYAML
}

// write encodes v in the selected structured format.
func (s *state) write(w io.Writer, v any) error {
	if s.output == OutputYAML {
		return cliWriteYAML(w, v)
	}
	return cliWriteJSON(w, v)
}

// newVersionCmd creates the version command.
func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Printf("appops %s\n", Version)
			cmd.Printf("Commit: %s\n", Commit)
			cmd.Printf("Build Date: %s\n", BuildDate)
		},
	}
}

// SetVersionInfo sets the version information for the CLI.
func SetVersionInfo(version, commit, date string) {
	Version = version
	Commit = commit
	BuildDate = date
}
