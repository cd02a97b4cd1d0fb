package cli

import (
	"context"
	"strings"

	"github.com/spf13/cobra"

	"github.com/appops-dev/appops/internal/adapters/in/cli/ui/styles"
	"github.com/appops-dev/appops/internal/domain"
)

// newLogsCmd creates the logs command.
func newLogsCmd(s *state) *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "logs [APP...]",
		Short: "Show recent app logs grouped by instance",
		RunE: func(cmd *cobra.Command, args []string) error {
			platform, err := s.platform(cmd)
			if err != nil {
				return err
			}
			apps, err := resolveApps(cmd, s, platform, args, all)
			if err != nil {
				return err
			}
			bundles, err := withSpinner(cmd, s, "Fetching logs...", func(ctx context.Context) (map[string]*domain.LogBundle, error) {
				return platform.Logs(ctx, apps)
			})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if s.structured() {
				return s.write(out, bundles)
			}
			for _, app := range sortedKeys(bundles) {
				if err := cliWriteLine(out, cliRenderTitle(app)); err != nil {
					return err
				}
				bundle := bundles[app]
				if bundle.Len() == 0 {
					if err := cliWriteLine(out, cliRenderEmptyState("No log lines.")); err != nil {
						return err
					}
					continue
				}
				for _, instance := range bundle.Instances() {
					if err := cliWriteLine(out, styles.Theme.Heading.Render(instance)); err != nil {
						return err
					}
					for _, line := range bundle.Lines(instance) {
						if err := cliWriteLine(out, line); err != nil {
							return err
						}
					}
				}
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&all, "all", false, "Target every app on the server")
	return cmd
}

// newNginxCmd creates the nginx command group.
func newNginxCmd(s *state) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "nginx",
		Short: "Show nginx logs",
	}
	cmd.AddCommand(newNginxLogsCmd(s, "access-logs", "Show the nginx access log of apps", accessLogs))
	cmd.AddCommand(newNginxLogsCmd(s, "error-logs", "Show the nginx error log of apps", errorLogs))
	return cmd
}

type nginxLogKind int

const (
	accessLogs nginxLogKind = iota
	errorLogs
)

func newNginxLogsCmd(s *state, use, short string, kind nginxLogKind) *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   use + " [APP...]",
		Short: short,
		RunE: func(cmd *cobra.Command, args []string) error {
			platform, err := s.platform(cmd)
			if err != nil {
				return err
			}
			apps, err := resolveApps(cmd, s, platform, args, all)
			if err != nil {
				return err
			}

			logs, err := withSpinner(cmd, s, "Fetching nginx logs...", func(ctx context.Context) (map[string]string, error) {
				if kind == accessLogs {
					return platform.NginxAccessLogs(ctx, apps)
				}
				return platform.NginxErrorLogs(ctx, apps)
			})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if s.structured() {
				return s.write(out, logs)
			}
			for _, app := range sortedKeys(logs) {
				if err := cliWriteLine(out, cliRenderTitle(app)); err != nil {
					return err
				}
				if logs[app] == "" {
					if err := cliWriteLine(out, cliRenderEmptyState("Empty.")); err != nil {
						return err
					}
					continue
				}
				if err := cliWriteLine(out, strings.TrimRight(logs[app], "\n")); err != nil {
					return err
				}
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&all, "all", false, "Target every app on the server")
	return cmd
}
