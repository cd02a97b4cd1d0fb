package cli

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/appops-dev/appops/internal/adapters/in/cli/ui/components"
	"github.com/appops-dev/appops/internal/adapters/in/cli/ui/styles"
	"github.com/appops-dev/appops/internal/boundaries/in"
	"github.com/appops-dev/appops/internal/domain"
)

// newAppsCmd creates the apps command group.
func newAppsCmd(s *state) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "apps",
		Short: "Inspect apps",
	}
	cmd.AddCommand(newAppsListCmd(s))
	return cmd
}

func newAppsListCmd(s *state) *cobra.Command {
	var allServers bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the apps of a server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if allServers {
				return runAppsListAll(cmd, s)
			}
			return runAppsList(cmd, s)
		},
	}
	cmd.Flags().BoolVarP(&allServers, "all-servers", "A", false, "List the apps of every configured server")
	return cmd
}

func runAppsList(cmd *cobra.Command, s *state) error {
	platform, err := s.platform(cmd)
	if err != nil {
		return err
	}
	apps, err := withSpinner(cmd, s, "Listing apps...", platform.AppsList)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if s.structured() {
		return s.write(out, apps)
	}
	if len(apps) == 0 {
		return cliWriteLine(out, cliRenderEmptyState("No apps."))
	}
	for _, app := range apps {
		if err := cliWriteLine(out, styles.RenderListItem(app)); err != nil {
			return err
		}
	}
	return nil
}

func runAppsListAll(cmd *cobra.Command, s *state) error {
	fleet, err := s.fleet(cmd)
	if err != nil {
		return err
	}
	byServer, err := withSpinner(cmd, s, "Listing apps on every server...", fleet.AppsList)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if s.structured() {
		return s.write(out, appNamesByServer(byServer))
	}

	servers := sortedKeys(byServer)
	if len(servers) == 0 {
		return cliWriteLine(out, cliRenderEmptyState("No apps."))
	}
	for _, server := range servers {
		if err := cliWriteLine(out, styles.RenderServer(server)); err != nil {
			return err
		}
		if len(byServer[server]) == 0 {
			if err := cliWriteLine(out, cliRenderEmptyState("  No apps.")); err != nil {
				return err
			}
			continue
		}
		for _, app := range byServer[server] {
			if err := cliWriteLine(out, "  "+styles.RenderListItem(app.Name)); err != nil {
				return err
			}
		}
	}
	return nil
}

func appNamesByServer(byServer map[string][]domain.App) map[string][]string {
	names := make(map[string][]string, len(byServer))
	for server, apps := range byServer {
		list := make([]string, 0, len(apps))
		for _, app := range apps {
			list = append(list, app.Name)
		}
		names[server] = list
	}
	return names
}

// newServersCmd creates the servers command.
func newServersCmd(s *state) *cobra.Command {
	return &cobra.Command{
		Use:   "servers",
		Short: "List configured servers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fleet, err := s.fleet(cmd)
			if err != nil {
				return err
			}
			servers := fleet.Servers()

			out := cmd.OutOrStdout()
			if s.structured() {
				return s.write(out, servers)
			}
			for _, server := range servers {
				line := styles.RenderListItem(server)
				if server == s.app.DefaultServer {
					line += " " + styles.Theme.Muted.Render("(default)")
				}
				if err := cliWriteLine(out, line); err != nil {
					return err
				}
			}
			if s.app.DefaultServer == "" && len(servers) > 1 {
				return cliWriteLine(out, styles.RenderWarning("no default_server: pass --server to target one"))
			}
			return nil
		},
	}
}

// newPingCmd creates the ping command.
func newPingCmd(s *state) *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "ping",
		Short: "Check that a server answers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			versions := make(map[string]string)
			if all {
				fleet, err := s.fleet(cmd)
				if err != nil {
					return err
				}
				if versions, err = withSpinner(cmd, s, "Pinging servers...", fleet.Ping); err != nil {
					return err
				}
			} else {
				platform, err := s.platform(cmd)
				if err != nil {
					return err
				}
				version, err := withSpinner(cmd, s, "Pinging "+s.serverName()+"...", platform.Ping)
				if err != nil {
					return err
				}
				versions[s.serverName()] = version
			}

			out := cmd.OutOrStdout()
			if s.structured() {
				return s.write(out, versions)
			}
			for _, server := range sortedKeys(versions) {
				line := components.RenderStatus(components.StatusSuccess, server) + " " + styles.Theme.Muted.Render("dokku "+versions[server])
				if err := cliWriteLine(out, line); err != nil {
					return err
				}
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&all, "all", false, "Ping every configured server")
	return cmd
}

// serverName returns the name of the targeted server once the app is loaded.
func (s *state) serverName() string {
	if s.server != "" {
		return s.server
	}
	return s.app.DefaultServer
}

// resolveApps returns the apps named on the command line, or every app of the
// server when all is set.
func resolveApps(cmd *cobra.Command, s *state, platform in.PlatformService, args []string, all bool) ([]string, error) {
	if all {
		if len(args) > 0 {
			return nil, fmt.Errorf("%w: --all takes no app names", domain.ErrInvalidName)
		}
		return withSpinner(cmd, s, "Listing apps...", platform.AppsList)
	}
	if len(args) == 0 {
		return nil, fmt.Errorf("%w: name at least one app or pass --all", domain.ErrInvalidName)
	}
	return args, nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func joinComma(values []string) string {
	if len(values) == 0 {
		return "-"
	}
	return strings.Join(values, ", ")
}
