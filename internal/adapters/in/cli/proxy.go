package cli

import (
	"context"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/appops-dev/appops/internal/adapters/in/cli/ui/components"
	"github.com/appops-dev/appops/internal/domain"
)

// newProxyCmd creates the proxy command group.
func newProxyCmd(s *state) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "proxy",
		Short: "Inspect proxy settings",
	}
	cmd.AddCommand(newProxyPortsCmd(s))
	return cmd
}

func newProxyPortsCmd(s *state) *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "ports [APP...]",
		Short: "Show the port mappings of apps",
		RunE: func(cmd *cobra.Command, args []string) error {
			platform, err := s.platform(cmd)
			if err != nil {
				return err
			}
			apps, err := resolveApps(cmd, s, platform, args, all)
			if err != nil {
				return err
			}
			ports, err := withSpinner(cmd, s, "Reading proxy ports...", func(ctx context.Context) (map[string][]domain.ProxyPort, error) {
				return platform.ProxyPorts(ctx, apps)
			})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if s.structured() {
				return s.write(out, ports)
			}
			table := components.NewTable([]components.Column{
				{Title: "App", Width: 30},
				{Title: "Scheme", Width: 8},
				{Title: "Host", Width: 6},
				{Title: "Container", Width: 9},
			})
			for _, app := range sortedKeys(ports) {
				for _, p := range ports[app] {
					table.AddRow(app, p.Scheme, strconv.Itoa(p.HostPort), strconv.Itoa(p.ContainerPort))
				}
			}
			if table.Len() == 0 {
				return cliWriteLine(out, cliRenderEmptyState("No port mappings."))
			}
			return cliWriteLine(out, table.Render())
		},
	}
	cmd.Flags().BoolVar(&all, "all", false, "Target every app on the server")
	return cmd
}
