package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/appops-dev/appops/internal/adapters/in/cli/ui/components"
	"github.com/appops-dev/appops/internal/domain"
)

// newDomainsCmd creates the domains command group.
func newDomainsCmd(s *state) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "domains",
		Short: "Inspect app domains",
	}
	cmd.AddCommand(newDomainsReportCmd(s))
	return cmd
}

func newDomainsReportCmd(s *state) *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "report [APP...]",
		Short: "Show the effective domains of apps",
		RunE: func(cmd *cobra.Command, args []string) error {
			platform, err := s.platform(cmd)
			if err != nil {
				return err
			}
			apps, err := resolveApps(cmd, s, platform, args, all)
			if err != nil {
				return err
			}
			reports, err := withSpinner(cmd, s, "Reading domains...", func(ctx context.Context) (map[string]domain.DomainsReport, error) {
				return platform.DomainsReport(ctx, apps)
			})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if s.structured() {
				return s.write(out, reports)
			}
			table := components.NewTable([]components.Column{
				{Title: "App", Width: 24},
				{Title: "Domains", Width: 60},
			})
			for _, app := range sortedKeys(reports) {
				table.AddRow(app, joinComma(reports[app].Effective.All()))
			}
			return cliWriteLine(out, table.Render())
		},
	}
	cmd.Flags().BoolVar(&all, "all", false, "Target every app on the server")
	return cmd
}
