package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/appops-dev/appops/internal/adapters/in/cli/ui/components"
	"github.com/appops-dev/appops/internal/domain"
)

// newPsCmd creates the ps command group.
func newPsCmd(s *state) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ps",
		Short: "Inspect and control app processes",
	}
	cmd.AddCommand(newPsShowCmd(s))
	cmd.AddCommand(newPsScaleCmd(s))
	for _, action := range domain.PsActions {
		cmd.AddCommand(newPsActionCmd(s, action))
	}
	return cmd
}

func newPsShowCmd(s *state) *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "show [APP...]",
		Short: "Show the process scaling of apps",
		RunE: func(cmd *cobra.Command, args []string) error {
			platform, err := s.platform(cmd)
			if err != nil {
				return err
			}
			apps, err := resolveApps(cmd, s, platform, args, all)
			if err != nil {
				return err
			}
			scaling, err := withSpinner(cmd, s, "Reading process scaling...", func(ctx context.Context) (map[string]domain.ScalingSpec, error) {
				return platform.PsScale(ctx, apps)
			})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if s.structured() {
				return s.write(out, scaling)
			}
			table := components.NewTable([]components.Column{
				{Title: "App", Width: 30},
				{Title: "Process", Width: 20},
				{Title: "Qty", Width: 5},
				{Title: "State", Width: 12},
			})
			for _, app := range sortedKeys(scaling) {
				spec := scaling[app]
				for _, proctype := range spec.ProcessTypes() {
					table.AddRow(app, proctype, strconv.Itoa(spec[proctype]), components.ProcessIndicator(spec[proctype]))
				}
			}
			if table.Len() == 0 {
				return cliWriteLine(out, cliRenderEmptyState("No processes."))
			}
			return cliWriteLine(out, table.Render())
		},
	}
	cmd.Flags().BoolVar(&all, "all", false, "Target every app on the server")
	return cmd
}

func newPsScaleCmd(s *state) *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "scale [APP...] TYPE=QTY...",
		Short: "Scale app processes",
		Example: `  appops ps scale blog api web=2 worker=1
  appops ps scale --all web=1`,
		RunE: func(cmd *cobra.Command, args []string) error {
			appArgs, scalingArgs := splitScalingArgs(args)
			if len(scalingArgs) == 0 {
				return fmt.Errorf("%w: no TYPE=QTY given", domain.ErrInvalidScaling)
			}
			scaling, err := domain.ParseScalingArgs(scalingArgs)
			if err != nil {
				return err
			}

			platform, err := s.platform(cmd)
			if err != nil {
				return err
			}
			apps, err := resolveApps(cmd, s, platform, appArgs, all)
			if err != nil {
				return err
			}

			live := newLiveOutput(cmd.OutOrStdout(), apps)
			err = platform.ActionPsScale(s.ctx, apps, scaling, live.Log)
			live.Flush()
			if err != nil {
				return err
			}
			return cliWriteLine(cmd.OutOrStdout(), cliRenderSuccess(fmt.Sprintf("scaled %d app(s) to %s", len(apps), scaling.Args())))
		},
	}
	cmd.Flags().BoolVar(&all, "all", false, "Target every app on the server")
	return cmd
}

// splitScalingArgs separates app names from TYPE=QTY arguments.
func splitScalingArgs(args []string) (apps, scaling []string) {
	for _, arg := range args {
		if strings.Contains(arg, "=") {
			scaling = append(scaling, arg)
		} else {
			apps = append(apps, arg)
		}
	}
	return apps, scaling
}

func newPsActionCmd(s *state, action domain.PsAction) *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   string(action) + " [APP...]",
		Short: fmt.Sprintf("Run %s on apps", action.Subcommand()),
		RunE: func(cmd *cobra.Command, args []string) error {
			platform, err := s.platform(cmd)
			if err != nil {
				return err
			}
			apps, err := resolveApps(cmd, s, platform, args, all)
			if err != nil {
				return err
			}

			live := newLiveOutput(cmd.OutOrStdout(), apps)
			err = platform.ActionPs(s.ctx, apps, action, live.Log)
			live.Flush()
			if err != nil {
				return err
			}
			return cliWriteLine(cmd.OutOrStdout(), cliRenderSuccess(fmt.Sprintf("%s done for %d app(s)", action, len(apps))))
		},
	}
	cmd.Flags().BoolVar(&all, "all", false, "Target every app on the server")
	return cmd
}
