package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/comitanigiacomo/kanso-habits/internal/core/services"
)

func newStatusCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show progress, streaks and rewards",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runStatus(cmd, opts)
		},
	}
}

func runStatus(cmd *cobra.Command, opts *rootOptions) error {
	a, err := opts.openApp(cmd.Context(), true)
	if err != nil {
		return err
	}
	defer closeApp(a)

	fmt.Fprintln(cmd.OutOrStdout())
	fmt.Fprint(cmd.OutOrStdout(), RenderStatus(a.Progress.Summary()))
	return nil
}

func newCalendarCommand(opts *rootOptions) *cobra.Command {
	var month string

	cmd := &cobra.Command{
		Use:   "calendar",
		Short: "Show a month of recorded days",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := opts.openApp(cmd.Context(), true)
			if err != nil {
				return err
			}
			defer closeApp(a)

			grid, err := a.Progress.Calendar(services.CalendarInput{Month: month})
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout())
			fmt.Fprint(cmd.OutOrStdout(), RenderCalendar(grid, a.Habits.List()))
			return nil
		},
	}

	cmd.Flags().StringVarP(&month, "month", "m", "", "Month to show as YYYY-MM (default: current month)")
	return cmd
}
