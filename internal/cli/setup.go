package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/comitanigiacomo/kanso-habits/internal/core/domain"
)

func newSetupCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "setup",
		Short: "Choose the habits to track (first run only)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := opts.openApp(cmd.Context(), true)
			if err != nil {
				return err
			}
			defer closeApp(a)

			if a.Habits.IsSetUp() {
				return domain.ErrHabitsAlreadyDefined
			}

			input, err := runSetupForm()
			if err != nil {
				return err
			}

			habits, err := a.Habits.Setup(cmd.Context(), input)
			out := cmd.OutOrStdout()
			if errors.Is(err, domain.ErrStorageUnavailable) {
				fmt.Fprintln(out, warnStyle.Render("  Could not save to disk; habits kept for this session only."))
			} else if err != nil {
				return err
			}

			fmt.Fprintln(out)
			fmt.Fprintf(out, "  Tracking %d habit(s):\n", len(habits))
			for i, h := range habits {
				fmt.Fprintf(out, "  %s %s\n", mutedStyle.Render(fmt.Sprintf("%d.", i+1)), headerStyle.Render(h.Name))
			}
			if dropped := len(input.Habits) - len(habits); dropped > 0 {
				fmt.Fprintln(out, mutedStyle.Render(fmt.Sprintf("  %d incomplete habit(s) skipped.", dropped)))
			}
			fmt.Fprintln(out)
			return nil
		},
	}
}
