package cli

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/comitanigiacomo/kanso-habits/internal/core/domain"
	"github.com/comitanigiacomo/kanso-habits/internal/core/services"
)

var errDoneConflict = errors.New("--done and --none cannot be used together")

func newRecordCommand(opts *rootOptions) *cobra.Command {
	var (
		done string
		none bool
	)

	cmd := &cobra.Command{
		Use:   "record",
		Short: "Record which habits you did today",
		Long: "Record today's completions. Without flags an interactive checklist is shown.\n" +
			"Recording again on the same day replaces the earlier answer.",
		Example: "  kanso record --done 1,3\n  kanso record --none",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if none && done != "" {
				return errDoneConflict
			}

			a, err := opts.openApp(cmd.Context(), true)
			if err != nil {
				return err
			}
			defer closeApp(a)

			habits := a.Habits.List()
			if len(habits) == 0 {
				return fmt.Errorf("%w: run `kanso setup`", domain.ErrSetupRequired)
			}

			var flags []bool
			switch {
			case none:
				flags = make([]bool, len(habits))
			case done != "":
				flags, err = ParseDone(done, len(habits))
			default:
				var previous []bool
				if today, ok := a.Entries.Today(); ok {
					previous = today.Completed
				}
				flags, err = runRecordForm(habits, previous)
			}
			if err != nil {
				return err
			}

			result, err := a.Entries.RecordToday(cmd.Context(), services.RecordTodayInput{Completed: flags})
			out := cmd.OutOrStdout()
			if errors.Is(err, domain.ErrStorageUnavailable) {
				fmt.Fprintln(out, warnStyle.Render("  Could not save to disk; today's record is kept for this session only."))
			} else if err != nil {
				return err
			}

			fmt.Fprintln(out, RenderRecord(result.Date, habits, result.Completed))
			return nil
		},
	}

	cmd.Flags().StringVar(&done, "done", "", "Comma-separated habit numbers done today, starting at 1")
	cmd.Flags().BoolVar(&none, "none", false, "Record that no habit was done today")
	return cmd
}

// ParseDone turns "1,3" into completion flags for count habits.
func ParseDone(s string, count int) ([]bool, error) {
	flags := make([]bool, count)
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		n, err := strconv.Atoi(part)
		if err != nil {
			return nil, fmt.Errorf("invalid habit number %q", part)
		}
		if n < 1 || n > count {
			return nil, fmt.Errorf("%w: %d (have %d)", domain.ErrHabitIndexOutOfRange, n, count)
		}
		flags[n-1] = true
	}
	return flags, nil
}

func RenderRecord(date string, habits []domain.Habit, flags []bool) string {
	var b strings.Builder
	b.WriteString("\n  " + headerStyle.Render("Recorded "+date) + "\n")
	for i, h := range habits {
		mark := missedStyle.Render(glyphMissed)
		if i < len(flags) && flags[i] {
			mark = doneStyle.Render(glyphDone)
		}
		b.WriteString(fmt.Sprintf("  %s %s\n", mark, valueStyle.Render(h.Name)))
	}
	return b.String()
}
