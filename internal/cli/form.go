package cli

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/comitanigiacomo/kanso-habits/internal/core/domain"
	"github.com/comitanigiacomo/kanso-habits/internal/core/services"
)

type habitFields struct {
	name      string
	reason    string
	target    string
	milestone string
	reward    string
}

func requiredText(s string) error {
	if strings.TrimSpace(s) == "" {
		return errors.New("required")
	}
	return nil
}

func positiveInt(s string) error {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 1 {
		return errors.New("enter a whole number of days, at least 1")
	}
	return nil
}

// runSetupForm asks how many habits to track and then collects each one.
func runSetupForm() (services.SetupInput, error) {
	count := 1
	err := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[int]().
				Title("How many habits do you want to build?").
				Description("Fewer is easier. You can track up to four.").
				Options(
					huh.NewOption("One", 1),
					huh.NewOption("Two", 2),
					huh.NewOption("Three", 3),
					huh.NewOption("Four", domain.MaxHabits),
				).
				Value(&count),
		),
	).Run()
	if err != nil {
		return services.SetupInput{}, err
	}

	fields := make([]habitFields, count)
	groups := make([]*huh.Group, 0, count)
	for i := range fields {
		f := &fields[i]
		groups = append(groups, huh.NewGroup(
			huh.NewInput().Title(fmt.Sprintf("Habit %d", i+1)).Placeholder("Read 10 pages").Value(&f.name).Validate(requiredText),
			huh.NewInput().Title("Why does it matter to you?").Value(&f.reason).Validate(requiredText),
			huh.NewInput().Title("Target days").Placeholder("21").Value(&f.target).Validate(positiveInt),
			huh.NewInput().Title("Reward after how many days in a row?").Placeholder("7").Value(&f.milestone).Validate(positiveInt),
			huh.NewInput().Title("Reward").Placeholder("A new book").Value(&f.reward).Validate(requiredText),
		))
	}

	if err := huh.NewForm(groups...).Run(); err != nil {
		return services.SetupInput{}, err
	}

	return toSetupInput(fields), nil
}

// toSetupInput converts form values. Numbers that fail to parse become 0
// and the habit is dropped by setup validation.
func toSetupInput(fields []habitFields) services.SetupInput {
	input := services.SetupInput{Habits: make([]services.SetupHabitInput, 0, len(fields))}
	for _, f := range fields {
		target, _ := strconv.Atoi(strings.TrimSpace(f.target))
		milestone, _ := strconv.Atoi(strings.TrimSpace(f.milestone))
		input.Habits = append(input.Habits, services.SetupHabitInput{
			Name:            f.name,
			Reason:          f.reason,
			TargetDays:      target,
			RewardMilestone: milestone,
			Reward:          f.reward,
		})
	}
	return input
}

// runRecordForm lets the user tick the habits done today. Preselected
// indices come from an earlier submission for the same day.
func runRecordForm(habits []domain.Habit, preselected []bool) ([]bool, error) {
	options := make([]huh.Option[int], len(habits))
	for i, h := range habits {
		selected := i < len(preselected) && preselected[i]
		options[i] = huh.NewOption(h.Name, i).Selected(selected)
	}

	var chosen []int
	err := huh.NewForm(
		huh.NewGroup(
			huh.NewMultiSelect[int]().
				Title("What did you do today?").
				Options(options...).
				Value(&chosen),
		),
	).Run()
	if err != nil {
		return nil, err
	}

	flags := make([]bool, len(habits))
	for _, i := range chosen {
		flags[i] = true
	}
	return flags, nil
}
