package domain

import (
	"errors"
	"strings"
)

var (
	ErrNoValidHabits        = errors.New("no valid habits submitted")
	ErrTooManyHabits        = errors.New("too many habits (max 4)")
	ErrHabitsAlreadyDefined = errors.New("habits are already defined")
	ErrSetupRequired        = errors.New("habits must be set up first")
	ErrHabitIndexOutOfRange = errors.New("habit index out of range")

	errHabitNameEmpty   = errors.New("habit name cannot be empty")
	errHabitReasonEmpty = errors.New("habit reason cannot be empty")
	errHabitRewardEmpty = errors.New("habit reward cannot be empty")
	errInvalidTarget    = errors.New("target days must be at least 1")
	errInvalidMilestone = errors.New("reward milestone must be at least 1")
)

const MaxHabits = 4

// Habit is one tracked behaviour. Daily records refer to habits by their
// position in the list, so the list order is part of the persisted format.
type Habit struct {
	Name            string `json:"name"`
	Reason          string `json:"reason"`
	TargetDays      int    `json:"targetDays"`
	RewardMilestone int    `json:"rewardMilestone"`
	Reward          string `json:"reward"`
}

func (h Habit) Validate() error {
	if strings.TrimSpace(h.Name) == "" {
		return errHabitNameEmpty
	}
	if strings.TrimSpace(h.Reason) == "" {
		return errHabitReasonEmpty
	}
	if h.TargetDays < 1 {
		return errInvalidTarget
	}
	if h.RewardMilestone < 1 {
		return errInvalidMilestone
	}
	if strings.TrimSpace(h.Reward) == "" {
		return errHabitRewardEmpty
	}
	return nil
}

// FilterValidHabits drops every entry that fails Validate and keeps the
// relative order of the rest. Text fields are stored as entered.
func FilterValidHabits(habits []Habit) []Habit {
	valid := make([]Habit, 0, len(habits))
	for _, h := range habits {
		if h.Validate() == nil {
			valid = append(valid, h)
		}
	}
	return valid
}

// PrepareSetup applies the first-run rules to a setup submission.
func PrepareSetup(current, submitted []Habit) ([]Habit, error) {
	if len(current) > 0 {
		return nil, ErrHabitsAlreadyDefined
	}
	if len(submitted) > MaxHabits {
		return nil, ErrTooManyHabits
	}

	valid := FilterValidHabits(submitted)
	if len(valid) == 0 {
		return nil, ErrNoValidHabits
	}
	return valid, nil
}

func CloneHabits(habits []Habit) []Habit {
	if habits == nil {
		return []Habit{}
	}
	out := make([]Habit, len(habits))
	copy(out, habits)
	return out
}
