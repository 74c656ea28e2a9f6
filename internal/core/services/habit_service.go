package services

import (
	"context"
	"errors"

	"github.com/comitanigiacomo/kanso-habits/internal/core/domain"
	"github.com/comitanigiacomo/kanso-habits/internal/platform/metrics"
)

type HabitService struct {
	store *Store
}

func NewHabitService(store *Store) *HabitService {
	return &HabitService{
		store: store,
	}
}

type SetupHabitInput struct {
	Name            string
	Reason          string
	TargetDays      int
	RewardMilestone int
	Reward          string
}

type SetupInput struct {
	Habits []SetupHabitInput
}

// Setup commits the first-run habit list. On ErrStorageUnavailable the
// committed list is still returned alongside the error.
func (s *HabitService) Setup(ctx context.Context, input SetupInput) ([]domain.Habit, error) {
	submitted := make([]domain.Habit, 0, len(input.Habits))
	for _, h := range input.Habits {
		submitted = append(submitted, domain.Habit{
			Name:            h.Name,
			Reason:          h.Reason,
			TargetDays:      h.TargetDays,
			RewardMilestone: h.RewardMilestone,
			Reward:          h.Reward,
		})
	}

	snap, err := s.store.DefineHabits(ctx, submitted)
	metrics.IncrementSetupSubmission(outcome(err))
	if err != nil && !errors.Is(err, domain.ErrStorageUnavailable) {
		return nil, err
	}

	return snap.Habits, err
}

func (s *HabitService) List() []domain.Habit {
	return s.store.Snapshot().Habits
}

func (s *HabitService) IsSetUp() bool {
	return len(s.List()) > 0
}

func outcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, domain.ErrStorageUnavailable):
		return "unsaved"
	default:
		return "rejected"
	}
}
