package services

import (
	"time"

	"github.com/comitanigiacomo/kanso-habits/internal/core/domain"
)

// ProgressService recomputes derived habit state from a fresh store
// snapshot on every call; nothing is cached between calls.
type ProgressService struct {
	store     *Store
	motivator *Motivator
}

func NewProgressService(store *Store, motivator *Motivator) *ProgressService {
	if motivator == nil {
		motivator = NewMotivator(nil)
	}
	return &ProgressService{
		store:     store,
		motivator: motivator,
	}
}

func (s *ProgressService) Progress(habitIndex int) (domain.Progress, error) {
	snap := s.store.Snapshot()
	return domain.ComputeProgress(snap.Habits, snap.Records, habitIndex, s.store.Today())
}

func (s *ProgressService) Summary() []domain.HabitSummary {
	snap := s.store.Snapshot()

	summaries := domain.Summarize(snap.Habits, snap.Records, s.store.Today())
	for i := range summaries {
		summaries[i].Motivation = s.motivator.Pick()
	}
	return summaries
}

type CalendarInput struct {
	// Month as YYYY-MM; empty means the month containing today.
	Month string
}

func (s *ProgressService) Calendar(input CalendarInput) (domain.MonthGrid, error) {
	snap := s.store.Snapshot()
	today := s.store.Today()

	if input.Month == "" {
		return domain.BuildCalendar(snap.Habits, snap.Records, today), nil
	}

	year, month, err := domain.ParseMonth(input.Month)
	if err != nil {
		return domain.MonthGrid{}, err
	}
	return domain.BuildMonth(snap.Habits, snap.Records, today, year, month), nil
}

// MonthOf formats t the way CalendarInput.Month expects.
func MonthOf(t time.Time) string {
	return t.Format(domain.MonthLayout)
}
