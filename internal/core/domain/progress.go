package domain

import "time"

// Progress is the derived state of a single habit at a given day.
type Progress struct {
	HabitIndex       int    `json:"habit_index"`
	CompletedDays    int    `json:"completed_days"`
	RemainingDays    int    `json:"remaining_days"`
	Streak           int    `json:"streak"`
	MilestoneDate    string `json:"milestone_date,omitempty"`
	MilestoneReached bool   `json:"milestone_reached"`
}

// CompletedDays counts every recorded day with habitIndex marked done,
// consecutive or not.
func CompletedDays(records Records, habitIndex int) int {
	count := 0
	for _, flags := range records {
		if habitIndex >= 0 && habitIndex < len(flags) && flags[habitIndex] {
			count++
		}
	}
	return count
}

func RemainingDays(habits []Habit, records Records, habitIndex int) int {
	if habitIndex < 0 || habitIndex >= len(habits) {
		return 0
	}
	return max(0, habits[habitIndex].TargetDays-CompletedDays(records, habitIndex))
}

// ConsecutiveStreak walks the recorded days from the most recent one
// backwards and counts how many in a row have habitIndex marked done. Days
// without any record are skipped, so a gap in the calendar does not end the
// streak; a record that is false or too short does.
func ConsecutiveStreak(records Records, habitIndex int) int {
	streak := 0
	for _, date := range records.DatesDescending() {
		done, known := records.Flag(date, habitIndex)
		if !known || !done {
			break
		}
		streak++
	}
	return streak
}

// ProjectedMilestoneDate returns the day the reward milestone would be hit
// if the habit is done every day from today on. ok is false once the
// current streak already covers the milestone.
func ProjectedMilestoneDate(habits []Habit, records Records, habitIndex int, today time.Time) (date time.Time, ok bool) {
	if habitIndex < 0 || habitIndex >= len(habits) {
		return time.Time{}, false
	}

	remaining := habits[habitIndex].RewardMilestone - ConsecutiveStreak(records, habitIndex)
	if remaining <= 0 {
		return time.Time{}, false
	}
	return StartOfDay(today).AddDate(0, 0, remaining), true
}

func ComputeProgress(habits []Habit, records Records, habitIndex int, today time.Time) (Progress, error) {
	if habitIndex < 0 || habitIndex >= len(habits) {
		return Progress{}, ErrHabitIndexOutOfRange
	}

	p := Progress{
		HabitIndex:    habitIndex,
		CompletedDays: CompletedDays(records, habitIndex),
		RemainingDays: RemainingDays(habits, records, habitIndex),
		Streak:        ConsecutiveStreak(records, habitIndex),
	}

	if date, ok := ProjectedMilestoneDate(habits, records, habitIndex, today); ok {
		p.MilestoneDate = DateKey(date)
	} else {
		p.MilestoneReached = true
	}
	return p, nil
}

// StartOfDay truncates t to midnight in t's own location.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
