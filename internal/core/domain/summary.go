package domain

import "time"

// HabitSummary is everything the dashboard shows for one habit.
type HabitSummary struct {
	Name            string  `json:"name"`
	Reason          string  `json:"reason"`
	Reward          string  `json:"reward"`
	TargetDays      int     `json:"target_days"`
	RewardMilestone int     `json:"reward_milestone"`
	ProgressPercent float64 `json:"progress_percent"`
	Motivation      string  `json:"motivation"`

	Progress
}

func Summarize(habits []Habit, records Records, today time.Time) []HabitSummary {
	out := make([]HabitSummary, 0, len(habits))
	for i, h := range habits {
		p, _ := ComputeProgress(habits, records, i, today)
		out = append(out, HabitSummary{
			Name:            h.Name,
			Reason:          h.Reason,
			Reward:          h.Reward,
			TargetDays:      h.TargetDays,
			RewardMilestone: h.RewardMilestone,
			ProgressPercent: ProgressPercent(h.TargetDays, p.RemainingDays),
			Progress:        p,
		})
	}
	return out
}

// ProgressPercent is the share of the target already completed, 0 to 100.
func ProgressPercent(targetDays, remainingDays int) float64 {
	if targetDays <= 0 {
		return 0
	}
	return float64(targetDays-remainingDays) / float64(targetDays) * 100
}
