package domain

import (
	"errors"
	"fmt"
	"time"
)

var ErrInvalidMonth = errors.New("invalid month (expected YYYY-MM)")

const MonthLayout = "2006-01"

type Mark string

const (
	MarkUnknown Mark = "unknown"
	MarkDone    Mark = "done"
	MarkMissed  Mark = "missed"
)

// DayCell is one cell of the month grid. Leading cells before the first of
// the month are placeholders with Empty set and no date.
type DayCell struct {
	Empty       bool   `json:"empty"`
	Day         int    `json:"day,omitempty"`
	Date        string `json:"date,omitempty"`
	IsToday     bool   `json:"is_today"`
	IsMilestone bool   `json:"is_milestone"`
	Marks       []Mark `json:"marks,omitempty"`
}

type MonthGrid struct {
	Year           int       `json:"year"`
	Month          int       `json:"month"`
	DaysInMonth    int       `json:"days_in_month"`
	FirstDayOffset int       `json:"first_day_offset"`
	Cells          []DayCell `json:"cells"`
}

func ParseMonth(s string) (year int, month time.Month, err error) {
	t, err := time.Parse(MonthLayout, s)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidMonth, s)
	}
	return t.Year(), t.Month(), nil
}

func DaysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// FirstDayOffset is the weekday of the first of the month, Sunday being 0.
func FirstDayOffset(year int, month time.Month) int {
	return int(time.Date(year, month, 1, 0, 0, 0, 0, time.UTC).Weekday())
}

// BuildCalendar projects the month that contains today.
func BuildCalendar(habits []Habit, records Records, today time.Time) MonthGrid {
	return BuildMonth(habits, records, today, today.Year(), today.Month())
}

// BuildMonth lays out the given month as a Sunday-first grid. A day is a
// milestone day when some habit's projected milestone date falls on that
// month and day number; the year of the projection is not compared.
func BuildMonth(habits []Habit, records Records, today time.Time, year int, month time.Month) MonthGrid {
	days := DaysInMonth(year, month)
	offset := FirstDayOffset(year, month)

	milestoneDays := make(map[int]bool)
	for i := range habits {
		date, ok := ProjectedMilestoneDate(habits, records, i, today)
		if ok && date.Month() == month {
			milestoneDays[date.Day()] = true
		}
	}

	todayKey := DateKey(today)

	grid := MonthGrid{
		Year:           year,
		Month:          int(month),
		DaysInMonth:    days,
		FirstDayOffset: offset,
		Cells:          make([]DayCell, 0, offset+days),
	}

	for i := 0; i < offset; i++ {
		grid.Cells = append(grid.Cells, DayCell{Empty: true})
	}

	for day := 1; day <= days; day++ {
		key := DateKey(time.Date(year, month, day, 0, 0, 0, 0, time.UTC))

		marks := make([]Mark, len(habits))
		for i := range habits {
			marks[i] = markFor(records, key, i)
		}

		grid.Cells = append(grid.Cells, DayCell{
			Day:         day,
			Date:        key,
			IsToday:     key == todayKey,
			IsMilestone: milestoneDays[day],
			Marks:       marks,
		})
	}

	return grid
}

func markFor(records Records, date string, habitIndex int) Mark {
	done, known := records.Flag(date, habitIndex)
	switch {
	case !known:
		return MarkUnknown
	case done:
		return MarkDone
	default:
		return MarkMissed
	}
}
